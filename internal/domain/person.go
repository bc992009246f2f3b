package domain

// Temperament is a personality profile assigned to a generated resident.
type Temperament struct {
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Traits      []string `json:"traits"`
}

// Person is a single generated resident. Persisted as one CSV row; the
// temperament traits collapse to a comma-joined string on disk.
type Person struct {
	ID               string      `json:"id"`
	FirstName        string      `json:"first_name"`
	LastName         string      `json:"last_name"`
	Age              int         `json:"age"`
	Gender           string      `json:"gender"`
	BirthYear        int         `json:"birth_year"`
	MaritalStatus    string      `json:"marital_status"`
	EducationLevel   string      `json:"education_level"`
	EmploymentStatus string      `json:"employment_status"`
	Occupation       string      `json:"occupation"`
	AnnualIncome     int         `json:"annual_income"`
	HouseholdSize    int         `json:"household_size"`
	Location         string      `json:"location"`
	FullAddress      string      `json:"full_address"`
	PhoneNumber      string      `json:"phone_number"`
	Email            string      `json:"email"`
	Temperament      Temperament `json:"temperament"`
	Country          string      `json:"country"`
	Locale           string      `json:"locale"`
}

// FullName returns the resident's display name.
func (p Person) FullName() string {
	return p.FirstName + " " + p.LastName
}
