package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/couchcryptid/gazette-newsroom/internal/domain"
)

// peopleHeader fixes the column order of people.csv. The temperament struct
// flattens into three columns, traits comma-joined.
var peopleHeader = []string{
	"id", "first_name", "last_name", "age", "gender", "birth_year",
	"marital_status", "education_level", "employment_status", "occupation",
	"annual_income", "household_size", "location", "full_address",
	"phone_number", "email", "temperament_type", "temperament_description",
	"temperament_traits", "country", "locale",
}

// SavePeople writes the population CSV, creating parent directories as
// needed.
func SavePeople(path string, people []domain.Person) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create people file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(peopleHeader); err != nil {
		return fmt.Errorf("write people header: %w", err)
	}
	for _, p := range people {
		if err := w.Write(personRecord(p)); err != nil {
			return fmt.Errorf("write person %s: %w", p.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush people file: %w", err)
	}
	return nil
}

// LoadPeople reads a people.csv file back into domain records.
func LoadPeople(path string) ([]domain.Person, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open people file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read people file: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	idx, err := headerIndex(rows[0], peopleHeader)
	if err != nil {
		return nil, fmt.Errorf("people file %s: %w", path, err)
	}

	people := make([]domain.Person, 0, len(rows)-1)
	for i, row := range rows[1:] {
		p, err := parsePerson(row, idx)
		if err != nil {
			return nil, fmt.Errorf("people file row %d: %w", i+2, err)
		}
		people = append(people, p)
	}
	return people, nil
}

func personRecord(p domain.Person) []string {
	return []string{
		p.ID, p.FirstName, p.LastName,
		strconv.Itoa(p.Age), p.Gender, strconv.Itoa(p.BirthYear),
		p.MaritalStatus, p.EducationLevel, p.EmploymentStatus, p.Occupation,
		strconv.Itoa(p.AnnualIncome), strconv.Itoa(p.HouseholdSize),
		p.Location, p.FullAddress, p.PhoneNumber, p.Email,
		p.Temperament.Type, p.Temperament.Description,
		strings.Join(p.Temperament.Traits, ","),
		p.Country, p.Locale,
	}
}

func parsePerson(row []string, idx map[string]int) (domain.Person, error) {
	get := func(col string) string { return row[idx[col]] }

	age, err := strconv.Atoi(get("age"))
	if err != nil {
		return domain.Person{}, fmt.Errorf("invalid age %q", get("age"))
	}
	birthYear, err := strconv.Atoi(get("birth_year"))
	if err != nil {
		return domain.Person{}, fmt.Errorf("invalid birth_year %q", get("birth_year"))
	}
	income, err := strconv.Atoi(get("annual_income"))
	if err != nil {
		return domain.Person{}, fmt.Errorf("invalid annual_income %q", get("annual_income"))
	}
	household, err := strconv.Atoi(get("household_size"))
	if err != nil {
		return domain.Person{}, fmt.Errorf("invalid household_size %q", get("household_size"))
	}

	var traits []string
	if raw := get("temperament_traits"); raw != "" {
		traits = strings.Split(raw, ",")
	}

	return domain.Person{
		ID:               get("id"),
		FirstName:        get("first_name"),
		LastName:         get("last_name"),
		Age:              age,
		Gender:           get("gender"),
		BirthYear:        birthYear,
		MaritalStatus:    get("marital_status"),
		EducationLevel:   get("education_level"),
		EmploymentStatus: get("employment_status"),
		Occupation:       get("occupation"),
		AnnualIncome:     income,
		HouseholdSize:    household,
		Location:         get("location"),
		FullAddress:      get("full_address"),
		PhoneNumber:      get("phone_number"),
		Email:            get("email"),
		Temperament: domain.Temperament{
			Type:        get("temperament_type"),
			Description: get("temperament_description"),
			Traits:      traits,
		},
		Country: get("country"),
		Locale:  get("locale"),
	}, nil
}

// headerIndex maps expected column names to their positions, erroring on
// any missing column so schema drift fails loudly.
func headerIndex(header, expected []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, col := range header {
		idx[col] = i
	}
	for _, col := range expected {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("missing column %q", col)
		}
	}
	return idx, nil
}
