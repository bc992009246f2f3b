package domain

import "time"

// Street is a named road in the town. Other infrastructure references
// streets by name, not ID, matching the flat-file data model.
type Street struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Type     string  `json:"type"` // Residential, Commercial, Mixed, Industrial
	LengthKM float64 `json:"length_km"`
}

// Business is a commercial establishment located on a street.
type Business struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Type            string `json:"type"`
	Street          string `json:"street"`
	Employees       int    `json:"employees"`
	EstablishedYear int    `json:"established_year"`
}

// Landmark is a point of civic or historical interest.
type Landmark struct {
	ID                     string `json:"id"`
	Name                   string `json:"name"`
	Type                   string `json:"type"`
	Street                 string `json:"street"`
	EstablishedYear        int    `json:"established_year"`
	HistoricalSignificance string `json:"historical_significance"`
}

// Park is a green space with a set of facilities.
type Park struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Type         string   `json:"type"`
	AreaHectares float64  `json:"area_hectares"`
	Facilities   []string `json:"facilities"`
}

// School is an educational institution located on a street.
type School struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Type            string `json:"type"`
	Street          string `json:"street"`
	Students        int    `json:"students"`
	EstablishedYear int    `json:"established_year"`
}

// Service is a municipal service point (library, fire station, and so on).
type Service struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Type           string `json:"type"`
	Street         string `json:"street"`
	OperatingHours string `json:"operating_hours"`
	StaffCount     int    `json:"staff_count"`
}

// Event is a scheduled happening in the town. Events are not produced by the
// town generator today but may appear in hand-edited town files; the seed
// sampler picks them up when present.
type Event struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Date     string `json:"date"`
	Location string `json:"location"`
}

// Newspaper is the masthead of the town's local paper.
type Newspaper struct {
	Name                 string `json:"name" yaml:"name"`
	Tagline              string `json:"tagline" yaml:"tagline"`
	FoundedYear          int    `json:"founded_year" yaml:"founded_year"`
	PublicationFrequency string `json:"publication_frequency" yaml:"publication_frequency"`
}

// Town is the complete generated town with all infrastructure collections.
type Town struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Country      string     `json:"country"`
	Locale       string     `json:"locale"`
	SizeCategory string     `json:"size_category"`
	Population   int        `json:"population"`
	AreaSqKM     float64    `json:"area_sq_km"`
	FoundedYear  int        `json:"founded_year"`
	ElevationM   int        `json:"elevation_m"`
	Climate      string     `json:"climate"`
	Streets      []Street   `json:"streets"`
	Businesses   []Business `json:"businesses"`
	Landmarks    []Landmark `json:"landmarks"`
	Parks        []Park     `json:"parks"`
	Schools      []School   `json:"schools"`
	Services     []Service  `json:"services"`
	Events       []Event    `json:"events,omitempty"`
	Newspaper    *Newspaper `json:"newspaper,omitempty"`
	GeneratedAt  time.Time  `json:"generated_at"`
}
