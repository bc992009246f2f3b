package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Range is an inclusive [lo, hi] integer range, written in YAML as a
// two-element flow sequence.
type Range [2]int

// Lo returns the lower bound.
func (r Range) Lo() int { return r[0] }

// Hi returns the upper bound.
func (r Range) Hi() int { return r[1] }

func (r Range) validate(name string) error {
	if r[0] < 0 || r[1] < r[0] {
		return fmt.Errorf("%s: invalid range [%d, %d]", name, r[0], r[1])
	}
	return nil
}

// SizeTier holds the generation ranges for one town size category.
type SizeTier struct {
	PopulationRange    Range `yaml:"population_range"`
	StreetCountRange   Range `yaml:"street_count_range"`
	BusinessCountRange Range `yaml:"business_count_range"`
	LandmarkCountRange Range `yaml:"landmark_count_range"`
	ParkCountRange     Range `yaml:"park_count_range"`
	SchoolCountRange   Range `yaml:"school_count_range"`
	ServiceCountRange  Range `yaml:"service_count_range"`
}

// WeightedType is one entry in an ordered weight table. Tables are slices
// rather than maps so a fixed seed walks them in a fixed order.
type WeightedType struct {
	Type   string  `yaml:"type"`
	Weight float64 `yaml:"weight"`
}

// NameComponents holds the word lists that name-assembly patterns draw from.
type NameComponents struct {
	TreeNames                    []string            `yaml:"tree_names"`
	StreetPrefixes               []string            `yaml:"street_prefixes"`
	DirectionalPrefixes          []string            `yaml:"directional_prefixes"`
	OrdinalPrefixes              []string            `yaml:"ordinal_prefixes"`
	ParkPrefixes                 []string            `yaml:"park_prefixes"`
	FacilityTypes                []string            `yaml:"facility_types"`
	ClimateTypes                 []string            `yaml:"climate_types"`
	HistoricalSignificanceLevels []string            `yaml:"historical_significance_levels"`
	BusinessNameAdjectives       map[string][]string `yaml:"business_name_adjectives"`
	BusinessNameNouns            map[string][]string `yaml:"business_name_nouns"`
}

// TownTables is the full set of generation tables for town infrastructure.
type TownTables struct {
	TownSizes      map[string]SizeTier `yaml:"town_sizes"`
	StreetPatterns map[string][]string `yaml:"street_patterns"`
	BusinessTypes  []WeightedType      `yaml:"business_types"`
	LandmarkTypes  []string            `yaml:"landmark_types"`
	ParkTypes      []string            `yaml:"park_types"`
	SchoolTypes    []string            `yaml:"school_types"`
	ServiceTypes   []string            `yaml:"service_types"`
	CountryMapping map[string]string   `yaml:"country_mapping"`
	NameComponents NameComponents      `yaml:"name_components"`
}

// LoadTownTables reads and validates the town generation tables.
func LoadTownTables(path string) (*TownTables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read town tables: %w", err)
	}
	var tables TownTables
	if err := yaml.Unmarshal(data, &tables); err != nil {
		return nil, fmt.Errorf("parse town tables: %w", err)
	}
	if err := tables.Validate(); err != nil {
		return nil, fmt.Errorf("validate town tables: %w", err)
	}
	return &tables, nil
}

// CountryFor maps a locale to its country name, or "Unknown".
func (t *TownTables) CountryFor(locale string) string {
	if country, ok := t.CountryMapping[locale]; ok {
		return country
	}
	return "Unknown"
}

// Validate checks that every table the generator samples from is non-empty
// and that ranges and weights are well formed.
func (t *TownTables) Validate() error {
	if len(t.TownSizes) == 0 {
		return fmt.Errorf("town_sizes must not be empty")
	}
	for name, tier := range t.TownSizes {
		ranges := map[string]Range{
			"population_range":     tier.PopulationRange,
			"street_count_range":   tier.StreetCountRange,
			"business_count_range": tier.BusinessCountRange,
			"landmark_count_range": tier.LandmarkCountRange,
			"park_count_range":     tier.ParkCountRange,
			"school_count_range":   tier.SchoolCountRange,
			"service_count_range":  tier.ServiceCountRange,
		}
		for field, r := range ranges {
			if err := r.validate("town_sizes." + name + "." + field); err != nil {
				return err
			}
		}
		if tier.StreetCountRange.Lo() < 1 {
			return fmt.Errorf("town_sizes.%s.street_count_range: at least one street is required", name)
		}
	}
	if len(t.StreetPatterns) == 0 {
		return fmt.Errorf("street_patterns must not be empty")
	}
	for locale, patterns := range t.StreetPatterns {
		if len(patterns) == 0 {
			return fmt.Errorf("street_patterns.%s must not be empty", locale)
		}
	}
	if len(t.BusinessTypes) == 0 {
		return fmt.Errorf("business_types must not be empty")
	}
	for _, bt := range t.BusinessTypes {
		if bt.Weight <= 0 {
			return fmt.Errorf("business_types.%s: weight must be positive, got %v", bt.Type, bt.Weight)
		}
	}
	lists := map[string][]string{
		"landmark_types": t.LandmarkTypes,
		"park_types":     t.ParkTypes,
		"school_types":   t.SchoolTypes,
		"service_types":  t.ServiceTypes,
	}
	for name, list := range lists {
		if len(list) == 0 {
			return fmt.Errorf("%s must not be empty", name)
		}
	}
	nc := map[string][]string{
		"tree_names":                     t.NameComponents.TreeNames,
		"street_prefixes":                t.NameComponents.StreetPrefixes,
		"directional_prefixes":           t.NameComponents.DirectionalPrefixes,
		"ordinal_prefixes":               t.NameComponents.OrdinalPrefixes,
		"park_prefixes":                  t.NameComponents.ParkPrefixes,
		"facility_types":                 t.NameComponents.FacilityTypes,
		"climate_types":                  t.NameComponents.ClimateTypes,
		"historical_significance_levels": t.NameComponents.HistoricalSignificanceLevels,
	}
	for name, list := range nc {
		if len(list) == 0 {
			return fmt.Errorf("name_components.%s must not be empty", name)
		}
	}
	return nil
}
