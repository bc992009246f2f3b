package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/couchcryptid/gazette-newsroom/internal/domain"
)

// TownInit is the one-shot town initialization config: which town to build,
// how, and under which masthead.
type TownInit struct {
	Town struct {
		Name   string `yaml:"name"`
		Locale string `yaml:"locale"`
		Size   string `yaml:"size"`
		Seed   int64  `yaml:"seed"`
	} `yaml:"town"`
	Population struct {
		ScaleFactor float64 `yaml:"scale_factor"`
		MinPeople   int     `yaml:"min_people"`
	} `yaml:"population"`
	Newspaper *domain.Newspaper `yaml:"newspaper"`
}

// LoadTownInit reads and validates the town initialization config.
func LoadTownInit(path string) (*TownInit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read town init config: %w", err)
	}
	var cfg TownInit
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse town init config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate town init config: %w", err)
	}
	return &cfg, nil
}

// Validate checks town identity and population sizing parameters.
func (c *TownInit) Validate() error {
	if c.Town.Locale == "" {
		return fmt.Errorf("town.locale is required")
	}
	if c.Town.Size == "" {
		return fmt.Errorf("town.size is required")
	}
	if c.Population.ScaleFactor <= 0 || c.Population.ScaleFactor > 1 {
		return fmt.Errorf("population.scale_factor must be in (0, 1], got %v", c.Population.ScaleFactor)
	}
	if c.Population.MinPeople < 1 {
		return fmt.Errorf("population.min_people must be at least 1, got %d", c.Population.MinPeople)
	}
	return nil
}
