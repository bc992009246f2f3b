package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Author is one byline the newsroom can write under.
type Author struct {
	Name         string   `yaml:"name"`
	Persona      string   `yaml:"persona"`
	WritingStyle string   `yaml:"writing_style"`
	Specialties  []string `yaml:"specialties"`
}

// Specializes reports whether the author's specialties include category.
func (a Author) Specializes(category string) bool {
	for _, s := range a.Specialties {
		if s == category {
			return true
		}
	}
	return false
}

// Tone is a weighted tone directive passed to the model.
type Tone struct {
	Directive string  `yaml:"directive"`
	Weight    float64 `yaml:"weight"`
}

// FeatureWeight gates one class of town features in a story seed: an
// independent inclusion probability and an upper bound on sampled elements.
type FeatureWeight struct {
	Probability float64 `yaml:"probability"`
	MaxCount    int     `yaml:"max_count"`
}

// FeatureWeights covers the four town feature classes a seed can draw on.
type FeatureWeights struct {
	Streets    FeatureWeight `yaml:"streets"`
	Landmarks  FeatureWeight `yaml:"landmarks"`
	Businesses FeatureWeight `yaml:"businesses"`
	Events     FeatureWeight `yaml:"events"`
}

// AgeGroupWeight weights one age bracket for people sampling. Brackets are
// ordered so a fixed seed picks deterministically.
type AgeGroupWeight struct {
	Group  string  `yaml:"group"`
	Weight float64 `yaml:"weight"`
}

// TownDataSeed configures town feature sampling for story seeds.
type TownDataSeed struct {
	InclusionProbability float64        `yaml:"inclusion_probability"`
	FeatureWeights       FeatureWeights `yaml:"feature_weights"`
}

// PeopleDataSeed configures resident sampling for story seeds.
type PeopleDataSeed struct {
	InclusionProbability float64          `yaml:"inclusion_probability"`
	MinPeoplePerArticle  int              `yaml:"min_people_per_article"`
	MaxPeoplePerArticle  int              `yaml:"max_people_per_article"`
	AgeGroupWeights      []AgeGroupWeight `yaml:"age_group_weights"`
}

// ArticleSeed configures how much town and people data flows into a story.
type ArticleSeed struct {
	TownData   TownDataSeed   `yaml:"town_data"`
	PeopleData PeopleDataSeed `yaml:"people_data"`
}

// ArticleConfig drives story-seed sampling: categories, authors, tones, and
// the seed inclusion weights.
type ArticleConfig struct {
	Categories  []string    `yaml:"categories"`
	Authors     []Author    `yaml:"authors"`
	Tones       []Tone      `yaml:"tones"`
	ArticleSeed ArticleSeed `yaml:"article_seed"`
}

// LoadArticleConfig reads and validates the article generation config.
func LoadArticleConfig(path string) (*ArticleConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read article config: %w", err)
	}
	var cfg ArticleConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse article config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate article config: %w", err)
	}
	return &cfg, nil
}

// Validate checks category, author, tone, and seed weight tables.
func (c *ArticleConfig) Validate() error {
	if len(c.Categories) == 0 {
		return fmt.Errorf("categories must not be empty")
	}
	if len(c.Authors) == 0 {
		return fmt.Errorf("authors must not be empty")
	}
	for i, a := range c.Authors {
		if a.Name == "" {
			return fmt.Errorf("authors[%d]: name is required", i)
		}
	}
	if len(c.Tones) == 0 {
		return fmt.Errorf("tones must not be empty")
	}
	for i, t := range c.Tones {
		if t.Weight <= 0 {
			return fmt.Errorf("tones[%d] (%q): weight must be positive, got %v", i, t.Directive, t.Weight)
		}
	}

	seed := c.ArticleSeed
	if err := validateProbability("article_seed.town_data.inclusion_probability", seed.TownData.InclusionProbability); err != nil {
		return err
	}
	if err := validateProbability("article_seed.people_data.inclusion_probability", seed.PeopleData.InclusionProbability); err != nil {
		return err
	}
	features := map[string]FeatureWeight{
		"streets":    seed.TownData.FeatureWeights.Streets,
		"landmarks":  seed.TownData.FeatureWeights.Landmarks,
		"businesses": seed.TownData.FeatureWeights.Businesses,
		"events":     seed.TownData.FeatureWeights.Events,
	}
	for name, fw := range features {
		if err := validateProbability("article_seed.town_data.feature_weights."+name+".probability", fw.Probability); err != nil {
			return err
		}
		if fw.MaxCount < 0 {
			return fmt.Errorf("article_seed.town_data.feature_weights.%s.max_count must not be negative", name)
		}
	}

	people := seed.PeopleData
	if people.MinPeoplePerArticle < 0 {
		return fmt.Errorf("article_seed.people_data.min_people_per_article must not be negative")
	}
	if people.MaxPeoplePerArticle < people.MinPeoplePerArticle {
		return fmt.Errorf("article_seed.people_data: max_people_per_article (%d) below min (%d)",
			people.MaxPeoplePerArticle, people.MinPeoplePerArticle)
	}
	for i, ag := range people.AgeGroupWeights {
		if ag.Group == "" {
			return fmt.Errorf("article_seed.people_data.age_group_weights[%d]: group is required", i)
		}
		if ag.Weight <= 0 {
			return fmt.Errorf("article_seed.people_data.age_group_weights[%d] (%s): weight must be positive", i, ag.Group)
		}
	}
	return nil
}

func validateProbability(name string, p float64) error {
	if p < 0 || p > 1 {
		return fmt.Errorf("%s must be in [0, 1], got %v", name, p)
	}
	return nil
}
