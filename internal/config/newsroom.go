package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SaveOptions controls how a batch treats the articles file.
type SaveOptions struct {
	BackupBeforeSave bool `yaml:"backup_before_save"`
	// ArticleLimit prunes the file to the newest N rows after a batch.
	// Zero disables pruning.
	ArticleLimit int `yaml:"article_limit"`
}

// Newsroom is the per-batch generation config.
type Newsroom struct {
	Articles struct {
		Count       int         `yaml:"count"`
		Delay       Duration    `yaml:"delay"`
		SaveOptions SaveOptions `yaml:"save_options"`
	} `yaml:"articles"`
}

// LoadNewsroom reads and validates the newsroom batch config.
func LoadNewsroom(path string) (*Newsroom, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read newsroom config: %w", err)
	}
	var cfg Newsroom
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse newsroom config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate newsroom config: %w", err)
	}
	return &cfg, nil
}

// Validate checks batch sizing.
func (c *Newsroom) Validate() error {
	if c.Articles.Count < 1 {
		return fmt.Errorf("articles.count must be at least 1, got %d", c.Articles.Count)
	}
	if c.Articles.Delay < 0 {
		return fmt.Errorf("articles.delay must not be negative")
	}
	if c.Articles.SaveOptions.ArticleLimit < 0 {
		return fmt.Errorf("articles.save_options.article_limit must not be negative")
	}
	return nil
}
