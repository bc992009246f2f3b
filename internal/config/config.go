// Package config loads service settings from the environment and the YAML
// tables that drive town, population, and article generation.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string        `env:"HTTP_ADDR" envDefault:":8080"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"LOG_FORMAT" envDefault:"json"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// DataDir holds town.json, people.csv, and articles.csv.
	DataDir string `env:"DATA_DIR" envDefault:"data"`

	TownTablesPath    string `env:"TOWN_TABLES_PATH" envDefault:"configs/town_tables.yaml"`
	TownInitPath      string `env:"TOWN_INIT_PATH" envDefault:"configs/town_init.yaml"`
	ArticleConfigPath string `env:"ARTICLE_CONFIG_PATH" envDefault:"configs/article.yaml"`
	NewsroomPath      string `env:"NEWSROOM_CONFIG_PATH" envDefault:"configs/newsroom.yaml"`

	PublishInterval time.Duration `env:"PUBLISH_INTERVAL" envDefault:"24h"`

	// OpenAI completion settings. When disabled the newsroom writes
	// placeholder articles instead of calling the model.
	OpenAIEnabled         bool          `env:"OPENAI_ENABLED" envDefault:"true"`
	OpenAIModel           string        `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	OpenAITemperature     float64       `env:"OPENAI_TEMPERATURE" envDefault:"0.8"`
	OpenAIMaxTokens       int64         `env:"OPENAI_MAX_TOKENS" envDefault:"1500"`
	OpenAITopP            float64       `env:"OPENAI_TOP_P" envDefault:"1.0"`
	OpenAITimeout         time.Duration `env:"OPENAI_TIMEOUT" envDefault:"60s"`
	OpenAIBaseURL         string        `env:"OPENAI_BASE_URL"`
	OpenAICredentialsFile string        `env:"OPENAI_CREDENTIALS_FILE"`

	// Kafka syndication. Publishing is enabled only when brokers are set.
	KafkaBrokers []string `env:"KAFKA_BROKERS"`
	KafkaTopic   string   `env:"KAFKA_TOPIC" envDefault:"gazette-articles"`
}

// SyndicationEnabled reports whether generated articles should also be
// published to Kafka.
func (c *Config) SyndicationEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.ShutdownTimeout <= 0 {
		return nil, errors.New("SHUTDOWN_TIMEOUT must be positive")
	}
	if cfg.PublishInterval <= 0 {
		return nil, errors.New("PUBLISH_INTERVAL must be positive")
	}
	if cfg.OpenAIEnabled {
		if cfg.OpenAIModel == "" {
			return nil, errors.New("OPENAI_MODEL is required when OPENAI_ENABLED is true")
		}
		if cfg.OpenAITimeout <= 0 {
			return nil, errors.New("OPENAI_TIMEOUT must be positive")
		}
		if cfg.OpenAITemperature < 0 || cfg.OpenAITemperature > 2 {
			return nil, errors.New("OPENAI_TEMPERATURE must be in [0, 2]")
		}
		if cfg.OpenAITopP <= 0 || cfg.OpenAITopP > 1 {
			return nil, errors.New("OPENAI_TOP_P must be in (0, 1]")
		}
		if cfg.OpenAIMaxTokens <= 0 {
			return nil, errors.New("OPENAI_MAX_TOKENS must be positive")
		}
	}
	if cfg.SyndicationEnabled() && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_TOPIC is required when KAFKA_BROKERS is set")
	}

	return cfg, nil
}
