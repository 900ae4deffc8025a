// internal/config/config.go
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	LogLevel          string        `mapstructure:"LOG_LEVEL"`
	HTTPAddr          string        `mapstructure:"HTTP_ADDR"`
	DBURL             string        `mapstructure:"DB_URL"`
	GithubToken       string        `mapstructure:"GITHUB_TOKEN"`
	GithubAPIURL      string        `mapstructure:"GITHUB_API_URL"`
	OpenAIKey         string        `mapstructure:"OPENAI_KEY"`
	OpenAIAPIURL      string        `mapstructure:"OPENAI_API_URL"`
	OpenAIModel       string        `mapstructure:"OPENAI_MODEL"`
	MirrorLanguages   []string      `mapstructure:"MIRROR_LANGUAGES"`
	MirrorInterval    time.Duration `mapstructure:"MIRROR_INTERVAL"`
	MirrorConcurrency int           `mapstructure:"MIRROR_CONCURRENCY"`
}

// LoadConfig reads configuration from file and/or environment variables.
func LoadConfig() (*Config, error) {
	// Set default values
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("HTTP_ADDR", ":8080")
	viper.SetDefault("GITHUB_API_URL", "https://api.github.com")
	viper.SetDefault("OPENAI_API_URL", "https://api.openai.com")
	viper.SetDefault("OPENAI_MODEL", "gpt-4o-mini-2024-07-18")
	viper.SetDefault("MIRROR_INTERVAL", "0")
	viper.SetDefault("MIRROR_CONCURRENCY", 5)

	// Load from .env file if it exists
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	_ = viper.ReadInConfig() // Ignore error if file not found

	// Bind environment variables
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Validate required fields
	if cfg.DBURL == "" {
		return nil, errors.New("DB_URL is a required configuration field")
	}
	if cfg.GithubToken == "" {
		return nil, errors.New("GITHUB_TOKEN is a required configuration field")
	}
	if cfg.OpenAIKey == "" {
		return nil, errors.New("OPENAI_KEY is a required configuration field")
	}
	if cfg.MirrorInterval > 0 && len(cfg.MirrorLanguages) == 0 {
		return nil, errors.New("MIRROR_LANGUAGES must be set when MIRROR_INTERVAL is enabled")
	}

	return &cfg, nil
}
