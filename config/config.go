// Package config assembles the runtime configuration for the CLI and the
// examples from built-in defaults, an optional YAML file, a local .env file
// and the process environment, in that order of precedence.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/hupe1980/greetloop/agent"
	"github.com/hupe1980/greetloop/phoenix"
	"github.com/hupe1980/greetloop/tracing"
)

// Config carries every runtime setting. Defaults live in Default rather than
// envconfig default tags; tag defaults would overwrite YAML-provided values
// whenever the variable is unset.
type Config struct {
	// Model access. Keys never come from YAML files.
	OpenAIAPIKey    string `yaml:"-" envconfig:"OPENAI_API_KEY"`
	AnthropicAPIKey string `yaml:"-" envconfig:"ANTHROPIC_API_KEY"`

	// Conversation settings.
	Provider  string `yaml:"provider" envconfig:"GREETLOOP_PROVIDER"`
	Model     string `yaml:"model" envconfig:"GREETLOOP_MODEL"`
	MaxRounds int    `yaml:"max_rounds" envconfig:"GREETLOOP_MAX_ROUNDS"`

	// Phoenix settings.
	PhoenixHost       string `yaml:"phoenix_host" envconfig:"PHOENIX_HOST"`
	CollectorEndpoint string `yaml:"collector_endpoint" envconfig:"PHOENIX_COLLECTOR_ENDPOINT"`
	Project           string `yaml:"project" envconfig:"PHOENIX_PROJECT"`

	// Logging settings.
	LogLevel  string `yaml:"log_level" envconfig:"GREETLOOP_LOG_LEVEL"`
	LogFormat string `yaml:"log_format" envconfig:"GREETLOOP_LOG_FORMAT"`
}

// Default returns the built-in configuration. An empty Model means the
// chosen provider's adapter picks its own default model.
func Default() Config {
	return Config{
		Provider:          "openai",
		MaxRounds:         agent.DefaultMaxRounds,
		PhoenixHost:       phoenix.DefaultHost,
		CollectorEndpoint: tracing.DefaultEndpoint,
		Project:           tracing.DefaultProject,
		LogLevel:          "info",
		LogFormat:         "text",
	}
}

// Load assembles the configuration. The YAML file at path is optional; pass
// an empty path to skip it. A .env file in the working directory fills in
// variables the environment leaves unset, matching local-development setups
// where keys live next to the code.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}

		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	// Missing .env files are fine; godotenv never overrides variables the
	// environment already carries.
	_ = godotenv.Load()

	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("process environment: %w", err)
	}

	return cfg, nil
}

// Validate checks settings that have no usable zero value.
func (c Config) Validate() error {
	switch c.Provider {
	case "openai":
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is not set")
		}
	case "anthropic":
		if c.AnthropicAPIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is not set")
		}
	default:
		return fmt.Errorf("unknown provider: %q (use openai or anthropic)", c.Provider)
	}

	if c.MaxRounds < 1 {
		return fmt.Errorf("max rounds must be positive, got %d", c.MaxRounds)
	}

	return nil
}
