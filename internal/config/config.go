// Package config holds the biblec configuration, loaded from the TOML
// config file and BIBLEC_* environment variables through viper.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config is the resolved biblec configuration. Provider credentials are
// deliberately not part of it; they live in each provider's environment
// variable.
type Config struct {
	Model             string   `toml:"model" mapstructure:"model"` // "provider:model", e.g. "openai:gpt-4o-mini"
	MaxTokens         int      `toml:"max_tokens" mapstructure:"max_tokens"`
	Temperature       float64  `toml:"temperature" mapstructure:"temperature"`
	MaxRecentMessages int      `toml:"max_recent_messages" mapstructure:"max_recent_messages"`
	DataDir           string   `toml:"data_dir" mapstructure:"data_dir"`
	PromptDirs        []string `toml:"prompt_dirs" mapstructure:"prompt_dirs"`
	KJVSource         string   `toml:"kjv_source" mapstructure:"kjv_source"`
}

// NewDefaultConfig returns the built-in defaults.
func NewDefaultConfig(promptDir string) *Config {
	return &Config{
		Model:             "openai:gpt-4o-mini",
		MaxTokens:         256,
		Temperature:       0.7,
		MaxRecentMessages: 16,
		PromptDirs:        []string{promptDir},
		KJVSource:         "",
	}
}

// LoadConfig unmarshals the merged viper state.
func LoadConfig() (*Config, error) {
	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return config, nil
}

// Provider extracts the provider name from the model string.
func (c *Config) Provider() (string, error) {
	provider, _, err := ParseModelString(c.Model)
	return provider, err
}

// ModelName extracts the bare model name from the model string.
func (c *Config) ModelName() (string, error) {
	_, model, err := ParseModelString(c.Model)
	return model, err
}
