// Package config loads and persists genui workspace configuration from
// .genui/config.yaml. Missing files fall back to defaults so a fresh
// workspace works without any setup.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all genui configuration.
type Config struct {
	// Voice capture settings
	Voice VoiceConfig `yaml:"voice"`

	// Assistant response settings
	Assistant AssistantConfig `yaml:"assistant"`

	// Utterance history storage
	History HistoryConfig `yaml:"history"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// VoiceConfig configures the silence-commit capture pipeline.
type VoiceConfig struct {
	// How long the transcript must stay unchanged before it is
	// committed as a finished utterance.
	QuietPeriod string `yaml:"quiet_period"`

	// Transcripts at or below this length are dropped as noise.
	MinCommitLength int `yaml:"min_commit_length"`
}

// AssistantConfig configures spoken/displayed confirmations.
type AssistantConfig struct {
	// How long a confirmation banner stays on screen.
	ConfirmationDuration string `yaml:"confirmation_duration"`

	// Default reminder time attached to new habits.
	HabitTime string `yaml:"habit_time"`
}

// HistoryConfig configures the utterance transcript store.
type HistoryConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// LoggingConfig mirrors the logging section read by internal/logging.
type LoggingConfig struct {
	Debug      bool            `yaml:"debug"`
	Categories map[string]bool `yaml:"categories"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Voice: VoiceConfig{
			QuietPeriod:     "750ms",
			MinCommitLength: 2,
		},
		Assistant: AssistantConfig{
			ConfirmationDuration: "5s",
			HabitTime:            "09:00",
		},
		History: HistoryConfig{
			DatabasePath: ".genui/history.db",
		},
	}
}

// Path returns the config file location inside a workspace.
func Path(workspace string) string {
	return filepath.Join(workspace, ".genui", "config.yaml")
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return defaults if config file doesn't exist
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("GENUI_QUIET_PERIOD"); v != "" {
		c.Voice.QuietPeriod = v
	}
	if v := os.Getenv("GENUI_HISTORY_DB"); v != "" {
		c.History.DatabasePath = v
	}
}

// HistoryPath resolves the history database path against the
// workspace when it is relative.
func (c *Config) HistoryPath(workspace string) string {
	if filepath.IsAbs(c.History.DatabasePath) {
		return c.History.DatabasePath
	}
	return filepath.Join(workspace, c.History.DatabasePath)
}

// GetQuietPeriod returns the voice quiet period as a duration.
func (c *Config) GetQuietPeriod() time.Duration {
	d, err := time.ParseDuration(c.Voice.QuietPeriod)
	if err != nil || d <= 0 {
		return 750 * time.Millisecond
	}
	return d
}

// GetConfirmationDuration returns how long confirmations are shown.
func (c *Config) GetConfirmationDuration() time.Duration {
	d, err := time.ParseDuration(c.Assistant.ConfirmationDuration)
	if err != nil || d <= 0 {
		return 5 * time.Second
	}
	return d
}
