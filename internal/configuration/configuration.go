package configuration

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// AppConfig represents the complete application configuration.
type AppConfig struct {
	// Logger — logger component configuration
	Logger LoggerConfig `mapstructure:"logger"`
	// Server — HTTP server configuration
	Server ServerConfig `mapstructure:"server"`
	// Catalog — building dataset configuration
	Catalog CatalogConfig `mapstructure:"catalog"`
	// Scoring — scoring engine configuration
	Scoring ScoringConfig `mapstructure:"scoring"`
	// Session — per-user session store configuration
	Session SessionConfig `mapstructure:"session"`
	// History — scoring history dataset configuration
	History HistoryConfig `mapstructure:"history"`
	// Export — optional export target configuration
	Export ExportConfig `mapstructure:"export"`
}

// LoggerConfig defines logging settings.
type LoggerConfig struct {
	// Level — log level: debug, info, warn, warning, error.
	// Value is case-insensitive but checked in lowercase.
	Level string `mapstructure:"level"`
}

// ServerConfig contains HTTP server parameters.
type ServerConfig struct {
	// Address — address and port where the server will listen (e.g., ":8080").
	Address string `mapstructure:"address"`
	// Static — path to directory with static files served by the server.
	// Can be empty if static serving is not required.
	Static string `mapstructure:"static"`
}

// CatalogConfig defines the building dataset sources.
type CatalogConfig struct {
	// Metadata — path to the raw building metadata JSON file.
	Metadata string `mapstructure:"metadata"`
	// Schema — optional path to a JSON schema overriding the embedded
	// per-record validation schema.
	Schema string `mapstructure:"schema"`
	// Translations — path to the translations directory. Empty disables
	// translation; keys are passed through unchanged.
	Translations string `mapstructure:"translations"`
}

// ScoringConfig defines scoring engine parameters.
type ScoringConfig struct {
	// Presets — path to the YAML file with shipped weight presets.
	// Optional; without it no presets are offered.
	Presets string `mapstructure:"presets"`
}

// SessionConfig defines the session store parameters.
type SessionConfig struct {
	// Ttl — inactivity window after which a session is dropped
	// (time.Duration, e.g. "30m", "2h"). Default 30m.
	Ttl time.Duration `mapstructure:"ttl"`
	// HistoryLength — number of scoring passes remembered per session.
	// Default 16.
	HistoryLength int `mapstructure:"history_length"`
}

// HistoryConfig defines the scoring history dataset parameters.
type HistoryConfig struct {
	// File — path of the JSONL history file. Empty disables collection.
	File string `mapstructure:"file"`
	// Size — maximal history file size in MB before rotation (default 100).
	Size int `mapstructure:"size"`
	// Amount — number of rotated files to keep (default 20).
	Amount int `mapstructure:"amount"`
}

// ExportConfig defines optional export targets.
type ExportConfig struct {
	// Sqlite — path of the SQLite snapshot database. Empty disables the
	// snapshot endpoint.
	Sqlite string `mapstructure:"sqlite"`
}

// Validate checks the correctness of the entire application configuration.
// Calls validation for each nested structure and returns the first detected
// error. Returns nil if the configuration is valid.
func (c *AppConfig) Validate() error {
	if err := c.Logger.Validate(); err != nil {
		return err
	}

	if err := c.Server.Validate(); err != nil {
		return err
	}

	if err := c.Catalog.Validate(); err != nil {
		return err
	}

	if err := c.Session.Validate(); err != nil {
		return err
	}

	if err := c.History.Validate(); err != nil {
		return err
	}

	return nil
}

// Validate checks the correctness of the logger configuration.
// Supported values: debug, info, warn, warning, error (case-insensitive).
func (l *LoggerConfig) Validate() error {
	if l.Level == "" {
		return errors.New("logger.level: must be specified")
	}

	valid := map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}
	if !valid[strings.ToLower(l.Level)] {
		return fmt.Errorf("logger.level: unsupported level '%s'", l.Level)
	}

	return nil
}

// Validate checks the correctness of the server configuration.
// Verifies that the server address is set.
func (n *ServerConfig) Validate() error {
	if n.Address == "" {
		return errors.New("server.address: must be specified")
	}

	return nil
}

// Validate checks the catalog configuration. The metadata file path is the
// only required field.
func (c *CatalogConfig) Validate() error {
	if c.Metadata == "" {
		return errors.New("catalog.metadata: must be specified")
	}

	return nil
}

// Validate fills session defaults and rejects negative values.
func (s *SessionConfig) Validate() error {
	if s.Ttl < 0 {
		return errors.New("session.ttl: must not be negative")
	}
	if s.Ttl == 0 {
		s.Ttl = 30 * time.Minute
	}

	if s.HistoryLength < 0 {
		return errors.New("session.history_length: must not be negative")
	}
	if s.HistoryLength == 0 {
		s.HistoryLength = 16
	}

	return nil
}

// Validate fills history defaults.
func (h *HistoryConfig) Validate() error {
	if h.Size == 0 {
		h.Size = 100
	}

	if h.Amount == 0 {
		h.Amount = 20
	}

	return nil
}

// LoadConfig loads configuration from the specified file using Viper.
// Supports YAML format. Also includes environment variable loading
// (AutomaticEnv), which can override values from the file.
//
// Parameter configPath — path to the configuration file.
//
// Returns a pointer to AppConfig or an error if:
// - the file is not found or inaccessible
// - the configuration has invalid format
// - one of the sections fails validation
func LoadConfig(configPath string) (*AppConfig, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config AppConfig
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}
