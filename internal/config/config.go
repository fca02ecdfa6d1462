// Package config provides configuration management for CH-PMS.
// Settings live in a TOML file; the batch surface is driven by
// environment variables layered on top (see env.go).
package config

import (
	"errors"
	"fmt"
)

// Config holds the complete application configuration.
type Config struct {
	Hospital HospitalConfig `toml:"hospital"`
	Display  DisplayConfig  `toml:"display"`
	Logging  LoggingConfig  `toml:"logging"`
	Storage  StorageConfig  `toml:"storage"`
	Auth     AuthConfig     `toml:"auth"`
}

// HospitalConfig identifies the installation.
type HospitalConfig struct {
	Name string `toml:"name"`
}

// DisplayConfig controls TUI appearance.
type DisplayConfig struct {
	ColorScheme ColorScheme `toml:"color_scheme"`
}

// ColorScheme defines the terminal color palette.
type ColorScheme string

const (
	ColorSchemeGreenPhosphor ColorScheme = "green_phosphor"
	ColorSchemeAmber         ColorScheme = "amber"
	ColorSchemeWhite         ColorScheme = "white"
)

// LoggingConfig controls application logging.
type LoggingConfig struct {
	Level LogLevel `toml:"level"`
	File  string   `toml:"file"`
}

// LogLevel defines logging verbosity.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// StorageConfig controls where records and reports are written.
type StorageConfig struct {
	DataFile  string `toml:"data_file"`
	OutputDir string `toml:"output_dir"`
}

// AuthConfig holds the static credential pair gating the interactive menu.
// Not a security boundary; the batch surface is not gated.
type AuthConfig struct {
	Username string `toml:"username"`
	Password string `toml:"password"`
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	var errs []error

	if c.Hospital.Name == "" {
		errs = append(errs, errors.New("hospital: name is required"))
	}

	if err := c.Display.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("display: %w", err))
	}

	if err := c.Logging.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("logging: %w", err))
	}

	if c.Storage.DataFile == "" {
		errs = append(errs, errors.New("storage: data_file is required"))
	}
	if c.Storage.OutputDir == "" {
		errs = append(errs, errors.New("storage: output_dir is required"))
	}

	if c.Auth.Username == "" || c.Auth.Password == "" {
		errs = append(errs, errors.New("auth: username and password are required"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Validate checks that the display configuration is valid.
func (d *DisplayConfig) Validate() error {
	switch d.ColorScheme {
	case "", ColorSchemeGreenPhosphor, ColorSchemeAmber, ColorSchemeWhite:
		return nil
	default:
		return fmt.Errorf("invalid color_scheme: %s", d.ColorScheme)
	}
}

// Validate checks that the logging configuration is valid.
func (l *LoggingConfig) Validate() error {
	switch l.Level {
	case "", LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return nil
	default:
		return fmt.Errorf("invalid log level: %s", l.Level)
	}
}

// Default returns a configuration with sensible default values.
func Default() *Config {
	return &Config{
		Hospital: HospitalConfig{
			Name: "Capital Hospital",
		},
		Display: DisplayConfig{
			ColorScheme: ColorSchemeGreenPhosphor,
		},
		Logging: LoggingConfig{
			Level: LogLevelInfo,
			File:  "logs/chpms.log",
		},
		Storage: StorageConfig{
			DataFile:  "hospital_data.json",
			OutputDir: "output",
		},
		Auth: AuthConfig{
			Username: "admin",
			Password: "admin",
		},
	}
}
