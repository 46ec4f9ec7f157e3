// Package config provides unified configuration loading for chromaroot.
// It supports loading from YAML files and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/nvandessel/chromaroot/internal/constants"
	"gopkg.in/yaml.v3"
)

// ChromaConfig contains all chromaroot configuration settings.
type ChromaConfig struct {
	// Color contains defaults for the color mapping commands.
	Color ColorConfig `json:"color" yaml:"color"`

	// Store selects the palette catalog backend.
	Store StoreConfig `json:"store" yaml:"store"`

	// Logging contains settings for operational and conversion logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`

	// Backup controls palette snapshot retention.
	Backup BackupConfig `json:"backup" yaml:"backup"`
}

// ColorConfig holds defaults applied when a command omits a flag.
type ColorConfig struct {
	// BaseAngle is the number of degrees per rotation step.
	BaseAngle int `json:"base_angle" yaml:"base_angle"`

	// WheelSteps is the number of swatches in a generated wheel.
	WheelSteps int `json:"wheel_steps" yaml:"wheel_steps"`
}

// StoreConfig configures the palette catalog.
type StoreConfig struct {
	// Backend is "sqlite" (default) or "memory".
	Backend string `json:"backend" yaml:"backend"`
}

// LoggingConfig configures chromaroot's logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or "trace".
	// "debug" enables the conversion trace in .chromaroot/conversions.jsonl.
	Level string `json:"level" yaml:"level"`
}

// BackupConfig configures palette snapshots.
type BackupConfig struct {
	Retention RetentionConfig `json:"retention" yaml:"retention"`
}

// RetentionConfig decides which snapshots survive a new backup.
// A snapshot is kept if any configured rule keeps it.
type RetentionConfig struct {
	// Distinct prunes a snapshot when a newer one holds the same palette,
	// before the count and age rules run.
	Distinct bool `json:"distinct" yaml:"distinct"`

	// MaxCount keeps the N most recent snapshots. 0 disables the rule.
	MaxCount int `json:"max_count" yaml:"max_count"`

	// MaxAge keeps snapshots younger than this, e.g. "30d", "2w" or "720h".
	MaxAge string `json:"max_age,omitempty" yaml:"max_age,omitempty"`
}

// Default returns a ChromaConfig with sensible defaults.
func Default() *ChromaConfig {
	return &ChromaConfig{
		Color: ColorConfig{
			BaseAngle:  constants.DefaultBaseAngle,
			WheelSteps: constants.DefaultWheelSteps,
		},
		Store: StoreConfig{
			Backend: "sqlite",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Backup: BackupConfig{
			Retention: RetentionConfig{
				Distinct: true,
				MaxCount: 10,
			},
		},
	}
}

// DefaultPath returns ~/.chromaroot/config.yaml.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, constants.DataDirName, "config.yaml"), nil
}

// Load loads configuration from the default location and environment variables.
// Order: defaults -> ~/.chromaroot/config.yaml -> environment variables
func Load() (*ChromaConfig, error) {
	config := Default()

	if configPath, err := DefaultPath(); err == nil {
		if _, statErr := os.Stat(configPath); statErr == nil {
			fileConfig, loadErr := LoadFromFile(configPath)
			if loadErr != nil {
				return nil, fmt.Errorf("loading config file: %w", loadErr)
			}
			config = fileConfig
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// LoadPath loads path (which must exist) and applies environment overrides.
// An empty path behaves like Load.
func LoadPath(path string) (*ChromaConfig, error) {
	if path == "" {
		return Load()
	}
	config, err := LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	applyEnvOverrides(config)
	return config, nil
}

// LoadFromFile loads configuration from a specific YAML file.
// Fields absent from the file keep their defaults.
func LoadFromFile(path string) (*ChromaConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return config, nil
}

// Validate checks that the configuration is valid.
func (c *ChromaConfig) Validate() error {
	if c.Color.WheelSteps <= 0 || c.Color.WheelSteps > constants.MaxWheelSteps {
		return fmt.Errorf("wheel_steps must be between 1 and %d, got %d", constants.MaxWheelSteps, c.Color.WheelSteps)
	}

	validBackends := map[string]bool{"sqlite": true, "memory": true}
	if !validBackends[c.Store.Backend] {
		return fmt.Errorf("invalid store backend: %s (valid: sqlite, memory)", c.Store.Backend)
	}

	validLevels := map[string]bool{"info": true, "debug": true, "trace": true}
	if c.Logging.Level != "" && !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, or empty for default)", c.Logging.Level)
	}

	if c.Backup.Retention.MaxCount < 0 {
		return fmt.Errorf("backup.retention.max_count must not be negative, got %d", c.Backup.Retention.MaxCount)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Unparseable numbers are ignored.
func applyEnvOverrides(config *ChromaConfig) {
	if v := os.Getenv("CHROMAROOT_BASE_ANGLE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Color.BaseAngle = n
		}
	}

	if v := os.Getenv("CHROMAROOT_WHEEL_STEPS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Color.WheelSteps = n
		}
	}

	if v := os.Getenv("CHROMAROOT_STORE"); v != "" {
		config.Store.Backend = v
	}

	if v := os.Getenv("CHROMAROOT_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
}
