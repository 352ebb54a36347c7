package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Layout of config files: <dir>/.launchpad/config.yaml, where dir is the home
// directory (global) or the working directory (project).
const (
	DirName  = ".launchpad"
	FileName = "config.yaml"

	// EnvDatabasePath overrides database.path when set.
	EnvDatabasePath = "LAUNCHPAD_DB"
)

// Config represents the launchpad configuration.
type Config struct {
	Version        string          `mapstructure:"version" yaml:"version"`
	Owner          string          `mapstructure:"owner" yaml:"owner"`
	CurrentProject string          `mapstructure:"current_project" yaml:"current_project,omitempty"` // LAUNCH-XXX
	Database       DatabaseConfig  `mapstructure:"database" yaml:"database"`
	Surfacing      SurfacingConfig `mapstructure:"surfacing" yaml:"surfacing"`
	Streak         StreakConfig    `mapstructure:"streak" yaml:"streak"`
	Logging        LoggingConfig   `mapstructure:"logging" yaml:"logging"`
}

// DatabaseConfig locates the sqlite database.
type DatabaseConfig struct {
	Path string `mapstructure:"path" yaml:"path,omitempty"`
}

// SurfacingConfig tunes task surfacing.
type SurfacingConfig struct {
	DefaultCount int `mapstructure:"default_count" yaml:"default_count"`
}

// StreakConfig tunes streak computation.
type StreakConfig struct {
	WindowDays int `mapstructure:"window_days" yaml:"window_days"`
}

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	Level string `mapstructure:"level" yaml:"level"` // debug, info, warn, error
	JSON  bool   `mapstructure:"json" yaml:"json"`
	File  string `mapstructure:"file" yaml:"file,omitempty"` // extra output path
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Version: "1",
		Surfacing: SurfacingConfig{
			DefaultCount: 5,
		},
		Streak: StreakConfig{
			WindowDays: 60,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load merges defaults, the global config and the project config found in the
// working directory, in that order. Missing files are not an error.
func Load() (*Config, error) {
	var dirs []string
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, home)
	}
	if cwd, err := os.Getwd(); err == nil {
		dirs = append(dirs, cwd)
	}
	return LoadFrom(dirs...)
}

// LoadFrom merges the config files of dirs over the defaults; later dirs win.
func LoadFrom(dirs ...string) (*Config, error) {
	cfg := DefaultConfig()

	for _, dir := range dirs {
		path := filepath.Join(dir, DirName, FileName)
		if err := loadFile(path, cfg); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	if dbPath := os.Getenv(EnvDatabasePath); dbPath != "" {
		cfg.Database.Path = dbPath
	}
	if cfg.Database.Path == "" {
		path, err := DefaultDatabasePath()
		if err != nil {
			return nil, err
		}
		cfg.Database.Path = path
	}

	return cfg, nil
}

// LoadDir reads only dir's config file over the defaults, without env
// overrides or path resolution. Use it to edit and save one file.
func LoadDir(dir string) (*Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(dir, DirName, FileName)
	if err := loadFile(path, cfg); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return err
	}

	return v.Unmarshal(cfg)
}

// SaveConfig writes config.yaml under dir/.launchpad.
func SaveConfig(dir string, cfg *Config) error {
	configDir := filepath.Join(dir, DirName)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s dir: %w", DirName, err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(configDir, FileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// DefaultDatabasePath returns ~/.launchpad/launchpad.db.
func DefaultDatabasePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, DirName, "launchpad.db"), nil
}
