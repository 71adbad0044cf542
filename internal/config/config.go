// Package config persists the application's single configuration record:
// which shared folder the scheduling documents live in. The record is set
// once ("select folder") and may be changed later ("change folder"); every
// document name resolves relative to it. An empty record puts the
// synchronization layer into degraded no-op mode instead of erroring.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "yaml"
	appDirName = "schedsync"
)

// Config represents the persisted application configuration.
type Config struct {
	Folder FolderConfig `mapstructure:"folder"`
}

// FolderConfig records the shared folder selection.
type FolderConfig struct {
	// Path is the root directory all document names resolve against.
	// Empty means no folder has been selected yet.
	Path string `mapstructure:"path"`
}

// Dir returns the directory holding the configuration file.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(base, appDirName), nil
}

// Load reads the persisted configuration. A missing file is not an error:
// it yields the zero configuration (no folder selected).
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.SetDefault("folder.path", "")

	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	v.AddConfigPath(dir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// SetFolder persists a new shared folder selection. The path is stored
// absolute so later invocations from other working directories resolve the
// same documents.
func SetFolder(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve folder path: %w", err)
	}

	dir, err := Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(dir)
	_ = v.ReadInConfig() // keep any other keys a future version may add

	v.Set("folder.path", abs)
	target := filepath.Join(dir, configName+"."+configType)
	if err := v.WriteConfigAs(target); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
