// Package config provides configuration management for tidyfmt.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"
)

// Color modes accepted by the color setting
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// AppConfig holds user defaults stored in ~/.config/tidyfmt/config.yaml.
// Command line flags can only narrow these defaults (e.g. --no-globs).
type AppConfig struct {
	Color string `yaml:"color"`
	Globs bool   `yaml:"globs"`
	Trim  bool   `yaml:"trim"`
}

const (
	appConfigDir  = ".config/tidyfmt"
	appConfigFile = "config.yaml"
)

// DefaultAppConfig returns the configuration used when no file exists.
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		Globs: true,
		Trim:  true,
		Color: ColorAuto,
	}
}

// LoadAppConfig loads the app configuration from ~/.config/tidyfmt/config.yaml.
// A missing file is not an error; the defaults are returned instead.
func LoadAppConfig() (*AppConfig, error) {
	configPath := AppConfigPath()
	if configPath == "" {
		return DefaultAppConfig(), nil
	}

	cfg, err := LoadAppConfigFrom(configPath)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultAppConfig(), nil
	}

	return cfg, err
}

// LoadAppConfigFrom loads the app configuration from an explicit path.
// Keys absent from the file keep their default values.
func LoadAppConfigFrom(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is from user home dir or --config flag, intentional
	if err != nil {
		return nil, fmt.Errorf("reading app config: %w", err)
	}

	cfg := DefaultAppConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing app config %s: %w", path, errors.Join(ErrInvalidConfig, err))
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks field values that yaml cannot check by itself.
func (a *AppConfig) Validate() error {
	switch a.Color {
	case ColorAuto, ColorAlways, ColorNever:
		return nil
	default:
		return NewFieldError("color", a.Color, ErrInvalidConfig)
	}
}

// Settings converts the stored defaults into resolve settings.
func (a *AppConfig) Settings() Settings {
	return DefaultSettings().
		WithAllowGlobs(a.Globs).
		WithTrimContents(a.Trim)
}

// SaveAppConfig saves the app configuration to ~/.config/tidyfmt/config.yaml
func SaveAppConfig(cfg *AppConfig) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("getting home directory: %w", err)
	}

	return SaveAppConfigTo(cfg, filepath.Join(home, appConfigDir, appConfigFile))
}

// SaveAppConfigTo writes the app configuration to path, replacing any
// existing file atomically.
func SaveAppConfigTo(cfg *AppConfig, path string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	content := fmt.Sprintf("# tidyfmt app configuration\n# Command line flags such as --no-globs override these defaults\n\n%s", string(data))

	if err := atomic.WriteFile(path, bytes.NewReader([]byte(content))); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// atomic.WriteFile keeps the mode of an existing file, new files get 0600
	if err := os.Chmod(path, 0600); err != nil {
		return fmt.Errorf("setting config permissions: %w", err)
	}

	return nil
}

// AppConfigPath returns the path where the app config is stored.
// Returns an empty string if the home directory cannot be determined.
func AppConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, appConfigDir, appConfigFile)
}
