package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// userConfigFile is the name of the user configuration file (sibling to .tn/).
	userConfigFile = ".tnconfig.yaml"

	// Default configuration values
	DefaultCanvasWidth  = 600
	DefaultCanvasHeight = 300
	DefaultPageSize     = 10
	DefaultListen       = ":8080"
	DefaultLogLevel     = "info"
)

// Config represents user configuration from .tnconfig.yaml.
// This file is user-managed and never written by tn.
type Config struct {
	// CanvasWidth is the drawing surface width in pixels.
	CanvasWidth int `yaml:"canvas_width"`

	// CanvasHeight is the drawing surface height in pixels.
	CanvasHeight int `yaml:"canvas_height"`

	// PageSize is the number of todos shown per page.
	PageSize int `yaml:"page_size"`

	// Listen is the address `tn serve` binds to.
	Listen string `yaml:"listen"`

	// LogLevel is used when --log-level is not given.
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		CanvasWidth:  DefaultCanvasWidth,
		CanvasHeight: DefaultCanvasHeight,
		PageSize:     DefaultPageSize,
		Listen:       DefaultListen,
		LogLevel:     DefaultLogLevel,
	}
}

// LoadConfig loads .tnconfig.yaml if it exists, otherwise returns defaults.
// Partial config files are merged with defaults.
func (s *Storage) LoadConfig() (*Config, error) {
	configPath := s.ConfigPath()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", userConfigFile, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", userConfigFile, err)
	}

	if cfg.CanvasWidth <= 0 || cfg.CanvasHeight <= 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d in %s", cfg.CanvasWidth, cfg.CanvasHeight, userConfigFile)
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}

	return cfg, nil
}

// ConfigPath returns the path to the user config file.
func (s *Storage) ConfigPath() string {
	return filepath.Join(s.root, userConfigFile)
}
