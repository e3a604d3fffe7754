package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/creasty/defaults"
	"github.com/fwojciec/reveal"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration. Flags override file values.
type Config struct {
	Delay       time.Duration `yaml:"delay" default:"50ms" validate:"gte=0"`
	ChunkSize   int           `yaml:"chunk_size" default:"1" validate:"gte=1"`
	Mode        string        `yaml:"mode" default:"character" validate:"oneof=character word"`
	AutoStart   *bool         `yaml:"auto_start" default:"true"`
	AutoAdvance bool          `yaml:"auto_advance"`
	LogLevel    string        `yaml:"log_level" default:"info" validate:"oneof=trace debug info warn error"`
}

// Options converts the config into player options.
func (c Config) Options() reveal.Options {
	return reveal.Options{
		ChunkDelay: c.Delay,
		ChunkSize:  c.ChunkSize,
		Mode:       reveal.Mode(c.Mode),
		AutoStart:  c.AutoStart == nil || *c.AutoStart,
	}
}

// Validate checks field constraints.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %w", reveal.ErrInvalidOptions, err)
	}
	return nil
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "reveal", "config.yaml")
}

// loadConfig reads path over the defaults. A missing file at the default
// location is not an error; a missing explicit path is.
func loadConfig(path string, explicit bool) (Config, error) {
	var cfg Config
	if err := defaults.Set(&cfg); err != nil {
		return Config{}, fmt.Errorf("apply config defaults: %w", err)
	}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
	case errors.Is(err, os.ErrNotExist) && !explicit:
		return cfg, nil
	default:
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
