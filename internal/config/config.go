// Package config loads gitward settings from a YAML file layered over
// built-in defaults. A missing file is not an error; the defaults are
// complete on their own.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig wraps all validation failures.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the root configuration.
type Config struct {
	Log  LogConfig  `yaml:"log"`
	Push PushConfig `yaml:"push"`
}

// LogConfig controls structured logging output.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
	// File receives the log stream; empty discards it. The terminal
	// owns stderr, so logging never goes there while the UI runs.
	File string `yaml:"file"`
}

// PushConfig controls push defaults and progress publication.
type PushConfig struct {
	// DefaultRemote is used when a push request names no remote.
	DefaultRemote string `yaml:"default_remote"`
	// ProgressDelay is an optional pause after each published progress
	// update. Zero publishes at full speed.
	ProgressDelay time.Duration `yaml:"progress_delay"`
	// NotifyBuffer sizes the completion notification queue.
	NotifyBuffer int `yaml:"notify_buffer"`
	// ForceWithLease makes force pushes use --force-with-lease instead
	// of --force, refusing to overwrite refs moved by someone else.
	ForceWithLease bool `yaml:"force_with_lease"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Log: LogConfig{
			Level: "info",
			File:  "",
		},
		Push: PushConfig{
			DefaultRemote:  "origin",
			ProgressDelay:  0,
			NotifyBuffer:   16,
			ForceWithLease: true,
		},
	}
}

// Load reads the YAML file at path over the defaults. An empty path or
// a missing file yields the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks field values without touching the filesystem.
func (c Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.Log.Level)
	}

	if c.Push.DefaultRemote == "" {
		return fmt.Errorf("%w: default remote must not be empty", ErrInvalidConfig)
	}
	if c.Push.ProgressDelay < 0 {
		return fmt.Errorf("%w: progress delay must not be negative", ErrInvalidConfig)
	}
	if c.Push.NotifyBuffer < 1 {
		return fmt.Errorf("%w: notify buffer must be at least 1", ErrInvalidConfig)
	}

	return nil
}
