package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gitward.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Push.DefaultRemote != "origin" {
		t.Errorf("expected default remote, got %q", cfg.Push.DefaultRemote)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
log:
  level: debug
  file: /tmp/gitward.log
push:
  default_remote: upstream
  progress_delay: 50ms
  force_with_lease: false
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Log.Level != "debug" || cfg.Log.File != "/tmp/gitward.log" {
		t.Errorf("log section not applied: %+v", cfg.Log)
	}
	if cfg.Push.DefaultRemote != "upstream" {
		t.Errorf("expected upstream, got %q", cfg.Push.DefaultRemote)
	}
	if cfg.Push.ProgressDelay != 50*time.Millisecond {
		t.Errorf("expected 50ms delay, got %v", cfg.Push.ProgressDelay)
	}
	if cfg.Push.ForceWithLease {
		t.Error("expected force_with_lease override to false")
	}
	// Untouched keys keep their defaults.
	if cfg.Push.NotifyBuffer != Default().Push.NotifyBuffer {
		t.Errorf("expected default buffer, got %d", cfg.Push.NotifyBuffer)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := writeConfig(t, "log: [broken")
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		valid  bool
	}{
		{"defaults", func(*Config) {}, true},
		{"warn level", func(c *Config) { c.Log.Level = "warn" }, true},
		{"unknown level", func(c *Config) { c.Log.Level = "loud" }, false},
		{"empty remote", func(c *Config) { c.Push.DefaultRemote = "" }, false},
		{"negative delay", func(c *Config) { c.Push.ProgressDelay = -time.Second }, false},
		{"zero buffer", func(c *Config) { c.Push.NotifyBuffer = 0 }, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.valid && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !tc.valid {
				if err == nil {
					t.Fatal("expected validation error")
				}
				if !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("expected ErrInvalidConfig, got %v", err)
				}
			}
		})
	}
}
