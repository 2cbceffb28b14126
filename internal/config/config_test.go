package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/vibfd/internal/vib"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Scheme != "hpl" {
		t.Errorf("expected scheme hpl, got %s", cfg.Scheme)
	}
	if cfg.Steps <= 0 {
		t.Error("steps should be positive")
	}
	if cfg.EndTime != 2*math.Pi {
		t.Errorf("expected end time 2π, got %f", cfg.EndTime)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("fd4", "course")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Steps != 4 {
		t.Errorf("expected steps 4, got %d", cfg.Steps)
	}

	cfg.Steps = 1000
	if Presets["fd4"]["course"].Steps != 4 {
		t.Error("GetPreset must return a copy")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("hpl", "nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if cfg := GetPreset("nonexistent", "course"); cfg != nil {
		t.Error("expected nil for nonexistent scheme")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets("hpl")
	if len(presets) != 3 || presets[0] != "course" {
		t.Errorf("unexpected hpl presets %v", presets)
	}
	if presets := ListPresets("nonexistent"); presets != nil {
		t.Error("expected nil for nonexistent scheme")
	}
}

func TestPresets_Validate(t *testing.T) {
	for scheme, presets := range Presets {
		for name, cfg := range presets {
			if cfg.Scheme != scheme {
				t.Errorf("%s/%s: scheme field %q", scheme, name, cfg.Scheme)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("%s/%s: %v", scheme, name, err)
			}
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero steps", func(c *Config) { c.Steps = 0 }},
		{"negative trials", func(c *Config) { c.Trials = -1 }},
		{"negative tolerance", func(c *Config) { c.Tolerance = -1 }},
		{"zero end time", func(c *Config) { c.EndTime = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, vib.ErrInvalidArgument) {
				t.Errorf("got %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestLoadSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "study.yaml")

	cfg := DefaultConfig()
	cfg.Scheme = "fd2"
	cfg.Trials = 6
	cfg.Parallel = true
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch: got %+v, want %+v", loaded, cfg)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "study.yaml")
	if err := os.WriteFile(path, []byte("scheme: fd4\nsteps: 8\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Scheme != "fd4" || cfg.Steps != 8 {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Frequency != DefaultFrequency || cfg.Trials != DefaultTrials {
		t.Errorf("defaults lost: %+v", cfg)
	}
}
