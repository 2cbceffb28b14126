package config

import (
	"math"
	"sort"
)

var Presets = map[string]map[string]*Config{
	"hpl": {
		"course": {
			Scheme: "hpl", Steps: 32, EndTime: 2 * math.Pi, Frequency: 0.35, Initial: 1,
			Trials: 4, Tolerance: 1e-2,
		},
		"fast": {
			Scheme: "hpl", Steps: 16, EndTime: 2 * math.Pi, Frequency: 2, Initial: 1,
			Trials: 5, Tolerance: 5e-2,
		},
		"long": {
			Scheme: "hpl", Steps: 64, EndTime: 20 * math.Pi, Frequency: 0.35, Initial: 0.5,
			Trials: 4, Tolerance: 2e-2,
		},
	},
	"fd2": {
		"course": {
			Scheme: "fd2", Steps: 32, EndTime: 2 * math.Pi, Frequency: 0.35, Initial: 1,
			Trials: 4, Tolerance: 1e-2,
		},
		"coarse": {
			Scheme: "fd2", Steps: 8, EndTime: math.Pi, Frequency: 0.35, Initial: 1,
			Trials: 4, Tolerance: 2e-2,
		},
	},
	// fd4 starts at 4 steps: its errors hit the round-off floor near 1e-11
	// long before 32·2^4 steps (see "FD4 stencil and harness" in DESIGN.md).
	"fd4": {
		"course": {
			Scheme: "fd4", Steps: 4, EndTime: 2 * math.Pi, Frequency: 0.35, Initial: 1,
			Trials: 4, Tolerance: 1e-2,
		},
		"coarse": {
			Scheme: "fd4", Steps: 2, EndTime: math.Pi, Frequency: 0.35, Initial: 1,
			Trials: 3, Tolerance: 5e-2,
		},
	},
	"rk4": {
		"course": {
			Scheme: "rk4", Steps: 16, EndTime: 2 * math.Pi, Frequency: 0.35, Initial: 1,
			Trials: 4, Tolerance: 1e-2,
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(scheme, name string) *Config {
	presets, ok := Presets[scheme]
	if !ok {
		return nil
	}
	cfg, ok := presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets(scheme string) []string {
	presets, ok := Presets[scheme]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
