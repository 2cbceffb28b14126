package config

import (
	"fmt"
	"math"
	"os"

	"github.com/san-kum/vibfd/internal/vib"
	"gopkg.in/yaml.v3"
)

const (
	DefaultScheme    = "hpl"
	DefaultSteps     = 32
	DefaultEndTime   = 2 * math.Pi
	DefaultFrequency = vib.DefaultFrequency
	DefaultInitial   = vib.DefaultInitial
	DefaultTrials    = 4
	DefaultTolerance = 1e-2
)

// Config describes one study: which scheme to run, on what mesh, and how
// many refinements to use when estimating its convergence order.
type Config struct {
	Scheme    string  `yaml:"scheme"`
	Steps     int     `yaml:"steps"`
	EndTime   float64 `yaml:"end_time"`
	Frequency float64 `yaml:"frequency"`
	Initial   float64 `yaml:"initial"`
	Trials    int     `yaml:"trials"`
	Tolerance float64 `yaml:"tolerance"`
	Parallel  bool    `yaml:"parallel"`
}

func DefaultConfig() *Config {
	return &Config{
		Scheme:    DefaultScheme,
		Steps:     DefaultSteps,
		EndTime:   DefaultEndTime,
		Frequency: DefaultFrequency,
		Initial:   DefaultInitial,
		Trials:    DefaultTrials,
		Tolerance: DefaultTolerance,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the fields that do not depend on the chosen scheme.
func (c *Config) Validate() error {
	if c.Steps <= 0 {
		return fmt.Errorf("config: steps %d must be positive: %w", c.Steps, vib.ErrInvalidArgument)
	}
	if c.Trials <= 0 {
		return fmt.Errorf("config: trials %d must be positive: %w", c.Trials, vib.ErrInvalidArgument)
	}
	if c.Tolerance < 0 {
		return fmt.Errorf("config: tolerance %g must not be negative: %w", c.Tolerance, vib.ErrInvalidArgument)
	}
	return c.Params().Validate()
}

func (c *Config) Params() vib.Params {
	return vib.Params{T: c.EndTime, W: c.Frequency, I: c.Initial}
}
