package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rconan/windloading/internal/loads"
)

const (
	DefaultSamplingHz = 20.0
	DefaultDecimate   = 1

	SelectionAll      = "all"
	SelectionASM      = "asm"
	SelectionChannels = "channels"
)

// Config describes one streaming scenario: which bundle to read, how to
// window and decimate it, and which channels to select.
type Config struct {
	Bundle     string        `yaml:"bundle"`
	DataDir    string        `yaml:"data_dir"`
	SamplingHz float64       `yaml:"sampling_hz"`
	TimeWindow *WindowConfig `yaml:"time_window,omitempty"`
	Decimate   int           `yaml:"decimate"`
	Samples    int           `yaml:"samples,omitempty"`
	Selection  string        `yaml:"selection"`
	Channels   []string      `yaml:"channels,omitempty"`
}

// WindowConfig bounds the run to the samples with timestamps in [Min, Max).
type WindowConfig struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

func DefaultConfig() *Config {
	return &Config{
		DataDir:    ".windload",
		SamplingHz: DefaultSamplingHz,
		Decimate:   DefaultDecimate,
		Selection:  SelectionAll,
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

// Dt returns the tick duration implied by the sampling frequency and
// decimation rate.
func (c *Config) Dt() float64 {
	return float64(c.Decimate) / c.SamplingHz
}

func (c *Config) Validate() error {
	if c.Bundle == "" {
		return fmt.Errorf("config: bundle path is required")
	}
	if c.SamplingHz <= 0 {
		return fmt.Errorf("config: sampling_hz must be positive, got %f", c.SamplingHz)
	}
	if c.Decimate < 1 {
		return fmt.Errorf("config: decimate must be at least 1, got %d", c.Decimate)
	}
	if c.Samples < 0 {
		return fmt.Errorf("config: samples must not be negative, got %d", c.Samples)
	}
	switch c.Selection {
	case SelectionAll, SelectionASM:
		if len(c.Channels) > 0 {
			return fmt.Errorf("config: channels list requires selection %q", SelectionChannels)
		}
	case SelectionChannels:
		if len(c.Channels) == 0 {
			return fmt.Errorf("config: selection %q needs a channels list", SelectionChannels)
		}
		for _, name := range c.Channels {
			if _, ok := loads.KindFromName(name); !ok {
				return fmt.Errorf("config: unknown channel %q", name)
			}
		}
	default:
		return fmt.Errorf("config: unknown selection %q", c.Selection)
	}
	return nil
}

// SelectedKinds resolves the explicit channel list. Only meaningful for
// the "channels" selection mode after Validate.
func (c *Config) SelectedKinds() []loads.Kind {
	kinds := make([]loads.Kind, 0, len(c.Channels))
	for _, name := range c.Channels {
		if k, ok := loads.KindFromName(name); ok {
			kinds = append(kinds, k)
		}
	}
	return kinds
}
