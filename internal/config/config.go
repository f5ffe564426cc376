// Package config loads pipeline configuration from a YAML file and maps
// it onto phenology parameters. Flags on the command line override file
// values; code that needs defaults without a file can start from
// Default().
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/mthurman/greenwave/pkg/phenology"
)

// Config is the base configuration object
type Config struct {
	Smoothing   SmoothingConfig    `yaml:"smoothing"`
	Quality     string             `yaml:"quality,omitempty"`
	Transitions []TransitionConfig `yaml:"transitions,omitempty"`
	Database    DatabaseConfig     `yaml:"database,omitempty"`
}

// SmoothingConfig holds the Savitzky-Golay filter settings
type SmoothingConfig struct {
	Window    int `yaml:"window"`
	PolyOrder int `yaml:"poly-order"`
}

// TransitionConfig names one threshold crossing to extract
type TransitionConfig struct {
	Name      string  `yaml:"name"`
	Threshold float64 `yaml:"threshold"`
	Scan      string  `yaml:"scan,omitempty"` // "forward" (default) or "backward"
}

// DatabaseConfig holds the optional results store settings
type DatabaseConfig struct {
	Path string `yaml:"path,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	params := phenology.DefaultParams()
	cfg := &Config{
		Smoothing: SmoothingConfig{Window: params.Window, PolyOrder: params.PolyOrder},
		Quality:   "marginal",
	}
	for _, tr := range params.Transitions {
		scan := "forward"
		if tr.Scan == phenology.ScanBackward {
			scan = "backward"
		}
		cfg.Transitions = append(cfg.Transitions, TransitionConfig{
			Name:      tr.Name,
			Threshold: tr.Threshold,
			Scan:      scan,
		})
	}
	return cfg
}

// Load reads and parses a YAML config file. Missing sections fall back
// to the defaults from Default().
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	if cfg.Smoothing.Window == 0 {
		cfg.Smoothing = Default().Smoothing
	}
	if len(cfg.Transitions) == 0 {
		cfg.Transitions = Default().Transitions
	}
	return cfg, nil
}

// Params converts the configuration into validated pipeline parameters.
func (c *Config) Params() (phenology.Params, error) {
	quality, err := parseQuality(c.Quality)
	if err != nil {
		return phenology.Params{}, err
	}

	params := phenology.Params{
		Window:     c.Smoothing.Window,
		PolyOrder:  c.Smoothing.PolyOrder,
		MaxQuality: quality,
	}

	for _, tc := range c.Transitions {
		scan := phenology.ScanForward
		switch tc.Scan {
		case "", "forward":
		case "backward":
			scan = phenology.ScanBackward
		default:
			return phenology.Params{}, fmt.Errorf("config: transition %q has unknown scan direction %q", tc.Name, tc.Scan)
		}
		params.Transitions = append(params.Transitions, phenology.Transition{
			Name:      tc.Name,
			Threshold: tc.Threshold,
			Scan:      scan,
		})
	}
	return params, nil
}

func parseQuality(name string) (phenology.QualityFlag, error) {
	switch name {
	case "", "marginal":
		return phenology.QualityMarginal, nil
	case "good":
		return phenology.QualityGood, nil
	case "snow-ice":
		return phenology.QualitySnowIce, nil
	case "cloudy":
		return phenology.QualityCloudy, nil
	default:
		return 0, fmt.Errorf("config: unknown quality flag %q", name)
	}
}
