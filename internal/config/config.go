package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/san-kum/backdrop/internal/scene"
	"github.com/san-kum/backdrop/internal/theme"
	"gopkg.in/yaml.v3"
)

const (
	DefaultVariant   = "floating-shapes"
	DefaultIntensity = Low
	DefaultFPS       = 60
	DefaultScale     = 8.0

	DefaultSpringFrequency = 6.0
	DefaultSpringDamping   = 1.0
)

// ErrInvalid marks a configuration value outside its recognized set.
var ErrInvalid = errors.New("config: invalid value")

// Intensity is the coarse element-count selector.
type Intensity string

const (
	Low    Intensity = "low"
	Medium Intensity = "medium"
	High   Intensity = "high"
)

// Intensities lists the recognized intensities in cycling order.
var Intensities = []Intensity{Low, Medium, High}

// counts is the element count per intensity, indexed by family.
var counts = map[Intensity][2]int{
	Low:    {scene.Shapes: 15, scene.Particles: 30},
	Medium: {scene.Shapes: 25, scene.Particles: 50},
	High:   {scene.Shapes: 40, scene.Particles: 80},
}

// ParseIntensity accepts an intensity name case-insensitively.
func ParseIntensity(s string) (Intensity, error) {
	i := Intensity(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := counts[i]; !ok {
		return "", fmt.Errorf("%w: intensity %q", ErrInvalid, s)
	}
	return i, nil
}

// Count returns the number of elements seeded for family f.
func (i Intensity) Count(f scene.Family) int {
	c, ok := counts[i]
	if !ok {
		c = counts[DefaultIntensity]
	}
	return c[f]
}

// Next returns the intensity after i in Intensities.
func (i Intensity) Next() Intensity {
	for k, v := range Intensities {
		if v == i {
			return Intensities[(k+1)%len(Intensities)]
		}
	}
	return Low
}

type Config struct {
	Variant   string       `yaml:"variant"`
	Effect    string       `yaml:"effect"`
	Intensity Intensity    `yaml:"intensity"`
	Theme     theme.Mode   `yaml:"theme"`
	FPS       int          `yaml:"fps"`
	Seed      int64        `yaml:"seed"`
	Spring    SpringConfig `yaml:"pointer_spring"`
	Terminal  TermConfig   `yaml:"terminal"`
}

// SpringConfig smooths the pointer. A zero frequency follows it raw.
type SpringConfig struct {
	Frequency float64 `yaml:"frequency"`
	Damping   float64 `yaml:"damping"`
}

type TermConfig struct {
	// Scale is how many logical units one braille dot covers.
	Scale float64 `yaml:"scale"`
}

func DefaultConfig() *Config {
	return &Config{
		Variant:   DefaultVariant,
		Intensity: DefaultIntensity,
		Theme:     theme.System,
		FPS:       DefaultFPS,
		Spring: SpringConfig{
			Frequency: DefaultSpringFrequency,
			Damping:   DefaultSpringDamping,
		},
		Terminal: TermConfig{Scale: DefaultScale},
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
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
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

// Validate checks the enumerated fields and numeric ranges. Variant and
// effect names are checked against their registries at engine creation.
func (c *Config) Validate() error {
	if _, err := ParseIntensity(string(c.Intensity)); err != nil {
		return err
	}
	if _, err := theme.ParseMode(string(c.Theme)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.Variant == "" {
		return fmt.Errorf("%w: empty variant", ErrInvalid)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalid, c.FPS)
	}
	if c.Spring.Frequency < 0 || c.Spring.Damping < 0 {
		return fmt.Errorf("%w: pointer spring must be non-negative", ErrInvalid)
	}
	if c.Terminal.Scale <= 0 {
		return fmt.Errorf("%w: terminal scale must be positive, got %f", ErrInvalid, c.Terminal.Scale)
	}
	return nil
}

// Clone returns a copy that can be modified independently.
func (c *Config) Clone() *Config {
	out := *c
	return &out
}
