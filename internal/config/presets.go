package config

import "sort"

// Presets are named starting points; flags still override them.
var Presets = map[string]*Config{
	"calm": {
		Variant: "floating-shapes", Intensity: Low, Theme: "system",
		Spring: SpringConfig{Frequency: 4, Damping: 1},
	},
	"constellation": {
		Variant: "particles", Effect: "abstract", Intensity: High, Theme: "dark",
		Spring: SpringConfig{Frequency: 6, Damping: 0.8},
	},
	"ocean": {
		Variant: "waves", Effect: "liquid", Intensity: Medium, Theme: "light",
		Spring: SpringConfig{Frequency: 3, Damping: 1},
	},
	"blueprint": {
		Variant: "geometric", Intensity: Medium, Theme: "dark",
	},
	"grid": {
		Variant: "dots", Intensity: Low, Theme: "system",
	},
	"night": {
		Variant: "particles", Effect: "torch", Intensity: Medium, Theme: "dark",
		Spring: SpringConfig{Frequency: 8, Damping: 0.6},
	},
}

// GetPreset returns a copy of the named preset with unset fields defaulted,
// or nil when no such preset exists.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Variant = p.Variant
	cfg.Effect = p.Effect
	cfg.Intensity = p.Intensity
	cfg.Theme = p.Theme
	if p.Spring != (SpringConfig{}) {
		cfg.Spring = p.Spring
	}
	return cfg
}

// ListPresets returns the preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
