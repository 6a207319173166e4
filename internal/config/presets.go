package config

import (
	"slices"
	"time"
)

var Presets = map[string]func() *Config{
	"default": DefaultConfig,
	"smoke": func() *Config {
		cfg := DefaultConfig()
		cfg.Interval = 10 * time.Second
		cfg.Workers = 2
		return cfg
	},
}

// GetPreset returns a fresh copy of the named preset, or nil.
func GetPreset(name string) *Config {
	build, ok := Presets[name]
	if !ok {
		return nil
	}
	return build()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
