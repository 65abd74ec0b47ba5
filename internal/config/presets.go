package config

import (
	"sort"

	"github.com/san-kum/matsim/internal/sim"
)

// Presets are named MD parameter sets for common run shapes. All use
// femtosecond steps sized for argon-scale Lennard-Jones systems.
var Presets = map[string]sim.Params{
	"quick": {
		Dt: 1e-15, Dx: 1e-9, EndTime: 1e-12, MaxSteps: 10_000,
		Temperature: 300.0, Cutoff: 1.0e-9,
		UseNeighborList: true, NeighborSkin: 0.2e-9,
	},
	"equilibrate": {
		Dt: 1e-15, Dx: 1e-9, EndTime: 1e-11, MaxSteps: 100_000,
		Temperature: 120.0, Cutoff: 1.0e-9,
		UseNeighborList: true, NeighborSkin: 0.2e-9,
	},
	"production": {
		Dt: 2e-15, Dx: 1e-9, EndTime: 1e-10, MaxSteps: 1_000_000,
		Temperature: 120.0, Cutoff: 1.0e-9,
		UseNeighborList: true, NeighborSkin: 0.3e-9,
	},
}

// GetPreset returns the named preset and whether it exists.
func GetPreset(name string) (sim.Params, bool) {
	p, ok := Presets[name]
	return p, ok
}

// ListPresets returns the preset names sorted.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
