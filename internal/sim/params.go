package sim

import (
	"fmt"
	"math"

	"github.com/san-kum/matsim/internal/particle"
)

// Params configures a molecular dynamics run. Immutable once validated;
// all fields SI with no unit conversion inside the core.
type Params struct {
	Dt       float64 `yaml:"dt"`       // time step [s]
	Dx       float64 `yaml:"dx"`       // display/grid spacing [m], unused by MD itself
	EndTime  float64 `yaml:"end_time"` // 0 = bounded by MaxSteps only
	MaxSteps int     `yaml:"max_steps"`

	Temperature     float64 `yaml:"temperature"`       // thermostat target [K]
	Cutoff          float64 `yaml:"cutoff"`            // force cutoff [m]
	UseNeighborList bool    `yaml:"use_neighbor_list"` // O(N) list vs all-pairs
	NeighborSkin    float64 `yaml:"neighbor_skin"`     // Verlet skin [m]

	MaxBytes int64 `yaml:"max_bytes"` // particle store budget; 0 = default
}

// Defaults returns femtosecond-scale MD parameters with the neighbor
// list enabled.
func Defaults() Params {
	return Params{
		Dt:              1e-15,
		Dx:              1e-9,
		EndTime:         0,
		MaxSteps:        10_000_000,
		Temperature:     300.0,
		Cutoff:          1.0e-9,
		UseNeighborList: true,
		NeighborSkin:    0.2e-9,
	}
}

// Validate returns a specific, human-readable reason the configuration
// cannot run, or nil.
func (p Params) Validate() error {
	if math.IsNaN(p.Dt) || math.IsInf(p.Dt, 0) || p.Dt <= 0 {
		return fmt.Errorf("time step dt must be positive and finite, got %g", p.Dt)
	}
	if math.IsNaN(p.EndTime) || math.IsInf(p.EndTime, 0) || p.EndTime < 0 {
		return fmt.Errorf("end time must be non-negative and finite, got %g", p.EndTime)
	}
	if p.MaxSteps <= 0 {
		return fmt.Errorf("max steps must be greater than 0, got %d", p.MaxSteps)
	}
	if math.IsNaN(p.Temperature) || math.IsInf(p.Temperature, 0) || p.Temperature < 0 {
		return fmt.Errorf("temperature must be non-negative and finite, got %g", p.Temperature)
	}
	if math.IsNaN(p.Cutoff) || math.IsInf(p.Cutoff, 0) || p.Cutoff <= 0 {
		return fmt.Errorf("force cutoff must be positive and finite, got %g", p.Cutoff)
	}
	if math.IsNaN(p.NeighborSkin) || math.IsInf(p.NeighborSkin, 0) || p.NeighborSkin < 0 {
		return fmt.Errorf("neighbor skin must be non-negative and finite, got %g", p.NeighborSkin)
	}
	if p.EndTime > 0 && p.Dt > p.EndTime {
		return fmt.Errorf("time step %g cannot exceed end time %g", p.Dt, p.EndTime)
	}
	if p.MaxBytes < 0 {
		return fmt.Errorf("max bytes must be non-negative, got %d", p.MaxBytes)
	}
	return nil
}

// budget resolves the particle store byte limit.
func (p Params) budget() int64 {
	if p.MaxBytes > 0 {
		return p.MaxBytes
	}
	return particle.DefaultMaxBytes
}
