// Package thermostat modifies particle velocities toward a target
// temperature after each integration step.
package thermostat

import "github.com/san-kum/matsim/internal/particle"

// Thermostat is applied once per step with the step size dt.
type Thermostat interface {
	Apply(sys *particle.System, dt float64)
	TargetTemperature() float64
}

// Null performs no velocity modification: the constant-energy (NVE)
// ensemble.
type Null struct{}

func NewNull() Null { return Null{} }

func (Null) Apply(*particle.System, float64) {}

func (Null) TargetTemperature() float64 { return 0.0 }
