// Package metrics accumulates scalar quality measures over a running
// simulation, observed once per step from the step callback.
package metrics

import (
	"math"

	"github.com/san-kum/matsim/internal/sim"
)

// Metric observes simulation state step by step and reduces it to one
// number at the end of the run.
type Metric interface {
	Name() string
	Observe(s *sim.Simulation)
	Value() float64
	Reset()
}

// EnergyDrift tracks the maximum relative deviation of total energy
// from its value at the first observation. For NVE molecular dynamics
// this is the primary integration-quality measure.
type EnergyDrift struct {
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift() *EnergyDrift { return &EnergyDrift{} }

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) Observe(s *sim.Simulation) {
	energy := s.TotalEnergy()
	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++
	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}

// MeanTemperature averages the instantaneous kinetic temperature over
// the observed steps.
type MeanTemperature struct {
	total   float64
	samples int
}

func NewMeanTemperature() *MeanTemperature { return &MeanTemperature{} }

func (m *MeanTemperature) Name() string { return "mean_temperature" }

func (m *MeanTemperature) Observe(s *sim.Simulation) {
	m.total += s.Temperature()
	m.samples++
}

func (m *MeanTemperature) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *MeanTemperature) Reset() {
	m.total = 0
	m.samples = 0
}
