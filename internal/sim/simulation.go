package sim

import (
	"fmt"
	"math"

	"github.com/san-kum/matsim/internal/forcefield"
	"github.com/san-kum/matsim/internal/heat"
	"github.com/san-kum/matsim/internal/integrators"
	"github.com/san-kum/matsim/internal/lattice"
	"github.com/san-kum/matsim/internal/particle"
	"github.com/san-kum/matsim/internal/potential"
	"github.com/san-kum/matsim/internal/thermostat"
)

// ForceEvaluator is what the MD step loop needs from a force engine.
// Both the all-pairs and neighbor-list evaluators satisfy it.
type ForceEvaluator interface {
	// ComputeForces clears forces, accumulates fresh ones, and returns
	// total potential energy [J]. lat may be nil.
	ComputeForces(sys *particle.System, lat *lattice.Lattice) float64
	// ComputeEnergy is the evaluation without force writes.
	ComputeEnergy(sys *particle.System, lat *lattice.Lattice) float64
	Potential() potential.Potential
	SetPotential(p potential.Potential)
}

// Integrator advances kinematics one step; the callback recomputes forces
// at the updated positions partway through (or after, for single-phase
// schemes).
type Integrator interface {
	Integrate(sys *particle.System, computeForces func(*particle.System))
	Dt() float64
	SetDt(dt float64)
}

// Callback observes the simulation after each completed step. It must
// not mutate core state.
type Callback func(*Simulation)

// Simulation is the top-level state machine. Its mode is fixed at
// construction: MD simulations own a particle system, force evaluator,
// integrator, and thermostat; heat simulations own a grid model and
// delegate the whole lifecycle to it.
type Simulation struct {
	mode   Mode
	params Params

	system *particle.System
	lat    *lattice.Lattice
	forces ForceEvaluator
	integ  Integrator
	thermo thermostat.Thermostat

	heat1d *heat.Model1D
	heat2d *heat.Model2D

	time      float64
	stepCount int
	lastEpot  float64
	prepared  bool
	err       error
	valid     bool
	callback  Callback
}

// New builds an MD simulation with velocity-Verlet integration and no
// thermostat (NVE). pot may be nil; set it later with SetPotential.
func New(params Params, pot potential.Potential) (*Simulation, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid simulation parameters: %w", err)
	}
	s := &Simulation{
		mode:   ModeMD,
		params: params,
		system: particle.NewSystem(params.budget()),
		integ:  integrators.NewVelocityVerlet(params.Dt),
		thermo: thermostat.NewNull(),
		valid:  true,
	}
	s.SetPotential(pot)
	return s, nil
}

// NewHeat1D wraps a 1D diffusion model. maxBytes 0 uses the heat
// package default.
func NewHeat1D(params heat.Params1D, maxBytes int64) (*Simulation, error) {
	if maxBytes <= 0 {
		maxBytes = heat.DefaultMaxBytes
	}
	m := heat.New1D(params, maxBytes)
	if !m.Valid() {
		return nil, m.Err()
	}
	return &Simulation{mode: ModeHeat1D, heat1d: m, valid: true}, nil
}

// NewHeat2D wraps a 2D diffusion model.
func NewHeat2D(params heat.Params2D, maxBytes int64) (*Simulation, error) {
	if maxBytes <= 0 {
		maxBytes = heat.DefaultMaxBytes
	}
	m := heat.New2D(params, maxBytes)
	if !m.Valid() {
		return nil, m.Err()
	}
	return &Simulation{mode: ModeHeat2D, heat2d: m, valid: true}, nil
}

func (s *Simulation) Mode() Mode     { return s.mode }
func (s *Simulation) Params() Params { return s.params }

// System is the particle store; nil outside MD mode.
func (s *Simulation) System() *particle.System { return s.system }

// Heat1D and Heat2D expose the owned grid model; nil outside the
// respective mode.
func (s *Simulation) Heat1D() *heat.Model1D { return s.heat1d }
func (s *Simulation) Heat2D() *heat.Model2D { return s.heat2d }

// SetLattice activates periodic boundaries. Positions are wrapped into
// the primary cell each step before forces are evaluated.
func (s *Simulation) SetLattice(lat lattice.Lattice) error {
	if err := lat.Validate(); err != nil {
		return fmt.Errorf("invalid lattice: %w", err)
	}
	s.lat = &lat
	s.prepared = false
	return nil
}

// Lattice returns the active cell, or nil for open boundaries.
func (s *Simulation) Lattice() *lattice.Lattice { return s.lat }

// SetPotential installs the pairwise potential, choosing the neighbor-
// list or all-pairs evaluator per the configuration. nil disables force
// evaluation.
func (s *Simulation) SetPotential(pot potential.Potential) {
	if pot == nil {
		s.forces = nil
		s.prepared = false
		return
	}
	if s.params.UseNeighborList {
		s.forces = forcefield.NewNeighbor(pot, s.params.Cutoff, s.params.NeighborSkin)
	} else {
		s.forces = forcefield.New(pot)
	}
	s.prepared = false
}

// SetForceEvaluator swaps the force engine directly, for callers that
// configured their own.
func (s *Simulation) SetForceEvaluator(f ForceEvaluator) {
	s.forces = f
	s.prepared = false
}

// SetThermostat replaces the velocity controller; nil restores NVE.
func (s *Simulation) SetThermostat(t thermostat.Thermostat) {
	if t == nil {
		t = thermostat.NewNull()
	}
	s.thermo = t
}

func (s *Simulation) Thermostat() thermostat.Thermostat { return s.thermo }

// SetIntegrator replaces the kinematics scheme. The integrator's step
// size is forced to the simulation's dt.
func (s *Simulation) SetIntegrator(i Integrator) {
	if i == nil {
		return
	}
	i.SetDt(s.params.Dt)
	s.integ = i
}

// SetStepCallback registers an observer invoked after every completed
// step.
func (s *Simulation) SetStepCallback(cb Callback) { s.callback = cb }

// prepare runs once before the first step: removes center-of-mass drift
// and evaluates initial forces so the integrator's first half-kick sees
// real values.
func (s *Simulation) prepare() {
	s.system.ZeroCOMVelocity()
	if s.lat != nil {
		s.system.ApplyPBC(*s.lat)
	}
	if s.forces != nil {
		s.lastEpot = s.forces.ComputeForces(s.system, s.lat)
	}
	s.prepared = true
}

// evalForces is the integrator callback: wrap positions into the cell,
// then recompute forces and cache the potential energy.
func (s *Simulation) evalForces(sys *particle.System) {
	if s.lat != nil {
		sys.ApplyPBC(*s.lat)
	}
	if s.forces != nil {
		s.lastEpot = s.forces.ComputeForces(sys, s.lat)
	}
}

// Step advances the simulation one step. In the heat modes it delegates
// to the grid model; in MD mode it runs the full protocol:
//
//	integrate (half-kick, drift, wrap, forces, half-kick)
//	thermostat
//	advance time and step count
//	sanity-check time, then notify the callback
//
// Returns false when finished or on failure; check Err to distinguish.
func (s *Simulation) Step() bool {
	switch s.mode {
	case ModeHeat1D:
		ok := s.heat1d.Step()
		if ok && s.callback != nil {
			s.callback(s)
		}
		return ok
	case ModeHeat2D:
		ok := s.heat2d.Step()
		if ok && s.callback != nil {
			s.callback(s)
		}
		return ok
	}

	if !s.valid || s.Finished() {
		return false
	}
	if !s.prepared {
		s.prepare()
	}

	s.integ.Integrate(s.system, s.evalForces)
	s.thermo.Apply(s.system, s.params.Dt)

	s.time += s.params.Dt
	s.stepCount++

	if math.IsNaN(s.time) || math.IsInf(s.time, 0) {
		s.err = fmt.Errorf("time became non-finite after step %d", s.stepCount)
		s.valid = false
		return false
	}
	if s.callback != nil {
		s.callback(s)
	}
	return true
}

// Finished reports the terminal condition. The MD end-time check uses a
// half-step tolerance so accumulated rounding in time never costs an
// extra step.
func (s *Simulation) Finished() bool {
	switch s.mode {
	case ModeHeat1D:
		return s.heat1d.Finished()
	case ModeHeat2D:
		return s.heat2d.Finished()
	}
	if !s.valid {
		return true
	}
	if s.stepCount >= s.params.MaxSteps {
		return true
	}
	return s.params.EndTime > 0 && s.time >= s.params.EndTime-0.5*s.params.Dt
}

// Run steps to completion and returns the failure reason, if any.
func (s *Simulation) Run() error {
	for s.Step() {
	}
	return s.Err()
}

func (s *Simulation) Time() float64 {
	switch s.mode {
	case ModeHeat1D:
		return s.heat1d.Time()
	case ModeHeat2D:
		return s.heat2d.Time()
	}
	return s.time
}

func (s *Simulation) StepCount() int {
	switch s.mode {
	case ModeHeat1D:
		return s.heat1d.StepCount()
	case ModeHeat2D:
		return s.heat2d.StepCount()
	}
	return s.stepCount
}

func (s *Simulation) Valid() bool {
	switch s.mode {
	case ModeHeat1D:
		return s.heat1d.Valid()
	case ModeHeat2D:
		return s.heat2d.Valid()
	}
	return s.valid
}

func (s *Simulation) Err() error {
	switch s.mode {
	case ModeHeat1D:
		return s.heat1d.Err()
	case ModeHeat2D:
		return s.heat2d.Err()
	}
	return s.err
}

// KineticEnergy is the instantaneous Σ ½mv² [J]; zero outside MD mode.
func (s *Simulation) KineticEnergy() float64 {
	if s.mode != ModeMD {
		return 0.0
	}
	return s.system.KineticEnergy()
}

// PotentialEnergy is the total pair energy [J] from the most recent
// force evaluation. Before the first step it is computed on demand.
func (s *Simulation) PotentialEnergy() float64 {
	if s.mode != ModeMD || s.forces == nil {
		return 0.0
	}
	if !s.prepared {
		return s.forces.ComputeEnergy(s.system, s.lat)
	}
	return s.lastEpot
}

func (s *Simulation) TotalEnergy() float64 {
	return s.KineticEnergy() + s.PotentialEnergy()
}

// Temperature is the instantaneous kinetic temperature [K]; zero
// outside MD mode.
func (s *Simulation) Temperature() float64 {
	if s.mode != ModeMD {
		return 0.0
	}
	return s.system.Temperature()
}
