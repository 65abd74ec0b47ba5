// Package particle holds the point-particle state container for molecular
// dynamics: positions, velocities, forces, and masses, plus the aggregate
// observables (kinetic energy, temperature, center of mass) the
// orchestration layer reads between steps.
package particle

import (
	"fmt"

	"github.com/san-kum/matsim/internal/arena"
	"github.com/san-kum/matsim/internal/lattice"
	"github.com/san-kum/matsim/internal/vec"
)

// Boltzmann constant [J/K].
const KB = 1.380649e-23

// Particle is one atom in 3D, SI units throughout. Force is transient:
// cleared and recomputed every step, never persisted across steps.
type Particle struct {
	Pos   vec.Vec3 // [m]
	Vel   vec.Vec3 // [m/s]
	Force vec.Vec3 // [N]
	Mass  float64  // [kg], must be > 0
}

func (p *Particle) ClearForce() { p.Force = vec.Vec3{} }

func (p *Particle) AddForce(f vec.Vec3) { p.Force = p.Force.Add(f) }

// particleBytes is the arena charge per particle: three 3-vectors plus
// the mass.
const particleBytes = int64(10 * 8)

// System is an ordered, insertion-order-preserving particle collection
// backed by a byte-bounded arena. Growth beyond the budget fails
// deterministically; indices are stable between Add calls.
type System struct {
	particles []Particle
	budget    *arena.Arena
}

// NewSystem returns an empty system with the given byte budget.
// DefaultMaxBytes is a sensible limit for interactive use.
func NewSystem(maxBytes int64) *System {
	return &System{budget: arena.New(maxBytes)}
}

// DefaultMaxBytes bounds the particle store at 1 GiB (~13M particles).
const DefaultMaxBytes = int64(1) << 30

// Add appends a particle, charging the arena. The system is unchanged on
// failure.
func (s *System) Add(p Particle) error {
	if err := s.budget.Reserve(particleBytes); err != nil {
		return fmt.Errorf("add particle: %w", err)
	}
	s.particles = append(s.particles, p)
	return nil
}

// Len is the authoritative particle count.
func (s *System) Len() int { return len(s.particles) }

// At returns a pointer to particle i for in-place mutation. Index i is
// stable between Add calls.
func (s *System) At(i int) *Particle { return &s.particles[i] }

// Particles exposes the backing slice for tight loops. Callers must not
// grow it.
func (s *System) Particles() []Particle { return s.particles }

// Clear removes every particle and returns its bytes to the budget.
func (s *System) Clear() {
	s.budget.Release(int64(len(s.particles)) * particleBytes)
	s.particles = s.particles[:0]
}

// ClearForces zeroes every force vector. Must run before each force-field
// evaluation to avoid silent accumulation across steps.
func (s *System) ClearForces() {
	for i := range s.particles {
		s.particles[i].ClearForce()
	}
}

// KineticEnergy is Σ ½mv² [J].
func (s *System) KineticEnergy() float64 {
	ekin := 0.0
	for i := range s.particles {
		p := &s.particles[i]
		ekin += 0.5 * p.Mass * p.Vel.NormSq()
	}
	return ekin
}

// Temperature from the equipartition theorem: T = 2·E_kin / (dof·k_B)
// with dof = 3N−3, the center-of-mass drift removed. Zero for N ≤ 1.
func (s *System) Temperature() float64 {
	n := len(s.particles)
	if n <= 1 {
		return 0.0
	}
	dof := 3.0*float64(n) - 3.0
	return 2.0 * s.KineticEnergy() / (dof * KB)
}

// CenterOfMass is the mass-weighted mean position.
func (s *System) CenterOfMass() vec.Vec3 {
	var com vec.Vec3
	total := 0.0
	for i := range s.particles {
		p := &s.particles[i]
		com = com.Add(p.Pos.Scale(p.Mass))
		total += p.Mass
	}
	if total > 0 {
		com = com.Scale(1.0 / total)
	}
	return com
}

// ZeroCOMVelocity subtracts the mass-weighted mean velocity from every
// particle, removing net drift. Required before production MD runs.
func (s *System) ZeroCOMVelocity() {
	var momentum vec.Vec3
	total := 0.0
	for i := range s.particles {
		p := &s.particles[i]
		momentum = momentum.Add(p.Vel.Scale(p.Mass))
		total += p.Mass
	}
	if total <= 0 {
		return
	}
	drift := momentum.Scale(1.0 / total)
	for i := range s.particles {
		s.particles[i].Vel = s.particles[i].Vel.Sub(drift)
	}
}

// ApplyPBC wraps every position into the primary cell.
func (s *System) ApplyPBC(lat lattice.Lattice) {
	for i := range s.particles {
		s.particles[i].Pos = lat.WrapCartesian(s.particles[i].Pos)
	}
}
