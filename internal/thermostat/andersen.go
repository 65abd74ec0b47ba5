package thermostat

import (
	"math"
	"math/rand/v2"

	"github.com/san-kum/matsim/internal/particle"
)

// Andersen couples the system to a heat bath through stochastic
// collisions: each step, each particle is independently reassigned a
// Maxwell-Boltzmann velocity (per-axis σ = sqrt(k_B·T/m)) with
// probability 1 − exp(−ν·dt). Samples the canonical ensemble correctly.
type Andersen struct {
	targetT float64
	nu      float64 // collision frequency [1/s]
	rng     *rand.Rand
}

// NewAndersen builds the thermostat. seed == 0 draws entropy from the
// auto-seeded global source, making trajectories non-reproducible;
// determinism tests must pass a nonzero seed.
func NewAndersen(targetT, nu float64, seed uint64) *Andersen {
	if seed == 0 {
		seed = rand.Uint64() | 1
	}
	return &Andersen{
		targetT: targetT,
		nu:      nu,
		rng:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

func (a *Andersen) TargetTemperature() float64 { return a.targetT }
func (a *Andersen) SetTargetTemperature(T float64) {
	a.targetT = T
}

func (a *Andersen) CollisionFrequency() float64 { return a.nu }

func (a *Andersen) Apply(sys *particle.System, dt float64) {
	if a.targetT <= 0 {
		return
	}
	prob := 1.0 - math.Exp(-a.nu*dt)
	ps := sys.Particles()
	for i := range ps {
		if a.rng.Float64() >= prob {
			continue
		}
		p := &ps[i]
		if p.Mass <= 0 {
			continue
		}
		sigma := math.Sqrt(particle.KB * a.targetT / p.Mass)
		for axis := 0; axis < 3; axis++ {
			p.Vel[axis] = sigma * a.rng.NormFloat64()
		}
	}
}
