package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/matsim/internal/particle"
	"github.com/san-kum/matsim/internal/vec"
)

func TestFreeParticleLinearMotion(t *testing.T) {
	// A free particle (zero force) must advance exactly linearly:
	// r(t) = r0 + v0·t. dt and v chosen so every product is exact in
	// binary floating point.
	sys := particle.NewSystem(particle.DefaultMaxBytes)
	sys.Add(particle.Particle{Mass: 1, Pos: vec.Vec3{1, 2, 3}, Vel: vec.Vec3{1, -0.5, 0.25}})

	vv := NewVelocityVerlet(0.5)
	steps := 64
	for i := 0; i < steps; i++ {
		vv.Step1(sys)
		// forces stay zero
		vv.Step2(sys)
	}

	tTotal := 0.5 * float64(steps)
	want := vec.Vec3{1 + 1*tTotal, 2 - 0.5*tTotal, 3 + 0.25*tTotal}
	if got := sys.At(0).Pos; got != want {
		t.Errorf("free particle position = %v, want exactly %v", got, want)
	}
	if got := sys.At(0).Vel; got != (vec.Vec3{1, -0.5, 0.25}) {
		t.Errorf("free particle velocity changed: %v", got)
	}
}

// springForce applies F = -k·r to every particle, a harmonic well at the
// origin.
func springForce(k float64) func(*particle.System) {
	return func(sys *particle.System) {
		for i := 0; i < sys.Len(); i++ {
			p := sys.At(i)
			p.AddForce(p.Pos.Scale(-k))
		}
	}
}

func oscillatorEnergy(sys *particle.System, k float64) float64 {
	p := sys.At(0)
	return 0.5*p.Mass*p.Vel.NormSq() + 0.5*k*p.Pos.NormSq()
}

func TestVerletEnergyStability(t *testing.T) {
	// Harmonic oscillator, ω = 1: velocity Verlet keeps the energy
	// bounded over many periods.
	k := 1.0
	sys := particle.NewSystem(particle.DefaultMaxBytes)
	sys.Add(particle.Particle{Mass: 1, Pos: vec.Vec3{1, 0, 0}})

	forces := springForce(k)
	forces(sys) // initial forces

	vv := NewVelocityVerlet(0.01)
	e0 := oscillatorEnergy(sys, k)
	maxDrift := 0.0
	for i := 0; i < 10000; i++ { // ~16 periods
		vv.Integrate(sys, forces)
		drift := math.Abs(oscillatorEnergy(sys, k)-e0) / e0
		if drift > maxDrift {
			maxDrift = drift
		}
	}
	if maxDrift > 1e-4 {
		t.Errorf("verlet energy drift = %g, want < 1e-4", maxDrift)
	}
}

func TestEulerDriftsMoreThanVerlet(t *testing.T) {
	k := 1.0
	mk := func() *particle.System {
		s := particle.NewSystem(particle.DefaultMaxBytes)
		s.Add(particle.Particle{Mass: 1, Pos: vec.Vec3{1, 0, 0}})
		return s
	}
	forces := springForce(k)

	sv := mk()
	forces(sv)
	vv := NewVelocityVerlet(0.01)

	se := mk()
	forces(se)
	eu := NewEuler(0.01)

	e0 := oscillatorEnergy(sv, k)
	var verletDrift, eulerDrift float64
	for i := 0; i < 5000; i++ {
		vv.Integrate(sv, forces)

		se.ClearForces()
		forces(se)
		eu.Step(se)

		if d := math.Abs(oscillatorEnergy(sv, k) - e0); d > verletDrift {
			verletDrift = d
		}
		if d := math.Abs(oscillatorEnergy(se, k) - e0); d > eulerDrift {
			eulerDrift = d
		}
	}
	if eulerDrift < 50*verletDrift {
		t.Errorf("expected euler drift (%g) to dwarf verlet drift (%g)", eulerDrift, verletDrift)
	}
}

func TestVerletMatchesAnalyticOscillator(t *testing.T) {
	// x(t) = cos(t) for m = k = 1, x0 = 1, v0 = 0.
	k := 1.0
	sys := particle.NewSystem(particle.DefaultMaxBytes)
	sys.Add(particle.Particle{Mass: 1, Pos: vec.Vec3{1, 0, 0}})
	forces := springForce(k)
	forces(sys)

	dt := 0.001
	vv := NewVelocityVerlet(dt)
	steps := 1000
	for i := 0; i < steps; i++ {
		vv.Integrate(sys, forces)
	}
	tEnd := dt * float64(steps)
	if got, want := sys.At(0).Pos[0], math.Cos(tEnd); math.Abs(got-want) > 1e-5 {
		t.Errorf("x(%g) = %.8f, want %.8f", tEnd, got, want)
	}
}

func TestCharacteristicTime(t *testing.T) {
	empty := particle.NewSystem(particle.DefaultMaxBytes)
	if got := CharacteristicTime(empty); got != 1.0 {
		t.Errorf("empty system tau = %g, want 1.0", got)
	}

	still := particle.NewSystem(particle.DefaultMaxBytes)
	still.Add(particle.Particle{Mass: 1})
	if got := CharacteristicTime(still); got != defaultTau {
		t.Errorf("still system tau = %g, want femtosecond fallback %g", got, defaultTau)
	}

	moving := particle.NewSystem(particle.DefaultMaxBytes)
	moving.Add(particle.Particle{Mass: 1, Vel: vec.Vec3{100, 0, 0}})
	moving.Add(particle.Particle{Mass: 1, Vel: vec.Vec3{400, 0, 0}})
	want := typicalDistance / 400.0
	if got := CharacteristicTime(moving); math.Abs(got-want)/want > 1e-12 {
		t.Errorf("tau = %g, want %g", got, want)
	}

	if !IsStableDt(want/20, moving) {
		t.Error("dt = tau/20 should be stable")
	}
	if IsStableDt(want, moving) {
		t.Error("dt = tau should not be stable")
	}
}
