package integrators

import "github.com/san-kum/matsim/internal/particle"

// Euler is the explicit single-step scheme: v += dt·F/m, then r += dt·v.
// Not symplectic; energy drifts. Reference/testing only, not production.
type Euler struct {
	dt float64
}

func NewEuler(dt float64) *Euler { return &Euler{dt: dt} }

func (e *Euler) Dt() float64      { return e.dt }
func (e *Euler) SetDt(dt float64) { e.dt = dt }

func (e *Euler) Step(sys *particle.System) {
	ps := sys.Particles()
	for i := range ps {
		p := &ps[i]
		p.Vel = p.Vel.Add(p.Force.Scale(e.dt / p.Mass))
		p.Pos = p.Pos.Add(p.Vel.Scale(e.dt))
	}
}

// Integrate advances one step with the forces already on the particles,
// then recomputes forces at the new positions so the next step sees
// current values. Mirrors VelocityVerlet.Integrate.
func (e *Euler) Integrate(sys *particle.System, computeForces func(*particle.System)) {
	e.Step(sys)
	sys.ClearForces()
	if computeForces != nil {
		computeForces(sys)
	}
}
