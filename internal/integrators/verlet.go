// Package integrators advances particle kinematics given current forces.
// VelocityVerlet is the production scheme; Euler is a non-symplectic
// reference for comparison and testing.
package integrators

import "github.com/san-kum/matsim/internal/particle"

// VelocityVerlet is the symplectic, time-reversible two-phase scheme:
//
//	1. v(t+dt/2) = v(t) + ½·dt·F(t)/m
//	2. r(t+dt)   = r(t) + dt·v(t+dt/2)
//	3. recompute F(t+dt) at the new positions
//	4. v(t+dt)   = v(t+dt/2) + ½·dt·F(t+dt)/m
//
// Step1 covers 1-2, Step2 covers 4; the caller recomputes forces between
// them (or uses Integrate).
type VelocityVerlet struct {
	dt     float64
	halfDt float64
}

func NewVelocityVerlet(dt float64) *VelocityVerlet {
	return &VelocityVerlet{dt: dt, halfDt: 0.5 * dt}
}

func (v *VelocityVerlet) Dt() float64 { return v.dt }

func (v *VelocityVerlet) SetDt(dt float64) {
	v.dt = dt
	v.halfDt = 0.5 * dt
}

// Step1 half-updates velocities with the current forces and advances
// positions using the half-updated velocities. Call before computing new
// forces.
func (v *VelocityVerlet) Step1(sys *particle.System) {
	ps := sys.Particles()
	for i := range ps {
		p := &ps[i]
		p.Vel = p.Vel.Add(p.Force.Scale(v.halfDt / p.Mass))
		p.Pos = p.Pos.Add(p.Vel.Scale(v.dt))
	}
}

// Step2 completes the velocity update with forces evaluated at the new
// positions.
func (v *VelocityVerlet) Step2(sys *particle.System) {
	ps := sys.Particles()
	for i := range ps {
		p := &ps[i]
		p.Vel = p.Vel.Add(p.Force.Scale(v.halfDt / p.Mass))
	}
}

// Integrate sequences Step1 -> clear and recompute forces -> Step2. The
// callback must leave forces evaluated at the updated positions.
func (v *VelocityVerlet) Integrate(sys *particle.System, computeForces func(*particle.System)) {
	v.Step1(sys)
	sys.ClearForces()
	if computeForces != nil {
		computeForces(sys)
	}
	v.Step2(sys)
}
