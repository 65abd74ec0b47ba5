package thermostat

import (
	"math"

	"github.com/san-kum/matsim/internal/particle"
)

// VelocityRescale is a Berendsen-style rescaling thermostat with
// coupling time tau (smaller = stronger coupling):
//
//	λ² = 1 + (dt/τ)(T_target/T_current − 1)
//
// It does not sample the canonical ensemble correctly; use it for
// equilibration only, not production runs.
type VelocityRescale struct {
	targetT float64
	tau     float64
}

func NewVelocityRescale(targetT, tau float64) *VelocityRescale {
	return &VelocityRescale{targetT: targetT, tau: tau}
}

func (v *VelocityRescale) TargetTemperature() float64 { return v.targetT }
func (v *VelocityRescale) SetTargetTemperature(T float64) {
	v.targetT = T
}

func (v *VelocityRescale) Tau() float64 { return v.tau }

// Apply scales every velocity by λ. No-op when the current or target
// temperature is non-positive, or when λ² ≤ 0 (numerically pathological).
func (v *VelocityRescale) Apply(sys *particle.System, dt float64) {
	currentT := sys.Temperature()
	if currentT <= 0 || v.targetT <= 0 {
		return
	}
	lambdaSq := 1.0 + (dt/v.tau)*(v.targetT/currentT-1.0)
	if lambdaSq <= 0 {
		return
	}
	lambda := math.Sqrt(lambdaSq)
	ps := sys.Particles()
	for i := range ps {
		ps[i].Vel = ps[i].Vel.Scale(lambda)
	}
}
