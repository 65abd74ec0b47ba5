package integrators

import (
	"math"

	"github.com/san-kum/matsim/internal/particle"
)

// defaultTau is the femtosecond-scale fallback timescale used when
// velocities are near zero (typical MD steps are ~1 fs).
const defaultTau = 1e-14

// typicalDistance is the reference length for the characteristic-time
// estimate, about one atomic spacing.
const typicalDistance = 1e-10

// CharacteristicTime estimates the fastest timescale in the system: the
// time for the fastest particle to cross a typical atomic spacing. Empty
// systems get 1 s; near-zero velocities fall back to defaultTau.
func CharacteristicTime(sys *particle.System) float64 {
	if sys.Len() == 0 {
		return 1.0
	}
	maxVel := 0.0
	for i := 0; i < sys.Len(); i++ {
		p := sys.At(i)
		if p.Mass <= 0 {
			continue
		}
		if v := p.Vel.Norm(); v > maxVel {
			maxVel = v
		}
	}
	if maxVel < 1e-10 {
		return defaultTau
	}
	return typicalDistance / maxVel
}

// IsStableDt reports whether dt sits comfortably below the characteristic
// timescale (dt < tau/10).
func IsStableDt(dt float64, sys *particle.System) bool {
	return dt < CharacteristicTime(sys)/10.0
}

// RecommendedMaxDt is tau/20, a conservative step for good accuracy.
func RecommendedMaxDt(sys *particle.System) float64 {
	return CharacteristicTime(sys) / 20.0
}

// StabilityMargin returns dt relative to the tau/10 limit; values above 1
// mean the step is too large.
func StabilityMargin(dt float64, sys *particle.System) float64 {
	tau := CharacteristicTime(sys)
	if tau <= 0 {
		return math.Inf(1)
	}
	return dt / (tau / 10.0)
}
