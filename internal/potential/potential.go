// Package potential defines pairwise interaction laws as pure functions
// of the squared inter-particle distance. Implementations must return
// exactly zero beyond their cutoff (hard cutoff, no tail correction).
package potential

import "math"

// Potential is a stateless pair law. ForceOverR returns F/r so callers
// multiply by the raw displacement vector to get the force, avoiding a
// separate unit-vector division.
type Potential interface {
	// Energy of one pair at squared distance r2 [J].
	Energy(r2 float64) float64
	// ForceOverR is F/r at squared distance r2 [N/m].
	ForceOverR(r2 float64) float64
	// CutoffSq is the squared interaction cutoff [m²].
	CutoffSq() float64
}

// Cutoff returns the interaction range of p in meters.
func Cutoff(p Potential) float64 { return math.Sqrt(p.CutoffSq()) }

// LennardJones is the 12-6 potential
//
//	U(r) = 4ε[(σ/r)¹² − (σ/r)⁶] − shift
//
// with the shift chosen so U(cutoff) = 0 (continuity at the cutoff).
// Argon: ε = 1.654e-21 J, σ = 3.405e-10 m.
type LennardJones struct {
	epsilon  float64
	sigma    float64
	cutoffSq float64
	shift    float64
	sigmaSq  float64
}

func NewLennardJones(epsilon, sigma, cutoff float64) *LennardJones {
	lj := &LennardJones{
		epsilon:  epsilon,
		sigma:    sigma,
		cutoffSq: cutoff * cutoff,
		sigmaSq:  sigma * sigma,
	}
	s2 := lj.sigmaSq / lj.cutoffSq
	s6 := s2 * s2 * s2
	lj.shift = 4.0 * epsilon * (s6*s6 - s6)
	return lj
}

func (lj *LennardJones) Epsilon() float64 { return lj.epsilon }
func (lj *LennardJones) Sigma() float64   { return lj.sigma }

func (lj *LennardJones) Energy(r2 float64) float64 {
	if r2 >= lj.cutoffSq {
		return 0.0
	}
	s2 := lj.sigmaSq / r2
	s6 := s2 * s2 * s2
	return 4.0*lj.epsilon*(s6*s6-s6) - lj.shift
}

func (lj *LennardJones) ForceOverR(r2 float64) float64 {
	if r2 >= lj.cutoffSq {
		return 0.0
	}
	s2 := lj.sigmaSq / r2
	s6 := s2 * s2 * s2
	// F/r = 24ε(2(σ/r)¹² − (σ/r)⁶)/r²
	return 24.0 * lj.epsilon * (2.0*s6*s6 - s6) / r2
}

func (lj *LennardJones) CutoffSq() float64 { return lj.cutoffSq }

// Harmonic is the spring law U(r) = ½k(r−r0)² for bonded-style use.
// Unshifted, so the energy is discontinuous at the cutoff.
type Harmonic struct {
	k        float64
	r0       float64
	cutoffSq float64
}

func NewHarmonic(k, r0, cutoff float64) *Harmonic {
	return &Harmonic{k: k, r0: r0, cutoffSq: cutoff * cutoff}
}

func (h *Harmonic) K() float64  { return h.k }
func (h *Harmonic) R0() float64 { return h.r0 }

func (h *Harmonic) Energy(r2 float64) float64 {
	if r2 >= h.cutoffSq {
		return 0.0
	}
	dr := math.Sqrt(r2) - h.r0
	return 0.5 * h.k * dr * dr
}

func (h *Harmonic) ForceOverR(r2 float64) float64 {
	if r2 >= h.cutoffSq {
		return 0.0
	}
	r := math.Sqrt(r2)
	// F/r = −k(r−r0)/r
	return -h.k * (r - h.r0) / r
}

func (h *Harmonic) CutoffSq() float64 { return h.cutoffSq }
