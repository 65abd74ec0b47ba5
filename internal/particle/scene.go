package particle

import (
	"math"
	"math/rand/v2"
)

// FillCubic places n particles of the given mass on a simple cubic grid
// inside an axis-aligned box with the given edge length. The grid pitch
// is chosen so all n particles fit; extra grid sites are left empty.
func FillCubic(s *System, n int, mass, edge float64) error {
	perSide := int(math.Ceil(math.Cbrt(float64(n))))
	if perSide < 1 {
		perSide = 1
	}
	pitch := edge / float64(perSide)
	placed := 0
	for ix := 0; ix < perSide && placed < n; ix++ {
		for iy := 0; iy < perSide && placed < n; iy++ {
			for iz := 0; iz < perSide && placed < n; iz++ {
				p := Particle{Mass: mass}
				p.Pos[0] = (float64(ix) + 0.5) * pitch
				p.Pos[1] = (float64(iy) + 0.5) * pitch
				p.Pos[2] = (float64(iz) + 0.5) * pitch
				if err := s.Add(p); err != nil {
					return err
				}
				placed++
			}
		}
	}
	return nil
}

// SeedMaxwell assigns velocities drawn from the Maxwell-Boltzmann
// distribution at temperature T [K], per axis σ = sqrt(k_B·T/m), then
// removes the center-of-mass drift so the seeded system carries no net
// momentum.
func SeedMaxwell(s *System, T float64, rng *rand.Rand) {
	if T <= 0 {
		return
	}
	for i := 0; i < s.Len(); i++ {
		p := s.At(i)
		if p.Mass <= 0 {
			continue
		}
		sigma := math.Sqrt(KB * T / p.Mass)
		for axis := 0; axis < 3; axis++ {
			p.Vel[axis] = sigma * rng.NormFloat64()
		}
	}
	s.ZeroCOMVelocity()
}
