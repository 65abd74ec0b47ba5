// Package lattice implements periodic cell geometry for simulations with
// periodic boundary conditions: fractional/Cartesian conversion,
// minimum-image displacements, wrapping, and reciprocal vectors. All
// lengths are SI meters. The math is exact for non-orthogonal
// (triclinic) cells.
package lattice

import (
	"fmt"
	"math"

	"github.com/san-kum/matsim/internal/vec"
)

// Lattice holds three right-handed basis vectors. Lattice points are
// R = n1*A1 + n2*A2 + n3*A3. Value type, copied freely.
//
// All geometry methods except Validate assume a prior successful
// Validate; calling them on a degenerate basis is a caller bug.
type Lattice struct {
	A1, A2, A3 vec.Vec3
}

// Unit returns the default cubic cell with 1 m edges.
func Unit() Lattice {
	return Lattice{
		A1: vec.Vec3{1, 0, 0},
		A2: vec.Vec3{0, 1, 0},
		A3: vec.Vec3{0, 0, 1},
	}
}

// Cubic returns an axis-aligned cubic cell with the given edge length.
func Cubic(edge float64) Lattice {
	return Lattice{
		A1: vec.Vec3{edge, 0, 0},
		A2: vec.Vec3{0, edge, 0},
		A3: vec.Vec3{0, 0, edge},
	}
}

// Volume is the signed cell volume V = A1 · (A2 × A3) in m³.
func (l Lattice) Volume() float64 {
	return l.A1.Dot(l.A2.Cross(l.A3))
}

// Validate reports why the basis is unusable: non-finite components or a
// volume below machine epsilon (linearly dependent vectors).
func (l Lattice) Validate() error {
	for _, b := range []struct {
		name string
		v    vec.Vec3
	}{{"a1", l.A1}, {"a2", l.A2}, {"a3", l.A3}} {
		if !b.v.IsFinite() {
			return fmt.Errorf("lattice vector %s has non-finite components", b.name)
		}
	}
	v := l.Volume()
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("lattice volume is non-finite")
	}
	if math.Abs(v) < epsilon {
		return fmt.Errorf("lattice vectors are linearly dependent (volume %g below machine epsilon)", v)
	}
	return nil
}

// epsilon is the double-precision machine epsilon, the degeneracy
// threshold for the cell volume.
var epsilon = math.Nextafter(1, 2) - 1

// CartesianToFractional converts a Cartesian vector to fractional
// (direct) coordinates via the Cramer's-rule inverse of the basis matrix,
// using the reciprocal-style cross products.
func (l Lattice) CartesianToFractional(cart vec.Vec3) vec.Vec3 {
	v := l.Volume()
	if math.Abs(v) < epsilon {
		return vec.Vec3{}
	}
	inv := 1.0 / v
	return vec.Vec3{
		inv * l.A2.Cross(l.A3).Dot(cart),
		inv * l.A3.Cross(l.A1).Dot(cart),
		inv * l.A1.Cross(l.A2).Dot(cart),
	}
}

// FractionalToCartesian maps fractional coordinates back to Cartesian:
// cart = f0*A1 + f1*A2 + f2*A3.
func (l Lattice) FractionalToCartesian(frac vec.Vec3) vec.Vec3 {
	return l.A1.Scale(frac[0]).Add(l.A2.Scale(frac[1])).Add(l.A3.Scale(frac[2]))
}

// WrapCartesian wraps a position into the primary cell: fractional
// coordinates are folded to [0,1) per axis and mapped back.
func (l Lattice) WrapCartesian(cart vec.Vec3) vec.Vec3 {
	f := l.CartesianToFractional(cart)
	for i := range f {
		f[i] -= math.Floor(f[i])
	}
	return l.FractionalToCartesian(f)
}

// MinImageFrac folds a fractional displacement to [-0.5, 0.5) per axis,
// the half-box convention.
func MinImageFrac(frac vec.Vec3) vec.Vec3 {
	for i := range frac {
		for frac[i] >= 0.5 {
			frac[i] -= 1.0
		}
		for frac[i] < -0.5 {
			frac[i] += 1.0
		}
	}
	return frac
}

// MinImageDisplacement returns the minimum-image displacement from r1 to
// r2: the Cartesian difference is taken to fractional coordinates, folded
// to the half-box, and mapped back. Correct for non-orthogonal cells.
func (l Lattice) MinImageDisplacement(r1, r2 vec.Vec3) vec.Vec3 {
	f := l.CartesianToFractional(r2.Sub(r1))
	return l.FractionalToCartesian(MinImageFrac(f))
}

// ReciprocalVectors returns b1, b2, b3 with b_i · a_j = 2π δ_ij.
func (l Lattice) ReciprocalVectors() (b1, b2, b3 vec.Vec3) {
	v := l.Volume()
	if math.Abs(v) < epsilon {
		return
	}
	factor := 2.0 * math.Pi / v
	b1 = l.A2.Cross(l.A3).Scale(factor)
	b2 = l.A3.Cross(l.A1).Scale(factor)
	b3 = l.A1.Cross(l.A2).Scale(factor)
	return
}

// IsOrthogonal reports whether the basis is axis-aligned: A1 along x, A2
// along y, A3 along z, off-diagonal components below 1e-10.
func (l Lattice) IsOrthogonal() bool {
	const tol = 1e-10
	if math.Abs(l.A1[1]) > tol || math.Abs(l.A1[2]) > tol {
		return false
	}
	if math.Abs(l.A2[0]) > tol || math.Abs(l.A2[2]) > tol {
		return false
	}
	if math.Abs(l.A3[0]) > tol || math.Abs(l.A3[1]) > tol {
		return false
	}
	return true
}
