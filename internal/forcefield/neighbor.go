package forcefield

import (
	"github.com/san-kum/matsim/internal/lattice"
	"github.com/san-kum/matsim/internal/particle"
	"github.com/san-kum/matsim/internal/potential"
	"github.com/san-kum/matsim/internal/vec"
)

// NeighborList is a Verlet list: for each particle i, the partner indices
// j > i within cutoff+skin, plus a snapshot of positions at last build.
// The list is either empty-and-stale or fully consistent with the stored
// snapshot.
//
// A particle cannot enter another's interaction cutoff without first
// crossing half the skin buffer, so checking drift against skin/2
// guarantees no pair is missed between rebuilds. The rebuild check uses
// the same lattice-aware minimum-image displacement as the build.
type NeighborList struct {
	cutoff     float64
	skin       float64
	totalSq    float64 // (cutoff+skin)²
	skinHalfSq float64 // (skin/2)²

	neighbors [][]int
	lastPos   []vec.Vec3
	pairs     int
}

// NewNeighborList builds an empty list for the given force cutoff and
// skin buffer (typically 0.2-0.3 × cutoff).
func NewNeighborList(cutoff, skin float64) *NeighborList {
	nl := &NeighborList{}
	nl.SetCutoff(cutoff, skin)
	return nl
}

// SetCutoff updates the distances and invalidates the current list.
func (nl *NeighborList) SetCutoff(cutoff, skin float64) {
	nl.cutoff = cutoff
	nl.skin = skin
	nl.totalSq = (cutoff + skin) * (cutoff + skin)
	nl.skinHalfSq = (skin * 0.5) * (skin * 0.5)
	nl.Clear()
}

func (nl *NeighborList) Cutoff() float64      { return nl.cutoff }
func (nl *NeighborList) Skin() float64        { return nl.skin }
func (nl *NeighborList) TotalCutoff() float64 { return nl.cutoff + nl.skin }
func (nl *NeighborList) NumPairs() int        { return nl.pairs }
func (nl *NeighborList) Size() int            { return len(nl.neighbors) }

// Neighbors returns the candidate partners of particle i (indices > i).
func (nl *NeighborList) Neighbors(i int) []int { return nl.neighbors[i] }

// Clear drops the list back to the empty-and-stale state.
func (nl *NeighborList) Clear() {
	nl.neighbors = nil
	nl.lastPos = nil
	nl.pairs = 0
}

// Build enumerates all unique pairs i<j and records those within
// cutoff+skin, snapshotting current positions for the drift check.
// Returns the number of pairs recorded.
func (nl *NeighborList) Build(sys *particle.System, lat *lattice.Lattice) int {
	n := sys.Len()
	nl.neighbors = make([][]int, n)
	nl.lastPos = make([]vec.Vec3, n)
	nl.pairs = 0

	for i := 0; i < n; i++ {
		nl.lastPos[i] = sys.At(i).Pos
	}
	for i := 0; i < n; i++ {
		pi := sys.At(i)
		for j := i + 1; j < n; j++ {
			_, r2 := pairDisplacement(pi, sys.At(j), lat)
			if r2 < nl.totalSq {
				nl.neighbors[i] = append(nl.neighbors[i], j)
				nl.pairs++
			}
		}
	}
	return nl.pairs
}

// NeedsRebuild reports whether the particle count changed or any
// particle's minimum-image drift since the snapshot exceeds skin/2.
func (nl *NeighborList) NeedsRebuild(sys *particle.System, lat *lattice.Lattice) bool {
	if sys.Len() != len(nl.lastPos) {
		return true
	}
	for i := 0; i < sys.Len(); i++ {
		var dr vec.Vec3
		if lat != nil {
			dr = lat.MinImageDisplacement(nl.lastPos[i], sys.At(i).Pos)
		} else {
			dr = sys.At(i).Pos.Sub(nl.lastPos[i])
		}
		if dr.NormSq() > nl.skinHalfSq {
			return true
		}
	}
	return false
}

// NeighborForceField evaluates forces over a lazily rebuilt neighbor
// list. Pair distances are re-measured against the potential's own
// cutoff, so skin-only pairs contribute nothing.
type NeighborForceField struct {
	pot  potential.Potential
	list *NeighborList
}

func NewNeighbor(pot potential.Potential, cutoff, skin float64) *NeighborForceField {
	return &NeighborForceField{pot: pot, list: NewNeighborList(cutoff, skin)}
}

func (f *NeighborForceField) Potential() potential.Potential { return f.pot }
func (f *NeighborForceField) SetPotential(p potential.Potential) {
	f.pot = p
}

func (f *NeighborForceField) List() *NeighborList { return f.list }

// ComputeForces rebuilds the list only when NeedsRebuild reports drift,
// then accumulates forces over the cached pairs. Returns total potential
// energy [J].
func (f *NeighborForceField) ComputeForces(sys *particle.System, lat *lattice.Lattice) float64 {
	if f.list.NeedsRebuild(sys, lat) {
		f.list.Build(sys, lat)
	}
	sys.ClearForces()
	if f.pot == nil {
		return 0.0
	}
	epot := 0.0
	cutoffSq := f.pot.CutoffSq()
	for i := 0; i < sys.Len(); i++ {
		pi := sys.At(i)
		for _, j := range f.list.Neighbors(i) {
			pj := sys.At(j)
			dr, r2 := pairDisplacement(pi, pj, lat)
			if r2 >= cutoffSq {
				continue
			}
			epot += f.pot.Energy(r2)
			fij := dr.Scale(f.pot.ForceOverR(r2))
			pj.AddForce(fij)
			pi.AddForce(fij.Scale(-1))
		}
	}
	return epot
}

// ComputeEnergy is the energy-only variant over the cached list.
func (f *NeighborForceField) ComputeEnergy(sys *particle.System, lat *lattice.Lattice) float64 {
	if f.list.NeedsRebuild(sys, lat) {
		f.list.Build(sys, lat)
	}
	if f.pot == nil {
		return 0.0
	}
	epot := 0.0
	cutoffSq := f.pot.CutoffSq()
	for i := 0; i < sys.Len(); i++ {
		pi := sys.At(i)
		for _, j := range f.list.Neighbors(i) {
			_, r2 := pairDisplacement(pi, sys.At(j), lat)
			if r2 < cutoffSq {
				epot += f.pot.Energy(r2)
			}
		}
	}
	return epot
}
