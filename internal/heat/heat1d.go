// Package heat implements explicit finite-difference solvers for the
// scalar diffusion equation dT/dt = alpha * laplacian(T) with Dirichlet
// boundaries, in 1D and 2D. The models are independent of the particle
// machinery but satisfy the same step/finished/time lifecycle contract
// as the MD stack.
package heat

import (
	"fmt"
	"math"

	"github.com/san-kum/matsim/internal/arena"
)

// DefaultMaxBytes bounds a model's field buffers at 256 MiB.
const DefaultMaxBytes = int64(256) << 20

// Params1D configures the 1D solver. Immutable once validated; all SI.
type Params1D struct {
	Alpha    float64 // thermal diffusivity [m²/s]
	Dx       float64 // grid spacing [m]
	Dt       float64 // time step [s]
	EndTime  float64 // end time [s]
	MaxSteps int
	NCells   int // rod length in cells
}

// Defaults1D returns a stable millisecond-scale configuration.
func Defaults1D() Params1D {
	return Params1D{
		Alpha:    1e-5,
		Dx:       1e-3,
		Dt:       1e-6,
		EndTime:  1e-3,
		MaxSteps: 1_000_000,
		NCells:   100,
	}
}

// StabilityLimit is the explicit-Euler bound dt <= dx²/(2·alpha).
func (p Params1D) StabilityLimit() float64 {
	if p.Alpha <= 0 || p.Dx <= 0 {
		return 0
	}
	return p.Dx * p.Dx / (2.0 * p.Alpha)
}

// Validate returns a specific reason the configuration cannot run, or nil.
func (p Params1D) Validate() error {
	if !isFinitePositive(p.Alpha) {
		return fmt.Errorf("thermal diffusivity alpha must be positive and finite, got %g", p.Alpha)
	}
	if !isFinitePositive(p.Dx) {
		return fmt.Errorf("grid spacing dx must be positive and finite, got %g", p.Dx)
	}
	if !isFinitePositive(p.Dt) {
		return fmt.Errorf("time step dt must be positive and finite, got %g", p.Dt)
	}
	if math.IsNaN(p.EndTime) || math.IsInf(p.EndTime, 0) || p.EndTime < 0 {
		return fmt.Errorf("end time must be non-negative and finite, got %g", p.EndTime)
	}
	if p.MaxSteps <= 0 {
		return fmt.Errorf("max steps must be greater than 0, got %d", p.MaxSteps)
	}
	if p.NCells < 2 {
		return fmt.Errorf("number of cells must be at least 2, got %d", p.NCells)
	}
	if limit := p.StabilityLimit(); p.Dt > limit {
		return fmt.Errorf("time step dt = %g exceeds stability limit dx²/(2·alpha) = %g", p.Dt, limit)
	}
	return nil
}

func isFinitePositive(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0) && x > 0
}

// initialInteriorT is the interior temperature of the 1D initial field;
// the rod ends are held at 0 K.
const initialInteriorT = 300.0

// Model1D steps the 1D rod. Construct with New1D and check Valid()
// before stepping.
type Model1D struct {
	params    Params1D
	field     []float64
	next      []float64
	time      float64
	stepCount int
	err       error
	valid     bool
}

// New1D validates params and allocates the double-buffered field against
// the byte budget. On any failure the model is usable only for error
// inspection.
func New1D(params Params1D, maxBytes int64) *Model1D {
	m := &Model1D{params: params}
	if err := params.Validate(); err != nil {
		m.err = err
		return m
	}
	budget := arena.New(maxBytes)
	if err := budget.Reserve(int64(params.NCells) * 2 * 8); err != nil {
		m.err = fmt.Errorf("allocate temperature field: %w", err)
		return m
	}
	m.field = make([]float64, params.NCells)
	m.next = make([]float64, params.NCells)
	m.initialize()
	m.valid = true
	return m
}

func (m *Model1D) initialize() {
	n := len(m.field)
	for i := 1; i < n-1; i++ {
		m.field[i] = initialInteriorT
	}
	m.field[0] = 0
	m.field[n-1] = 0
	copy(m.next, m.field)
}

// Step advances one explicit Euler sweep. The new field is written into
// the secondary buffer, boundaries re-applied, then the buffers swap, so
// a sweep never reads its own writes.
func (m *Model1D) Step() bool {
	if !m.valid || m.Finished() {
		return false
	}
	r := m.params.Alpha * m.params.Dt / (m.params.Dx * m.params.Dx)
	n := len(m.field)
	for i := 1; i < n-1; i++ {
		m.next[i] = m.field[i] + r*(m.field[i-1]-2.0*m.field[i]+m.field[i+1])
	}
	m.next[0] = m.field[0]
	m.next[n-1] = m.field[n-1]
	m.field, m.next = m.next, m.field

	m.time += m.params.Dt
	m.stepCount++

	if math.IsNaN(m.time) || math.IsInf(m.time, 0) {
		m.err = fmt.Errorf("time became non-finite after step %d", m.stepCount)
		m.valid = false
		return false
	}
	return true
}

// Finished reports the terminal condition: invalid, step budget spent, or
// end time reached. The 1D model always honors EndTime.
func (m *Model1D) Finished() bool {
	if !m.valid {
		return true
	}
	if m.stepCount >= m.params.MaxSteps {
		return true
	}
	return m.time >= m.params.EndTime
}

func (m *Model1D) Time() float64  { return m.time }
func (m *Model1D) StepCount() int { return m.stepCount }
func (m *Model1D) Valid() bool    { return m.valid }
func (m *Model1D) Err() error     { return m.err }

// Temperature is the current field [K], read-only.
func (m *Model1D) Temperature() []float64 { return m.field }

func (m *Model1D) NCells() int { return m.params.NCells }

func (m *Model1D) Params() Params1D { return m.params }
