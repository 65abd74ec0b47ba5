package heat

import (
	"fmt"
	"math"

	"github.com/san-kum/matsim/internal/arena"
)

// IC2D selects the 2D initial condition preset.
type IC2D int

const (
	// HotCenter is a Gaussian hot spot centered in the domain, sigma
	// given as a fraction of domain width. Models thermal shock from a
	// point heat source.
	HotCenter IC2D = iota
	// UniformHot starts the whole interior at THot with the edges held
	// cold. Models quenching from the boundary.
	UniformHot
)

func (ic IC2D) String() string {
	switch ic {
	case HotCenter:
		return "hot-center"
	case UniformHot:
		return "uniform-hot"
	}
	return fmt.Sprintf("IC2D(%d)", int(ic))
}

// ParseIC2D maps a preset name to its constant.
func ParseIC2D(s string) (IC2D, error) {
	switch s {
	case "hot-center", "hotcenter", "gaussian":
		return HotCenter, nil
	case "uniform-hot", "uniform":
		return UniformHot, nil
	}
	return 0, fmt.Errorf("unknown initial condition %q (want hot-center or uniform-hot)", s)
}

// Params2D configures the 2D solver on a uniform nx-by-ny grid.
// EndTime == 0 means run until MaxSteps (continuous mode), unlike the 1D
// model which always honors EndTime.
type Params2D struct {
	Alpha    float64 // thermal diffusivity [m²/s]
	Dx       float64 // grid spacing [m]
	Dt       float64 // time step [s]
	EndTime  float64 // end time [s]; 0 = continuous
	MaxSteps int
	Nx, Ny   int

	TBoundary     float64 // Dirichlet edge temperature [K]
	THot          float64 // hot region temperature [K]
	HotRadiusFrac float64 // Gaussian sigma as fraction of domain width (HotCenter)
	IC            IC2D
}

// Defaults2D is a copper plate with a centered hot spot.
func Defaults2D() Params2D {
	return Params2D{
		Alpha:         1.11e-4, // copper
		Dx:            1.25e-3,
		Dt:            3.0e-3,
		EndTime:       0,
		MaxSteps:      10_000_000,
		Nx:            80,
		Ny:            80,
		TBoundary:     300.0,
		THot:          1200.0,
		HotRadiusFrac: 0.12,
		IC:            HotCenter,
	}
}

// StabilityLimit is the 5-point-stencil bound dt <= dx²/(4·alpha).
func (p Params2D) StabilityLimit() float64 {
	if p.Alpha <= 0 || p.Dx <= 0 {
		return 0
	}
	return p.Dx * p.Dx / (4.0 * p.Alpha)
}

func (p Params2D) Validate() error {
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
	if p.Nx < 3 || p.Ny < 3 {
		return fmt.Errorf("grid must be at least 3x3 to have interior cells, got %dx%d", p.Nx, p.Ny)
	}
	if math.IsNaN(p.TBoundary) || math.IsInf(p.TBoundary, 0) || p.TBoundary < 0 {
		return fmt.Errorf("boundary temperature must be non-negative and finite, got %g", p.TBoundary)
	}
	if math.IsNaN(p.THot) || math.IsInf(p.THot, 0) || p.THot <= p.TBoundary {
		return fmt.Errorf("hot temperature %g must be finite and above boundary temperature %g", p.THot, p.TBoundary)
	}
	if p.IC == HotCenter && !isFinitePositive(p.HotRadiusFrac) {
		return fmt.Errorf("hot radius fraction must be positive and finite, got %g", p.HotRadiusFrac)
	}
	if limit := p.StabilityLimit(); p.Dt > limit {
		return fmt.Errorf("time step dt = %g exceeds 2D stability limit dx²/(4·alpha) = %g", p.Dt, limit)
	}
	return nil
}

// Model2D steps the 2D plate. Field storage is row-major:
// T[j*nx+i] is the cell at column i, row j.
type Model2D struct {
	params    Params2D
	nx, ny    int
	field     []float64
	next      []float64
	time      float64
	stepCount int
	err       error
	valid     bool
}

func New2D(params Params2D, maxBytes int64) *Model2D {
	m := &Model2D{params: params, nx: params.Nx, ny: params.Ny}
	if err := params.Validate(); err != nil {
		m.err = err
		return m
	}
	budget := arena.New(maxBytes)
	cells := int64(params.Nx) * int64(params.Ny)
	if err := budget.Reserve(cells * 2 * 8); err != nil {
		m.err = fmt.Errorf("allocate %dx%d temperature field: %w", params.Nx, params.Ny, err)
		return m
	}
	m.field = make([]float64, cells)
	m.next = make([]float64, cells)
	m.initialize()
	m.valid = true
	return m
}

func (m *Model2D) initialize() {
	switch m.params.IC {
	case HotCenter:
		m.initHotCenter()
	case UniformHot:
		for i := range m.field {
			m.field[i] = m.params.THot
		}
	}
	// The boundary overwrites the preset instantly: Dirichlet holds from
	// t = 0.
	m.applyBoundary(m.field)
	copy(m.next, m.field)
}

// initHotCenter sets T(x,y) = Tb + (Thot−Tb)·exp(−r²/(2σ²)) with r the
// distance from the domain center in fractional coordinates and
// σ = HotRadiusFrac.
func (m *Model2D) initHotCenter() {
	sigma := m.params.HotRadiusFrac
	inv2s2 := 1.0 / (2.0 * sigma * sigma)
	delta := m.params.THot - m.params.TBoundary
	for j := 0; j < m.ny; j++ {
		fy := (float64(j)+0.5)/float64(m.ny) - 0.5
		for i := 0; i < m.nx; i++ {
			fx := (float64(i)+0.5)/float64(m.nx) - 0.5
			r2 := fx*fx + fy*fy
			m.field[j*m.nx+i] = m.params.TBoundary + delta*math.Exp(-r2*inv2s2)
		}
	}
}

func (m *Model2D) applyBoundary(field []float64) {
	tb := m.params.TBoundary
	// Bottom and top rows.
	for i := 0; i < m.nx; i++ {
		field[i] = tb
		field[(m.ny-1)*m.nx+i] = tb
	}
	// Left and right columns.
	for j := 0; j < m.ny; j++ {
		field[j*m.nx] = tb
		field[j*m.nx+(m.nx-1)] = tb
	}
}

// Step advances one forward-Euler sweep of the 5-point Laplacian into the
// secondary buffer, re-applies the Dirichlet edges, then swaps buffers.
func (m *Model2D) Step() bool {
	if !m.valid || m.Finished() {
		return false
	}
	r := m.params.Alpha * m.params.Dt / (m.params.Dx * m.params.Dx)
	for j := 1; j < m.ny-1; j++ {
		for i := 1; i < m.nx-1; i++ {
			idx := j*m.nx + i
			m.next[idx] = m.field[idx] + r*(m.field[idx-1]+m.field[idx+1]+
				m.field[idx-m.nx]+m.field[idx+m.nx]-4.0*m.field[idx])
		}
	}
	m.applyBoundary(m.next)
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

func (m *Model2D) Finished() bool {
	if !m.valid {
		return true
	}
	if m.stepCount >= m.params.MaxSteps {
		return true
	}
	// EndTime 0 = continuous mode, bounded by MaxSteps only.
	return m.params.EndTime > 0 && m.time >= m.params.EndTime
}

func (m *Model2D) Time() float64  { return m.time }
func (m *Model2D) StepCount() int { return m.stepCount }
func (m *Model2D) Valid() bool    { return m.valid }
func (m *Model2D) Err() error     { return m.err }

// Temperature is the current row-major field [K], read-only.
func (m *Model2D) Temperature() []float64 { return m.field }

func (m *Model2D) Nx() int { return m.nx }
func (m *Model2D) Ny() int { return m.ny }

// TCold and THot are the fixed color-scale bounds for rendering; using
// them keeps the heatmap palette steady as the field decays.
func (m *Model2D) TCold() float64 { return m.params.TBoundary }
func (m *Model2D) THot() float64  { return m.params.THot }

func (m *Model2D) Params() Params2D { return m.params }
