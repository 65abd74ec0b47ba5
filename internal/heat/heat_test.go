package heat

import (
	"math"
	"strings"
	"testing"
)

func TestParams1DValidate(t *testing.T) {
	base := Defaults1D()

	tests := []struct {
		name    string
		mutate  func(*Params1D)
		wantErr string
	}{
		{"defaults ok", func(p *Params1D) {}, ""},
		{"zero alpha", func(p *Params1D) { p.Alpha = 0 }, "alpha"},
		{"negative dx", func(p *Params1D) { p.Dx = -1 }, "dx"},
		{"zero dt", func(p *Params1D) { p.Dt = 0 }, "dt"},
		{"nan dt", func(p *Params1D) { p.Dt = math.NaN() }, "dt"},
		{"negative end time", func(p *Params1D) { p.EndTime = -1 }, "end time"},
		{"zero max steps", func(p *Params1D) { p.MaxSteps = 0 }, "max steps"},
		{"one cell", func(p *Params1D) { p.NCells = 1 }, "cells"},
		{"unstable dt", func(p *Params1D) { p.Dt = p.StabilityLimit() * 1.01 }, "stability"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := base
			tt.mutate(&p)
			err := p.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want error mentioning %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %q, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestStabilityLimits(t *testing.T) {
	p1 := Params1D{Alpha: 1e-5, Dx: 1e-3}
	if got, want := p1.StabilityLimit(), 5e-5; math.Abs(got-want)/want > 1e-12 {
		t.Errorf("1D StabilityLimit = %g, want %g", got, want)
	}
	p2 := Params2D{Alpha: 1e-5, Dx: 1e-3}
	if got, want := p2.StabilityLimit(), 2.5e-5; math.Abs(got-want)/want > 1e-12 {
		t.Errorf("2D StabilityLimit = %g, want %g", got, want)
	}
}

func TestModel1DDeterminism(t *testing.T) {
	// Two identically parameterized models must produce identical
	// time/step trajectories and fields.
	p := Defaults1D()
	a := New1D(p, DefaultMaxBytes)
	b := New1D(p, DefaultMaxBytes)
	if !a.Valid() || !b.Valid() {
		t.Fatalf("models invalid: %v / %v", a.Err(), b.Err())
	}
	for i := 0; i < 200; i++ {
		ra, rb := a.Step(), b.Step()
		if ra != rb || a.Time() != b.Time() || a.StepCount() != b.StepCount() {
			t.Fatalf("trajectories diverged at step %d", i)
		}
	}
	fa, fb := a.Temperature(), b.Temperature()
	for i := range fa {
		if fa[i] != fb[i] {
			t.Fatalf("fields differ at cell %d: %g vs %g", i, fa[i], fb[i])
		}
	}
}

func TestModel1DEndToEnd(t *testing.T) {
	// Runs to end_time with all temperatures finite and within
	// [0, initial interior temperature].
	p := Params1D{
		Alpha:    1e-5,
		Dx:       1e-3,
		Dt:       4e-7, // stability limit is 5e-5
		EndTime:  1e-3,
		MaxSteps: 10_000,
		NCells:   50,
	}
	m := New1D(p, DefaultMaxBytes)
	if !m.Valid() {
		t.Fatalf("model invalid: %v", m.Err())
	}
	for m.Step() {
	}
	if m.StepCount() == 0 {
		t.Fatal("no steps taken")
	}
	if math.Abs(m.Time()-1e-3) > p.Dt {
		t.Errorf("final time = %g, want ~1e-3", m.Time())
	}
	for i, T := range m.Temperature() {
		if math.IsNaN(T) || math.IsInf(T, 0) {
			t.Fatalf("cell %d is non-finite: %g", i, T)
		}
		if T < 0 || T > initialInteriorT {
			t.Fatalf("cell %d = %g outside [0, %g]", i, T, initialInteriorT)
		}
	}
	// Dirichlet ends stay cold.
	f := m.Temperature()
	if f[0] != 0 || f[len(f)-1] != 0 {
		t.Errorf("boundary cells moved: %g, %g", f[0], f[len(f)-1])
	}
}

func TestModel1DInvalidConstruction(t *testing.T) {
	p := Defaults1D()
	p.Dt = p.StabilityLimit() * 2
	m := New1D(p, DefaultMaxBytes)
	if m.Valid() {
		t.Fatal("unstable params produced a valid model")
	}
	if m.Err() == nil {
		t.Fatal("invalid model has no error")
	}
	if m.Step() {
		t.Error("invalid model stepped")
	}
	if !m.Finished() {
		t.Error("invalid model should report finished")
	}
}

func TestModel1DBudget(t *testing.T) {
	p := Defaults1D()
	m := New1D(p, 64) // far too small for 100 cells of two buffers
	if m.Valid() {
		t.Fatal("model valid despite insufficient byte budget")
	}
	if m.Err() == nil || !strings.Contains(m.Err().Error(), "budget") {
		t.Errorf("Err() = %v, want budget exhaustion", m.Err())
	}
}

func TestModel1DNonFiniteTimeIsFatal(t *testing.T) {
	// A near-zero diffusivity lifts the stability limit enough to admit a
	// dt near the float64 ceiling; the time accumulator then overflows on
	// the second step while the field update itself stays tiny.
	p := Params1D{
		Alpha:    1e-320,
		Dx:       1e-3,
		Dt:       1e308,
		EndTime:  math.MaxFloat64,
		MaxSteps: 100,
		NCells:   10,
	}
	m := New1D(p, DefaultMaxBytes)
	if !m.Valid() {
		t.Fatalf("model invalid: %v", m.Err())
	}
	if !m.Step() {
		t.Fatalf("first step failed: %v", m.Err())
	}
	if m.Step() {
		t.Fatal("step succeeded after time overflowed")
	}
	if m.Valid() {
		t.Error("model still valid after non-finite time")
	}
	if err := m.Err(); err == nil || !strings.Contains(err.Error(), "non-finite") {
		t.Errorf("Err() = %v, want non-finite time failure", err)
	}
	if !m.Finished() {
		t.Error("failed model should report finished")
	}
	if m.Step() {
		t.Error("step succeeded on a failed model")
	}
}

func small2D(ic IC2D) Params2D {
	p := Defaults2D()
	p.Nx, p.Ny = 16, 12
	p.Dt = p.StabilityLimit() * 0.5
	return p.withIC(ic)
}

func (p Params2D) withIC(ic IC2D) Params2D {
	p.IC = ic
	return p
}

func TestParams2DValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params2D)
		want   string
	}{
		{"tiny grid", func(p *Params2D) { p.Nx = 2 }, "3x3"},
		{"hot below boundary", func(p *Params2D) { p.THot = p.TBoundary - 1 }, "hot temperature"},
		{"negative boundary", func(p *Params2D) { p.TBoundary = -5 }, "boundary temperature"},
		{"zero sigma", func(p *Params2D) { p.HotRadiusFrac = 0 }, "radius"},
		{"unstable", func(p *Params2D) { p.Dt = p.StabilityLimit() * 1.5 }, "stability"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Defaults2D()
			tt.mutate(&p)
			err := p.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() = %v, want mention of %q", err, tt.want)
			}
		})
	}

	// Uniform-hot ignores the radius fraction.
	p := Defaults2D()
	p.IC = UniformHot
	p.HotRadiusFrac = 0
	if err := p.Validate(); err != nil {
		t.Errorf("uniform-hot with zero radius should validate, got %v", err)
	}
}

func TestModel2DFieldStaysBounded(t *testing.T) {
	for _, ic := range []IC2D{HotCenter, UniformHot} {
		t.Run(ic.String(), func(t *testing.T) {
			m := New2D(small2D(ic), DefaultMaxBytes)
			if !m.Valid() {
				t.Fatalf("model invalid: %v", m.Err())
			}
			for s := 0; s < 500; s++ {
				if !m.Step() {
					break
				}
			}
			lo, hi := m.TCold(), m.THot()
			for i, T := range m.Temperature() {
				if math.IsNaN(T) || math.IsInf(T, 0) {
					t.Fatalf("cell %d non-finite: %g", i, T)
				}
				if T < 0 {
					t.Fatalf("cell %d negative: %g", i, T)
				}
				if T < lo-1e-9 || T > hi+1e-9 {
					t.Fatalf("cell %d = %g outside [%g, %g]", i, T, lo, hi)
				}
			}
		})
	}
}

func TestModel2DBoundariesHold(t *testing.T) {
	m := New2D(small2D(UniformHot), DefaultMaxBytes)
	if !m.Valid() {
		t.Fatal(m.Err())
	}
	// The uniform-hot preset is instantly overwritten at the edges.
	checkEdges := func(when string) {
		f, nx, ny := m.Temperature(), m.Nx(), m.Ny()
		tb := m.TCold()
		for i := 0; i < nx; i++ {
			if f[i] != tb || f[(ny-1)*nx+i] != tb {
				t.Fatalf("%s: row edge cell %d not at boundary temperature", when, i)
			}
		}
		for j := 0; j < ny; j++ {
			if f[j*nx] != tb || f[j*nx+nx-1] != tb {
				t.Fatalf("%s: column edge cell %d not at boundary temperature", when, j)
			}
		}
	}
	checkEdges("initial")
	for s := 0; s < 50; s++ {
		m.Step()
	}
	checkEdges("after stepping")
}

func TestModel2DContinuousMode(t *testing.T) {
	// EndTime 0 runs until MaxSteps.
	p := small2D(HotCenter)
	p.EndTime = 0
	p.MaxSteps = 37
	m := New2D(p, DefaultMaxBytes)
	steps := 0
	for m.Step() {
		steps++
	}
	if steps != 37 {
		t.Errorf("continuous mode ran %d steps, want 37", steps)
	}
	if !m.Finished() {
		t.Error("model should be finished at MaxSteps")
	}
	if !m.Valid() {
		t.Errorf("hitting MaxSteps is normal completion, not an error: %v", m.Err())
	}
}

func TestModel2DEndTime(t *testing.T) {
	p := small2D(HotCenter)
	p.EndTime = 10 * p.Dt
	m := New2D(p, DefaultMaxBytes)
	for m.Step() {
	}
	// Accumulated time may land one rounding ulp short of 10·dt, costing
	// one extra step.
	if got := m.StepCount(); got != 10 && got != 11 {
		t.Errorf("step count = %d, want 10 or 11", got)
	}
}

func TestModel2DNonFiniteTimeIsFatal(t *testing.T) {
	p := Defaults2D()
	p.Nx, p.Ny = 3, 3
	p.Alpha = 1e-320
	p.Dt = 1e308 // overflows the time accumulator on the second step
	p.MaxSteps = 100
	m := New2D(p, DefaultMaxBytes)
	if !m.Valid() {
		t.Fatalf("model invalid: %v", m.Err())
	}
	if !m.Step() {
		t.Fatalf("first step failed: %v", m.Err())
	}
	if m.Step() {
		t.Fatal("step succeeded after time overflowed")
	}
	if m.Valid() || m.Err() == nil {
		t.Errorf("Valid() = %v, Err() = %v, want invalid with error", m.Valid(), m.Err())
	}
	if !m.Finished() || m.Step() {
		t.Error("failure must be terminal")
	}
}

func TestParseIC2D(t *testing.T) {
	if ic, err := ParseIC2D("hot-center"); err != nil || ic != HotCenter {
		t.Errorf("ParseIC2D(hot-center) = %v, %v", ic, err)
	}
	if ic, err := ParseIC2D("uniform-hot"); err != nil || ic != UniformHot {
		t.Errorf("ParseIC2D(uniform-hot) = %v, %v", ic, err)
	}
	if _, err := ParseIC2D("plasma"); err == nil {
		t.Error("ParseIC2D(plasma) should fail")
	}
}
