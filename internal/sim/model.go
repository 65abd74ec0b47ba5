// Package sim orchestrates the simulation lifecycle: it validates
// parameters, fixes the mode (MD, 1D heat, 2D heat) at construction,
// drives the per-step protocol, enforces termination, and exposes
// read accessors for CLI/TUI layers. Display layers must only read
// through these accessors, never mutate core state directly.
package sim

// Model is the stepping/lifecycle contract shared by every simulation
// family. The Simulation delegates to an owned Model in the heat modes.
type Model interface {
	// Step advances one step, returning false when the step failed or
	// the model finished.
	Step() bool
	// Finished reports the terminal condition (time, steps, or error).
	Finished() bool
	// Time is the current simulation time [s].
	Time() float64
	// StepCount is the number of steps taken.
	StepCount() int
	// Err is the failure reason, nil while healthy.
	Err() error
	// Valid reports whether the model can step.
	Valid() bool
}

// Mode identifies which physics family a Simulation runs. Fixed at
// construction.
type Mode int

const (
	ModeMD Mode = iota
	ModeHeat1D
	ModeHeat2D
)

func (m Mode) String() string {
	switch m {
	case ModeMD:
		return "md"
	case ModeHeat1D:
		return "heat1d"
	case ModeHeat2D:
		return "heat2d"
	}
	return "unknown"
}
