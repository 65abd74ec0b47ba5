// Package arena provides byte-budgeted allocation accounting.
//
// Containers that must stay within a fixed memory budget compose an Arena
// and reserve bytes before growing. A reservation beyond the budget fails
// immediately and deterministically; nothing is partially charged.
package arena

import (
	"errors"
	"fmt"
)

// ErrBudgetExceeded indicates a reservation would push usage past the limit.
var ErrBudgetExceeded = errors.New("arena: byte budget exceeded")

// Arena tracks bytes charged against a fixed limit. Not safe for
// concurrent use; callers own synchronization, matching the single-owner
// model of the simulation core.
type Arena struct {
	limit int64
	used  int64
}

// New returns an arena with the given byte limit. A non-positive limit
// means every reservation fails.
func New(limit int64) *Arena {
	return &Arena{limit: limit}
}

// Reserve charges n bytes against the budget. On failure the arena is
// unchanged.
func (a *Arena) Reserve(n int64) error {
	if n < 0 {
		return fmt.Errorf("arena: negative reservation %d", n)
	}
	if a.used+n > a.limit {
		return fmt.Errorf("%w: need %d bytes, %d of %d in use",
			ErrBudgetExceeded, n, a.used, a.limit)
	}
	a.used += n
	return nil
}

// Release returns n bytes to the budget. Releasing more than is in use
// clamps to zero rather than going negative.
func (a *Arena) Release(n int64) {
	a.used -= n
	if a.used < 0 {
		a.used = 0
	}
}

func (a *Arena) Used() int64  { return a.used }
func (a *Arena) Limit() int64 { return a.limit }
