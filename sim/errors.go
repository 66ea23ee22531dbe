package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrRunConsumed is returned when Run is called on a completed runner.
	// Runners are single-use; build a new one to re-run.
	ErrRunConsumed = errors.New("runner already completed")
	// ErrNonFinitePrice marks a mid price that left the valid domain.
	ErrNonFinitePrice = errors.New("mid price is not a finite positive value")
	// ErrNegativeTimeRemaining marks a driver bug: the clock ran past zero.
	ErrNegativeTimeRemaining = errors.New("time remaining went negative")
)

// TickError reports an aborted run. It carries the tick index at which the
// failure occurred and the trajectory prefix completed before it, so no
// partial result is silently discarded.
type TickError struct {
	Tick    int
	Cause   error
	Partial []Snapshot
}

func (e *TickError) Error() string {
	return fmt.Sprintf("tick %d: %v (%d ticks completed)", e.Tick, e.Cause, len(e.Partial))
}

func (e *TickError) Unwrap() error { return e.Cause }
