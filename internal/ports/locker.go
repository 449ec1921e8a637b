package ports

import (
	"context"
	"errors"
)

// ErrRunInProgress is returned when another optimization or execution
// already holds the lock for the same travel date.
var ErrRunInProgress = errors.New("an optimization run is already in progress for this date")

// Port: mutual exclusion for per-date optimizer work. Overlapping admin
// clicks for the same date must not interleave capacity checks.
type RunLocker interface {
	// Acquire the lock for a date. On success the returned release func
	// must be called exactly once. Returns ErrRunInProgress on contention.
	Acquire(ctx context.Context, date string) (release func(), err error)
}
