// Package tick provides periodic trigger implementations.
//
// This package offers two tickers:
//   - StdTicker: Standard library time.Ticker wrapper, used to pace loops
//   - JitterTicker: fires after an interval redrawn at random on every tick
//
// JitterTicker is polled: the caller checks Tick() once per loop
// iteration and acts when it returns true. StdTicker exposes its channel
// so a loop can sleep on it alongside a context.
package tick

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"
)

// ErrInvalidInterval is returned when interval bounds are unusable.
var ErrInvalidInterval = errors.New("tick: invalid interval")

// Default bounds for a signal cycle.
const (
	DefaultMin = 4000 * time.Millisecond
	DefaultMax = 6000 * time.Millisecond
)

// DefaultPace is how long a polling loop sleeps between iterations.
const DefaultPace = time.Millisecond

// Interval is an inclusive range of durations with millisecond resolution.
// Both bounds must be whole milliseconds.
type Interval struct {
	Min time.Duration
	Max time.Duration
}

// DefaultInterval returns the [4s, 6s] cycle range.
func DefaultInterval() Interval {
	return Interval{Min: DefaultMin, Max: DefaultMax}
}

// Validate reports whether the bounds can be drawn from.
func (iv Interval) Validate() error {
	if iv.Min < time.Millisecond {
		return fmt.Errorf("%w: min %v is below 1ms", ErrInvalidInterval, iv.Min)
	}
	if iv.Min%time.Millisecond != 0 || iv.Max%time.Millisecond != 0 {
		return fmt.Errorf("%w: bounds %v must be whole milliseconds", ErrInvalidInterval, iv)
	}
	if iv.Max < iv.Min {
		return fmt.Errorf("%w: max %v is below min %v", ErrInvalidInterval, iv.Max, iv.Min)
	}
	return nil
}

// Contains reports whether d lies within the bounds.
func (iv Interval) Contains(d time.Duration) bool {
	return d >= iv.Min && d <= iv.Max
}

// Draw returns a duration uniformly distributed over whole milliseconds
// in [Min, Max], both ends included. The result is only meaningful for an
// interval that passes Validate.
func (iv Interval) Draw(r *rand.Rand) time.Duration {
	lo := iv.Min.Milliseconds()
	hi := iv.Max.Milliseconds()
	if hi <= lo {
		return time.Duration(lo) * time.Millisecond
	}
	return time.Duration(lo+r.Int64N(hi-lo+1)) * time.Millisecond
}

func (iv Interval) String() string {
	return fmt.Sprintf("[%v, %v]", iv.Min, iv.Max)
}
