package tick

import (
	crand "crypto/rand"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"
	_ "unsafe" // Required for go:linkname
)

// nanotime returns the current monotonic time in nanoseconds.
// This is faster than time.Now() because it returns a single int64
// and avoids constructing a time.Time struct.
//
// Note: This uses go:linkname to access an internal runtime function.
// It may break in future Go versions, though it has been stable.
//
//go:linkname nanotime runtime.nanotime
func nanotime() int64

// JitterTicker fires once a randomly drawn interval has elapsed, then
// draws a fresh interval for the next tick.
//
// Each JitterTicker owns its random generator. Tickers created in quick
// succession do not share or repeat a sequence.
type JitterTicker struct {
	bounds Interval

	mu  sync.Mutex // guards rng
	rng *rand.Rand

	interval atomic.Int64 // nanoseconds, current target
	lastTick atomic.Int64
}

// NewJitterTicker creates a JitterTicker drawing from iv. The first
// interval is drawn immediately and counts from now.
//
// If src is nil the ticker seeds its own ChaCha8 generator from
// crypto/rand.
func NewJitterTicker(iv Interval, src rand.Source) (*JitterTicker, error) {
	if err := iv.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		src = NewSource()
	}

	t := &JitterTicker{
		bounds: iv,
		rng:    rand.New(src),
	}
	t.redraw()
	t.lastTick.Store(nanotime())
	return t, nil
}

// NewSource returns a non-deterministically seeded random source.
func NewSource() rand.Source {
	var seed [32]byte
	_, _ = crand.Read(seed[:])
	return rand.NewChaCha8(seed)
}

func (j *JitterTicker) redraw() {
	j.mu.Lock()
	d := j.bounds.Draw(j.rng)
	j.mu.Unlock()
	j.interval.Store(int64(d))
}

// Tick returns true if the current interval has elapsed since the last
// tick, and starts the next interval with a freshly drawn length.
//
// Uses a compare-and-swap so concurrent pollers see a given tick once.
func (j *JitterTicker) Tick() bool {
	now := nanotime()
	last := j.lastTick.Load()

	if now-last >= j.interval.Load() {
		if j.lastTick.CompareAndSwap(last, now) {
			j.redraw()
			return true
		}
	}
	return false
}

// Reset starts a new interval from now, keeping the current target.
func (j *JitterTicker) Reset() {
	j.lastTick.Store(nanotime())
}

// Interval returns the target length of the current interval.
func (j *JitterTicker) Interval() time.Duration {
	return time.Duration(j.interval.Load())
}

// Elapsed returns the time since the last tick (or since creation).
func (j *JitterTicker) Elapsed() time.Duration {
	return time.Duration(nanotime() - j.lastTick.Load())
}

// Bounds returns the range intervals are drawn from.
func (j *JitterTicker) Bounds() Interval {
	return j.bounds
}
