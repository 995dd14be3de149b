package tick

import "time"

// StdTicker wraps time.Ticker.
//
// Loops sleep until the next beat by selecting on C(), usually alongside
// a context's Done channel.
type StdTicker struct {
	ticker *time.Ticker
}

// NewTicker creates a StdTicker with the specified interval.
func NewTicker(interval time.Duration) *StdTicker {
	return &StdTicker{
		ticker: time.NewTicker(interval),
	}
}

// C returns the channel on which beats are delivered.
func (t *StdTicker) C() <-chan time.Time {
	return t.ticker.C
}

// Stop stops the ticker and releases resources.
func (t *StdTicker) Stop() {
	t.ticker.Stop()
}
