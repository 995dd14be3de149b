package cancel

import (
	"context"
	"time"
)

// ContextCanceler wraps context.Context for cancellation signaling.
//
// Each call to Done() performs a non-blocking select on ctx.Done().
type ContextCanceler struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// NewContext creates a ContextCanceler from a parent context.
// Cancelling the parent also cancels the ContextCanceler.
func NewContext(parent context.Context) *ContextCanceler {
	ctx, cancel := context.WithCancel(parent)
	return &ContextCanceler{
		ctx:    ctx,
		cancel: cancel,
	}
}

// Done returns true if the context has been cancelled.
//
// This performs a non-blocking select on ctx.Done().
func (c *ContextCanceler) Done() bool {
	select {
	case <-c.ctx.Done():
		return true
	default:
		return false
	}
}

// Cancel triggers cancellation of the context.
func (c *ContextCanceler) Cancel() {
	c.cancel()
}

// Context returns the underlying context.Context.
// Useful for passing to functions that expect a context.
func (c *ContextCanceler) Context() context.Context {
	return c.ctx
}

// Err returns nil until cancellation, then the reason (context.Canceled
// or the parent's error).
func (c *ContextCanceler) Err() error {
	return c.ctx.Err()
}

// Sleep pauses for d or until ctx ends, whichever comes first, and
// reports whether the full duration elapsed.
func Sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
