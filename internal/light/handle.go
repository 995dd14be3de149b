package light

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/randomizedcoder/trafficlight/internal/cancel"
)

// Handle controls a running loop.
type Handle struct {
	c    *cancel.ContextCanceler
	g    errgroup.Group
	done chan struct{}
}

func newHandle(parent context.Context) *Handle {
	return &Handle{
		c:    cancel.NewContext(parent),
		done: make(chan struct{}),
	}
}

func (h *Handle) start(loop func(*cancel.ContextCanceler) error) {
	h.g.Go(func() error {
		defer close(h.done)
		return loop(h.c)
	})
}

// Stop signals the loop to exit. It does not wait; use Wait or Close.
// Safe to call multiple times.
func (h *Handle) Stop() {
	h.c.Cancel()
}

// Done is closed once the loop has exited.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Wait blocks until the loop exits and returns the reason it stopped:
// context.Canceled after Stop, or the parent context's error.
func (h *Handle) Wait() error {
	return h.g.Wait()
}

// Close stops the loop and waits for it. A loop ended by Stop or by
// cancellation of its parent context is a clean exit and returns nil;
// a parent deadline is reported.
func (h *Handle) Close() error {
	h.Stop()
	err := h.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
