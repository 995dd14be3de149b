// Package queue provides blocking handoff channels between goroutines.
//
// This package offers two implementations of the Channel interface:
//   - Mailbox: single slot, a new value replaces any unread one
//   - FIFO: bounded strict-order buffer backed by a lock-free ring
//
// # Delivery policy
//
// Mailbox is "latest value wins". A consumer that falls behind sees only
// the most recent value, never a backlog. Use it when only current state
// matters (for example a signal phase).
//
// FIFO delivers every value in send order until it is full, at which point
// Send evicts the oldest unread value. Neither implementation ever blocks
// the sender or grows without bound.
package queue

import (
	"context"
	"errors"
)

// ErrInvalidSize is returned when a FIFO is created with a non-positive size.
var ErrInvalidSize = errors.New("queue: size must be positive")

// Channel is a multi-producer multi-consumer blocking handoff.
//
// Implementations must be safe for concurrent use:
//   - Any number of goroutines may call Send concurrently
//   - Any number of goroutines may call Receive concurrently
type Channel[T any] interface {
	// Send makes v available to consumers and wakes at most one
	// blocked Receive. It never blocks beyond lock contention.
	Send(v T)

	// Receive blocks until a value is available, then removes and
	// returns it. It returns the context error if ctx ends first.
	Receive(ctx context.Context) (T, error)
}
