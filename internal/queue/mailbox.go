package queue

import (
	"context"
	"sync"
	"sync/atomic"
)

// Mailbox is a single-slot Channel where the latest value wins.
//
// Send stores v in the slot, replacing any value no consumer has taken
// yet. Receive empties the slot. The slot holds at most one value, so a
// fast producer with a slow or absent consumer costs nothing.
type Mailbox[T any] struct {
	mu   sync.Mutex
	val  T
	full bool

	// ready holds at most one wake token. A token may be stale (the
	// value was taken by a consumer that never waited), so Receive
	// re-checks the slot under mu after every wake.
	ready chan struct{}

	dropped atomic.Uint64
}

// NewMailbox creates an empty Mailbox.
func NewMailbox[T any]() *Mailbox[T] {
	return &Mailbox[T]{
		ready: make(chan struct{}, 1),
	}
}

// Send stores v, replacing any unread value, and wakes one waiting
// consumer.
func (m *Mailbox[T]) Send(v T) {
	m.mu.Lock()
	if m.full {
		m.dropped.Add(1)
	}
	m.val = v
	m.full = true
	m.mu.Unlock()

	select {
	case m.ready <- struct{}{}:
	default:
		// a token is already pending
	}
}

// Receive blocks until the slot is full, then empties it and returns the
// value.
func (m *Mailbox[T]) Receive(ctx context.Context) (T, error) {
	for {
		if v, ok := m.TryReceive(); ok {
			return v, nil
		}

		select {
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		case <-m.ready:
		}
	}
}

// TryReceive empties the slot and returns its value.
// Returns false if the slot is empty (non-blocking).
func (m *Mailbox[T]) TryReceive() (T, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero T
	if !m.full {
		return zero, false
	}
	v := m.val
	m.val = zero
	m.full = false
	return v, true
}

// Len returns 1 if a value is waiting, otherwise 0.
func (m *Mailbox[T]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.full {
		return 1
	}
	return 0
}

// Dropped returns how many values were overwritten before any consumer
// received them.
func (m *Mailbox[T]) Dropped() uint64 {
	return m.dropped.Load()
}
