package queue

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	ring "github.com/randomizedcoder/go-lock-free-ring"
)

// FIFO is a bounded strict-order Channel.
//
// Values are stored in a go-lock-free-ring ShardedRing with a single
// shard, so they are read back in the order writes land. The ring is
// multi-producer single-consumer, so readers are serialized by readMu.
// Writers hold writeMu so that a failed Write always means the ring is
// full and never a lost race with another producer.
//
// When the ring is full, Send evicts the oldest unread value to make room.
type FIFO[T any] struct {
	r    *ring.ShardedRing
	size int

	writeMu sync.Mutex
	readMu  sync.Mutex
	ready   chan struct{}

	count   atomic.Int64
	dropped atomic.Uint64
}

// NewFIFO creates a FIFO holding at most size unread values.
// Size will be rounded up to the next power of 2.
func NewFIFO[T any](size int) (*FIFO[T], error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}

	n := uint64(1)
	for n < uint64(size) {
		n <<= 1
	}

	r, err := ring.NewShardedRing(n, 1)
	if err != nil {
		return nil, fmt.Errorf("queue: new ring: %w", err)
	}
	return &FIFO[T]{
		r:     r,
		size:  int(n),
		ready: make(chan struct{}, 1),
	}, nil
}

// Send appends v and wakes one waiting consumer. If the buffer is full,
// the oldest unread value is discarded first.
func (f *FIFO[T]) Send(v T) {
	f.writeMu.Lock()
	for !f.r.Write(0, v) {
		f.readMu.Lock()
		if _, ok := f.r.TryRead(); ok {
			f.count.Add(-1)
			f.dropped.Add(1)
		}
		f.readMu.Unlock()
	}
	f.count.Add(1)
	f.writeMu.Unlock()

	select {
	case f.ready <- struct{}{}:
	default:
	}
}

// Receive blocks until a value is available, then removes and returns
// the oldest one.
func (f *FIFO[T]) Receive(ctx context.Context) (T, error) {
	for {
		if v, ok := f.TryReceive(); ok {
			// Pass the wake on if more values are queued, so a
			// burst of sends is not held back by a single token.
			if f.count.Load() > 0 {
				select {
				case f.ready <- struct{}{}:
				default:
				}
			}
			return v, nil
		}

		select {
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		case <-f.ready:
		}
	}
}

// TryReceive removes and returns the oldest value.
// Returns false if the buffer is empty (non-blocking).
func (f *FIFO[T]) TryReceive() (T, bool) {
	f.readMu.Lock()
	item, ok := f.r.TryRead()
	f.readMu.Unlock()

	var zero T
	if !ok {
		return zero, false
	}
	f.count.Add(-1)
	v, _ := item.(T)
	return v, true
}

// Len returns the current number of unread values.
// This is an approximation and may be slightly stale.
func (f *FIFO[T]) Len() int {
	n := f.count.Load()
	if n < 0 {
		return 0
	}
	return int(n)
}

// Cap returns the capacity of the buffer.
func (f *FIFO[T]) Cap() int {
	return f.size
}

// Dropped returns how many values were evicted to make room for newer
// ones.
func (f *FIFO[T]) Dropped() uint64 {
	return f.dropped.Load()
}
