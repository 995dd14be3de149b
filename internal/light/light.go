// Package light models a traffic signal that toggles between Red and
// Green on a randomized interval.
//
// A TrafficLight runs one background loop, started by Simulate, which
// owns the phase. The loop publishes phases on a latest-value-wins
// mailbox; WaitForGreen consumes from that mailbox until it sees Green.
// The loop and the waiters share nothing else except an atomic snapshot
// of the phase for CurrentPhase.
//
// Each publication is consumed by exactly one waiter. With many waiters
// and the default publish mode, one Green publication releases one
// waiter; PublishEveryTick republishes the current phase on every loop
// iteration so that waiters drain while the light stays Green.
package light

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync/atomic"

	"github.com/randomizedcoder/trafficlight/internal/cancel"
	"github.com/randomizedcoder/trafficlight/internal/config"
	"github.com/randomizedcoder/trafficlight/internal/queue"
	"github.com/randomizedcoder/trafficlight/internal/tick"
)

// ErrAlreadyStarted is returned by Simulate on a light whose loop has
// already been started.
var ErrAlreadyStarted = errors.New("light: already started")

// TrafficLight is a single two-phase signal. It is safe for concurrent
// use; share it by pointer.
type TrafficLight struct {
	name string
	cfg  config.Signal
	log  *slog.Logger
	src  rand.Source

	phase    atomic.Int32
	messages queue.Channel[Phase]
	started  atomic.Bool
}

// Option configures a TrafficLight.
type Option func(*TrafficLight)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(t *TrafficLight) { t.log = l }
}

// WithName overrides the name from the config.
func WithName(name string) Option {
	return func(t *TrafficLight) { t.name = name }
}

// WithSeed makes the cycle lengths reproducible. Without it each loop
// seeds its own generator from crypto/rand.
func WithSeed(seed1, seed2 uint64) Option {
	return func(t *TrafficLight) { t.src = rand.NewPCG(seed1, seed2) }
}

// WithChannel replaces the phase mailbox. Passing a queue.FIFO keeps
// every publication, which is useful when every transition must be seen.
func WithChannel(c queue.Channel[Phase]) Option {
	return func(t *TrafficLight) { t.messages = c }
}

// New returns a Red light configured by cfg. The loop is not running
// until Simulate is called.
func New(cfg config.Signal, opts ...Option) (*TrafficLight, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("light: %w", err)
	}

	t := &TrafficLight{
		name:     cfg.Name,
		cfg:      cfg,
		log:      slog.Default(),
		messages: queue.NewMailbox[Phase](),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.phase.Store(int32(Red))
	return t, nil
}

// Name returns the light's name, used in log records.
func (t *TrafficLight) Name() string {
	return t.name
}

// CurrentPhase returns a snapshot of the phase. It never blocks.
func (t *TrafficLight) CurrentPhase() Phase {
	return Phase(t.phase.Load())
}

// WaitForGreen blocks until the loop publishes Green.
//
// It does not look at CurrentPhase: a caller that arrives while the light
// is already Green waits for the next Green publication. Callers that
// only need the current state should check CurrentPhase first.
//
// If no loop is running, WaitForGreen blocks until ctx ends.
func (t *TrafficLight) WaitForGreen(ctx context.Context) error {
	return t.WaitFor(ctx, Green)
}

// WaitFor blocks until the loop publishes want. Other phases received in
// the meantime are discarded. It returns an error wrapping ctx.Err() if
// ctx ends first.
func (t *TrafficLight) WaitFor(ctx context.Context, want Phase) error {
	for {
		p, err := t.messages.Receive(ctx)
		if err != nil {
			return fmt.Errorf("light %s: wait for %v: %w", t.name, want, err)
		}
		if p == want {
			return nil
		}
		if !cancel.Sleep(ctx, t.cfg.PollDelay) {
			return fmt.Errorf("light %s: wait for %v: %w", t.name, want, ctx.Err())
		}
	}
}

// Simulate starts the cycling loop in a new goroutine and returns
// immediately. The loop runs until ctx ends or the returned Handle is
// stopped.
//
// A light has at most one loop. Calling Simulate again returns
// ErrAlreadyStarted, even after the first loop has stopped.
func (t *TrafficLight) Simulate(ctx context.Context) (*Handle, error) {
	if !t.started.CompareAndSwap(false, true) {
		return nil, fmt.Errorf("light %s: %w", t.name, ErrAlreadyStarted)
	}

	cycle, err := tick.NewJitterTicker(t.cfg.Cycle(), t.src)
	if err != nil {
		t.started.Store(false)
		return nil, fmt.Errorf("light %s: %w", t.name, err)
	}

	h := newHandle(ctx)
	h.start(func(c *cancel.ContextCanceler) error {
		return t.cycleThroughPhases(c, cycle)
	})
	return h, nil
}

// cycleThroughPhases is the background loop. It owns the phase: only
// this goroutine changes it.
func (t *TrafficLight) cycleThroughPhases(c *cancel.ContextCanceler, cycle *tick.JitterTicker) error {
	pace := tick.NewTicker(t.cfg.Tick)
	defer pace.Stop()

	// The first interval counts from loop entry, not from Simulate.
	cycle.Reset()

	log := t.log.With("light", t.name)
	log.Info("signal started",
		"cycle", cycle.Bounds().String(),
		"first", cycle.Interval(),
		"publish", string(t.cfg.Publish))

	phase := t.CurrentPhase()
	everyTick := t.cfg.Publish == config.PublishEveryTick

	for {
		if c.Done() {
			log.Info("signal stopped", "phase", phase, "reason", c.Err())
			return c.Err()
		}

		elapsed := cycle.Elapsed()
		if cycle.Tick() {
			phase = phase.Next()
			t.phase.Store(int32(phase))
			t.messages.Send(phase)
			log.Debug("phase changed", "phase", phase, "after", elapsed, "next", cycle.Interval())
		} else if everyTick {
			t.messages.Send(phase)
		}

		select {
		case <-c.Context().Done():
		case <-pace.C():
		}
	}
}
