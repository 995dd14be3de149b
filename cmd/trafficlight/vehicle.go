package main

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/randomizedcoder/trafficlight/internal/cancel"
	"github.com/randomizedcoder/trafficlight/internal/light"
	"github.com/randomizedcoder/trafficlight/internal/tick"
)

// vehicle repeatedly drives up to the light, waits for Green and crosses.
type vehicle struct {
	id       int
	light    *light.TrafficLight
	approach tick.Interval
	rng      *rand.Rand
}

func (v *vehicle) run(ctx context.Context, crossings *atomic.Int64) error {
	log := slog.With("vehicle", v.id, "light", v.light.Name())

	for {
		if !cancel.Sleep(ctx, v.approach.Draw(v.rng)) {
			return nil
		}

		log.Debug("waiting at light", "phase", v.light.CurrentPhase())
		start := time.Now()
		if err := v.light.WaitForGreen(ctx); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		}

		crossings.Add(1)
		log.Info("crossed", "waited", time.Since(start).Round(time.Millisecond))
	}
}

// runFleet runs n vehicles until ctx ends and returns how many times
// they crossed.
func runFleet(ctx context.Context, tl *light.TrafficLight, n int, maxCycle time.Duration) (int64, error) {
	var crossings atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		v := &vehicle{
			id:       i,
			light:    tl,
			approach: tick.Interval{Min: time.Millisecond, Max: maxCycle},
			rng:      rand.New(tick.NewSource()),
		}
		g.Go(func() error {
			return v.run(gctx, &crossings)
		})
	}

	err := g.Wait()
	return crossings.Load(), err
}
