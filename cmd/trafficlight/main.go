// Command trafficlight runs one signal and a fleet of simulated vehicles
// that each wait for Green before crossing.
//
// Usage:
//
//	go run ./cmd/trafficlight -w 5 -d 30s -v debug
//	go run ./cmd/trafficlight -c signal.yaml
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"

	"github.com/randomizedcoder/trafficlight/internal/config"
	"github.com/randomizedcoder/trafficlight/internal/flagutil"
	"github.com/randomizedcoder/trafficlight/internal/light"
)

type Opts struct {
	ConfigPath string            `short:"c" long:"config" description:"Path to a YAML config file"`
	Name       string            `short:"n" long:"name" description:"Signal name (overrides config)"`
	MinCycle   time.Duration     `long:"min-cycle" description:"Shortest phase (overrides config)"`
	MaxCycle   time.Duration     `long:"max-cycle" description:"Longest phase (overrides config)"`
	Publish    string            `long:"publish" choice:"transitions" choice:"every-tick" description:"When the signal publishes its phase (overrides config; every-tick without a config file)"`
	Waiters    int               `short:"w" long:"waiters" default:"3" description:"Number of simulated vehicles"`
	Duration   time.Duration     `short:"d" long:"duration" default:"30s" description:"How long to run (0 runs until interrupted)"`
	LogLevel   flagutil.LogLevel `short:"v" long:"verbosity" default:"info" description:"Verbosity level"`
}

var opts Opts

var parser = flags.NewParser(&opts, flags.Default)

func main() {
	if _, err := parser.Parse(); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	logger := slog.New(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: opts.LogLevel.Level,
		}),
	)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, &opts); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

// signalConfig loads the config file, if any, and applies flag overrides.
// Without a file the CLI republishes every tick so that every vehicle in
// the fleet can cross during one Green phase.
func (o *Opts) signalConfig() (config.Signal, error) {
	cfg := config.DefaultSignal()
	cfg.Publish = config.PublishEveryTick
	if o.ConfigPath != "" {
		root, err := config.Load(o.ConfigPath)
		if err != nil {
			return cfg, err
		}
		cfg = root.Signal
	}

	if o.Name != "" {
		cfg.Name = o.Name
	}
	if o.MinCycle > 0 {
		cfg.MinCycle = o.MinCycle
	}
	if o.MaxCycle > 0 {
		cfg.MaxCycle = o.MaxCycle
	}
	if o.Publish != "" {
		cfg.Publish = config.PublishMode(o.Publish)
	}
	return cfg, cfg.Validate()
}

func run(ctx context.Context, o *Opts) error {
	cfg, err := o.signalConfig()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if o.Waiters < 0 {
		return fmt.Errorf("waiters must be >= 0, got %d", o.Waiters)
	}

	if o.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.Duration)
		defer cancel()
	}

	tl, err := light.New(cfg)
	if err != nil {
		return err
	}

	h, err := tl.Simulate(ctx)
	if err != nil {
		return err
	}

	crossings, err := runFleet(ctx, tl, o.Waiters, cfg.MaxCycle)
	slog.Info("simulation finished",
		"light", tl.Name(),
		"phase", tl.CurrentPhase(),
		"crossings", crossings)

	if cerr := h.Close(); cerr != nil && !errors.Is(cerr, context.DeadlineExceeded) {
		return cerr
	}
	return err
}
