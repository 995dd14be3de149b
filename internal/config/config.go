// Package config loads signal settings from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/randomizedcoder/trafficlight/internal/tick"
)

// PublishMode selects when the cycling loop publishes a phase.
type PublishMode string

const (
	// PublishTransitions publishes only when the phase toggles.
	PublishTransitions PublishMode = "transitions"
	// PublishEveryTick also republishes the current phase on every
	// loop iteration.
	PublishEveryTick PublishMode = "every-tick"
)

type Root struct {
	Signal Signal `yaml:"signal"`
}

type Signal struct {
	Name      string        `yaml:"name,omitempty"`
	MinCycle  time.Duration `yaml:"min_cycle"`
	MaxCycle  time.Duration `yaml:"max_cycle"`
	Tick      time.Duration `yaml:"tick,omitempty"`       // loop pace
	PollDelay time.Duration `yaml:"poll_delay,omitempty"` // waiter idle delay
	Publish   PublishMode   `yaml:"publish,omitempty"`
}

// Default returns the reference settings: a 4-6s cycle paced at 1ms.
func Default() Root {
	return Root{Signal: DefaultSignal()}
}

func DefaultSignal() Signal {
	return Signal{
		Name:      "signal",
		MinCycle:  tick.DefaultMin,
		MaxCycle:  tick.DefaultMax,
		Tick:      tick.DefaultPace,
		PollDelay: tick.DefaultPace,
		Publish:   PublishTransitions,
	}
}

// Cycle returns the cycle bounds as a tick.Interval.
func (s Signal) Cycle() tick.Interval {
	return tick.Interval{Min: s.MinCycle, Max: s.MaxCycle}
}

func (s Signal) Validate() error {
	if err := s.Cycle().Validate(); err != nil {
		return fmt.Errorf("signal cycle: %w", err)
	}
	if s.Tick <= 0 {
		return errors.New("signal.tick must be > 0")
	}
	if s.Tick >= s.MinCycle {
		return fmt.Errorf("signal.tick %v must be shorter than min_cycle %v", s.Tick, s.MinCycle)
	}
	if s.PollDelay < 0 {
		return errors.New("signal.poll_delay must be >= 0")
	}
	switch s.Publish {
	case PublishTransitions, PublishEveryTick:
	default:
		return fmt.Errorf("signal.publish: unknown mode %q", s.Publish)
	}
	return nil
}

// Load reads path over the defaults, so omitted keys keep their default
// values.
func Load(path string) (*Root, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := c.Signal.Validate(); err != nil {
		return nil, fmt.Errorf("validate %s: %w", path, err)
	}
	return &c, nil
}
