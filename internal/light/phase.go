package light

import (
	"fmt"
	"strings"
)

//go:generate go tool stringer -type=Phase

// Phase is the state of a signal. The zero value is Red.
type Phase int32

const (
	Red Phase = iota
	Green
)

// Next returns the phase that follows p.
func (p Phase) Next() Phase {
	if p == Red {
		return Green
	}
	return Red
}

// MarshalText implements encoding.TextMarshaler.
func (p Phase) MarshalText() ([]byte, error) {
	switch p {
	case Red, Green:
		return []byte(strings.ToLower(p.String())), nil
	}
	return nil, fmt.Errorf("light: invalid phase %d", int32(p))
}
