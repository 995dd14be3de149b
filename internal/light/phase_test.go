package light_test

import (
	"testing"

	"github.com/randomizedcoder/trafficlight/internal/light"
)

func TestPhase_Next(t *testing.T) {
	if light.Red.Next() != light.Green {
		t.Errorf("expected Red.Next() = Green, got %v", light.Red.Next())
	}
	if light.Green.Next() != light.Red {
		t.Errorf("expected Green.Next() = Red, got %v", light.Green.Next())
	}
}

func TestPhase_ZeroIsRed(t *testing.T) {
	var p light.Phase
	if p != light.Red {
		t.Errorf("expected zero Phase to be Red, got %v", p)
	}
}

func TestPhase_String(t *testing.T) {
	testCases := []struct {
		p    light.Phase
		want string
	}{
		{light.Red, "Red"},
		{light.Green, "Green"},
		{light.Phase(7), "Phase(7)"},
	}

	for _, tc := range testCases {
		if got := tc.p.String(); got != tc.want {
			t.Errorf("expected %q, got %q", tc.want, got)
		}
	}
}

func TestPhase_MarshalText(t *testing.T) {
	testCases := []struct {
		p    light.Phase
		want string
	}{
		{light.Red, "red"},
		{light.Green, "green"},
	}

	for _, tc := range testCases {
		b, err := tc.p.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v): %v", tc.p, err)
		}
		if string(b) != tc.want {
			t.Errorf("expected %q, got %q", tc.want, b)
		}
	}

	if _, err := light.Phase(7).MarshalText(); err == nil {
		t.Error("expected error marshaling an invalid phase")
	}
}
