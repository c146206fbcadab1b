package pfd

import (
	"testing"

	"github.com/unklstewy/gcs-pfd/pkg/lookup"
	"github.com/unklstewy/gcs-pfd/pkg/telemetry"
)

func TestFreeMemory(t *testing.T) {
	tests := []struct {
		bytes int
		want  string
	}{
		{0, "0bytes"},
		{800, "800bytes"},
		{1024, "1024bytes"},
		{1025, "1.00Kb"},
		{12800, "12.50Kb"},
	}

	for _, tt := range tests {
		if got := FreeMemory(tt.bytes); got != tt.want {
			t.Errorf("FreeMemory(%d) = %q, want %q", tt.bytes, got, tt.want)
		}
	}
}

func TestFlightTimeSeconds(t *testing.T) {
	tests := []struct {
		ms   int
		want int
	}{
		{0, 0},
		{499, 0},
		{500, 1},
		{125400, 125},
		{125500, 126},
	}

	for _, tt := range tests {
		if got := FlightTimeSeconds(tt.ms); got != tt.want {
			t.Errorf("FlightTimeSeconds(%d) = %d, want %d", tt.ms, got, tt.want)
		}
	}
}

func TestSystemValues(t *testing.T) {
	s := flyingQuad()

	if got, _ := FreeMemoryDisplay(s); got != "12.50Kb" {
		t.Errorf("FreeMemoryDisplay() = %q", got)
	}
	if got, _ := FlightTimeDisplay(s); got != "00:02:05" {
		t.Errorf("FlightTimeDisplay() = %q, want 00:02:05", got)
	}
	if got, _ := FrameType(s); got != "QuadX" {
		t.Errorf("FrameType() = %q, want QuadX", got)
	}
	if cc3d, _ := IsCC3D(s); cc3d {
		t.Error("IsCC3D() = true for a board with 12.5Kb free")
	}

	s.Stats.HeapRemaining = 3000
	if cc3d, _ := IsCC3D(s); !cc3d {
		t.Error("IsCC3D() = false for a board with 3000 bytes free")
	}
}

// The three airframe categories must cover every frame exactly once.
func TestAirframeCategoriesPartition(t *testing.T) {
	for i := 0; i < telemetry.AirframeTypeCount; i++ {
		s := flyingQuad()
		s.Settings.AirframeType = telemetry.AirframeType(i)

		fixed, _ := IsFixedWing(s)
		multi, _ := IsVtolOrMultirotor(s)
		ground, _ := IsGroundVehicle(s)

		count := 0
		for _, b := range []bool{fixed, multi, ground} {
			if b {
				count++
			}
		}
		if count != 1 {
			t.Errorf("airframe %d matches %d categories (fixed=%v multi=%v ground=%v)", i, count, fixed, multi, ground)
		}
	}
}

func TestFrameTypeOutOfRange(t *testing.T) {
	s := flyingQuad()
	s.Settings.AirframeType = telemetry.AirframeTypeCount

	_, err := FrameType(s)
	le, ok := lookup.IsLookupError(err)
	if !ok {
		t.Fatalf("Expected LookupError, got %v", err)
	}
	if le.Index != telemetry.AirframeTypeCount {
		t.Errorf("LookupError index = %d", le.Index)
	}
}

func TestAirframePredicatesOutOfRange(t *testing.T) {
	predicates := []struct {
		name string
		fn   func(*telemetry.Snapshot) (bool, error)
	}{
		{"IsFixedWing", IsFixedWing},
		{"IsVtolOrMultirotor", IsVtolOrMultirotor},
		{"IsGroundVehicle", IsGroundVehicle},
	}

	for _, p := range predicates {
		for _, frame := range []telemetry.AirframeType{-1, telemetry.AirframeTypeCount} {
			t.Run(p.name, func(t *testing.T) {
				s := flyingQuad()
				s.Settings.AirframeType = frame

				got, err := p.fn(s)
				le, ok := lookup.IsLookupError(err)
				if !ok {
					t.Fatalf("airframe %d: expected LookupError, got %v, %v", frame, got, err)
				}
				if le.Index != int(frame) {
					t.Errorf("LookupError index = %d, want %d", le.Index, frame)
				}
			})
		}
	}
}
