package pfd

import (
	"testing"

	"github.com/unklstewy/gcs-pfd/pkg/telemetry"
)

func TestIsPathDesiredActive(t *testing.T) {
	tests := []struct {
		name string
		path telemetry.PathDesired
		want bool
	}{
		{"Nothing set", telemetry.PathDesired{}, false},
		{"Only end down set", telemetry.PathDesired{EndDown: -20}, false},
		{"End east", telemetry.PathDesired{EndEast: 1}, true},
		{"End north", telemetry.PathDesired{EndNorth: -3}, true},
		{"Ending velocity", telemetry.PathDesired{EndingVelocity: 2}, true},
		{"Tiny non-zero counts", telemetry.PathDesired{EndEast: 1e-12}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := flyingQuad()
			path := tt.path
			s.Path = &path
			if got, _ := IsPathDesiredActive(s); got != tt.want {
				t.Errorf("IsPathDesiredActive() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHomeNavigation(t *testing.T) {
	// Vehicle at N10 E20, take-off at N10 E0: due west, 20 m.
	s := flyingQuad()

	heading, err := HomeHeading(s)
	if err != nil {
		t.Fatalf("HomeHeading failed: %v", err)
	}
	if !near(heading, -90) {
		t.Errorf("HomeHeading() = %f, want -90", heading)
	}
	if dist, _ := HomeDistance(s); !near(dist, 20) {
		t.Errorf("HomeDistance() = %f, want 20", dist)
	}
	// 20 m at 5 m/s
	if eta, _ := HomeETA(s); eta != "00:00:04" {
		t.Errorf("HomeETA() = %q, want 00:00:04", eta)
	}
}

func TestWaypointNavigation(t *testing.T) {
	// Vehicle at N10 E20, segment end at N10 E50: due east, 30 m.
	s := flyingQuad()

	if heading, _ := WaypointHeading(s); !near(heading, 90) {
		t.Errorf("WaypointHeading() = %f, want 90", heading)
	}
	if dist, _ := WaypointDistance(s); !near(dist, 30) {
		t.Errorf("WaypointDistance() = %f, want 30", dist)
	}
	if eta, _ := WaypointETA(s); eta != "00:00:06" {
		t.Errorf("WaypointETA() = %q, want 00:00:06", eta)
	}

	s.Velocity = &telemetry.VelocityState{}
	if eta, _ := WaypointETA(s); eta != "00:00:00" {
		t.Errorf("WaypointETA() while hovering = %q, want 00:00:00", eta)
	}
}

func TestNavigationMissingPosition(t *testing.T) {
	s := flyingQuad()
	s.Position = nil

	_, err := HomeDistance(s)
	mte, ok := telemetry.IsMissingTelemetry(err)
	if !ok || mte.Record != telemetry.RecordPositionState {
		t.Errorf("Expected missing PositionState, got %v", err)
	}
}

func TestPathPlanValues(t *testing.T) {
	s := flyingQuad()

	if got, _ := CurrentWaypointActive(s); got != 3 {
		t.Errorf("CurrentWaypointActive() = %d, want 3", got)
	}
	if got, _ := WaypointCount(s); got != 6 {
		t.Errorf("WaypointCount() = %d", got)
	}
	if got, _ := PathModeDesired(s); got != "GOTO ENDPOINT" {
		t.Errorf("PathModeDesired() = %q", got)
	}
	if got, _ := PathDesiredEndDown(s); got != -40 {
		t.Errorf("PathDesiredEndDown() = %f", got)
	}
	if got, _ := PathDesiredEndingVelocity(s); got != 0 {
		t.Errorf("PathDesiredEndingVelocity() = %f", got)
	}
	if got, _ := IsTakeOffLocationValid(s); !got {
		t.Error("IsTakeOffLocationValid() = false")
	}
	if got, _ := IsPathPlanValid(s); !got {
		t.Error("IsPathPlanValid() = false")
	}
	if got, _ := IsPathPlanEnabled(s); got {
		t.Error("IsPathPlanEnabled() = true in position hold")
	}

	s.Status.FlightMode = telemetry.FlightModePathPlanner
	if got, _ := IsPathPlanEnabled(s); !got {
		t.Error("IsPathPlanEnabled() = false in PathPlanner mode")
	}
}
