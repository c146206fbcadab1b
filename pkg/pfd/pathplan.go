package pfd

import (
	"github.com/unklstewy/gcs-pfd/pkg/coordinates"
	"github.com/unklstewy/gcs-pfd/pkg/format"
	"github.com/unklstewy/gcs-pfd/pkg/lookup"
	"github.com/unklstewy/gcs-pfd/pkg/telemetry"
)

// IsPathPlanEnabled reports whether the vehicle is flying an uploaded plan.
func IsPathPlanEnabled(s *telemetry.Snapshot) (bool, error) {
	status, err := s.FlightStatus()
	if err != nil {
		return false, err
	}
	return status.FlightMode == telemetry.FlightModePathPlanner, nil
}

func IsPathPlanValid(s *telemetry.Snapshot) (bool, error) {
	alarms, err := s.SystemAlarms()
	if err != nil {
		return false, err
	}
	return alarms.PathPlan == telemetry.AlarmOK, nil
}

// IsPathDesiredActive reports whether the path follower has a target.
// A segment ending exactly at the origin with zero velocity counts as none.
func IsPathDesiredActive(s *telemetry.Snapshot) (bool, error) {
	path, err := s.PathDesired()
	if err != nil {
		return false, err
	}
	return path.EndEast != 0 || path.EndNorth != 0 || path.EndingVelocity != 0, nil
}

func IsTakeOffLocationValid(s *telemetry.Snapshot) (bool, error) {
	takeOff, err := s.TakeOffLocation()
	if err != nil {
		return false, err
	}
	return takeOff.Status == telemetry.TakeOffStatusValid, nil
}

func PathModeDesired(s *telemetry.Snapshot) (string, error) {
	path, err := s.PathDesired()
	if err != nil {
		return "", err
	}
	return lookup.PathModes.Label(int(path.Mode))
}

func PathDesiredEndDown(s *telemetry.Snapshot) (float64, error) {
	path, err := s.PathDesired()
	if err != nil {
		return 0, err
	}
	return path.EndDown, nil
}

func PathDesiredEndingVelocity(s *telemetry.Snapshot) (float64, error) {
	path, err := s.PathDesired()
	if err != nil {
		return 0, err
	}
	return path.EndingVelocity, nil
}

// CurrentWaypointActive is the one-based number of the active waypoint.
func CurrentWaypointActive(s *telemetry.Snapshot) (int, error) {
	wp, err := s.WaypointActive()
	if err != nil {
		return 0, err
	}
	return wp.Index + 1, nil
}

func WaypointCount(s *telemetry.Snapshot) (int, error) {
	plan, err := s.PathPlan()
	if err != nil {
		return 0, err
	}
	return plan.WaypointCount, nil
}

// here is the vehicle's horizontal position in the NED frame.
func here(s *telemetry.Snapshot) (coordinates.NED, error) {
	pos, err := s.PositionState()
	if err != nil {
		return coordinates.NED{}, err
	}
	return coordinates.NED{North: pos.North, East: pos.East}, nil
}

func homeTarget(s *telemetry.Snapshot) (coordinates.NED, error) {
	takeOff, err := s.TakeOffLocation()
	if err != nil {
		return coordinates.NED{}, err
	}
	return coordinates.NED{North: takeOff.North, East: takeOff.East}, nil
}

func waypointTarget(s *telemetry.Snapshot) (coordinates.NED, error) {
	path, err := s.PathDesired()
	if err != nil {
		return coordinates.NED{}, err
	}
	return coordinates.NED{North: path.EndNorth, East: path.EndEast}, nil
}

// leg resolves the current position and a target.
func leg(s *telemetry.Snapshot, target func(*telemetry.Snapshot) (coordinates.NED, error)) (from, to coordinates.NED, err error) {
	if from, err = here(s); err != nil {
		return
	}
	to, err = target(s)
	return
}

func heading(s *telemetry.Snapshot, target func(*telemetry.Snapshot) (coordinates.NED, error)) (float64, error) {
	from, to, err := leg(s, target)
	if err != nil {
		return 0, err
	}
	return coordinates.PlanarHeading(from, to), nil
}

func distance(s *telemetry.Snapshot, target func(*telemetry.Snapshot) (coordinates.NED, error)) (float64, error) {
	from, to, err := leg(s, target)
	if err != nil {
		return 0, err
	}
	return coordinates.PlanarDistance(from, to), nil
}

func eta(s *telemetry.Snapshot, target func(*telemetry.Snapshot) (coordinates.NED, error)) (string, error) {
	dist, err := distance(s, target)
	if err != nil {
		return "", err
	}
	speed, err := CurrentVelocity(s)
	if err != nil {
		return "", err
	}
	return format.EstimatedTimeOfArrival(dist, speed), nil
}

// HomeHeading is the bearing to the take-off location in degrees.
func HomeHeading(s *telemetry.Snapshot) (float64, error) {
	return heading(s, homeTarget)
}

// HomeDistance is the horizontal distance to the take-off location, meters.
func HomeDistance(s *telemetry.Snapshot) (float64, error) {
	return distance(s, homeTarget)
}

// HomeETA is the time to reach the take-off location at current speed.
func HomeETA(s *telemetry.Snapshot) (string, error) {
	return eta(s, homeTarget)
}

// WaypointHeading is the bearing to the end of the desired path segment.
func WaypointHeading(s *telemetry.Snapshot) (float64, error) {
	return heading(s, waypointTarget)
}

func WaypointDistance(s *telemetry.Snapshot) (float64, error) {
	return distance(s, waypointTarget)
}

func WaypointETA(s *telemetry.Snapshot) (string, error) {
	return eta(s, waypointTarget)
}
