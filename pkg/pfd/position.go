package pfd

import (
	"math"

	"github.com/unklstewy/gcs-pfd/pkg/coordinates"
	"github.com/unklstewy/gcs-pfd/pkg/telemetry"
)

// Attitude returns (roll, pitch, yaw) in degrees.
func Attitude(s *telemetry.Snapshot) (coordinates.Vector3, error) {
	att, err := s.AttitudeState()
	if err != nil {
		return coordinates.Vector3{}, err
	}
	return coordinates.Vector3{X: att.Roll, Y: att.Pitch, Z: att.Yaw}, nil
}

// LegacyAttitude returns (pitch, roll, -yaw), the axis order expected by
// the old 3D model view.
//
// Deprecated: use Attitude.
func LegacyAttitude(s *telemetry.Snapshot) (coordinates.Vector3, error) {
	att, err := s.AttitudeState()
	if err != nil {
		return coordinates.Vector3{}, err
	}
	return coordinates.Vector3{X: att.Pitch, Y: att.Roll, Z: -att.Yaw}, nil
}

func AttitudeRoll(s *telemetry.Snapshot) (float64, error) {
	att, err := s.AttitudeState()
	if err != nil {
		return 0, err
	}
	return att.Roll, nil
}

func AttitudePitch(s *telemetry.Snapshot) (float64, error) {
	att, err := s.AttitudeState()
	if err != nil {
		return 0, err
	}
	return att.Pitch, nil
}

func AttitudeYaw(s *telemetry.Snapshot) (float64, error) {
	att, err := s.AttitudeState()
	if err != nil {
		return 0, err
	}
	return att.Yaw, nil
}

// CurrentVelocity is the horizontal ground speed in m/s.
func CurrentVelocity(s *telemetry.Snapshot) (float64, error) {
	vel, err := s.VelocityState()
	if err != nil {
		return 0, err
	}
	return math.Sqrt(vel.North*vel.North + vel.East*vel.East), nil
}

func PositionStateDown(s *telemetry.Snapshot) (float64, error) {
	pos, err := s.PositionState()
	if err != nil {
		return 0, err
	}
	return pos.Down, nil
}

func VelocityStateDown(s *telemetry.Snapshot) (float64, error) {
	vel, err := s.VelocityState()
	if err != nil {
		return 0, err
	}
	return vel.Down, nil
}

func NedAccelDown(s *telemetry.Snapshot) (float64, error) {
	acc, err := s.NedAccel()
	if err != nil {
		return 0, err
	}
	return acc.Down, nil
}

func VelocityDesiredDown(s *telemetry.Snapshot) (float64, error) {
	vd, err := s.VelocityDesired()
	if err != nil {
		return 0, err
	}
	return vd.Down, nil
}

// Position resolves the vehicle position with a strict three-tier fallback:
// the GPS solution when it has a 2D or 3D fix, else the home location when
// it is set, else the configured fallback. The tiers are never blended.
func Position(s *telemetry.Snapshot, ctx Context) (coordinates.Geographic, error) {
	gps, err := s.GPSPositionSensor()
	if err != nil {
		return coordinates.Geographic{}, err
	}

	switch gps.Status {
	case telemetry.GPSStatusFix2D, telemetry.GPSStatusFix3D:
		return GPSPosition(s)
	}

	home, err := s.HomeLocation()
	if err != nil {
		return coordinates.Geographic{}, err
	}
	if home.Set == telemetry.HomeLocationSetTrue {
		return HomePosition(s)
	}
	return DefaultPosition(ctx), nil
}

// GPSPosition is the raw GPS solution in decimal degrees.
func GPSPosition(s *telemetry.Snapshot) (coordinates.Geographic, error) {
	gps, err := s.GPSPositionSensor()
	if err != nil {
		return coordinates.Geographic{}, err
	}
	return coordinates.FromDegreesE7(gps.Latitude, gps.Longitude, gps.Altitude), nil
}

// HomePosition is the recorded home location in decimal degrees.
func HomePosition(s *telemetry.Snapshot) (coordinates.Geographic, error) {
	home, err := s.HomeLocation()
	if err != nil {
		return coordinates.Geographic{}, err
	}
	return coordinates.FromDegreesE7(home.Latitude, home.Longitude, home.Altitude), nil
}

// DefaultPosition is the configured fallback position.
func DefaultPosition(ctx Context) coordinates.Geographic {
	return ctx.Fallback
}
