package pfd

import (
	"github.com/unklstewy/gcs-pfd/pkg/lookup"
	"github.com/unklstewy/gcs-pfd/pkg/telemetry"
)

// ThrustModeAuto is the thrust mode shown when the autopilot controls
// thrust. It sits one past the last stabilization mode, matching the extra
// row of lookup.ThrustModes.
const ThrustModeAuto = telemetry.StabilizationMode(telemetry.StabilizationModeCount)

func IsFlightModeManual(s *telemetry.Snapshot) (bool, error) {
	status, err := s.FlightStatus()
	if err != nil {
		return false, err
	}
	return status.FlightMode == telemetry.FlightModeManual, nil
}

// flightMode returns the flight mode after checking it indexes the
// FlightModes table.
func flightMode(s *telemetry.Snapshot) (telemetry.FlightMode, error) {
	status, err := s.FlightStatus()
	if err != nil {
		return 0, err
	}
	if _, err := lookup.FlightModes.Entry(int(status.FlightMode)); err != nil {
		return 0, err
	}
	return status.FlightMode, nil
}

// IsFlightModeAssisted reports whether the flight mode is past the last
// stabilized mode.
func IsFlightModeAssisted(s *telemetry.Snapshot) (bool, error) {
	mode, err := flightMode(s)
	if err != nil {
		return false, err
	}
	return mode.IsAssisted(), nil
}

func IsThrustControlAuto(s *telemetry.Snapshot) (bool, error) {
	settings, err := s.VtolPathFollowerSettings()
	if err != nil {
		return false, err
	}
	return settings.ThrustControl == telemetry.ThrustControlAuto, nil
}

func FlightModeName(s *telemetry.Snapshot) (string, error) {
	status, err := s.FlightStatus()
	if err != nil {
		return "", err
	}
	return lookup.FlightModes.Label(int(status.FlightMode))
}

func FlightModeColor(s *telemetry.Snapshot) (lookup.Color, error) {
	status, err := s.FlightStatus()
	if err != nil {
		return "", err
	}
	return lookup.FlightModes.Color(int(status.FlightMode))
}

// ThrustMode resolves who controls thrust:
//   - not assisted: the stabilization mode requested for thrust;
//   - assisted multirotor with auto thrust control: ThrustModeAuto;
//   - assisted fixed wing: ThrustModeAuto;
//   - any other assisted vehicle: manual.
//
// Only the records the chosen branch needs are read.
func ThrustMode(s *telemetry.Snapshot) (telemetry.StabilizationMode, error) {
	assisted, err := IsFlightModeAssisted(s)
	if err != nil {
		return 0, err
	}
	if !assisted {
		stab, err := s.StabilizationDesired()
		if err != nil {
			return 0, err
		}
		// ThrustModeAuto is never a requested mode.
		if mode := stab.StabilizationModeThrust; mode < 0 || mode >= telemetry.StabilizationModeCount {
			return 0, &lookup.LookupError{
				Table: "StabilizationMode",
				Index: int(mode),
				Size:  telemetry.StabilizationModeCount,
			}
		}
		return stab.StabilizationModeThrust, nil
	}

	frame, err := airframe(s)
	if err != nil {
		return 0, err
	}
	if frame.IsVtolOrMultirotor() {
		auto, err := IsThrustControlAuto(s)
		if err != nil {
			return 0, err
		}
		if auto {
			return ThrustModeAuto, nil
		}
	}
	if frame.IsFixedWing() {
		return ThrustModeAuto, nil
	}
	return telemetry.StabilizationManual, nil
}

func ThrustModeName(s *telemetry.Snapshot) (string, error) {
	mode, err := ThrustMode(s)
	if err != nil {
		return "", err
	}
	return lookup.ThrustModes.Label(int(mode))
}

func ThrustModeColor(s *telemetry.Snapshot) (lookup.Color, error) {
	mode, err := ThrustMode(s)
	if err != nil {
		return "", err
	}
	return lookup.ThrustModes.Color(int(mode))
}

func ArmStatusName(s *telemetry.Snapshot) (string, error) {
	status, err := s.FlightStatus()
	if err != nil {
		return "", err
	}
	return lookup.ArmStatuses.Label(int(status.Armed))
}

func ArmStatusColor(s *telemetry.Snapshot) (lookup.Color, error) {
	status, err := s.FlightStatus()
	if err != nil {
		return "", err
	}
	return lookup.ArmStatuses.Color(int(status.Armed))
}
