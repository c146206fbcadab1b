package pfd

import (
	"github.com/unklstewy/gcs-pfd/pkg/lookup"
	"github.com/unklstewy/gcs-pfd/pkg/telemetry"
)

// StatusColor colors a module status light by alarm severity.
func StatusColor(severity telemetry.AlarmSeverity) (lookup.Color, error) {
	return lookup.ModuleStatuses.Color(int(severity))
}

// AutopilotStatusColor colors the autopilot light from the guidance alarm.
func AutopilotStatusColor(s *telemetry.Snapshot) (lookup.Color, error) {
	alarms, err := s.SystemAlarms()
	if err != nil {
		return "", err
	}
	return StatusColor(alarms.Guidance)
}

// RCInputStatusColor colors the RC input light from the manual control alarm.
func RCInputStatusColor(s *telemetry.Snapshot) (lookup.Color, error) {
	alarms, err := s.SystemAlarms()
	if err != nil {
		return "", err
	}
	return StatusColor(alarms.ManualControl)
}

// MasterCautionWarning is raised when any of the system health alarms is
// above OK. Subsystem alarms (attitude, GPS, battery, ...) have their own
// indicators and do not count.
func MasterCautionWarning(s *telemetry.Snapshot) (bool, error) {
	alarms, err := s.SystemAlarms()
	if err != nil {
		return false, err
	}
	return alarms.BootFault > telemetry.AlarmOK ||
		alarms.OutOfMemory > telemetry.AlarmOK ||
		alarms.StackOverflow > telemetry.AlarmOK ||
		alarms.CPUOverload > telemetry.AlarmOK ||
		alarms.EventSystem > telemetry.AlarmOK, nil
}
