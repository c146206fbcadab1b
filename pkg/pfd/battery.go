package pfd

import (
	"math"
	"strconv"

	"github.com/unklstewy/gcs-pfd/pkg/format"
	"github.com/unklstewy/gcs-pfd/pkg/lookup"
	"github.com/unklstewy/gcs-pfd/pkg/telemetry"
)

// Remaining flight time thresholds, seconds.
const (
	flightTimeWarning  = 120
	flightTimeCritical = 60
)

// BatteryModuleEnabled reports whether the battery monitor is fitted. The
// battery group is hidden when it is not.
func BatteryModuleEnabled(s *telemetry.Snapshot) (bool, error) {
	hw, err := s.HwSettings()
	if err != nil {
		return false, err
	}
	return hw.OptionalModulesBattery == telemetry.ModuleEnabled, nil
}

func BatteryNbCells(s *telemetry.Snapshot) (int, error) {
	settings, err := s.FlightBatterySettings()
	if err != nil {
		return 0, err
	}
	return settings.NbCells, nil
}

func batteryField(s *telemetry.Snapshot, decimals int, pick func(*telemetry.FlightBatteryState) float64) (string, error) {
	state, err := s.FlightBatteryState()
	if err != nil {
		return "", err
	}
	return strconv.FormatFloat(pick(state), 'f', decimals, 64), nil
}

// BatteryVoltage in volts, two decimals.
func BatteryVoltage(s *telemetry.Snapshot) (string, error) {
	return batteryField(s, 2, func(b *telemetry.FlightBatteryState) float64 { return b.Voltage })
}

// BatteryCurrent in amps, two decimals.
func BatteryCurrent(s *telemetry.Snapshot) (string, error) {
	return batteryField(s, 2, func(b *telemetry.FlightBatteryState) float64 { return b.Current })
}

// BatteryConsumedEnergy in mAh, no decimals.
func BatteryConsumedEnergy(s *telemetry.Snapshot) (string, error) {
	return batteryField(s, 0, func(b *telemetry.FlightBatteryState) float64 { return b.ConsumedEnergy })
}

// EstimatedFlightTime is the remaining flight time in whole seconds.
func EstimatedFlightTime(s *telemetry.Snapshot) (int, error) {
	state, err := s.FlightBatteryState()
	if err != nil {
		return 0, err
	}
	return int(math.Round(state.EstimatedFlightTime)), nil
}

func EstimatedFlightTimeDisplay(s *telemetry.Snapshot) (string, error) {
	secs, err := EstimatedFlightTime(s)
	if err != nil {
		return "", err
	}
	return format.Duration(float64(secs)), nil
}

// BatteryAlarmColor colors the battery by its alarm severity.
func BatteryAlarmColor(s *telemetry.Snapshot) (lookup.Color, error) {
	alarms, err := s.SystemAlarms()
	if err != nil {
		return "", err
	}
	return lookup.AlarmSeverities.Color(int(alarms.Battery))
}

// EstimatedTimeAlarmColor colors the remaining flight time. Below the time
// thresholds the time decides the color on its own; above them the battery
// alarm color is used.
func EstimatedTimeAlarmColor(s *telemetry.Snapshot) (lookup.Color, error) {
	secs, err := EstimatedFlightTime(s)
	if err != nil {
		return "", err
	}
	switch {
	case secs <= flightTimeCritical:
		return lookup.ColorRed, nil
	case secs <= flightTimeWarning:
		return lookup.ColorOrange, nil
	}
	return BatteryAlarmColor(s)
}
