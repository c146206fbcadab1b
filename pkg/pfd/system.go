package pfd

import (
	"fmt"
	"math"
	"strconv"

	"github.com/unklstewy/gcs-pfd/pkg/format"
	"github.com/unklstewy/gcs-pfd/pkg/lookup"
	"github.com/unklstewy/gcs-pfd/pkg/telemetry"
)

// cc3dHeapLimit is the free heap below which the board is assumed to be a
// CopterControl, which has no room for navigation.
const cc3dHeapLimit = 3096

// FreeMemory renders a byte count: above 1024 bytes as kilobytes with two
// decimals ("12.50Kb"), otherwise as raw bytes ("800bytes").
func FreeMemory(bytes int) string {
	if bytes > 1024 {
		return fmt.Sprintf("%.2fKb", float64(bytes)/1024)
	}
	return strconv.Itoa(bytes) + "bytes"
}

// FreeMemoryDisplay renders the flight controller's remaining heap.
func FreeMemoryDisplay(s *telemetry.Snapshot) (string, error) {
	stats, err := s.SystemStats()
	if err != nil {
		return "", err
	}
	return FreeMemory(stats.HeapRemaining), nil
}

// IsCC3D guesses a CopterControl board from its small heap.
func IsCC3D(s *telemetry.Snapshot) (bool, error) {
	stats, err := s.SystemStats()
	if err != nil {
		return false, err
	}
	return stats.HeapRemaining < cc3dHeapLimit, nil
}

func CPULoad(s *telemetry.Snapshot) (float64, error) {
	stats, err := s.SystemStats()
	if err != nil {
		return 0, err
	}
	return stats.CPULoad, nil
}

func CPUTemp(s *telemetry.Snapshot) (float64, error) {
	stats, err := s.SystemStats()
	if err != nil {
		return 0, err
	}
	return stats.CPUTemp, nil
}

// FlightTimeSeconds converts milliseconds to whole seconds, rounding half up.
func FlightTimeSeconds(ms int) int {
	return int(math.Round(float64(ms) / 1000))
}

// FlightTime is the time since arming, in seconds.
func FlightTime(s *telemetry.Snapshot) (int, error) {
	stats, err := s.SystemStats()
	if err != nil {
		return 0, err
	}
	return FlightTimeSeconds(stats.FlightTime), nil
}

// FlightTimeDisplay is the flight time as HH:MM:SS.
func FlightTimeDisplay(s *telemetry.Snapshot) (string, error) {
	secs, err := FlightTime(s)
	if err != nil {
		return "", err
	}
	return format.Duration(float64(secs)), nil
}

// airframe returns the frame type after checking it indexes the
// AirframeTypes table, so the range predicates never see a bogus value.
func airframe(s *telemetry.Snapshot) (telemetry.AirframeType, error) {
	settings, err := s.SystemSettings()
	if err != nil {
		return 0, err
	}
	if _, err := lookup.AirframeTypes.Entry(int(settings.AirframeType)); err != nil {
		return 0, err
	}
	return settings.AirframeType, nil
}

// FrameType is the airframe name.
func FrameType(s *telemetry.Snapshot) (string, error) {
	frame, err := airframe(s)
	if err != nil {
		return "", err
	}
	return lookup.AirframeTypes.Label(int(frame))
}

func IsFixedWing(s *telemetry.Snapshot) (bool, error) {
	frame, err := airframe(s)
	if err != nil {
		return false, err
	}
	return frame.IsFixedWing(), nil
}

func IsVtolOrMultirotor(s *telemetry.Snapshot) (bool, error) {
	frame, err := airframe(s)
	if err != nil {
		return false, err
	}
	return frame.IsVtolOrMultirotor(), nil
}

func IsGroundVehicle(s *telemetry.Snapshot) (bool, error) {
	frame, err := airframe(s)
	if err != nil {
		return false, err
	}
	return frame.IsGroundVehicle(), nil
}
