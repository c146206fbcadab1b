// Package format renders numbers and times the way the flight display
// shows them.
package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// TwoDigit pads 0..9 to two digits. Larger values are returned in full, so
// a 125 hour flight renders as "125" rather than being truncated.
// Negative values are rendered unpadded.
func TwoDigit(n int) string {
	if n == 0 {
		return "00"
	}
	if n > 0 && n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

// Duration formats a number of seconds as hours:minutes:seconds.
// Zero, negative and non-finite input render as "00:00:00". Hours are not
// capped, so very long durations keep every digit.
func Duration(totalSeconds float64) string {
	if !(totalSeconds > 0) || math.IsInf(totalSeconds, 1) {
		return "00:00:00"
	}

	hours := math.Floor(totalSeconds / 3600)
	minutes := math.Floor(math.Mod(totalSeconds, 3600) / 60)
	seconds := math.Floor(math.Mod(totalSeconds, 60))

	h := strconv.FormatFloat(hours, 'f', 0, 64)
	if hours < 10 {
		h = TwoDigit(int(hours))
	}
	return strings.Join([]string{
		h,
		TwoDigit(int(minutes)),
		TwoDigit(int(seconds)),
	}, ":")
}

// EstimatedTimeOfArrival formats the time needed to cover distance (m) at
// velocity (m/s). Either operand being zero or negative gives "00:00:00".
func EstimatedTimeOfArrival(distance, velocity float64) string {
	if distance > 0 && velocity > 0 {
		return Duration(math.Round(distance / velocity))
	}
	return Duration(0)
}

// TimeMode selects the clock shown on the display.
type TimeMode int

const (
	// TimeLocal shows the ground station wall clock.
	TimeLocal TimeMode = iota
	// TimePredefined shows a fixed, configured instant (used for replay
	// and simulation so sun position and clock match the recording).
	TimePredefined
)

var timeModeNames = map[TimeMode]string{
	TimeLocal:      "local",
	TimePredefined: "predefined",
}

func (m TimeMode) String() string {
	if name, ok := timeModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("TimeMode(%d)", int(m))
}

// ParseTimeMode parses "local" or "predefined" (case-insensitive).
func ParseTimeMode(s string) (TimeMode, error) {
	for mode, name := range timeModeNames {
		if strings.EqualFold(s, name) {
			return mode, nil
		}
	}
	return TimeLocal, fmt.Errorf("unknown time mode %q", s)
}

// DateTime returns the instant to display: now in TimeLocal mode, the
// predefined instant otherwise.
func DateTime(mode TimeMode, predefined, now time.Time) time.Time {
	if mode == TimePredefined {
		return predefined
	}
	return now
}

// WithUnit renders value with the given number of decimals followed by a
// space and unit, e.g. WithUnit(12.345, 1, "km/h") = "12.3 km/h".
func WithUnit(value float64, decimals int, unit string) string {
	s := strconv.FormatFloat(value, 'f', decimals, 64)
	if unit == "" {
		return s
	}
	return s + " " + unit
}
