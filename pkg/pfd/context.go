// Package pfd derives primary flight display values from a telemetry
// snapshot.
//
// Every function takes the snapshot explicitly and is pure: it reads only the
// records it needs, never mutates them and keeps no state between calls. A
// record the derivation needs but the snapshot lacks is reported as a
// *telemetry.MissingTelemetryError; an enum value outside its table is
// reported as a *lookup.LookupError. Neither is ever replaced by a default.
package pfd

import (
	"time"

	"github.com/unklstewy/gcs-pfd/pkg/coordinates"
	"github.com/unklstewy/gcs-pfd/pkg/format"
)

// Context holds the static operator preferences the derivations need.
type Context struct {
	// Fallback is the position shown when there is neither a GPS fix nor
	// a recorded home location.
	Fallback coordinates.Geographic

	// TimeMode selects between the wall clock and DateTime.
	TimeMode format.TimeMode

	// DateTime is the instant shown in TimePredefined mode.
	DateTime time.Time

	// SpeedFactor converts m/s to the display unit (1 = m/s, 3.6 = km/h).
	SpeedFactor float64
	SpeedUnit   string

	// AltitudeFactor converts meters to the display unit (3.2808 = ft).
	AltitudeFactor float64
	AltitudeUnit   string
}

// Display unit factors offered by the ground station.
const (
	SpeedFactorMetersPerSecond = 1.0
	SpeedFactorKilometersHour  = 3.6
	SpeedFactorMilesHour       = 2.2369
	SpeedFactorKnots           = 1.9438

	AltitudeFactorMeters = 1.0
	AltitudeFactorFeet   = 3.2808
)

// DefaultContext returns a context with metric units, the local clock and a
// zero fallback position.
func DefaultContext() Context {
	return Context{
		TimeMode:       format.TimeLocal,
		SpeedFactor:    SpeedFactorMetersPerSecond,
		SpeedUnit:      "m/s",
		AltitudeFactor: AltitudeFactorMeters,
		AltitudeUnit:   "m",
	}
}

// Speed converts a speed in m/s to the display unit.
func (c Context) Speed(metersPerSecond float64) float64 {
	return metersPerSecond * c.SpeedFactor
}

// Altitude converts a height in meters to the display unit.
func (c Context) Altitude(meters float64) float64 {
	return meters * c.AltitudeFactor
}

// Now returns the instant the display clock should show.
func (c Context) Now(now time.Time) time.Time {
	return format.DateTime(c.TimeMode, c.DateTime, now)
}
