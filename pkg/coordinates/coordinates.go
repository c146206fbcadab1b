// Package coordinates holds the small amount of geometry the flight display
// needs: scaled GPS degrees, Euler angle vectors and planar north/east
// heading and distance in the local NED frame.
package coordinates

import "math"

// Constants for coordinate calculations
const (
	// RadiansToDegrees converts radians to degrees
	RadiansToDegrees = 180.0 / math.Pi

	// DegreesE7 is the fixed-point scale of GPS and home coordinates as
	// sent by the flight controller (degrees * 1e7).
	DegreesE7 = 1e7
)

// Geographic represents a position on Earth's surface (WGS84).
type Geographic struct {
	// Longitude in decimal degrees (-180 to +180)
	// Positive = East, Negative = West
	Longitude float64 `json:"longitude" yaml:"longitude"`

	// Latitude in decimal degrees (-90 to +90)
	// Positive = North, Negative = South
	Latitude float64 `json:"latitude" yaml:"latitude"`

	// Altitude in meters above mean sea level (MSL)
	Altitude float64 `json:"altitude" yaml:"altitude"`
}

// FromDegreesE7 builds a Geographic from fixed-point latitude and longitude.
// Altitude is taken as-is.
func FromDegreesE7(latitudeE7, longitudeE7, altitude float64) Geographic {
	return Geographic{
		Longitude: longitudeE7 / DegreesE7,
		Latitude:  latitudeE7 / DegreesE7,
		Altitude:  altitude,
	}
}

// Vector3 is a plain three-component value.
type Vector3 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// NED is a horizontal position in the local North-East-Down frame, meters.
// Down is not needed for planar navigation and is left out.
type NED struct {
	North float64
	East  float64
}

// PlanarDistance is the straight-line horizontal distance from one NED
// point to another: sqrt(dEast² + dNorth²).
func PlanarDistance(from, to NED) float64 {
	dEast := to.East - from.East
	dNorth := to.North - from.North
	return math.Sqrt(dEast*dEast + dNorth*dNorth)
}

// PlanarHeading is the bearing from one NED point to another in degrees,
// 0 = north and clockwise positive. The result is in (-180, 180]; use
// NormalizeAzimuth for a compass reading.
func PlanarHeading(from, to NED) float64 {
	return math.Atan2(to.East-from.East, to.North-from.North) * RadiansToDegrees
}

// NormalizeAzimuth ensures azimuth is in the range [0, 360).
func NormalizeAzimuth(azimuth float64) float64 {
	az := math.Mod(azimuth, 360.0)
	if az < 0 {
		az += 360.0
	}
	return az
}
