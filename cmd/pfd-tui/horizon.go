package main

import (
	"math"
	"strings"
)

// Artificial horizon viewport
const (
	horizonWidth  = 33
	horizonHeight = 11

	// pitchScale is how many degrees of pitch move the horizon one row.
	pitchScale = 5.0
)

// renderHorizon draws an attitude indicator: sky above the horizon line,
// ground below, and the fixed aircraft symbol in the middle. Positive roll
// (right wing down) tilts the horizon counter-clockwise on screen; positive
// pitch moves it towards the aircraft's belly. Past 90° of bank the ground
// is drawn above the line.
func renderHorizon(roll, pitch float64) []string {
	cx := float64(horizonWidth-1) / 2
	cy := float64(horizonHeight-1) / 2
	sin, cos := math.Sincos(roll * math.Pi / 180)
	offset := pitch / pitchScale

	// Half a cell along whichever axis the line is closer to, so steep
	// lines stay unbroken.
	halfCell := 0.5 * math.Max(math.Abs(sin), math.Abs(cos))

	rows := make([]string, horizonHeight)
	for y := 0; y < horizonHeight; y++ {
		var row strings.Builder
		for x := 0; x < horizonWidth; x++ {
			// Signed distance from the horizon along the aircraft's
			// down axis; positive is ground. Screen y grows downwards.
			d := (float64(y)-cy)*cos + (float64(x)-cx)*sin - offset
			switch {
			case isAircraftSymbol(x, y):
				row.WriteRune(aircraftRune(x))
			case math.Abs(d) < halfCell:
				row.WriteRune('─')
			case d < 0:
				row.WriteRune(' ')
			default:
				row.WriteRune('░')
			}
		}
		rows[y] = row.String()
	}
	return rows
}

func isAircraftSymbol(x, y int) bool {
	if y != horizonHeight/2 {
		return false
	}
	c := horizonWidth / 2
	return (x >= c-6 && x <= c-3) || x == c || (x >= c+3 && x <= c+6)
}

func aircraftRune(x int) rune {
	if x == horizonWidth/2 {
		return '◆'
	}
	return '━'
}
