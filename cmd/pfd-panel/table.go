package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/unklstewy/gcs-pfd/pkg/coordinates"
	"github.com/unklstewy/gcs-pfd/pkg/format"
	"github.com/unklstewy/gcs-pfd/pkg/lookup"
	"github.com/unklstewy/gcs-pfd/pkg/pfd"
)

// row is one line of the display table. Section rows have an empty Label.
type row struct {
	Section string
	Label   string
	Value   string
	Color   lookup.Color
}

func section(name string) row {
	return row{Section: name}
}

func value(label, v string) row {
	return row{Label: label, Value: v}
}

func colored(label, v string, c lookup.Color) row {
	return row{Label: label, Value: v, Color: c}
}

// cellColors maps display colors onto tcell colors.
var cellColors = map[lookup.Color]tcell.Color{
	lookup.ColorGray:    tcell.ColorGray,
	lookup.ColorGrey:    tcell.ColorGray,
	lookup.ColorGreen:   tcell.ColorGreen,
	lookup.ColorOrange:  tcell.ColorOrange,
	lookup.ColorRed:     tcell.ColorRed,
	lookup.ColorCyan:    tcell.ColorDarkCyan,
	lookup.ColorNeutral: tcell.GetColor(string(lookup.ColorNeutral)),
}

// cellColor returns the tcell color of a display color, white if unknown.
func cellColor(c lookup.Color) tcell.Color {
	if tc, ok := cellColors[c]; ok {
		return tc
	}
	return tcell.ColorWhite
}

func distance(meters float64) string {
	return humanize.SIWithDigits(meters, 1, "m")
}

func compass(deg float64) string {
	return fmt.Sprintf("%03.0f°", coordinates.NormalizeAzimuth(deg))
}

// displayRows flattens a display into table rows, skipping optional groups
// the display does not carry.
func displayRows(d *pfd.Display) []row {
	rows := []row{
		section("Mode"),
		colored("Flight mode", d.Mode.FlightMode, d.Mode.FlightModeColor),
		colored("Thrust", d.Mode.ThrustMode, d.Mode.ThrustModeColor),
		colored("Armed", d.Mode.ArmStatus, d.Mode.ArmStatusColor),

		section("Attitude"),
		value("Roll", fmt.Sprintf("%.1f°", d.Attitude.Roll)),
		value("Pitch", fmt.Sprintf("%.1f°", d.Attitude.Pitch)),
		value("Yaw", compass(d.Attitude.Yaw)),

		section("Navigation"),
		value("Position", fmt.Sprintf("%.6f, %.6f", d.Navigation.Position.Latitude, d.Navigation.Position.Longitude)),
		value("Speed", format.WithUnit(d.Navigation.Speed, 1, d.Navigation.SpeedUnit)),
		value("Altitude", format.WithUnit(d.Navigation.Altitude, 1, d.Navigation.AltitudeUnit)),
		value("Vertical", fmt.Sprintf("%+.1f %s/s", d.Navigation.VerticalSpeed, d.Navigation.AltitudeUnit)),
	}

	if h := d.Home; h != nil {
		rows = append(rows,
			section("Home"),
			value("Heading", compass(h.Heading)),
			value("Distance", distance(h.Distance)),
			value("ETA", h.ETA),
		)
	}

	if p := d.PathPlan; p != nil {
		rows = append(rows,
			section("Path plan"),
			value("Mode", p.Mode),
			value("Waypoint", fmt.Sprintf("%d of %d", p.Waypoint+1, p.WaypointCount)),
			value("Heading", compass(p.Heading)),
			value("Distance", distance(p.Distance)),
			value("ETA", p.ETA),
		)
	}

	rows = append(rows,
		section("System"),
		value("Frame", d.System.FrameType),
		value("CPU", fmt.Sprintf("%.0f%% / %.1f°C", d.System.CPULoad, d.System.CPUTemp)),
		value("Free memory", d.System.FreeMemory),
		value("Flight time", d.System.FlightTimeDisplay),

		section("Sensors"),
		value("GPS", fmt.Sprintf("%s %s", d.GPS.SensorType, d.GPS.Status)),
		value("Satellites", fmt.Sprintf("%d in use, %d in view", d.GPS.NumSat, d.GPS.SatsInView)),
		value("DOP", d.GPS.HdopInfo),
		value("Mag", d.GPS.MagSource),
		value("Fusion", d.GPS.FusionAlgorithm),
		value("OPLink", d.Link.OPLinkState),
		value("Receiver", d.Link.ReceiverQuality),
	)

	if b := d.Battery; b != nil {
		rows = append(rows,
			section("Battery"),
			value("Cells", fmt.Sprintf("%dS", b.Cells)),
			colored("Voltage", b.Voltage+" V", b.AlarmColor),
			value("Current", b.Current+" A"),
			value("Consumed", b.ConsumedEnergy+" mAh"),
			colored("Remaining", b.EstimatedFlightTimeLabel, b.TimeColor),
		)
	}

	caution := "clear"
	cautionColor := lookup.ColorGreen
	if d.Alarms.MasterCaution {
		caution, cautionColor = "ACTIVE", lookup.ColorRed
	}
	rows = append(rows,
		section("Alarms"),
		colored("Autopilot", string(d.Alarms.Autopilot), d.Alarms.Autopilot),
		colored("RC input", string(d.Alarms.RCInput), d.Alarms.RCInput),
		colored("Master caution", caution, cautionColor),
	)

	return rows
}

// fillTable replaces the table contents with rows.
func fillTable(table *tview.Table, rows []row) {
	table.Clear()
	for i, r := range rows {
		if r.Label == "" {
			table.SetCell(i, 0, tview.NewTableCell(r.Section).
				SetTextColor(tcell.ColorYellow).
				SetAttributes(tcell.AttrBold).
				SetSelectable(false))
			continue
		}
		table.SetCell(i, 0, tview.NewTableCell("  "+r.Label).SetTextColor(tcell.ColorGray))
		table.SetCell(i, 1, tview.NewTableCell(r.Value).
			SetTextColor(cellColor(r.Color)).
			SetExpansion(1))
	}
}
