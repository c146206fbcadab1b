package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/unklstewy/gcs-pfd/pkg/coordinates"
	"github.com/unklstewy/gcs-pfd/pkg/format"
	"github.com/unklstewy/gcs-pfd/pkg/lookup"
	"github.com/unklstewy/gcs-pfd/pkg/pfd"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	panelStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	skyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	groundStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("130"))
	symbolStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true)
)

// terminalColors maps display colors onto the 256-color palette.
var terminalColors = map[lookup.Color]lipgloss.Color{
	lookup.ColorGray:    lipgloss.Color("244"),
	lookup.ColorGrey:    lipgloss.Color("244"),
	lookup.ColorGreen:   lipgloss.Color("46"),
	lookup.ColorOrange:  lipgloss.Color("208"),
	lookup.ColorRed:     lipgloss.Color("196"),
	lookup.ColorCyan:    lipgloss.Color("51"),
	lookup.ColorNeutral: lipgloss.Color(string(lookup.ColorNeutral)),
}

// colorStyle returns the foreground style of a display color. Unknown
// colors render unstyled.
func colorStyle(c lookup.Color) lipgloss.Style {
	if tc, ok := terminalColors[c]; ok {
		return lipgloss.NewStyle().Foreground(tc)
	}
	return lipgloss.NewStyle()
}

// badge renders a label on its status color.
func badge(label string, c lookup.Color) string {
	tc, ok := terminalColors[c]
	if !ok {
		return "[" + label + "]"
	}
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("16")).
		Background(tc).
		Padding(0, 1).
		Render(label)
}

func field(label, value string) string {
	return labelStyle.Render(fmt.Sprintf("%-10s", label)) + value
}

func renderHeader(d *pfd.Display) string {
	title := titleStyle.Render(fmt.Sprintf("PFD %s  %s", d.VehicleID, d.Clock.Format("2006-01-02 15:04:05")))
	modes := strings.Join([]string{
		badge(d.Mode.FlightMode, d.Mode.FlightModeColor),
		badge(d.Mode.ThrustMode, d.Mode.ThrustModeColor),
		badge(d.Mode.ArmStatus, d.Mode.ArmStatusColor),
	}, " ")
	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", modes)
}

func renderAttitude(d *pfd.Display) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Attitude"))
	b.WriteString("\n")

	for _, row := range renderHorizon(d.Attitude.Roll, d.Attitude.Pitch) {
		for _, r := range row {
			switch r {
			case '░':
				b.WriteString(groundStyle.Render(string(r)))
			case '━', '◆':
				b.WriteString(symbolStyle.Render(string(r)))
			default:
				b.WriteString(skyStyle.Render(string(r)))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("R %6.1f°  P %6.1f°  Y %5.1f°",
		d.Attitude.Roll, d.Attitude.Pitch, coordinates.NormalizeAzimuth(d.Attitude.Yaw)))
	if !d.Attitude.Valid {
		b.WriteString("\n" + errStyle.Render("ATTITUDE INVALID"))
	}
	return panelStyle.Render(b.String())
}

func renderNavigation(d *pfd.Display) string {
	n := d.Navigation
	lines := []string{
		headerStyle.Render("Navigation"),
		field("Position", fmt.Sprintf("%.6f, %.6f", n.Position.Latitude, n.Position.Longitude)),
		field("Speed", format.WithUnit(n.Speed, 1, n.SpeedUnit)),
		field("Altitude", format.WithUnit(n.Altitude, 1, n.AltitudeUnit)),
		field("V/S", fmt.Sprintf("%+.1f %s/s", n.VerticalSpeed, n.AltitudeUnit)),
	}

	if h := d.Home; h != nil {
		lines = append(lines, "",
			headerStyle.Render("Home"),
			field("Heading", fmt.Sprintf("%03.0f°", coordinates.NormalizeAzimuth(h.Heading))),
			field("Distance", fmt.Sprintf("%.0f m", h.Distance)),
			field("ETA", h.ETA),
		)
	}

	if p := d.PathPlan; p != nil {
		lines = append(lines, "",
			headerStyle.Render("Path plan"),
			field("Mode", p.Mode),
			field("Waypoint", fmt.Sprintf("%d / %d", p.Waypoint+1, p.WaypointCount)),
			field("Heading", fmt.Sprintf("%03.0f°", coordinates.NormalizeAzimuth(p.Heading))),
			field("Distance", fmt.Sprintf("%.0f m", p.Distance)),
			field("ETA", p.ETA),
		)
	}

	return panelStyle.Render(strings.Join(lines, "\n"))
}

func renderSystem(d *pfd.Display) string {
	s, g, l := d.System, d.GPS, d.Link
	lines := []string{
		headerStyle.Render("System"),
		field("Frame", s.FrameType),
		field("CPU", fmt.Sprintf("%.0f%%  %.1f°C", s.CPULoad, s.CPUTemp)),
		field("Memory", s.FreeMemory),
		field("Flight", s.FlightTimeDisplay),
		"",
		headerStyle.Render("Sensors"),
		field("GPS", fmt.Sprintf("%s %s  %d/%d sats", g.SensorType, g.Status, g.NumSat, g.SatsInView)),
		field("DOP", g.HdopInfo),
		field("Mag", g.MagSource),
		field("Fusion", g.FusionAlgorithm),
		field("Link", fmt.Sprintf("%s  RX %s", l.OPLinkState, l.ReceiverQuality)),
	}

	if bat := d.Battery; bat != nil {
		lines = append(lines, "",
			headerStyle.Render("Battery"),
			field("Cells", fmt.Sprintf("%dS", bat.Cells)),
			field("Voltage", colorStyle(bat.AlarmColor).Render(bat.Voltage+" V")),
			field("Current", bat.Current+" A"),
			field("Used", bat.ConsumedEnergy+" mAh"),
			field("Remaining", colorStyle(bat.TimeColor).Render(bat.EstimatedFlightTimeLabel)),
		)
	}

	return panelStyle.Render(strings.Join(lines, "\n"))
}

func renderAlarms(d *pfd.Display) string {
	parts := []string{
		badge("AUTOPILOT", d.Alarms.Autopilot),
		badge("RC INPUT", d.Alarms.RCInput),
	}
	if d.Alarms.MasterCaution {
		parts = append(parts, badge("MASTER CAUTION", lookup.ColorRed))
	}
	return strings.Join(parts, " ")
}

// renderDisplay lays out every panel of one display.
func renderDisplay(d *pfd.Display) string {
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		renderAttitude(d),
		renderNavigation(d),
		renderSystem(d),
	)
	return lipgloss.JoinVertical(lipgloss.Left,
		renderHeader(d),
		body,
		renderAlarms(d),
	)
}
