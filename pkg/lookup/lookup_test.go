package lookup

import (
	"fmt"
	"testing"

	"github.com/unklstewy/gcs-pfd/pkg/telemetry"
)

// Each table must have exactly one row per enum value.
func TestTableSizes(t *testing.T) {
	tests := []struct {
		table Table
		want  int
	}{
		{AirframeTypes, telemetry.AirframeTypeCount},
		{FlightModes, telemetry.FlightModeCount},
		{ThrustModes, telemetry.StabilizationModeCount + 1},
		{ArmStatuses, telemetry.ArmStatusCount},
		{AlarmSeverities, telemetry.AlarmSeverityCount},
		{ModuleStatuses, telemetry.AlarmSeverityCount},
		{GPSStatuses, telemetry.GPSStatusCount},
		{GPSSensorTypes, telemetry.GPSSensorTypeCount},
		{LinkStates, telemetry.LinkStateCount},
		{FusionAlgorithms, telemetry.FusionAlgorithmCount},
		{PathModes, telemetry.PathModeCount},
		{AuxMagTypes, telemetry.AuxMagTypeCount},
		{MagSources, telemetry.MagSourceCount},
	}

	for _, tt := range tests {
		t.Run(tt.table.Name(), func(t *testing.T) {
			if tt.table.Len() != tt.want {
				t.Errorf("%s has %d entries, want %d", tt.table.Name(), tt.table.Len(), tt.want)
			}
		})
	}
}

func TestTableLookup(t *testing.T) {
	tests := []struct {
		name      string
		table     Table
		index     int
		wantLabel string
		wantColor Color
	}{
		{"Manual flight mode", FlightModes, int(telemetry.FlightModeManual), "MANUAL", ColorGray},
		{"Stabilized flight mode", FlightModes, int(telemetry.FlightModeStabilized3), "STAB 3", ColorGreen},
		{"Autotune flight mode", FlightModes, int(telemetry.FlightModeAutoTune), "AUTOTUNE", ColorCyan},
		{"Armed", ArmStatuses, int(telemetry.ArmStatusArmed), "ARMED", ColorGreen},
		{"Arming", ArmStatuses, int(telemetry.ArmStatusArming), "ARMING", ColorOrange},
		{"Thrust sentinel", ThrustModes, telemetry.StabilizationModeCount, "AUTO", ColorCyan},
		{"Hidden thrust mode keeps its slot", ThrustModes, int(telemetry.StabilizationSystemIdent), "systemident", ColorGrey},
		{"Altitude vario", ThrustModes, int(telemetry.StabilizationAltitudeVario), "ALT VARIO", ColorGreen},
		{"Tricopter", AirframeTypes, int(telemetry.AirframeTricopter), "Tricopter", ""},
		{"Ground motorcycle", AirframeTypes, int(telemetry.AirframeGroundVehicleMotorcycle), "GroundVehicleMoto", ""},
		{"3D fix", GPSStatuses, int(telemetry.GPSStatusFix3D), "3D", ""},
		{"Connected link", LinkStates, int(telemetry.LinkStateConnected), "Connected", ""},
		{"INS13", FusionAlgorithms, int(telemetry.FusionGPSNavINS13), "GPSNav (INS13)", ""},
		{"Auto takeoff path", PathModes, int(telemetry.PathModeAutoTakeoff), "AUTO TAKEOFF", ""},
		{"Aux magnetometer", MagSources, int(telemetry.MagSourceAux), "Aux", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := tt.table.Entry(tt.index)
			if err != nil {
				t.Fatalf("Entry(%d) failed: %v", tt.index, err)
			}
			if e.Label != tt.wantLabel {
				t.Errorf("Label = %q, want %q", e.Label, tt.wantLabel)
			}
			if e.Color != tt.wantColor {
				t.Errorf("Color = %q, want %q", e.Color, tt.wantColor)
			}
		})
	}
}

func TestAlarmSeverityColors(t *testing.T) {
	want := map[telemetry.AlarmSeverity]Color{
		telemetry.AlarmUninitialised: ColorNeutral,
		telemetry.AlarmOK:            ColorGreen,
		telemetry.AlarmWarning:       ColorOrange,
		telemetry.AlarmCritical:      ColorRed,
		telemetry.AlarmError:         ColorRed,
	}

	for sev, color := range want {
		got, err := AlarmSeverities.Color(int(sev))
		if err != nil {
			t.Fatalf("Color(%d) failed: %v", sev, err)
		}
		if got != color {
			t.Errorf("severity %d color = %q, want %q", sev, got, color)
		}
	}
}

func TestTableOutOfRange(t *testing.T) {
	for _, index := range []int{-1, telemetry.ArmStatusCount, 99} {
		t.Run(fmt.Sprint(index), func(t *testing.T) {
			_, err := ArmStatuses.Label(index)
			le, ok := IsLookupError(err)
			if !ok {
				t.Fatalf("Expected LookupError, got %v", err)
			}
			if le.Table != "ArmStatus" || le.Index != index || le.Size != 3 {
				t.Errorf("Unexpected error details: %+v", le)
			}
		})
	}

	if _, err := AlarmSeverities.Color(5); err == nil {
		t.Error("Expected error for severity 5")
	}
}

func TestIsLookupErrorWrapped(t *testing.T) {
	err := fmt.Errorf("flight mode: %w", &LookupError{Table: "FlightMode", Index: 40, Size: 19})
	le, ok := IsLookupError(err)
	if !ok || le.Index != 40 {
		t.Errorf("Expected wrapped LookupError, got %v", err)
	}
	if le.Error() != "lookup FlightMode: index 40 out of range [0,19)" {
		t.Errorf("Unexpected message: %s", le.Error())
	}
}
