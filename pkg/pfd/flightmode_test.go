package pfd

import (
	"testing"

	"github.com/unklstewy/gcs-pfd/pkg/lookup"
	"github.com/unklstewy/gcs-pfd/pkg/telemetry"
)

func TestThrustMode(t *testing.T) {
	tests := []struct {
		name     string
		mode     telemetry.FlightMode
		frame    telemetry.AirframeType
		control  telemetry.ThrustControl
		stab     telemetry.StabilizationMode
		want     telemetry.StabilizationMode
		wantName string
	}{
		{"Manual uses stabilization thrust", telemetry.FlightModeManual, telemetry.AirframeQuadX, telemetry.ThrustControlAuto, telemetry.StabilizationManual, telemetry.StabilizationManual, "MANUAL"},
		{"Stabilized altitude hold", telemetry.FlightModeStabilized2, telemetry.AirframeQuadX, telemetry.ThrustControlAuto, telemetry.StabilizationAltitudeHold, telemetry.StabilizationAltitudeHold, "ALT HOLD"},
		{"Stabilized fixed wing keeps thrust mode", telemetry.FlightModeStabilized6, telemetry.AirframeFixedWing, telemetry.ThrustControlManual, telemetry.StabilizationCruiseControl, telemetry.StabilizationCruiseControl, "CRUISECTRL"},
		{"Assisted multirotor with auto thrust", telemetry.FlightModePositionHold, telemetry.AirframeHexaX, telemetry.ThrustControlAuto, telemetry.StabilizationManual, ThrustModeAuto, "AUTO"},
		{"Assisted multirotor with manual thrust", telemetry.FlightModePositionHold, telemetry.AirframeHexaX, telemetry.ThrustControlManual, telemetry.StabilizationAltitudeHold, telemetry.StabilizationManual, "MANUAL"},
		{"Assisted fixed wing", telemetry.FlightModeReturnToBase, telemetry.AirframeFixedWingElevon, telemetry.ThrustControlManual, telemetry.StabilizationManual, ThrustModeAuto, "AUTO"},
		{"Assisted ground vehicle", telemetry.FlightModePathPlanner, telemetry.AirframeGroundVehicleCar, telemetry.ThrustControlAuto, telemetry.StabilizationAltitudeHold, telemetry.StabilizationManual, "MANUAL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := flyingQuad()
			s.Status.FlightMode = tt.mode
			s.Settings.AirframeType = tt.frame
			s.PathFollower.ThrustControl = tt.control
			s.Stabilization.StabilizationModeThrust = tt.stab

			got, err := ThrustMode(s)
			if err != nil {
				t.Fatalf("ThrustMode failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("ThrustMode() = %d, want %d", got, tt.want)
			}
			name, err := ThrustModeName(s)
			if err != nil {
				t.Fatalf("ThrustModeName failed: %v", err)
			}
			if name != tt.wantName {
				t.Errorf("ThrustModeName() = %q, want %q", name, tt.wantName)
			}
		})
	}
}

func TestThrustModeReadsOnlyNeededRecords(t *testing.T) {
	t.Run("Assisted does not need StabilizationDesired", func(t *testing.T) {
		s := flyingQuad()
		s.Stabilization = nil
		if _, err := ThrustMode(s); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	t.Run("Fixed wing does not need path follower settings", func(t *testing.T) {
		s := flyingQuad()
		s.Settings.AirframeType = telemetry.AirframeFixedWing
		s.PathFollower = nil
		if _, err := ThrustMode(s); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	t.Run("Assisted multirotor needs path follower settings", func(t *testing.T) {
		s := flyingQuad()
		s.PathFollower = nil
		_, err := ThrustMode(s)
		mte, ok := telemetry.IsMissingTelemetry(err)
		if !ok || mte.Record != telemetry.RecordVtolPathFollowerSettings {
			t.Errorf("Expected missing VtolPathFollowerSettings, got %v", err)
		}
	})
}

func TestThrustModeColor(t *testing.T) {
	s := flyingQuad()
	if got, _ := ThrustModeColor(s); got != lookup.ColorCyan {
		t.Errorf("ThrustModeColor() for AUTO = %q, want cyan", got)
	}

	s.Status.FlightMode = telemetry.FlightModeStabilized1
	s.Stabilization.StabilizationModeThrust = telemetry.StabilizationRate
	if got, _ := ThrustModeColor(s); got != lookup.ColorGrey {
		t.Errorf("ThrustModeColor() for rate = %q, want grey", got)
	}
}

func TestFlightModeAndArmStatus(t *testing.T) {
	s := flyingQuad()
	s.Status = &telemetry.FlightStatus{FlightMode: telemetry.FlightModeManual, Armed: telemetry.ArmStatusArmed}

	if got, _ := ArmStatusName(s); got != "ARMED" {
		t.Errorf("ArmStatusName() = %q", got)
	}
	if got, _ := ArmStatusColor(s); got != lookup.ColorGreen {
		t.Errorf("ArmStatusColor() = %q", got)
	}
	if got, _ := FlightModeName(s); got != "MANUAL" {
		t.Errorf("FlightModeName() = %q", got)
	}
	if got, _ := FlightModeColor(s); got != lookup.ColorGray {
		t.Errorf("FlightModeColor() = %q", got)
	}
	if got, _ := IsFlightModeManual(s); !got {
		t.Error("IsFlightModeManual() = false")
	}
	if got, _ := IsFlightModeAssisted(s); got {
		t.Error("IsFlightModeAssisted() = true in manual")
	}

	s.Status.FlightMode = telemetry.FlightMode(telemetry.FlightModeCount)
	if _, ok := lookup.IsLookupError(func() error { _, err := FlightModeName(s); return err }()); !ok {
		t.Error("Expected LookupError for flight mode past the table")
	}
}

func TestMasterCautionWarning(t *testing.T) {
	fields := map[string]func(*telemetry.SystemAlarms) *telemetry.AlarmSeverity{
		"BootFault":     func(a *telemetry.SystemAlarms) *telemetry.AlarmSeverity { return &a.BootFault },
		"OutOfMemory":   func(a *telemetry.SystemAlarms) *telemetry.AlarmSeverity { return &a.OutOfMemory },
		"StackOverflow": func(a *telemetry.SystemAlarms) *telemetry.AlarmSeverity { return &a.StackOverflow },
		"CPUOverload":   func(a *telemetry.SystemAlarms) *telemetry.AlarmSeverity { return &a.CPUOverload },
		"EventSystem":   func(a *telemetry.SystemAlarms) *telemetry.AlarmSeverity { return &a.EventSystem },
	}

	for name, field := range fields {
		t.Run(name, func(t *testing.T) {
			s := flyingQuad()
			*field(s.Alarms) = telemetry.AlarmWarning
			if got, _ := MasterCautionWarning(s); !got {
				t.Errorf("MasterCautionWarning() = false with %s warning", name)
			}
		})
	}

	t.Run("All OK", func(t *testing.T) {
		if got, _ := MasterCautionWarning(flyingQuad()); got {
			t.Error("MasterCautionWarning() = true with all alarms OK")
		}
	})

	t.Run("All uninitialised", func(t *testing.T) {
		s := flyingQuad()
		s.Alarms = &telemetry.SystemAlarms{}
		if got, _ := MasterCautionWarning(s); got {
			t.Error("MasterCautionWarning() = true with uninitialised alarms")
		}
	})

	t.Run("Other alarms are ignored", func(t *testing.T) {
		s := flyingQuad()
		s.Alarms.Battery = telemetry.AlarmCritical
		s.Alarms.GPS = telemetry.AlarmError
		s.Alarms.Attitude = telemetry.AlarmError
		s.Alarms.Guidance = telemetry.AlarmError
		if got, _ := MasterCautionWarning(s); got {
			t.Error("MasterCautionWarning() = true for subsystem alarms")
		}
	})
}

func TestModuleStatusColors(t *testing.T) {
	s := flyingQuad()
	s.Alarms.Guidance = telemetry.AlarmUninitialised
	s.Alarms.ManualControl = telemetry.AlarmWarning

	if got, _ := AutopilotStatusColor(s); got != lookup.ColorGray {
		t.Errorf("AutopilotStatusColor() = %q, want gray", got)
	}
	if got, _ := RCInputStatusColor(s); got != lookup.ColorRed {
		t.Errorf("RCInputStatusColor() = %q, want red", got)
	}
}

func TestThrustModeOutOfRange(t *testing.T) {
	tests := []struct {
		name      string
		mode      telemetry.FlightMode
		frame     telemetry.AirframeType
		stab      telemetry.StabilizationMode
		wantTable string
	}{
		{"Requested thrust equal to auto row", telemetry.FlightModeStabilized1, telemetry.AirframeQuadX, ThrustModeAuto, "StabilizationMode"},
		{"Requested thrust negative", telemetry.FlightModeManual, telemetry.AirframeQuadX, -1, "StabilizationMode"},
		{"Flight mode past table", 42, telemetry.AirframeQuadX, telemetry.StabilizationManual, lookup.FlightModes.Name()},
		{"Flight mode negative", -1, telemetry.AirframeQuadX, telemetry.StabilizationManual, lookup.FlightModes.Name()},
		{"Assisted with negative airframe", telemetry.FlightModePositionHold, -1, telemetry.StabilizationManual, lookup.AirframeTypes.Name()},
		{"Assisted with airframe past table", telemetry.FlightModeReturnToBase, telemetry.AirframeTypeCount, telemetry.StabilizationManual, lookup.AirframeTypes.Name()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := flyingQuad()
			s.Status.FlightMode = tt.mode
			s.Settings.AirframeType = tt.frame
			s.Stabilization.StabilizationModeThrust = tt.stab

			if _, err := ThrustMode(s); err == nil {
				t.Fatal("Expected error")
			} else if le, ok := lookup.IsLookupError(err); !ok || le.Table != tt.wantTable {
				t.Errorf("Expected LookupError on %s, got %v", tt.wantTable, err)
			}
			if name, err := ThrustModeName(s); err == nil {
				t.Errorf("Expected ThrustModeName error, got %q", name)
			}
		})
	}

	t.Run("Derive reports the bad thrust mode", func(t *testing.T) {
		s := flyingQuad()
		s.Status.FlightMode = telemetry.FlightModeStabilized1
		s.Stabilization.StabilizationModeThrust = ThrustModeAuto

		if _, err := Derive(s, DefaultContext()); err == nil {
			t.Fatal("Expected Derive to fail")
		} else if _, ok := lookup.IsLookupError(err); !ok {
			t.Errorf("Expected LookupError, got %v", err)
		}
	})
}

func TestIsFlightModeAssistedOutOfRange(t *testing.T) {
	for _, mode := range []telemetry.FlightMode{-1, telemetry.FlightModeCount, 42} {
		s := flyingQuad()
		s.Status.FlightMode = mode
		got, err := IsFlightModeAssisted(s)
		if _, ok := lookup.IsLookupError(err); !ok {
			t.Errorf("mode %d: expected LookupError, got %v, %v", mode, got, err)
		}
	}
}
