// Package telemetrytest provides complete telemetry snapshots for tests.
package telemetrytest

import (
	"time"

	"github.com/unklstewy/gcs-pfd/pkg/telemetry"
)

// FlyingQuad returns a complete snapshot of an armed quad hovering in
// position hold with every record present. Each call returns a fresh copy
// that callers may modify.
func FlyingQuad() *telemetry.Snapshot {
	return &telemetry.Snapshot{
		VehicleID: "quad-1",
		Timestamp: time.Date(2024, 5, 4, 10, 30, 0, 0, time.UTC),
		Attitude:  &telemetry.AttitudeState{Roll: 2.5, Pitch: -1.25, Yaw: 270},
		Velocity:  &telemetry.VelocityState{North: 3, East: 4, Down: -0.5},
		Position:  &telemetry.PositionState{North: 10, East: 20, Down: -35},
		Accel:     &telemetry.NedAccel{Down: -9.81},
		DesiredVelocity: &telemetry.VelocityDesired{
			Down: -1,
		},
		GPS: &telemetry.GPSPositionSensor{
			Status:     telemetry.GPSStatusFix3D,
			Latitude:   485000000,
			Longitude:  -1234500000,
			Altitude:   120.456,
			Satellites: 11,
			HDOP:       0.9,
			VDOP:       1.2,
			PDOP:       1.5,
			SensorType: telemetry.GPSSensorUBX8,
		},
		Satellites: &telemetry.GPSSatellites{SatsInView: 17},
		Home: &telemetry.HomeLocation{
			Set:       telemetry.HomeLocationSetTrue,
			Latitude:  484000000,
			Longitude: -1234000000,
			Altitude:  85,
		},
		TakeOff: &telemetry.TakeOffLocation{Status: telemetry.TakeOffStatusValid, North: 10, East: 0},
		Stats:   &telemetry.SystemStats{HeapRemaining: 12800, CPULoad: 42, CPUTemp: 38.5, FlightTime: 125400},
		Alarms: &telemetry.SystemAlarms{
			Attitude:      telemetry.AlarmOK,
			GPS:           telemetry.AlarmOK,
			Battery:       telemetry.AlarmOK,
			Guidance:      telemetry.AlarmOK,
			ManualControl: telemetry.AlarmOK,
			BootFault:     telemetry.AlarmOK,
			OutOfMemory:   telemetry.AlarmOK,
			StackOverflow: telemetry.AlarmOK,
			CPUOverload:   telemetry.AlarmOK,
			EventSystem:   telemetry.AlarmOK,
			PathPlan:      telemetry.AlarmOK,
		},
		Status:          &telemetry.FlightStatus{FlightMode: telemetry.FlightModePositionHold, Armed: telemetry.ArmStatusArmed},
		Settings:        &telemetry.SystemSettings{AirframeType: telemetry.AirframeQuadX},
		BatterySettings: &telemetry.FlightBatterySettings{NbCells: 4},
		Battery: &telemetry.FlightBatteryState{
			Voltage:             15.234,
			Current:             12.5,
			ConsumedEnergy:      845.6,
			EstimatedFlightTime: 600.4,
		},
		Hardware:      &telemetry.HwSettings{OptionalModulesBattery: telemetry.ModuleEnabled},
		Stabilization: &telemetry.StabilizationDesired{StabilizationModeThrust: telemetry.StabilizationAltitudeHold},
		PathFollower:  &telemetry.VtolPathFollowerSettings{ThrustControl: telemetry.ThrustControlAuto},
		Path: &telemetry.PathDesired{
			Mode:           telemetry.PathModeGotoEndpoint,
			EndNorth:       10,
			EndEast:        50,
			EndDown:        -40,
			EndingVelocity: 0,
		},
		Waypoint: &telemetry.WaypointActive{Index: 2},
		Plan:     &telemetry.PathPlan{WaypointCount: 6},
		Link:     &telemetry.OPLinkStatus{LinkState: telemetry.LinkStateConnected},
		Receiver: &telemetry.ReceiverStatus{Quality: 87},
		Revo:     &telemetry.RevoSettings{FusionAlgorithm: telemetry.FusionGPSNavINS13},
		Mag:      &telemetry.MagState{Source: telemetry.MagSourceOnBoard},
		AuxMag:   &telemetry.AuxMagSettings{Type: telemetry.AuxMagGPSv9},
	}
}
