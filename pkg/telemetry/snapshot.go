// Package telemetry defines the per-tick vehicle telemetry snapshot consumed by
// the flight display derivations, and the sources that supply it.
//
// A Snapshot is a read-only aggregate of named records. Each record is a
// pointer; a nil pointer means the record was not received. Derivations ask
// for a record through the accessor methods (AttitudeState, FlightStatus, ...)
// which turn an absent record into a *MissingTelemetryError rather than a zero
// value, so the display never silently shows defaults.
package telemetry

import "time"

// Record names used in MissingTelemetryError. They match the flight
// controller object names so operators can correlate them with the firmware.
const (
	RecordAttitudeState            = "AttitudeState"
	RecordVelocityState            = "VelocityState"
	RecordPositionState            = "PositionState"
	RecordNedAccel                 = "NedAccel"
	RecordVelocityDesired          = "VelocityDesired"
	RecordGPSPositionSensor        = "GPSPositionSensor"
	RecordGPSSatellites            = "GPSSatellites"
	RecordHomeLocation             = "HomeLocation"
	RecordTakeOffLocation          = "TakeOffLocation"
	RecordSystemStats              = "SystemStats"
	RecordSystemAlarms             = "SystemAlarms"
	RecordFlightStatus             = "FlightStatus"
	RecordSystemSettings           = "SystemSettings"
	RecordFlightBatterySettings    = "FlightBatterySettings"
	RecordFlightBatteryState       = "FlightBatteryState"
	RecordHwSettings               = "HwSettings"
	RecordStabilizationDesired     = "StabilizationDesired"
	RecordVtolPathFollowerSettings = "VtolPathFollowerSettings"
	RecordPathDesired              = "PathDesired"
	RecordWaypointActive           = "WaypointActive"
	RecordPathPlan                 = "PathPlan"
	RecordOPLinkStatus             = "OPLinkStatus"
	RecordReceiverStatus           = "ReceiverStatus"
	RecordRevoSettings             = "RevoSettings"
	RecordMagState                 = "MagState"
	RecordAuxMagSettings           = "AuxMagSettings"
)

// Snapshot is the telemetry state of one vehicle for one display refresh.
// It is replaced as a whole between ticks and never mutated by consumers.
type Snapshot struct {
	// VehicleID identifies the vehicle for storage; derivations ignore it.
	VehicleID string `json:"vehicleId,omitempty" yaml:"vehicleId,omitempty"`

	// Timestamp is when the snapshot was assembled (UTC).
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`

	Attitude        *AttitudeState            `json:"attitudeState,omitempty" yaml:"attitudeState,omitempty"`
	Velocity        *VelocityState            `json:"velocityState,omitempty" yaml:"velocityState,omitempty"`
	Position        *PositionState            `json:"positionState,omitempty" yaml:"positionState,omitempty"`
	Accel           *NedAccel                 `json:"nedAccel,omitempty" yaml:"nedAccel,omitempty"`
	DesiredVelocity *VelocityDesired          `json:"velocityDesired,omitempty" yaml:"velocityDesired,omitempty"`
	GPS             *GPSPositionSensor        `json:"gpsPositionSensor,omitempty" yaml:"gpsPositionSensor,omitempty"`
	Satellites      *GPSSatellites            `json:"gpsSatellites,omitempty" yaml:"gpsSatellites,omitempty"`
	Home            *HomeLocation             `json:"homeLocation,omitempty" yaml:"homeLocation,omitempty"`
	TakeOff         *TakeOffLocation          `json:"takeOffLocation,omitempty" yaml:"takeOffLocation,omitempty"`
	Stats           *SystemStats              `json:"systemStats,omitempty" yaml:"systemStats,omitempty"`
	Alarms          *SystemAlarms             `json:"systemAlarms,omitempty" yaml:"systemAlarms,omitempty"`
	Status          *FlightStatus             `json:"flightStatus,omitempty" yaml:"flightStatus,omitempty"`
	Settings        *SystemSettings           `json:"systemSettings,omitempty" yaml:"systemSettings,omitempty"`
	BatterySettings *FlightBatterySettings    `json:"flightBatterySettings,omitempty" yaml:"flightBatterySettings,omitempty"`
	Battery         *FlightBatteryState       `json:"flightBatteryState,omitempty" yaml:"flightBatteryState,omitempty"`
	Hardware        *HwSettings               `json:"hwSettings,omitempty" yaml:"hwSettings,omitempty"`
	Stabilization   *StabilizationDesired     `json:"stabilizationDesired,omitempty" yaml:"stabilizationDesired,omitempty"`
	PathFollower    *VtolPathFollowerSettings `json:"vtolPathFollowerSettings,omitempty" yaml:"vtolPathFollowerSettings,omitempty"`
	Path            *PathDesired              `json:"pathDesired,omitempty" yaml:"pathDesired,omitempty"`
	Waypoint        *WaypointActive           `json:"waypointActive,omitempty" yaml:"waypointActive,omitempty"`
	Plan            *PathPlan                 `json:"pathPlan,omitempty" yaml:"pathPlan,omitempty"`
	Link            *OPLinkStatus             `json:"opLinkStatus,omitempty" yaml:"opLinkStatus,omitempty"`
	Receiver        *ReceiverStatus           `json:"receiverStatus,omitempty" yaml:"receiverStatus,omitempty"`
	Revo            *RevoSettings             `json:"revoSettings,omitempty" yaml:"revoSettings,omitempty"`
	Mag             *MagState                 `json:"magState,omitempty" yaml:"magState,omitempty"`
	AuxMag          *AuxMagSettings           `json:"auxMagSettings,omitempty" yaml:"auxMagSettings,omitempty"`
}

// require returns the record selected by pick, or a MissingTelemetryError
// naming it. A nil snapshot has no records at all.
func require[T any](s *Snapshot, name string, pick func(*Snapshot) *T) (*T, error) {
	if s == nil {
		return nil, &MissingTelemetryError{Record: name}
	}
	if rec := pick(s); rec != nil {
		return rec, nil
	}
	return nil, &MissingTelemetryError{Record: name}
}

func (s *Snapshot) AttitudeState() (*AttitudeState, error) {
	return require(s, RecordAttitudeState, func(s *Snapshot) *AttitudeState { return s.Attitude })
}

func (s *Snapshot) VelocityState() (*VelocityState, error) {
	return require(s, RecordVelocityState, func(s *Snapshot) *VelocityState { return s.Velocity })
}

func (s *Snapshot) PositionState() (*PositionState, error) {
	return require(s, RecordPositionState, func(s *Snapshot) *PositionState { return s.Position })
}

func (s *Snapshot) NedAccel() (*NedAccel, error) {
	return require(s, RecordNedAccel, func(s *Snapshot) *NedAccel { return s.Accel })
}

func (s *Snapshot) VelocityDesired() (*VelocityDesired, error) {
	return require(s, RecordVelocityDesired, func(s *Snapshot) *VelocityDesired { return s.DesiredVelocity })
}

func (s *Snapshot) GPSPositionSensor() (*GPSPositionSensor, error) {
	return require(s, RecordGPSPositionSensor, func(s *Snapshot) *GPSPositionSensor { return s.GPS })
}

func (s *Snapshot) GPSSatellites() (*GPSSatellites, error) {
	return require(s, RecordGPSSatellites, func(s *Snapshot) *GPSSatellites { return s.Satellites })
}

func (s *Snapshot) HomeLocation() (*HomeLocation, error) {
	return require(s, RecordHomeLocation, func(s *Snapshot) *HomeLocation { return s.Home })
}

func (s *Snapshot) TakeOffLocation() (*TakeOffLocation, error) {
	return require(s, RecordTakeOffLocation, func(s *Snapshot) *TakeOffLocation { return s.TakeOff })
}

func (s *Snapshot) SystemStats() (*SystemStats, error) {
	return require(s, RecordSystemStats, func(s *Snapshot) *SystemStats { return s.Stats })
}

func (s *Snapshot) SystemAlarms() (*SystemAlarms, error) {
	return require(s, RecordSystemAlarms, func(s *Snapshot) *SystemAlarms { return s.Alarms })
}

func (s *Snapshot) FlightStatus() (*FlightStatus, error) {
	return require(s, RecordFlightStatus, func(s *Snapshot) *FlightStatus { return s.Status })
}

func (s *Snapshot) SystemSettings() (*SystemSettings, error) {
	return require(s, RecordSystemSettings, func(s *Snapshot) *SystemSettings { return s.Settings })
}

func (s *Snapshot) FlightBatterySettings() (*FlightBatterySettings, error) {
	return require(s, RecordFlightBatterySettings, func(s *Snapshot) *FlightBatterySettings { return s.BatterySettings })
}

func (s *Snapshot) FlightBatteryState() (*FlightBatteryState, error) {
	return require(s, RecordFlightBatteryState, func(s *Snapshot) *FlightBatteryState { return s.Battery })
}

func (s *Snapshot) HwSettings() (*HwSettings, error) {
	return require(s, RecordHwSettings, func(s *Snapshot) *HwSettings { return s.Hardware })
}

func (s *Snapshot) StabilizationDesired() (*StabilizationDesired, error) {
	return require(s, RecordStabilizationDesired, func(s *Snapshot) *StabilizationDesired { return s.Stabilization })
}

func (s *Snapshot) VtolPathFollowerSettings() (*VtolPathFollowerSettings, error) {
	return require(s, RecordVtolPathFollowerSettings, func(s *Snapshot) *VtolPathFollowerSettings { return s.PathFollower })
}

func (s *Snapshot) PathDesired() (*PathDesired, error) {
	return require(s, RecordPathDesired, func(s *Snapshot) *PathDesired { return s.Path })
}

func (s *Snapshot) WaypointActive() (*WaypointActive, error) {
	return require(s, RecordWaypointActive, func(s *Snapshot) *WaypointActive { return s.Waypoint })
}

func (s *Snapshot) PathPlan() (*PathPlan, error) {
	return require(s, RecordPathPlan, func(s *Snapshot) *PathPlan { return s.Plan })
}

func (s *Snapshot) OPLinkStatus() (*OPLinkStatus, error) {
	return require(s, RecordOPLinkStatus, func(s *Snapshot) *OPLinkStatus { return s.Link })
}

func (s *Snapshot) ReceiverStatus() (*ReceiverStatus, error) {
	return require(s, RecordReceiverStatus, func(s *Snapshot) *ReceiverStatus { return s.Receiver })
}

func (s *Snapshot) RevoSettings() (*RevoSettings, error) {
	return require(s, RecordRevoSettings, func(s *Snapshot) *RevoSettings { return s.Revo })
}

func (s *Snapshot) MagState() (*MagState, error) {
	return require(s, RecordMagState, func(s *Snapshot) *MagState { return s.Mag })
}

func (s *Snapshot) AuxMagSettings() (*AuxMagSettings, error) {
	return require(s, RecordAuxMagSettings, func(s *Snapshot) *AuxMagSettings { return s.AuxMag })
}
