package telemetry

// Enumerated telemetry fields. Every value is an index into the matching
// table in pkg/lookup, so the constant order below must follow the flight
// controller object definitions exactly.

// GPSStatus is the fix state reported by the GPS receiver.
type GPSStatus int

const (
	GPSStatusNoGPS GPSStatus = iota
	GPSStatusNoFix
	GPSStatusFix2D
	GPSStatusFix3D

	GPSStatusCount = 4
)

// GPSSensorType identifies the GPS receiver protocol.
type GPSSensorType int

const (
	GPSSensorUnknown GPSSensorType = iota
	GPSSensorNMEA
	GPSSensorUBX
	GPSSensorUBX7
	GPSSensorUBX8
	GPSSensorDJI

	GPSSensorTypeCount = 6
)

// HomeLocationSet tells whether the home location has been recorded.
type HomeLocationSet int

const (
	HomeLocationSetFalse HomeLocationSet = iota
	HomeLocationSetTrue
)

// TakeOffStatus tells whether the take-off location is usable.
type TakeOffStatus int

const (
	TakeOffStatusInvalid TakeOffStatus = iota
	TakeOffStatusValid
)

// AlarmSeverity is the severity of one system alarm.
// Severities are ordered: anything above AlarmOK is a fault.
type AlarmSeverity int

const (
	AlarmUninitialised AlarmSeverity = iota
	AlarmOK
	AlarmWarning
	AlarmCritical
	AlarmError

	AlarmSeverityCount = 5
)

// FlightMode is the active flight mode.
type FlightMode int

const (
	FlightModeManual FlightMode = iota
	FlightModeStabilized1
	FlightModeStabilized2
	FlightModeStabilized3
	FlightModeStabilized4
	FlightModeStabilized5
	FlightModeStabilized6
	FlightModePositionHold
	FlightModeCourseLock
	FlightModeVelocityRoam
	FlightModeHomeLeash
	FlightModeAbsolutePosition
	FlightModeReturnToBase
	FlightModeLand
	FlightModePathPlanner
	FlightModePOI
	FlightModeAutoCruise
	FlightModeAutoTakeoff
	FlightModeAutoTune

	FlightModeCount = 19
)

// IsAssisted reports whether the mode is past the last stabilized variant,
// i.e. the autopilot is in charge of navigation.
func (m FlightMode) IsAssisted() bool {
	return m > FlightModeStabilized6
}

// ArmStatus is the arming state of the vehicle.
type ArmStatus int

const (
	ArmStatusDisarmed ArmStatus = iota
	ArmStatusArming
	ArmStatusArmed

	ArmStatusCount = 3
)

// AirframeType is the configured vehicle frame.
type AirframeType int

const (
	AirframeFixedWing AirframeType = iota
	AirframeFixedWingElevon
	AirframeFixedWingVtail
	AirframeVTOL
	AirframeHeliCP
	AirframeQuadX
	AirframeQuadP
	AirframeHexaPlus
	AirframeOctoPlus
	AirframeCustom
	AirframeHexaX
	AirframeHexaH
	AirframeOctoV
	AirframeOctoCoaxP
	AirframeOctoCoaxX
	AirframeOctoX
	AirframeHexaCoax
	AirframeTricopter
	AirframeGroundVehicleCar
	AirframeGroundVehicleDifferential
	AirframeGroundVehicleMotorcycle

	AirframeTypeCount = 21
)

// IsFixedWing reports whether the frame is one of the fixed-wing variants.
func (t AirframeType) IsFixedWing() bool {
	return t <= AirframeFixedWingVtail
}

// IsVtolOrMultirotor reports whether the frame sits between the fixed-wing
// and ground vehicle ranges.
func (t AirframeType) IsVtolOrMultirotor() bool {
	return t > AirframeFixedWingVtail && t < AirframeGroundVehicleCar
}

// IsGroundVehicle reports whether the frame is a ground vehicle.
func (t AirframeType) IsGroundVehicle() bool {
	return t >= AirframeGroundVehicleCar
}

// ModuleState is the enable flag of an optional firmware module.
type ModuleState int

const (
	ModuleDisabled ModuleState = iota
	ModuleEnabled
)

// StabilizationMode is the per-axis stabilization mode. Thrust only ever
// uses a subset of these.
type StabilizationMode int

const (
	StabilizationManual StabilizationMode = iota
	StabilizationRate
	StabilizationRateTrainer
	StabilizationAttitude
	StabilizationAxisLock
	StabilizationWeakLeveling
	StabilizationVirtualBar
	StabilizationAcro
	StabilizationRattitude
	StabilizationAltitudeHold
	StabilizationAltitudeVario
	StabilizationCruiseControl
	StabilizationSystemIdent

	StabilizationModeCount = 13
)

// ThrustControl selects who commands thrust in assisted modes.
type ThrustControl int

const (
	ThrustControlManual ThrustControl = iota
	ThrustControlAuto
)

// PathMode is the segment type of the desired path.
type PathMode int

const (
	PathModeGotoEndpoint PathMode = iota
	PathModeFollowVector
	PathModeCircleRight
	PathModeCircleLeft
	PathModeFixedAttitude
	PathModeSetAccessory
	PathModeDisarmAlarm
	PathModeLand
	PathModeBrake
	PathModeVelocity
	PathModeAutoTakeoff

	PathModeCount = 11
)

// LinkState is the state of the OPLink radio modem.
type LinkState int

const (
	LinkStateDisabled LinkState = iota
	LinkStateEnabled
	LinkStateBinding
	LinkStateBound
	LinkStateDisconnected
	LinkStateConnecting
	LinkStateConnected

	LinkStateCount = 7
)

// FusionAlgorithm is the state estimation algorithm in use.
type FusionAlgorithm int

const (
	FusionNone FusionAlgorithm = iota
	FusionBasic
	FusionCompMag
	FusionCompMagGPS
	FusionEKFIndoor
	FusionGPSNavINS13

	FusionAlgorithmCount = 6
)

// MagSource is the magnetometer feeding the estimator.
type MagSource int

const (
	MagSourceInvalid MagSource = iota
	MagSourceOnBoard
	MagSourceExtMag
	MagSourceAux

	MagSourceCount = 4
)

// AuxMagType is the kind of auxiliary magnetometer.
type AuxMagType int

const (
	AuxMagGPSv9 AuxMagType = iota
	AuxMagFlexi
	AuxMagI2C
	AuxMagDJI

	AuxMagTypeCount = 4
)
