package telemetry

// AttitudeState is the estimated vehicle attitude in degrees.
type AttitudeState struct {
	Roll  float64 `json:"roll" yaml:"roll"`
	Pitch float64 `json:"pitch" yaml:"pitch"`
	Yaw   float64 `json:"yaw" yaml:"yaw"`
}

// VelocityState is the estimated velocity in the local NED frame (m/s).
type VelocityState struct {
	North float64 `json:"north" yaml:"north"`
	East  float64 `json:"east" yaml:"east"`
	Down  float64 `json:"down" yaml:"down"`
}

// PositionState is the estimated position in the local NED frame (m),
// relative to the home location.
type PositionState struct {
	North float64 `json:"north" yaml:"north"`
	East  float64 `json:"east" yaml:"east"`
	Down  float64 `json:"down" yaml:"down"`
}

// NedAccel is the acceleration in the NED frame (m/s²).
type NedAccel struct {
	Down float64 `json:"down" yaml:"down"`
}

// VelocityDesired is the velocity commanded by the path follower (m/s).
type VelocityDesired struct {
	Down float64 `json:"down" yaml:"down"`
}

// GPSPositionSensor is the raw GPS solution.
// Latitude and Longitude are integer degrees scaled by 1e7, as sent by the
// flight controller; Altitude is in meters MSL.
type GPSPositionSensor struct {
	Status     GPSStatus     `json:"status" yaml:"status"`
	Latitude   float64       `json:"latitude" yaml:"latitude"`
	Longitude  float64       `json:"longitude" yaml:"longitude"`
	Altitude   float64       `json:"altitude" yaml:"altitude"`
	Satellites int           `json:"satellites" yaml:"satellites"`
	HDOP       float64       `json:"hdop" yaml:"hdop"`
	VDOP       float64       `json:"vdop" yaml:"vdop"`
	PDOP       float64       `json:"pdop" yaml:"pdop"`
	SensorType GPSSensorType `json:"sensorType" yaml:"sensorType"`
}

// GPSSatellites carries the satellite constellation summary.
type GPSSatellites struct {
	SatsInView int `json:"satsInView" yaml:"satsInView"`
}

// HomeLocation is the recorded home position (degrees scaled by 1e7).
type HomeLocation struct {
	Set       HomeLocationSet `json:"set" yaml:"set"`
	Latitude  float64         `json:"latitude" yaml:"latitude"`
	Longitude float64         `json:"longitude" yaml:"longitude"`
	Altitude  float64         `json:"altitude" yaml:"altitude"`
}

// TakeOffLocation is where the vehicle took off, in the local NED frame.
type TakeOffLocation struct {
	Status TakeOffStatus `json:"status" yaml:"status"`
	North  float64       `json:"north" yaml:"north"`
	East   float64       `json:"east" yaml:"east"`
}

// SystemStats holds flight controller health counters.
type SystemStats struct {
	HeapRemaining int     `json:"heapRemaining" yaml:"heapRemaining"` // bytes
	CPULoad       float64 `json:"cpuLoad" yaml:"cpuLoad"`             // percent
	CPUTemp       float64 `json:"cpuTemp" yaml:"cpuTemp"`             // °C
	FlightTime    int     `json:"flightTime" yaml:"flightTime"`       // milliseconds
}

// SystemAlarms holds one severity per monitored subsystem.
type SystemAlarms struct {
	Attitude      AlarmSeverity `json:"alarmAttitude" yaml:"alarmAttitude"`
	GPS           AlarmSeverity `json:"alarmGPS" yaml:"alarmGPS"`
	Battery       AlarmSeverity `json:"alarmBattery" yaml:"alarmBattery"`
	Guidance      AlarmSeverity `json:"alarmGuidance" yaml:"alarmGuidance"`
	ManualControl AlarmSeverity `json:"alarmManualControl" yaml:"alarmManualControl"`
	BootFault     AlarmSeverity `json:"alarmBootFault" yaml:"alarmBootFault"`
	OutOfMemory   AlarmSeverity `json:"alarmOutOfMemory" yaml:"alarmOutOfMemory"`
	StackOverflow AlarmSeverity `json:"alarmStackOverflow" yaml:"alarmStackOverflow"`
	CPUOverload   AlarmSeverity `json:"alarmCPUOverload" yaml:"alarmCPUOverload"`
	EventSystem   AlarmSeverity `json:"alarmEventSystem" yaml:"alarmEventSystem"`
	PathPlan      AlarmSeverity `json:"alarmPathPlan" yaml:"alarmPathPlan"`
}

// FlightStatus is the flight mode and arming state.
type FlightStatus struct {
	FlightMode FlightMode `json:"flightMode" yaml:"flightMode"`
	Armed      ArmStatus  `json:"armed" yaml:"armed"`
}

// SystemSettings holds the static vehicle configuration.
type SystemSettings struct {
	AirframeType AirframeType `json:"airframeType" yaml:"airframeType"`
}

// FlightBatterySettings is the battery pack configuration.
type FlightBatterySettings struct {
	NbCells int `json:"nbCells" yaml:"nbCells"`
}

// FlightBatteryState is the measured battery state.
type FlightBatteryState struct {
	Voltage             float64 `json:"voltage" yaml:"voltage"`                         // V
	Current             float64 `json:"current" yaml:"current"`                         // A
	ConsumedEnergy      float64 `json:"consumedEnergy" yaml:"consumedEnergy"`           // mAh
	EstimatedFlightTime float64 `json:"estimatedFlightTime" yaml:"estimatedFlightTime"` // seconds
}

// HwSettings holds hardware module switches.
type HwSettings struct {
	OptionalModulesBattery ModuleState `json:"optionalModulesBattery" yaml:"optionalModulesBattery"`
}

// StabilizationDesired is the stabilization mode requested per axis.
type StabilizationDesired struct {
	StabilizationModeThrust StabilizationMode `json:"stabilizationModeThrust" yaml:"stabilizationModeThrust"`
}

// VtolPathFollowerSettings configures the multirotor path follower.
type VtolPathFollowerSettings struct {
	ThrustControl ThrustControl `json:"thrustControl" yaml:"thrustControl"`
}

// PathDesired is the path segment currently being flown (NED, meters).
type PathDesired struct {
	Mode           PathMode `json:"mode" yaml:"mode"`
	EndNorth       float64  `json:"endNorth" yaml:"endNorth"`
	EndEast        float64  `json:"endEast" yaml:"endEast"`
	EndDown        float64  `json:"endDown" yaml:"endDown"`
	EndingVelocity float64  `json:"endingVelocity" yaml:"endingVelocity"`
}

// WaypointActive is the zero-based index of the active waypoint.
type WaypointActive struct {
	Index int `json:"index" yaml:"index"`
}

// PathPlan summarises the uploaded flight plan.
type PathPlan struct {
	WaypointCount int `json:"waypointCount" yaml:"waypointCount"`
}

// OPLinkStatus is the radio modem status.
type OPLinkStatus struct {
	LinkState LinkState `json:"linkState" yaml:"linkState"`
}

// ReceiverStatus carries the RC link quality in percent.
type ReceiverStatus struct {
	Quality int `json:"quality" yaml:"quality"`
}

// RevoSettings configures the state estimator.
type RevoSettings struct {
	FusionAlgorithm FusionAlgorithm `json:"fusionAlgorithm" yaml:"fusionAlgorithm"`
}

// MagState tells which magnetometer is in use.
type MagState struct {
	Source MagSource `json:"source" yaml:"source"`
}

// AuxMagSettings configures the auxiliary magnetometer.
type AuxMagSettings struct {
	Type AuxMagType `json:"type" yaml:"type"`
}
