package lookup

// AirframeTypes names every SystemSettings airframe type.
var AirframeTypes = labels("AirframeType",
	"FixedWing", "FixedWingElevon", "FixedWingVtail", "VTOL", "HeliCP",
	"QuadX", "QuadP", "Hexa+", "Octo+", "Custom",
	"HexaX", "HexaH", "OctoV", "OctoCoaxP", "OctoCoaxX",
	"OctoX", "HexaCoax", "Tricopter",
	"GroundVehicleCar", "GroundVehicleDiff", "GroundVehicleMoto",
)

// FlightModes gives the label and color of each flight mode.
var FlightModes = newTable("FlightMode",
	Entry{"MANUAL", ColorGray},
	Entry{"STAB 1", ColorGreen},
	Entry{"STAB 2", ColorGreen},
	Entry{"STAB 3", ColorGreen},
	Entry{"STAB 4", ColorGreen},
	Entry{"STAB 5", ColorGreen},
	Entry{"STAB 6", ColorGreen},
	Entry{"POS HOLD", ColorCyan},
	Entry{"COURSELOCK", ColorCyan},
	Entry{"VEL ROAM", ColorCyan},
	Entry{"HOME LEASH", ColorCyan},
	Entry{"ABS POS", ColorCyan},
	Entry{"RTB", ColorCyan},
	Entry{"LAND", ColorCyan},
	Entry{"PATHPLAN", ColorCyan},
	Entry{"POI", ColorCyan},
	Entry{"AUTOCRUISE", ColorCyan},
	Entry{"AUTOTAKEOFF", ColorCyan},
	Entry{"AUTOTUNE", ColorCyan},
)

// ThrustModes is indexed by the thrust stabilization mode, with one extra
// trailing row for the autopilot-controlled thrust sentinel. Lower-case
// labels belong to modes that never drive thrust; they keep their slot so
// the indices line up.
var ThrustModes = newTable("ThrustMode",
	Entry{"MANUAL", ColorGreen},
	Entry{"rate", ColorGrey},
	Entry{"ratetrainer", ColorGrey},
	Entry{"attitude", ColorGrey},
	Entry{"axislock", ColorGrey},
	Entry{"weakleveling", ColorGrey},
	Entry{"virtualbar", ColorGrey},
	Entry{"acro+ ", ColorGrey},
	Entry{"rattitude", ColorGrey},
	Entry{"ALT HOLD", ColorGreen},
	Entry{"ALT VARIO", ColorGreen},
	Entry{"CRUISECTRL", ColorGreen},
	Entry{"systemident", ColorGrey},
	Entry{"AUTO", ColorCyan},
)

// ArmStatuses gives the label and color of each arming state.
var ArmStatuses = newTable("ArmStatus",
	Entry{"DISARMED", ColorGray},
	Entry{"ARMING", ColorOrange},
	Entry{"ARMED", ColorGreen},
)

// AlarmSeverities colors an alarm by severity.
var AlarmSeverities = colors("AlarmSeverity",
	ColorNeutral, ColorGreen, ColorOrange, ColorRed, ColorRed,
)

// ModuleStatuses colors a module status light (autopilot, RC input) by
// alarm severity. Unlike AlarmSeverities an uninitialised module is gray.
var ModuleStatuses = colors("ModuleStatus",
	ColorGray, ColorGreen, ColorRed, ColorRed, ColorRed,
)

// GPSStatuses names the GPS fix state.
var GPSStatuses = labels("GPSStatus", "NO GPS", "NO FIX", "2D", "3D")

// GPSSensorTypes names the detected GPS receiver protocol.
var GPSSensorTypes = labels("GPSSensorType", "Unknown", "NMEA", "UBX", "UBX7", "UBX8", "DJI")

// LinkStates names the OPLink radio connection state.
var LinkStates = labels("LinkState",
	"Disabled", "Enabled", "Binding", "Bound", "Disconnected", "Connecting", "Connected",
)

// FusionAlgorithms names the attitude and navigation filter in use.
var FusionAlgorithms = labels("FusionAlgorithm",
	"None", "Basic (No Nav)", "CompMag", "Comp+Mag+GPS", "EKFIndoor", "GPSNav (INS13)",
)

// PathModes names the mode of the active path segment.
var PathModes = labels("PathMode",
	"GOTO ENDPOINT", "FOLLOW VECTOR", "CIRCLE RIGHT", "CIRCLE LEFT", "FIXED ATTITUDE",
	"SET ACCESSORY", "DISARM ALARM", "LAND", "BRAKE", "VELOCITY", "AUTO TAKEOFF",
)

// AuxMagTypes names the kind of auxiliary magnetometer.
var AuxMagTypes = labels("AuxMagType", "GPSv9", "Flexi", "I2C", "DJI")

// MagSources names where the magnetometer reading comes from.
var MagSources = labels("MagSource", "Invalid", "OnBoard", "ExtMag", "Aux")
