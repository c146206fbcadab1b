package pfd

import (
	"fmt"
	"time"

	"github.com/unklstewy/gcs-pfd/pkg/coordinates"
	"github.com/unklstewy/gcs-pfd/pkg/lookup"
	"github.com/unklstewy/gcs-pfd/pkg/telemetry"
)

// Display is every value the flight display shows for one tick.
// Optional groups are nil when the display hides them.
type Display struct {
	VehicleID string    `json:"vehicleId,omitempty"`
	Timestamp time.Time `json:"timestamp"`

	// Clock is the time shown on the display (see Context.TimeMode).
	Clock time.Time `json:"clock"`

	Attitude   AttitudeDisplay   `json:"attitude"`
	Navigation NavigationDisplay `json:"navigation"`
	System     SystemDisplay     `json:"system"`
	GPS        GPSDisplay        `json:"gps"`
	Link       LinkDisplay       `json:"link"`
	Mode       ModeDisplay       `json:"mode"`
	Alarms     AlarmsDisplay     `json:"alarms"`

	// Battery is nil when the battery module is disabled.
	Battery *BatteryDisplay `json:"battery,omitempty"`

	// Home is nil when the take-off location is not valid.
	Home *HomeDisplay `json:"home,omitempty"`

	// PathPlan is nil unless the vehicle is in PathPlanner mode.
	PathPlan *PathPlanDisplay `json:"pathPlan,omitempty"`
}

type AttitudeDisplay struct {
	Roll           float64 `json:"roll"`
	Pitch          float64 `json:"pitch"`
	Yaw            float64 `json:"yaw"`
	Valid          bool    `json:"valid"`
	NotInitialised bool    `json:"notInitialised"`
}

// NavigationDisplay carries speeds and heights already converted to the
// context's display units.
type NavigationDisplay struct {
	Position      coordinates.Geographic `json:"position"`
	Speed         float64                `json:"speed"`
	SpeedUnit     string                 `json:"speedUnit"`
	Altitude      float64                `json:"altitude"`
	VerticalSpeed float64                `json:"verticalSpeed"`
	AltitudeUnit  string                 `json:"altitudeUnit"`
	AccelDown     float64                `json:"accelDown"`
}

type SystemDisplay struct {
	FrameType         string  `json:"frameType"`
	FixedWing         bool    `json:"fixedWing"`
	VtolOrMultirotor  bool    `json:"vtolOrMultirotor"`
	GroundVehicle     bool    `json:"groundVehicle"`
	FreeMemory        string  `json:"freeMemory"`
	CC3D              bool    `json:"cc3d"`
	CPULoad           float64 `json:"cpuLoad"`
	CPUTemp           float64 `json:"cpuTemp"`
	FlightTime        int     `json:"flightTime"`
	FlightTimeDisplay string  `json:"flightTimeDisplay"`
}

type GPSDisplay struct {
	Status          string `json:"status"`
	SensorType      string `json:"sensorType"`
	NumSat          int    `json:"numSat"`
	SatsInView      int    `json:"satsInView"`
	HdopInfo        string `json:"hdopInfo"`
	Altitude        string `json:"altitude"`
	Valid           bool   `json:"valid"`
	NotInitialised  bool   `json:"notInitialised"`
	Fix3D           bool   `json:"fix3d"`
	MagSource       string `json:"magSource"`
	FusionAlgorithm string `json:"fusionAlgorithm"`
}

type LinkDisplay struct {
	OPLinkConnected bool   `json:"opLinkConnected"`
	OPLinkState     string `json:"opLinkState"`
	ReceiverQuality string `json:"receiverQuality"`
}

type ModeDisplay struct {
	FlightMode      string       `json:"flightMode"`
	FlightModeColor lookup.Color `json:"flightModeColor"`
	Manual          bool         `json:"manual"`
	Assisted        bool         `json:"assisted"`
	ThrustMode      string       `json:"thrustMode"`
	ThrustModeColor lookup.Color `json:"thrustModeColor"`
	ArmStatus       string       `json:"armStatus"`
	ArmStatusColor  lookup.Color `json:"armStatusColor"`
}

type AlarmsDisplay struct {
	Autopilot     lookup.Color `json:"autopilot"`
	RCInput       lookup.Color `json:"rcInput"`
	MasterCaution bool         `json:"masterCaution"`
}

type BatteryDisplay struct {
	Cells                    int          `json:"cells"`
	Voltage                  string       `json:"voltage"`
	Current                  string       `json:"current"`
	ConsumedEnergy           string       `json:"consumedEnergy"`
	EstimatedFlightTime      int          `json:"estimatedFlightTime"`
	EstimatedFlightTimeLabel string       `json:"estimatedFlightTimeLabel"`
	AlarmColor               lookup.Color `json:"alarmColor"`
	TimeColor                lookup.Color `json:"timeColor"`
}

type HomeDisplay struct {
	Heading  float64 `json:"heading"`
	Distance float64 `json:"distance"`
	ETA      string  `json:"eta"`
}

type PathPlanDisplay struct {
	Valid               bool    `json:"valid"`
	Active              bool    `json:"active"`
	Mode                string  `json:"mode"`
	EndDown             float64 `json:"endDown"`
	EndingVelocity      float64 `json:"endingVelocity"`
	VelocityDesiredDown float64 `json:"velocityDesiredDown"`
	Waypoint            int     `json:"waypoint"`
	WaypointCount       int     `json:"waypointCount"`
	Heading             float64 `json:"heading"`
	Distance            float64 `json:"distance"`
	ETA                 string  `json:"eta"`
}

// deriver runs derivations until the first failure, then turns every
// further call into a no-op.
type deriver struct {
	s   *telemetry.Snapshot
	err error
}

func take[T any](d *deriver, name string, fn func(*telemetry.Snapshot) (T, error)) T {
	var zero T
	if d.err != nil {
		return zero
	}
	v, err := fn(d.s)
	if err != nil {
		d.err = fmt.Errorf("%s: %w", name, err)
		return zero
	}
	return v
}

// Derive evaluates every display value for one snapshot. It fails on the
// first missing record or out-of-range enum; the returned error wraps a
// *telemetry.MissingTelemetryError or a *lookup.LookupError.
//
// The snapshot timestamp is used as "now" for the display clock so that a
// snapshot always derives to the same Display.
func Derive(s *telemetry.Snapshot, ctx Context) (*Display, error) {
	if s == nil {
		return nil, fmt.Errorf("derive display: %w", telemetry.ErrNoSnapshot)
	}
	d := &deriver{s: s}

	out := &Display{
		VehicleID: s.VehicleID,
		Timestamp: s.Timestamp,
		Clock:     ctx.Now(s.Timestamp),
	}

	out.Attitude = AttitudeDisplay{
		Roll:           take(d, "attitudeRoll", AttitudeRoll),
		Pitch:          take(d, "attitudePitch", AttitudePitch),
		Yaw:            take(d, "attitudeYaw", AttitudeYaw),
		Valid:          take(d, "isAttitudeValid", IsAttitudeValid),
		NotInitialised: take(d, "isAttitudeNotInitialised", IsAttitudeNotInitialised),
	}

	out.Navigation = NavigationDisplay{
		Position: take(d, "position", func(s *telemetry.Snapshot) (coordinates.Geographic, error) {
			return Position(s, ctx)
		}),
		Speed:         ctx.Speed(take(d, "currentVelocity", CurrentVelocity)),
		SpeedUnit:     ctx.SpeedUnit,
		Altitude:      ctx.Altitude(-take(d, "positionStateDown", PositionStateDown)),
		VerticalSpeed: ctx.Altitude(-take(d, "velocityStateDown", VelocityStateDown)),
		AltitudeUnit:  ctx.AltitudeUnit,
		AccelDown:     take(d, "nedAccelDown", NedAccelDown),
	}

	out.System = SystemDisplay{
		FrameType:         take(d, "frameType", FrameType),
		FixedWing:         take(d, "isFixedWing", IsFixedWing),
		VtolOrMultirotor:  take(d, "isVtolOrMultirotor", IsVtolOrMultirotor),
		GroundVehicle:     take(d, "isGroundVehicle", IsGroundVehicle),
		FreeMemory:        take(d, "freeMemory", FreeMemoryDisplay),
		CC3D:              take(d, "isCC3D", IsCC3D),
		CPULoad:           take(d, "cpuLoad", CPULoad),
		CPUTemp:           take(d, "cpuTemp", CPUTemp),
		FlightTime:        take(d, "flightTime", FlightTime),
		FlightTimeDisplay: take(d, "flightTimeDisplay", FlightTimeDisplay),
	}

	out.GPS = GPSDisplay{
		Status:          take(d, "gpsStatus", GPSStatus),
		SensorType:      take(d, "gpsSensorType", GPSSensorType),
		NumSat:          take(d, "gpsNumSat", GPSNumSat),
		SatsInView:      take(d, "gpsSatsInView", GPSSatsInView),
		HdopInfo:        take(d, "gpsHdopInfo", GPSHdopInfo),
		Altitude:        take(d, "gpsAltitude", GPSAltitude),
		Valid:           take(d, "isGpsValid", IsGPSValid),
		NotInitialised:  take(d, "isGpsNotInitialised", IsGPSNotInitialised),
		Fix3D:           take(d, "isGpsStatusFix3D", IsGPSStatusFix3D),
		MagSource:       take(d, "magSourceName", MagSourceName),
		FusionAlgorithm: take(d, "fusionAlgorithm", FusionAlgorithm),
	}

	out.Link = LinkDisplay{
		OPLinkConnected: take(d, "isOplmConnected", IsOPLinkConnected),
		OPLinkState:     take(d, "oplmLinkState", OPLinkState),
		ReceiverQuality: take(d, "receiverQuality", ReceiverQuality),
	}

	out.Mode = ModeDisplay{
		FlightMode:      take(d, "flightModeName", FlightModeName),
		FlightModeColor: take(d, "flightModeColor", FlightModeColor),
		Manual:          take(d, "isFlightModeManual", IsFlightModeManual),
		Assisted:        take(d, "isFlightModeAssisted", IsFlightModeAssisted),
		ThrustMode:      take(d, "thrustModeName", ThrustModeName),
		ThrustModeColor: take(d, "thrustModeColor", ThrustModeColor),
		ArmStatus:       take(d, "armStatusName", ArmStatusName),
		ArmStatusColor:  take(d, "armStatusColor", ArmStatusColor),
	}

	out.Alarms = AlarmsDisplay{
		Autopilot:     take(d, "autopilotStatusColor", AutopilotStatusColor),
		RCInput:       take(d, "rcInputStatusColor", RCInputStatusColor),
		MasterCaution: take(d, "masterCautionWarning", MasterCautionWarning),
	}

	if take(d, "batteryModuleEnabled", BatteryModuleEnabled) {
		out.Battery = &BatteryDisplay{
			Cells:                    take(d, "batteryNbCells", BatteryNbCells),
			Voltage:                  take(d, "batteryVoltage", BatteryVoltage),
			Current:                  take(d, "batteryCurrent", BatteryCurrent),
			ConsumedEnergy:           take(d, "batteryConsumedEnergy", BatteryConsumedEnergy),
			EstimatedFlightTime:      take(d, "estimatedFlightTime", EstimatedFlightTime),
			EstimatedFlightTimeLabel: take(d, "estimatedFlightTimeDisplay", EstimatedFlightTimeDisplay),
			AlarmColor:               take(d, "batteryAlarmColor", BatteryAlarmColor),
			TimeColor:                take(d, "estimatedTimeAlarmColor", EstimatedTimeAlarmColor),
		}
	}

	if take(d, "isTakeOffLocationValid", IsTakeOffLocationValid) {
		out.Home = &HomeDisplay{
			Heading:  take(d, "homeHeading", HomeHeading),
			Distance: take(d, "homeDistance", HomeDistance),
			ETA:      take(d, "homeETA", HomeETA),
		}
	}

	if take(d, "isPathPlanEnabled", IsPathPlanEnabled) {
		out.PathPlan = &PathPlanDisplay{
			Valid:               take(d, "isPathPlanValid", IsPathPlanValid),
			Active:              take(d, "isPathDesiredActive", IsPathDesiredActive),
			Mode:                take(d, "pathModeDesired", PathModeDesired),
			EndDown:             take(d, "pathDesiredEndDown", PathDesiredEndDown),
			EndingVelocity:      take(d, "pathDesiredEndingVelocity", PathDesiredEndingVelocity),
			VelocityDesiredDown: take(d, "velocityDesiredDown", VelocityDesiredDown),
			Waypoint:            take(d, "currentWaypointActive", CurrentWaypointActive),
			WaypointCount:       take(d, "waypointCount", WaypointCount),
			Heading:             take(d, "waypointHeading", WaypointHeading),
			Distance:            take(d, "waypointDistance", WaypointDistance),
			ETA:                 take(d, "waypointETA", WaypointETA),
		}
	}

	if d.err != nil {
		return nil, d.err
	}
	return out, nil
}
