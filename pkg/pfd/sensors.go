package pfd

import (
	"fmt"
	"strconv"

	"github.com/unklstewy/gcs-pfd/pkg/lookup"
	"github.com/unklstewy/gcs-pfd/pkg/telemetry"
)

func IsAttitudeValid(s *telemetry.Snapshot) (bool, error) {
	alarms, err := s.SystemAlarms()
	if err != nil {
		return false, err
	}
	return alarms.Attitude == telemetry.AlarmOK, nil
}

func IsAttitudeNotInitialised(s *telemetry.Snapshot) (bool, error) {
	alarms, err := s.SystemAlarms()
	if err != nil {
		return false, err
	}
	return alarms.Attitude == telemetry.AlarmUninitialised, nil
}

func IsGPSValid(s *telemetry.Snapshot) (bool, error) {
	alarms, err := s.SystemAlarms()
	if err != nil {
		return false, err
	}
	return alarms.GPS == telemetry.AlarmOK, nil
}

func IsGPSNotInitialised(s *telemetry.Snapshot) (bool, error) {
	alarms, err := s.SystemAlarms()
	if err != nil {
		return false, err
	}
	return alarms.GPS == telemetry.AlarmUninitialised, nil
}

func IsGPSStatusFix3D(s *telemetry.Snapshot) (bool, error) {
	gps, err := s.GPSPositionSensor()
	if err != nil {
		return false, err
	}
	return gps.Status == telemetry.GPSStatusFix3D, nil
}

// IsOPLinkConnected reports whether the radio modem has a live link.
func IsOPLinkConnected(s *telemetry.Snapshot) (bool, error) {
	link, err := s.OPLinkStatus()
	if err != nil {
		return false, err
	}
	return link.LinkState == telemetry.LinkStateConnected, nil
}

// MagSourceName names the magnetometer in use. An auxiliary magnetometer is
// prefixed with its type, e.g. "GPSv9 Aux". AuxMagSettings is only read for
// the auxiliary source.
func MagSourceName(s *telemetry.Snapshot) (string, error) {
	mag, err := s.MagState()
	if err != nil {
		return "", err
	}
	name, err := lookup.MagSources.Label(int(mag.Source))
	if err != nil {
		return "", err
	}
	if mag.Source != telemetry.MagSourceAux {
		return name, nil
	}

	aux, err := s.AuxMagSettings()
	if err != nil {
		return "", err
	}
	prefix, err := lookup.AuxMagTypes.Label(int(aux.Type))
	if err != nil {
		return "", err
	}
	return prefix + " " + name, nil
}

func GPSSensorType(s *telemetry.Snapshot) (string, error) {
	gps, err := s.GPSPositionSensor()
	if err != nil {
		return "", err
	}
	return lookup.GPSSensorTypes.Label(int(gps.SensorType))
}

// GPSNumSat is the number of satellites used in the solution.
func GPSNumSat(s *telemetry.Snapshot) (int, error) {
	gps, err := s.GPSPositionSensor()
	if err != nil {
		return 0, err
	}
	return gps.Satellites, nil
}

func GPSSatsInView(s *telemetry.Snapshot) (int, error) {
	sats, err := s.GPSSatellites()
	if err != nil {
		return 0, err
	}
	return sats.SatsInView, nil
}

// GPSHdopInfo renders the dilutions of precision as "hdop/vdop/pdop".
func GPSHdopInfo(s *telemetry.Snapshot) (string, error) {
	gps, err := s.GPSPositionSensor()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%.2f/%.2f/%.2f", gps.HDOP, gps.VDOP, gps.PDOP), nil
}

func GPSAltitude(s *telemetry.Snapshot) (string, error) {
	gps, err := s.GPSPositionSensor()
	if err != nil {
		return "", err
	}
	return strconv.FormatFloat(gps.Altitude, 'f', 2, 64), nil
}

func GPSStatus(s *telemetry.Snapshot) (string, error) {
	gps, err := s.GPSPositionSensor()
	if err != nil {
		return "", err
	}
	return lookup.GPSStatuses.Label(int(gps.Status))
}

func FusionAlgorithm(s *telemetry.Snapshot) (string, error) {
	revo, err := s.RevoSettings()
	if err != nil {
		return "", err
	}
	return lookup.FusionAlgorithms.Label(int(revo.FusionAlgorithm))
}

// ReceiverQuality renders the RC link quality, or "?? %" when the receiver
// does not report one.
func ReceiverQuality(s *telemetry.Snapshot) (string, error) {
	rx, err := s.ReceiverStatus()
	if err != nil {
		return "", err
	}
	if rx.Quality > 0 {
		return strconv.Itoa(rx.Quality) + "%", nil
	}
	return "?? %", nil
}

func OPLinkState(s *telemetry.Snapshot) (string, error) {
	link, err := s.OPLinkStatus()
	if err != nil {
		return "", err
	}
	return lookup.LinkStates.Label(int(link.LinkState))
}
