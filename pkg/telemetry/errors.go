package telemetry

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSnapshot is returned by a Source that has nothing to deliver yet.
	ErrNoSnapshot = errors.New("no telemetry snapshot available")
)

// MissingTelemetryError is returned when a derivation needs a record that
// the snapshot does not carry.
type MissingTelemetryError struct {
	// Record is the name of the absent record (see the Record* constants).
	Record string
}

func (e *MissingTelemetryError) Error() string {
	return fmt.Sprintf("missing telemetry record %s", e.Record)
}

// IsMissingTelemetry checks if an error is a MissingTelemetryError and returns it.
func IsMissingTelemetry(err error) (*MissingTelemetryError, bool) {
	var mte *MissingTelemetryError
	if errors.As(err, &mte) {
		return mte, true
	}
	return nil, false
}
