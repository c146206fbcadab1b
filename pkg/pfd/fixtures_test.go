package pfd

import (
	"github.com/unklstewy/gcs-pfd/pkg/telemetry"
	"github.com/unklstewy/gcs-pfd/pkg/telemetry/telemetrytest"
)

func flyingQuad() *telemetry.Snapshot {
	return telemetrytest.FlyingQuad()
}
