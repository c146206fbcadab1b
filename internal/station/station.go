// Package station assembles the ground station runtime shared by the
// front ends: the configured telemetry source and the refresh loop on top.
package station

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/unklstewy/gcs-pfd/internal/db"
	"github.com/unklstewy/gcs-pfd/internal/metrics"
	"github.com/unklstewy/gcs-pfd/internal/refresh"
	"github.com/unklstewy/gcs-pfd/pkg/config"
	"github.com/unklstewy/gcs-pfd/pkg/telemetry"
)

// Station is an open telemetry source and its refresh loop.
type Station struct {
	Source telemetry.Source
	Loop   *refresh.Loop

	// Database is nil when replaying a file.
	Database *db.DB
}

// Open connects the telemetry source named by cfg and builds the refresh
// loop. m may be nil. Call Close when done.
func Open(ctx context.Context, cfg *config.Config, m *metrics.Metrics, logger *slog.Logger) (*Station, error) {
	pfdCtx, err := cfg.Display.Context()
	if err != nil {
		return nil, err
	}

	st := &Station{}
	switch cfg.Telemetry.Source {
	case "file":
		fs, err := telemetry.NewFileSource(cfg.Telemetry.File)
		if err != nil {
			return nil, err
		}
		logger.Info("replaying telemetry recording", "file", cfg.Telemetry.File, "snapshots", fs.Len())
		st.Source = fs
	case "database":
		database, err := db.ReconnectWithRetry(ctx, cfg.Database, 5, time.Second)
		if err != nil {
			return nil, err
		}
		if err := database.InitSchema(ctx); err != nil {
			database.Close()
			return nil, err
		}
		logger.Info("reading telemetry from snapshot store", "driver", database.Driver(), "vehicle", cfg.Telemetry.VehicleID)
		st.Database = database
		st.Source = db.NewSnapshotRepository(database).Source(cfg.Telemetry.VehicleID)
	default:
		return nil, fmt.Errorf("unknown telemetry source %q", cfg.Telemetry.Source)
	}

	opts := []refresh.Option{refresh.WithLogger(logger)}
	if m != nil {
		opts = append(opts, refresh.WithMetrics(m))
	}
	st.Loop = refresh.New(st.Source, refresh.Config{
		Interval: cfg.Telemetry.RefreshInterval(),
		Retry:    cfg.Telemetry.Retry(),
		Context:  pfdCtx,
	}, opts...)

	return st, nil
}

// Close releases the database connection, if any.
func (s *Station) Close() error {
	if s.Database == nil {
		return nil
	}
	return s.Database.Close()
}
