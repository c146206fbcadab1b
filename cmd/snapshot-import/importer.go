package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/unklstewy/gcs-pfd/internal/db"
	"github.com/unklstewy/gcs-pfd/pkg/telemetry"
)

// Importer loads recorded snapshots into the snapshot store.
type Importer struct {
	repo *db.SnapshotRepository

	// vehicleID, when set, replaces the vehicle id of every snapshot.
	vehicleID string

	maxRetries int
	retryWait  time.Duration
}

// FileResult summarises one imported recording.
type FileResult struct {
	Path     string
	Size     int64
	Imported int
	Skipped  int
}

func (r FileResult) String() string {
	return fmt.Sprintf("%s (%s): %s imported, %s skipped",
		r.Path, humanize.Bytes(uint64(r.Size)),
		humanize.Comma(int64(r.Imported)), humanize.Comma(int64(r.Skipped)))
}

// ImportFile stores every snapshot of a recording. Snapshots without a
// vehicle id are skipped unless the importer overrides it.
func (imp *Importer) ImportFile(ctx context.Context, path string) (FileResult, error) {
	res := FileResult{Path: path}

	info, err := os.Stat(path)
	if err != nil {
		return res, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	res.Size = info.Size()

	snaps, err := telemetry.LoadSnapshots(path)
	if err != nil {
		return res, err
	}

	for i := range snaps {
		s := &snaps[i]
		if imp.vehicleID != "" {
			s.VehicleID = imp.vehicleID
		}
		if s.VehicleID == "" {
			res.Skipped++
			continue
		}

		err := db.WithRetry(ctx, func() error {
			_, err := imp.repo.Save(ctx, s)
			return err
		}, imp.maxRetries, imp.retryWait)
		if err != nil {
			return res, fmt.Errorf("failed to store snapshot %d of %s: %w", i, path, err)
		}
		res.Imported++
	}
	return res, nil
}
