package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/unklstewy/gcs-pfd/internal/db"
	"github.com/unklstewy/gcs-pfd/pkg/config"
	"github.com/unklstewy/gcs-pfd/pkg/telemetry"
	"github.com/unklstewy/gcs-pfd/pkg/telemetry/telemetrytest"
)

func openStore(t *testing.T) *db.DB {
	t.Helper()
	cfg := config.DefaultConfig().Database
	cfg.Driver = "sqlite3"
	cfg.Path = filepath.Join(t.TempDir(), "import.db")

	database, err := db.Connect(cfg)
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if err := database.InitSchema(context.Background()); err != nil {
		t.Fatalf("InitSchema failed: %v", err)
	}
	return database
}

func writeRecording(t *testing.T, snaps []*telemetry.Snapshot) string {
	t.Helper()
	data, err := json.Marshal(snaps)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	path := filepath.Join(t.TempDir(), "flight.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestImportFile(t *testing.T) {
	ctx := context.Background()
	database := openStore(t)

	anonymous := telemetrytest.FlyingQuad()
	anonymous.VehicleID = ""
	path := writeRecording(t, []*telemetry.Snapshot{telemetrytest.FlyingQuad(), anonymous})

	imp := &Importer{repo: db.NewSnapshotRepository(database), maxRetries: 1}
	res, err := imp.ImportFile(ctx, path)
	if err != nil {
		t.Fatalf("ImportFile failed: %v", err)
	}
	if res.Imported != 1 || res.Skipped != 1 {
		t.Errorf("Expected 1 imported and 1 skipped, got %+v", res)
	}
	if res.Size == 0 {
		t.Error("Expected file size to be recorded")
	}
	if !strings.Contains(res.String(), "1 imported, 1 skipped") {
		t.Errorf("Unexpected summary %q", res.String())
	}

	stats, err := database.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if stats["snapshots"] != 1 {
		t.Errorf("Expected 1 stored snapshot, got %d", stats["snapshots"])
	}
}

func TestImportFileVehicleOverride(t *testing.T) {
	ctx := context.Background()
	database := openStore(t)
	repo := db.NewSnapshotRepository(database)

	anonymous := telemetrytest.FlyingQuad()
	anonymous.VehicleID = ""
	path := writeRecording(t, []*telemetry.Snapshot{telemetrytest.FlyingQuad(), anonymous})

	imp := &Importer{repo: repo, vehicleID: "bench-1"}
	res, err := imp.ImportFile(ctx, path)
	if err != nil {
		t.Fatalf("ImportFile failed: %v", err)
	}
	if res.Imported != 2 {
		t.Errorf("Expected 2 imported, got %d", res.Imported)
	}

	vehicles, err := repo.ListVehicles(ctx)
	if err != nil {
		t.Fatalf("ListVehicles failed: %v", err)
	}
	if len(vehicles) != 1 || vehicles[0].VehicleID != "bench-1" || vehicles[0].Snapshots != 2 {
		t.Errorf("Unexpected vehicles %+v", vehicles)
	}
}

func TestImportFileErrors(t *testing.T) {
	database := openStore(t)
	imp := &Importer{repo: db.NewSnapshotRepository(database)}

	if _, err := imp.ImportFile(context.Background(), filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Expected error for missing file")
	}

	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := imp.ImportFile(context.Background(), bad); err == nil {
		t.Error("Expected error for malformed recording")
	}
}
