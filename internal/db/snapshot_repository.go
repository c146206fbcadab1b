package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/unklstewy/gcs-pfd/pkg/telemetry"
)

// SnapshotRepository stores telemetry snapshots as JSON documents keyed by
// vehicle and time.
type SnapshotRepository struct {
	db *DB
}

// NewSnapshotRepository creates a new snapshot repository.
func NewSnapshotRepository(db *DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// VehicleSummary describes the recordings held for one vehicle.
type VehicleSummary struct {
	VehicleID string    `json:"vehicleId"`
	LastSeen  time.Time `json:"lastSeen"`
	Snapshots int64     `json:"snapshots"`
}

// Save stores a snapshot and returns its row id. A zero timestamp is
// replaced by the current time.
func (r *SnapshotRepository) Save(ctx context.Context, s *telemetry.Snapshot) (int64, error) {
	if s == nil {
		return 0, telemetry.ErrNoSnapshot
	}
	if s.VehicleID == "" {
		return 0, fmt.Errorf("snapshot has no vehicle id")
	}

	stored := *s
	if stored.Timestamp.IsZero() {
		stored.Timestamp = time.Now().UTC()
	}

	payload, err := json.Marshal(&stored)
	if err != nil {
		return 0, fmt.Errorf("failed to encode snapshot: %w", err)
	}

	var id int64
	err = r.db.QueryRowContext(ctx, `
		INSERT INTO telemetry_snapshots (vehicle_id, recorded_at, payload)
		VALUES ($1, $2, $3)
		RETURNING id
	`, stored.VehicleID, stored.Timestamp.UnixMilli(), string(payload)).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert snapshot for %s: %w", stored.VehicleID, err)
	}

	return id, nil
}

// Latest returns the most recent snapshot of a vehicle. It returns an error
// wrapping telemetry.ErrNoSnapshot when the vehicle has none.
func (r *SnapshotRepository) Latest(ctx context.Context, vehicleID string) (*telemetry.Snapshot, error) {
	var payload []byte
	err := r.db.QueryRowContext(ctx, `
		SELECT payload FROM telemetry_snapshots
		WHERE vehicle_id = $1
		ORDER BY recorded_at DESC, id DESC
		LIMIT 1
	`, vehicleID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("vehicle %s: %w", vehicleID, telemetry.ErrNoSnapshot)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest snapshot: %w", err)
	}

	var s telemetry.Snapshot
	if err := json.Unmarshal(payload, &s); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return &s, nil
}

// ListVehicles returns every vehicle with stored snapshots, ordered by id.
func (r *SnapshotRepository) ListVehicles(ctx context.Context) ([]VehicleSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT vehicle_id, MAX(recorded_at), COUNT(*)
		FROM telemetry_snapshots
		GROUP BY vehicle_id
		ORDER BY vehicle_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []VehicleSummary
	for rows.Next() {
		var (
			v        VehicleSummary
			lastSeen int64
		)
		if err := rows.Scan(&v.VehicleID, &lastSeen, &v.Snapshots); err != nil {
			return nil, fmt.Errorf("failed to scan vehicle: %w", err)
		}
		v.LastSeen = time.UnixMilli(lastSeen).UTC()
		vehicles = append(vehicles, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate vehicles: %w", err)
	}

	return vehicles, nil
}

// Source returns a telemetry.Source that reads the latest snapshot of one
// vehicle on every call.
func (r *SnapshotRepository) Source(vehicleID string) telemetry.Source {
	return &vehicleSource{repo: r, vehicleID: vehicleID}
}

type vehicleSource struct {
	repo      *SnapshotRepository
	vehicleID string
}

func (v *vehicleSource) Latest(ctx context.Context) (*telemetry.Snapshot, error) {
	return v.repo.Latest(ctx, v.vehicleID)
}
