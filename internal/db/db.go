package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"           // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3" // SQLite driver for single-station setups
	"github.com/unklstewy/gcs-pfd/pkg/config"
)

// Snapshot store schemas. Timestamps are stored as Unix milliseconds so the
// same queries work on both drivers.
const (
	postgresSchema = `
CREATE TABLE IF NOT EXISTS telemetry_snapshots (
	id          BIGSERIAL PRIMARY KEY,
	vehicle_id  TEXT NOT NULL,
	recorded_at BIGINT NOT NULL,
	payload     JSONB NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_snapshots_vehicle_time
	ON telemetry_snapshots (vehicle_id, recorded_at DESC);
`

	sqliteSchema = `
CREATE TABLE IF NOT EXISTS telemetry_snapshots (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	vehicle_id  TEXT NOT NULL,
	recorded_at INTEGER NOT NULL,
	payload     TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_snapshots_vehicle_time
	ON telemetry_snapshots (vehicle_id, recorded_at DESC);
`
)

// DB wraps a database connection with helper methods.
type DB struct {
	*sql.DB
	driver string
	config config.DatabaseConfig
}

// New wraps an already opened connection. Used by tests and by callers
// that manage the pool themselves.
func New(sqlDB *sql.DB, driver string) *DB {
	return &DB{DB: sqlDB, driver: driver, config: config.DatabaseConfig{Driver: driver}}
}

// Driver returns the database/sql driver name.
func (db *DB) Driver() string {
	return db.driver
}

// dataSourceName builds the driver specific connection string.
func dataSourceName(cfg config.DatabaseConfig) (string, error) {
	switch cfg.Driver {
	case "", "postgres":
		return fmt.Sprintf(
			"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host,
			cfg.Port,
			cfg.Username,
			cfg.Password,
			cfg.Database,
			cfg.SSLMode,
		), nil
	case "sqlite3":
		if cfg.Path == "" {
			return "", fmt.Errorf("sqlite3 driver needs a database path")
		}
		return fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", cfg.Path), nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// Connect establishes a connection to the snapshot store.
func Connect(cfg config.DatabaseConfig) (*DB, error) {
	connStr, err := dataSourceName(cfg)
	if err != nil {
		return nil, err
	}
	driver := cfg.Driver
	if driver == "" {
		driver = "postgres"
	}

	// Open connection
	sqlDB, err := sql.Open(driver, connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	if driver == "sqlite3" {
		// SQLite serializes writers; one connection avoids SQLITE_BUSY.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{
		DB:     sqlDB,
		driver: driver,
		config: cfg,
	}, nil
}

// InitSchema creates the snapshot tables if they do not exist.
// This should be called once at application startup.
func (db *DB) InitSchema(ctx context.Context) error {
	schema := postgresSchema
	if db.driver == "sqlite3" {
		schema = sqliteSchema
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	return nil
}

// CleanupOldSnapshots deletes snapshots recorded more than maxAge ago and
// returns how many were removed. Call it periodically to bound growth.
func (db *DB) CleanupOldSnapshots(ctx context.Context, maxAge time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-maxAge).UnixMilli()

	res, err := db.ExecContext(ctx,
		`DELETE FROM telemetry_snapshots WHERE recorded_at < $1`,
		cutoff,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old snapshots: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted snapshots: %w", err)
	}
	return n, nil
}

// GetStats returns database statistics.
func (db *DB) GetStats(ctx context.Context) (map[string]int64, error) {
	stats := make(map[string]int64)

	var snapshots int64
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM telemetry_snapshots`,
	).Scan(&snapshots)
	if err != nil {
		return nil, fmt.Errorf("failed to count snapshots: %w", err)
	}
	stats["snapshots"] = snapshots

	var vehicles int64
	err = db.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT vehicle_id) FROM telemetry_snapshots`,
	).Scan(&vehicles)
	if err != nil {
		return nil, fmt.Errorf("failed to count vehicles: %w", err)
	}
	stats["vehicles"] = vehicles

	return stats, nil
}
