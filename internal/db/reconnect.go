package db

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/unklstewy/gcs-pfd/pkg/config"
)

// ReconnectWithRetry attempts to connect to the database with exponential backoff.
// This provides resilience against temporary database outages at startup.
//
// Parameters:
//   - ctx: Cancels the wait between attempts
//   - cfg: Database configuration
//   - maxRetries: Maximum number of connection attempts (0 = infinite)
//   - initialDelay: Initial wait time between retries
//
// Returns: Connected database or error if all retries exhausted
func ReconnectWithRetry(ctx context.Context, cfg config.DatabaseConfig, maxRetries int, initialDelay time.Duration) (*DB, error) {
	delay := initialDelay
	attempt := 0

	for {
		attempt++
		slog.Debug("database connection attempt", "attempt", attempt, "driver", cfg.Driver)

		db, err := Connect(cfg)
		if err == nil {
			slog.Info("database connected", "driver", db.driver, "attempts", attempt)
			return db, nil
		}

		// Check if we've exceeded max retries
		if maxRetries > 0 && attempt >= maxRetries {
			slog.Error("database connection failed", "attempts", attempt, "error", err)
			return nil, err
		}

		slog.Warn("database connection failed, retrying", "error", err, "retry_in", delay)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}

		// Exponential backoff with cap at 60 seconds
		delay *= 2
		if delay > 60*time.Second {
			delay = 60 * time.Second
		}
	}
}

// EnsureConnection checks if the database connection is alive and reconnects if needed.
//
// Returns: Active database connection (either original or new) and error
func EnsureConnection(ctx context.Context, db *DB, cfg config.DatabaseConfig) (*DB, error) {
	if db == nil {
		slog.Warn("database connection is nil, reconnecting")
		return ReconnectWithRetry(ctx, cfg, 3, time.Second)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		slog.Warn("database connection lost, reconnecting", "error", err)
		db.Close()
		return ReconnectWithRetry(ctx, cfg, 3, time.Second)
	}

	return db, nil
}

// HealthCheck reports whether the database answers a trivial query.
func HealthCheck(ctx context.Context, db *DB) bool {
	if db == nil {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var result int
	if err := db.QueryRowContext(ctx, "SELECT 1").Scan(&result); err != nil {
		slog.Warn("database health check failed", "error", err)
		return false
	}

	if result != 1 {
		slog.Warn("database health check returned unexpected result", "result", result)
		return false
	}

	return true
}

// connErrors are fragments of driver errors that indicate a dropped connection.
var connErrors = []string{
	"connection refused",
	"broken pipe",
	"no connection",
	"connection reset",
	"database is locked",
	"eof",
	"timeout",
}

// isConnError reports whether err looks like a transient connection failure.
func isConnError(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, pattern := range connErrors {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}

// WithRetry executes a database operation, retrying it on connection failures.
// Other errors are returned immediately.
func WithRetry(ctx context.Context, operation func() error, maxRetries int, wait time.Duration) error {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		err := operation()
		if err == nil {
			return nil
		}
		lastErr = err

		if !isConnError(err) {
			return err
		}

		if attempt < maxRetries {
			backoff := time.Duration(attempt+1) * wait
			slog.Warn("database operation failed, retrying",
				"attempt", attempt+1, "max", maxRetries+1, "error", err, "retry_in", backoff)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}
	}

	return lastErr
}
