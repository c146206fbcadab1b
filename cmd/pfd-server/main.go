// GCS PFD Server
// Refreshes the primary flight display from telemetry and serves it over a REST API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mdobak/go-xerrors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/crypto/bcrypt"

	"github.com/unklstewy/gcs-pfd/internal/auth"
	"github.com/unklstewy/gcs-pfd/internal/db"
	"github.com/unklstewy/gcs-pfd/internal/metrics"
	"github.com/unklstewy/gcs-pfd/internal/station"
	"github.com/unklstewy/gcs-pfd/pkg/config"
)

var (
	configPath = flag.String("config", "configs/config.json", "Path to configuration file")
	verbose    = flag.Bool("v", false, "Log every request")
	hashPass   = flag.String("hash-password", "", "Print the bcrypt hash of a password for the operators list and exit")
)

func main() {
	flag.Parse()

	if *hashPass != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*hashPass), bcrypt.DefaultCost)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to hash password: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(hash))
		return
	}

	_ = godotenv.Load()

	var logLevel slog.LevelVar
	if *verbose {
		logLevel.Set(slog.LevelDebug)
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: &logLevel}))
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "server failed", slog.Any("error", xerrors.New(err)))
		cancel()
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	pfdCtx, err := cfg.Display.Context()
	if err != nil {
		return err
	}

	authSvc, err := newAuthService(cfg.Auth)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	st, err := station.Open(ctx, cfg, metrics.New(reg), logger)
	if err != nil {
		return err
	}
	defer st.Close()

	if st.Database != nil {
		go cleanupLoop(ctx, st.Database, cfg.Database, logger)
	}
	go st.Loop.Run(ctx)

	srv := NewServer(st.Loop, st.Database, authSvc, pfdCtx, reg, cfg.Server.AllowedOrigins, logger)
	httpServer := &http.Server{
		Addr:        net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:     srv,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", httpServer.Addr, "tls", cfg.Server.TLSEnabled)
		var err error
		if cfg.Server.TLSEnabled {
			err = httpServer.ListenAndServeTLS(cfg.Server.TLSCertFile, cfg.Server.TLSKeyFile)
		} else {
			err = httpServer.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

func newAuthService(cfg config.AuthConfig) (*auth.Service, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("auth.jwt_secret (or GCS_PFD_JWT_SECRET) must be set")
	}

	operators := make([]auth.Operator, len(cfg.Operators))
	for i, op := range cfg.Operators {
		operators[i] = auth.Operator{Username: op.Username, PasswordHash: op.PasswordHash, Role: op.Role}
	}
	return auth.NewService(auth.Config{
		JWTSecret:     cfg.JWTSecret,
		TokenDuration: cfg.TokenDuration(),
		Operators:     operators,
	})
}

// cleanupLoop enforces snapshot retention.
func cleanupLoop(ctx context.Context, database *db.DB, cfg config.DatabaseConfig, logger *slog.Logger) {
	if cfg.RetentionHours <= 0 {
		return
	}
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		if !db.HealthCheck(ctx, database) {
			logger.Warn("snapshot store unavailable, skipping cleanup")
			continue
		}
		n, err := database.CleanupOldSnapshots(ctx, time.Duration(cfg.RetentionHours)*time.Hour)
		if err != nil {
			logger.Warn("snapshot cleanup failed", slog.Any("error", err))
			continue
		}
		if n > 0 {
			logger.Info("expired snapshots removed", "count", n)
		}
	}
}
