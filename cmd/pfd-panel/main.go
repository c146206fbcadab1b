package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/unklstewy/gcs-pfd/internal/station"
	"github.com/unklstewy/gcs-pfd/pkg/config"
)

var (
	// Version information (set by build flags)
	version = "dev"
	commit  = "unknown"
)

func main() {
	configPath := flag.String("config", "configs/config.json", "Path to configuration file")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		fmt.Printf("pfd-panel version %s (commit: %s)\n", version, commit)
		os.Exit(0)
	}

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// tview owns the terminal; logs go to the event panel instead.
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	st, err := station.Open(ctx, cfg, nil, logger)
	if err != nil {
		log.Fatalf("Failed to open telemetry source: %v", err)
	}
	defer st.Close()

	go st.Loop.Run(ctx)

	if err := NewApp(st.Loop).Run(ctx); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}
