package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"

	"github.com/unklstewy/gcs-pfd/internal/db"
	"github.com/unklstewy/gcs-pfd/pkg/config"
)

// Snapshot importer
// Loads telemetry recordings (JSON or YAML, one snapshot or a list) into the
// snapshot store so the server and the terminal displays can replay them.

func main() {
	configPath := flag.String("config", "configs/config.json", "Path to configuration file")
	vehicleID := flag.String("vehicle", "", "Override the vehicle id of every imported snapshot")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] recording.json [recording.yaml ...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load()

	log.Println("===========================================")
	log.Println("  Telemetry Snapshot Importer")
	log.Println("===========================================")

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	log.Println("Connecting to database...")
	database, err := db.ReconnectWithRetry(ctx, cfg.Database, cfg.Telemetry.MaxRetries, time.Second)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { database.Close() }()
	log.Printf("✓ Database connected (%s)", database.Driver())

	if err := database.InitSchema(ctx); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}
	log.Println("✓ Schema initialized")

	retry := cfg.Telemetry.Retry()
	total := 0
	failed := 0
	for _, path := range flag.Args() {
		database, err = db.EnsureConnection(ctx, database, cfg.Database)
		if err != nil {
			log.Fatalf("Lost database connection: %v", err)
		}

		imp := &Importer{
			repo:       db.NewSnapshotRepository(database),
			vehicleID:  *vehicleID,
			maxRetries: retry.MaxRetries,
			retryWait:  retry.InitialDelay,
		}
		res, err := imp.ImportFile(ctx, path)
		if err != nil {
			log.Printf("Warning: %v", err)
			failed++
		}
		total += res.Imported
		log.Printf("✓ %s", res)
	}

	stats, err := database.GetStats(ctx)
	if err != nil {
		log.Printf("Warning: Failed to read store stats: %v", err)
	} else {
		log.Printf("Store now holds %s snapshots from %s vehicles",
			humanize.Comma(stats["snapshots"]), humanize.Comma(stats["vehicles"]))
	}

	log.Printf("Imported %s snapshots from %d files", humanize.Comma(int64(total)), flag.NArg()-failed)
	if failed > 0 {
		os.Exit(1)
	}
}
