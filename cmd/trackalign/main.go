// Command trackalign is the batch preprocessing CLI: it discovers recording
// sessions, synthesizes timestamps for their untimed reference routes, emits
// training datasets and keeps the run index database.
//
// Usage:
//
//	trackalign [flags] align            process every session under -data
//	trackalign [flags] dataset          build the windowed dataset from -data into -out
//	trackalign [flags] migrate <up|down|status>
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/banshee-data/tracks.report/internal/config"
	"github.com/banshee-data/tracks.report/internal/dataset"
	"github.com/banshee-data/tracks.report/internal/report"
	"github.com/banshee-data/tracks.report/internal/session"
	"github.com/banshee-data/tracks.report/internal/trackdb"
)

var (
	dataRoot      = flag.String("data", "data", "Root directory holding one subdirectory per session")
	outDir        = flag.String("out", "out", "Output directory for datasets and reports")
	dbPath        = flag.String("db", "", "Path to the run index database (empty disables the index)")
	migrationsDir = flag.String("migrations", "internal/trackdb/migrations", "Directory holding schema migrations")
	configPath    = flag.String("config", "", "Optional tuning config JSON (partial overrides allowed)")
	withReport    = flag.Bool("report", false, "Write per-session HTML/PNG diagnostics into -out")
)

func main() {
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		printHelp()
		os.Exit(1)
	}

	tuning := config.EmptyTuningConfig()
	if *configPath != "" {
		var err error
		tuning, err = config.LoadTuningConfig(*configPath)
		if err != nil {
			log.Fatalf("Failed to load tuning config: %v", err)
		}
	}

	switch args[0] {
	case "align":
		runAlign(tuning)
	case "dataset":
		runDataset(tuning)
	case "migrate":
		runMigrate(args[1:])
	case "help":
		printHelp()
	default:
		fmt.Printf("Unknown command: %s\n\n", args[0])
		printHelp()
		os.Exit(1)
	}
}

func runAlign(tuning *config.TuningConfig) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	p := &session.Processor{Tuning: tuning}

	if *dbPath != "" {
		store, err := trackdb.Open(*dbPath)
		if err != nil {
			log.Fatalf("Failed to open run index: %v", err)
		}
		defer store.Close()
		if err := store.MigrateUp(*migrationsDir); err != nil {
			log.Fatalf("Failed to migrate run index: %v", err)
		}
		p.Recorder = store
	}

	if *withReport {
		p.Reporter = &report.Writer{OutDir: *outDir}
	}

	if err := p.ProcessAll(ctx, *dataRoot); err != nil {
		log.Fatalf("Align failed: %v", err)
	}
	log.Println("✓ All sessions processed")
}

func runDataset(tuning *config.TuningConfig) {
	b := &dataset.Builder{
		PreDir: *dataRoot,
		OutDir: *outDir,
		Config: dataset.Config{
			WindowSize:   tuning.GetWindowSize(),
			StepSize:     tuning.GetStepSize(),
			UseElevation: tuning.GetUseElevation(),
		},
	}
	if err := b.Build(); err != nil {
		log.Fatalf("Dataset build failed: %v", err)
	}
	log.Printf("✓ Dataset written to %s", *outDir)
}

func runMigrate(args []string) {
	if len(args) < 1 {
		log.Fatal("Usage: trackalign migrate <up|down|status>")
	}
	if *dbPath == "" {
		log.Fatal("migrate requires -db")
	}

	store, err := trackdb.Open(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open run index: %v", err)
	}
	defer store.Close()

	switch args[0] {
	case "up":
		if err := store.MigrateUp(*migrationsDir); err != nil {
			log.Fatalf("Migration up failed: %v", err)
		}
		log.Println("✓ All migrations applied successfully")
	case "down":
		if err := store.MigrateDown(*migrationsDir); err != nil {
			log.Fatalf("Migration down failed: %v", err)
		}
		log.Println("✓ Rolled back one migration")
	case "status":
		version, dirty, err := store.MigrateVersion(*migrationsDir)
		if err != nil {
			log.Fatalf("Failed to read migration version: %v", err)
		}
		log.Printf("Schema version: %d (dirty=%v)", version, dirty)
	default:
		log.Fatalf("Unknown migrate action: %s", args[0])
	}
}

func printHelp() {
	fmt.Println(`trackalign - GPS session preprocessing

Commands:
  align      Resample recordings and synthesize route timestamps for every
             session under -data
  dataset    Build the windowed training dataset from preprocessed sessions
  migrate    Manage the run index schema (up | down | status)

Flags:`)
	flag.PrintDefaults()
}
