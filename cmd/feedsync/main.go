package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sethvargo/go-envconfig"

	"github.com/iudanet/feedsync/internal/cli"
	"github.com/iudanet/feedsync/internal/connectivity"
	"github.com/iudanet/feedsync/internal/engine"
	"github.com/iudanet/feedsync/internal/remote/httpapi"
	"github.com/iudanet/feedsync/internal/storage/boltdb"
	"github.com/iudanet/feedsync/internal/view"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

type config struct {
	ServerURL     string        `env:"FEEDSYNC_SERVER, default=http://localhost:8080"`
	DBPath        string        `env:"FEEDSYNC_DB, default=feedsync.db"`
	LogLevel      string        `env:"FEEDSYNC_LOG_LEVEL, default=info"`
	LogFormat     string        `env:"FEEDSYNC_LOG_FORMAT, default=text"`
	MaxRetries    int           `env:"FEEDSYNC_MAX_RETRIES, default=3"`
	DrainInterval time.Duration `env:"FEEDSYNC_DRAIN_INTERVAL, default=30s"`
	ProbeInterval time.Duration `env:"FEEDSYNC_PROBE_INTERVAL, default=15s"`
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var cfg config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		log.Fatalf("error parsing config: %s", err)
	}

	showVersion := flag.Bool("version", false, "Show version information")
	serverURL := flag.String("server", cfg.ServerURL, "Feed server URL")
	dbPath := flag.String("db", cfg.DBPath, "Path to local database")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage()
		os.Exit(1)
	}
	command := args[0]

	logger := newLogger(cfg)

	// Storage never blocks startup: an unopenable database file means
	// memory-only operation for this run.
	store := boltdb.Open(*dbPath, logger)
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	apiClient := httpapi.NewClient(*serverURL)
	monitor := connectivity.New(ctx, apiClient.Ping, logger)
	eng := engine.New(store, store, monitor, apiClient, logger, engine.Config{
		MaxRetries:    cfg.MaxRetries,
		DrainInterval: cfg.DrainInterval,
	})
	viewModel := view.New(store)

	c := cli.New(eng, viewModel, monitor, store, cfg.ProbeInterval)
	c.Run(ctx, command, args[1:])
}

func newLogger(cfg config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

func printVersion() {
	fmt.Printf("feedsync\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
