package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/acmercer/timekeep/internal/cli"
	"github.com/acmercer/timekeep/internal/config"
	"github.com/acmercer/timekeep/internal/db"
	"github.com/acmercer/timekeep/internal/repository"
	"github.com/acmercer/timekeep/internal/service"
	"github.com/acmercer/timekeep/internal/tracker"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.timekeep/timekeep.db
	dbPath := os.Getenv("TIMEKEEP_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".timekeep", "timekeep.db")
	}

	cfgPath := os.Getenv("TIMEKEEP_CONFIG")
	if cfgPath == "" {
		cfgPath = config.DefaultPath()
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	// Open database
	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	sessionRepo := repository.NewSQLiteSessionRepo(database)
	sphereRepo := repository.NewSQLiteSphereRepo(database)
	projectRepo := repository.NewSQLiteProjectRepo(database)
	actionRepo := repository.NewSQLiteBreakActionRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if os.Getenv("TIMEKEEP_LOG") != "" {
		observer = service.NewLogUseCaseObserver(os.Stderr)
	}

	trackerCfg := tracker.Config{
		IdleAfter:      cfg.Tracking.IdleThreshold(),
		IdleBreakAfter: cfg.Tracking.IdleBreakThreshold(),
	}

	app := &cli.App{
		Tracker:    service.NewTrackerService(sessionRepo, trackerCfg, logger, observer),
		Completion: service.NewCompletionService(sessionRepo, uow),
		Analysis:   service.NewAnalysisService(sessionRepo, sphereRepo, projectRepo, actionRepo, observer),
		Catalog:    service.NewCatalogService(sphereRepo, projectRepo, actionRepo),
		Config:     cfg,
	}

	// Detect interactive terminal for the tracking and completion views.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// Execute root command
	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
