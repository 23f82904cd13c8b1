package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/desertthunder/syllabus/internal/content"
	"github.com/desertthunder/syllabus/internal/services"
	"github.com/desertthunder/syllabus/internal/shared"
	"github.com/desertthunder/syllabus/internal/tracker"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		// Progress commands degrade to an in-memory session; setup prints
		// the real error.
		logger.Warn("database unavailable, progress will not persist", "err", err)
		db = nil
	} else {
		shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
		if err := shared.RunMigrations(db); err != nil {
			logger.Warn("migrations failed, progress may not persist", "err", err)
		}
	}

	library, err := content.Load(config.Content)
	if err != nil {
		logger.Warn("failed to load syllabus catalog", "err", err)
	}

	var syncService *services.RemoteService
	if config.Sync.ClientID != "" {
		if svc, err := services.NewRemoteService(config.Sync); err == nil {
			syncService = svc
		} else {
			logger.Warn("sync misconfigured", "err", err)
		}
	}

	var debounce tracker.Option
	if config.UI.NotesDebounceMS > 0 {
		debounce = tracker.WithNotesDebounce(time.Duration(config.UI.NotesDebounceMS) * time.Millisecond)
	}

	runner := NewRunner(RunnerOpts{
		Config:   config,
		DB:       db,
		Library:  library,
		Service:  syncService,
		Logger:   logger,
		Debounce: debounce,
	})
	defer runner.Close()

	app := &cli.Command{
		Name:     "syllabus",
		Usage:    "Track your progress through a classical music listening syllabus",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		}
		logger.Fatalf("application error: %v", err)
	}
}
