package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/syllabus/internal/content"
	"github.com/desertthunder/syllabus/internal/models"
	"github.com/desertthunder/syllabus/internal/repositories"
	"github.com/desertthunder/syllabus/internal/services"
	"github.com/desertthunder/syllabus/internal/shared"
	"github.com/desertthunder/syllabus/internal/tasks"
	"github.com/desertthunder/syllabus/internal/tracker"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config      *shared.Config
	db          *sql.DB
	store       *repositories.StateRepository
	themes      *repositories.ThemeRepository
	sessions    *repositories.SessionRepository
	library     *content.Library
	tracker     *tracker.Tracker
	coordinator *tracker.Coordinator
	service     *services.RemoteService
	engine      *tasks.Engine
	logger      *log.Logger
	output      io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config   *shared.Config
	DB       *sql.DB
	Library  *content.Library
	Service  *services.RemoteService
	Logger   *log.Logger
	Output   io.Writer
	Debounce tracker.Option
}

// NewRunner creates a new Runner with the provided configuration. The
// checklist is bound immediately, so progress commands work without any
// other initialization.
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	r := &Runner{
		config:   opts.Config,
		db:       opts.DB,
		store:    repositories.NewStateRepository(opts.DB, opts.Logger),
		themes:   repositories.NewThemeRepository(opts.DB, opts.Logger),
		sessions: repositories.NewSessionRepository(opts.DB),
		library:  opts.Library,
		service:  opts.Service,
		logger:   opts.Logger,
		output:   opts.Output,
	}

	trackerOpts := []tracker.Option{}
	if opts.Debounce != nil {
		trackerOpts = append(trackerOpts, opts.Debounce)
	}
	r.tracker = tracker.New(r.store, opts.Logger, trackerOpts...)

	// Component re-init order: the tracker rebinds first so every consumer
	// downstream sees restored state.
	r.coordinator = tracker.NewCoordinator(opts.Logger)
	r.coordinator.Register("tracker", func() error {
		if r.library == nil {
			return shared.ErrContentUnavailable
		}
		// Render only needs catalog order; Bind hydrates checked/notes from
		// the store itself, so an empty state avoids a redundant load.
		r.tracker.Bind(r.library.Render(models.NewSyllabusState()))
		return nil
	})
	r.coordinator.ContentReplaced()

	if opts.Service != nil {
		r.engine = tasks.NewEngine(opts.Service, r.store)
	}

	return r
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, listCommand, checkCommand, uncheckCommand, noteCommand,
		progressCommand, nextCommand, resetCommand, composerCommand,
		exportCommand, themeCommand, syncCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// Close flushes pending debounced writes and releases the database.
func (r *Runner) Close() {
	r.tracker.FlushNotes()
	if r.db != nil {
		r.db.Close()
	}
}

// requireLibrary guards commands that need the catalog loaded.
func (r *Runner) requireLibrary() error {
	if r.library == nil {
		return fmt.Errorf("%w: syllabus catalog failed to load", shared.ErrContentUnavailable)
	}
	return nil
}

// requireSync guards commands that need a configured sync backend.
func (r *Runner) requireSync() error {
	if r.service == nil || r.engine == nil {
		return fmt.Errorf("%w: sync is not configured, set [sync] client_id in config.toml", shared.ErrMissingConfig)
	}
	return nil
}

// restoreSession loads the stored token into the sync service, if any.
func (r *Runner) restoreSession(ctx context.Context) error {
	session, err := r.sessions.Latest()
	if err != nil {
		return err
	}
	r.service.RestoreToken(ctx, &session.Token)
	return nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
