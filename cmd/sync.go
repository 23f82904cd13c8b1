package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/desertthunder/syllabus/internal/server"
	"github.com/desertthunder/syllabus/internal/shared"
	"github.com/desertthunder/syllabus/internal/tasks"
	"github.com/urfave/cli/v3"
)

// callbackAddr derives the loopback listen address from the configured
// redirect URI.
func (r *Runner) callbackAddr() string {
	if u, err := url.Parse(r.config.Sync.RedirectURI); err == nil && u.Host != "" {
		return u.Host
	}
	return "127.0.0.1:3000"
}

// SyncLogin runs the OAuth2 authorization code flow against the sync
// backend: opens the browser, catches the callback on a temporary loopback
// server, and stores the session.
func (r *Runner) SyncLogin(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSync(); err != nil {
		return err
	}

	state := shared.GenerateID()
	handler := server.NewOAuthHandler(r.service.OAuthConfig(), state)

	router := server.NewBasicRouter()
	router.Use(server.LogRequests(r.logger))
	router.Handler(handler)

	srv := &http.Server{Addr: r.callbackAddr(), Handler: router}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			handler.Send(server.OAuthResult{})
			r.logger.Error("callback server failed", "err", err)
		}
	}()

	authURL := r.service.GetAuthURL(state)
	r.writePlain("Opening browser for sign-in...\n")
	r.writePlain("If it does not open, visit:\n%s\n", authURL)
	if err := shared.OpenBrowser(authURL); err != nil {
		r.logger.Warn("could not open browser", "err", err)
	}

	result := <-handler.Result()

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	srv.Shutdown(shutdownCtx)

	if err := result.Error(); err != nil {
		return err
	}
	if result.Token == nil {
		return fmt.Errorf("%w: no token received", shared.ErrAuthFailed)
	}

	r.service.RestoreToken(ctx, result.Token)
	if _, err := r.sessions.Create(cmd.String("account"), result.Token); err != nil {
		r.logger.Warn("could not store session, sync will require re-login", "err", err)
	}

	return r.writePlain("✓ Signed in to %s\n", r.service.Name())
}

// drainProgress logs progress updates from a running sync operation.
func (r *Runner) drainProgress(progress <-chan tasks.ProgressUpdate, done <-chan struct{}) {
	for {
		select {
		case update := <-progress:
			if update.Message != "" {
				r.logger.Info(update.Message, "phase", update.Phase.String())
			}
		case <-done:
			return
		}
	}
}

// SyncPull merges remote progress into the local copy, remote winning on
// conflicts, then rebinds the checklist.
func (r *Runner) SyncPull(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSync(); err != nil {
		return err
	}
	if err := r.restoreSession(ctx); err != nil {
		return fmt.Errorf("%w: run 'syllabus sync login' first", err)
	}

	progress := make(chan tasks.ProgressUpdate, 16)
	done := make(chan struct{})
	go r.drainProgress(progress, done)

	result, err := r.engine.Pull(ctx, progress)
	close(done)
	if err != nil {
		return err
	}

	// Content changed underneath every consumer; rebind in order.
	r.coordinator.ContentReplaced()

	stats := r.tracker.Stats()
	r.writePlain("✓ Merged %d remote records over %d local\n", result.RemoteRecords, result.LocalRecords)
	return r.writePlain("%d/%d works heard (%d%%)\n", stats.Completed, stats.Total, stats.Percentage)
}

// SyncPush uploads local progress, replacing the remote copy.
func (r *Runner) SyncPush(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSync(); err != nil {
		return err
	}
	if err := r.restoreSession(ctx); err != nil {
		return fmt.Errorf("%w: run 'syllabus sync login' first", err)
	}

	progress := make(chan tasks.ProgressUpdate, 16)
	done := make(chan struct{})
	go r.drainProgress(progress, done)

	result, err := r.engine.Push(ctx, progress)
	close(done)
	if err != nil {
		return err
	}

	return r.writePlain("✓ Uploaded %d records\n", result.Records)
}

// SyncStatus reports backend reachability and session state.
func (r *Runner) SyncStatus(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSync(); err != nil {
		return err
	}

	if err := r.engine.Status(ctx, nil); err != nil {
		return fmt.Errorf("%w: backend unreachable: %v", shared.ErrServiceUnavailable, err)
	}
	r.writePlain("✓ Backend is reachable\n")

	session, err := r.sessions.Latest()
	if err != nil {
		return r.writePlain("Session: ✗ not signed in\n")
	}
	return r.writePlain("Session: ✓ %s (since %s)\n", session.Account, session.CreatedAt.Format("2006-01-02"))
}

// SyncLogout forgets the stored session.
func (r *Runner) SyncLogout(ctx context.Context, cmd *cli.Command) error {
	if err := r.sessions.Clear(); err != nil {
		return err
	}
	return r.writePlain("Signed out.\n")
}
