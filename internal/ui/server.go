// Package ui provides the interactive web UI for leapcheck.
package ui

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"github.com/leapstack-labs/leapcheck/internal/dataset"
	"github.com/leapstack-labs/leapcheck/internal/expect"
	"github.com/leapstack-labs/leapcheck/internal/ui/notifier"
	"github.com/leapstack-labs/leapcheck/internal/ui/router"
	"github.com/leapstack-labs/leapcheck/internal/ui/workspace"
	"golang.org/x/sync/errgroup"
)

// Server is the main UI server.
type Server struct {
	workspaces   *workspace.Manager
	sessionStore *sessions.CookieStore
	host         string
	port         int
	watch        bool
	dataDir      string
	datasetName  string
	suitePath    string
	logger       *slog.Logger
	notifier     *notifier.Notifier
}

// Config holds configuration for the UI server.
type Config struct {
	DataDir       string
	Dataset       string
	SuitePath     string
	Host          string
	Port          int
	Watch         bool
	SessionSecret string
	Logger        *slog.Logger
}

// NewServer creates a new UI server instance.
func NewServer(cfg Config) *Server {
	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	sessionStore.MaxAge(86400 * 30) // 30 days
	sessionStore.Options.Path = "/"
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.SameSite = http.SameSiteLaxMode

	loader := dataset.NewLoader(cfg.DataDir, cfg.Logger)
	workspaces := workspace.NewManager(
		func(ctx context.Context) (*dataset.Table, error) {
			return loader.Load(ctx, cfg.Dataset)
		},
		func() (expect.Suite, error) {
			return expect.LoadSuite(cfg.SuitePath)
		},
	)

	return &Server{
		workspaces:   workspaces,
		sessionStore: sessionStore,
		host:         cfg.Host,
		port:         cfg.Port,
		watch:        cfg.Watch,
		dataDir:      cfg.DataDir,
		datasetName:  cfg.Dataset,
		suitePath:    cfg.SuitePath,
		logger:       cfg.Logger,
		notifier:     notifier.New(),
	}
}

// Serve starts the UI server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	s.logger.Info("starting UI server", "addr", fmt.Sprintf("http://%s", addr))

	eg, egctx := errgroup.WithContext(ctx)

	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	if err := router.SetupRoutes(r, s.workspaces, s.sessionStore, s.notifier, s.datasetName, s.logger, s.IsDev()); err != nil {
		return fmt.Errorf("failed to setup routes: %w", err)
	}

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start file watcher if enabled
	if s.watch {
		eg.Go(func() error {
			return s.watchFiles(egctx)
		})
	}

	// Start HTTP server
	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down UI server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// IsDev returns true if running in development mode.
func (s *Server) IsDev() bool {
	return false
}

// Notifier returns the server's notifier for SSE updates.
func (s *Server) Notifier() *notifier.Notifier {
	return s.notifier
}

// Workspaces returns the server's workspace manager.
func (s *Server) Workspaces() *workspace.Manager {
	return s.workspaces
}

// watchFiles watches the data directory and drops all workspaces when the
// dataset or suite file changes, so every session reloads from disk.
func (s *Server) watchFiles(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(s.dataDir); err != nil {
		s.logger.Error("failed to watch data directory", "dir", s.dataDir, "error", err)
		// Don't fail - continue without watching
	}
	if dir := filepath.Dir(s.suitePath); dir != s.dataDir {
		if err := watcher.Add(dir); err != nil {
			s.logger.Error("failed to watch suite directory", "dir", dir, "error", err)
		}
	}

	datasetPath := filepath.Join(s.dataDir, s.datasetName)

	// Debounce timer
	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			return nil

		case event := <-watcher.Events:
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if event.Name != datasetPath && event.Name != s.suitePath {
				continue
			}

			// Debounce
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(100*time.Millisecond, func() {
				s.logger.Debug("source file changed, reloading sessions", "file", event.Name)
				s.workspaces.Invalidate()
				s.notifier.Broadcast()
			})

		case err := <-watcher.Errors:
			s.logger.Error("watcher error", "error", err)
		}
	}
}
