package editor

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/leapstack-labs/leapcheck/internal/ui/notifier"
	"github.com/leapstack-labs/leapcheck/internal/ui/workspace"
)

// SetupRoutes registers the editor feature routes.
func SetupRoutes(
	router chi.Router,
	workspaces *workspace.Manager,
	sessionStore sessions.Store,
	notify *notifier.Notifier,
	dataset string,
	logger *slog.Logger,
) error {
	handlers := NewHandlers(workspaces, sessionStore, notify, dataset, logger)

	router.Get("/", handlers.EditorPage)

	router.Route("/editor", func(r chi.Router) {
		r.Get("/updates", handlers.Updates)
		r.Get("/params", handlers.Params)
		r.Post("/reset", handlers.Reset)

		r.Post("/cell/{row}/{col}", handlers.EditCell)
		r.Post("/rows", handlers.AddRow)
		r.Delete("/rows/{row}", handlers.DeleteRow)

		r.Post("/expectations", handlers.AddExpectation)
		r.Delete("/expectations/{id}", handlers.DeleteExpectation)
	})

	return nil
}
