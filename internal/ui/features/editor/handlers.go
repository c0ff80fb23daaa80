// Package editor provides handlers for the interactive dataset editor: an
// editable table whose expectation suite is re-evaluated on every change.
package editor

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/leapstack-labs/leapcheck/internal/expect"
	"github.com/leapstack-labs/leapcheck/internal/ui/notifier"
	"github.com/leapstack-labs/leapcheck/internal/ui/views"
	"github.com/leapstack-labs/leapcheck/internal/ui/workspace"
	"github.com/starfederation/datastar-go/datastar"
)

const (
	sessionName  = "leapcheck"
	sessionIDKey = "workspace_id"
)

// Handlers provides HTTP handlers for the editor feature.
type Handlers struct {
	workspaces   *workspace.Manager
	sessionStore sessions.Store
	notifier     *notifier.Notifier
	dataset      string
	logger       *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(
	workspaces *workspace.Manager,
	sessionStore sessions.Store,
	notify *notifier.Notifier,
	dataset string,
	logger *slog.Logger,
) *Handlers {
	return &Handlers{
		workspaces:   workspaces,
		sessionStore: sessionStore,
		notifier:     notify,
		dataset:      dataset,
		logger:       logger,
	}
}

// workspaceID resolves the caller's workspace id from the session cookie,
// minting one on first visit. Must be called before the SSE stream starts:
// saving the session writes headers.
func (h *Handlers) workspaceID(w http.ResponseWriter, r *http.Request) (string, error) {
	session, err := h.sessionStore.Get(r, sessionName)
	if err != nil {
		// A stale or tampered cookie decodes to an error plus a fresh
		// session; fall through and re-mint the id.
		h.logger.Debug("session decode failed, reissuing", "error", err)
	}

	if id, ok := session.Values[sessionIDKey].(string); ok && id != "" {
		return id, nil
	}

	id := uuid.NewString()
	session.Values[sessionIDKey] = id
	if err := session.Save(r, w); err != nil {
		return "", fmt.Errorf("failed to save session: %w", err)
	}
	return id, nil
}

// buildEditorData assembles the full editor view state for one workspace,
// running the suite against the current table. It takes the workspace lock;
// the caller must not already hold it. Check faults propagate.
func (h *Handlers) buildEditorData(r *http.Request, ws *workspace.Workspace) (views.EditorData, error) {
	ws.Lock()
	defer ws.Unlock()

	results, err := expect.Run(ws.Table, ws.Suite)
	if err != nil {
		return views.EditorData{}, err
	}

	names := expect.Names()
	selected := ""
	if len(names) > 0 {
		selected = names[0]
	}
	params, err := expect.Params(selected)
	if err != nil {
		return views.EditorData{}, err
	}

	return views.EditorData{
		Dataset:       h.dataset,
		Columns:       ws.Table.Columns(),
		Rows:          ws.Table.Rows(),
		Results:       results,
		CheckNames:    names,
		SelectedCheck: selected,
		Params:        params,
	}, nil
}

// patchApp re-renders the whole editor app into the SSE stream, the fat
// morph pattern: one patch replaces #app after every mutation.
func (h *Handlers) patchApp(sse *datastar.ServerSentEventGenerator, r *http.Request, ws *workspace.Workspace) {
	data, err := h.buildEditorData(r, ws)
	if err != nil {
		_ = sse.ConsoleError(err)
		return
	}
	if err := sse.PatchElementTempl(views.EditorApp(data)); err != nil {
		_ = sse.ConsoleError(err)
	}
}

// EditorPage renders the full editor page.
func (h *Handlers) EditorPage(w http.ResponseWriter, r *http.Request) {
	id, err := h.workspaceID(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	ws, err := h.workspaces.Get(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	data, err := h.buildEditorData(r, ws)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := views.Page("leapcheck", views.EditorApp(data)).Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// Updates is the long-lived SSE endpoint. It holds the stream open and
// re-renders the app whenever the source dataset changes on disk.
func (h *Handlers) Updates(w http.ResponseWriter, r *http.Request) {
	id, err := h.workspaceID(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	sse := datastar.NewSSE(w, r)

	updates := h.notifier.Subscribe()
	defer h.notifier.Unsubscribe(updates)

	for {
		select {
		case <-r.Context().Done():
			return
		case <-updates:
			// The manager was invalidated on file change, so Get reloads
			// from disk here.
			ws, err := h.workspaces.Get(r.Context(), id)
			if err != nil {
				_ = sse.ConsoleError(err)
				continue
			}
			h.patchApp(sse, r, ws)
		}
	}
}

// EditCell applies a single cell edit from the bound cell signal.
func (h *Handlers) EditCell(w http.ResponseWriter, r *http.Request) {
	row, err := strconv.Atoi(chi.URLParam(r, "row"))
	if err != nil || row < 0 {
		http.Error(w, "invalid row", http.StatusBadRequest)
		return
	}
	col, err := strconv.Atoi(chi.URLParam(r, "col"))
	if err != nil || col < 0 {
		http.Error(w, "invalid column", http.StatusBadRequest)
		return
	}

	// Read signals BEFORE creating SSE (SSE consumes the request body).
	signals := map[string]any{}
	if err := datastar.ReadSignals(r, &signals); err != nil {
		http.Error(w, "failed to read signals: "+err.Error(), http.StatusBadRequest)
		return
	}

	id, err := h.workspaceID(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	sse := datastar.NewSSE(w, r)

	ws, err := h.workspaces.Get(r.Context(), id)
	if err != nil {
		_ = sse.ConsoleError(err)
		return
	}

	raw := ""
	if v, ok := signals[cellSignal(row, col)]; ok {
		raw = fmt.Sprintf("%v", v)
	}

	ws.Lock()
	cols := ws.Table.Columns()
	if col >= len(cols) {
		ws.Unlock()
		_ = sse.ConsoleError(fmt.Errorf("column index %d out of range", col))
		return
	}
	err = ws.Table.SetCell(row, cols[col], raw)
	ws.Unlock()
	if err != nil {
		_ = sse.ConsoleError(err)
		return
	}

	h.logger.Debug("cell edited", "row", row, "column", cols[col], "value", raw)
	h.patchApp(sse, r, ws)
}

// AddRow appends an empty row to the workspace table.
func (h *Handlers) AddRow(w http.ResponseWriter, r *http.Request) {
	id, err := h.workspaceID(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	sse := datastar.NewSSE(w, r)

	ws, err := h.workspaces.Get(r.Context(), id)
	if err != nil {
		_ = sse.ConsoleError(err)
		return
	}

	ws.Lock()
	ws.Table.AppendRow()
	ws.Unlock()
	h.patchApp(sse, r, ws)
}

// DeleteRow removes the row at the given index.
func (h *Handlers) DeleteRow(w http.ResponseWriter, r *http.Request) {
	row, err := strconv.Atoi(chi.URLParam(r, "row"))
	if err != nil || row < 0 {
		http.Error(w, "invalid row", http.StatusBadRequest)
		return
	}

	id, err := h.workspaceID(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	sse := datastar.NewSSE(w, r)

	ws, err := h.workspaces.Get(r.Context(), id)
	if err != nil {
		_ = sse.ConsoleError(err)
		return
	}

	ws.Lock()
	err = ws.Table.DeleteRow(row)
	ws.Unlock()
	if err != nil {
		_ = sse.ConsoleError(err)
		return
	}

	h.patchApp(sse, r, ws)
}

// AddExpectation builds a suite entry from the add form signals and appends
// it to the workspace suite.
func (h *Handlers) AddExpectation(w http.ResponseWriter, r *http.Request) {
	signals := map[string]any{}
	if err := datastar.ReadSignals(r, &signals); err != nil {
		http.Error(w, "failed to read signals: "+err.Error(), http.StatusBadRequest)
		return
	}

	id, err := h.workspaceID(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	sse := datastar.NewSSE(w, r)

	check, _ := signals["newcheck"].(string)
	column, _ := signals["newcolumn"].(string)

	def, ok := expect.Get(check)
	if !ok {
		_ = sse.ConsoleError(fmt.Errorf("%w: %q", expect.ErrUnknownCheck, check))
		return
	}
	if column == "" {
		_ = sse.ConsoleError(fmt.Errorf("no column selected"))
		return
	}

	args := collectArgs(def, signals)

	ws, err := h.workspaces.Get(r.Context(), id)
	if err != nil {
		_ = sse.ConsoleError(err)
		return
	}

	ws.Lock()
	ws.Suite = ws.Suite.Add(expect.Entry{Check: check, Column: column, Args: args})
	ws.Unlock()
	h.logger.Debug("expectation added", "check", check, "column", column, "args", args)
	h.patchApp(sse, r, ws)
}

// collectArgs reads the param_<name> signals declared by the check and
// coerces each non-empty value against its declared kind. Empty inputs are
// omitted so the check falls back to its defaults.
func collectArgs(def expect.Def, signals map[string]any) map[string]any {
	var args map[string]any
	for _, p := range def.Params {
		if expect.IsIgnoredParam(p.Name) {
			continue
		}
		v, ok := signals[paramSignalPrefix+p.Name]
		if !ok {
			continue
		}
		coerced, ok := expect.CoerceArgAs(fmt.Sprintf("%v", v), p.Kind)
		if !ok {
			continue
		}
		if args == nil {
			args = make(map[string]any)
		}
		args[p.Name] = coerced
	}
	return args
}

// DeleteExpectation removes the entry with the given id from the suite.
func (h *Handlers) DeleteExpectation(w http.ResponseWriter, r *http.Request) {
	entryID := chi.URLParam(r, "id")

	id, err := h.workspaceID(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	sse := datastar.NewSSE(w, r)

	ws, err := h.workspaces.Get(r.Context(), id)
	if err != nil {
		_ = sse.ConsoleError(err)
		return
	}

	ws.Lock()
	ws.Suite = ws.Suite.Remove(entryID)
	ws.Unlock()
	h.patchApp(sse, r, ws)
}

// Params re-renders the parameter inputs for the currently selected check.
func (h *Handlers) Params(w http.ResponseWriter, r *http.Request) {
	var signals addSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		http.Error(w, "failed to read signals: "+err.Error(), http.StatusBadRequest)
		return
	}

	sse := datastar.NewSSE(w, r)

	params, err := expect.Params(signals.Check)
	if err != nil {
		_ = sse.ConsoleError(err)
		return
	}

	if err := sse.PatchElementTempl(views.ParamInputs(signals.Check, params)); err != nil {
		_ = sse.ConsoleError(err)
	}
}

// Reset discards the session's workspace and re-renders from the source
// dataset and default suite.
func (h *Handlers) Reset(w http.ResponseWriter, r *http.Request) {
	id, err := h.workspaceID(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	sse := datastar.NewSSE(w, r)

	h.workspaces.Reset(id)
	ws, err := h.workspaces.Get(r.Context(), id)
	if err != nil {
		_ = sse.ConsoleError(err)
		return
	}

	h.patchApp(sse, r, ws)
}
