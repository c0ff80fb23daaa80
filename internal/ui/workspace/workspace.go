// Package workspace holds per-session editable copies of the dataset and
// expectation suite for the web UI.
package workspace

import (
	"context"
	"sync"

	"github.com/leapstack-labs/leapcheck/internal/dataset"
	"github.com/leapstack-labs/leapcheck/internal/expect"
)

// Workspace is one browser session's editable state: its own copy of the
// dataset and its own expectation suite. It never outlives the server
// process and is recreated fresh from the source file on demand.
//
// Table and Suite must only be touched while holding the workspace lock:
// the long-lived SSE handler renders them concurrently with edit requests.
type Workspace struct {
	mu    sync.Mutex
	Table *dataset.Table
	Suite expect.Suite
}

// Lock acquires the workspace for reading or mutating Table and Suite.
func (w *Workspace) Lock() { w.mu.Lock() }

// Unlock releases the workspace.
func (w *Workspace) Unlock() { w.mu.Unlock() }

// Manager owns all live workspaces, keyed by the session id stored in the
// browser cookie.
type Manager struct {
	mu   sync.Mutex
	byID map[string]*Workspace

	loadTable func(ctx context.Context) (*dataset.Table, error)
	loadSuite func() (expect.Suite, error)
}

// NewManager creates a workspace manager backed by the given table and
// suite loaders.
func NewManager(
	loadTable func(ctx context.Context) (*dataset.Table, error),
	loadSuite func() (expect.Suite, error),
) *Manager {
	return &Manager{
		byID:      make(map[string]*Workspace),
		loadTable: loadTable,
		loadSuite: loadSuite,
	}
}

// Get returns the workspace for a session id, creating it from the source
// dataset and default suite when absent.
func (m *Manager) Get(ctx context.Context, id string) (*Workspace, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if w, ok := m.byID[id]; ok {
		return w, nil
	}

	table, err := m.loadTable(ctx)
	if err != nil {
		return nil, err
	}
	suite, err := m.loadSuite()
	if err != nil {
		return nil, err
	}

	w := &Workspace{Table: table, Suite: suite}
	m.byID[id] = w
	return w, nil
}

// Reset drops one session's workspace so the next access reloads from the
// source file.
func (m *Manager) Reset(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byID, id)
}

// Invalidate drops every workspace. Called when the source dataset file
// changes on disk.
func (m *Manager) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID = make(map[string]*Workspace)
}

// Count returns the number of live workspaces.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byID)
}
