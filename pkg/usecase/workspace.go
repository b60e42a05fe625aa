package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/secmon-lab/gridiron/pkg/domain/interfaces"
	"github.com/secmon-lab/gridiron/pkg/domain/model"
	"github.com/secmon-lab/gridiron/pkg/domain/types"
)

const (
	// DefaultWorkspaceTTL is the idle lifetime of a workspace
	DefaultWorkspaceTTL = 30 * time.Minute

	// DefaultMaxWorkspaces caps the number of live workspaces
	DefaultMaxWorkspaces = 10000
)

// Workspace is the UI state of one browser: the selected season, a loader
// following it, and a loader pinned to the default season for the overview.
type Workspace struct {
	session  *model.Session
	Provider *SeasonProvider
	Loader   *DatasetLoader
	Overview *DatasetLoader
}

// ID returns the workspace ID
func (w *Workspace) ID() types.WorkspaceID {
	return w.session.ID
}

func (w *Workspace) close() {
	w.Loader.Close()
	w.Overview.Close()
}

// WorkspacesOption configures Workspaces
type WorkspacesOption func(*Workspaces)

// WithWorkspaceTTL sets the idle lifetime of workspaces
func WithWorkspaceTTL(ttl time.Duration) WorkspacesOption {
	return func(w *Workspaces) {
		if ttl > 0 {
			w.ttl = ttl
		}
	}
}

// WithMaxWorkspaces caps the number of live workspaces. When the cap is
// reached, the least recently used workspace is evicted.
func WithMaxWorkspaces(n int) WorkspacesOption {
	return func(w *Workspaces) {
		if n > 0 {
			w.max = n
		}
	}
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) WorkspacesOption {
	return func(w *Workspaces) {
		w.now = now
	}
}

// Workspaces keeps browser workspaces in memory. Expired workspaces are
// swept when a new one is created, and the least recently used one is
// evicted when the store is full.
type Workspaces struct {
	ctx     context.Context
	source  interfaces.DatasetSource
	catalog *model.SeasonCatalog
	ttl     time.Duration
	max     int
	now     func() time.Time

	mu    sync.Mutex
	items map[types.WorkspaceID]*Workspace
}

// NewWorkspaces creates a workspace store. ctx carries the logger used by
// background loads.
func NewWorkspaces(ctx context.Context, source interfaces.DatasetSource, catalog *model.SeasonCatalog, opts ...WorkspacesOption) *Workspaces {
	w := &Workspaces{
		ctx:     ctx,
		source:  source,
		catalog: catalog,
		ttl:     DefaultWorkspaceTTL,
		max:     DefaultMaxWorkspaces,
		now:     time.Now,
		items:   make(map[types.WorkspaceID]*Workspace),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// TTL returns the idle lifetime of workspaces
func (w *Workspaces) TTL() time.Duration {
	return w.ttl
}

// Get returns a live workspace and extends its lifetime
func (w *Workspaces) Get(id types.WorkspaceID) (*Workspace, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	ws, ok := w.items[id]
	if !ok {
		return nil, false
	}
	now := w.now()
	if ws.session.IsExpired(now) {
		delete(w.items, id)
		ws.close()
		return nil, false
	}
	ws.session.Touch(now, w.ttl)
	return ws, true
}

// Create starts a new workspace on the default season
func (w *Workspaces) Create() (*Workspace, error) {
	now := w.now()
	session, err := model.NewSession(now, w.ttl)
	if err != nil {
		return nil, err
	}

	ws := &Workspace{
		session:  session,
		Provider: NewSeasonProvider(w.catalog.Default),
		Loader:   NewDatasetLoader(w.source),
		Overview: NewDatasetLoader(w.source),
	}

	ctx := ctxlog.With(w.ctx, ctxlog.From(w.ctx).With("workspace_id", session.ID))
	ws.Loader.Bind(ctx, ws.Provider)
	ws.Overview.Load(ctx, w.catalog.Default)

	w.mu.Lock()
	swept := w.sweepLocked(now)
	evicted := 0
	for len(w.items) >= w.max {
		w.evictOldestLocked()
		evicted++
	}
	w.items[session.ID] = ws
	w.mu.Unlock()

	if swept > 0 || evicted > 0 {
		ctxlog.From(w.ctx).Debug("removed workspaces", "expired", swept, "evicted", evicted)
	}

	return ws, nil
}

// Resolve returns the workspace of id, creating a new one when id is
// unknown, malformed or expired. created reports whether a new workspace
// was made.
func (w *Workspaces) Resolve(id types.WorkspaceID) (ws *Workspace, created bool, err error) {
	if id.Validate() == nil {
		if ws, ok := w.Get(id); ok {
			return ws, false, nil
		}
	}
	ws, err = w.Create()
	if err != nil {
		return nil, false, err
	}
	return ws, true, nil
}

// Sweep removes expired workspaces and returns how many were removed
func (w *Workspaces) Sweep() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.sweepLocked(w.now())
}

func (w *Workspaces) sweepLocked(now time.Time) int {
	count := 0
	for id, ws := range w.items {
		if ws.session.IsExpired(now) {
			delete(w.items, id)
			ws.close()
			count++
		}
	}
	return count
}

// evictOldestLocked removes the workspace closest to expiry, which is the
// one touched least recently. w.mu must be held.
func (w *Workspaces) evictOldestLocked() {
	var oldest *Workspace
	for _, ws := range w.items {
		if oldest == nil || ws.session.ExpiresAt.Before(oldest.session.ExpiresAt) {
			oldest = ws
		}
	}
	if oldest == nil {
		return
	}
	delete(w.items, oldest.session.ID)
	oldest.close()
}

// Len returns the number of stored workspaces
func (w *Workspaces) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.items)
}
