package usecase

import (
	"context"
	"sync"

	"github.com/m-mizutani/ctxlog"
	"github.com/secmon-lab/gridiron/pkg/domain/interfaces"
	"github.com/secmon-lab/gridiron/pkg/domain/model"
	"github.com/secmon-lab/gridiron/pkg/domain/types"
	"github.com/secmon-lab/gridiron/pkg/utils/async"
)

// FailedToLoadMessage is shown instead of a view when a load failed
const FailedToLoadMessage = "Failed to load data"

// Snapshot is the observable state of a DatasetLoader
type Snapshot struct {
	State   types.LoadState
	Season  types.Season
	Dataset *model.SeasonDataset
	Err     error
}

// Loaded reports whether the snapshot holds a dataset
func (s Snapshot) Loaded() bool {
	return s.State == types.LoadStateLoaded && s.Dataset != nil
}

// DatasetLoader fetches one season at a time in the background. Each fetch
// is tagged with a generation; a completion whose generation is no longer
// current is discarded, so the latest requested season always wins.
type DatasetLoader struct {
	source interfaces.DatasetSource

	mu         sync.Mutex
	generation uint64
	snapshot   Snapshot
	cancel     context.CancelFunc
	changed    chan struct{}
	unbind     func()
}

// NewDatasetLoader creates an idle loader
func NewDatasetLoader(source interfaces.DatasetSource) *DatasetLoader {
	return &DatasetLoader{
		source:   source,
		snapshot: Snapshot{State: types.LoadStateIdle},
		changed:  make(chan struct{}),
	}
}

// Load switches the loader to season and starts fetching it. Any fetch in
// flight is cancelled and its result will be ignored.
func (l *DatasetLoader) Load(ctx context.Context, season types.Season) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cancel != nil {
		l.cancel()
	}
	l.generation++
	gen := l.generation
	l.setLocked(Snapshot{State: types.LoadStateLoading, Season: season})

	l.cancel = async.DispatchWithCancel(ctx, func(ctx context.Context) error {
		ds, err := l.source.Load(ctx, season)
		l.complete(ctx, gen, season, ds, err)
		return nil
	})
}

func (l *DatasetLoader) complete(ctx context.Context, gen uint64, season types.Season, ds *model.SeasonDataset, err error) {
	logger := ctxlog.From(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()

	if gen != l.generation || season != l.snapshot.Season {
		logger.Debug("discarding stale dataset load",
			"season", season,
			"generation", gen,
			"current_season", l.snapshot.Season,
			"current_generation", l.generation,
		)
		return
	}
	l.cancel = nil

	if err != nil {
		logger.Error("failed to load dataset", "season", season, "error", err)
		l.setLocked(Snapshot{State: types.LoadStateFailed, Season: season, Err: err})
		return
	}

	logger.Debug("dataset loaded", "season", season, "teams", len(ds.TeamStats))
	l.setLocked(Snapshot{State: types.LoadStateLoaded, Season: season, Dataset: ds})
}

// setLocked replaces the snapshot and wakes Await callers. l.mu must be held.
func (l *DatasetLoader) setLocked(s Snapshot) {
	l.snapshot = s
	close(l.changed)
	l.changed = make(chan struct{})
}

// Bind loads the provider's season now and again on every change
func (l *DatasetLoader) Bind(ctx context.Context, provider *SeasonProvider) {
	unsubscribe := provider.Subscribe(func(season types.Season) {
		l.Load(ctx, season)
	})

	l.mu.Lock()
	prev := l.unbind
	l.unbind = unsubscribe
	l.mu.Unlock()
	if prev != nil {
		prev()
	}

	l.Load(ctx, provider.Season())
}

// Snapshot returns the current state
func (l *DatasetLoader) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshot
}

// Await blocks while the loader is loading. When ctx is done first, the
// still-loading snapshot is returned.
func (l *DatasetLoader) Await(ctx context.Context) Snapshot {
	for {
		l.mu.Lock()
		snap := l.snapshot
		changed := l.changed
		l.mu.Unlock()

		if snap.State != types.LoadStateLoading {
			return snap
		}

		select {
		case <-ctx.Done():
			return snap
		case <-changed:
		}
	}
}

// Close unbinds the loader and cancels any fetch in flight
func (l *DatasetLoader) Close() {
	l.mu.Lock()
	unbind := l.unbind
	l.unbind = nil
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.generation++
	l.mu.Unlock()

	if unbind != nil {
		unbind()
	}
}
