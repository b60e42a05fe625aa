package usecase

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/gridiron/pkg/domain/model"
	"github.com/secmon-lab/gridiron/pkg/domain/types"
)

// SeasonProvider holds the selected season of a workspace and notifies
// subscribers when it changes. It is passed explicitly; there is no global.
type SeasonProvider struct {
	// notifyMu is held from the write until every subscriber returns, so
	// subscribers observe changes in the order they were made
	notifyMu sync.Mutex

	mu          sync.RWMutex
	season      types.Season
	nextID      int
	subscribers map[int]func(types.Season)
}

// NewSeasonProvider creates a provider with the initial season selected
func NewSeasonProvider(initial types.Season) *SeasonProvider {
	return &SeasonProvider{
		season:      initial,
		subscribers: make(map[int]func(types.Season)),
	}
}

// Season returns the selected season
func (p *SeasonProvider) Season() types.Season {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.season
}

// Set selects season and synchronously notifies subscribers. The value is
// not validated. Setting the current season again does not notify.
// Subscribers must not call Set.
func (p *SeasonProvider) Set(season types.Season) {
	p.notifyMu.Lock()
	defer p.notifyMu.Unlock()

	p.mu.Lock()
	if p.season == season {
		p.mu.Unlock()
		return
	}
	p.season = season
	subscribers := make([]func(types.Season), 0, len(p.subscribers))
	for id := 0; id < p.nextID; id++ {
		if fn, ok := p.subscribers[id]; ok {
			subscribers = append(subscribers, fn)
		}
	}
	p.mu.Unlock()

	for _, fn := range subscribers {
		fn(season)
	}
}

// Subscribe registers fn to be called with the new season on every change.
// The returned function removes the subscription.
func (p *SeasonProvider) Subscribe(fn func(types.Season)) func() {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := p.nextID
	p.nextID++
	p.subscribers[id] = fn

	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.subscribers, id)
	}
}

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const seasonProviderKey contextKey = "seasonProvider"

// WithSeasonProvider adds the provider to the context
func WithSeasonProvider(ctx context.Context, p *SeasonProvider) context.Context {
	if p == nil {
		return ctx
	}
	return context.WithValue(ctx, seasonProviderKey, p)
}

// SeasonProviderFrom retrieves the provider from the context. It fails with
// model.ErrNoSeasonProvider when called outside a provider scope.
func SeasonProviderFrom(ctx context.Context) (*SeasonProvider, error) {
	p, ok := ctx.Value(seasonProviderKey).(*SeasonProvider)
	if !ok || p == nil {
		return nil, goerr.Wrap(model.ErrNoSeasonProvider, "season provider is not in context")
	}
	return p, nil
}
