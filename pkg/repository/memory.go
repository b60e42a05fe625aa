package repository

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/gridiron/pkg/domain/model"
	"github.com/secmon-lab/gridiron/pkg/domain/types"
)

// Memory implements DatasetStore with in-memory storage. Stored datasets are
// shared with callers and must be treated as read-only.
type Memory struct {
	mu       sync.RWMutex
	datasets map[types.Season]*model.SeasonDataset
}

// NewMemory creates a new memory store preloaded with datasets
func NewMemory(datasets ...*model.SeasonDataset) *Memory {
	m := &Memory{
		datasets: make(map[types.Season]*model.SeasonDataset),
	}
	for _, ds := range datasets {
		if ds != nil {
			m.datasets[ds.Season] = ds
		}
	}
	return m
}

// Load returns the dataset of season
func (m *Memory) Load(ctx context.Context, season types.Season) (*model.SeasonDataset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ds, exists := m.datasets[season]
	if !exists {
		return nil, goerr.Wrap(model.ErrSeasonNotFound, "season is not stored in memory",
			goerr.V("season", season))
	}
	return ds, nil
}

// Put stores ds, replacing any dataset of the same season
func (m *Memory) Put(ctx context.Context, ds *model.SeasonDataset) error {
	if ds == nil {
		return goerr.New("dataset is nil")
	}
	if ds.Season <= 0 {
		return goerr.New("dataset season is invalid", goerr.V("season", ds.Season))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.datasets[ds.Season] = ds
	return nil
}

// Close does nothing for memory store
func (m *Memory) Close() error {
	return nil
}
