package repository

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/gridiron/pkg/domain/interfaces"
	"github.com/secmon-lab/gridiron/pkg/domain/model"
	"github.com/secmon-lab/gridiron/pkg/domain/types"
	"golang.org/x/sync/singleflight"
)

// Cache keeps recently loaded datasets in process. Failed loads are not
// cached, so a missing season is retried on the next request.
type Cache struct {
	source interfaces.DatasetSource
	lru    *expirable.LRU[types.Season, *model.SeasonDataset]
	group  singleflight.Group
}

// NewCache wraps source with an LRU of size entries expiring after ttl
func NewCache(source interfaces.DatasetSource, size int, ttl time.Duration) *Cache {
	if size <= 0 {
		size = 1
	}
	return &Cache{
		source: source,
		lru:    expirable.NewLRU[types.Season, *model.SeasonDataset](size, nil, ttl),
	}
}

// Load returns the cached dataset of season or loads it from the source.
// Concurrent misses for the same season share one upstream load, which is
// not cancelled when one of the waiting callers gives up.
func (c *Cache) Load(ctx context.Context, season types.Season) (*model.SeasonDataset, error) {
	if ds, ok := c.lru.Get(season); ok {
		return ds, nil
	}

	ch := c.group.DoChan(season.String(), func() (any, error) {
		ds, err := c.source.Load(context.WithoutCancel(ctx), season)
		if err != nil {
			return nil, err
		}
		c.lru.Add(season, ds)
		return ds, nil
	})

	select {
	case <-ctx.Done():
		return nil, goerr.Wrap(ctx.Err(), "dataset load abandoned", goerr.V("season", season))
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			ctxlog.From(ctx).Debug("shared dataset load", "season", season)
		}
		return res.Val.(*model.SeasonDataset), nil
	}
}

// Put stores ds in the cache and, when the source accepts writes, in the source
func (c *Cache) Put(ctx context.Context, ds *model.SeasonDataset) error {
	if ds == nil {
		return goerr.New("dataset is nil")
	}
	if store, ok := c.source.(interfaces.DatasetStore); ok {
		if err := store.Put(ctx, ds); err != nil {
			return err
		}
	}
	c.lru.Add(ds.Season, ds)
	return nil
}

// Purge drops every cached dataset
func (c *Cache) Purge() {
	c.lru.Purge()
}

// Len returns the number of cached datasets
func (c *Cache) Len() int {
	return c.lru.Len()
}
