package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/redis/go-redis/v9"
	"github.com/secmon-lab/gridiron/pkg/domain/interfaces"
	"github.com/secmon-lab/gridiron/pkg/domain/model"
	"github.com/secmon-lab/gridiron/pkg/domain/types"
)

// RedisKey returns the cache key of season
func RedisKey(season types.Season) string {
	return fmt.Sprintf("gridiron:dataset:%d", season)
}

// Redis caches encoded snapshots in Redis in front of another source. Redis
// failures are logged and bypassed; the upstream source stays authoritative.
type Redis struct {
	client *redis.Client
	source interfaces.DatasetSource
	ttl    time.Duration
}

// NewRedis connects to redisURL and wraps source
func NewRedis(ctx context.Context, redisURL string, source interfaces.DatasetSource, ttl time.Duration) (*Redis, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse redis URL")
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, goerr.Wrap(err, "failed to connect to redis", goerr.V("addr", opts.Addr))
	}

	ctxlog.From(ctx).Info("Redis dataset cache initialized",
		"addr", opts.Addr,
		"db", opts.DB,
		"ttl", ttl,
	)

	return NewRedisWithClient(client, source, ttl), nil
}

// NewRedisWithClient wraps source with an existing client
func NewRedisWithClient(client *redis.Client, source interfaces.DatasetSource, ttl time.Duration) *Redis {
	return &Redis{
		client: client,
		source: source,
		ttl:    ttl,
	}
}

// Load returns the cached snapshot of season or loads it from the source
func (r *Redis) Load(ctx context.Context, season types.Season) (*model.SeasonDataset, error) {
	logger := ctxlog.From(ctx)
	key := RedisKey(season)

	data, err := r.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		ds, decodeErr := decodeSeason(data, season)
		if decodeErr == nil {
			return ds, nil
		}
		logger.Warn("discarding invalid cached dataset", "key", key, "error", decodeErr)
	case !errors.Is(err, redis.Nil):
		logger.Warn("failed to read dataset cache", "key", key, "error", err)
	}

	ds, err := r.source.Load(ctx, season)
	if err != nil {
		return nil, err
	}

	if err := r.set(ctx, ds); err != nil {
		logger.Warn("failed to write dataset cache", "key", key, "error", err)
	}

	return ds, nil
}

// Put writes ds to the cache, and to the source when it accepts writes
func (r *Redis) Put(ctx context.Context, ds *model.SeasonDataset) error {
	if ds == nil {
		return goerr.New("dataset is nil")
	}
	if store, ok := r.source.(interfaces.DatasetStore); ok {
		if err := store.Put(ctx, ds); err != nil {
			return err
		}
	}
	return r.set(ctx, ds)
}

func (r *Redis) set(ctx context.Context, ds *model.SeasonDataset) error {
	data, err := ds.Encode()
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, RedisKey(ds.Season), data, r.ttl).Err(); err != nil {
		return goerr.Wrap(err, "failed to set dataset cache", goerr.V("season", ds.Season))
	}
	return nil
}

// Close closes the Redis client
func (r *Redis) Close() error {
	return r.client.Close()
}
