package config

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/gridiron/pkg/domain/interfaces"
	"github.com/secmon-lab/gridiron/pkg/repository"
	"github.com/urfave/cli/v3"
)

// Source holds the dataset source configuration. At most one of DataDir,
// DataURL and FirestoreProject selects the origin; Redis and the in-process
// cache are layered on top of it.
type Source struct {
	DataDir           string
	DataURL           string
	FirestoreProject  string
	FirestoreDatabase string
	RedisURL          string
	CacheTTL          time.Duration
	CacheSize         int
}

// Flags returns CLI flags for Source configuration
func (s *Source) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "data-dir",
			Usage:       "Directory holding nfl_<season>.json snapshots",
			Category:    "Data",
			Sources:     cli.EnvVars("GRIDIRON_DATA_DIR"),
			Destination: &s.DataDir,
		},
		&cli.StringFlag{
			Name:        "data-url",
			Usage:       "Base URL serving /data/nfl_<season>.json snapshots",
			Category:    "Data",
			Sources:     cli.EnvVars("GRIDIRON_DATA_URL"),
			Destination: &s.DataURL,
		},
		&cli.StringFlag{
			Name:        "firestore-project",
			Usage:       "GCP project ID for Firestore",
			Category:    "Firestore",
			Sources:     cli.EnvVars("GRIDIRON_FIRESTORE_PROJECT"),
			Destination: &s.FirestoreProject,
		},
		&cli.StringFlag{
			Name:        "firestore-database",
			Usage:       "Firestore database ID",
			Category:    "Firestore",
			Value:       "(default)",
			Sources:     cli.EnvVars("GRIDIRON_FIRESTORE_DATABASE"),
			Destination: &s.FirestoreDatabase,
		},
		&cli.StringFlag{
			Name:        "redis-url",
			Usage:       "Redis URL for the shared dataset cache (e.g. redis://localhost:6379/0)",
			Category:    "Cache",
			Sources:     cli.EnvVars("GRIDIRON_REDIS_URL"),
			Destination: &s.RedisURL,
		},
		&cli.DurationFlag{
			Name:        "cache-ttl",
			Usage:       "Lifetime of cached datasets",
			Category:    "Cache",
			Value:       10 * time.Minute,
			Sources:     cli.EnvVars("GRIDIRON_CACHE_TTL"),
			Destination: &s.CacheTTL,
		},
		&cli.IntFlag{
			Name:        "cache-size",
			Usage:       "Number of seasons kept in the in-process cache",
			Category:    "Cache",
			Value:       8,
			Sources:     cli.EnvVars("GRIDIRON_CACHE_SIZE"),
			Destination: &s.CacheSize,
		},
	}
}

// Validate validates the source configuration
func (s *Source) Validate() error {
	origins := 0
	for _, v := range []string{s.DataDir, s.DataURL, s.FirestoreProject} {
		if v != "" {
			origins++
		}
	}
	if origins > 1 {
		return goerr.New("only one of data-dir, data-url and firestore-project can be set",
			goerr.V("data_dir", s.DataDir),
			goerr.V("data_url", s.DataURL),
			goerr.V("firestore_project", s.FirestoreProject),
		)
	}
	if s.CacheTTL <= 0 {
		return goerr.New("cache TTL must be positive", goerr.V("cache_ttl", s.CacheTTL))
	}
	if s.CacheSize <= 0 {
		return goerr.New("cache size must be positive", goerr.V("cache_size", s.CacheSize))
	}
	return nil
}

// Backend is the configured dataset chain
type Backend struct {
	// Source serves page and API reads through every configured cache layer
	Source interfaces.DatasetSource
	// Store accepts imported datasets. It is nil when the origin is read-only
	// and no Redis cache is configured, or when no origin is configured.
	Store interfaces.DatasetStore

	closers []func() error
}

// Close releases every connection opened by Configure
func (b *Backend) Close() error {
	var errs []error
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Configure builds the dataset chain
func (s *Source) Configure(ctx context.Context) (*Backend, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	logger := ctxlog.From(ctx)
	backend := &Backend{}

	var origin interfaces.DatasetSource
	switch {
	case s.FirestoreProject != "":
		repo, err := repository.NewFirestore(ctx, s.FirestoreProject, s.FirestoreDatabase)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to init firestore",
				goerr.V("project", s.FirestoreProject),
				goerr.V("database", s.FirestoreDatabase),
			)
		}
		backend.closers = append(backend.closers, repo.Close)
		origin = repo
		backend.Store = repo

	case s.DataDir != "":
		repo, err := repository.NewDirectory(s.DataDir)
		if err != nil {
			return nil, err
		}
		backend.closers = append(backend.closers, repo.Close)
		origin = repo
		backend.Store = repo

	case s.DataURL != "":
		repo, err := repository.NewHTTP(s.DataURL)
		if err != nil {
			return nil, err
		}
		origin = repo

	default:
		logger.Warn("No data source configured, serving an empty in-memory store. Every season will report missing data")
		origin = repository.NewMemory()
	}

	if s.RedisURL != "" {
		r, err := repository.NewRedis(ctx, s.RedisURL, origin, s.CacheTTL)
		if err != nil {
			_ = backend.Close()
			return nil, err
		}
		backend.closers = append(backend.closers, r.Close)
		origin = r
		backend.Store = r
	}

	backend.Source = repository.NewCache(origin, s.CacheSize, s.CacheTTL)
	return backend, nil
}

// LogValue returns structured log value
func (s Source) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("data_dir", s.DataDir),
		slog.String("data_url", s.DataURL),
		slog.String("firestore_project", s.FirestoreProject),
		slog.String("firestore_database", s.FirestoreDatabase),
		slog.Bool("redis", s.RedisURL != ""),
		slog.Duration("cache_ttl", s.CacheTTL),
		slog.Int("cache_size", s.CacheSize),
	)
}
