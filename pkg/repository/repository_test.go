package repository_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/gridiron/pkg/domain/interfaces"
	"github.com/secmon-lab/gridiron/pkg/domain/interfaces/mocks"
	"github.com/secmon-lab/gridiron/pkg/domain/model"
	"github.com/secmon-lab/gridiron/pkg/domain/types"
	"github.com/secmon-lab/gridiron/pkg/repository"
)

func newDataset(season types.Season) *model.SeasonDataset {
	return &model.SeasonDataset{
		Season: season,
		LeagueStats: model.LeagueStats{
			TotalPlays:      1200,
			TotalTouchdowns: 41,
			PassingPlays:    700,
			RushingPlays:    500,
		},
		TeamStats: []model.TeamStat{
			{Team: "KC", EPAPerPlay: 0.12, TotalEPA: 50, Plays: 400, PassPlays: 240, RushPlays: 160},
			{Team: "NYJ", EPAPerPlay: -0.05, TotalEPA: -20, Plays: 380, PassPlays: 200, RushPlays: 180},
		},
		PlayerStats: model.PlayerStats{
			QB: []model.QBStat{{
				PlayerBase:  model.PlayerBase{Player: "P.Mahomes", EPAPerPlay: 0.21, TotalEPA: 60.2},
				Plays:       287,
				Completions: 170,
				Attempts:    250,
			}},
			RB: []model.RBStat{},
			WR: []model.WRStat{},
			TE: []model.TEStat{},
		},
		LastUpdated: "2025-11-03T09:15:42",
	}
}

func testContext() context.Context {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	return ctxlog.With(context.Background(), logger)
}

func testDatasetStore(t *testing.T, newStore func(t *testing.T) interfaces.DatasetStore) {
	t.Run("PutAndLoad", func(t *testing.T) {
		store := newStore(t)
		ctx := testContext()

		season := types.Season(2000 + time.Now().Nanosecond()%900)
		gt.NoError(t, store.Put(ctx, newDataset(season))).Required()

		ds, err := store.Load(ctx, season)
		gt.NoError(t, err).Required()
		gt.Equal(t, ds.Season, season)
		gt.Equal(t, len(ds.TeamStats), 2)
		gt.Equal(t, ds.TeamStats[0].Team, types.TeamCode("KC"))
		gt.Equal(t, ds.PlayerStats.QB[0].Attempts, model.Count(250))
		gt.Equal(t, ds.LastUpdated, "2025-11-03T09:15:42")
	})

	t.Run("PutReplaces", func(t *testing.T) {
		store := newStore(t)
		ctx := testContext()

		season := types.Season(1900 + time.Now().Nanosecond()%90)
		gt.NoError(t, store.Put(ctx, newDataset(season))).Required()

		updated := newDataset(season)
		updated.LeagueStats.TotalPlays = 1300
		gt.NoError(t, store.Put(ctx, updated)).Required()

		ds, err := store.Load(ctx, season)
		gt.NoError(t, err).Required()
		gt.Equal(t, ds.LeagueStats.TotalPlays, model.Count(1300))
	})

	t.Run("LoadNotFound", func(t *testing.T) {
		store := newStore(t)

		_, err := store.Load(testContext(), 1800)
		gt.Error(t, err)
		gt.True(t, errors.Is(err, model.ErrSeasonNotFound))
	})

	t.Run("PutNil", func(t *testing.T) {
		store := newStore(t)
		gt.Error(t, store.Put(testContext(), nil))
	})
}

func TestMemory(t *testing.T) {
	testDatasetStore(t, func(t *testing.T) interfaces.DatasetStore {
		return repository.NewMemory()
	})
}

func TestDirectory(t *testing.T) {
	testDatasetStore(t, func(t *testing.T) interfaces.DatasetStore {
		store, err := repository.NewDirectory(t.TempDir())
		gt.NoError(t, err).Required()
		return store
	})
}

func TestDirectory_Errors(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		_, err := repository.NewDirectory(filepath.Join(t.TempDir(), "missing"))
		gt.Error(t, err)
	})

	t.Run("malformed snapshot", func(t *testing.T) {
		dir := t.TempDir()
		gt.NoError(t, os.WriteFile(filepath.Join(dir, "nfl_2024.json"), []byte(`{"season": 2024`), 0o644)).Required()

		store, err := repository.NewDirectory(dir)
		gt.NoError(t, err).Required()

		_, err = store.Load(testContext(), 2024)
		gt.Error(t, err)
		gt.True(t, errors.Is(err, model.ErrInvalidDataset))
	})

	t.Run("snapshot of another season", func(t *testing.T) {
		dir := t.TempDir()
		data, err := newDataset(2023).Encode()
		gt.NoError(t, err).Required()
		gt.NoError(t, os.WriteFile(filepath.Join(dir, "nfl_2024.json"), data, 0o644)).Required()

		store, err := repository.NewDirectory(dir)
		gt.NoError(t, err).Required()

		_, err = store.Load(testContext(), 2024)
		gt.True(t, errors.Is(err, model.ErrInvalidDataset))
	})
}

func TestFirestoreDocumentSize(t *testing.T) {
	now := time.Date(2025, 11, 3, 9, 0, 0, 0, time.UTC)

	t.Run("regular snapshot", func(t *testing.T) {
		payload, err := repository.SeasonDocumentPayload(newDataset(2025), now)
		gt.NoError(t, err).Required()

		ds, err := model.DecodeSeasonDataset([]byte(payload))
		gt.NoError(t, err).Required()
		gt.Equal(t, ds.Season, types.Season(2025))
	})

	t.Run("oversized snapshot", func(t *testing.T) {
		ds := newDataset(2025)
		name := strings.Repeat("x", 100)
		for i := 0; i < 10000; i++ {
			ds.PlayerStats.QB = append(ds.PlayerStats.QB, model.QBStat{
				PlayerBase: model.PlayerBase{Player: name, EPAPerPlay: 0.1, TotalEPA: 1},
				Plays:      1,
				Attempts:   1,
			})
		}

		_, err := repository.SeasonDocumentPayload(ds, now)
		gt.True(t, errors.Is(err, model.ErrSnapshotTooLarge))
	})
}

func TestDatasetFileName(t *testing.T) {
	gt.Equal(t, repository.DatasetFileName(2025), "nfl_2025.json")
}

func TestHTTP(t *testing.T) {
	data, err := newDataset(2025).Encode()
	gt.NoError(t, err).Required()

	var requested []string
	var mu sync.Mutex
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		requested = append(requested, r.URL.Path)
		mu.Unlock()

		switch r.URL.Path {
		case "/data/nfl_2025.json":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write(data)
		case "/data/nfl_2022.json":
			_, _ = w.Write([]byte(`{"season": "2022"}`))
		case "/data/nfl_2021.json":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	source, err := repository.NewHTTP(srv.URL+"/", repository.WithHTTPClient(srv.Client()))
	gt.NoError(t, err).Required()
	gt.Equal(t, source.URL(2025), srv.URL+"/data/nfl_2025.json")

	t.Run("load", func(t *testing.T) {
		ds, err := source.Load(testContext(), 2025)
		gt.NoError(t, err).Required()
		gt.Equal(t, ds.Season, types.Season(2025))
		gt.Equal(t, ds.TeamStats[1].Team, types.TeamCode("NYJ"))
	})

	t.Run("not published", func(t *testing.T) {
		_, err := source.Load(testContext(), 2019)
		gt.True(t, errors.Is(err, model.ErrSeasonNotFound))
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := source.Load(testContext(), 2022)
		gt.True(t, errors.Is(err, model.ErrInvalidDataset))
	})

	t.Run("server error", func(t *testing.T) {
		_, err := source.Load(testContext(), 2021)
		gt.Error(t, err)
		gt.False(t, errors.Is(err, model.ErrSeasonNotFound))
		gt.False(t, errors.Is(err, model.ErrInvalidDataset))
	})

	t.Run("oversized snapshot", func(t *testing.T) {
		limited, err := repository.NewHTTP(srv.URL,
			repository.WithHTTPClient(srv.Client()),
			repository.WithMaxSnapshotSize(int64(len(data)-1)),
		)
		gt.NoError(t, err).Required()

		_, err = limited.Load(testContext(), 2025)
		gt.True(t, errors.Is(err, model.ErrSnapshotTooLarge))
		gt.False(t, errors.Is(err, model.ErrInvalidDataset))
	})

	t.Run("snapshot at size limit", func(t *testing.T) {
		exact, err := repository.NewHTTP(srv.URL,
			repository.WithHTTPClient(srv.Client()),
			repository.WithMaxSnapshotSize(int64(len(data))),
		)
		gt.NoError(t, err).Required()

		ds, err := exact.Load(testContext(), 2025)
		gt.NoError(t, err).Required()
		gt.Equal(t, ds.Season, types.Season(2025))
	})

	t.Run("invalid base URL", func(t *testing.T) {
		_, err := repository.NewHTTP("ftp://example.com")
		gt.Error(t, err)
	})
}

func TestCache(t *testing.T) {
	var calls atomic.Int32
	source := &mocks.DatasetSourceMock{
		LoadFunc: func(ctx context.Context, season types.Season) (*model.SeasonDataset, error) {
			calls.Add(1)
			if season == 2019 {
				return nil, model.ErrSeasonNotFound
			}
			return newDataset(season), nil
		},
	}

	cache := repository.NewCache(source, 2, time.Minute)
	ctx := testContext()

	t.Run("hit after miss", func(t *testing.T) {
		first, err := cache.Load(ctx, 2025)
		gt.NoError(t, err).Required()
		second, err := cache.Load(ctx, 2025)
		gt.NoError(t, err).Required()

		gt.True(t, first == second)
		gt.Equal(t, calls.Load(), int32(1))
	})

	t.Run("failures are not cached", func(t *testing.T) {
		before := calls.Load()
		_, err := cache.Load(ctx, 2019)
		gt.True(t, errors.Is(err, model.ErrSeasonNotFound))
		_, err = cache.Load(ctx, 2019)
		gt.Error(t, err)
		gt.Equal(t, calls.Load(), before+2)
	})

	t.Run("evicts least recently used", func(t *testing.T) {
		cache.Purge()
		_, _ = cache.Load(ctx, 2025)
		_, _ = cache.Load(ctx, 2024)
		_, _ = cache.Load(ctx, 2023)
		gt.Equal(t, cache.Len(), 2)
	})

	t.Run("put writes through", func(t *testing.T) {
		store := repository.NewMemory()
		cached := repository.NewCache(store, 4, time.Minute)
		gt.NoError(t, cached.Put(ctx, newDataset(2020))).Required()

		ds, err := store.Load(ctx, 2020)
		gt.NoError(t, err).Required()
		gt.Equal(t, ds.Season, types.Season(2020))
		gt.Equal(t, cached.Len(), 1)
	})
}

func TestCache_SharedMiss(t *testing.T) {
	release := make(chan struct{})
	var calls atomic.Int32
	source := &mocks.DatasetSourceMock{
		LoadFunc: func(ctx context.Context, season types.Season) (*model.SeasonDataset, error) {
			calls.Add(1)
			<-release
			return newDataset(season), nil
		},
	}
	cache := repository.NewCache(source, 4, time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ds, err := cache.Load(testContext(), 2025)
			gt.NoError(t, err)
			gt.NotNil(t, ds)
		}()
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	gt.Equal(t, calls.Load(), int32(1))
}

func TestCache_AbandonedWait(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	source := &mocks.DatasetSourceMock{
		LoadFunc: func(ctx context.Context, season types.Season) (*model.SeasonDataset, error) {
			<-release
			return newDataset(season), nil
		},
	}
	cache := repository.NewCache(source, 4, time.Minute)

	ctx, cancel := context.WithCancel(testContext())
	cancel()

	_, err := cache.Load(ctx, 2025)
	gt.True(t, errors.Is(err, context.Canceled))
}

func TestFirestore(t *testing.T) {
	projectID := os.Getenv("TEST_FIRESTORE_PROJECT")
	databaseID := os.Getenv("TEST_FIRESTORE_DATABASE")

	if projectID == "" || databaseID == "" {
		t.Skip("Skipping Firestore test: TEST_FIRESTORE_PROJECT and TEST_FIRESTORE_DATABASE must be set")
	}

	testDatasetStore(t, func(t *testing.T) interfaces.DatasetStore {
		store, err := repository.NewFirestore(testContext(), projectID, databaseID)
		gt.NoError(t, err).Required()
		t.Cleanup(func() { _ = store.Close() })
		return store
	})
}

func TestRedis(t *testing.T) {
	redisURL := os.Getenv("TEST_REDIS_URL")
	if redisURL == "" {
		t.Skip("Skipping Redis test: TEST_REDIS_URL must be set")
	}

	testDatasetStore(t, func(t *testing.T) interfaces.DatasetStore {
		store, err := repository.NewRedis(testContext(), redisURL, repository.NewMemory(), time.Minute)
		gt.NoError(t, err).Required()
		t.Cleanup(func() { _ = store.Close() })
		return store
	})

	t.Run("serves from cache", func(t *testing.T) {
		var calls atomic.Int32
		source := &mocks.DatasetSourceMock{
			LoadFunc: func(ctx context.Context, season types.Season) (*model.SeasonDataset, error) {
				calls.Add(1)
				return newDataset(season), nil
			},
		}
		store, err := repository.NewRedis(testContext(), redisURL, source, time.Minute)
		gt.NoError(t, err).Required()
		defer store.Close()

		season := types.Season(1700 + time.Now().Nanosecond()%90)
		_, err = store.Load(testContext(), season)
		gt.NoError(t, err).Required()
		ds, err := store.Load(testContext(), season)
		gt.NoError(t, err).Required()

		gt.Equal(t, ds.Season, season)
		gt.Equal(t, calls.Load(), int32(1))
	})

	gt.Equal(t, repository.RedisKey(2025), "gridiron:dataset:2025")
}
