package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/gridiron/pkg/domain/interfaces/mocks"
	"github.com/secmon-lab/gridiron/pkg/domain/model"
	"github.com/secmon-lab/gridiron/pkg/domain/types"
	"github.com/secmon-lab/gridiron/pkg/repository"
	"github.com/secmon-lab/gridiron/pkg/usecase"
)

func awaitLoader(t *testing.T, l *usecase.DatasetLoader) usecase.Snapshot {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	snap := l.Await(ctx)
	if snap.State == types.LoadStateLoading {
		t.Fatal("loader did not settle within timeout")
	}
	return snap
}

func TestDatasetLoader(t *testing.T) {
	store := repository.NewMemory(newDataset(2025, team("KC", 0.12, 50, 400)))

	t.Run("idle before first load", func(t *testing.T) {
		l := usecase.NewDatasetLoader(store)
		snap := l.Snapshot()
		gt.Equal(t, snap.State, types.LoadStateIdle)
		gt.False(t, snap.Loaded())

		// Await does not block on idle
		gt.Equal(t, l.Await(context.Background()).State, types.LoadStateIdle)
	})

	t.Run("loads a season", func(t *testing.T) {
		l := usecase.NewDatasetLoader(store)
		l.Load(context.Background(), 2025)

		snap := awaitLoader(t, l)
		gt.Equal(t, snap.State, types.LoadStateLoaded)
		gt.Equal(t, snap.Season, types.Season(2025))
		gt.True(t, snap.Loaded())
		gt.Equal(t, snap.Dataset.TeamStats[0].Team, types.TeamCode("KC"))
		gt.NoError(t, snap.Err)
	})

	t.Run("missing season fails", func(t *testing.T) {
		l := usecase.NewDatasetLoader(store)
		l.Load(context.Background(), 1999)

		snap := awaitLoader(t, l)
		gt.Equal(t, snap.State, types.LoadStateFailed)
		gt.Equal(t, snap.Season, types.Season(1999))
		gt.Nil(t, snap.Dataset)
		gt.True(t, errors.Is(snap.Err, model.ErrSeasonNotFound))
	})
}

func TestDatasetLoader_HungFetchStaysLoading(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	source := &mocks.DatasetSourceMock{
		LoadFunc: func(ctx context.Context, season types.Season) (*model.SeasonDataset, error) {
			<-release
			return newDataset(season), nil
		},
	}

	l := usecase.NewDatasetLoader(source)
	l.Load(context.Background(), 2025)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	snap := l.Await(ctx)
	gt.Equal(t, snap.State, types.LoadStateLoading)
	gt.Equal(t, snap.Season, types.Season(2025))
}

// Changing the season while an older fetch is pending must end with the
// newer season only, even when the older fetch completes last.
func TestDatasetLoader_SeasonChangeDiscardsStaleFetch(t *testing.T) {
	release2025 := make(chan struct{})
	cancelled2025 := make(chan struct{})
	var once sync.Once

	source := &mocks.DatasetSourceMock{
		LoadFunc: func(ctx context.Context, season types.Season) (*model.SeasonDataset, error) {
			if season == 2025 {
				select {
				case <-ctx.Done():
					once.Do(func() { close(cancelled2025) })
				case <-time.After(2 * time.Second):
				}
				// Complete late regardless of cancellation
				<-release2025
				return newDataset(2025, team("KC", 0.12, 50, 400)), nil
			}
			return newDataset(season, team("BUF", 0.05, 21, 420)), nil
		},
	}

	provider := usecase.NewSeasonProvider(2025)
	l := usecase.NewDatasetLoader(source)
	l.Bind(context.Background(), provider)
	gt.Equal(t, l.Snapshot().State, types.LoadStateLoading)

	provider.Set(2024)

	snap := awaitLoader(t, l)
	gt.Equal(t, snap.State, types.LoadStateLoaded)
	gt.Equal(t, snap.Season, types.Season(2024))
	gt.Equal(t, snap.Dataset.Season, types.Season(2024))

	select {
	case <-cancelled2025:
	case <-time.After(time.Second):
		t.Fatal("superseded fetch was not cancelled")
	}

	// Let the stale 2025 fetch complete after 2024 was shown
	close(release2025)
	time.Sleep(50 * time.Millisecond)

	snap = l.Snapshot()
	gt.Equal(t, snap.Season, types.Season(2024))
	gt.Equal(t, snap.Dataset.Season, types.Season(2024))
	gt.Equal(t, snap.Dataset.TeamStats[0].Team, types.TeamCode("BUF"))
	gt.Equal(t, len(source.LoadCalls()), 2)
}

func TestDatasetLoader_StaleFailureIgnored(t *testing.T) {
	release := make(chan struct{})
	source := &mocks.DatasetSourceMock{
		LoadFunc: func(ctx context.Context, season types.Season) (*model.SeasonDataset, error) {
			if season == 2025 {
				<-release
				return nil, goerr.New("upstream unavailable")
			}
			return newDataset(season), nil
		},
	}

	l := usecase.NewDatasetLoader(source)
	l.Load(context.Background(), 2025)
	l.Load(context.Background(), 2023)
	gt.Equal(t, awaitLoader(t, l).Season, types.Season(2023))

	close(release)
	time.Sleep(50 * time.Millisecond)

	snap := l.Snapshot()
	gt.Equal(t, snap.State, types.LoadStateLoaded)
	gt.Equal(t, snap.Season, types.Season(2023))
}

func TestDatasetLoader_Close(t *testing.T) {
	store := repository.NewMemory(newDataset(2025), newDataset(2024))
	provider := usecase.NewSeasonProvider(2025)
	l := usecase.NewDatasetLoader(store)
	l.Bind(context.Background(), provider)
	gt.Equal(t, awaitLoader(t, l).Season, types.Season(2025))

	l.Close()
	provider.Set(2024)

	snap := l.Snapshot()
	gt.Equal(t, snap.State, types.LoadStateLoaded)
	gt.Equal(t, snap.Season, types.Season(2025))
}

func TestDatasetLoader_ConcurrentSeasonChangesFollowProvider(t *testing.T) {
	store := repository.NewMemory(
		newDataset(2025, team("KC", 0.12, 50, 400)),
		newDataset(2024, team("BUF", 0.05, 21, 420)),
		newDataset(2023, team("NYJ", -0.05, -20, 380)),
	)

	for i := 0; i < 200; i++ {
		p := usecase.NewSeasonProvider(2025)
		l := usecase.NewDatasetLoader(store)
		l.Bind(context.Background(), p)

		var wg sync.WaitGroup
		for _, s := range []types.Season{2024, 2023} {
			wg.Add(1)
			go func() {
				defer wg.Done()
				p.Set(s)
			}()
		}
		wg.Wait()

		snap := awaitLoader(t, l)
		gt.Equal(t, snap.Season, p.Season())
		gt.Equal(t, snap.State, types.LoadStateLoaded)
		l.Close()
	}
}
