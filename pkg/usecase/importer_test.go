package usecase_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/gridiron/pkg/domain/model"
	"github.com/secmon-lab/gridiron/pkg/domain/types"
	"github.com/secmon-lab/gridiron/pkg/repository"
	"github.com/secmon-lab/gridiron/pkg/usecase"
)

func writeSnapshot(t *testing.T, dir, name string, ds *model.SeasonDataset) {
	t.Helper()
	data, err := ds.Encode()
	gt.NoError(t, err).Required()
	gt.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o600)).Required()
}

func TestImporter_ImportDirectory(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeSnapshot(t, dir, "nfl_2024.json", newDataset(2024, team("BUF", 0.05, 21, 420)))
	writeSnapshot(t, dir, "nfl_2025.json", newDataset(2025, team("KC", 0.12, 50, 400)))
	gt.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("notes"), 0o600)).Required()
	gt.NoError(t, os.Mkdir(filepath.Join(dir, "nfl_2023.json"), 0o700)).Required()

	store := repository.NewMemory()
	seasons, err := usecase.NewImporter(store).ImportDirectory(ctx, dir)
	gt.NoError(t, err).Required()
	gt.Equal(t, seasons, []types.Season{2025, 2024})

	ds, err := store.Load(ctx, 2024)
	gt.NoError(t, err).Required()
	gt.Equal(t, ds.TeamStats[0].Team, types.TeamCode("BUF"))
}

func TestImporter_InvalidFileAbortsImport(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeSnapshot(t, dir, "nfl_2025.json", newDataset(2025, team("KC", 0.12, 50, 400)))
	gt.NoError(t, os.WriteFile(filepath.Join(dir, "nfl_2024.json"), []byte(`{"season": 2024}`), 0o600)).Required()

	store := repository.NewMemory()
	_, err := usecase.NewImporter(store).ImportDirectory(ctx, dir)
	gt.Error(t, err)
	gt.True(t, errors.Is(err, model.ErrInvalidDataset))

	_, err = store.Load(ctx, 2025)
	gt.True(t, errors.Is(err, model.ErrSeasonNotFound))
}

func TestImporter_SeasonMismatch(t *testing.T) {
	dir := t.TempDir()
	writeSnapshot(t, dir, "nfl_2024.json", newDataset(2025, team("KC", 0.12, 50, 400)))

	_, err := usecase.NewImporter(repository.NewMemory()).ImportDirectory(context.Background(), dir)
	gt.Error(t, err)
	gt.True(t, errors.Is(err, model.ErrInvalidDataset))
}

func TestImporter_EmptyDirectory(t *testing.T) {
	_, err := usecase.NewImporter(repository.NewMemory()).ImportDirectory(context.Background(), t.TempDir())
	gt.Error(t, err)

	_, err = usecase.NewImporter(repository.NewMemory()).ImportDirectory(context.Background(), filepath.Join(t.TempDir(), "missing"))
	gt.Error(t, err)
}
