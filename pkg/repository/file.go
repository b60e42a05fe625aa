package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/gridiron/pkg/domain/model"
	"github.com/secmon-lab/gridiron/pkg/domain/types"
)

// DatasetFileName returns the snapshot file name of season, "nfl_<season>.json"
func DatasetFileName(season types.Season) string {
	return fmt.Sprintf("nfl_%d.json", season)
}

// Directory implements DatasetStore over a directory of season snapshots
type Directory struct {
	dir string
}

// NewDirectory creates a store reading <dir>/nfl_<season>.json
func NewDirectory(dir string) (*Directory, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to stat data directory", goerr.V("dir", dir))
	}
	if !info.IsDir() {
		return nil, goerr.New("data path is not a directory", goerr.V("dir", dir))
	}
	return &Directory{dir: dir}, nil
}

// Load reads and validates the snapshot of season
func (d *Directory) Load(ctx context.Context, season types.Season) (*model.SeasonDataset, error) {
	path := filepath.Join(d.dir, DatasetFileName(season))

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, goerr.Wrap(model.ErrSeasonNotFound, "snapshot file does not exist",
				goerr.V("season", season),
				goerr.V("path", path))
		}
		return nil, goerr.Wrap(err, "failed to read snapshot file", goerr.V("path", path))
	}

	return decodeSeason(data, season)
}

// Put writes ds as <dir>/nfl_<season>.json
func (d *Directory) Put(ctx context.Context, ds *model.SeasonDataset) error {
	if ds == nil {
		return goerr.New("dataset is nil")
	}

	data, err := ds.Encode()
	if err != nil {
		return err
	}

	path := filepath.Join(d.dir, DatasetFileName(ds.Season))
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return goerr.Wrap(err, "failed to write snapshot file", goerr.V("path", tmp))
	}
	if err := os.Rename(tmp, path); err != nil {
		return goerr.Wrap(err, "failed to replace snapshot file", goerr.V("path", path))
	}
	return nil
}

// Close does nothing for directory store
func (d *Directory) Close() error {
	return nil
}

// decodeSeason decodes data and checks that it belongs to season
func decodeSeason(data []byte, season types.Season) (*model.SeasonDataset, error) {
	ds, err := model.DecodeSeasonDataset(data)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to decode season snapshot", goerr.V("season", season))
	}
	if ds.Season != season {
		return nil, goerr.Wrap(model.ErrInvalidDataset, "snapshot belongs to another season",
			goerr.V("season", season),
			goerr.V("path", "season"),
			goerr.V("actual", ds.Season))
	}
	return ds, nil
}
