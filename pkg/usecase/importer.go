package usecase

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/gridiron/pkg/domain/interfaces"
	"github.com/secmon-lab/gridiron/pkg/domain/model"
	"github.com/secmon-lab/gridiron/pkg/domain/types"
	"golang.org/x/sync/errgroup"
)

var snapshotFilePattern = regexp.MustCompile(`^nfl_(\d{4})\.json$`)

// maxParallelDecode bounds concurrent snapshot validation
const maxParallelDecode = 4

// Importer validates season snapshots and writes them to a store
type Importer struct {
	store interfaces.DatasetStore
}

// NewImporter creates a new Importer use case
func NewImporter(store interfaces.DatasetStore) *Importer {
	return &Importer{store: store}
}

// ImportDirectory stores every nfl_<season>.json in dir. All files are
// validated before anything is written; one invalid file aborts the import.
// It returns the imported seasons, newest first.
func (i *Importer) ImportDirectory(ctx context.Context, dir string) ([]types.Season, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read import directory", goerr.V("dir", dir))
	}

	type snapshot struct {
		season types.Season
		path   string
	}
	var files []snapshot
	for _, e := range entries {
		m := snapshotFilePattern.FindStringSubmatch(e.Name())
		if e.IsDir() || m == nil {
			continue
		}
		year, _ := strconv.Atoi(m[1])
		files = append(files, snapshot{season: types.Season(year), path: filepath.Join(dir, e.Name())})
	}
	if len(files) == 0 {
		return nil, goerr.New("no season snapshot found", goerr.V("dir", dir))
	}
	sort.Slice(files, func(a, b int) bool { return files[a].season > files[b].season })

	datasets := make([]*model.SeasonDataset, len(files))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(maxParallelDecode)
	for idx, f := range files {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(f.path)
			if err != nil {
				return goerr.Wrap(err, "failed to read snapshot", goerr.V("path", f.path))
			}
			ds, err := model.DecodeSeasonDataset(data)
			if err != nil {
				return goerr.Wrap(err, "invalid snapshot", goerr.V("path", f.path))
			}
			if ds.Season != f.season {
				return goerr.Wrap(model.ErrInvalidDataset, "snapshot season does not match file name",
					goerr.V("path", f.path),
					goerr.V("season", ds.Season))
			}
			datasets[idx] = ds
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	logger := ctxlog.From(ctx)
	seasons := make([]types.Season, 0, len(datasets))
	for _, ds := range datasets {
		if err := i.store.Put(ctx, ds); err != nil {
			return seasons, goerr.Wrap(err, "failed to store season", goerr.V("season", ds.Season))
		}
		logger.Info("season imported", "season", ds.Season, "teams", len(ds.TeamStats))
		seasons = append(seasons, ds.Season)
	}

	return seasons, nil
}
