package cli

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/gridiron/pkg/cli/config"
	"github.com/secmon-lab/gridiron/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdImport() *cli.Command {
	var (
		dir       string
		sourceCfg config.Source
	)

	flags := joinFlags(
		[]cli.Flag{
			&cli.StringFlag{
				Name:        "dir",
				Usage:       "Directory of nfl_<season>.json snapshots to import",
				Value:       "./data",
				Destination: &dir,
			},
		},
		sourceCfg.Flags(),
	)

	return &cli.Command{
		Name:  "import",
		Usage: "Validate season snapshots and store them in the configured store",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			backend, err := sourceCfg.Configure(ctx)
			if err != nil {
				return err
			}
			defer func() {
				if err := backend.Close(); err != nil {
					logger.Warn("failed to close data source", slog.Any("error", err))
				}
			}()

			if backend.Store == nil {
				return goerr.New("no writable store configured. Please set firestore-project, data-dir or redis-url")
			}

			imported, err := usecase.NewImporter(backend.Store).ImportDirectory(ctx, dir)
			if err != nil {
				return err
			}

			logger.Info("Import complete",
				slog.String("dir", dir),
				slog.Any("seasons", imported),
			)
			return nil
		},
	}
}
