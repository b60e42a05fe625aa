package cli

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/secmon-lab/gridiron/pkg/cli/config"
	"github.com/secmon-lab/gridiron/pkg/domain/types"
	"github.com/secmon-lab/gridiron/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdDigest() *cli.Command {
	var (
		season     string
		slackCfg   config.Slack
		sourceCfg  config.Source
		seasonsCfg config.Seasons
	)

	flags := joinFlags(
		[]cli.Flag{
			&cli.StringFlag{
				Name:        "season",
				Usage:       "Season to summarize (catalog default if not set)",
				Sources:     cli.EnvVars("GRIDIRON_DIGEST_SEASON"),
				Destination: &season,
			},
		},
		slackCfg.Flags(),
		sourceCfg.Flags(),
		seasonsCfg.Flags(),
	)

	return &cli.Command{
		Name:  "digest",
		Usage: "Post the league overview of a season to Slack",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			catalog, err := seasonsCfg.Configure()
			if err != nil {
				return err
			}

			target := catalog.Default
			if season != "" {
				if target, err = types.ParseSeason(season); err != nil {
					return err
				}
			}

			slackClient, err := slackCfg.Configure()
			if err != nil {
				return err
			}

			backend, err := sourceCfg.Configure(ctx)
			if err != nil {
				return err
			}
			defer func() {
				if err := backend.Close(); err != nil {
					logger.Warn("failed to close data source", slog.Any("error", err))
				}
			}()

			dashboard := usecase.NewDashboard(backend.Source, catalog)
			digest := usecase.NewDigest(dashboard, slackClient, slackCfg.DashboardURL)

			logger.Info("Publishing season digest",
				slog.Any("season", target),
				slog.Any("slack", slackCfg),
			)
			return digest.Publish(ctx, target, slackCfg.Channel)
		},
	}
}
