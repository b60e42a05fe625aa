package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/gridiron/pkg/cli/config"
	controller "github.com/secmon-lab/gridiron/pkg/controller/http"
	"github.com/secmon-lab/gridiron/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg  config.Server
		sourceCfg  config.Source
		seasonsCfg config.Seasons
	)

	flags := joinFlags(
		serverCfg.Flags(),
		sourceCfg.Flags(),
		seasonsCfg.Flags(),
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Start HTTP server",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting gridiron server",
				slog.Any("server", serverCfg),
				slog.Any("source", sourceCfg),
				slog.Any("seasons", seasonsCfg),
			)

			if err := serverCfg.Validate(); err != nil {
				return err
			}

			catalog, err := seasonsCfg.Configure()
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
			workspaces := usecase.NewWorkspaces(ctx, backend.Source, catalog,
				serverCfg.WorkspaceOptions()...,
			)

			server, err := controller.NewServer(
				ctx,
				serverCfg.Addr,
				dashboard,
				workspaces,
				serverCfg.ServerOptions()...,
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
