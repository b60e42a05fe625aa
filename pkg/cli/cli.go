package cli

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/gridiron/pkg/cli/config"
	"github.com/urfave/cli/v3"
)

// EnvFileVar names the variable pointing at an alternative .env file
const EnvFileVar = "GRIDIRON_ENV_FILE"

// Run runs the CLI application
func Run(ctx context.Context, args []string) error {
	// Flag sources are resolved while parsing, so .env must be loaded first
	if err := loadEnvFile(os.Getenv(EnvFileVar)); err != nil {
		return err
	}

	var loggerCfg config.Logger

	app := &cli.Command{
		Name:    "gridiron",
		Usage:   "NFL EPA analytics dashboard",
		Version: "0.1.0",
		Flags:   loggerCfg.Flags(),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger, err := loggerCfg.Configure()
			if err != nil {
				return nil, err
			}

			slog.SetDefault(logger)
			ctx = ctxlog.With(ctx, logger)
			return ctx, nil
		},
		Commands: []*cli.Command{
			cmdServe(),
			cmdDigest(),
			cmdImport(),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		return goerr.Wrap(err, "CLI execution failed")
	}

	return nil
}

// loadEnvFile loads path, or ./.env when path is empty and the file exists.
// Variables already set in the environment win.
func loadEnvFile(path string) error {
	if path == "" {
		path = ".env"
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return nil
		}
	}

	if err := godotenv.Load(path); err != nil {
		return goerr.Wrap(err, "failed to load env file", goerr.V("path", path))
	}
	return nil
}

// joinFlags concatenates the flag groups of the config structs a command uses
func joinFlags(groups ...[]cli.Flag) []cli.Flag {
	var flags []cli.Flag
	for _, g := range groups {
		flags = append(flags, g...)
	}
	return flags
}
