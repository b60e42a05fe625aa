package config

import (
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	controller "github.com/secmon-lab/gridiron/pkg/controller/http"
	"github.com/secmon-lab/gridiron/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// Server holds server configuration
type Server struct {
	Addr         string
	CORSOrigins  []string
	AwaitTimeout time.Duration
	WorkspaceTTL  time.Duration
	MaxWorkspaces int
}

// Flags returns CLI flags for Server configuration
func (s *Server) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Server address",
			Value:       "localhost:8080",
			Sources:     cli.EnvVars("GRIDIRON_ADDR"),
			Destination: &s.Addr,
		},
		&cli.StringSliceFlag{
			Name:        "cors-origin",
			Usage:       "Allowed CORS origin for /api and /data (repeatable)",
			Value:       []string{"*"},
			Sources:     cli.EnvVars("GRIDIRON_CORS_ORIGIN"),
			Destination: &s.CORSOrigins,
		},
		&cli.DurationFlag{
			Name:        "await-timeout",
			Usage:       "How long a page waits for a pending dataset before rendering the loading state",
			Value:       controller.DefaultAwaitTimeout,
			Sources:     cli.EnvVars("GRIDIRON_AWAIT_TIMEOUT"),
			Destination: &s.AwaitTimeout,
		},
		&cli.DurationFlag{
			Name:        "workspace-ttl",
			Usage:       "Idle lifetime of a browser workspace",
			Value:       usecase.DefaultWorkspaceTTL,
			Sources:     cli.EnvVars("GRIDIRON_WORKSPACE_TTL"),
			Destination: &s.WorkspaceTTL,
		},
		&cli.IntFlag{
			Name:        "max-workspaces",
			Usage:       "Maximum number of live browser workspaces; the least recently used is evicted beyond it",
			Value:       usecase.DefaultMaxWorkspaces,
			Sources:     cli.EnvVars("GRIDIRON_MAX_WORKSPACES"),
			Destination: &s.MaxWorkspaces,
		},
	}
}

// Validate validates the server configuration
func (s *Server) Validate() error {
	if s.Addr == "" {
		return goerr.New("server address is required")
	}
	if s.AwaitTimeout < 0 {
		return goerr.New("await timeout must not be negative", goerr.V("await_timeout", s.AwaitTimeout))
	}
	if s.WorkspaceTTL <= 0 {
		return goerr.New("workspace TTL must be positive", goerr.V("workspace_ttl", s.WorkspaceTTL))
	}
	if s.MaxWorkspaces <= 0 {
		return goerr.New("max workspaces must be positive", goerr.V("max_workspaces", s.MaxWorkspaces))
	}
	return nil
}

// ServerOptions returns the controller options derived from the configuration
func (s *Server) ServerOptions() []controller.Option {
	opts := []controller.Option{
		controller.WithAwaitTimeout(s.AwaitTimeout),
	}
	if len(s.CORSOrigins) > 0 {
		opts = append(opts, controller.WithCORSOrigins(s.CORSOrigins))
	}
	return opts
}

// WorkspaceOptions returns the workspace store options derived from the configuration
func (s *Server) WorkspaceOptions() []usecase.WorkspacesOption {
	return []usecase.WorkspacesOption{
		usecase.WithWorkspaceTTL(s.WorkspaceTTL),
		usecase.WithMaxWorkspaces(s.MaxWorkspaces),
	}
}

// LogValue returns structured log value
func (s Server) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("addr", s.Addr),
		slog.Any("cors_origins", s.CORSOrigins),
		slog.Duration("await_timeout", s.AwaitTimeout),
		slog.Duration("workspace_ttl", s.WorkspaceTTL),
		slog.Int("max_workspaces", s.MaxWorkspaces),
	)
}
