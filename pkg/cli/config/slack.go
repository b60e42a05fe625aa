package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/gridiron/pkg/domain/interfaces"
	slackSvc "github.com/secmon-lab/gridiron/pkg/service/slack"
	"github.com/urfave/cli/v3"
)

// Slack holds Slack configuration for the season digest
type Slack struct {
	OAuthToken   string
	Channel      string
	DashboardURL string
}

// Flags returns CLI flags for Slack configuration
func (s *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-oauth-token",
			Usage:       "Slack OAuth token for API access",
			Category:    "Slack",
			Sources:     cli.EnvVars("GRIDIRON_SLACK_OAUTH_TOKEN"),
			Destination: &s.OAuthToken,
		},
		&cli.StringFlag{
			Name:        "slack-channel",
			Usage:       "Slack channel ID the digest is posted to",
			Category:    "Slack",
			Sources:     cli.EnvVars("GRIDIRON_SLACK_CHANNEL"),
			Destination: &s.Channel,
		},
		&cli.StringFlag{
			Name:        "dashboard-url",
			Usage:       "Public dashboard URL linked from the digest",
			Category:    "Slack",
			Sources:     cli.EnvVars("GRIDIRON_DASHBOARD_URL"),
			Destination: &s.DashboardURL,
		},
	}
}

// Configure creates the Slack client
func (s *Slack) Configure() (interfaces.SlackClient, error) {
	if !s.IsConfigured() {
		return nil, goerr.New("Slack is not configured. Please provide GRIDIRON_SLACK_OAUTH_TOKEN and GRIDIRON_SLACK_CHANNEL")
	}
	return slackSvc.New(s.OAuthToken), nil
}

// IsConfigured checks if Slack is configured for posting digests
func (s *Slack) IsConfigured() bool {
	return s.OAuthToken != "" && s.Channel != ""
}

// LogValue returns structured log value
func (s Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("has_oauth_token", s.OAuthToken != ""),
		slog.String("channel", s.Channel),
		slog.String("dashboard_url", s.DashboardURL),
	)
}
