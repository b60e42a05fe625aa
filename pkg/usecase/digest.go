package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/gridiron/pkg/domain/interfaces"
	"github.com/secmon-lab/gridiron/pkg/domain/types"
	slackSvc "github.com/secmon-lab/gridiron/pkg/service/slack"
	"github.com/slack-go/slack"
)

// Digest posts a season overview to a Slack channel
type Digest struct {
	dashboard    *Dashboard
	slackClient  interfaces.SlackClient
	dashboardURL string
}

// NewDigest creates a new Digest use case. dashboardURL may be empty.
func NewDigest(dashboard *Dashboard, slackClient interfaces.SlackClient, dashboardURL string) *Digest {
	return &Digest{
		dashboard:    dashboard,
		slackClient:  slackClient,
		dashboardURL: dashboardURL,
	}
}

// Publish builds the overview of season and posts it to channelID
func (d *Digest) Publish(ctx context.Context, season types.Season, channelID string) error {
	if channelID == "" {
		return goerr.New("slack channel is required")
	}

	view, err := d.dashboard.Overview(ctx, season, types.SortByEPAPerPlay)
	if err != nil {
		return err
	}

	channel, ts, err := d.slackClient.PostMessage(ctx, channelID,
		slack.MsgOptionText(slackSvc.DigestText(view), false),
		slack.MsgOptionBlocks(slackSvc.BuildDigestBlocks(view, d.dashboardURL)...),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to post digest", goerr.V("season", season))
	}

	ctxlog.From(ctx).Info("digest posted",
		"season", season,
		"channel", channel,
		"timestamp", ts,
	)
	return nil
}
