package slack_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/gridiron/pkg/domain/model"
	"github.com/secmon-lab/gridiron/pkg/domain/types"
	slackSvc "github.com/secmon-lab/gridiron/pkg/service/slack"
	"github.com/slack-go/slack"
)

func digestView(teams int) *model.OverviewView {
	view := &model.OverviewView{
		Season:          2025,
		TotalPlays:      12345,
		TotalTouchdowns: 41,
		PassRushRatio:   model.Divide(700, 500),
		Insights:        []string{"KC leading league in EPA/play at 0.120"},
		LastUpdated:     "2025-11-03T09:15:42",
	}
	for i := 0; i < teams; i++ {
		epa := 0.12 - float64(i)*0.04
		view.Teams = append(view.Teams, model.TeamRow{
			Rank:       i + 1,
			Team:       model.Teams[i],
			EPAPerPlay: epa,
			TotalEPA:   epa * 400,
			Tier:       model.TierOf(epa),
		})
	}
	if teams > 0 {
		view.Leader = &view.Teams[0]
	}
	return view
}

func TestGetTierEmoji(t *testing.T) {
	gt.Equal(t, slackSvc.GetTierEmoji(types.TierStrong), "🟢")
	gt.Equal(t, slackSvc.GetTierEmoji(types.TierModerate), "🟡")
	gt.Equal(t, slackSvc.GetTierEmoji(types.TierWeak), "🔴")
}

func TestDigestText(t *testing.T) {
	gt.Equal(t, slackSvc.DigestText(digestView(2)),
		"NFL 2025 season digest: ARI leads the league at 0.120 EPA/play")
	gt.Equal(t, slackSvc.DigestText(digestView(0)), "NFL 2025 season digest")
}

func TestBuildDigestBlocks(t *testing.T) {
	blocks := slackSvc.BuildDigestBlocks(digestView(8), "https://gridiron.example.com/")

	gt.Equal(t, len(blocks), 7)
	gt.Equal(t, blocks[0].BlockType(), slack.MBTHeader)
	gt.Equal(t, blocks[3].BlockType(), slack.MBTDivider)
	gt.Equal(t, blocks[5].BlockType(), slack.MBTAction)
	gt.Equal(t, blocks[6].BlockType(), slack.MBTContext)

	header := blocks[0].(*slack.HeaderBlock)
	gt.Equal(t, header.Text.Text, "🏈 NFL 2025 Season Digest")

	top := blocks[4].(*slack.SectionBlock)
	lines := strings.Split(top.Text.Text, "\n")
	gt.Equal(t, lines[0], "*Top 5 by EPA/play*")
	gt.Equal(t, len(lines), 1+slackSvc.DigestTopTeams)
	gt.Equal(t, lines[1], "1. 🟢 *ARI* 0.120 EPA/play (48.0 total)")

	fields := blocks[2].(*slack.SectionBlock).Fields
	gt.Equal(t, fields[0].Text, "*Total Plays*\n12,345")
	gt.Equal(t, fields[3].Text, "*Pass/Rush*\n1.40")

	raw, err := json.Marshal(blocks)
	gt.NoError(t, err).Required()
	gt.True(t, strings.Contains(string(raw), "https://gridiron.example.com/?season=2025"))
	gt.True(t, strings.Contains(string(raw), "Last updated 2025-11-03T09:15:42"))
}

func TestBuildDigestBlocks_Minimal(t *testing.T) {
	view := digestView(0)
	view.Insights = nil
	view.LastUpdated = ""

	blocks := slackSvc.BuildDigestBlocks(view, "")
	gt.Equal(t, len(blocks), 3)
	gt.Equal(t, blocks[1].BlockType(), slack.MBTSection)

	footer := blocks[2].(*slack.ContextBlock)
	text := footer.ContextElements.Elements[0].(*slack.TextBlockObject)
	gt.Equal(t, text.Text, "Data: nflverse · EPA: Expected Points Added")
}
