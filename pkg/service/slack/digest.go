package slack

import (
	"fmt"
	"strings"

	"github.com/secmon-lab/gridiron/pkg/domain/model"
	"github.com/secmon-lab/gridiron/pkg/domain/types"
	"github.com/slack-go/slack"
)

// DigestTopTeams is the number of teams listed in a digest
const DigestTopTeams = 5

// GetTierEmoji returns the emoji of an EPA/play tier
func GetTierEmoji(tier types.Tier) string {
	switch tier {
	case types.TierStrong:
		return "🟢"
	case types.TierModerate:
		return "🟡"
	default:
		return "🔴"
	}
}

// DigestText returns the plain-text fallback of a digest
func DigestText(view *model.OverviewView) string {
	if view.Leader == nil {
		return fmt.Sprintf("NFL %d season digest", view.Season)
	}
	return fmt.Sprintf("NFL %d season digest: %s leads the league at %s EPA/play",
		view.Season, view.Leader.Team, model.FormatEPA(view.Leader.EPAPerPlay))
}

// tierCounts counts teams per tier
func tierCounts(rows []model.TeamRow) map[types.Tier]int {
	counts := make(map[types.Tier]int)
	for _, r := range rows {
		counts[r.Tier]++
	}
	return counts
}

// BuildDigestBlocks renders a league overview as a Slack message. The view
// must be ordered by EPA/play. dashboardURL adds a link button when set.
func BuildDigestBlocks(view *model.OverviewView, dashboardURL string) []slack.Block {
	blocks := []slack.Block{
		slack.NewHeaderBlock(
			slack.NewTextBlockObject(slack.PlainTextType,
				fmt.Sprintf("🏈 NFL %d Season Digest", view.Season), true, false),
		),
	}

	var headline []string
	for _, insight := range view.Insights {
		headline = append(headline, "• "+insight)
	}
	if len(headline) > 0 {
		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, strings.Join(headline, "\n"), false, false),
			nil, nil,
		))
	}

	counts := tierCounts(view.Teams)
	fields := []*slack.TextBlockObject{
		slack.NewTextBlockObject(slack.MarkdownType,
			fmt.Sprintf("*Total Plays*\n%s", model.FormatCount(view.TotalPlays)), false, false),
		slack.NewTextBlockObject(slack.MarkdownType,
			fmt.Sprintf("*Total Touchdowns*\n%s", model.FormatCount(view.TotalTouchdowns)), false, false),
		slack.NewTextBlockObject(slack.MarkdownType,
			fmt.Sprintf("*Tiers*\n%s %d · %s %d · %s %d",
				GetTierEmoji(types.TierStrong), counts[types.TierStrong],
				GetTierEmoji(types.TierModerate), counts[types.TierModerate],
				GetTierEmoji(types.TierWeak), counts[types.TierWeak]), false, false),
		slack.NewTextBlockObject(slack.MarkdownType,
			fmt.Sprintf("*Pass/Rush*\n%s", view.PassRushRatio.Format(2)), false, false),
	}
	blocks = append(blocks, slack.NewSectionBlock(nil, fields, nil))

	if len(view.Teams) > 0 {
		var lines []string
		for i, row := range view.Teams {
			if i >= DigestTopTeams {
				break
			}
			lines = append(lines, fmt.Sprintf("%d. %s *%s* %s EPA/play (%s total)",
				row.Rank, GetTierEmoji(row.Tier), row.Team,
				model.FormatEPA(row.EPAPerPlay), model.FormatTotal(row.TotalEPA)))
		}
		blocks = append(blocks,
			slack.NewDividerBlock(),
			slack.NewSectionBlock(
				slack.NewTextBlockObject(slack.MarkdownType,
					fmt.Sprintf("*Top %d by EPA/play*\n%s", len(lines), strings.Join(lines, "\n")), false, false),
				nil, nil,
			),
		)
	}

	if dashboardURL != "" {
		button := slack.NewButtonBlockElement("open_dashboard", view.Season.String(),
			slack.NewTextBlockObject(slack.PlainTextType, "Open dashboard", false, false))
		button.URL = fmt.Sprintf("%s/?season=%d", strings.TrimSuffix(dashboardURL, "/"), view.Season)
		blocks = append(blocks, slack.NewActionBlock("digest_actions", button))
	}

	footer := "Data: nflverse · EPA: Expected Points Added"
	if view.LastUpdated != "" {
		footer = fmt.Sprintf("%s · Last updated %s", footer, view.LastUpdated)
	}
	blocks = append(blocks, slack.NewContextBlock("digest_footer",
		slack.NewTextBlockObject(slack.MarkdownType, footer, false, false)))

	return blocks
}
