package usecase

import (
	"fmt"
	"sort"

	"github.com/secmon-lab/gridiron/pkg/domain/model"
	"github.com/secmon-lab/gridiron/pkg/domain/types"
)

// SortTeams returns a copy of teams sorted descending by key. Teams with
// equal values keep their source order.
func SortTeams(teams []model.TeamStat, key types.SortKey) []model.TeamStat {
	sorted := make([]model.TeamStat, len(teams))
	copy(sorted, teams)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Metric(key) > sorted[j].Metric(key)
	})
	return sorted
}

// LeagueLeader returns the team with the highest EPA/play, the first one in
// source order on ties, or nil for an empty league
func LeagueLeader(teams []model.TeamStat) *model.TeamStat {
	if len(teams) == 0 {
		return nil
	}
	leader := SortTeams(teams, types.SortByEPAPerPlay)[0]
	return &leader
}

func newTeamRow(rank int, t model.TeamStat) model.TeamRow {
	return model.TeamRow{
		Rank:       rank,
		Team:       t.Team,
		Colors:     model.ColorsOf(t.Team),
		LogoURL:    model.LogoURL(t.Team),
		EPAPerPlay: t.EPAPerPlay,
		TotalEPA:   t.TotalEPA,
		Plays:      t.Plays.Int(),
		Tier:       model.TierOf(t.EPAPerPlay),
	}
}

// BuildOverview shapes the league overview of ds with teams ordered by key
func BuildOverview(ds *model.SeasonDataset, key types.SortKey) *model.OverviewView {
	if !key.IsValid() {
		key = types.SortByEPAPerPlay
	}

	league := ds.LeagueStats
	view := &model.OverviewView{
		Season:          ds.Season,
		Sort:            key,
		TotalPlays:      league.TotalPlays.Int(),
		TotalTouchdowns: league.TotalTouchdowns.Int(),
		PassingPlays:    league.PassingPlays.Int(),
		RushingPlays:    league.RushingPlays.Int(),
		PassRushRatio:   model.Divide(league.PassingPlays.Int(), league.RushingPlays.Int()),
		LastUpdated:     ds.LastUpdated,
	}

	sorted := SortTeams(ds.TeamStats, key)
	view.Teams = make([]model.TeamRow, len(sorted))
	for i, t := range sorted {
		view.Teams[i] = newTeamRow(i+1, t)
	}

	if leader := LeagueLeader(ds.TeamStats); leader != nil {
		row := newTeamRow(1, *leader)
		view.Leader = &row
		view.Insights = append(view.Insights,
			fmt.Sprintf("%s leading league in EPA/play at %s", leader.Team, model.FormatEPA(leader.EPAPerPlay)))
	}
	view.Insights = append(view.Insights,
		fmt.Sprintf("Total of %s plays across all teams", model.FormatCount(view.TotalPlays)),
		fmt.Sprintf("Pass/Rush ratio: %s", ratioText(view.PassRushRatio)),
	)

	return view
}

func ratioText(r model.Ratio) string {
	if !r.Valid {
		return model.Fallback
	}
	return r.Format(2) + ":1"
}
