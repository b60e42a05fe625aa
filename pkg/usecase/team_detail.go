package usecase

import (
	"fmt"

	"github.com/secmon-lab/gridiron/pkg/domain/model"
	"github.com/secmon-lab/gridiron/pkg/domain/types"
)

// TeamRank returns the 1-based position of code in the league sorted by
// EPA/play, or 0 when the team has no record. The rank never depends on the
// order of the source array.
func TeamRank(teams []model.TeamStat, code types.TeamCode) int {
	for i, t := range SortTeams(teams, types.SortByEPAPerPlay) {
		if t.Team == code {
			return i + 1
		}
	}
	return 0
}

// NoTeamDataMessage returns the empty-state text of a team without data
func NoTeamDataMessage(code types.TeamCode) string {
	return fmt.Sprintf("No data available for %s", code)
}

// BuildTeamDetail shapes the analysis page of team in ds. A team without a
// record in the season yields a view with Found false, not an error.
func BuildTeamDetail(ds *model.SeasonDataset, team types.TeamCode) *model.TeamDetailView {
	if team == "" {
		team = model.DefaultTeam
	}

	view := &model.TeamDetailView{
		Season:  ds.Season,
		Team:    team,
		Teams:   model.Teams,
		Colors:  model.ColorsOf(team),
		LogoURL: model.LogoURL(team),
	}

	stat := ds.FindTeam(team)
	if stat == nil {
		view.Message = NoTeamDataMessage(team)
		return view
	}

	avg := model.MeanEPAPerPlay(ds.TeamStats)
	rank := TeamRank(ds.TeamStats, team)

	view.Found = true
	view.Stat = stat
	view.Rank = rank
	view.TopFive = rank <= 5
	view.TopTen = rank <= 10
	view.Tier = model.TierOf(stat.EPAPerPlay)
	view.LeagueAverage = avg
	view.VersusAverage = model.VersusAverage(stat.EPAPerPlay, avg)
	view.ProgressWidth = model.ProgressWidth(stat.EPAPerPlay)
	view.Summary = fmt.Sprintf(
		"%s ranks #%d in offensive efficiency with an EPA per play of %s. They have run %s plays this season for a total EPA of %s.",
		team, rank, model.FormatEPA(stat.EPAPerPlay), model.FormatCount(stat.Plays.Int()), model.FormatTotal(stat.TotalEPA))
	view.Efficiency = BuildEfficiencyChart(*stat)
	view.Share = BuildShareChart(*stat)
	view.Standings = BuildStandingsChart(ds.TeamStats, team)

	return view
}
