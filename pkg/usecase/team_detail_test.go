package usecase_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/gridiron/pkg/domain/model"
	"github.com/secmon-lab/gridiron/pkg/domain/types"
	"github.com/secmon-lab/gridiron/pkg/usecase"
)

func TestBuildTeamDetail(t *testing.T) {
	// Source order deliberately differs from the ranking
	ds := newDataset(2025,
		team("NYJ", -0.05, -20, 380),
		team("DAL", 0.04, 16, 400),
		team("KC", 0.12, 50, 1400),
		team("BUF", 0.05, 21, 420),
	)

	view := usecase.BuildTeamDetail(ds, "KC")
	gt.True(t, view.Found)
	gt.Equal(t, view.Rank, 1)
	gt.True(t, view.TopFive)
	gt.True(t, view.TopTen)
	gt.Equal(t, view.Tier, types.TierStrong)
	gt.Equal(t, view.Colors.Primary, "#E31837")
	gt.Equal(t, len(view.Teams), 32)
	gt.Equal(t, view.VersusAverage.FormatSigned(1), "+200.0%")
	gt.Equal(t, view.Summary,
		"KC ranks #1 in offensive efficiency with an EPA per play of 0.120. They have run 1,400 plays this season for a total EPA of 50.0.")

	gt.NotNil(t, view.Efficiency)
	gt.NotNil(t, view.Share)
	gt.NotNil(t, view.Standings)
	gt.Equal(t, len(view.Standings.Bars), 4)

	t.Run("rank uses the sorted league", func(t *testing.T) {
		view := usecase.BuildTeamDetail(ds, "DAL")
		gt.Equal(t, view.Rank, 3)
		gt.Equal(t, view.Tier, types.TierModerate)
	})

	t.Run("team at league average", func(t *testing.T) {
		view := usecase.BuildTeamDetail(ds, "DAL")
		gt.Equal(t, view.VersusAverage.FormatSigned(1), "0.0%")
	})

	t.Run("empty code selects default team", func(t *testing.T) {
		view := usecase.BuildTeamDetail(ds, "")
		gt.Equal(t, view.Team, model.DefaultTeam)
		gt.True(t, view.Found)
	})
}

func TestBuildTeamDetail_MissingTeam(t *testing.T) {
	ds := newDataset(2025, team("KC", 0.12, 50, 400))

	view := usecase.BuildTeamDetail(ds, "DAL")
	gt.False(t, view.Found)
	gt.Equal(t, view.Message, "No data available for DAL")
	gt.Nil(t, view.Stat)
	gt.Nil(t, view.Standings)
	gt.Equal(t, view.Colors.Primary, "#041E42")
}

func TestBuildTeamDetail_TopTenOnly(t *testing.T) {
	var teams []model.TeamStat
	for i, code := range model.Teams[:12] {
		teams = append(teams, team(code, 0.2-float64(i)*0.02, 10, 400))
	}
	ds := newDataset(2025, teams...)

	seventh := model.Teams[6]
	view := usecase.BuildTeamDetail(ds, seventh)
	gt.Equal(t, view.Rank, 7)
	gt.False(t, view.TopFive)
	gt.True(t, view.TopTen)

	last := model.Teams[11]
	view = usecase.BuildTeamDetail(ds, last)
	gt.Equal(t, view.Rank, 12)
	gt.False(t, view.TopTen)
}

func TestBuildTeamDetail_ProgressClamp(t *testing.T) {
	ds := newDataset(2025,
		team("KC", 0.40, 50, 400),
		team("NYJ", -0.10, -30, 300),
	)

	gt.Equal(t, usecase.BuildTeamDetail(ds, "KC").ProgressWidth, 100.0)
	gt.Equal(t, usecase.BuildTeamDetail(ds, "NYJ").ProgressWidth, 0.0)
}

func TestTeamRank(t *testing.T) {
	teams := []model.TeamStat{
		team("NYJ", -0.05, -20, 380),
		team("KC", 0.12, 50, 400),
	}
	gt.Equal(t, usecase.TeamRank(teams, "KC"), 1)
	gt.Equal(t, usecase.TeamRank(teams, "NYJ"), 2)
	gt.Equal(t, usecase.TeamRank(teams, "DAL"), 0)
}
