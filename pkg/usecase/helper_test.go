package usecase_test

import (
	"fmt"

	"github.com/secmon-lab/gridiron/pkg/domain/model"
	"github.com/secmon-lab/gridiron/pkg/domain/types"
)

func team(code types.TeamCode, epa, total float64, plays int) model.TeamStat {
	return model.TeamStat{
		Team:           code,
		EPAPerPlay:     epa,
		TotalEPA:       total,
		Plays:          model.Count(plays),
		PassEPAPerPlay: epa + 0.05,
		PassTotalEPA:   total * 0.7,
		PassPlays:      model.Count(plays * 6 / 10),
		RushEPAPerPlay: epa - 0.05,
		RushTotalEPA:   total * 0.3,
		RushPlays:      model.Count(plays - plays*6/10),
	}
}

func newDataset(season types.Season, teams ...model.TeamStat) *model.SeasonDataset {
	return &model.SeasonDataset{
		Season: season,
		LeagueStats: model.LeagueStats{
			TotalPlays:      12345,
			TotalTouchdowns: 41,
			PassingPlays:    700,
			RushingPlays:    500,
		},
		TeamStats: teams,
		PlayerStats: model.PlayerStats{
			QB: []model.QBStat{
				{PlayerBase: model.PlayerBase{Player: "QB.Low", EPAPerPlay: 0.05, TotalEPA: 20}, Plays: 400, Completions: 250, Attempts: 380},
				{PlayerBase: model.PlayerBase{Player: "QB.High", EPAPerPlay: 0.25, TotalEPA: 90}, Plays: 500, Completions: 170, Attempts: 250},
				{PlayerBase: model.PlayerBase{Player: "QB.NoAttempts", EPAPerPlay: -0.02, TotalEPA: -1}, Plays: 30, Completions: 20, Attempts: 0},
			},
			RB: []model.RBStat{
				{PlayerBase: model.PlayerBase{Player: "RB.One", EPAPerPlay: 0.10, TotalEPA: 15}, Plays: 150, RushingYards: 720},
			},
			WR: []model.WRStat{
				{ReceiverStat: model.ReceiverStat{PlayerBase: model.PlayerBase{Player: "WR.One", EPAPerPlay: 0.35, TotalEPA: 30}, Targets: 86, Receptions: 60}},
			},
			TE: []model.TEStat{
				{ReceiverStat: model.ReceiverStat{PlayerBase: model.PlayerBase{Player: "TE.One", EPAPerPlay: 0.25, TotalEPA: 22}, Targets: 80, Receptions: 62}},
			},
		},
		LastUpdated: "2025-11-03T09:15:42",
	}
}

// manyReceivers returns n wide receivers with strictly decreasing EPA/play
func manyReceivers(n int) []model.WRStat {
	wrs := make([]model.WRStat, n)
	for i := range wrs {
		wrs[i] = model.WRStat{ReceiverStat: model.ReceiverStat{
			PlayerBase: model.PlayerBase{Player: fmt.Sprintf("WR.%02d", i), EPAPerPlay: 0.3 - float64(i)*0.01},
			Targets:    model.Count(100 - i),
		}}
	}
	return wrs
}
