package usecase

import (
	"sort"

	"github.com/secmon-lab/gridiron/pkg/domain/model"
	"github.com/secmon-lab/gridiron/pkg/domain/types"
)

// MergedBoardLimit is the length of cross-position boards
const MergedBoardLimit = 50

const sortedByEPASuffix = " · Sorted by EPA per play"

var captions = map[types.Position]string{
	types.PositionAll:  "Top 50 players across all positions",
	types.PositionFlex: "Top 50 skill position players (RB/WR/TE)",
	types.PositionQB:   "Minimum 100 pass attempts",
	types.PositionRB:   "Minimum 50 carries",
	types.PositionWR:   "Minimum 30 targets",
	types.PositionTE:   "Minimum 30 targets",
}

// Caption returns the informational eligibility text of a position filter.
// The rows are never filtered by it.
func Caption(pos types.Position) string {
	return captions[pos] + sortedByEPASuffix
}

// mergedPositions lists the groups merged by each cross-position filter, in
// merge order
var mergedPositions = map[types.Position][]types.Position{
	types.PositionAll:  {types.PositionQB, types.PositionRB, types.PositionWR, types.PositionTE},
	types.PositionFlex: {types.PositionRB, types.PositionWR, types.PositionTE},
}

// MergePlayers projects the groups of a merged filter onto RankedPlayer,
// sorts them descending by EPA/play keeping merge order on ties, and keeps
// the top MergedBoardLimit. Single positions return nil.
func MergePlayers(stats *model.PlayerStats, pos types.Position) []model.RankedPlayer {
	groups, ok := mergedPositions[pos]
	if !ok {
		return nil
	}

	var merged []model.RankedPlayer
	for _, g := range groups {
		for _, r := range stats.Records(g) {
			base := r.Base()
			merged = append(merged, model.RankedPlayer{
				Player:     base.Player,
				Position:   r.Position(),
				Tag:        r.Position().Tag(),
				EPAPerPlay: base.EPAPerPlay,
				TotalEPA:   base.TotalEPA,
				Volume:     r.Volume(),
			})
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].EPAPerPlay > merged[j].EPAPerPlay
	})
	if len(merged) > MergedBoardLimit {
		merged = merged[:MergedBoardLimit]
	}
	for i := range merged {
		merged[i].Rank = i + 1
	}
	return merged
}

// BuildPlayerBoard shapes the player statistics page of ds filtered by pos.
// Single positions keep the source order.
func BuildPlayerBoard(ds *model.SeasonDataset, pos types.Position) *model.PlayerBoardView {
	if !pos.IsValid() {
		pos = types.PositionAll
	}

	view := &model.PlayerBoardView{
		Season:   ds.Season,
		Position: pos,
		Label:    pos.Label(),
		Caption:  Caption(pos),
	}
	for _, p := range types.Positions {
		view.Tabs = append(view.Tabs, model.PositionTab{
			Position: p,
			Label:    p.Label(),
			Active:   p == pos,
		})
	}

	stats := &ds.PlayerStats
	switch pos {
	case types.PositionQB:
		view.QB = make([]model.QBRow, len(stats.QB))
		for i, s := range stats.QB {
			view.QB[i] = model.QBRow{Rank: i + 1, Stat: s, CompletionPct: s.CompletionPct()}
		}
	case types.PositionRB:
		view.RB = make([]model.RBRow, len(stats.RB))
		for i, s := range stats.RB {
			view.RB[i] = model.RBRow{Rank: i + 1, Stat: s, YardsPerCarry: s.YardsPerCarry()}
		}
	case types.PositionWR:
		view.Receivers = receiverRows(len(stats.WR), func(i int) model.ReceiverStat { return stats.WR[i].ReceiverStat })
	case types.PositionTE:
		view.Receivers = receiverRows(len(stats.TE), func(i int) model.ReceiverStat { return stats.TE[i].ReceiverStat })
	default:
		view.Ranked = MergePlayers(stats, pos)
	}

	return view
}

func receiverRows(n int, at func(i int) model.ReceiverStat) []model.ReceiverRow {
	rows := make([]model.ReceiverRow, n)
	for i := 0; i < n; i++ {
		s := at(i)
		rows[i] = model.ReceiverRow{Rank: i + 1, Stat: s, CatchPct: s.CatchPct()}
	}
	return rows
}
