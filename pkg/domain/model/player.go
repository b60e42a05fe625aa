package model

import "github.com/secmon-lab/gridiron/pkg/domain/types"

// PlayerBase holds the fields shared by every position group
type PlayerBase struct {
	Player     string  `json:"player"`
	EPAPerPlay float64 `json:"epaPerPlay"`
	TotalEPA   float64 `json:"totalEPA"`
}

// PlayerRecord is a player row of one position group. The concrete types
// carry disjoint production stats.
type PlayerRecord interface {
	Position() types.Position
	Base() PlayerBase
	// Volume is the usage count shown in merged boards: plays for QB/RB,
	// targets for WR/TE.
	Volume() int
}

// QBStat is a quarterback row
type QBStat struct {
	PlayerBase
	Plays         Count `json:"plays"`
	PassingYards  Count `json:"passingYards"`
	Touchdowns    Count `json:"touchdowns"`
	Interceptions Count `json:"interceptions"`
	Completions   Count `json:"completions"`
	Attempts      Count `json:"attempts"`
}

func (s QBStat) Position() types.Position { return types.PositionQB }
func (s QBStat) Base() PlayerBase         { return s.PlayerBase }
func (s QBStat) Volume() int              { return s.Plays.Int() }

// CompletionPct returns completions / attempts as a percentage
func (s QBStat) CompletionPct() Ratio {
	return Percent(s.Completions.Int(), s.Attempts.Int())
}

// RBStat is a running back row
type RBStat struct {
	PlayerBase
	Plays        Count `json:"plays"`
	RushingYards Count `json:"rushingYards"`
	Touchdowns   Count `json:"touchdowns"`
}

func (s RBStat) Position() types.Position { return types.PositionRB }
func (s RBStat) Base() PlayerBase         { return s.PlayerBase }
func (s RBStat) Volume() int              { return s.Plays.Int() }

// YardsPerCarry returns rushing yards / plays
func (s RBStat) YardsPerCarry() Ratio {
	return Divide(s.RushingYards.Int(), s.Plays.Int())
}

// ReceiverStat holds the pass-catcher fields shared by WR and TE rows
type ReceiverStat struct {
	PlayerBase
	Targets        Count `json:"targets"`
	ReceivingYards Count `json:"receivingYards"`
	Touchdowns     Count `json:"touchdowns"`
	Receptions     Count `json:"receptions"`
}

// CatchPct returns receptions / targets as a percentage
func (s ReceiverStat) CatchPct() Ratio {
	return Percent(s.Receptions.Int(), s.Targets.Int())
}

// WRStat is a wide receiver row
type WRStat struct {
	ReceiverStat
}

func (s WRStat) Position() types.Position { return types.PositionWR }
func (s WRStat) Base() PlayerBase         { return s.PlayerBase }
func (s WRStat) Volume() int              { return s.Targets.Int() }

// TEStat is a tight end row
type TEStat struct {
	ReceiverStat
}

func (s TEStat) Position() types.Position { return types.PositionTE }
func (s TEStat) Base() PlayerBase         { return s.PlayerBase }
func (s TEStat) Volume() int              { return s.Targets.Int() }

// PlayerStats groups player rows by position
type PlayerStats struct {
	QB []QBStat `json:"qb"`
	RB []RBStat `json:"rb"`
	WR []WRStat `json:"wr"`
	TE []TEStat `json:"te"`
}

// Records returns the rows of a single position group in source order.
// Merged filters return nil.
func (p *PlayerStats) Records(pos types.Position) []PlayerRecord {
	var records []PlayerRecord
	switch pos {
	case types.PositionQB:
		for _, s := range p.QB {
			records = append(records, s)
		}
	case types.PositionRB:
		for _, s := range p.RB {
			records = append(records, s)
		}
	case types.PositionWR:
		for _, s := range p.WR {
			records = append(records, s)
		}
	case types.PositionTE:
		for _, s := range p.TE {
			records = append(records, s)
		}
	}
	return records
}
