package model

import "github.com/secmon-lab/gridiron/pkg/domain/types"

// TeamRow is a team line of a ranking table
type TeamRow struct {
	Rank       int            `json:"rank"`
	Team       types.TeamCode `json:"team"`
	Colors     TeamColors     `json:"colors"`
	LogoURL    string         `json:"logoUrl"`
	EPAPerPlay float64        `json:"epaPerPlay"`
	TotalEPA   float64        `json:"totalEPA"`
	Plays      int            `json:"plays"`
	Tier       types.Tier     `json:"tier"`
}

// OverviewView is the league overview page
type OverviewView struct {
	Season          types.Season  `json:"season"`
	Sort            types.SortKey `json:"sort"`
	Leader          *TeamRow      `json:"leader,omitempty"`
	TotalPlays      int           `json:"totalPlays"`
	TotalTouchdowns int           `json:"totalTouchdowns"`
	PassingPlays    int           `json:"passingPlays"`
	RushingPlays    int           `json:"rushingPlays"`
	PassRushRatio   Ratio         `json:"passRushRatio"`
	Teams           []TeamRow     `json:"teams"`
	Insights        []string      `json:"insights"`
	LastUpdated     string        `json:"lastUpdated,omitempty"`
}

// TeamDetailView is the team analysis page. When the selected team has no
// record in the season, Found is false and only the header fields are set.
type TeamDetailView struct {
	Season  types.Season     `json:"season"`
	Team    types.TeamCode   `json:"team"`
	Teams   []types.TeamCode `json:"teams"`
	Colors  TeamColors       `json:"colors"`
	LogoURL string           `json:"logoUrl"`
	Found   bool             `json:"found"`
	Message string           `json:"message,omitempty"`

	Stat          *TeamStat  `json:"stat,omitempty"`
	Rank          int        `json:"rank,omitempty"`
	TopFive       bool       `json:"topFive"`
	TopTen        bool       `json:"topTen"`
	Tier          types.Tier `json:"tier,omitempty"`
	LeagueAverage Ratio      `json:"leagueAverage"`
	VersusAverage Ratio      `json:"versusAverage"`
	ProgressWidth float64    `json:"progressWidth"`
	Summary       string     `json:"summary,omitempty"`

	Efficiency *BarChart     `json:"efficiency,omitempty"`
	Share      *PieChart     `json:"share,omitempty"`
	Standings  *RankingChart `json:"standings,omitempty"`
}

// RankedPlayer is the common projection of players merged across positions
type RankedPlayer struct {
	Rank       int            `json:"rank"`
	Player     string         `json:"player"`
	Position   types.Position `json:"position"`
	Tag        string         `json:"tag"`
	EPAPerPlay float64        `json:"epaPerPlay"`
	TotalEPA   float64        `json:"totalEPA"`
	Volume     int            `json:"plays"`
}

// QBRow is a quarterback board line
type QBRow struct {
	Rank          int    `json:"rank"`
	Stat          QBStat `json:"stat"`
	CompletionPct Ratio  `json:"completionPct"`
}

// RBRow is a running back board line
type RBRow struct {
	Rank          int    `json:"rank"`
	Stat          RBStat `json:"stat"`
	YardsPerCarry Ratio  `json:"yardsPerCarry"`
}

// ReceiverRow is a wide receiver or tight end board line
type ReceiverRow struct {
	Rank     int          `json:"rank"`
	Stat     ReceiverStat `json:"stat"`
	CatchPct Ratio        `json:"catchPct"`
}

// PositionTab is an entry of the position filter
type PositionTab struct {
	Position types.Position `json:"position"`
	Label    string         `json:"label"`
	Active   bool           `json:"active"`
}

// PlayerBoardView is the player statistics page. Exactly one of Ranked, QB,
// RB and Receivers is populated, depending on Position.
type PlayerBoardView struct {
	Season    types.Season   `json:"season"`
	Position  types.Position `json:"position"`
	Label     string         `json:"label"`
	Caption   string         `json:"caption"`
	Tabs      []PositionTab  `json:"tabs"`
	Ranked    []RankedPlayer `json:"ranked,omitempty"`
	QB        []QBRow        `json:"qb,omitempty"`
	RB        []RBRow        `json:"rb,omitempty"`
	Receivers []ReceiverRow  `json:"receivers,omitempty"`
}
