package model

import "github.com/secmon-lab/gridiron/pkg/domain/types"

// Bar is a vertical bar in SVG user units
type Bar struct {
	Label   string  `json:"label"`
	Value   float64 `json:"value"`
	Plays   int     `json:"plays"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Color   string  `json:"color"`
	Tooltip string  `json:"tooltip"`
}

// BarChart compares values on a shared axis. ZeroY is the y of the zero line.
type BarChart struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	ZeroY  float64 `json:"zeroY"`
	Bars   []Bar   `json:"bars"`
}

// PieSlice is a sector of a pie chart. Path is an SVG path definition.
type PieSlice struct {
	Label   string  `json:"label"`
	Value   int     `json:"value"`
	Percent int     `json:"percent"`
	Path    string  `json:"path"`
	Color   string  `json:"color"`
	LabelX  float64 `json:"labelX"`
	LabelY  float64 `json:"labelY"`
}

// PieChart shows shares of a whole
type PieChart struct {
	Size    float64    `json:"size"`
	Slices  []PieSlice `json:"slices"`
	Caption string     `json:"caption"`
}

// RankingBar is a horizontal bar of the league standings chart
type RankingBar struct {
	Team     types.TeamCode `json:"team"`
	Value    float64        `json:"value"`
	X        float64        `json:"x"`
	Y        float64        `json:"y"`
	Width    float64        `json:"width"`
	Color    string         `json:"color"`
	Selected bool           `json:"selected"`
}

// RankingChart is the league-wide horizontal ranking with an average marker
type RankingChart struct {
	Width     float64      `json:"width"`
	Height    float64      `json:"height"`
	LabelX    float64      `json:"labelX"`
	ZeroX     float64      `json:"zeroX"`
	AverageX  float64      `json:"averageX"`
	Average   Ratio        `json:"average"`
	BarHeight float64      `json:"barHeight"`
	Bars      []RankingBar `json:"bars"`
	Caption   string       `json:"caption"`
}
