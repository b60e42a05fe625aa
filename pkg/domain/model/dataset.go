package model

import (
	"encoding/json"
	"math"
	"strconv"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/gridiron/pkg/domain/types"
)

// Count is a non-negative play/yard/touchdown total. The upstream pipeline
// sums float columns, so integral floats such as 12.0 are accepted.
type Count int

// Int returns the int representation
func (c Count) Int() int {
	return int(c)
}

// UnmarshalJSON accepts integers and integral floats
func (c *Count) UnmarshalJSON(data []byte) error {
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return goerr.Wrap(err, "count is not a number", goerr.V("value", string(data)))
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return goerr.New("count is not an integer", goerr.V("value", string(data)))
	}
	*c = Count(f)
	return nil
}

// SeasonDataset is one season snapshot as produced by the analytics pipeline
type SeasonDataset struct {
	Season      types.Season `json:"season"`
	LeagueStats LeagueStats  `json:"leagueStats"`
	TeamStats   []TeamStat   `json:"teamStats"`
	PlayerStats PlayerStats  `json:"playerStats"`
	LastUpdated string       `json:"lastUpdated"`
}

// LeagueStats holds league-wide totals
type LeagueStats struct {
	TotalPlays      Count `json:"totalPlays"`
	TotalTouchdowns Count `json:"totalTouchdowns"`
	PassingPlays    Count `json:"passingPlays"`
	RushingPlays    Count `json:"rushingPlays"`
}

// TeamStat holds offensive EPA figures of one team.
// Plays is expected to equal PassPlays + RushPlays but that is not enforced.
type TeamStat struct {
	Team           types.TeamCode `json:"team"`
	EPAPerPlay     float64        `json:"epaPerPlay"`
	TotalEPA       float64        `json:"totalEPA"`
	Plays          Count          `json:"plays"`
	PassEPAPerPlay float64        `json:"passEpaPerPlay"`
	PassTotalEPA   float64        `json:"passTotalEPA"`
	PassPlays      Count          `json:"passPlays"`
	RushEPAPerPlay float64        `json:"rushEpaPerPlay"`
	RushTotalEPA   float64        `json:"rushTotalEPA"`
	RushPlays      Count          `json:"rushPlays"`
}

// Metric returns the value used for ranking by key
func (t *TeamStat) Metric(key types.SortKey) float64 {
	if key == types.SortByTotalEPA {
		return t.TotalEPA
	}
	return t.EPAPerPlay
}

// FindTeam returns the team record for code, or nil when the season has none
func (d *SeasonDataset) FindTeam(code types.TeamCode) *TeamStat {
	for i := range d.TeamStats {
		if d.TeamStats[i].Team == code {
			result := d.TeamStats[i]
			return &result
		}
	}
	return nil
}

var lastUpdatedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses an ISO-8601 stamp as written by the data pipeline.
// Timestamps without a zone are read as UTC.
func ParseTimestamp(s string) (time.Time, bool) {
	for _, layout := range lastUpdatedLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// LastUpdatedTime parses the lastUpdated stamp
func (d *SeasonDataset) LastUpdatedTime() (time.Time, bool) {
	return ParseTimestamp(d.LastUpdated)
}

// DecodeSeasonDataset validates the payload shape and decodes it
func DecodeSeasonDataset(data []byte) (*SeasonDataset, error) {
	if err := ValidatePayload(data); err != nil {
		return nil, err
	}

	var dataset SeasonDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		return nil, goerr.Wrap(ErrInvalidDataset, "failed to decode dataset",
			goerr.V("cause", err.Error()))
	}

	if err := dataset.Validate(); err != nil {
		return nil, err
	}

	return &dataset, nil
}

// Encode serializes the dataset back to the pipeline's JSON format
func (d *SeasonDataset) Encode() ([]byte, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to encode dataset", goerr.V("season", d.Season))
	}
	return data, nil
}
