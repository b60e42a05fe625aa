package usecase

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/gridiron/pkg/domain/interfaces"
	"github.com/secmon-lab/gridiron/pkg/domain/model"
	"github.com/secmon-lab/gridiron/pkg/domain/types"
)

// Dashboard serves season views directly from a dataset source, without
// workspace state. It backs the JSON API, the CSV export and the digest.
type Dashboard struct {
	source  interfaces.DatasetSource
	catalog *model.SeasonCatalog
}

// NewDashboard creates a new Dashboard use case
func NewDashboard(source interfaces.DatasetSource, catalog *model.SeasonCatalog) *Dashboard {
	return &Dashboard{
		source:  source,
		catalog: catalog,
	}
}

// Catalog returns the offered seasons
func (d *Dashboard) Catalog() *model.SeasonCatalog {
	return d.catalog
}

// Dataset loads the validated snapshot of season
func (d *Dashboard) Dataset(ctx context.Context, season types.Season) (*model.SeasonDataset, error) {
	ds, err := d.source.Load(ctx, season)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load season", goerr.V("season", season))
	}
	return ds, nil
}

// Overview builds the league overview of season ordered by key
func (d *Dashboard) Overview(ctx context.Context, season types.Season, key types.SortKey) (*model.OverviewView, error) {
	ds, err := d.Dataset(ctx, season)
	if err != nil {
		return nil, err
	}
	return BuildOverview(ds, key), nil
}

// TeamDetail builds the analysis of team in season. Codes outside the 32
// franchises fail with model.ErrTeamNotFound.
func (d *Dashboard) TeamDetail(ctx context.Context, season types.Season, team types.TeamCode) (*model.TeamDetailView, error) {
	team = team.Normalize()
	if !model.IsKnownTeam(team) {
		return nil, goerr.Wrap(model.ErrTeamNotFound, "unknown team code", goerr.V("team", team))
	}

	ds, err := d.Dataset(ctx, season)
	if err != nil {
		return nil, err
	}
	return BuildTeamDetail(ds, team), nil
}

// Players builds the player board of season filtered by pos
func (d *Dashboard) Players(ctx context.Context, season types.Season, pos types.Position) (*model.PlayerBoardView, error) {
	ds, err := d.Dataset(ctx, season)
	if err != nil {
		return nil, err
	}
	return BuildPlayerBoard(ds, pos), nil
}

var teamsCSVHeader = []string{
	"rank", "team", "epa_per_play", "total_epa", "plays",
	"pass_epa_per_play", "pass_total_epa", "pass_plays",
	"rush_epa_per_play", "rush_total_epa", "rush_plays", "tier",
}

// WriteTeamsCSV writes the team table of season ranked by EPA/play
func (d *Dashboard) WriteTeamsCSV(ctx context.Context, season types.Season, w io.Writer) error {
	ds, err := d.Dataset(ctx, season)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(teamsCSVHeader); err != nil {
		return goerr.Wrap(err, "failed to write CSV header")
	}

	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	for i, t := range SortTeams(ds.TeamStats, types.SortByEPAPerPlay) {
		record := []string{
			strconv.Itoa(i + 1),
			t.Team.String(),
			f(t.EPAPerPlay), f(t.TotalEPA), strconv.Itoa(t.Plays.Int()),
			f(t.PassEPAPerPlay), f(t.PassTotalEPA), strconv.Itoa(t.PassPlays.Int()),
			f(t.RushEPAPerPlay), f(t.RushTotalEPA), strconv.Itoa(t.RushPlays.Int()),
			model.TierOf(t.EPAPerPlay).String(),
		}
		if err := cw.Write(record); err != nil {
			return goerr.Wrap(err, "failed to write CSV record", goerr.V("team", t.Team))
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return goerr.Wrap(err, "failed to flush CSV")
	}
	return nil
}
