package http_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/gt"
	httpCtrl "github.com/secmon-lab/gridiron/pkg/controller/http"
	"github.com/secmon-lab/gridiron/pkg/domain/interfaces"
	"github.com/secmon-lab/gridiron/pkg/domain/model"
	"github.com/secmon-lab/gridiron/pkg/domain/types"
	"github.com/secmon-lab/gridiron/pkg/repository"
	"github.com/secmon-lab/gridiron/pkg/usecase"
)

func teamStat(code types.TeamCode, epa, total float64, plays int) model.TeamStat {
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

func seasonDataset(season types.Season, teams ...model.TeamStat) *model.SeasonDataset {
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

// defaultStore holds 2025 and 2024; 2023 is listed in the catalog but missing
func defaultStore() *repository.Memory {
	return repository.NewMemory(
		seasonDataset(2025,
			teamStat("NYJ", -0.05, -20, 380),
			teamStat("KC", 0.12, 50, 400),
		),
		seasonDataset(2024, teamStat("BUF", 0.05, 21, 420)),
	)
}

func testContext() context.Context {
	return ctxlog.With(context.Background(), slog.New(slog.DiscardHandler))
}

func newTestServer(t *testing.T, source interfaces.DatasetSource, opts ...httpCtrl.Option) *httptest.Server {
	t.Helper()
	ctx := testContext()
	catalog := model.DefaultSeasonCatalog()

	dashboard := usecase.NewDashboard(source, catalog)
	workspaces := usecase.NewWorkspaces(ctx, source, catalog)

	srv, err := httpCtrl.NewServer(ctx, ":0", dashboard, workspaces, opts...)
	gt.NoError(t, err).Required()

	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)
	return ts
}

// newBrowser returns a client that keeps cookies and does not follow
// redirects
func newBrowser(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	gt.NoError(t, err).Required()
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func get(t *testing.T, client *http.Client, target string) (*http.Response, string) {
	t.Helper()
	resp, err := client.Get(target)
	gt.NoError(t, err).Required()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	gt.NoError(t, err).Required()
	return resp, string(body)
}

func postForm(t *testing.T, client *http.Client, target string, values url.Values) *http.Response {
	t.Helper()
	resp, err := client.Post(target, "application/x-www-form-urlencoded", strings.NewReader(values.Encode()))
	gt.NoError(t, err).Required()
	_ = resp.Body.Close()
	return resp
}
