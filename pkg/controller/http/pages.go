package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/secmon-lab/gridiron/pkg/domain/types"
	"github.com/secmon-lab/gridiron/pkg/usecase"
)

// loadingRefresh is the meta refresh interval of a page still loading, in
// seconds
const loadingRefresh = 2

type placeholder struct {
	Heading     string
	Icon        string
	Headline    string
	Description string
}

var analyzePlaceholder = placeholder{
	Heading:     "Custom Analysis",
	Icon:        "🎨",
	Headline:    "Chart Builder Coming Soon",
	Description: "Build custom charts on the fly with AI-powered suggestions and real-time insights.",
}

var insightsPlaceholder = placeholder{
	Heading:     "AI Insights",
	Icon:        "🤖",
	Headline:    "AI Insights Coming Soon",
	Description: "Autonomous agents discover hidden patterns, detect anomalies, and surface interesting findings automatically.",
}

// returnPath is the current page without the season parameter, so that a
// season picked in the header is not overridden on the way back
func returnPath(r *http.Request) string {
	u := *r.URL
	q := u.Query()
	q.Del("season")
	u.RawQuery = q.Encode()
	return u.RequestURI()
}

// safeReturn accepts only local absolute paths
func safeReturn(p string) string {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.HasPrefix(p, "/\\") {
		return "/"
	}
	return p
}

func (s *Server) newPage(r *http.Request, title, path string) *pageData {
	data := &pageData{
		Title:   title,
		Season:  s.dashboard.Catalog().Default,
		Seasons: s.dashboard.Catalog().Seasons,
		Nav:     navFor(path),
		Return:  returnPath(r),
	}
	if provider, err := usecase.SeasonProviderFrom(r.Context()); err == nil {
		data.Season = provider.Season()
	}
	return data
}

// awaitSnapshot waits for loader up to the configured timeout
func (s *Server) awaitSnapshot(ctx context.Context, loader *usecase.DatasetLoader) usecase.Snapshot {
	ctx, cancel := context.WithTimeout(ctx, s.awaitTimeout)
	defer cancel()
	return loader.Await(ctx)
}

// applySnapshot sets the load state of data and reports whether the dataset
// is ready to be rendered
func applySnapshot(data *pageData, snap usecase.Snapshot, loadingMessage string) bool {
	switch snap.State {
	case types.LoadStateLoaded:
		data.State = types.LoadStateLoaded
		return true
	case types.LoadStateFailed:
		data.State = types.LoadStateFailed
		data.Message = usecase.FailedToLoadMessage
	default:
		data.State = types.LoadStateLoading
		data.Message = loadingMessage
		data.Refresh = loadingRefresh
	}
	return false
}

func (s *Server) workspace(w http.ResponseWriter, r *http.Request) (*usecase.Workspace, bool) {
	ws, ok := workspaceFrom(r.Context())
	if !ok {
		ctxlog.From(r.Context()).Error("Workspace is not attached to request")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
	return ws, ok
}

func (s *Server) handleOverviewPage(w http.ResponseWriter, r *http.Request) {
	ws, ok := s.workspace(w, r)
	if !ok {
		return
	}

	data := s.newPage(r, "League Overview", "/")
	snap := s.awaitSnapshot(r.Context(), ws.Overview)
	if applySnapshot(data, snap, "Loading NFL data...") {
		key := types.ParseSortKey(r.URL.Query().Get("sort"))
		data.View = usecase.BuildOverview(snap.Dataset, key)
	}
	s.renderer.render(w, r, http.StatusOK, pageOverview, data)
}

func (s *Server) handleTeamsPage(w http.ResponseWriter, r *http.Request) {
	ws, ok := s.workspace(w, r)
	if !ok {
		return
	}

	data := s.newPage(r, "Team Analysis", "/teams")
	snap := s.awaitSnapshot(r.Context(), ws.Loader)
	if applySnapshot(data, snap, "Loading team data...") {
		team := types.TeamCode(r.URL.Query().Get("team")).Normalize()
		data.View = usecase.BuildTeamDetail(snap.Dataset, team)
	}
	s.renderer.render(w, r, http.StatusOK, pageTeams, data)
}

func (s *Server) handlePlayersPage(w http.ResponseWriter, r *http.Request) {
	ws, ok := s.workspace(w, r)
	if !ok {
		return
	}

	data := s.newPage(r, "Player Stats", "/players")
	snap := s.awaitSnapshot(r.Context(), ws.Loader)
	if applySnapshot(data, snap, "Loading player data...") {
		pos := types.ParsePosition(r.URL.Query().Get("position"))
		data.View = usecase.BuildPlayerBoard(snap.Dataset, pos)
	}
	s.renderer.render(w, r, http.StatusOK, pagePlayers, data)
}

func (s *Server) handlePlaceholder(p placeholder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := s.newPage(r, p.Heading, r.URL.Path)
		data.View = p
		s.renderer.render(w, r, http.StatusOK, pagePlaceholder, data)
	}
}

// handleSetSeason switches the workspace season and redirects back
func (s *Server) handleSetSeason(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request: malformed form", http.StatusBadRequest)
		return
	}

	season, err := types.ParseSeason(r.PostForm.Get("season"))
	if err != nil || !s.dashboard.Catalog().Contains(season) {
		http.Error(w, "Bad Request: unsupported season", http.StatusBadRequest)
		return
	}

	provider, err := usecase.SeasonProviderFrom(r.Context())
	if err != nil {
		ctxlog.From(r.Context()).Error("Season provider is not attached to request", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	provider.Set(season)

	http.Redirect(w, r, safeReturn(r.PostForm.Get("return")), http.StatusSeeOther)
}
