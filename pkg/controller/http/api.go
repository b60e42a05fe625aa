package http

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/gridiron/pkg/domain/model"
	"github.com/secmon-lab/gridiron/pkg/domain/types"
	"github.com/secmon-lab/gridiron/pkg/utils/apperr"
)

var errBadParameter = errors.New("bad parameter")

// errorStatus maps a use case error to an HTTP status
func errorStatus(err error) int {
	switch {
	case errors.Is(err, errBadParameter):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrSeasonNotFound), errors.Is(err, model.ErrTeamNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrInvalidDataset):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}

// handleAPIError logs and writes err with its mapped status
func handleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	status := errorStatus(err)
	if status >= http.StatusInternalServerError {
		apperr.Handle(r.Context(), err)
	} else {
		ctxlog.From(r.Context()).Debug("API request rejected", "error", err, "status", status)
	}
	writeError(w, err, status)
}

func seasonParam(r *http.Request) (types.Season, error) {
	raw := chi.URLParam(r, "season")
	season, err := types.ParseSeason(raw)
	if err != nil {
		return 0, goerr.Wrap(errBadParameter, "invalid season", goerr.V("season", raw))
	}
	return season, nil
}

func (s *Server) handleSeasons(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.dashboard.Catalog())
}

func (s *Server) handleOverviewAPI(w http.ResponseWriter, r *http.Request) {
	season, err := seasonParam(r)
	if err != nil {
		handleAPIError(w, r, err)
		return
	}

	key := types.SortByEPAPerPlay
	if q := r.URL.Query().Get("sort"); q != "" {
		key = types.SortKey(q)
		if !key.IsValid() {
			handleAPIError(w, r, goerr.Wrap(errBadParameter, "invalid sort key", goerr.V("sort", q)))
			return
		}
	}

	view, err := s.dashboard.Overview(r.Context(), season, key)
	if err != nil {
		handleAPIError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, view)
}

func (s *Server) handleTeamAPI(w http.ResponseWriter, r *http.Request) {
	season, err := seasonParam(r)
	if err != nil {
		handleAPIError(w, r, err)
		return
	}

	view, err := s.dashboard.TeamDetail(r.Context(), season, types.TeamCode(chi.URLParam(r, "team")))
	if err != nil {
		handleAPIError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, view)
}

func (s *Server) handlePlayersAPI(w http.ResponseWriter, r *http.Request) {
	season, err := seasonParam(r)
	if err != nil {
		handleAPIError(w, r, err)
		return
	}

	pos := types.PositionAll
	if q := r.URL.Query().Get("position"); q != "" {
		pos = types.Position(q)
		if !pos.IsValid() {
			handleAPIError(w, r, goerr.Wrap(errBadParameter, "invalid position", goerr.V("position", q)))
			return
		}
	}

	view, err := s.dashboard.Players(r.Context(), season, pos)
	if err != nil {
		handleAPIError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, view)
}

func (s *Server) handleTeamsCSV(w http.ResponseWriter, r *http.Request) {
	season, err := seasonParam(r)
	if err != nil {
		handleAPIError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := s.dashboard.WriteTeamsCSV(r.Context(), season, &buf); err != nil {
		handleAPIError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="nfl_`+season.String()+`_teams.csv"`)
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		ctxlog.From(r.Context()).Error("Failed to write CSV", "error", err)
	}
}

// handleDataset serves the validated snapshot of a season in the pipeline
// format
func (s *Server) handleDataset(w http.ResponseWriter, r *http.Request) {
	season, err := seasonParam(r)
	if err != nil {
		handleAPIError(w, r, err)
		return
	}

	ds, err := s.dashboard.Dataset(r.Context(), season)
	if err != nil {
		handleAPIError(w, r, err)
		return
	}

	data, err := ds.Encode()
	if err != nil {
		handleAPIError(w, r, goerr.Wrap(err, "failed to encode dataset"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "public, max-age=300")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		ctxlog.From(r.Context()).Error("Failed to write dataset", "error", err)
	}
}
