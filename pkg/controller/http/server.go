package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/gridiron/frontend"
	"github.com/secmon-lab/gridiron/pkg/usecase"
)

// DefaultAwaitTimeout bounds how long a page waits for its dataset before
// rendering the loading state
const DefaultAwaitTimeout = 3 * time.Second

// Option configures the HTTP server
type Option func(*Server)

// WithCORSOrigins sets the origins allowed on /api and /data
func WithCORSOrigins(origins []string) Option {
	return func(s *Server) {
		if len(origins) > 0 {
			s.corsOrigins = origins
		}
	}
}

// WithAwaitTimeout sets how long pages wait for an in-flight load
func WithAwaitTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.awaitTimeout = d
		}
	}
}

// Server represents the HTTP server
type Server struct {
	*http.Server
	router       chi.Router
	dashboard    *usecase.Dashboard
	workspaces   *usecase.Workspaces
	renderer     *renderer
	corsOrigins  []string
	awaitTimeout time.Duration
}

// NewServer creates a new HTTP server
func NewServer(
	ctx context.Context,
	addr string,
	dashboard *usecase.Dashboard,
	workspaces *usecase.Workspaces,
	opts ...Option,
) (*Server, error) {
	renderer, err := newRenderer()
	if err != nil {
		return nil, err
	}

	staticFS, err := frontend.GetStaticFS()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open embedded static assets")
	}

	server := &Server{
		dashboard:    dashboard,
		workspaces:   workspaces,
		renderer:     renderer,
		corsOrigins:  []string{"*"},
		awaitTimeout: DefaultAwaitTimeout,
	}
	for _, opt := range opts {
		opt(server)
	}

	router := chi.NewRouter()

	// Apply global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)

	// Health check
	router.Get("/health", handleHealth)

	router.Handle("/static/*", http.StripPrefix("/static", NewStaticHandler(staticFS)))

	crossOrigin := cors.Handler(cors.Options{
		AllowedOrigins: server.corsOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	})

	// Season snapshots as produced by the data pipeline
	router.With(crossOrigin).Get("/data/nfl_{season}.json", server.handleDataset)

	// API routes
	router.Route("/api", func(r chi.Router) {
		r.Use(crossOrigin)
		r.Get("/seasons", server.handleSeasons)
		r.Route("/seasons/{season}", func(r chi.Router) {
			r.Get("/overview", server.handleOverviewAPI)
			r.Get("/teams.csv", server.handleTeamsCSV)
			r.Get("/teams/{team}", server.handleTeamAPI)
			r.Get("/players", server.handlePlayersAPI)
		})
	})

	// Dashboard pages
	router.Group(func(r chi.Router) {
		r.Use(WorkspaceMiddleware(workspaces, dashboard.Catalog()))
		r.Get("/", server.handleOverviewPage)
		r.Get("/teams", server.handleTeamsPage)
		r.Get("/players", server.handlePlayersPage)
		r.Get("/analyze", server.handlePlaceholder(analyzePlaceholder))
		r.Get("/insights", server.handlePlaceholder(insightsPlaceholder))
		r.Post("/season", server.handleSetSeason)
	})

	server.router = router
	server.Server = &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
	}

	return server, nil
}

// handleHealth handles health check requests
func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "gridiron",
	})
}

// writeJSON writes v as a JSON response
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		ctxlog.From(r.Context()).Error("Failed to encode response", "error", err)
	}
}

// writeError writes an error response
func writeError(w http.ResponseWriter, err error, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	var message string
	if goErr := goerr.Unwrap(err); goErr != nil {
		message = goErr.Error()
	} else {
		message = err.Error()
	}

	if err := json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	}); err != nil {
		// Can't get context here, so use background context
		ctxlog.From(context.Background()).Error("Failed to encode error response", "error", err)
	}
}
