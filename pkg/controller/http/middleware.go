package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/ctxlog"
	"github.com/secmon-lab/gridiron/pkg/domain/model"
	"github.com/secmon-lab/gridiron/pkg/domain/types"
	"github.com/secmon-lab/gridiron/pkg/usecase"
)

// WorkspaceCookie holds the workspace ID of a browser
const WorkspaceCookie = "gridiron_ws"

type contextKey string

const workspaceKey contextKey = "workspace"

// workspaceFrom returns the workspace attached by WorkspaceMiddleware
func workspaceFrom(ctx context.Context) (*usecase.Workspace, bool) {
	ws, ok := ctx.Value(workspaceKey).(*usecase.Workspace)
	return ws, ok
}

// LoggingMiddleware creates a chi-compatible logging middleware
func LoggingMiddleware(ctx context.Context) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Embed logger from the initial context into request context
			logger := ctxlog.From(ctx).With("request_id", middleware.GetReqID(r.Context()))
			r = r.WithContext(ctxlog.With(r.Context(), logger))

			start := time.Now()

			// Wrap response writer to capture status
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			// Process request
			next.ServeHTTP(ww, r)

			// Log request
			logger.Info("HTTP request",
				"method", r.Method,
				"path", r.URL.Path,
				"query", r.URL.Query(),
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
			)
		})
	}
}

// WorkspaceMiddleware attaches the browser's workspace to the request,
// creating one when the cookie is missing or stale. A valid ?season= query
// parameter selects the workspace season before the handler runs.
func WorkspaceMiddleware(workspaces *usecase.Workspaces, catalog *model.SeasonCatalog) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := ctxlog.From(r.Context())

			var id types.WorkspaceID
			if c, err := r.Cookie(WorkspaceCookie); err == nil {
				id = types.WorkspaceID(c.Value)
			}

			ws, created, err := workspaces.Resolve(id)
			if err != nil {
				logger.Error("Failed to resolve workspace", "error", err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}
			if created {
				logger.Debug("Workspace created", "workspace_id", ws.ID())
			}

			// Slide the cookie together with the workspace lifetime
			http.SetCookie(w, &http.Cookie{
				Name:     WorkspaceCookie,
				Value:    ws.ID().String(),
				Path:     "/",
				MaxAge:   int(workspaces.TTL().Seconds()),
				HttpOnly: true,
				Secure:   r.TLS != nil,
				SameSite: http.SameSiteLaxMode,
			})

			if q := r.URL.Query().Get("season"); q != "" {
				season, err := types.ParseSeason(q)
				switch {
				case err != nil:
					logger.Debug("Ignoring malformed season parameter", "season", q)
				case !catalog.Contains(season):
					logger.Debug("Ignoring season outside catalog", "season", season)
				default:
					ws.Provider.Set(season)
				}
			}

			ctx := context.WithValue(r.Context(), workspaceKey, ws)
			ctx = usecase.WithSeasonProvider(ctx, ws.Provider)
			ctx = ctxlog.With(ctx, logger.With("workspace_id", ws.ID()))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
