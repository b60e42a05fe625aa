package http

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/gridiron/frontend"
	"github.com/secmon-lab/gridiron/pkg/domain/model"
	"github.com/secmon-lab/gridiron/pkg/domain/types"
	"github.com/secmon-lab/gridiron/pkg/utils/apperr"
)

// Page template files
const (
	pageOverview    = "templates/overview.html"
	pageTeams       = "templates/teams.html"
	pagePlayers     = "templates/players.html"
	pagePlaceholder = "templates/placeholder.html"
)

var pages = []string{pageOverview, pageTeams, pagePlayers, pagePlaceholder}

type navItem struct {
	Href   string
	Label  string
	Active bool
}

var navigation = []navItem{
	{Href: "/", Label: "League Overview"},
	{Href: "/teams", Label: "Team Analysis"},
	{Href: "/players", Label: "Player Stats"},
	{Href: "/analyze", Label: "Custom Analysis"},
	{Href: "/insights", Label: "AI Insights"},
}

// pageData is the layout model shared by every page
type pageData struct {
	Title   string
	Season  types.Season
	Seasons []types.Season
	Nav     []navItem
	Return  string
	State   types.LoadState
	Message string
	Refresh int
	View    any
}

func navFor(path string) []navItem {
	items := make([]navItem, len(navigation))
	for i, item := range navigation {
		item.Active = item.Href == path
		items[i] = item
	}
	return items
}

var funcMap = template.FuncMap{
	"epa":   model.FormatEPA,
	"total": model.FormatTotal,
	"count": model.FormatCount,
	"pct": func(r model.Ratio) string {
		return r.FormatPercent(1)
	},
	"signed": func(r model.Ratio) string {
		return r.FormatSigned(1)
	},
	"ratio": func(r model.Ratio, decimals int) string {
		return r.Format(decimals)
	},
	"date": func(s string) string {
		ts, ok := model.ParseTimestamp(s)
		if !ok {
			return s
		}
		return ts.Format("Jan 2, 2006")
	},
	"addf": func(a, b float64) float64 {
		return a + b
	},
	"half": func(v float64) float64 {
		return v / 2
	},
}

type renderer struct {
	templates map[string]*template.Template
}

func newRenderer() (*renderer, error) {
	r := &renderer{templates: make(map[string]*template.Template, len(pages))}
	for _, page := range pages {
		tmpl, err := frontend.ParseTemplates(funcMap, page)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to parse page template", goerr.V("page", page))
		}
		r.templates[page] = tmpl
	}
	return r, nil
}

// render executes a page into a buffer and writes it with status
func (x *renderer) render(w http.ResponseWriter, r *http.Request, status int, page string, data *pageData) {
	logger := ctxlog.From(r.Context())

	tmpl, ok := x.templates[page]
	if !ok {
		logger.Error("Unknown page template", "page", page)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		apperr.Handle(r.Context(), goerr.Wrap(err, "failed to execute template", goerr.V("page", page)))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		logger.Error("Failed to write page", "page", page, "error", err)
	}
}
