package frontend

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
)

// FS embeds the page templates and static assets
//
//go:embed templates/*.html static/*
var FS embed.FS

// LayoutTemplate wraps every page
const LayoutTemplate = "templates/layout.html"

// GetStaticFS returns the embedded static assets for HTTP serving
func GetStaticFS() (http.FileSystem, error) {
	sub, err := fs.Sub(FS, "static")
	if err != nil {
		return nil, err
	}
	return http.FS(sub), nil
}

// ParseTemplates parses page templates together with the layout
func ParseTemplates(funcMap template.FuncMap, files ...string) (*template.Template, error) {
	return template.New("").Funcs(funcMap).ParseFS(FS, append([]string{LayoutTemplate}, files...)...)
}
