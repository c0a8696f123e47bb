package site

import (
	"embed"
	"html/template"
)

//go:embed static/index.html.tmpl
var staticFS embed.FS

// pageTemplate renders the shares page.
var pageTemplate = template.Must(template.ParseFS(staticFS, "static/index.html.tmpl"))
