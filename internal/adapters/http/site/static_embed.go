package site

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
)

//go:embed static/*
var staticFS embed.FS

var page = template.Must(template.ParseFS(staticFS, "static/index.html.tmpl"))

// Assets returns an http.FileSystem for the embedded page assets.
func Assets() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return http.FS(staticFS)
	}
	return http.FS(sub)
}
