package main

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/sherbolotarbaev/portfolio/internal/profile"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var templateFuncs = template.FuncMap{
	"millis": profile.Millis,
	"minutes": func(d time.Duration) int {
		return int(d / time.Minute)
	},
}

func parseTemplates() (*template.Template, error) {
	return template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
}

func staticFiles() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
