package web

import (
	"embed"
	"html/template"
)

//go:embed templates/index.html
var templates embed.FS

var indexTemplate = template.Must(template.ParseFS(templates, "templates/index.html"))

type indexData struct {
	Version string
	Error   string
	Files   []indexFile
}

type indexFile struct {
	Filename string
	HTML     template.HTML
}
