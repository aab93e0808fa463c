// Package web embeds the server-rendered templates and static browser
// assets so the binary ships self-contained.
package web

import (
	"embed"
	"html/template"
	"io/fs"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Templates parses the embedded page templates.
func Templates() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.html")
}

// Static returns the embedded static asset tree rooted at static/.
func Static() (fs.FS, error) {
	return fs.Sub(staticFS, "static")
}
