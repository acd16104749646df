package http

import (
	"embed"
	"io/fs"
	"net/http"
	"time"

	"github.com/gofiber/template/html/v2"
)

//go:embed views/*.html
var viewFiles embed.FS

// NewViews returns the page engine over the embedded templates. Pages are
// rendered into the "layout" template through its {{embed}} call.
func NewViews() (*html.Engine, error) {
	pages, err := fs.Sub(viewFiles, "views")
	if err != nil {
		return nil, err
	}

	engine := html.NewFileSystem(http.FS(pages), ".html")
	engine.AddFunc("datetime", formatDateTime)
	return engine, nil
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}
