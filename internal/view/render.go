package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

//go:embed templates
var templateFS embed.FS

// Data is the value handed to a page template.
type Data map[string]any

type Renderer interface {
	Render(w http.ResponseWriter, status int, layout Layout, page string, data Data) error
}

type TemplateRenderer struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"markdown": Markdown,
	"ago": func(t time.Time) string {
		return humanize.Time(t)
	},
	"date": func(t time.Time) string {
		return t.Format("January 2, 2006")
	},
	"join": strings.Join,
	"add": func(a, b int) int {
		return a + b
	},
}

// NewRenderer parses every page together with all layouts so any page can be
// executed in any layout.
func NewRenderer() (*TemplateRenderer, error) {
	return newRenderer(templateFS)
}

func newRenderer(fsys fs.FS) (*TemplateRenderer, error) {
	layouts, err := fs.Glob(fsys, "templates/layouts/*.html")
	if err != nil {
		return nil, err
	}

	pages, err := fs.Glob(fsys, "templates/pages/*.html")
	if err != nil {
		return nil, err
	}

	r := &TemplateRenderer{pages: make(map[string]*template.Template, len(pages))}
	for _, page := range pages {
		files := append(append([]string{}, layouts...), page)

		t, err := template.New(path.Base(page)).Funcs(funcs).ParseFS(fsys, files...)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}

		r.pages[strings.TrimSuffix(path.Base(page), ".html")] = t
	}

	return r, nil
}

// Render executes page inside layout. Output is buffered so a template error
// never leaves a half-written response behind.
func (r *TemplateRenderer) Render(w http.ResponseWriter, status int, layout Layout, page string, data Data) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("template %q not found", page)
	}

	if data == nil {
		data = Data{}
	}
	data["Layout"] = string(layout)

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, string(layout), data); err != nil {
		return fmt.Errorf("rendering %s: %w", page, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
