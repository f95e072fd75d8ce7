package transport

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

//go:embed templates static
var assets embed.FS

const (
	layoutTemplate  = "base"
	sharedPattern   = "templates/layout/*.html"
	pagesDir        = "templates/pages"
	templateSuffix  = ".html"
	staticAssetsDir = "static"
)

// Renderer executes the base layout around one page template. Each page is
// parsed into its own set so the "content" blocks never collide.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses every page under templates/pages together with the shared layout.
func NewRenderer() (*Renderer, error) {
	entries, err := fs.ReadDir(assets, pagesDir)
	if err != nil {
		return nil, fmt.Errorf("read pages: %w", err)
	}
	shared, err := template.New("_root").Funcs(funcMap()).ParseFS(assets, sharedPattern)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(entries))}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), templateSuffix) {
			continue
		}
		clone, err := shared.Clone()
		if err != nil {
			return nil, err
		}
		name := strings.TrimSuffix(entry.Name(), templateSuffix)
		page, err := clone.ParseFS(assets, path.Join(pagesDir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}
		r.pages[name] = page
	}
	if len(r.pages) == 0 {
		return nil, fmt.Errorf("no templates found under %s", pagesDir)
	}
	return r, nil
}

// Render implements echo.Renderer.
func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	page, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	return page.ExecuteTemplate(w, layoutTemplate, data)
}

// Has reports whether a page template exists.
func (r *Renderer) Has(name string) bool {
	_, ok := r.pages[name]
	return ok
}

// StaticFS serves the stylesheet and scripts.
func StaticFS() fs.FS {
	return echo.MustSubFS(assets, staticAssetsDir)
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"year":    func() int { return time.Now().Year() },
		"inc":     func(i int) int { return i + 1 },
		"percent": func(v float64) string { return fmt.Sprintf("%.0f%%", v) },
	}
}
