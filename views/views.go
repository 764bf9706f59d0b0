// Package views renders the HTML pages. Templates are parsed once at
// startup; handlers only see the Renderer interface.
package views

import (
	"fmt"
	"html/template"
	"io"
	"path/filepath"
)

type Renderer interface {
	Render(w io.Writer, name string, data any) error
}

type HTML struct {
	templates map[string]*template.Template
}

// Load parses every *.html file in dir, keyed by base name.
func Load(dir string) (*HTML, error) {
	pages, err := filepath.Glob(filepath.Join(dir, "*.html"))
	if err != nil {
		return nil, fmt.Errorf("globbing templates: %w", err)
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("no templates found in %s", dir)
	}

	h := &HTML{templates: make(map[string]*template.Template, len(pages))}
	for _, page := range pages {
		name := filepath.Base(page)
		tmpl, err := template.ParseFiles(page)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}
		h.templates[name] = tmpl
	}
	return h, nil
}

func (h *HTML) Render(w io.Writer, name string, data any) error {
	tmpl, ok := h.templates[name]
	if !ok {
		return fmt.Errorf("no template named %q", name)
	}
	return tmpl.Execute(w, data)
}
