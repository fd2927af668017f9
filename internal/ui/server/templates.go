package server

import (
	"fmt"
	"html/template"
	"path/filepath"
)

// loadTemplates loads and wires the HTML templates used by the page server, keyed by
// logical name.
func loadTemplates(dir string) (map[string]*template.Template, error) {
	funcs := template.FuncMap{
		"inc": func(i int) int { return i + 1 },
	}

	base := filepath.Join(dir, "base.tmpl")
	home := filepath.Join(dir, "home.tmpl")

	homeTmpl, err := template.New("home").Funcs(funcs).ParseFiles(base, home)
	if err != nil {
		return nil, fmt.Errorf("parse home templates: %w", err)
	}

	return map[string]*template.Template{
		"home": homeTmpl,
	}, nil
}
