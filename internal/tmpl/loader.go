package tmpl

import (
	"fmt"
	"html/template"
	"io"
	"path/filepath"
	"strings"
)

// Templates holds all page templates, keyed by page name.
type Templates struct {
	pages map[string]*template.Template
}

// ExecuteTemplate renders a page template by name via the shared layout.
func (t *Templates) ExecuteTemplate(w io.Writer, name string, data any) error {
	tmpl, ok := t.pages[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	return tmpl.ExecuteTemplate(w, "layout", data)
}

// Load parses all templates under dir. Each page template gets its own
// clone of the layout so {{define "content"}} doesn't collide.
func Load(dir string) (*Templates, error) {
	funcMap := template.FuncMap{
		"fmtAmount": fmtAmount,
	}

	base, err := template.New("base").Funcs(funcMap).ParseFiles(filepath.Join(dir, "layout.html"))
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	pageFiles, err := filepath.Glob(filepath.Join(dir, "*.html"))
	if err != nil {
		return nil, fmt.Errorf("glob page templates: %w", err)
	}

	pages := map[string]*template.Template{}
	for _, f := range pageFiles {
		name := filepath.Base(f)
		if name == "layout.html" {
			continue
		}
		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layout: %w", err)
		}
		if _, err := clone.ParseFiles(f); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		pages[name] = clone
	}

	return &Templates{pages: pages}, nil
}

// fmtAmount drops trailing zeros so whole numbers print bare.
func fmtAmount(v float64) string {
	out := strings.TrimRight(fmt.Sprintf("%.1f", v), "0")
	return strings.TrimSuffix(out, ".")
}
