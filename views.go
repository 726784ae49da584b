package gogrid

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
)

// Default view names.
const (
	ViewGrid       = "grid"
	ViewPagination = "pagination"
	ViewPerPage    = "per_page"
)

//go:embed views/*.html
var _defaultViews embed.FS

// ViewEngine renders a named view with the given data.
type ViewEngine interface {
	Render(w io.Writer, view string, data any) error
}

// TemplateViews is a ViewEngine over html/template. Every view is a named
// template ({{define "name"}}); the defaults are "grid", "pagination" and
// "per_page" and receive the *Grid as data.
type TemplateViews struct {
	tmpl *template.Template
}

// NewTemplateViews parses the default views, then "*.html" files of every
// override in order. A template defined in an override replaces the default
// one with the same name.
func NewTemplateViews(overrides ...fs.FS) (*TemplateViews, error) {
	tmpl, err := template.New("gogrid").ParseFS(_defaultViews, "views/*.html")
	if err != nil {
		return nil, fmt.Errorf("cannot parse default grid views: %w", err)
	}

	for _, override := range overrides {
		tmpl, err = tmpl.ParseFS(override, "*.html")
		if err != nil {
			return nil, fmt.Errorf("cannot parse grid views: %w", err)
		}
	}

	return &TemplateViews{tmpl: tmpl}, nil
}

// Render - implements ViewEngine.
func (v *TemplateViews) Render(w io.Writer, view string, data any) error {
	if v.tmpl.Lookup(view) == nil {
		return fmt.Errorf("grid view '%s' is not defined", view)
	}

	if err := v.tmpl.ExecuteTemplate(w, view, data); err != nil {
		return fmt.Errorf("cannot render grid view '%s': %w", view, err)
	}

	return nil
}

var _ ViewEngine = (*TemplateViews)(nil)
