// Package templates renders the server-side HTML views for the employee
// management pages. Views are standard html/template files embedded in the
// binary and wired into Echo through its Renderer interface, so handlers
// render with c.Render(status, page, data).
//
// Each page file defines "title" and "content" blocks; layout.html supplies
// the document shell. Pages are parsed into independent template sets so a
// block name collision between pages is impossible.
package templates

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/labstack/echo/v4"
)

//go:embed views/*.html
var viewsFS embed.FS

// pageFiles lists every renderable page. A page name is its file name
// without the .html extension.
var pageFiles = []string{
	"login",
	"register",
	"employees_index",
	"employee_form",
	"employee_delete",
	"qualification_form",
	"error",
}

// Renderer implements echo.Renderer over the embedded view files.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses all embedded views at startup. A malformed template is
// a fatal startup condition, not a per-request error.
func NewRenderer() (*Renderer, error) {
	pages := make(map[string]*template.Template, len(pageFiles))

	for _, name := range pageFiles {
		tmpl, err := template.ParseFS(viewsFS,
			"views/layout.html",
			"views/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parsing view %q: %w", name, err)
		}
		pages[name] = tmpl
	}

	return &Renderer{pages: pages}, nil
}

// Render writes the named page to the response. Implements echo.Renderer.
// The name may be given with or without the .html extension.
func (r *Renderer) Render(w io.Writer, name string, data any, c echo.Context) error {
	tmpl, ok := r.pages[strings.TrimSuffix(name, ".html")]
	if !ok {
		return fmt.Errorf("unknown view %q", name)
	}
	return tmpl.ExecuteTemplate(w, "layout.html", data)
}
