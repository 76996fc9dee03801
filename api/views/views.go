package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/homestylefoods/storefront-backend/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

// Data is the envelope every page template renders with.
type Data struct {
	Title     string
	UserEmail string
	UserName  string
	IsAdmin   bool
	CartCount int
	Flashes   []session.Flash
	Content   any
}

var pages = []string{
	"index",
	"home",
	"about",
	"contact",
	"login",
	"signup",
	"products",
	"cart",
	"checkout",
	"success",
	"admin_add_product",
}

// Renderer holds the parsed page templates.
type Renderer struct {
	templates map[string]*template.Template
}

// NewRenderer parses every page against the shared layout.
func NewRenderer() (*Renderer, error) {
	funcs := template.FuncMap{
		"rupees": func(amount int64) string {
			return fmt.Sprintf("₹%d", amount)
		},
	}

	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		tmpl, err := template.New("layout.html").Funcs(funcs).ParseFS(
			templateFS,
			"templates/layout.html",
			"templates/nav.html",
			"templates/"+page+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}
		templates[page] = tmpl
	}

	return &Renderer{templates: templates}, nil
}

// Render writes the page. The body is buffered so a template failure can
// still produce a clean 500 instead of a half-written page.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data Data) error {
	tmpl, ok := r.templates[page]
	if !ok {
		return fmt.Errorf("unknown template %q", page)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("rendering %s: %w", page, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
