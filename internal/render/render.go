package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Page identifies one of the known templates. The set is closed at
// compile time; no template name is ever derived from request data.
type Page string

const (
	PageIndex    Page = "index"
	PageRegister Page = "register"
	PageLogin    Page = "login"
	PagePostNew  Page = "post_new"
	PagePostView Page = "post_view"
	PageProfile  Page = "profile"
	PageSearch   Page = "search"
	PageError    Page = "error"
)

var pages = []Page{
	PageIndex,
	PageRegister,
	PageLogin,
	PagePostNew,
	PagePostView,
	PageProfile,
	PageSearch,
	PageError,
}

var funcs = template.FuncMap{
	"datetime": func(ts int64) string {
		return time.Unix(ts, 0).UTC().Format("2006-01-02 15:04")
	},
	"add": func(a, b int) int { return a + b },
	"sub": func(a, b int) int { return a - b },
}

// Renderer implements echo.Renderer over the embedded templates.
// html/template's contextual escaping covers user-controlled text.
type Renderer struct {
	templates map[Page]*template.Template
}

// New parses every known page template from the embedded sources.
func New() (*Renderer, error) {
	r := &Renderer{templates: make(map[Page]*template.Template, len(pages))}
	for _, page := range pages {
		name := string(page) + ".html"
		tpl, err := template.New(name).Funcs(funcs).ParseFS(templatesFS, "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.templates[page] = tpl
	}
	return r, nil
}

// Render implements echo.Renderer.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	tpl, ok := r.templates[Page(name)]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}
	return tpl.Execute(w, data)
}
