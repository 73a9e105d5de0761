// Package web renders the portal's pages: a shared shell (layout.html) around
// either the login form or the profile view.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Page template names.
const (
	PageLogin   = "login"
	PageProfile = "profile"
	PageError   = "error"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer implements echo.Renderer. Each page is parsed together with the
// layout into its own template set, so every page can define "content".
type Renderer struct {
	pages map[string]*template.Template
	log   zerolog.Logger
}

func NewRenderer(log zerolog.Logger) (*Renderer, error) {
	r := &Renderer{
		pages: make(map[string]*template.Template),
		log:   log.With().Str("component", "renderer").Logger(),
	}
	for _, page := range []string{PageLogin, PageProfile, PageError} {
		tpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", page, err)
		}
		r.pages[page] = tpl
		r.log.Debug().Str("template", page).Msg("template registered")
	}
	return r, nil
}

// Render executes the shell with the named page as its content.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	tpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}
	if err := tpl.ExecuteTemplate(w, "layout", data); err != nil {
		r.log.Error().Err(err).Str("template", name).Msg("render failed")
		return err
	}
	return nil
}
