// Package views holds the HTML templates served by the web front end and the
// view models they render.
package views

import (
	"embed"
	"fmt"
	"html/template"

	"github.com/jsamuelsen/motivational-quotes/internal/app"
	"github.com/jsamuelsen/motivational-quotes/internal/domain"
)

// Template names.
const (
	HomeTemplate     = "home.html"
	QuoteTemplate    = "quote.html"
	NotFoundTemplate = "not_found.html"
	ErrorTemplate    = "error.html"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded template set.
func Templates() (*template.Template, error) {
	tmpl, err := template.New("").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	return tmpl, nil
}

// QuoteView is a quote prepared for display.
type QuoteView struct {
	ID     string
	Text   string
	Author string
	Tags   []string
	Path   string
}

// NewQuoteView converts a quote. path is where the quote can be revisited.
func NewQuoteView(q *domain.Quote, path string) *QuoteView {
	if q == nil {
		return nil
	}

	return &QuoteView{
		ID:     q.ID,
		Text:   q.Text,
		Author: q.Author.Name,
		Tags:   domain.ParseTags(q.Category),
		Path:   path,
	}
}

// Page is the data every template renders.
type Page struct {
	Title string

	// Active names the header link to highlight.
	Active string

	State app.QueryState
	Quote *QuoteView
	Error string

	// Animating marks the quote card as mid transition.
	Animating bool

	// RefreshAfter, in seconds, asks the browser to reload a page that was
	// rendered before its data arrived. Zero disables it.
	RefreshAfter int
}
