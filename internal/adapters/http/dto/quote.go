package dto

import "github.com/jsamuelsen/motivational-quotes/internal/domain"

// AuthorResponse is the author of a quote.
type AuthorResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Permalink string `json:"permalink,omitempty"`
}

// QuoteResponse is the API form of a quote.
type QuoteResponse struct {
	ID        string         `json:"id"`
	Quote     string         `json:"quote"`
	Permalink string         `json:"permalink,omitempty"`
	Path      string         `json:"path"`
	Tags      []string       `json:"tags,omitempty"`
	Author    AuthorResponse `json:"author"`
}

// NewQuoteResponse converts a quote. path is the quote's navigable path.
func NewQuoteResponse(q *domain.Quote, path string) *QuoteResponse {
	return &QuoteResponse{
		ID:        q.ID,
		Quote:     q.Text,
		Permalink: q.Slug,
		Path:      path,
		Tags:      q.Tags(),
		Author: AuthorResponse{
			ID:        q.Author.ID,
			Name:      q.Author.Name,
			Permalink: q.Author.Slug,
		},
	}
}

// NavigationRequest is the body of the navigation endpoints.
// From is the id of the quote being viewed; random ignores it.
type NavigationRequest struct {
	From string `json:"from" validate:"omitempty,notempty,max=64"`
}

// NavigationResponse tells a client where to go next.
// A null path means the navigation found nothing and the client stays put.
type NavigationResponse struct {
	Path      *string `json:"path"`
	Replace   bool    `json:"replace"`
	Animating bool    `json:"animating"`
}

// ActionForm is the body of the HTML navigation forms.
// Back is the page the form was submitted from; the visitor returns there
// when the navigation has no destination.
type ActionForm struct {
	From string `form:"from" json:"from" validate:"omitempty,notempty,max=64"`
	Back string `form:"back" json:"back" validate:"omitempty,startswith=/,max=512"`
}
