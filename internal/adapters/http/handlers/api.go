package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/motivational-quotes/internal/adapters/http/dto"
	"github.com/jsamuelsen/motivational-quotes/internal/app"
	"github.com/jsamuelsen/motivational-quotes/internal/domain"
)

// GetRandomQuote handles GET /api/v1/quotes/random.
func (h *QuoteHandler) GetRandomQuote(c *gin.Context) {
	h.respond(c, h.service.Random(c.Request.Context()), domain.NewNotFoundError("quotes", ""))
}

// GetQuote handles GET /api/v1/quotes/:id.
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	h.byID(c, h.service.ByID)
}

// GetNextQuote handles GET /api/v1/quotes/:id/next.
func (h *QuoteHandler) GetNextQuote(c *gin.Context) {
	h.byID(c, h.service.Next)
}

// GetPreviousQuote handles GET /api/v1/quotes/:id/previous.
func (h *QuoteHandler) GetPreviousQuote(c *gin.Context) {
	h.byID(c, h.service.Previous)
}

// GetQuoteByPermalink handles GET /api/v1/authors/:author/quotes/:quote.
func (h *QuoteHandler) GetQuoteByPermalink(c *gin.Context) {
	author, quote := c.Param("author"), c.Param("quote")

	h.respond(c, h.service.ByPermalink(c.Request.Context(), author, quote),
		domain.NewNotFoundError("quote", author+"/"+quote))
}

// Navigate returns the handler of POST /api/v1/navigation/{action}.
// The body is {"from": id}; random ignores it. A null path in the response
// means there is nowhere to go.
func (h *QuoteHandler) Navigate(action app.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.NavigationRequest
		if err := dto.BindAndValidate(c, &req); err != nil {
			if dto.IsValidationError(err) {
				dto.RespondWithValidationErrors(c, dto.ValidationErrors(err))
				return
			}

			dto.RespondWithErrorCode(c, dto.ErrorCodeBadRequest, "malformed request body")

			return
		}

		if action != app.ActionRandom && req.From == "" {
			dto.RespondWithValidationErrors(c, map[string]string{"from": "this field is required"})
			return
		}

		nav := h.navigator(c)

		dest, err := nav.Navigate(c.Request.Context(), action, req.From)
		if errors.Is(err, app.ErrSuperseded) {
			dto.RespondWithErrorCode(c, dto.ErrorCodeSuperseded, "navigation superseded by a newer one")
			return
		}

		if err != nil {
			dto.HandleError(c, err)
			return
		}

		resp := dto.NavigationResponse{Animating: nav.Animating()}
		if dest != nil {
			resp.Path = &dest.Path
			resp.Replace = dest.Replace
		}

		c.JSON(http.StatusOK, resp)
	}
}

func (h *QuoteHandler) byID(c *gin.Context, start func(ctx context.Context, id string) *app.Query) {
	id := c.Param("id")

	if _, err := domain.ParseQuoteID(id); err != nil {
		dto.HandleError(c, err)
		return
	}

	h.respond(c, start(c.Request.Context(), id), domain.NewNotFoundError("quote", id))
}

// respond writes the settled query. notFound is reported when the source
// had no quote.
func (h *QuoteHandler) respond(c *gin.Context, query *app.Query, notFound error) {
	quote, err := query.Wait(c.Request.Context())

	switch {
	case err != nil:
		dto.HandleError(c, err)
	case quote == nil:
		dto.HandleError(c, notFound)
	default:
		c.JSON(http.StatusOK, dto.NewQuoteResponse(quote, h.resolver.BuildPath(quote)))
	}
}
