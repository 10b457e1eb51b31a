package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/motivational-quotes/internal/adapters/http/dto"
	"github.com/jsamuelsen/motivational-quotes/internal/adapters/http/views"
	"github.com/jsamuelsen/motivational-quotes/internal/app"
	"github.com/jsamuelsen/motivational-quotes/internal/domain"
)

// lookupFunc loads the quote a page addresses through the visitor's navigator.
type lookupFunc func(ctx context.Context, nav *app.Navigator) (*domain.Quote, *app.Navigation, error)

// Home handles GET /. It shows a random quote, or the loading, error or
// empty state of the fetch.
func (h *QuoteHandler) Home(c *gin.Context) {
	query := h.service.Random(c.Request.Context())

	waitCtx, cancel := h.waitContext(c.Request.Context())
	defer cancel()

	_, _ = query.Wait(waitCtx)

	page := views.Page{Active: "home", State: query.State()}
	status := http.StatusOK

	switch page.State {
	case app.StateLoading:
		page.RefreshAfter = loadingRefreshSeconds
	case app.StateError:
		status, page.Error = errorStatus(query.Err())
	case app.StateReady:
		quote := query.Quote()
		page.Quote = views.NewQuoteView(quote, h.resolver.BuildPath(quote))
	case app.StateNotFound:
	}

	c.HTML(status, views.HomeTemplate, page)
}

// ViewQuote handles GET /quote/:id.
func (h *QuoteHandler) ViewQuote(c *gin.Context) {
	id := c.Param("id")

	h.view(c, func(ctx context.Context, nav *app.Navigator) (*domain.Quote, *app.Navigation, error) {
		return nav.Lookup(ctx, id)
	})
}

// NotFound renders the not-found page.
func (h *QuoteHandler) NotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, views.NotFoundTemplate, views.Page{Title: "Page Not Found"})
}

// Fallback handles every unrouted request. Under the slug policy GET
// requests for /{author}/{quote} are quote pages; API paths get a JSON 404;
// everything else gets the not-found page.
func (h *QuoteHandler) Fallback(c *gin.Context) {
	path := c.Request.URL.EscapedPath()

	if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
		if target, ok := h.resolver.ParsePath(path); ok && target.IsPermalink() {
			h.view(c, func(ctx context.Context, nav *app.Navigator) (*domain.Quote, *app.Navigation, error) {
				return nav.LookupPermalink(ctx, target.AuthorSlug, target.QuoteSlug)
			})

			return
		}
	}

	if strings.HasPrefix(path, "/api/") {
		dto.RespondWithErrorCode(c, dto.ErrorCodeNotFound, "route not found")
		return
	}

	h.NotFound(c)
}

// view renders a quote page. Lookups that resolve to nothing redirect to the
// not-found page with 302, so the dead address does not stay in history.
func (h *QuoteHandler) view(c *gin.Context, lookup lookupFunc) {
	ctx := c.Request.Context()
	nav := h.viewer(c)

	waitCtx, cancel := h.waitContext(ctx)
	defer cancel()

	quote, redirect, err := lookup(waitCtx, nav)

	switch {
	case err != nil && waitCtx.Err() != nil && ctx.Err() == nil:
		c.HTML(http.StatusOK, views.QuoteTemplate, views.Page{
			State:        app.StateLoading,
			RefreshAfter: loadingRefreshSeconds,
		})
	case err != nil:
		status, msg := errorStatus(err)
		c.HTML(status, views.QuoteTemplate, views.Page{State: app.StateError, Error: msg})
	case redirect != nil:
		h.logger.DebugContext(ctx, "redirecting unresolved quote page",
			slog.String("path", c.Request.URL.Path),
			slog.String("to", redirect.Path),
		)
		c.Redirect(http.StatusFound, redirect.Path)
	default:
		c.HTML(http.StatusOK, views.QuoteTemplate, views.Page{
			Title:     quote.Author.Name,
			State:     app.StateReady,
			Quote:     views.NewQuoteView(quote, nav.Path(quote)),
			Animating: nav.Animating(),
		})
	}
}
