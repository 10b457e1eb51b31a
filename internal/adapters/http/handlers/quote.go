package handlers

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/motivational-quotes/internal/adapters/http/dto"
	"github.com/jsamuelsen/motivational-quotes/internal/adapters/http/middleware"
	"github.com/jsamuelsen/motivational-quotes/internal/app"
	"github.com/jsamuelsen/motivational-quotes/internal/domain"
)

// loadingRefreshSeconds is how soon a page rendered in the loading state
// asks the browser to try again.
const loadingRefreshSeconds = 1

// QuoteHandlerConfig contains the dependencies of the quote handlers.
type QuoteHandlerConfig struct {
	Service    *app.QuoteService
	Navigators *app.Navigators
	Resolver   *domain.Resolver

	// RenderWait bounds how long a page waits for its data before it is
	// rendered in the loading state. Zero waits until the request ends.
	RenderWait time.Duration

	Logger *slog.Logger
}

// QuoteHandler serves the quote pages, the navigation actions and the JSON API.
type QuoteHandler struct {
	service    *app.QuoteService
	navigators *app.Navigators
	resolver   *domain.Resolver
	renderWait time.Duration
	logger     *slog.Logger
}

// NewQuoteHandler creates a quote handler.
// Panics if Service, Navigators or Resolver is nil.
func NewQuoteHandler(cfg QuoteHandlerConfig) *QuoteHandler {
	if cfg.Service == nil || cfg.Navigators == nil || cfg.Resolver == nil {
		panic("QuoteHandler: Service, Navigators and Resolver are required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &QuoteHandler{
		service:    cfg.Service,
		navigators: cfg.Navigators,
		resolver:   cfg.Resolver,
		renderWait: cfg.RenderWait,
		logger:     logger.With(slog.String("component", "handlers.QuoteHandler")),
	}
}

// navigator returns the navigator of the requesting visitor, creating it.
// Only navigations call it.
func (h *QuoteHandler) navigator(c *gin.Context) *app.Navigator {
	return h.navigators.Get(middleware.GetSessionID(c))
}

// viewer returns the visitor's navigator if it has one, for page views.
func (h *QuoteHandler) viewer(c *gin.Context) *app.Navigator {
	return h.navigators.Peek(middleware.GetSessionID(c))
}

// waitContext derives the context a page waits on for its data.
func (h *QuoteHandler) waitContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if h.renderWait <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, h.renderWait)
}

// errorStatus maps err to a status code and the message shown to the visitor.
func errorStatus(err error) (int, string) {
	status, resp := dto.MapDomainError(err)
	return status, resp.Error.Message
}

// safeBack returns back when it is a local absolute path, or "/".
func safeBack(back string) string {
	if !strings.HasPrefix(back, "/") || strings.HasPrefix(back, "//") || strings.ContainsAny(back, "\\\r\n") {
		return "/"
	}

	return back
}
