package http

import (
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/motivational-quotes/internal/adapters/http/handlers"
	"github.com/jsamuelsen/motivational-quotes/internal/adapters/http/middleware"
	"github.com/jsamuelsen/motivational-quotes/internal/adapters/http/views"
	"github.com/jsamuelsen/motivational-quotes/internal/app"
	"github.com/jsamuelsen/motivational-quotes/internal/platform/config"
	"github.com/jsamuelsen/motivational-quotes/internal/platform/telemetry"
)

// DefaultRequestTimeout bounds API requests when no timeout is configured.
const DefaultRequestTimeout = 30 * time.Second

// ErrNoQuoteHandler is returned by SetupRouter when the quote handler is missing.
var ErrNoQuoteHandler = errors.New("router: quote handler is required")

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	// Logger is the structured logger for request logging.
	Logger *slog.Logger

	// AppConfig names the service for tracing.
	AppConfig *config.AppConfig

	// HealthHandler serves the /-/ ops endpoints.
	HealthHandler *handlers.HealthHandler

	// QuoteHandler serves pages, form actions and the JSON API.
	QuoteHandler *handlers.QuoteHandler

	// Templates overrides the embedded page templates.
	Templates *template.Template

	// SessionCookie names the visitor session cookie.
	SessionCookie string

	// Timeout bounds each /api/v1 request.
	Timeout time.Duration
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware is applied in the following order (first to last):
//  1. Recovery
//  2. Request ID
//  3. Correlation ID
//  4. OpenTelemetry tracing and metrics
//  5. Logging (skips /-/ endpoints)
//
// Route groups:
//   - /-/: ops endpoints, no session
//   - /, /quote/:id, /not-found, /actions/*: HTML pages with a session
//   - /api/v1/: JSON API with a session and a request timeout
//   - anything else: permalink pages or the not found page
func SetupRouter(engine *gin.Engine, cfg RouterConfig) error {
	if cfg.QuoteHandler == nil {
		return ErrNoQuoteHandler
	}

	tmpl := cfg.Templates
	if tmpl == nil {
		var err error
		if tmpl, err = views.Templates(); err != nil {
			return fmt.Errorf("loading templates: %w", err)
		}
	}

	engine.SetHTMLTemplate(tmpl)

	serviceName := config.DefaultAppName
	if cfg.AppConfig != nil && cfg.AppConfig.Name != "" {
		serviceName = cfg.AppConfig.Name
	}

	engine.Use(middleware.Recovery(cfg.Logger), middleware.RequestID(), middleware.CorrelationID())
	engine.Use(telemetry.Middleware(serviceName)...)
	engine.Use(middleware.Logging(cfg.Logger))

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutesOnEngine(engine)
	}

	cookie := cfg.SessionCookie
	if cookie == "" {
		cookie = config.DefaultSessionCookie
	}

	session := middleware.Session(cookie)

	pages := engine.Group("", session)
	setupPageRoutes(pages, cfg.QuoteHandler)

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	apiV1 := engine.Group("/api/v1", session, middleware.Timeout(timeout))
	setupAPIRoutes(apiV1, cfg.QuoteHandler)

	engine.NoRoute(session, cfg.QuoteHandler.Fallback)

	return nil
}

func setupPageRoutes(rg *gin.RouterGroup, h *handlers.QuoteHandler) {
	rg.GET("/", h.Home)
	rg.GET("/quote/:id", h.ViewQuote)
	rg.GET("/not-found", h.NotFound)

	actions := rg.Group("/actions")
	actions.POST("/random", h.Act(app.ActionRandom))
	actions.POST("/next", h.Act(app.ActionNext))
	actions.POST("/previous", h.Act(app.ActionPrevious))
}

func setupAPIRoutes(rg *gin.RouterGroup, h *handlers.QuoteHandler) {
	quotes := rg.Group("/quotes")
	quotes.GET("/random", h.GetRandomQuote)
	quotes.GET("/:id", h.GetQuote)
	quotes.GET("/:id/next", h.GetNextQuote)
	quotes.GET("/:id/previous", h.GetPreviousQuote)

	rg.GET("/authors/:author/quotes/:quote", h.GetQuoteByPermalink)

	nav := rg.Group("/navigation")
	nav.POST("/random", h.Navigate(app.ActionRandom))
	nav.POST("/next", h.Navigate(app.ActionNext))
	nav.POST("/previous", h.Navigate(app.ActionPrevious))
}

// SetupMinimalRouter sets up a router with just the ops endpoints.
// Used by tests that only exercise the ops endpoints.
func SetupMinimalRouter(engine *gin.Engine, logger *slog.Logger, healthHandler *handlers.HealthHandler) {
	engine.Use(
		middleware.Recovery(logger),
		middleware.RequestID(),
	)

	if healthHandler != nil {
		healthHandler.RegisterHealthRoutesOnEngine(engine)
	}
}

// NewDefaultRouterConfig builds a RouterConfig from the loaded configuration.
func NewDefaultRouterConfig(
	logger *slog.Logger,
	cfg *config.Config,
	healthHandler *handlers.HealthHandler,
	quoteHandler *handlers.QuoteHandler,
) RouterConfig {
	timeout := cfg.Server.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	return RouterConfig{
		Logger:        logger,
		AppConfig:     &cfg.App,
		HealthHandler: healthHandler,
		QuoteHandler:  quoteHandler,
		SessionCookie: cfg.Navigation.SessionCookie,
		Timeout:       timeout,
	}
}
