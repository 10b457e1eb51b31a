//go:build integration

package integration

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	httpadapter "github.com/jsamuelsen/motivational-quotes/internal/adapters/http"
	"github.com/jsamuelsen/motivational-quotes/internal/adapters/http/handlers"
	"github.com/jsamuelsen/motivational-quotes/internal/app"
	"github.com/jsamuelsen/motivational-quotes/internal/domain"
	"github.com/jsamuelsen/motivational-quotes/internal/platform/config"
	"github.com/jsamuelsen/motivational-quotes/internal/ports"
)

// sampleCSV is the quotes file used by the in-process service.
const sampleCSV = `quote,author,category
"The only way to do great work is to love what you do.",Steve Jobs,"work, passion"
"Stay hungry, stay foolish.",Steve Jobs,life
"Well done is better than well said.",Benjamin Franklin,action
`

func init() {
	gin.SetMode(gin.TestMode)
}

type appOptions struct {
	policy     domain.PermalinkPolicy
	renderWait time.Duration
}

// startApp serves the full router over source and returns its base URL.
func startApp(t testing.TB, source ports.QuoteSource, opts appOptions) string {
	t.Helper()

	if opts.policy == "" {
		opts.policy = domain.PolicyID
	}

	if opts.renderWait == 0 {
		opts.renderWait = 2 * time.Second
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	resolver, err := domain.NewResolver(opts.policy)
	require.NoError(t, err)

	service := app.NewQuoteService(app.QuoteServiceConfig{Source: source, Logger: logger})
	navigators := app.NewNavigators(app.NavigatorsConfig{
		Navigator: app.NavigatorConfig{Service: service, Resolver: resolver},
		Logger:    logger,
	})
	t.Cleanup(navigators.Close)

	registry := ports.NewHealthRegistry()
	if checker, ok := source.(ports.HealthChecker); ok {
		require.NoError(t, registry.Register(checker))
	}

	engine := gin.New()
	err = httpadapter.SetupRouter(engine, httpadapter.RouterConfig{
		Logger:        logger,
		AppConfig:     &config.AppConfig{Name: "motivational-quotes-it", Version: "test", Environment: "test"},
		HealthHandler: handlers.NewHealthHandler(registry, handlers.NewBuildInfo("test", "none", "now")),
		QuoteHandler: handlers.NewQuoteHandler(handlers.QuoteHandlerConfig{
			Service:    service,
			Navigators: navigators,
			Resolver:   resolver,
			RenderWait: opts.renderWait,
			Logger:     logger,
		}),
		Timeout: 5 * time.Second,
	})
	require.NoError(t, err)

	server := httptest.NewServer(engine)
	t.Cleanup(server.Close)

	return server.URL
}

// newBrowser returns a client that keeps the session cookie and follows
// the post/redirect/get flow of the action forms.
func newBrowser(t testing.TB) *http.Client {
	t.Helper()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &http.Client{Jar: jar, Timeout: 10 * time.Second}
}

// writeQuotes writes contents to a quotes file in a fresh directory.
func writeQuotes(t testing.TB, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "quotes.csv")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	return path
}
