package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jsamuelsen/motivational-quotes/internal/adapters/clients"
	"github.com/jsamuelsen/motivational-quotes/internal/adapters/clients/acl"
	"github.com/jsamuelsen/motivational-quotes/internal/adapters/csvsource"
	"github.com/jsamuelsen/motivational-quotes/internal/adapters/sqlsource"
	"github.com/jsamuelsen/motivational-quotes/internal/platform/config"
	"github.com/jsamuelsen/motivational-quotes/internal/ports"
)

// quoteSource is the configured source with its lifecycle hooks.
type quoteSource struct {
	source  ports.QuoteSource
	checker ports.HealthChecker

	// watch runs until ctx is done. Nil when the source does not reload.
	watch func(ctx context.Context) error

	close func() error
}

func openSource(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*quoteSource, error) {
	switch cfg.Source.Kind {
	case config.SourceCSV:
		src, err := csvsource.New(csvsource.Config{
			Path:   cfg.Source.CSV.Path,
			Strict: cfg.Source.CSV.Strict,
			Logger: logger,
		})
		if err != nil {
			return nil, err
		}

		qs := &quoteSource{source: src, checker: src, close: func() error { return nil }}
		if cfg.Source.CSV.Watch {
			qs.watch = func(ctx context.Context) error {
				return src.Watch(ctx, csvsource.DefaultDebounce)
			}
		}

		return qs, nil

	case config.SourceSQLite:
		src, err := sqlsource.Open(ctx, sqlsource.Config{
			Path:   cfg.Source.SQLite.Path,
			Logger: logger,
		})
		if err != nil {
			return nil, err
		}

		return &quoteSource{source: src, checker: src, close: src.Close}, nil

	case config.SourceGraphQL:
		httpClient, err := clients.New(&clients.Config{
			BaseURL:     cfg.Services.Quote.BaseURL,
			ServiceName: cfg.Services.Quote.Name,
			Timeout:     cfg.Client.Timeout,
			Circuit:     cfg.Client.CircuitBreaker,
			Transport:   cfg.Client.Transport,
			Logger:      logger,
		})
		if err != nil {
			return nil, fmt.Errorf("creating HTTP client: %w", err)
		}

		quoteClient := acl.NewQuoteClient(acl.QuoteClientConfig{
			Client: httpClient,
			Path:   cfg.Services.Quote.Path,
			Logger: logger,
		})

		return &quoteSource{source: quoteClient, checker: quoteClient, close: func() error { return nil }}, nil

	default:
		return nil, fmt.Errorf("unknown source kind %q", cfg.Source.Kind)
	}
}
