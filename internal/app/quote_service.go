// Package app contains application services that orchestrate use cases.
package app

import (
	"context"
	"log/slog"

	"github.com/jsamuelsen/motivational-quotes/internal/domain"
	"github.com/jsamuelsen/motivational-quotes/internal/ports"
)

// QueryState is the lifecycle position of a Query.
type QueryState string

const (
	StateLoading  QueryState = "loading"
	StateError    QueryState = "error"
	StateNotFound QueryState = "not-found"
	StateReady    QueryState = "ready"
)

// Query is the asynchronous result of one data access operation.
// It starts loading when created and settles exactly once into an error,
// a quote, or neither (the source had no quote for the request).
//
// A settled Query never changes, so its accessors are safe to call from
// any goroutine.
type Query struct {
	done  chan struct{}
	quote *domain.Quote
	err   error
}

func startQuery(ctx context.Context, fetch func(context.Context) (*domain.Quote, error)) *Query {
	q := &Query{done: make(chan struct{})}

	go func() {
		defer close(q.done)

		quote, err := fetch(ctx)

		switch {
		case err == nil:
			q.quote = quote
		case domain.IsNotFound(err):
			// null data, not an error
		default:
			q.err = err
		}
	}()

	return q
}

// Loading reports whether the query is still in flight.
func (q *Query) Loading() bool {
	select {
	case <-q.done:
		return false
	default:
		return true
	}
}

// Err returns the failure of a settled query. Not found is not a failure.
func (q *Query) Err() error {
	if q.Loading() {
		return nil
	}

	return q.err
}

// Quote returns the quote of a settled query, or nil.
func (q *Query) Quote() *domain.Quote {
	if q.Loading() {
		return nil
	}

	return q.quote
}

// State summarises the query for rendering.
func (q *Query) State() QueryState {
	switch {
	case q.Loading():
		return StateLoading
	case q.err != nil:
		return StateError
	case q.quote == nil:
		return StateNotFound
	default:
		return StateReady
	}
}

// Wait blocks until the query settles or ctx is done.
// A nil quote with a nil error means the source had no quote.
func (q *Query) Wait(ctx context.Context) (*domain.Quote, error) {
	select {
	case <-q.done:
		return q.quote, q.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// QuoteService is the data access layer over a quote source.
// Every call reaches the source: nothing is cached and nothing is retried.
type QuoteService struct {
	source ports.QuoteSource
	logger *slog.Logger
}

// QuoteServiceConfig contains configuration for the quote service.
type QuoteServiceConfig struct {
	Source ports.QuoteSource
	Logger *slog.Logger
}

// NewQuoteService creates a new quote service.
// Panics if Source is nil. Defaults logger to slog.Default() if nil.
func NewQuoteService(cfg QuoteServiceConfig) *QuoteService {
	if cfg.Source == nil {
		panic("QuoteService: Source is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &QuoteService{
		source: cfg.Source,
		logger: logger.With(slog.String("component", "app.QuoteService")),
	}
}

// Random starts fetching a random quote.
func (s *QuoteService) Random(ctx context.Context) *Query {
	return s.run(ctx, "random", s.source.Random)
}

// ByID starts fetching the quote with the given identifier.
func (s *QuoteService) ByID(ctx context.Context, id string) *Query {
	return s.run(ctx, "by_id", func(ctx context.Context) (*domain.Quote, error) {
		return s.source.ByID(ctx, id)
	}, slog.String("quote_id", id))
}

// ByPermalink starts fetching the quote addressed by a slug pair.
func (s *QuoteService) ByPermalink(ctx context.Context, authorSlug, quoteSlug string) *Query {
	return s.run(ctx, "by_permalink", func(ctx context.Context) (*domain.Quote, error) {
		return s.source.ByPermalink(ctx, authorSlug, quoteSlug)
	}, slog.String("author_slug", authorSlug), slog.String("quote_slug", quoteSlug))
}

// Next starts fetching the quote after currentID.
func (s *QuoteService) Next(ctx context.Context, currentID string) *Query {
	return s.run(ctx, "next", func(ctx context.Context) (*domain.Quote, error) {
		return s.source.Next(ctx, currentID)
	}, slog.String("current_id", currentID))
}

// Previous starts fetching the quote before currentID.
func (s *QuoteService) Previous(ctx context.Context, currentID string) *Query {
	return s.run(ctx, "previous", func(ctx context.Context) (*domain.Quote, error) {
		return s.source.Previous(ctx, currentID)
	}, slog.String("current_id", currentID))
}

func (s *QuoteService) run(
	ctx context.Context,
	operation string,
	fetch func(context.Context) (*domain.Quote, error),
	attrs ...any,
) *Query {
	logger := s.logger.With(slog.String("operation", operation)).With(attrs...)
	logger.DebugContext(ctx, "fetching quote")

	return startQuery(ctx, func(ctx context.Context) (*domain.Quote, error) {
		quote, err := fetch(ctx)

		switch {
		case err == nil:
			logger.DebugContext(ctx, "fetched quote",
				slog.String("quote_id", quote.ID),
				slog.String("author", quote.Author.Name),
			)
		case domain.IsNotFound(err):
			logger.InfoContext(ctx, "quote not found")
		default:
			logger.ErrorContext(ctx, "failed to fetch quote", slog.Any("error", err))
		}

		return quote, err
	})
}
