// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter (always) for cancellation and deadlines
//   - Return domain types, never external DTOs or infrastructure types
//   - Error returns use domain error types (ErrNotFound, ErrUnavailable, etc.)
//   - Keep interfaces small and focused
package ports

import (
	"context"

	"github.com/jsamuelsen/motivational-quotes/internal/domain"
)

// QuoteSource is the read-only data access contract for quotes.
// Exactly one source backs the service: the GraphQL API, a CSV file or SQLite.
//
// Every method returns either a quote or an error. An absent quote (the "null"
// answer of the upstream API) is reported as a domain.NotFoundError, so callers
// test with domain.IsNotFound. Transport and query failures are reported as
// domain.UnavailableError; malformed records as domain.ValidationError.
//
// Implementations must not retry and must not cache.
type QuoteSource interface {
	// Random returns one quote chosen by the source.
	// Successive calls may return the same quote.
	Random(ctx context.Context) (*domain.Quote, error)

	// ByID returns the quote with the given identifier.
	ByID(ctx context.Context, id string) (*domain.Quote, error)

	// ByPermalink returns the quote addressed by an author slug and a quote slug.
	ByPermalink(ctx context.Context, authorSlug, quoteSlug string) (*domain.Quote, error)

	// Next returns the quote the source orders after currentID.
	// At the end of the ordering the source reports not found.
	Next(ctx context.Context, currentID string) (*domain.Quote, error)

	// Previous returns the quote the source orders before currentID.
	Previous(ctx context.Context, currentID string) (*domain.Quote, error)
}

// NavigationRecorder receives navigation outcomes for metrics.
type NavigationRecorder interface {
	// RecordNavigation counts a random, next or previous navigation by outcome.
	RecordNavigation(action, outcome string)

	// RecordLookup counts a direct id or permalink lookup by outcome.
	RecordLookup(kind, outcome string)
}
