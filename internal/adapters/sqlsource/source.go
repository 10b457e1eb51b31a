// Package sqlsource serves quotes from a read-only SQLite database.
//
// The database holds two tables:
//
//	authors(id INTEGER PRIMARY KEY, name TEXT, permalink TEXT)
//	quotes(id INTEGER PRIMARY KEY, quote TEXT, permalink TEXT, category TEXT, author_id INTEGER)
//
// Next and Previous step through quotes in id order.
package sqlsource

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/jsamuelsen/motivational-quotes/internal/domain"
)

// sourceName identifies the source in errors and health checks.
const sourceName = "quotes-sqlite"

// Schema creates the tables the source reads. The service never runs it; it
// is exported for seeding tools and tests.
const Schema = `
CREATE TABLE IF NOT EXISTS authors (
	id        INTEGER PRIMARY KEY,
	name      TEXT NOT NULL,
	permalink TEXT
);
CREATE TABLE IF NOT EXISTS quotes (
	id        INTEGER PRIMARY KEY,
	quote     TEXT NOT NULL,
	permalink TEXT,
	category  TEXT,
	author_id INTEGER NOT NULL REFERENCES authors(id)
);
CREATE INDEX IF NOT EXISTS quotes_permalink ON quotes(author_id, permalink);
CREATE UNIQUE INDEX IF NOT EXISTS authors_permalink ON authors(permalink);
`

const selectQuote = `
SELECT q.id, q.quote, COALESCE(q.permalink, ''), COALESCE(q.category, ''),
       a.id, a.name, COALESCE(a.permalink, '')
FROM quotes q
JOIN authors a ON a.id = q.author_id`

const (
	queryRandom      = selectQuote + ` ORDER BY RANDOM() LIMIT 1`
	queryByID        = selectQuote + ` WHERE q.id = ?`
	queryByPermalink = selectQuote + ` WHERE a.permalink = ? AND q.permalink = ? ORDER BY q.id LIMIT 1`
	queryNext        = selectQuote + ` WHERE q.id > ? ORDER BY q.id ASC LIMIT 1`
	queryPrevious    = selectQuote + ` WHERE q.id < ? ORDER BY q.id DESC LIMIT 1`
)

// Config configures a SQLite source.
type Config struct {
	// Path is the database file.
	Path string

	// Logger is an optional logger. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// Source implements ports.QuoteSource over SQLite.
type Source struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens the database read-only and verifies it answers.
func Open(ctx context.Context, cfg Config) (*Source, error) {
	if strings.TrimSpace(cfg.Path) == "" {
		return nil, errors.New("sqlite path is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sql.Open("sqlite", cfg.Path+"?_pragma=query_only(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to sqlite database: %w", err)
	}

	return &Source{
		db:     db,
		logger: logger.With(slog.String("component", "sqlsource.Source"), slog.String("path", cfg.Path)),
	}, nil
}

// Close releases the database handle.
func (s *Source) Close() error {
	return s.db.Close()
}

// Random returns a quote chosen by the database.
func (s *Source) Random(ctx context.Context) (*domain.Quote, error) {
	q, err := s.queryOne(ctx, queryRandom)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("quotes", "")
	}

	return q, err
}

// ByID returns the quote with the given integer id.
func (s *Source) ByID(ctx context.Context, id string) (*domain.Quote, error) {
	n, err := domain.ParseQuoteID(id)
	if err != nil {
		return nil, err
	}

	return s.lookup(ctx, id, queryByID, n)
}

// ByPermalink returns the quote with the given author and quote slugs.
func (s *Source) ByPermalink(ctx context.Context, authorSlug, quoteSlug string) (*domain.Quote, error) {
	if strings.TrimSpace(authorSlug) == "" || strings.TrimSpace(quoteSlug) == "" {
		return nil, domain.NewValidationError("permalink", "author and quote slugs are required")
	}

	return s.lookup(ctx, authorSlug+"/"+quoteSlug, queryByPermalink, authorSlug, quoteSlug)
}

// Next returns the quote with the smallest id greater than currentID.
func (s *Source) Next(ctx context.Context, currentID string) (*domain.Quote, error) {
	n, err := domain.ParseQuoteID(currentID)
	if err != nil {
		return nil, err
	}

	return s.lookup(ctx, currentID, queryNext, n)
}

// Previous returns the quote with the largest id less than currentID.
func (s *Source) Previous(ctx context.Context, currentID string) (*domain.Quote, error) {
	n, err := domain.ParseQuoteID(currentID)
	if err != nil {
		return nil, err
	}

	return s.lookup(ctx, currentID, queryPrevious, n)
}

func (s *Source) lookup(ctx context.Context, key, query string, args ...any) (*domain.Quote, error) {
	q, err := s.queryOne(ctx, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("quote", key)
	}

	return q, err
}

// queryOne scans a single row. sql.ErrNoRows is returned unchanged so callers
// can name what was missing; other failures become unavailable errors.
func (s *Source) queryOne(ctx context.Context, query string, args ...any) (*domain.Quote, error) {
	var (
		quoteID  int64
		authorID int64
		q        domain.Quote
	)

	err := s.db.QueryRowContext(ctx, query, args...).Scan(
		&quoteID, &q.Text, &q.Slug, &q.Category,
		&authorID, &q.Author.Name, &q.Author.Slug,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	if err != nil {
		s.logger.ErrorContext(ctx, "query failed", slog.Any("error", err))
		return nil, errors.Join(domain.NewUnavailableError(sourceName, "query failed"), err)
	}

	q.ID = strconv.FormatInt(quoteID, 10)
	q.Author.ID = strconv.FormatInt(authorID, 10)
	q.Text = strings.TrimSpace(q.Text)
	q.Author.Name = strings.TrimSpace(q.Author.Name)

	if err := q.Validate(); err != nil {
		s.logger.WarnContext(ctx, "rejected quote row", slog.String("quote_id", q.ID), slog.Any("error", err))
		return nil, err
	}

	return &q, nil
}

// Name returns the health check name.
func (s *Source) Name() string {
	return sourceName
}

// Check pings the database.
func (s *Source) Check(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
