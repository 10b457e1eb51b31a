// Package csvsource serves quotes from a flat CSV file.
//
// The file has a header row naming at least the "quote" and "author" columns
// and optionally "category". Quote ids are 1-based positions among the rows
// that were kept, so Next and Previous step through file order.
package csvsource

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/jsamuelsen/motivational-quotes/internal/domain"
)

// sourceName identifies the source in errors and health checks.
const sourceName = "quotes-csv"

// Column names recognised in the header row.
const (
	columnQuote    = "quote"
	columnAuthor   = "author"
	columnCategory = "category"
)

// ErrNoQuotes is reported by the health check when nothing is loaded.
var ErrNoQuotes = errors.New("no quotes loaded")

// Config configures a CSV source.
type Config struct {
	// Path is the CSV file to read.
	Path string

	// Strict rejects the whole file when a row lacks quote text or author.
	// Otherwise such rows are dropped with a warning.
	Strict bool

	// Logger is an optional logger. If nil, slog.Default() is used.
	Logger *slog.Logger

	// IntN picks a random index in [0, n). Defaults to math/rand/v2.IntN.
	IntN func(n int) int
}

// collection is an immutable snapshot of the file.
type collection struct {
	quotes      []*domain.Quote
	byPermalink map[string]int
	loadedAt    time.Time
}

// Source implements ports.QuoteSource over a CSV file.
// Reloads swap the whole collection, so readers never see a partial file.
type Source struct {
	path    string
	strict  bool
	logger  *slog.Logger
	intN    func(n int) int
	current atomic.Pointer[collection]
}

// New creates a source and loads the file.
func New(cfg Config) (*Source, error) {
	if strings.TrimSpace(cfg.Path) == "" {
		return nil, errors.New("csv path is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	intN := cfg.IntN
	if intN == nil {
		intN = rand.IntN
	}

	s := &Source{
		path:   cfg.Path,
		strict: cfg.Strict,
		logger: logger.With(slog.String("component", "csvsource.Source"), slog.String("path", cfg.Path)),
		intN:   intN,
	}

	if err := s.Reload(); err != nil {
		return nil, err
	}

	return s, nil
}

// Reload reads the file again and replaces the collection.
// On failure the previous collection stays in service.
func (s *Source) Reload() error {
	f, err := os.Open(s.path)
	if err != nil {
		return fmt.Errorf("opening quotes file: %w", err)
	}
	defer func() { _ = f.Close() }()

	quotes, err := Parse(f, s.strict, s.logger)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", s.path, err)
	}

	s.current.Store(newCollection(quotes))
	s.logger.Info("loaded quotes", slog.Int("count", len(quotes)))

	return nil
}

// Len returns the number of loaded quotes.
func (s *Source) Len() int {
	return len(s.snapshot().quotes)
}

// LoadedAt returns when the current collection was loaded.
func (s *Source) LoadedAt() time.Time {
	return s.snapshot().loadedAt
}

func (s *Source) snapshot() *collection {
	if c := s.current.Load(); c != nil {
		return c
	}

	return &collection{}
}

// Parse reads quotes from CSV. Rows without quote text or author are dropped
// with a warning, or fail the parse when strict is set.
func Parse(r io.Reader, strict bool, logger *slog.Logger) ([]*domain.Quote, error) {
	if logger == nil {
		logger = slog.Default()
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	cols, err := headerColumns(header)
	if err != nil {
		return nil, err
	}

	var (
		quotes    []*domain.Quote
		authorIDs = make(map[string]string)
	)

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("reading row: %w", err)
		}

		line, _ := reader.FieldPos(0)

		text := field(record, cols[columnQuote])
		author := field(record, cols[columnAuthor])

		if text == "" || author == "" {
			rowErr := domain.NewValidationErrorWithValue("row",
				fmt.Sprintf("line %d: quote and author are required", line), line)
			if strict {
				return nil, rowErr
			}

			logger.Warn("dropping malformed row", slog.Int("line", line))

			continue
		}

		authorID, ok := authorIDs[author]
		if !ok {
			authorID = strconv.Itoa(len(authorIDs) + 1)
			authorIDs[author] = authorID
		}

		quotes = append(quotes, &domain.Quote{
			ID:       strconv.Itoa(len(quotes) + 1),
			Text:     text,
			Slug:     quoteSlug(text),
			Category: field(record, cols[columnCategory]),
			Author: domain.Author{
				ID:   authorID,
				Name: author,
				Slug: Slugify(author),
			},
		})
	}

	dedupeSlugs(quotes)

	return quotes, nil
}

// headerColumns maps column names to indexes. Missing optional columns map to -1.
func headerColumns(header []string) (map[string]int, error) {
	cols := map[string]int{columnQuote: -1, columnAuthor: -1, columnCategory: -1}

	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\uFEFF")))
		if _, ok := cols[name]; ok {
			cols[name] = i
		}
	}

	for _, required := range []string{columnQuote, columnAuthor} {
		if cols[required] < 0 {
			return nil, fmt.Errorf("header is missing the %q column", required)
		}
	}

	return cols, nil
}

func field(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}

	return strings.TrimSpace(record[idx])
}

// dedupeSlugs makes every (author, quote) slug pair unique. The first quote
// with a slug keeps it, and so does any quote whose slug is already unique;
// later repeats take the lowest free -2, -3... suffix that no other quote of
// that author uses.
func dedupeSlugs(quotes []*domain.Quote) {
	taken := make(map[string]bool, len(quotes))
	for _, q := range quotes {
		taken[q.Author.Slug+"/"+q.Slug] = true
	}

	kept := make(map[string]bool, len(quotes))

	for _, q := range quotes {
		key := q.Author.Slug + "/" + q.Slug
		if !kept[key] {
			kept[key] = true
			continue
		}

		for n := 2; ; n++ {
			slug := fmt.Sprintf("%s-%d", q.Slug, n)
			if candidate := q.Author.Slug + "/" + slug; !taken[candidate] {
				taken[candidate] = true
				kept[candidate] = true
				q.Slug = slug

				break
			}
		}
	}
}

func newCollection(quotes []*domain.Quote) *collection {
	c := &collection{
		quotes:      quotes,
		byPermalink: make(map[string]int, len(quotes)),
		loadedAt:    time.Now(),
	}

	for i, q := range quotes {
		if q.Slug == "" || q.Author.Slug == "" {
			continue
		}

		c.byPermalink[q.Author.Slug+"/"+q.Slug] = i
	}

	return c
}

// Random returns a uniformly chosen quote.
func (s *Source) Random(_ context.Context) (*domain.Quote, error) {
	c := s.snapshot()
	if len(c.quotes) == 0 {
		return nil, domain.NewNotFoundError("quotes", "")
	}

	return c.at(s.intN(len(c.quotes)))
}

// ByID returns the quote at a 1-based position.
func (s *Source) ByID(_ context.Context, id string) (*domain.Quote, error) {
	pos, err := domain.ParseQuoteID(id)
	if err != nil {
		return nil, err
	}

	return s.snapshot().at(pos - 1)
}

// ByPermalink returns the quote with the given author and quote slugs.
func (s *Source) ByPermalink(_ context.Context, authorSlug, quoteSlug string) (*domain.Quote, error) {
	c := s.snapshot()

	idx, ok := c.byPermalink[authorSlug+"/"+quoteSlug]
	if !ok {
		return nil, domain.NewNotFoundError("quote", authorSlug+"/"+quoteSlug)
	}

	return c.at(idx)
}

// Next returns the quote after currentID. There is no wrap-around.
func (s *Source) Next(_ context.Context, currentID string) (*domain.Quote, error) {
	pos, err := domain.ParseQuoteID(currentID)
	if err != nil {
		return nil, err
	}

	return s.snapshot().at(pos)
}

// Previous returns the quote before currentID. There is no wrap-around.
func (s *Source) Previous(_ context.Context, currentID string) (*domain.Quote, error) {
	pos, err := domain.ParseQuoteID(currentID)
	if err != nil {
		return nil, err
	}

	return s.snapshot().at(pos - 2) //nolint:mnd // ids are 1-based
}

// at returns a copy of the quote at a 0-based index.
func (c *collection) at(idx int) (*domain.Quote, error) {
	if idx < 0 || idx >= len(c.quotes) {
		return nil, domain.NewNotFoundError("quote", strconv.Itoa(idx+1))
	}

	q := *c.quotes[idx]

	return &q, nil
}

// Name returns the health check name.
func (s *Source) Name() string {
	return sourceName
}

// Check reports the source unhealthy when no quotes are loaded.
func (s *Source) Check(_ context.Context) error {
	if s.Len() == 0 {
		return ErrNoQuotes
	}

	return nil
}
