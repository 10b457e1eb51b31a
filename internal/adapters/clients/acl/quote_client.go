package acl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"log/slog"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/jsamuelsen/motivational-quotes/internal/adapters/clients"
	"github.com/jsamuelsen/motivational-quotes/internal/domain"
	"github.com/jsamuelsen/motivational-quotes/internal/platform/logging"
)

// quoteFields is the selection set shared by every quote query.
const quoteFields = `id quote permalink author { id name permalink }`

// GraphQL documents sent to the quote API.
const (
	randomQuoteQuery = `query RandomQuote { randomQuote { ` + quoteFields + ` } }`

	quoteByIDQuery = `query QuoteById($quoteId: Int!) { quoteById(id: $quoteId) { ` + quoteFields + ` } }`

	quoteByPermalinkQuery = `query QuoteByPermalink($author: String!, $permalink: String!) ` +
		`{ quoteByPermalink(author: $author, permalink: $permalink) { ` + quoteFields + ` } }`

	nextQuoteQuery = `query NextQuote($currentQuoteId: Int!) { nextQuote(currentQuoteId: $currentQuoteId) { ` + quoteFields + ` } }`

	prevQuoteQuery = `query PrevQuote($currentQuoteId: Int!) { prevQuote(currentQuoteId: $currentQuoteId) { ` + quoteFields + ` } }`

	healthQuery = `query Health { __typename }`
)

// QuoteClientConfig contains configuration for the quote client.
type QuoteClientConfig struct {
	// Client is the HTTP client to use for requests.
	// The client's BaseURL should be set to the quote API origin.
	Client *clients.Client

	// Path is the GraphQL endpoint path. Defaults to /graphql.
	Path string

	// Logger is the structured logger.
	Logger *slog.Logger
}

// QuoteClient implements ports.QuoteSource over the quote GraphQL API.
// It translates API records to domain quotes and never lets API types out.
type QuoteClient struct {
	BaseAdapter

	logger    *slog.Logger
	sanitizer *bluemonday.Policy
}

// NewQuoteClient creates a new quote client adapter.
// Panics if Client is nil. Defaults logger to slog.Default() if nil.
func NewQuoteClient(cfg QuoteClientConfig) *QuoteClient {
	if cfg.Client == nil {
		panic("QuoteClient: Client is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &QuoteClient{
		BaseAdapter: NewBaseAdapter(cfg.Client, cfg.Client.ServiceName(), cfg.Path),
		logger:      logger.With(slog.String("component", "acl.QuoteClient")),
		sanitizer:   bluemonday.StrictPolicy(),
	}
}

// externalID accepts GraphQL ids serialised as strings or numbers.
type externalID string

func (id *externalID) UnmarshalJSON(b []byte) error {
	if bytes.HasPrefix(b, []byte(`"`)) {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}

		*id = externalID(s)

		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("quote id: %w", err)
	}

	*id = externalID(n.String())

	return nil
}

// externalAuthor is the API author record. Never exposed outside the ACL.
type externalAuthor struct {
	ID        externalID `json:"id"`
	Name      string     `json:"name"`
	Permalink string     `json:"permalink"`
}

// externalQuote is the API quote record. Never exposed outside the ACL.
type externalQuote struct {
	ID        externalID     `json:"id"`
	Quote     string         `json:"quote"`
	Permalink string         `json:"permalink"`
	Category  string         `json:"category"`
	Author    externalAuthor `json:"author"`
}

type randomQuoteData struct {
	RandomQuote *externalQuote `json:"randomQuote"`
}

type quoteByIDData struct {
	QuoteByID *externalQuote `json:"quoteById"`
}

type quoteByPermalinkData struct {
	QuoteByPermalink *externalQuote `json:"quoteByPermalink"`
}

type nextQuoteData struct {
	NextQuote *externalQuote `json:"nextQuote"`
}

type prevQuoteData struct {
	PrevQuote *externalQuote `json:"prevQuote"`
}

// Random fetches a random quote.
func (c *QuoteClient) Random(ctx context.Context) (*domain.Quote, error) {
	data, err := execute[randomQuoteData](ctx, c, Request{
		Query:         randomQuoteQuery,
		OperationName: "RandomQuote",
	}, "")
	if err != nil {
		return nil, err
	}

	return c.translate(ctx, data.RandomQuote, "")
}

// ByID fetches a quote by its numeric identifier.
func (c *QuoteClient) ByID(ctx context.Context, id string) (*domain.Quote, error) {
	quoteID, err := domain.ParseQuoteID(id)
	if err != nil {
		return nil, err
	}

	data, err := execute[quoteByIDData](ctx, c, Request{
		Query:         quoteByIDQuery,
		OperationName: "QuoteById",
		Variables:     map[string]any{"quoteId": quoteID},
	}, id)
	if err != nil {
		return nil, err
	}

	return c.translate(ctx, data.QuoteByID, id)
}

// ByPermalink fetches the quote addressed by an author and quote permalink.
func (c *QuoteClient) ByPermalink(ctx context.Context, authorSlug, quoteSlug string) (*domain.Quote, error) {
	if err := ValidateRequired(authorSlug, "author"); err != nil {
		return nil, err
	}

	if err := ValidateRequired(quoteSlug, "permalink"); err != nil {
		return nil, err
	}

	data, err := execute[quoteByPermalinkData](ctx, c, Request{
		Query:         quoteByPermalinkQuery,
		OperationName: "QuoteByPermalink",
		Variables:     map[string]any{"author": authorSlug, "permalink": quoteSlug},
	}, "")
	if err != nil {
		return nil, err
	}

	return c.translate(ctx, data.QuoteByPermalink, authorSlug+"/"+quoteSlug)
}

// Next fetches the quote the API orders after currentID.
func (c *QuoteClient) Next(ctx context.Context, currentID string) (*domain.Quote, error) {
	quoteID, err := domain.ParseQuoteID(currentID)
	if err != nil {
		return nil, err
	}

	data, err := execute[nextQuoteData](ctx, c, Request{
		Query:         nextQuoteQuery,
		OperationName: "NextQuote",
		Variables:     map[string]any{"currentQuoteId": quoteID},
	}, "")
	if err != nil {
		return nil, err
	}

	return c.translate(ctx, data.NextQuote, "")
}

// Previous fetches the quote the API orders before currentID.
func (c *QuoteClient) Previous(ctx context.Context, currentID string) (*domain.Quote, error) {
	quoteID, err := domain.ParseQuoteID(currentID)
	if err != nil {
		return nil, err
	}

	data, err := execute[prevQuoteData](ctx, c, Request{
		Query:         prevQuoteQuery,
		OperationName: "PrevQuote",
		Variables:     map[string]any{"currentQuoteId": quoteID},
	}, "")
	if err != nil {
		return nil, err
	}

	return c.translate(ctx, data.PrevQuote, "")
}

func execute[T any](ctx context.Context, c *QuoteClient, req Request, entityID string) (*T, error) {
	c.logger.Log(ctx, logging.LevelTrace, "sending query",
		slog.String("operation", req.OperationName),
		slog.Any("variables", req.Variables),
	)

	data, err := Execute[T](ctx, &c.BaseAdapter, req, entityID)
	if err != nil {
		c.logger.DebugContext(ctx, "query failed",
			slog.String("operation", req.OperationName),
			slog.Any("error", err),
		)

		return nil, err
	}

	return data, nil
}

// translate converts an API record to a domain quote.
// A null record is the API's way of saying there is no such quote.
func (c *QuoteClient) translate(ctx context.Context, ext *externalQuote, entityID string) (*domain.Quote, error) {
	if ext == nil {
		return nil, domain.NewNotFoundError("quote", entityID)
	}

	quote := &domain.Quote{
		ID:       strings.TrimSpace(string(ext.ID)),
		Text:     c.clean(ext.Quote),
		Slug:     strings.TrimSpace(ext.Permalink),
		Category: c.clean(ext.Category),
		Author: domain.Author{
			ID:   strings.TrimSpace(string(ext.Author.ID)),
			Name: c.clean(ext.Author.Name),
			Slug: strings.TrimSpace(ext.Author.Permalink),
		},
	}

	if err := ValidateRequired(quote.ID, "id"); err != nil {
		return nil, err
	}

	if err := quote.Validate(); err != nil {
		c.logger.WarnContext(ctx, "rejected quote record",
			slog.String("quote_id", quote.ID),
			slog.Any("error", err),
		)

		return nil, err
	}

	c.logger.Log(ctx, logging.LevelTrace, "translated external DTO to domain",
		slog.String("quote_id", quote.ID),
		slog.String("author", quote.Author.Name))

	return quote, nil
}

// clean strips markup from upstream text and returns it as plain text.
func (c *QuoteClient) clean(s string) string {
	return strings.TrimSpace(html.UnescapeString(c.sanitizer.Sanitize(s)))
}

// Name returns the health check name for this client.
// Implements ports.HealthChecker.
func (c *QuoteClient) Name() string {
	return c.ServiceName()
}

// Check verifies the API answers GraphQL queries.
// Implements ports.HealthChecker.
func (c *QuoteClient) Check(ctx context.Context) error {
	_, err := Execute[struct {
		Typename string `json:"__typename"`
	}](ctx, &c.BaseAdapter, Request{Query: healthQuery, OperationName: "Health"}, "")

	return err
}
