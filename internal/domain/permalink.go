package domain

import (
	"fmt"
	"net/url"
	"strings"
)

// PermalinkPolicy selects how a quote maps to a navigable path.
type PermalinkPolicy string

const (
	// PolicyID addresses quotes as /quote/{id}.
	PolicyID PermalinkPolicy = "id"

	// PolicySlug addresses quotes as /{authorSlug}/{quoteSlug}.
	PolicySlug PermalinkPolicy = "slug"
)

// NotFoundPath is the destination for direct lookups that resolve to nothing.
const NotFoundPath = "/not-found"

// quotePathPrefix is the first segment of id-policy paths.
const quotePathPrefix = "quote"

// reservedSegments can never be author slugs because the router owns them.
var reservedSegments = map[string]struct{}{
	quotePathPrefix: {},
	"not-found":     {},
	"actions":       {},
	"api":           {},
	"static":        {},
	"-":             {},
}

// Target is the parsed form of a quote path.
// Exactly one of ID or the (AuthorSlug, QuoteSlug) pair is set.
type Target struct {
	ID         string
	AuthorSlug string
	QuoteSlug  string
}

// IsPermalink reports whether the target addresses a quote by slug pair.
func (t Target) IsPermalink() bool {
	return t.ID == "" && t.AuthorSlug != "" && t.QuoteSlug != ""
}

// Resolver derives paths from quotes and parses them back.
// Only one policy is active for a resolver.
type Resolver struct {
	policy PermalinkPolicy
}

// NewResolver creates a resolver for the given policy.
func NewResolver(policy PermalinkPolicy) (*Resolver, error) {
	switch policy {
	case PolicyID, PolicySlug:
		return &Resolver{policy: policy}, nil
	default:
		return nil, fmt.Errorf("unknown permalink policy %q", policy)
	}
}

// Policy returns the active policy.
func (r *Resolver) Policy() PermalinkPolicy {
	return r.policy
}

// BuildPath returns the path of a quote under the active policy.
// The result depends only on identifiers and slugs, never on the quote text.
// Under the slug policy a quote missing either slug falls back to its id path.
func (r *Resolver) BuildPath(q *Quote) string {
	if r.policy == PolicySlug && q.Slug != "" && q.Author.Slug != "" && !isReserved(q.Author.Slug) {
		return "/" + url.PathEscape(q.Author.Slug) + "/" + url.PathEscape(q.Slug)
	}

	return "/" + quotePathPrefix + "/" + url.PathEscape(q.ID)
}

// ParsePath reverses BuildPath. It accepts id paths under either policy
// so that fallbacks stay reachable, and slug paths only under the slug policy.
func (r *Resolver) ParsePath(path string) (Target, bool) {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) != 2 { //nolint:mnd // both path shapes have exactly two segments
		return Target{}, false
	}

	first, err := url.PathUnescape(segments[0])
	if err != nil || first == "" {
		return Target{}, false
	}

	second, err := url.PathUnescape(segments[1])
	if err != nil || second == "" {
		return Target{}, false
	}

	if first == quotePathPrefix {
		return Target{ID: second}, true
	}

	if r.policy != PolicySlug || isReserved(first) {
		return Target{}, false
	}

	return Target{AuthorSlug: first, QuoteSlug: second}, true
}

func isReserved(segment string) bool {
	_, ok := reservedSegments[segment]
	return ok
}
