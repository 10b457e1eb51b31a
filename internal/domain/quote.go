// Package domain contains core business entities and rules.
package domain

import (
	"strconv"
	"strings"
)

// Author is the person a quote is attributed to.
type Author struct {
	// ID is the upstream identifier of the author.
	ID string

	// Name is the display name.
	Name string

	// Slug is the URL-safe permalink segment for the author. Optional.
	Slug string
}

// Quote is an immutable quotation value fetched fresh on every navigation.
// It has no knowledge of where it was loaded from.
type Quote struct {
	// ID is the opaque identifier used by the quote source.
	ID string

	// Text is the quotation itself.
	Text string

	// Slug is the URL-safe permalink segment for the quote. Optional.
	Slug string

	// Category is the free-text, comma separated tag list. Optional.
	Category string

	// Author is who said or wrote the quote.
	Author Author
}

// Tags returns the parsed category tags of the quote.
func (q *Quote) Tags() []string {
	return ParseTags(q.Category)
}

// Validate reports whether the quote can be displayed.
// A displayable quote has non-blank text and a non-blank author name.
func (q *Quote) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return NewValidationError("quote", "text is required")
	}

	if strings.TrimSpace(q.Author.Name) == "" {
		return NewValidationError("author", "name is required")
	}

	return nil
}

// ParseTags splits a comma separated category string into tags.
// Whitespace around each tag is trimmed and empty segments are discarded,
// so "a, b ,,c" yields [a b c] and "" yields nil.
func ParseTags(category string) []string {
	if strings.TrimSpace(category) == "" {
		return nil
	}

	var tags []string
	for _, part := range strings.Split(category, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}

	return tags
}

// ParseQuoteID parses a numeric quote identifier.
// Sources that address quotes by position or integer key share this rule.
func ParseQuoteID(id string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(id))
	if err != nil || n <= 0 {
		return 0, NewValidationErrorWithValue("id", "must be a positive integer", id)
	}

	return n, nil
}
