// Package acl is the Anti-Corruption Layer between the quote GraphQL API and
// the domain.
//
// The API speaks in its own records (numeric ids, "permalink" fields, nullable
// results, an "errors" array). Nothing of that shape leaves this package:
//
//   - API records are unexported DTOs translated to [domain.Quote]
//   - A null result becomes [domain.ErrNotFound]
//   - Markup in upstream text is stripped before it reaches templates
//   - Records without text or author are rejected as [domain.ErrValidation]
//
// # Package Components
//
//   - [BaseAdapter]: Embeddable struct that posts GraphQL documents
//   - [Execute]: Generic request/decode helper returning typed data
//   - [MapHTTPError]: Transport and status failures to domain errors
//   - [MapGraphQLErrors]: GraphQL error codes to domain errors
//   - [QuoteClient]: The ports.QuoteSource implementation
//
// # Error Handling Strategy
//
//   - NOT_FOUND code or null data → [domain.ErrNotFound]
//   - BAD_USER_INPUT → [domain.ErrValidation]
//   - Any other GraphQL error, non-2xx status, transport failure or open
//     circuit → [domain.ErrUnavailable]
//
// Requests are sent once. There is no retry at this layer or below it.
package acl
