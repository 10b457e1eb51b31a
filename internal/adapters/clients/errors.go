// Package clients talks to downstream HTTP services, in practice the quote
// GraphQL API, through a circuit breaker.
package clients

import "errors"

// Transport failures. The acl layer translates them into domain errors.
var (
	// ErrCircuitOpen means the breaker rejected the call without sending it.
	ErrCircuitOpen = errors.New("circuit breaker open")

	// ErrRequestFailed wraps a transport error: refused connection, timeout
	// or cancelled context.
	ErrRequestFailed = errors.New("request failed")

	// ErrServerError means the downstream answered 5xx. The body is closed.
	ErrServerError = errors.New("server error")
)
