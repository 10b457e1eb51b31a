package acl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/jsamuelsen/motivational-quotes/internal/adapters/clients"
	"github.com/jsamuelsen/motivational-quotes/internal/domain"
)

// GraphQLError is one entry of a GraphQL response "errors" array.
type GraphQLError struct {
	Message    string `json:"message"`
	Path       []any  `json:"path,omitempty"`
	Extensions struct {
		Code string `json:"code,omitempty"`
	} `json:"extensions"`
}

// Error codes reported in GraphQL error extensions.
const (
	// ExternalCodeNotFound indicates the quote does not exist.
	ExternalCodeNotFound = "NOT_FOUND"
	// ExternalCodeBadUserInput indicates an argument was rejected.
	ExternalCodeBadUserInput = "BAD_USER_INPUT"
	// ExternalCodeValidation indicates the document failed schema validation.
	ExternalCodeValidation = "GRAPHQL_VALIDATION_FAILED"
)

// errorEnvelope is the body of a failed GraphQL HTTP response.
type errorEnvelope struct {
	Errors []GraphQLError `json:"errors"`
}

// ParseErrorResponse attempts to read GraphQL errors from a response body.
// Returns nil if the body is empty or carries no errors.
func ParseErrorResponse(body io.Reader) []GraphQLError {
	if body == nil {
		return nil
	}

	var env errorEnvelope
	if err := json.NewDecoder(body).Decode(&env); err != nil {
		return nil
	}

	return env.Errors
}

// MapHTTPError maps a failed HTTP exchange to a domain error.
//
// Parameters:
//   - resp: The HTTP response (may be nil for transport errors)
//   - clientErr: Any error from the HTTP client (may be nil)
//   - serviceName: Name of the external service for error context
//   - operation: The operation being performed (e.g., "random quote")
//
// Every failure is the source being unavailable unless the body carries a
// GraphQL error code that says otherwise.
func MapHTTPError(resp *http.Response, clientErr error, serviceName, operation string) error {
	if clientErr != nil {
		return mapClientError(clientErr, serviceName, operation)
	}

	if resp == nil {
		return domain.NewUnavailableError(serviceName, "no response received")
	}

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return nil
	}

	if resp.Body != nil {
		if gqlErrs := ParseErrorResponse(resp.Body); len(gqlErrs) > 0 {
			return MapGraphQLErrors(gqlErrs, serviceName, operation, "")
		}
	}

	return domain.NewUnavailableError(serviceName,
		fmt.Sprintf("%s failed with status %d", operation, resp.StatusCode))
}

// mapClientError translates client-level errors to domain errors.
func mapClientError(err error, serviceName, operation string) error {
	switch {
	case errors.Is(err, clients.ErrCircuitOpen):
		return domain.NewUnavailableError(serviceName,
			fmt.Sprintf("circuit breaker open during %s", operation))

	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%s: %w", operation, errors.Join(
			domain.NewUnavailableError(serviceName, "request cancelled"),
			contextErr(err),
		))

	case errors.Is(err, clients.ErrServerError):
		return domain.NewUnavailableError(serviceName,
			fmt.Sprintf("%s: %v", operation, err))

	default:
		return domain.NewUnavailableError(serviceName,
			fmt.Sprintf("%s failed: %v", operation, err))
	}
}

func contextErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return context.DeadlineExceeded
	}

	return context.Canceled
}

// MapGraphQLErrors maps the errors array of a GraphQL response to a domain error.
// The first error decides the kind; all messages are kept for context.
func MapGraphQLErrors(errs []GraphQLError, serviceName, operation, entityID string) error {
	if len(errs) == 0 {
		return nil
	}

	messages := make([]string, 0, len(errs))
	for _, e := range errs {
		messages = append(messages, e.Message)
	}

	return MapExternalCode(errs[0].Extensions.Code, strings.Join(messages, "; "), serviceName, operation, entityID)
}

// MapExternalCode maps an external error code to a domain error.
func MapExternalCode(code, message, serviceName, operation, entityID string) error {
	switch code {
	case ExternalCodeNotFound:
		return domain.NewNotFoundError("quote", entityID)
	case ExternalCodeBadUserInput:
		return domain.NewValidationError("", message)
	case ExternalCodeValidation:
		return domain.NewUnavailableError(serviceName, fmt.Sprintf("%s rejected by schema: %s", operation, message))
	default:
		return domain.NewUnavailableError(serviceName, fmt.Sprintf("%s: %s", operation, message))
	}
}
