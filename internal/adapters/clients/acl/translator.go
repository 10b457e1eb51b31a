package acl

import (
	"bytes"
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

// BaseAdapter provides common functionality for GraphQL ACL adapters.
// Embed this in your service-specific adapters.
type BaseAdapter struct {
	client      *clients.Client
	serviceName string
	path        string
}

// NewBaseAdapter creates a new base adapter posting GraphQL documents to path.
func NewBaseAdapter(client *clients.Client, serviceName, path string) BaseAdapter {
	if path == "" {
		path = "/graphql"
	}

	return BaseAdapter{
		client:      client,
		serviceName: serviceName,
		path:        path,
	}
}

// Client returns the underlying HTTP client.
func (a *BaseAdapter) Client() *clients.Client {
	return a.client
}

// ServiceName returns the name of the external service.
func (a *BaseAdapter) ServiceName() string {
	return a.serviceName
}

// Post performs a POST request and returns the response body.
// On failure, returns a mapped domain error.
func (a *BaseAdapter) Post(ctx context.Context, body io.Reader, operation string) (io.ReadCloser, error) {
	resp, err := a.client.Post(ctx, a.path, body)
	if err != nil {
		return nil, MapHTTPError(nil, err, a.serviceName, operation)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		defer func() { _ = resp.Body.Close() }()

		return nil, MapHTTPError(resp, nil, a.serviceName, operation)
	}

	return resp.Body, nil
}

// Request is a GraphQL request document.
type Request struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName,omitempty"`
	Variables     map[string]any `json:"variables,omitempty"`
}

// Response is a GraphQL response with typed data.
type Response[T any] struct {
	Data   *T             `json:"data"`
	Errors []GraphQLError `json:"errors,omitempty"`
}

// Execute posts a GraphQL request and decodes its data into T.
// GraphQL errors are mapped to domain errors; entityID names the looked-up
// quote for not-found errors.
func Execute[T any](ctx context.Context, a *BaseAdapter, req Request, entityID string) (*T, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding %s request: %w", req.OperationName, err)
	}

	body, err := a.Post(ctx, bytes.NewReader(payload), req.OperationName)
	if err != nil {
		return nil, err
	}

	resp, err := DecodeResponse[Response[T]](body)
	if err != nil {
		return nil, domain.NewUnavailableError(a.serviceName, err.Error())
	}

	if len(resp.Errors) > 0 {
		return nil, MapGraphQLErrors(resp.Errors, a.serviceName, req.OperationName, entityID)
	}

	if resp.Data == nil {
		return nil, domain.NewUnavailableError(a.serviceName, req.OperationName+" returned no data")
	}

	return resp.Data, nil
}

// DecodeResponse reads and decodes a JSON response body into the target type.
// Closes the body after reading.
func DecodeResponse[T any](body io.ReadCloser) (*T, error) {
	if body == nil {
		return nil, errors.New("response body is nil")
	}
	defer func() { _ = body.Close() }()

	var result T
	if err := json.NewDecoder(body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return &result, nil
}

// ValidateRequired checks that a required field is not blank.
// Returns a domain.ValidationError if the field is blank.
func ValidateRequired(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return domain.NewValidationError(fieldName, "is required")
	}

	return nil
}
