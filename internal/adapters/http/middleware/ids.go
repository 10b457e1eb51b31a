// Package middleware holds the Gin middleware shared by the quote pages and the JSON API.
package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jsamuelsen/motivational-quotes/internal/platform/logging"
)

const (
	// HeaderRequestID identifies a single request.
	HeaderRequestID = "X-Request-ID"

	// HeaderCorrelationID follows one visitor action across the quote API calls it causes.
	HeaderCorrelationID = "X-Correlation-ID"

	// ContextKeyRequestID is the gin context key for the request id.
	ContextKeyRequestID = "request_id"

	// ContextKeyCorrelationID is the gin context key for the correlation id.
	ContextKeyCorrelationID = "correlation_id"

	// maxInboundIDLen caps ids accepted from clients before they reach logs
	// and upstream headers.
	maxInboundIDLen = 128

	missingID = "unknown"
)

type idKey int

const (
	requestIDKey idKey = iota
	correlationIDKey
)

// tracedID describes one propagated identifier.
type tracedID struct {
	header string
	ginKey string
	ctxKey idKey
	enrich func(context.Context, string) context.Context
}

var (
	requestIDs = tracedID{
		header: HeaderRequestID,
		ginKey: ContextKeyRequestID,
		ctxKey: requestIDKey,
		enrich: logging.WithRequestID,
	}
	correlationIDs = tracedID{
		header: HeaderCorrelationID,
		ginKey: ContextKeyCorrelationID,
		ctxKey: correlationIDKey,
		enrich: logging.WithCorrelationID,
	}
)

// RequestID accepts a client X-Request-ID or mints a UUID, echoes it on the
// response and makes it visible to handlers, the context logger and the
// quote API client.
func RequestID() gin.HandlerFunc {
	return requestIDs.middleware()
}

// CorrelationID does the same for X-Correlation-ID.
func CorrelationID() gin.HandlerFunc {
	return correlationIDs.middleware()
}

func (t tracedID) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(t.header)
		if !acceptableID(id) {
			id = uuid.NewString()
		}

		c.Set(t.ginKey, id)
		c.Header(t.header, id)

		ctx := context.WithValue(c.Request.Context(), t.ctxKey, id)
		c.Request = c.Request.WithContext(t.enrich(ctx, id))

		c.Next()
	}
}

// acceptableID rejects empty, oversized or non-printable ASCII values.
func acceptableID(id string) bool {
	if id == "" || len(id) > maxInboundIDLen {
		return false
	}

	for i := range len(id) {
		if id[i] < 0x21 || id[i] > 0x7e {
			return false
		}
	}

	return true
}

// GetRequestID returns the request id, or "" when RequestID did not run.
func GetRequestID(c *gin.Context) string {
	return getIDFromContext(c, ContextKeyRequestID)
}

// MustGetRequestID is GetRequestID with an "unknown" placeholder.
func MustGetRequestID(c *gin.Context) string {
	return orMissing(GetRequestID(c))
}

// GetCorrelationID returns the correlation id, or "" when CorrelationID did not run.
func GetCorrelationID(c *gin.Context) string {
	return getIDFromContext(c, ContextKeyCorrelationID)
}

// MustGetCorrelationID is GetCorrelationID with an "unknown" placeholder.
func MustGetCorrelationID(c *gin.Context) string {
	return orMissing(GetCorrelationID(c))
}

// RequestIDFromContext is read by the quote API client to forward X-Request-ID.
func RequestIDFromContext(ctx context.Context) string {
	return idFrom(ctx, requestIDKey)
}

// CorrelationIDFromContext is read by the quote API client to forward X-Correlation-ID.
func CorrelationIDFromContext(ctx context.Context) string {
	return idFrom(ctx, correlationIDKey)
}

// ContextWithRequestID stores id for RequestIDFromContext.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// ContextWithCorrelationID stores id for CorrelationIDFromContext.
func ContextWithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey, id)
}

func idFrom(ctx context.Context, key idKey) string {
	if ctx == nil {
		return ""
	}

	id, _ := ctx.Value(key).(string)

	return id
}

func getIDFromContext(c *gin.Context, key string) string {
	return c.GetString(key)
}

func orMissing(id string) string {
	if id == "" {
		return missingID
	}

	return id
}
