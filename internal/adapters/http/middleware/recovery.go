package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/motivational-quotes/internal/adapters/http/dto"
	"github.com/jsamuelsen/motivational-quotes/internal/platform/logging"
)

// panicPage does not go through the template set, which may be what panicked.
const panicPage = `<!DOCTYPE html>
<html lang="en"><head><meta charset="utf-8"><title>A Motivational Quote</title></head>
<body><h1>Something went wrong</h1><p>An internal error occurred.</p><p><a href="/">Go to Home</a></p></body></html>`

// Recovery turns a panic into a 500. The value and stack are logged through
// the request logger, or logger when the panic happened before one was set.
// API callers get the JSON error envelope and browsers a static page.
// Nothing is sent if the handler already started its response.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			traceID := dto.GetTraceID(c)
			logging.FromContextOr(c.Request.Context(), logger).Error("panic recovered",
				slog.Any("error", r),
				slog.String("stack", string(debug.Stack())),
				slog.String("method", c.Request.Method),
				slog.String("path", c.Request.URL.Path),
				slog.String("trace_id", traceID),
			)

			switch {
			case c.Writer.Written():
				c.Abort()
			case prefersJSON(c):
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					dto.NewErrorResponse(dto.ErrorCodeInternal, "an internal error occurred").WithTraceID(traceID))
			default:
				c.Data(http.StatusInternalServerError, "text/html; charset=utf-8", []byte(panicPage))
				c.Abort()
			}
		}()

		c.Next()
	}
}

// prefersJSON is true under /api/ and for clients that rank JSON above HTML.
func prefersJSON(c *gin.Context) bool {
	return strings.HasPrefix(c.Request.URL.Path, "/api/") ||
		c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON
}
