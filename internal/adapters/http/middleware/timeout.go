package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/motivational-quotes/internal/adapters/http/dto"
	"github.com/jsamuelsen/motivational-quotes/internal/platform/logging"
)

// Timeout puts a deadline of d on every request outside skip. Handlers run
// inline and are expected to stop once the context is done. If the deadline
// passed before anything was written, the client gets a 504 TIMEOUT envelope.
func Timeout(d time.Duration, skip ...string) gin.HandlerFunc {
	skipped := skipper(skip)

	return func(c *gin.Context) {
		if skipped.match(c.Request.URL.Path) {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		if !errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return
		}

		traceID := dto.GetTraceID(c)
		logging.FromContext(ctx).Warn("request deadline exceeded",
			slog.String("route", c.FullPath()),
			slog.Duration("timeout", d),
			slog.Bool("written", c.Writer.Written()),
		)

		if c.Writer.Written() {
			c.Abort()
			return
		}

		c.AbortWithStatusJSON(dto.HTTPStatusFromCode(dto.ErrorCodeTimeout),
			dto.NewErrorResponse(dto.ErrorCodeTimeout, "request timeout exceeded").WithTraceID(traceID))
	}
}
