package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/motivational-quotes/internal/platform/logging"
)

// Logging logs "request started" and "request completed" for every request
// outside /-/ and the extra skip paths. Entries go through the request-scoped
// logger when one is in the context, so they carry the request, correlation
// and session ids; logger is the fallback.
func Logging(logger *slog.Logger, skip ...string) gin.HandlerFunc {
	skipped := append(skipper{opsPrefix}, skip...)

	return func(c *gin.Context) {
		if skipped.match(c.Request.URL.Path) {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		log := logging.FromContextOr(ctx, logger).With(
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.RequestURI()),
		)

		log.Info("request started", slog.String("client_ip", c.ClientIP()), slog.String("user_agent", c.Request.UserAgent()))

		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		elapsed := time.Since(start)

		log.Log(ctx, statusLevel(status), "request completed",
			slog.String("route", c.FullPath()),
			slog.Int("status", status),
			slog.Duration("latency", elapsed),
			slog.Int64("latency_ms", elapsed.Milliseconds()),
			slog.Int("bytes", c.Writer.Size()),
		)
	}
}

func statusLevel(status int) slog.Level {
	if status >= http.StatusInternalServerError {
		return slog.LevelError
	}

	if status >= http.StatusBadRequest {
		return slog.LevelWarn
	}

	return slog.LevelInfo
}
