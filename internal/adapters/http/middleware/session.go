package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jsamuelsen/motivational-quotes/internal/platform/logging"
)

const (
	// ContextKeySessionID is the gin context key holding the visitor session id.
	ContextKeySessionID = "session_id"

	// sessionCookieMaxAge keeps the cookie for a browser session only.
	sessionCookieMaxAge = 0
)

// Session returns middleware that identifies the visitor by a cookie.
// A missing or malformed cookie is replaced with a fresh UUID. The id is
// stored in the gin context and added to the context logger.
func Session(cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(cookieName)
		if _, parseErr := uuid.Parse(id); err != nil || parseErr != nil {
			id = uuid.NewString()

			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(cookieName, id, sessionCookieMaxAge, "/", "", c.Request.TLS != nil, true)
		}

		c.Set(ContextKeySessionID, id)
		c.Request = c.Request.WithContext(logging.WithSessionID(c.Request.Context(), id))

		c.Next()
	}
}

// GetSessionID returns the visitor session id, or "" without Session middleware.
func GetSessionID(c *gin.Context) string {
	return getIDFromContext(c, ContextKeySessionID)
}
