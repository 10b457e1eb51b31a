package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession(t *testing.T) {
	t.Parallel()

	existing := uuid.NewString()

	tests := []struct {
		name       string
		cookie     string
		wantIssued bool
	}{
		{"issues cookie when missing", "", true},
		{"keeps valid cookie", existing, false},
		{"replaces malformed cookie", "not-a-uuid", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var captured string

			router := gin.New()
			router.Use(Session("mq_session"))
			router.GET("/", func(c *gin.Context) {
				captured = GetSessionID(c)
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "mq_session", Value: tt.cookie})
			}

			router.ServeHTTP(w, req)

			cookies := w.Result().Cookies()

			if !tt.wantIssued {
				assert.Equal(t, tt.cookie, captured)
				assert.Empty(t, cookies)

				return
			}

			require.Len(t, cookies, 1)
			assert.Equal(t, "mq_session", cookies[0].Name)
			assert.Equal(t, captured, cookies[0].Value)
			assert.True(t, cookies[0].HttpOnly)
			assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)

			_, err := uuid.Parse(captured)
			assert.NoError(t, err)
		})
	}
}

func TestGetSessionID_WithoutMiddleware(t *testing.T) {
	t.Parallel()

	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	assert.Empty(t, GetSessionID(c))
}
