package dto

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/motivational-quotes/internal/domain"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestContext(method, body string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest(method, "/", strings.NewReader(body))
	if body != "" {
		c.Request.Header.Set("Content-Type", "application/json")
	}

	return c, w
}

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponse(ErrorCodeNotFound, "quote not found")

	assert.Equal(t, ErrorCodeNotFound, resp.Error.Code)
	assert.Equal(t, "quote not found", resp.Error.Message)
	assert.Nil(t, resp.Error.Details)
	assert.Empty(t, resp.TraceID)

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":{"code":"NOT_FOUND","message":"quote not found"}}`, string(data))
}

func TestNewErrorResponseWithDetails(t *testing.T) {
	resp := NewErrorResponseWithDetails(ErrorCodeValidation, "bad", map[string]string{"from": "must not be empty"}).
		WithTraceID("trace-1")

	assert.Equal(t, "must not be empty", resp.Error.Details["from"])
	assert.Equal(t, "trace-1", resp.TraceID)
}

func TestHTTPStatusFromCode(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{ErrorCodeNotFound, http.StatusNotFound},
		{ErrorCodeValidation, http.StatusBadRequest},
		{ErrorCodeBadRequest, http.StatusBadRequest},
		{ErrorCodeUnavailable, http.StatusServiceUnavailable},
		{ErrorCodeTimeout, http.StatusGatewayTimeout},
		{ErrorCodeSuperseded, http.StatusConflict},
		{ErrorCodeInternal, http.StatusInternalServerError},
		{"SOMETHING_ELSE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatusFromCode(tt.code))
		})
	}
}

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
		wantDetails map[string]string
	}{
		{
			name:        "not found",
			err:         domain.NewNotFoundError("quote", "7"),
			wantStatus:  http.StatusNotFound,
			wantCode:    ErrorCodeNotFound,
			wantMessage: `quote with id "7" not found`,
		},
		{
			name:        "validation with field",
			err:         domain.NewValidationError("id", "must be a positive integer"),
			wantStatus:  http.StatusBadRequest,
			wantCode:    ErrorCodeValidation,
			wantMessage: "validation failed for id: must be a positive integer",
			wantDetails: map[string]string{"id": "must be a positive integer"},
		},
		{
			name:        "unavailable keeps reason",
			err:         errors.Join(domain.NewUnavailableError("quote-api", "request cancelled"), errors.New("ctx")),
			wantStatus:  http.StatusServiceUnavailable,
			wantCode:    ErrorCodeUnavailable,
			wantMessage: `service "quote-api" unavailable: request cancelled`,
		},
		{
			name:        "deadline",
			err:         fmt.Errorf("waiting: %w", context.DeadlineExceeded),
			wantStatus:  http.StatusGatewayTimeout,
			wantCode:    ErrorCodeTimeout,
			wantMessage: "request timeout exceeded",
		},
		{
			name:        "unknown error hides message",
			err:         errors.New("secret detail"),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    ErrorCodeInternal,
			wantMessage: "an internal error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := MapDomainError(tt.err)

			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.Equal(t, tt.wantMessage, resp.Error.Message)

			if diff := cmp.Diff(tt.wantDetails, resp.Error.Details); diff != "" {
				t.Errorf("details mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMapDomainError_Nil(t *testing.T) {
	status, resp := MapDomainError(nil)

	assert.Equal(t, http.StatusOK, status)
	assert.Nil(t, resp)
}

func TestGetTraceID(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*gin.Context)
		want  string
	}{
		{
			name:  "trace ID in context",
			setup: func(c *gin.Context) { c.Set(ContextKeyTraceID, "context-trace-123") },
			want:  "context-trace-123",
		},
		{
			name:  "request ID header",
			setup: func(c *gin.Context) { c.Request.Header.Set("X-Request-ID", "header-456") },
			want:  "header-456",
		},
		{
			name: "context takes precedence",
			setup: func(c *gin.Context) {
				c.Set(ContextKeyTraceID, "context-trace-123")
				c.Request.Header.Set("X-Request-ID", "header-456")
			},
			want: "context-trace-123",
		},
		{
			name:  "nothing set",
			setup: func(*gin.Context) {},
			want:  "",
		},
		{
			name:  "wrong type in context",
			setup: func(c *gin.Context) { c.Set(ContextKeyTraceID, 12345) },
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestContext(http.MethodGet, "")
			tt.setup(c)

			assert.Equal(t, tt.want, GetTraceID(c))
		})
	}
}

func TestHandleError(t *testing.T) {
	c, w := newTestContext(http.MethodGet, "")
	c.Set(ContextKeyTraceID, "trace-123")

	HandleError(c, domain.NewNotFoundError("quote", "9"))

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, ErrorCodeNotFound, resp.Error.Code)
	assert.Equal(t, "trace-123", resp.TraceID)
}

func TestRespondWithErrorCode(t *testing.T) {
	c, w := newTestContext(http.MethodPost, "")

	RespondWithErrorCode(c, ErrorCodeSuperseded, "navigation superseded")

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"SUPERSEDED"`)
}

func TestRespondWithValidationErrors(t *testing.T) {
	c, w := newTestContext(http.MethodPost, "")

	RespondWithValidationErrors(c, map[string]string{"from": "must not be empty"})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "must not be empty", resp.Error.Details["from"])
}

func TestNewQuoteResponse(t *testing.T) {
	q := &domain.Quote{
		ID:       "3",
		Text:     "Stay hungry, stay foolish.",
		Slug:     "stay-hungry-stay-foolish",
		Category: "life, ,work",
		Author:   domain.Author{ID: "7", Name: "Steve Jobs", Slug: "steve-jobs"},
	}

	got := NewQuoteResponse(q, "/quote/3")

	want := &QuoteResponse{
		ID:        "3",
		Quote:     "Stay hungry, stay foolish.",
		Permalink: "stay-hungry-stay-foolish",
		Path:      "/quote/3",
		Tags:      []string{"life", "work"},
		Author:    AuthorResponse{ID: "7", Name: "Steve Jobs", Permalink: "steve-jobs"},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("NewQuoteResponse mismatch (-want +got):\n%s", diff)
	}
}

func TestNavigationResponse_NullPath(t *testing.T) {
	data, err := json.Marshal(NavigationResponse{Animating: true})

	require.NoError(t, err)
	assert.JSONEq(t, `{"path":null,"replace":false,"animating":true}`, string(data))
}

func TestBindAndValidate(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantFrom string
		wantErr  error
	}{
		{name: "valid", body: `{"from":"12"}`, wantFrom: "12"},
		{name: "empty body", body: ""},
		{name: "omitted from", body: `{}`},
		{name: "blank from", body: `{"from":"   "}`, wantErr: ErrValidation},
		{name: "too long", body: `{"from":"` + strings.Repeat("9", 65) + `"}`, wantErr: ErrValidation},
		{name: "malformed", body: `{"from":`, wantErr: ErrBinding},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestContext(http.MethodPost, tt.body)

			var req NavigationRequest
			err := BindAndValidate(c, &req)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantFrom, req.From)
		})
	}
}

func TestValidationErrors(t *testing.T) {
	err := Validate(&NavigationRequest{From: " "})

	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.Equal(t, map[string]string{"from": "must not be empty"}, ValidationErrors(err))

	assert.Empty(t, ValidationErrors(errors.New("plain")))
	assert.False(t, IsValidationError(errors.New("plain")))
}

func TestValidationMessages(t *testing.T) {
	type sample struct {
		Name  string `json:"name"  validate:"required"`
		Count int    `json:"count" validate:"min=2"`
		Code  string `json:"code"  validate:"max=2"`
		Kind  string `json:"kind"  validate:"oneof=a b"`
		Ref   string `json:"ref"   validate:"email"`
	}

	err := Validate(&sample{Count: 1, Code: "abc", Kind: "c", Ref: "x"})
	require.Error(t, err)

	got := ValidationErrors(err)

	assert.Equal(t, "this field is required", got["name"])
	assert.Equal(t, "must be at least 2", got["count"])
	assert.Equal(t, "must be at most 2 characters", got["code"])
	assert.Equal(t, "must be one of: a b", got["kind"])
	assert.Equal(t, "failed validation: email", got["ref"])
}

func TestActionForm_Validate(t *testing.T) {
	tests := []struct {
		name    string
		form    ActionForm
		wantErr string
	}{
		{name: "empty", form: ActionForm{}},
		{name: "valid", form: ActionForm{From: "3", Back: "/quote/3"}},
		{name: "relative back", form: ActionForm{Back: "quote/3"}, wantErr: "back"},
		{name: "blank from", form: ActionForm{From: " "}, wantErr: "from"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(&tt.form)

			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.Contains(t, ValidationErrors(err), tt.wantErr)
		})
	}
}
