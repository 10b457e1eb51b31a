package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/motivational-quotes/internal/adapters/http/dto"
	"github.com/jsamuelsen/motivational-quotes/internal/adapters/http/views"
	"github.com/jsamuelsen/motivational-quotes/internal/app"
	"github.com/jsamuelsen/motivational-quotes/internal/domain"
)

// Act returns the handler of POST /actions/{action}.
//
// A navigation with a destination answers 303 See Other to it, adding a
// history entry. One with no destination, or superseded by a newer click,
// sends the visitor back to the submitting page.
func (h *QuoteHandler) Act(action app.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form dto.ActionForm
		if err := c.ShouldBind(&form); err != nil {
			h.renderActionError(c, domain.NewValidationError("form", "malformed form body"))
			return
		}

		if err := dto.Validate(&form); err != nil {
			h.renderActionError(c, domain.NewValidationError("form", "invalid navigation form"))
			return
		}

		if action != app.ActionRandom && form.From == "" {
			h.renderActionError(c, domain.NewValidationError("from", "is required"))
			return
		}

		back := safeBack(form.Back)

		dest, err := h.navigator(c).Navigate(c.Request.Context(), action, form.From)

		switch {
		case errors.Is(err, app.ErrSuperseded):
			c.Redirect(http.StatusSeeOther, back)
		case err != nil:
			h.renderActionError(c, err)
		case dest == nil:
			c.Redirect(http.StatusSeeOther, back)
		default:
			c.Redirect(http.StatusSeeOther, dest.Path)
		}
	}
}

func (h *QuoteHandler) renderActionError(c *gin.Context, err error) {
	status, msg := errorStatus(err)

	if status == http.StatusInternalServerError {
		h.logger.ErrorContext(c.Request.Context(), "navigation action failed", slog.Any("error", err))
	}

	c.HTML(status, views.ErrorTemplate, views.Page{Title: "Error", State: app.StateError, Error: msg})
}
