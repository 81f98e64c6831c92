package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/weight-tracker/internal/repository"
	"github.com/iliyamo/weight-tracker/internal/sheet"
)

// storeTimeout bounds every spreadsheet round-trip made on behalf of
// one request (the gateway adds its own per-call timeout and retry
// underneath).
const storeTimeout = 5 * time.Second

const dateLayout = "2006-01-02"

// reqContext derives a bounded context from the request.
func reqContext(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), storeTimeout)
}

// currentUserID returns the normalized user id placed in the context
// by the JWT middleware.
func currentUserID(c echo.Context) string {
	id, _ := c.Get("user_id").(string)
	return id
}

// writeError maps repository and gateway failures onto HTTP
// responses. Validation messages go back inline for the UI to
// display; schema problems are server-side misconfiguration, not
// user error.
func writeError(c echo.Context, err error) error {
	var verr *repository.ValidationError
	var serr *sheet.SchemaError
	switch {
	case errors.As(err, &verr):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": verr.Message})
	case errors.Is(err, repository.ErrUserExists):
		return c.JSON(http.StatusConflict, echo.Map{"error": "user id already exists"})
	case errors.Is(err, repository.ErrUserNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	case errors.As(err, &serr):
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store misconfigured: " + serr.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store request failed"})
	}
}
