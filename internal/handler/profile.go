package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/weight-tracker/internal/repository"
)

// ProfileHandler covers self-service account fields; today that is
// only the height.
type ProfileHandler struct {
	Users *repository.UserRepo
}

func NewProfileHandler(u *repository.UserRepo) *ProfileHandler {
	return &ProfileHandler{Users: u}
}

type updateHeightReq struct {
	HeightCM float64 `json:"height_cm"`
}

// UpdateHeight writes the caller's height_cm cell. A missing
// height_cm column in the sheet is a schema problem, not a user
// error, and is reported as such.
func (h *ProfileHandler) UpdateHeight(c echo.Context) error {
	var req updateHeightReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()
	if err := h.Users.UpdateHeight(ctx, currentUserID(c), req.HeightCM); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"height_cm": req.HeightCM})
}
