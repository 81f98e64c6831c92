package handler // handler contains the HTTP handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health is a liveness endpoint for load balancers and monitoring.
// It deliberately does not touch the spreadsheet store.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
