package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/weight-tracker/internal/handler"
	"github.com/iliyamo/weight-tracker/internal/middleware"
)

// RegisterRoutes registers routes that require no authentication.
// Currently that is only the health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth wires the login endpoints (credential login, the
// administrator passphrase gate, refresh and logout) plus the
// protected /v1/me and the revoke-all logout variant. The limiter
// guards only the two login endpoints, where credential guessing
// happens.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, limiter echo.MiddlewareFunc, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/login", a.Login, limiter)
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout by refresh token needs no JWT.
	g.POST("/logout", a.Logout)

	e.POST("/v1/admin/login", a.AdminLogin, limiter)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole(middleware.RoleUser, middleware.RoleAdmin))
	auth.GET("/me", a.Me)
	// With a bearer token and no body this revokes every session.
	auth.POST("/logout", a.Logout)
}

// RegisterWeights wires the authenticated user's own endpoints:
// measurement entry, the period-filtered series, the latest snapshot
// and the height form.
func RegisterWeights(e *echo.Echo, w *handler.WeightHandler, p *handler.ProfileHandler, jwtSecret string) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(middleware.RoleUser))

	g.GET("/weights", w.List)
	g.POST("/weights", w.Create)
	g.GET("/latest", w.Latest)
	g.PUT("/height", p.UpdateHeight)
}

// RegisterAdmin wires the passphrase-gated administrator surface.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string) {
	g := e.Group("/v1/admin")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(middleware.RoleAdmin))

	g.POST("/users", a.CreateUser)
	g.GET("/users", a.ListUsers)
	g.GET("/users/:id/weights", a.UserWeights)
	g.GET("/users/:id/latest", a.UserLatest)
	g.GET("/weights", a.AllWeights)
	g.GET("/latest", a.AllLatest)
}
