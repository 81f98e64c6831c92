package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Role names carried in the JWT "role" claim. ADMIN is granted by
// the passphrase gate, USER by credential login.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// RequireRole rejects requests whose context role (set by JWTAuth) is
// not in the allowed set, with 403 Forbidden. A missing or non-string
// role counts as not allowed.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get("role").(string)
			if !ok || !allowed[role] {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
