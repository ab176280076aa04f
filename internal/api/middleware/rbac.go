package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clickerrealm/community-api/internal/core/domain"
)

// RequireRole gates a route on the authenticated user's role set. Anonymous
// requests never pass; with no required roles any authenticated user does.
func RequireRole(required ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, _ := c.Get(CtxUser).(*domain.User)
			if user == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			for _, role := range required {
				if !user.HasRole(role) {
					return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
				}
			}
			return next(c)
		}
	}
}
