package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/clickerrealm/community-api/internal/core/ports"
)

// Context keys set by Auth for downstream handlers.
const (
	CtxUser      = "user"
	CtxSessionID = "session_id"
)

// Auth resolves the bearer token to the live user record and injects it
// into the request context. Revoked sessions and banned users are rejected
// here, so the session state a handler sees is never stale.
func Auth(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			user, sessionID, err := auth.Authenticate(c.Request().Context(), parts[1])
			if err != nil {
				return err
			}

			c.Set(CtxUser, user)
			c.Set(CtxSessionID, sessionID)

			return next(c)
		}
	}
}
