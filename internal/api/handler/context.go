package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clickerrealm/community-api/internal/api/middleware"
	"github.com/clickerrealm/community-api/internal/core/domain"
)

// ctxUser extracts the live user injected by the Auth middleware and
// fast-fails before any service call when it is absent.
func ctxUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get(middleware.CtxUser).(*domain.User)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication context")
	}
	return user, nil
}

// ctxSessionID extracts the session id injected by the Auth middleware.
func ctxSessionID(c echo.Context) (string, error) {
	id, _ := c.Get(middleware.CtxSessionID).(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication context")
	}
	return id, nil
}
