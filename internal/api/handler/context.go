package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/university/admin-system/internal/api/middleware"
)

// ctxClaims extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call: a non-empty username
// proves the middleware ran.
func ctxClaims(c echo.Context) (username, role string, err error) {
	username, _ = c.Get(middleware.CtxUsername).(string)
	if username == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	role, _ = c.Get(middleware.CtxRole).(string)
	return username, role, nil
}
