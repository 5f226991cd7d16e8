package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// UserID reads the authenticated caller id set by RequireAuth.
func UserID(c echo.Context) (uuid.UUID, error) {
	s, ok := c.Get(CtxUserID).(string)
	if !ok || s == "" {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "missing identity")
	}

	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "missing identity")
	}
	return id, nil
}

// IsAdmin reports whether the caller carries the admin role.
func IsAdmin(c echo.Context) bool {
	role, _ := c.Get(CtxRole).(string)
	return role == "admin"
}
