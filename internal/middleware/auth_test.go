package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/keymaxprot/backend/pkg/tokens"
)

var testSecret = []byte("test-secret")

func doRequest(t *testing.T, guard echo.MiddlewareFunc, authHeader string) (*httptest.ResponseRecorder, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := guard(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	return rec, handler(c)
}

func TestRequireAuthAcceptsBearerToken(t *testing.T) {
	m := NewAuthMiddleware(testSecret)
	token, _, err := tokens.Issue(testSecret, "user-1", "user", time.Hour)
	require.NoError(t, err)

	rec, err := doRequest(t, m.RequireAuth, "Bearer "+token)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAuthRejections(t *testing.T) {
	m := NewAuthMiddleware(testSecret)

	_, err := doRequest(t, m.RequireAuth, "")
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusUnauthorized, he.Code)

	foreign, _, err := tokens.Issue([]byte("other-secret"), "user-1", "user", time.Hour)
	require.NoError(t, err)
	_, err = doRequest(t, m.RequireAuth, "Bearer "+foreign)
	he, ok = err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRequireAdmin(t *testing.T) {
	m := NewAuthMiddleware(testSecret)

	userToken, _, err := tokens.Issue(testSecret, "user-1", "user", time.Hour)
	require.NoError(t, err)
	_, err = doRequest(t, m.RequireAdmin, "Bearer "+userToken)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusForbidden, he.Code)

	adminToken, _, err := tokens.Issue(testSecret, "admin-1", "admin", time.Hour)
	require.NoError(t, err)
	rec, err := doRequest(t, m.RequireAdmin, "Bearer "+adminToken)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code)
}
