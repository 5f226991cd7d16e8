package metrics

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/keymaxprot/backend/internal/httpx"
)

func record(t *testing.T, path string, h echo.HandlerFunc) error {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath(path)

	return Middleware()(h)(c)
}

func TestMiddlewareLabelsServiceErrors(t *testing.T) {
	err := record(t, "/orders/:id", func(c echo.Context) error {
		return fmt.Errorf("%w: order", httpx.ErrNotFound)
	})
	require.Error(t, err)

	require.Equal(t, 1.0, testutil.ToFloat64(requestTotal.WithLabelValues(http.MethodGet, "/orders/:id", "404")))
	require.Zero(t, testutil.ToFloat64(requestTotal.WithLabelValues(http.MethodGet, "/orders/:id", "200")))
}

func TestMiddlewareLabelsEchoErrorsAndSuccess(t *testing.T) {
	err := record(t, "/guarded", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	})
	require.Error(t, err)
	require.Equal(t, 1.0, testutil.ToFloat64(requestTotal.WithLabelValues(http.MethodGet, "/guarded", "401")))

	require.NoError(t, record(t, "/ok", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	}))
	require.Equal(t, 1.0, testutil.ToFloat64(requestTotal.WithLabelValues(http.MethodGet, "/ok", "204")))
}
