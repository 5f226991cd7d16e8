// Package httpx carries the JSON envelopes the frontend consumes and the
// central error handler that renders failures as {success:false, error}.
package httpx

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ListEnvelope is the shape of every paginated collection response.
type ListEnvelope struct {
	Data       any   `json:"data"`
	TotalDocs  int64 `json:"totalDocs"`
	TotalPages int64 `json:"totalPages"`
}

func List(c echo.Context, data any, totalDocs, totalPages int64) error {
	return c.JSON(http.StatusOK, ListEnvelope{Data: data, TotalDocs: totalDocs, TotalPages: totalPages})
}

func OK(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, map[string]any{"success": true, "data": data})
}

func Created(c echo.Context, data any) error {
	return c.JSON(http.StatusCreated, map[string]any{"success": true, "data": data})
}
