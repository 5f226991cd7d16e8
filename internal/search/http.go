package search

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/keymaxprot/backend/internal/httpx"
	"github.com/keymaxprot/backend/internal/util"
)

type HTTP struct {
	Svc *Service
}

func (h *HTTP) Search(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "q is required")
	}

	limit := util.ParseIntDefault(c.QueryParam("size"), 20)

	results, err := h.Svc.Query(c.Request().Context(), q, limit)
	if err != nil {
		return err
	}
	return httpx.OK(c, results)
}
