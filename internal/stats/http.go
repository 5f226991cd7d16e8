package stats

import (
	"github.com/labstack/echo/v4"

	"github.com/keymaxprot/backend/internal/httpx"
)

type HTTP struct {
	Svc *Service
}

func (h *HTTP) Sales(c echo.Context) error {
	out, err := h.Svc.SalesOverTime(c.Request().Context())
	if err != nil {
		return err
	}
	return httpx.OK(c, out)
}

func (h *HTTP) Categories(c echo.Context) error {
	out, err := h.Svc.CategoryDistribution(c.Request().Context())
	if err != nil {
		return err
	}
	return httpx.OK(c, out)
}

func (h *HTTP) Users(c echo.Context) error {
	out, err := h.Svc.UserRoleCounts(c.Request().Context())
	if err != nil {
		return err
	}
	return httpx.OK(c, out)
}
