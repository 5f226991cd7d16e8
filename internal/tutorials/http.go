package tutorials

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/keymaxprot/backend/internal/httpx"
	"github.com/keymaxprot/backend/internal/middleware"
	"github.com/keymaxprot/backend/internal/util"
)

type HTTP struct {
	Svc *Service
}

func (h *HTTP) Create(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	var req CreateTutorialRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	t, err := h.Svc.Create(c.Request().Context(), userID, req)
	if err != nil {
		return err
	}
	return httpx.Created(c, t)
}

func (h *HTTP) List(c echo.Context) error {
	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, items, err := h.Svc.List(c.Request().Context(), c.QueryParam("category"), offset, limit)
	if err != nil {
		return err
	}
	return httpx.List(c, items, total, util.TotalPages(total, limit))
}

func (h *HTTP) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
	}

	t, err := h.Svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return httpx.OK(c, t)
}

func (h *HTTP) Delete(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
	}

	if err := h.Svc.Delete(c.Request().Context(), id, userID, middleware.IsAdmin(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *HTTP) AddReview(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
	}

	var req ReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	review, err := h.Svc.AddReview(c.Request().Context(), userID, id, req)
	if err != nil {
		return err
	}
	return httpx.Created(c, review)
}

func (h *HTTP) ListReviews(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
	}

	reviews, err := h.Svc.ListReviews(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return httpx.OK(c, reviews)
}
