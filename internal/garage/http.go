package garage

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

func (h *HTTP) CreateVehicle(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	var req CreateVehicleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	v, err := h.Svc.CreateVehicle(ctx, userID, req)
	if err != nil {
		return err
	}
	return httpx.Created(c, v)
}

func (h *HTTP) GetVehicle(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
	}

	v, err := h.Svc.GetVehicle(ctx, id)
	if err != nil {
		return err
	}
	return httpx.OK(c, v)
}

func (h *HTTP) ListVehicles(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, vehicles, err := h.Svc.ListVehicles(ctx, userID, middleware.IsAdmin(c), offset, limit)
	if err != nil {
		return err
	}
	return httpx.List(c, vehicles, total, util.TotalPages(total, limit))
}

func (h *HTTP) AddOwnership(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
	}

	var req OwnershipRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	v, err := h.Svc.AddOwnership(ctx, id, req)
	if err != nil {
		return err
	}
	return httpx.OK(c, v)
}

func (h *HTTP) DeleteVehicle(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
	}

	if err := h.Svc.DeleteVehicle(ctx, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *HTTP) CreateRecord(c echo.Context) error {
	ctx := c.Request().Context()

	vehicleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
	}

	var req CreateRecordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	rec, err := h.Svc.CreateRecord(ctx, vehicleID, req)
	if err != nil {
		return err
	}
	return httpx.Created(c, rec)
}

func (h *HTTP) ListRecords(c echo.Context) error {
	ctx := c.Request().Context()

	vehicleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, records, err := h.Svc.ListRecords(ctx, vehicleID, offset, limit)
	if err != nil {
		return err
	}
	return httpx.List(c, records, total, util.TotalPages(total, limit))
}
