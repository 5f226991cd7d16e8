package booking

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/keymaxprot/backend/internal/httpx"
	"github.com/keymaxprot/backend/internal/logging"
	"github.com/keymaxprot/backend/internal/middleware"
	"github.com/keymaxprot/backend/internal/util"
)

type HTTP struct {
	Svc *Service
}

func (h *HTTP) GetSlots(c echo.Context) error {
	ctx := c.Request().Context()

	date := c.QueryParam("date")
	if date == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "date query param required")
	}

	slots, err := h.Svc.AvailableSlots(ctx, date)
	if err != nil {
		return err
	}
	return httpx.OK(c, slots)
}

func (h *HTTP) Book(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "booking.book")

	// Booking is open to anonymous visitors; attach the identity when the
	// caller is signed in.
	userID, _ := middleware.UserID(c)

	var req BookRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("book_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	appt, err := h.Svc.Book(ctx, userID, req)
	if err != nil {
		return err
	}
	return httpx.Created(c, appt)
}

func (h *HTTP) ListMine(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, appts, err := h.Svc.ListMine(ctx, userID, offset, limit)
	if err != nil {
		return err
	}
	return httpx.List(c, appts, total, util.TotalPages(total, limit))
}

func (h *HTTP) ListByDate(c echo.Context) error {
	ctx := c.Request().Context()

	date := c.QueryParam("date")
	if date == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "date query param required")
	}

	appts, err := h.Svc.ListByDate(ctx, date)
	if err != nil {
		return err
	}
	return httpx.OK(c, appts)
}

func (h *HTTP) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	appt, err := h.Svc.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		return err
	}
	return httpx.OK(c, appt)
}

func (h *HTTP) Cancel(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
	}

	appt, err := h.Svc.Cancel(ctx, id, userID, middleware.IsAdmin(c))
	if err != nil {
		return err
	}
	return httpx.OK(c, appt)
}

func (h *HTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
	}

	if err := h.Svc.Delete(ctx, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
