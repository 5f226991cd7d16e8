package orders

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
	Svc      *Service
	Checkout *CheckoutClient
}

func (h *HTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.create_order")

	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_order_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.CreateOrder(ctx, userID, req)
	if err != nil {
		return err
	}

	l.Info("create_order_success", "order_id", order.ID)
	return httpx.Created(c, order)
}

func (h *HTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
	}

	order, err := h.Svc.GetOrder(ctx, id, userID, middleware.IsAdmin(c))
	if err != nil {
		return err
	}
	return httpx.OK(c, order)
}

func (h *HTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, items, err := h.Svc.ListOrders(ctx, userID, middleware.IsAdmin(c), offset, limit)
	if err != nil {
		return err
	}
	return httpx.List(c, items, total, util.TotalPages(total, limit))
}

func (h *HTTP) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
	}

	var req UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		return err
	}
	return httpx.OK(c, order)
}

func (h *HTTP) CreatePayment(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	var req CreatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	payment, err := h.Svc.CreatePayment(ctx, userID, middleware.IsAdmin(c), req)
	if err != nil {
		return err
	}
	return httpx.Created(c, payment)
}

func (h *HTTP) UpdatePayment(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
	}

	var req UpdatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	payment, err := h.Svc.UpdatePaymentStatus(ctx, id, req.Status)
	if err != nil {
		return err
	}
	return httpx.OK(c, payment)
}

func (h *HTTP) ListPayments(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
	}

	payments, err := h.Svc.ListPayments(ctx, orderID, userID, middleware.IsAdmin(c))
	if err != nil {
		return err
	}
	return httpx.OK(c, payments)
}

// CreatePreference registers the order with the external checkout provider
// and returns the redirect URL.
func (h *HTTP) CreatePreference(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.create_preference")

	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	var req struct {
		OrderID uuid.UUID `json:"order_id"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.GetOrder(ctx, req.OrderID, userID, middleware.IsAdmin(c))
	if err != nil {
		return err
	}

	items := make([]PreferenceItem, 0, len(order.Items))
	for _, it := range order.Items {
		items = append(items, PreferenceItem{
			Title:     it.ProductID.String(),
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}

	pref, err := h.Checkout.CreatePreference(ctx, order.ID.String(), items)
	if err != nil {
		l.Error("create_preference_error", "order_id", order.ID, "error", err)
		return echo.NewHTTPError(http.StatusBadGateway, "checkout provider unavailable")
	}

	return httpx.OK(c, pref)
}
