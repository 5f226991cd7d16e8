package cart

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/keymaxprot/backend/internal/httpx"
	"github.com/keymaxprot/backend/internal/middleware"
)

type HTTP struct {
	Svc *Service
}

type itemRequest struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

func (h *HTTP) GetCart(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	view, err := h.Svc.GetCart(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return httpx.OK(c, view)
}

func (h *HTTP) AddToCart(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	var req itemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	view, err := h.Svc.AddToCart(c.Request().Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		return err
	}
	return httpx.OK(c, view)
}

func (h *HTTP) UpdateQuantity(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	productID, err := uuid.Parse(c.Param("productID"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "product id is not a uuid")
	}

	var req itemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	view, err := h.Svc.UpdateQuantity(c.Request().Context(), userID, productID, req.Quantity)
	if err != nil {
		return err
	}
	return httpx.OK(c, view)
}

func (h *HTTP) RemoveFromCart(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	productID, err := uuid.Parse(c.Param("productID"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "product id is not a uuid")
	}

	view, err := h.Svc.RemoveFromCart(c.Request().Context(), userID, productID)
	if err != nil {
		return err
	}
	return httpx.OK(c, view)
}

func (h *HTTP) ClearCart(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	if err := h.Svc.ClearCart(c.Request().Context(), userID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *HTTP) ToggleFavorite(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	productID, err := uuid.Parse(c.Param("productID"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "product id is not a uuid")
	}

	favorited, err := h.Svc.ToggleFavorite(c.Request().Context(), userID, productID)
	if err != nil {
		return err
	}
	return httpx.OK(c, map[string]any{"product_id": productID, "favorited": favorited})
}

func (h *HTTP) ListFavorites(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	products, err := h.Svc.ListFavorites(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return httpx.OK(c, products)
}
