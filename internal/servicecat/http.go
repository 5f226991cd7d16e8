package servicecat

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/keymaxprot/backend/internal/httpx"
	"github.com/keymaxprot/backend/internal/util"
)

type HTTP struct {
	DB *gorm.DB
}

type offeringRequest struct {
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Category        string  `json:"category"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"duration_minutes"`
	ImageURL        string  `json:"image_url"`
}

func (h *HTTP) List(c echo.Context) error {
	ctx := c.Request().Context()

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	q := h.DB.WithContext(ctx).Model(&ServiceOffering{})
	if cat := c.QueryParam("category"); cat != "" {
		q = q.Where("category = ?", cat)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return err
	}

	var items []ServiceOffering
	if err := q.Order("name ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return err
	}

	return httpx.List(c, items, total, util.TotalPages(total, limit))
}

func (h *HTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
	}

	var item ServiceOffering
	if err := h.DB.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: service", httpx.ErrNotFound)
		}
		return err
	}
	return httpx.OK(c, item)
}

func (h *HTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req offeringRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Name == "" || req.Price < 0 {
		return fmt.Errorf("%w: name required and price must be >= 0", httpx.ErrValidation)
	}
	if req.DurationMinutes <= 0 {
		req.DurationMinutes = 60
	}

	item := ServiceOffering{
		Name:            req.Name,
		Description:     req.Description,
		Category:        req.Category,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		ImageURL:        req.ImageURL,
	}
	if err := h.DB.WithContext(ctx).Create(&item).Error; err != nil {
		return err
	}
	return httpx.Created(c, item)
}

func (h *HTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
	}

	var req offeringRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Price < 0 {
		return fmt.Errorf("%w: price must be >= 0", httpx.ErrValidation)
	}

	var item ServiceOffering
	if err := h.DB.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: service", httpx.ErrNotFound)
		}
		return err
	}

	item.Name = req.Name
	item.Description = req.Description
	item.Category = req.Category
	item.Price = req.Price
	if req.DurationMinutes > 0 {
		item.DurationMinutes = req.DurationMinutes
	}
	if req.ImageURL != "" {
		item.ImageURL = req.ImageURL
	}

	if err := h.DB.WithContext(ctx).Save(&item).Error; err != nil {
		return err
	}
	return httpx.OK(c, item)
}

func (h *HTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
	}

	res := h.DB.WithContext(ctx).Delete(&ServiceOffering{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: service", httpx.ErrNotFound)
	}
	return c.NoContent(http.StatusNoContent)
}
