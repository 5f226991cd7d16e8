package auth

import (
	"errors"
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

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateRoleRequest struct {
	Role string `json:"role"`
}

func (h *HTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req registerRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, map[string]any{"success": true, "user": user})
}

func (h *HTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			// 401 bypasses the generic error surface on the client, so the
			// body carries the message the auth layer shows.
			return c.JSON(http.StatusUnauthorized, map[string]any{
				"success": false,
				"message": ErrInvalidCredentials.Error(),
			})
		}
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success":    true,
		"token":      res.Token,
		"expires_at": res.ExpiresAt.Unix(),
		"user":       res.User,
	})
}

func (h *HTTP) Profile(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	user, err := h.Svc.Profile(ctx, userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{"success": true, "user": user})
}

func (h *HTTP) ListUsers(c echo.Context) error {
	ctx := c.Request().Context()

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, users, err := h.Svc.ListUsers(ctx, offset, limit)
	if err != nil {
		return err
	}

	return httpx.List(c, users, total, util.TotalPages(total, limit))
}

func (h *HTTP) UpdateRole(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
	}

	var req updateRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.UpdateRole(ctx, id, req.Role)
	if err != nil {
		return err
	}

	return httpx.OK(c, user)
}
