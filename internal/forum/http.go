package forum

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

type threadRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type postRequest struct {
	ThreadID uuid.UUID `json:"thread_id"`
	Body     string    `json:"body"`
}

type commentRequest struct {
	PostID uuid.UUID `json:"post_id"`
	Body   string    `json:"body"`
}

func (h *HTTP) CreateThread(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	var req threadRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	t, err := h.Svc.CreateThread(c.Request().Context(), userID, req.Title, req.Body)
	if err != nil {
		return err
	}
	return httpx.Created(c, t)
}

func (h *HTTP) ListThreads(c echo.Context) error {
	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, threads, err := h.Svc.ListThreads(c.Request().Context(), offset, limit)
	if err != nil {
		return err
	}
	return httpx.List(c, threads, total, util.TotalPages(total, limit))
}

func (h *HTTP) GetThread(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
	}

	t, err := h.Svc.GetThread(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return httpx.OK(c, t)
}

func (h *HTTP) DeleteThread(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
	}

	if err := h.Svc.DeleteThread(c.Request().Context(), id, userID, middleware.IsAdmin(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *HTTP) CreatePost(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	var req postRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	p, err := h.Svc.CreatePost(c.Request().Context(), userID, req.ThreadID, req.Body)
	if err != nil {
		return err
	}
	return httpx.Created(c, p)
}

func (h *HTTP) ListPosts(c echo.Context) error {
	threadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, posts, err := h.Svc.ListPosts(c.Request().Context(), threadID, offset, limit)
	if err != nil {
		return err
	}
	return httpx.List(c, posts, total, util.TotalPages(total, limit))
}

func (h *HTTP) DeletePost(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
	}

	if err := h.Svc.DeletePost(c.Request().Context(), id, userID, middleware.IsAdmin(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *HTTP) CreateComment(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	cm, err := h.Svc.CreateComment(c.Request().Context(), userID, req.PostID, req.Body)
	if err != nil {
		return err
	}
	return httpx.Created(c, cm)
}

func (h *HTTP) ListComments(c echo.Context) error {
	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
	}

	comments, err := h.Svc.ListComments(c.Request().Context(), postID)
	if err != nil {
		return err
	}
	return httpx.OK(c, comments)
}

func (h *HTTP) DeleteComment(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
	}

	if err := h.Svc.DeleteComment(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
