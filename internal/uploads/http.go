package uploads

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/keymaxprot/backend/internal/httpx"
)

const maxUploadBytes = 10 << 20

var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

type HTTP struct {
	Store Storage
}

// Upload accepts a multipart "file" field and returns the public URL of the
// stored object. Keys are uuid-based so concurrent uploads never collide.
func (h *HTTP) Upload(c echo.Context) error {
	if h.Store == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "object storage is not configured")
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file field is required")
	}
	if fh.Size > maxUploadBytes {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "file exceeds 10MB")
	}

	contentType := fh.Header.Get("Content-Type")
	ext, ok := allowedTypes[contentType]
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "unsupported content type "+contentType)
	}
	if e := strings.ToLower(filepath.Ext(fh.Filename)); e != "" {
		ext = e
	}

	src, err := fh.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	key := "uploads/" + uuid.NewString() + ext
	if err := h.Store.Put(c.Request().Context(), key, contentType, src); err != nil {
		return err
	}

	return httpx.Created(c, echo.Map{"key": key, "url": h.Store.PublicURL(key)})
}
