package httpx

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/keymaxprot/backend/internal/logging"
)

// Sentinel errors the domain services wrap with %w. The error handler maps
// them to status codes so handlers never spell out HTTP plumbing twice.
var (
	ErrValidation = errors.New("validation")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrForbidden  = errors.New("forbidden")
)

const uniqueViolation = "23505"

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return true
	}
	// glebarez/sqlite surfaces constraint failures as plain errors.
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// StatusOf translates a service error into an HTTP status code.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case isDuplicateKey(err):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// ErrorHandler renders every error as {success:false, error} with the mapped
// status. 401s keep their bare message so the client auth layer can react to
// them separately from the generic error surface.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	msg := "internal error"

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		status = httpErr.Code
		if s, ok := httpErr.Message.(string); ok {
			msg = s
		}
	} else {
		status = StatusOf(err)
		if status != http.StatusInternalServerError {
			msg = err.Error()
		}
	}

	if status == http.StatusInternalServerError {
		logging.FromContext(c.Request().Context()).Error("request failed", "error", err)
		msg = "internal error"
	}

	if jsonErr := c.JSON(status, map[string]any{"success": false, "error": msg}); jsonErr != nil {
		c.Logger().Error(jsonErr)
	}
}
