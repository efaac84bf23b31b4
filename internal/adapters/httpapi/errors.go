package httpapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/example/pkgtags/internal/core/tag"
	"github.com/example/pkgtags/internal/core/version"
	"github.com/example/pkgtags/internal/ctxutil"
)

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, tag.ErrNotFound), errors.Is(err, version.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, tag.ErrInvalidName), errors.Is(err, version.ErrInvalid):
		return http.StatusBadRequest
	case errors.Is(err, tag.ErrDuplicateName), errors.Is(err, version.ErrDuplicate):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as a JSON error body. Internal errors are logged
// and not echoed to the client.
func (s *Server) respondError(c echo.Context, err error) error {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.String("request_id", ctxutil.RequestIDFromContext(c.Request().Context())),
			zap.Error(err),
		)
		return c.JSON(status, map[string]string{"error": "internal server error"})
	}
	return c.JSON(status, map[string]string{"error": err.Error()})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, map[string]string{"error": msg})
}
