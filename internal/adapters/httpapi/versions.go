package httpapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/example/pkgtags/internal/ports/primary"
)

// CreateVersion registers a package version. Responds 201 with the stored
// version, which may be an existing row for the same normalized version.
func (s *Server) CreateVersion(c echo.Context) error {
	var req primary.CreateVersionRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	v, err := s.versions.CreateVersion(c.Request().Context(), req)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusCreated, v)
}

// GetVersion returns a version by ID.
func (s *Server) GetVersion(c echo.Context) error {
	id, err := versionID(c)
	if err != nil {
		return badRequest(c, "Invalid version ID")
	}

	v, err := s.versions.GetVersion(c.Request().Context(), id)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusOK, v)
}

// ListVersionTags returns the tags attached to a version.
func (s *Server) ListVersionTags(c echo.Context) error {
	id, err := versionID(c)
	if err != nil {
		return badRequest(c, "Invalid version ID")
	}

	tags, err := s.versions.ListVersionTags(c.Request().Context(), id)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusOK, tags)
}

func versionID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
