package httpapi

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/example/pkgtags/internal/ports/primary"
)

// ListTags returns all tags ordered by name.
func (s *Server) ListTags(c echo.Context) error {
	tags, err := s.tags.ListTags(c.Request().Context())
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusOK, tags)
}

// GetTag returns a single tag by name.
func (s *Server) GetTag(c echo.Context) error {
	t, err := s.tags.GetTag(c.Request().Context(), tagName(c))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

// ResolveTag looks a tag up by name, creating it when the body asks for it.
// Responds 201 when a tag was created.
func (s *Server) ResolveTag(c echo.Context) error {
	var req primary.ResolveTagRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	resp, err := s.tags.ResolveTag(c.Request().Context(), req)
	if err != nil {
		return s.respondError(c, err)
	}

	status := http.StatusOK
	if resp.Created {
		status = http.StatusCreated
	}
	return c.JSON(status, resp)
}

// EnsureTag returns the named tag, inserting it if absent.
func (s *Server) EnsureTag(c echo.Context) error {
	var req struct {
		Name string `json:"name" validate:"required,max=191"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	t, err := s.tags.EnsureTag(c.Request().Context(), req.Name)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

// RenameTag changes the name of an existing tag.
func (s *Server) RenameTag(c echo.Context) error {
	var req primary.RenameTagRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}
	req.Name = tagName(c)

	t, err := s.tags.RenameTag(c.Request().Context(), req)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

// ListTagVersions returns the versions carrying a tag.
func (s *Server) ListTagVersions(c echo.Context) error {
	versions, err := s.tags.ListTagVersions(c.Request().Context(), tagName(c))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusOK, versions)
}

// TagVersion associates a version with a tag.
func (s *Server) TagVersion(c echo.Context) error {
	var req primary.TagVersionRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}
	req.TagName = tagName(c)

	t, err := s.tags.TagVersion(c.Request().Context(), req)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

// tagName returns the unescaped :name path parameter.
// Echo matches routes against URL.RawPath when it is set (non-default
// escaping such as %2F), leaving the parameter encoded; otherwise the
// parameter comes from the already decoded URL.Path.
func tagName(c echo.Context) string {
	raw := c.Param("name")
	if c.Request().URL.RawPath == "" {
		return raw
	}
	if name, err := url.PathUnescape(raw); err == nil {
		return name
	}
	return raw
}
