// Package httpapi exposes the tag and version services over HTTP with echo.
package httpapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/example/pkgtags/internal/ports/primary"
	"github.com/example/pkgtags/internal/version"
)

// Server translates HTTP requests into service calls.
type Server struct {
	tags     primary.TagService
	versions primary.VersionService
	logger   *zap.Logger
}

// NewServer creates the HTTP adapter.
func NewServer(tags primary.TagService, versions primary.VersionService, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{tags: tags, versions: versions, logger: logger}
}

// Echo builds the echo instance with middleware and routes registered.
func (s *Server) Echo() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = &requestValidator{validate: validator.New()}

	e.Use(middleware.RequestID())
	e.Use(requestContext())
	e.Use(zapLogger(s.logger))
	e.Use(middleware.Recover())

	api := e.Group("/api")

	api.GET("/version", func(c echo.Context) error {
		return c.JSON(http.StatusOK, version.GetInfo())
	})

	api.GET("/tags", s.ListTags)
	api.POST("/tags", s.ResolveTag)
	api.POST("/tags/ensure", s.EnsureTag)
	api.GET("/tags/:name", s.GetTag)
	api.PUT("/tags/:name", s.RenameTag)
	api.GET("/tags/:name/versions", s.ListTagVersions)
	api.POST("/tags/:name/versions", s.TagVersion)

	api.POST("/versions", s.CreateVersion)
	api.GET("/versions/:id", s.GetVersion)
	api.GET("/versions/:id/tags", s.ListVersionTags)

	return e
}

// requestValidator plugs go-playground/validator into echo's c.Validate.
type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i any) error {
	return v.validate.Struct(i)
}
