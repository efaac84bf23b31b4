package httpapi

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/example/pkgtags/internal/ctxutil"
)

// requestContext copies echo's request id into the request context so
// services log it. Must run after middleware.RequestID.
func requestContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if reqID := c.Response().Header().Get(echo.HeaderXRequestID); reqID != "" {
				req := c.Request()
				c.SetRequest(req.WithContext(ctxutil.WithRequestID(req.Context(), reqID)))
			}
			return next(c)
		}
	}
}

// zapLogger returns a middleware that logs HTTP requests using zap
func zapLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()
			res := c.Response()

			err := next(c)
			if err != nil {
				// Let echo write the response so the status below is final.
				c.Error(err)
			}

			fields := []zap.Field{
				zap.String("method", req.Method),
				zap.String("uri", req.RequestURI),
				zap.Int("status", res.Status),
				zap.Int64("bytes_out", res.Size),
				zap.Duration("duration", time.Since(start)),
				zap.String("remote_ip", c.RealIP()),
			}
			if reqID := res.Header().Get(echo.HeaderXRequestID); reqID != "" {
				fields = append(fields, zap.String("request_id", reqID))
			}

			switch {
			case err != nil:
				fields = append(fields, zap.Error(err))
				logger.Error("Request failed", fields...)
			case res.Status >= 500:
				logger.Error("Server error", fields...)
			case res.Status >= 400:
				logger.Warn("Client error", fields...)
			default:
				logger.Info("Request completed", fields...)
			}

			return nil
		}
	}
}
