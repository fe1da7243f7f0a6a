// Package middleware provides Echo middleware for the resale analyzer API.
package middleware

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const requestIDHeader = "X-Request-ID"

// RequestIDKey is the echo context key holding the request ID.
const RequestIDKey = "request_id"

// RequestLog returns Echo middleware that logs each request with structured
// fields. A request ID is generated when the client does not supply one and
// is echoed back in the response header. Server errors log at error level.
func RequestLog(log *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			reqID := c.Request().Header.Get(requestIDHeader)
			if reqID == "" {
				reqID = uuid.NewString()
			}

			c.Set(RequestIDKey, reqID)
			c.Response().Header().Set(requestIDHeader, reqID)

			err := next(c)

			status := c.Response().Status
			attrs := []any{
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", status,
				"duration_ms", time.Since(start).Milliseconds(),
				"bytes_out", c.Response().Size,
				"request_id", reqID,
			}
			if err != nil {
				attrs = append(attrs, "error", err.Error())
			}

			if status >= 500 {
				log.Error("request", attrs...)
			} else {
				log.Info("request", attrs...)
			}

			return err
		}
	}
}
