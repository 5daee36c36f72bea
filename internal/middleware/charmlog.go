// Package middleware holds echo middleware for the control socket.
package middleware

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
)

// CharmLog logs every request through the charm logger. Failed requests are
// logged at warn level, everything else at debug.
func CharmLog() echo.MiddlewareFunc {
	return CharmLogWith(log.Default())
}

// CharmLogWith is CharmLog with an explicit logger.
func CharmLogWith(logger *log.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()
			fields := []any{
				"method", req.Method,
				"path", req.URL.Path,
				"status", res.Status,
				"latency", time.Since(start),
			}
			if err != nil {
				fields = append(fields, "err", err)
			}

			if res.Status >= 400 {
				logger.Warn("request", fields...)
			} else {
				logger.Debug("request", fields...)
			}
			return nil
		}
	}
}
