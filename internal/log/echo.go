package log

import (
	"time"

	"github.com/labstack/echo/v4"
)

// EchoLogger returns an Echo middleware that logs each request. Server
// errors log at error, client errors at warn, the rest at info.
func EchoLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()
			path := req.URL.Path
			if raw := req.URL.RawQuery; raw != "" {
				path = path + "?" + raw
			}

			err := next(c)
			if err != nil {
				// Let echo write the error response so the status is final.
				c.Error(err)
			}

			status := c.Response().Status

			event := Info()
			if status >= 500 {
				event = Error()
			} else if status >= 400 {
				event = Warn()
			}

			event.
				Str("method", req.Method).
				Str("path", path).
				Int("status", status).
				Dur("latency", time.Since(start)).
				Str("ip", c.RealIP())

			if err != nil {
				event.Str("error", err.Error())
			}

			event.Msg("request")
			return nil
		}
	}
}
