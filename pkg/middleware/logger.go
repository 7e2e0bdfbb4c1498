package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/fern/pkg/context"
)

// Logger writes one line per request. Health and metrics scrapes are logged
// at debug; failed requests at warn or error by status.
func Logger(logger ectologger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			if err := next(c); err != nil {
				c.Error(err)
			}

			ctx := c.Request().Context()
			info := context.RequestFrom(ctx)
			status := c.Response().Status

			log := logger.WithContext(ctx).WithFields(map[string]any{
				"request_id": info.ID,
				"user_id":    info.UserID,
				"method":     info.Method,
				"route":      info.Route,
				"status":     status,
				"latency_ms": time.Since(start).Milliseconds(),
				"bytes_out":  c.Response().Size,
			})

			switch {
			case status >= http.StatusInternalServerError:
				log.Error("Request failed")
			case status >= http.StatusBadRequest:
				log.Warn("Request rejected")
			case isScrape(c.Path()):
				log.Debug("Request")
			default:
				log.Info("Request")
			}
			return nil
		}
	}
}

func isScrape(route string) bool {
	return route == "/metrics" || strings.Contains(route, "/health")
}
