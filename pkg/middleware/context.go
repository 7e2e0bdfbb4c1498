package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/fern/pkg/context"
)

// Context stores the request metadata on the request context and echoes the
// request id back to the caller. The route is the registered path, so job
// numbers stay out of it.
func Context() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			id := req.Header.Get(echo.HeaderXRequestID)
			if id == "" {
				id = uuid.NewString()
			}
			c.Response().Header().Set(echo.HeaderXRequestID, id)

			route := c.Path()
			if route == "" {
				route = req.URL.Path
			}

			ctx := context.WithRequest(req.Context(), context.Request{
				ID:       id,
				Method:   req.Method,
				Route:    route,
				RemoteIP: c.RealIP(),
			})
			c.SetRequest(req.WithContext(ctx))

			return next(c)
		}
	}
}
