package middleware

import (
	"circles-backend/internal/service"

	"github.com/labstack/echo/v4"
)

const (
	userIDKey = "user_id"

	// DefaultUserID is the investor used when no X-User-Id header is sent.
	DefaultUserID = "1"
)

// placeholder identity: the caller names itself with X-User-Id.
// later we can swap this for jwt or session auth
func AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get("X-User-Id")
			if id == "" {
				id = DefaultUserID
			}
			c.Set(userIDKey, id)
			return next(c)
		}
	}
}

func UserID(c echo.Context) string {
	if id, ok := c.Get(userIDKey).(string); ok && id != "" {
		return id
	}
	return DefaultUserID
}

// AdminMiddleware attributes every admin mutation in the request to the
// admin account so it lands in the activity log.
func AdminMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			ctx := service.WithActor(req.Context(), service.DefaultAdmin)
			c.SetRequest(req.WithContext(ctx))
			return next(c)
		}
	}
}
