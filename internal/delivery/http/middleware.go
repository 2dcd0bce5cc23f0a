package http

import (
	"net/http"

	"candlescan/internal/dto"

	"github.com/labstack/echo/v4"
)

const principalContextKey = "principal"

// NewAuthMiddleware extracts the identity attached by the upstream session
// provider. Requests without an identity are rejected, the dashboard has no
// anonymous surface.
func NewAuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID := c.Request().Header.Get("X-User-Id")
			if userID == "" {
				return c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Unauthorized"})
			}

			c.Set(principalContextKey, dto.Principal{
				UserID: userID,
				Email:  c.Request().Header.Get("X-User-Email"),
			})
			return next(c)
		}
	}
}

// PrincipalFromContext returns the authenticated principal set by the auth
// middleware.
func PrincipalFromContext(c echo.Context) dto.Principal {
	if p, ok := c.Get(principalContextKey).(dto.Principal); ok {
		return p
	}
	return dto.Principal{}
}
