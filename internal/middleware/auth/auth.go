package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"warehouse/internal/models"
	"warehouse/internal/service"
)

const CookieName = "jwt"

// Guard authenticates requests from the jwt cookie and exposes the verified
// identity through the echo context.
type Guard struct {
	Auth *service.AuthService
}

// RequireLogin rejects requests without a valid, unexpired token.
func (g *Guard) RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(CookieName)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
		}

		claims, err := g.Auth.ParseToken(cookie.Value)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
		}

		setUserContext(c, claims)
		return next(c)
	}
}

// AdminOnly runs after RequireLogin and rejects non-Admin roles.
func (g *Guard) AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		role, ok := c.Get("role").(models.Role)
		if !ok || role != models.RoleAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "not enough rights")
		}
		return next(c)
	}
}

func setUserContext(c echo.Context, claims *service.Claims) {
	c.Set("userID", claims.Subject)
	c.Set("username", claims.Username)
	c.Set("role", claims.Role)
}
