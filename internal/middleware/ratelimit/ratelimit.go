package ratelimit

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// New returns a middleware throttling the routes it is attached to with a
// shared token bucket of rate r and burst b.
func New(r rate.Limit, b int) echo.MiddlewareFunc {
	limiter := rate.NewLimiter(r, b)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !limiter.Allow() {
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests, try again later")
			}
			return next(c)
		}
	}
}
