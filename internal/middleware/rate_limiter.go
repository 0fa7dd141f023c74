package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// DefaultSubmitRate is how many form submissions per minute one client IP
// may make.
const DefaultSubmitRate = 10

// RateLimiter limits form submissions to DefaultSubmitRate per minute per IP.
func RateLimiter() echo.MiddlewareFunc {
	return RateLimiterPerMinute(DefaultSubmitRate)
}

// RateLimiterPerMinute limits requests to perMinute per client IP.
func RateLimiterPerMinute(perMinute int) echo.MiddlewareFunc {
	config := middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:  rate.Limit(float64(perMinute) / 60),
			Burst: perMinute,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.String(http.StatusTooManyRequests, "Too many submissions. Please try again later.")
		},
	}
	return middleware.RateLimiterWithConfig(config)
}
