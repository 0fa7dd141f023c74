package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/authforms/internal/middleware"
)

// RegisterRoutes sets up all the application routes.
func (s *Server) RegisterRoutes() {
	rateLimiter := middleware.RateLimiter()
	h := s.formHandler

	s.E.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusSeeOther, "/auth")
	})

	s.E.GET("/auth", h.AuthGet)
	s.E.POST("/auth/submit", h.AuthSubmit, rateLimiter)
	s.E.POST("/auth/navigate", h.AuthNavigate)
	s.E.POST("/auth/toggle-password", h.AuthTogglePassword)

	s.E.GET("/register", h.RegisterGet)
	s.E.POST("/register", h.RegisterPost, rateLimiter)
	s.E.POST("/register/terms", h.RegisterTerms)

	s.E.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})
}
