package api

import (
	"net/http"

	"atlas/internal/api/middleware"
	"atlas/internal/api/registry"
	"atlas/internal/handlers"
	"atlas/internal/routes"

	_ "atlas/docs/swagger"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func (s *Server) registerRoutes() {
	s.echo.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Atlas admin API")
	})
	// Health check
	// @Summary Health check
	// @Description Check if the server is running
	// @Accept json
	// @Produce json
	// @Success 200 {object} map[string]string "OK"
	// @Router /health [get]
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/swagger/*", echoSwagger.WrapHandler)

	// Identity-provider push endpoint. Public, but HMAC-verified.
	sessionHandler := handlers.NewSessionHandler(s.hub, s.config.Session.WebhookSecret)
	s.echo.POST("/session/events", sessionHandler.IdentityEvent)

	// API v1 group
	api := s.echo.Group("/api/v1")
	auth := middleware.NewAuthMiddleware(s.config.Auth.JWTSecret, s.config.Auth.PrivilegedEmails)
	api.Use(auth.Middleware())

	// Register CRUD routes for all content menus
	registry.RegisterCRUDRoutes(api, s.db)

	routes.SetupUploadRoutes(api, s.db)
	routes.SetupSeedRoutes(api, s.db, s.tasks)
}
