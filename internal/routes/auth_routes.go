package routes

import (
	"atlas/internal/api/middleware"
	"atlas/internal/config"
	"atlas/internal/handlers"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

func SetupAuthRoutes(e *echo.Echo, db *gorm.DB, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(db)

	base := e.Group("/api/v1")

	// Public auth routes group
	auth := base.Group("/auth")
	users := base.Group("/users")

	// Public routes (no auth required)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.RefreshToken)

	// Protected auth routes (require authentication)
	protectedAuth := users.Group("")
	authMiddleware := middleware.NewAuthMiddleware(cfg.Auth.JWTSecret, cfg.Auth.PrivilegedEmails)
	protectedAuth.Use(authMiddleware.Middleware())

	protectedAuth.GET("/me", authHandler.GetMe)
}
