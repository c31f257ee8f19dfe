package routes

import (
	"atlas/internal/api/controllers"
	"atlas/internal/api/middleware"
	"atlas/internal/handlers"
	"atlas/internal/models"
	"atlas/internal/services"
	"atlas/internal/utils/logger"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

func SetupUploadRoutes(api *echo.Group, db *gorm.DB) {
	log := logger.New("upload_routes")

	uploadHandler := handlers.NewUploadHandler()
	uploadController := controllers.NewBaseController(services.NewBaseService(db, models.Upload{}))

	uploadGroup := api.Group("/uploads")
	uploadGroup.Use(middleware.RequireMenu(models.MenuUploads))

	uploadGroup.POST("", uploadHandler.UploadImage)
	uploadGroup.GET("/:id/url", uploadHandler.SignedURL)

	// Browsing and pruning the upload ledger goes through the generic
	// controller; ingestion does not.
	uploadController.RegisterRoutes(uploadGroup, "", "GET", "DELETE")

	log.Success("Upload routes initialized successfully")
}
