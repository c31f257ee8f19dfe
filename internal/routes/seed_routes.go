package routes

import (
	"atlas/internal/api/middleware"
	"atlas/internal/handlers"
	"atlas/internal/models"
	"atlas/internal/tasks"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// Seed imports write across every content menu, so they require the broadest
// write grant an editor can hold: create on uploads plus create on countries.
func SetupSeedRoutes(api *echo.Group, db *gorm.DB, client *tasks.TaskClient) {
	seedHandler := handlers.NewSeedHandler(db, client)

	seedGroup := api.Group("/seed")
	seedGroup.Use(middleware.RequireAction(models.MenuUploads, models.ActionCreate))
	seedGroup.Use(middleware.RequireAction(models.MenuCountries, models.ActionCreate))

	seedGroup.POST("", seedHandler.UploadSeed)
	seedGroup.GET("/:id", seedHandler.SeedStatus)
}
