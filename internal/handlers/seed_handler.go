package handlers

import (
	"encoding/json"
	"net/http"

	"atlas/internal/api/middleware"
	"atlas/internal/models"
	"atlas/internal/tasks"
	"atlas/internal/utils/logger"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type SeedHandler struct {
	db     *gorm.DB
	client *tasks.TaskClient
	log    *logger.Logger
}

func NewSeedHandler(db *gorm.DB, client *tasks.TaskClient) *SeedHandler {
	return &SeedHandler{db: db, client: client, log: logger.New("SeedHandler")}
}

// UploadSeed accepts an ad-hoc seed-data bundle and queues it for import.
// The import itself runs in the background worker so large bundles with
// remote imagery do not block the request.
// @Summary Upload a seed-data bundle
// @Tags seed
// @Accept json
// @Produce json
// @Param bundle body tasks.SeedBundle true "Seed bundle"
// @Success 202 {object} map[string]string "Import queued"
// @Failure 400 {object} map[string]string "Malformed bundle"
// @Router /api/v1/seed [post]
func (h *SeedHandler) UploadSeed(c echo.Context) error {
	var bundle tasks.SeedBundle
	if err := c.Bind(&bundle); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Malformed seed bundle"})
	}

	if bundle.Empty() {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Seed bundle has no entries"})
	}

	raw, err := json.Marshal(bundle)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to encode bundle"})
	}

	record := &models.SeedImport{
		UserID: middleware.GetUserID(c),
		Status: models.ImportStatusQueued,
		Bundle: raw,
	}
	if err := h.db.Create(record).Error; err != nil {
		_ = h.log.Error("Failed to store seed import", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to store seed import"})
	}

	if err := h.client.EnqueueSeedImport(c.Request().Context(), record.ID, record.UserID); err != nil {
		_ = h.log.Error("Failed to enqueue seed import", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to queue import"})
	}

	h.log.Success("Seed import %s queued", record.ID)

	return c.JSON(http.StatusAccepted, map[string]string{
		"id":     record.ID,
		"status": string(record.Status),
	})
}

// SeedStatus reports the state of one queued import.
// @Summary Seed import status
// @Tags seed
// @Produce json
// @Param id path string true "Import ID"
// @Success 200 {object} models.SeedImport
// @Router /api/v1/seed/{id} [get]
func (h *SeedHandler) SeedStatus(c echo.Context) error {
	record := &models.SeedImport{}
	if err := h.db.Where("id = ? AND is_deleted = false", c.Param("id")).First(record).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Import not found"})
	}
	return c.JSON(http.StatusOK, record)
}
