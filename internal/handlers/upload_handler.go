package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"atlas/internal/api/middleware"
	"atlas/internal/db"
	"atlas/internal/imaging"
	"atlas/internal/models"
	"atlas/internal/utils/logger"

	"github.com/labstack/echo/v4"
)

type UploadHandler struct {
	log *logger.Logger
}

func NewUploadHandler() *UploadHandler {
	return &UploadHandler{
		log: logger.New("upload_handler"),
	}
}

// UploadImage ingests one image through the optimization pipeline.
// @Summary Upload and optimize an image
// @Description Transcode an image to web-optimized JPEG and persist it
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image to upload"
// @Param preset formData string false "Asset class: icon, inline or hero"
// @Success 200 {object} map[string]interface{} "Upload result"
// @Failure 400 {object} map[string]string "Bad input"
// @Failure 500 {object} map[string]string "Ingestion failure"
// @Router /api/v1/uploads [post]
func (h *UploadHandler) UploadImage(c echo.Context) error {
	contentType := c.Request().Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "multipart/form-data") {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Content-Type must be multipart/form-data",
		})
	}

	pipe := GetPipeline()
	if pipe == nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Upload pipeline not configured",
		})
	}

	presetName := c.FormValue("preset")
	if presetName == "" {
		presetName = imaging.PresetInline.Name
	}
	preset, ok := imaging.PresetByName(presetName)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Unknown preset: " + presetName,
		})
	}

	file, err := c.FormFile("file")
	if err != nil {
		_ = h.log.Error("Failed to get file from request", err)
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "No file provided",
		})
	}

	src, err := file.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to open file",
		})
	}
	defer src.Close()

	result, err := pipe.Ingest(c.Request().Context(), file.Filename, src, preset)
	if err != nil {
		if errors.Is(err, imaging.ErrDecode) {
			return c.JSON(http.StatusBadRequest, map[string]string{
				"error": "File is not a recognizable image",
			})
		}
		_ = h.log.Error("Image ingestion failed", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to process image",
		})
	}

	upload := &models.Upload{
		UserID:       middleware.GetUserID(c),
		Key:          result.Key,
		URL:          result.URL,
		Preset:       preset.Name,
		ContentType:  imaging.TargetContentType,
		SourceBytes:  result.Artifact.SourceBytes,
		EncodedBytes: result.Artifact.EncodedBytes,
		Width:        result.Artifact.Width,
		Height:       result.Artifact.Height,
	}

	if err := db.GetDB().Create(upload).Error; err != nil {
		_ = h.log.Error("Failed to record upload", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to record upload",
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"id":           upload.ID,
		"url":          result.URL,
		"key":          result.Key,
		"width":        result.Artifact.Width,
		"height":       result.Artifact.Height,
		"sourceBytes":  result.Artifact.SourceBytes,
		"encodedBytes": result.Artifact.EncodedBytes,
		"savedPercent": result.Artifact.SavedPercent(),
	})
}

// SignedURL returns a short-lived signed fetch URL for one upload, for
// deployments where the bucket is not public.
// @Summary Signed URL for an upload
// @Produce json
// @Param id path string true "Upload ID"
// @Success 200 {object} map[string]string
// @Router /api/v1/uploads/{id}/url [get]
func (h *UploadHandler) SignedURL(c echo.Context) error {
	signer := GetURLSigner()
	if signer == nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "URL signer not configured",
		})
	}

	upload := &models.Upload{}
	if err := db.GetDB().Where("id = ? AND is_deleted = false", c.Param("id")).First(upload).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Upload not found"})
	}

	url, err := signer.GetSignedURL(c.Request().Context(), upload.Key, time.Hour)
	if err != nil {
		_ = h.log.Error("Failed to sign URL", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to sign URL",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{"url": url})
}
