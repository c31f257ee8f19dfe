package tasks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"atlas/internal/imaging"
	"atlas/internal/models"
	"atlas/internal/utils"
	"atlas/internal/utils/logger"

	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

// purgeAfter is how long a soft-deleted row survives before the nightly
// purge hard-deletes it.
const purgeAfter = 30 * 24 * time.Hour

// TaskHandler processes queued work: seed-bundle imports and content purges.
type TaskHandler struct {
	db       *gorm.DB
	logger   *logger.Logger
	fetcher  *utils.RemoteFetcher
	pipeline *imaging.Pipeline
}

// NewTaskHandler creates a new TaskHandler. pipeline may be nil in tests
// that never touch imagery.
func NewTaskHandler(db *gorm.DB, pipeline *imaging.Pipeline) *TaskHandler {
	return &TaskHandler{
		db:       db,
		logger:   logger.New("task_handler"),
		fetcher:  utils.NewRemoteFetcher(),
		pipeline: pipeline,
	}
}

// HandleSeedImport loads a stored SeedImport row, walks the bundle, and
// upserts content rows. Remote images are re-ingested through the
// optimization pipeline; a failed image never fails the whole import.
func (h *TaskHandler) HandleSeedImport(ctx context.Context, t *asynq.Task) error {
	var payload SeedImportPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal seed import payload: %w", err)
	}

	record := &models.SeedImport{}
	if err := h.db.Where("id = ?", payload.ImportID).First(record).Error; err != nil {
		return fmt.Errorf("load seed import %s: %w", payload.ImportID, err)
	}

	var bundle SeedBundle
	if err := json.Unmarshal(record.Bundle, &bundle); err != nil {
		return h.failImport(record, fmt.Errorf("decode bundle: %w", err))
	}

	record.Status = models.ImportStatusProcessing
	if err := h.db.Save(record).Error; err != nil {
		return fmt.Errorf("mark import processing: %w", err)
	}

	for _, country := range bundle.Countries {
		if err := h.importCountry(ctx, country); err != nil {
			return h.failImport(record, err)
		}
	}

	record.Status = models.ImportStatusCompleted
	record.Error = ""
	if err := h.db.Save(record).Error; err != nil {
		return fmt.Errorf("mark import completed: %w", err)
	}

	h.logger.Success("seed import %s completed: %d countries", record.ID, len(bundle.Countries))
	return nil
}

func (h *TaskHandler) failImport(record *models.SeedImport, cause error) error {
	record.Status = models.ImportStatusFailed
	record.Error = cause.Error()
	if err := h.db.Save(record).Error; err != nil {
		_ = h.logger.Error("failed to mark import failed", err)
	}
	return cause
}

func (h *TaskHandler) importCountry(ctx context.Context, seed SeedCountry) error {
	country := &models.Country{}
	err := h.db.Where("slug = ?", seed.Slug).
		Attrs(models.Country{
			Name:    seed.Name,
			Slug:    seed.Slug,
			ISOCode: seed.ISOCode,
			Summary: seed.Summary,
		}).
		FirstOrCreate(country).Error
	if err != nil {
		return fmt.Errorf("upsert country %s: %w", seed.Slug, err)
	}

	if country.HeroImageURL == "" && seed.HeroImage != "" {
		if url := h.ingestRemote(ctx, seed.HeroImage, imaging.PresetHero); url != "" {
			country.HeroImageURL = url
			if err := h.db.Save(country).Error; err != nil {
				return fmt.Errorf("save country hero %s: %w", seed.Slug, err)
			}
		}
	}

	regionIDs := map[string]string{}
	for _, r := range seed.Regions {
		region := &models.Region{}
		err := h.db.Where("country_id = ? AND slug = ?", country.ID, r.Slug).
			Attrs(models.Region{
				CountryID: country.ID,
				Name:      r.Name,
				Slug:      r.Slug,
				Summary:   r.Summary,
			}).
			FirstOrCreate(region).Error
		if err != nil {
			return fmt.Errorf("upsert region %s: %w", r.Slug, err)
		}
		regionIDs[r.Slug] = region.ID
	}

	for _, c := range seed.Cities {
		if err := h.importCity(ctx, country.ID, regionIDs[c.Region], c); err != nil {
			return err
		}
	}

	return nil
}

func (h *TaskHandler) importCity(ctx context.Context, countryID, regionID string, seed SeedCity) error {
	city := &models.City{}
	err := h.db.Where("country_id = ? AND slug = ?", countryID, seed.Slug).
		Attrs(models.City{
			CountryID: countryID,
			RegionID:  regionID,
			Name:      seed.Name,
			Slug:      seed.Slug,
			Summary:   seed.Summary,
		}).
		FirstOrCreate(city).Error
	if err != nil {
		return fmt.Errorf("upsert city %s: %w", seed.Slug, err)
	}

	if city.HeroImageURL == "" && seed.HeroImage != "" {
		if url := h.ingestRemote(ctx, seed.HeroImage, imaging.PresetHero); url != "" {
			city.HeroImageURL = url
			if err := h.db.Save(city).Error; err != nil {
				return fmt.Errorf("save city hero %s: %w", seed.Slug, err)
			}
		}
	}

	for _, m := range seed.Museums {
		row := &models.Museum{}
		err := h.db.Where("city_id = ? AND name = ?", city.ID, m.Name).
			Attrs(models.Museum{
				CityID:      city.ID,
				Name:        m.Name,
				Description: m.Description,
				Address:     m.Address,
				Website:     m.Website,
				ImageURL:    h.ingestRemote(ctx, m.Image, imaging.PresetInline),
			}).
			FirstOrCreate(row).Error
		if err != nil {
			return fmt.Errorf("upsert museum %s: %w", m.Name, err)
		}
	}

	for _, r := range seed.Restaurants {
		row := &models.Restaurant{}
		err := h.db.Where("city_id = ? AND name = ?", city.ID, r.Name).
			Attrs(models.Restaurant{
				CityID:     city.ID,
				Name:       r.Name,
				Cuisine:    r.Cuisine,
				PriceRange: r.PriceRange,
				Address:    r.Address,
				Website:    r.Website,
				ImageURL:   h.ingestRemote(ctx, r.Image, imaging.PresetInline),
			}).
			FirstOrCreate(row).Error
		if err != nil {
			return fmt.Errorf("upsert restaurant %s: %w", r.Name, err)
		}
	}

	for _, g := range seed.GolfVenues {
		row := &models.GolfVenue{}
		err := h.db.Where("city_id = ? AND name = ?", city.ID, g.Name).
			Attrs(models.GolfVenue{
				CityID:   city.ID,
				Name:     g.Name,
				Holes:    g.Holes,
				Par:      g.Par,
				Address:  g.Address,
				Website:  g.Website,
				ImageURL: h.ingestRemote(ctx, g.Image, imaging.PresetInline),
			}).
			FirstOrCreate(row).Error
		if err != nil {
			return fmt.Errorf("upsert golf venue %s: %w", g.Name, err)
		}
	}

	for _, s := range seed.Shopping {
		row := &models.ShoppingSpot{}
		err := h.db.Where("city_id = ? AND name = ?", city.ID, s.Name).
			Attrs(models.ShoppingSpot{
				CityID:   city.ID,
				Name:     s.Name,
				Category: s.Category,
				Address:  s.Address,
				ImageURL: h.ingestRemote(ctx, s.Image, imaging.PresetInline),
			}).
			FirstOrCreate(row).Error
		if err != nil {
			return fmt.Errorf("upsert shopping spot %s: %w", s.Name, err)
		}
	}

	for _, it := range seed.Itineraries {
		row := &models.ItineraryBlock{}
		err := h.db.Where("city_id = ? AND weekday = ? AND position = ?", city.ID, it.Weekday, it.Position).
			Attrs(models.ItineraryBlock{
				CityID:   city.ID,
				Title:    it.Title,
				Weekday:  it.Weekday,
				Position: it.Position,
				Body:     it.Body,
				ImageURL: h.ingestRemote(ctx, it.Image, imaging.PresetInline),
			}).
			FirstOrCreate(row).Error
		if err != nil {
			return fmt.Errorf("upsert itinerary block %s/%s: %w", it.Weekday, it.Title, err)
		}
	}

	return nil
}

// ingestRemote fetches one remote image and runs it through the pipeline.
// Returns the persisted URL, or "" when the fetch or ingestion fails; seed
// imagery is best-effort and never aborts the import.
func (h *TaskHandler) ingestRemote(ctx context.Context, url string, preset imaging.Preset) string {
	if url == "" || h.pipeline == nil {
		return ""
	}

	data, err := h.fetcher.Fetch(ctx, url)
	if err != nil {
		h.logger.Warn("seed image fetch failed for %s: %v", url, err)
		return ""
	}

	result, err := h.pipeline.Ingest(ctx, url, bytes.NewReader(data), preset)
	if err != nil {
		h.logger.Warn("seed image ingest failed for %s: %v", url, err)
		return ""
	}

	return result.URL
}

// HandleContentPurge hard-deletes rows that were soft-deleted more than
// purgeAfter ago. Runs nightly via the scheduler.
func (h *TaskHandler) HandleContentPurge(ctx context.Context, t *asynq.Task) error {
	cutoff := time.Now().Add(-purgeAfter)
	targets := []interface{}{
		&models.Country{}, &models.Region{}, &models.City{},
		&models.Museum{}, &models.Restaurant{}, &models.GolfVenue{},
		&models.ShoppingSpot{}, &models.ItineraryBlock{}, &models.Upload{},
	}

	var purged int64
	for _, target := range targets {
		res := h.db.WithContext(ctx).
			Where("is_deleted = true AND deleted_at < ?", cutoff).
			Delete(target)
		if res.Error != nil {
			return fmt.Errorf("purge %T: %w", target, res.Error)
		}
		purged += res.RowsAffected
	}

	h.logger.Info("content purge removed %d rows older than %s", purged, cutoff.Format(time.RFC3339))
	return nil
}
