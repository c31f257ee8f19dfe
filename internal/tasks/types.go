package tasks

import "time"

// Task Types
const (
	// Seed-data bundles are imported in the background
	TaskTypeSeedImport = "seed:import"
	// Soft-deleted content is purged nightly
	TaskTypeContentPurge = "content:purge"
)

// Task Queues
const (
	QueueCritical = "critical" // For editor-facing work like seed imports
	QueueDefault  = "default"  // For regular tasks
	QueueLow      = "low"      // For background tasks like cleanup
)

// Task Timeouts
const (
	TimeoutShort  = 1 * time.Minute
	TimeoutMedium = 5 * time.Minute
	TimeoutLong   = 30 * time.Minute
)

// Task Retry Settings
const (
	RetryMax     = 5
	RetryDefault = 3
	RetryMin     = 1
)

// SeedImportPayload points the worker at a stored SeedImport row. The bundle
// itself lives in postgres, not in the queue.
type SeedImportPayload struct {
	ImportID string `json:"import_id"`
}

// SeedBundle is the ad-hoc seed-data document editors upload. Image fields
// hold remote URLs; the import re-ingests each one through the optimization
// pipeline rather than hotlinking.
type SeedBundle struct {
	Countries []SeedCountry `json:"countries"`
}

type SeedCountry struct {
	Name      string       `json:"name"`
	Slug      string       `json:"slug"`
	ISOCode   string       `json:"isoCode"`
	Summary   string       `json:"summary"`
	HeroImage string       `json:"heroImage"`
	Regions   []SeedRegion `json:"regions"`
	Cities    []SeedCity   `json:"cities"`
}

type SeedRegion struct {
	Name    string `json:"name"`
	Slug    string `json:"slug"`
	Summary string `json:"summary"`
}

type SeedCity struct {
	Name        string           `json:"name"`
	Slug        string           `json:"slug"`
	Region      string           `json:"region"`
	Summary     string           `json:"summary"`
	HeroImage   string           `json:"heroImage"`
	Museums     []SeedPlace      `json:"museums"`
	Restaurants []SeedRestaurant `json:"restaurants"`
	GolfVenues  []SeedGolfVenue  `json:"golfVenues"`
	Shopping    []SeedShop       `json:"shopping"`
	Itineraries []SeedItinerary  `json:"itineraries"`
}

type SeedPlace struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Address     string `json:"address"`
	Website     string `json:"website"`
	Image       string `json:"image"`
}

type SeedRestaurant struct {
	SeedPlace
	Cuisine    string `json:"cuisine"`
	PriceRange string `json:"priceRange"`
}

type SeedGolfVenue struct {
	SeedPlace
	Holes int `json:"holes"`
	Par   int `json:"par"`
}

type SeedShop struct {
	SeedPlace
	Category string `json:"category"`
}

type SeedItinerary struct {
	Title    string `json:"title"`
	Weekday  string `json:"weekday"`
	Position int    `json:"position"`
	Body     string `json:"body"`
	Image    string `json:"image"`
}

// Empty reports whether the bundle carries nothing to import.
func (b SeedBundle) Empty() bool {
	return len(b.Countries) == 0
}
