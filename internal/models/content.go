package models

import (
	"atlas/internal/events"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Country struct {
	Base
	Name         string   `gorm:"uniqueIndex;not null" json:"name" validate:"required,min=2"`
	Slug         string   `gorm:"uniqueIndex;not null" json:"slug" validate:"required"`
	ISOCode      string   `gorm:"size:2" json:"isoCode" validate:"omitempty,len=2"`
	Summary      string   `gorm:"type:text" json:"summary"`
	HeroImageURL string   `json:"heroImageUrl" validate:"omitempty,url"`
	Cities       []City   `gorm:"foreignKey:CountryID;references:ID" json:"cities,omitempty"`
	Regions      []Region `gorm:"foreignKey:CountryID;references:ID" json:"regions,omitempty"`
}

type Region struct {
	Base
	CountryID string   `gorm:"type:uuid;not null" json:"countryId" validate:"required,uuid"`
	Country   *Country `json:"country,omitempty"`
	Name      string   `gorm:"not null" json:"name" validate:"required,min=2"`
	Slug      string   `gorm:"index;not null" json:"slug" validate:"required"`
	Summary   string   `gorm:"type:text" json:"summary"`
}

type City struct {
	Base
	CountryID    string   `gorm:"type:uuid;not null" json:"countryId" validate:"required,uuid"`
	Country      *Country `json:"country,omitempty"`
	RegionID     string   `gorm:"type:uuid;default:NULL" json:"regionId,omitempty" validate:"omitempty,uuid"`
	Region       *Region  `json:"region,omitempty"`
	Name         string   `gorm:"not null" json:"name" validate:"required,min=2"`
	Slug         string   `gorm:"index;not null" json:"slug" validate:"required"`
	Summary      string   `gorm:"type:text" json:"summary"`
	HeroImageURL string   `json:"heroImageUrl" validate:"omitempty,url"`
}

type Museum struct {
	Base
	CityID      string `gorm:"type:uuid;not null" json:"cityId" validate:"required,uuid"`
	City        *City  `json:"city,omitempty"`
	Name        string `gorm:"not null" json:"name" validate:"required,min=2"`
	Description string `gorm:"type:text" json:"description"`
	Address     string `json:"address"`
	Website     string `json:"website" validate:"omitempty,url"`
	ImageURL    string `json:"imageUrl" validate:"omitempty,url"`
}

type Restaurant struct {
	Base
	CityID     string `gorm:"type:uuid;not null" json:"cityId" validate:"required,uuid"`
	City       *City  `json:"city,omitempty"`
	Name       string `gorm:"not null" json:"name" validate:"required,min=2"`
	Cuisine    string `json:"cuisine"`
	PriceRange string `json:"priceRange" validate:"omitempty,oneof=$ $$ $$$ $$$$"`
	Address    string `json:"address"`
	Website    string `json:"website" validate:"omitempty,url"`
	ImageURL   string `json:"imageUrl" validate:"omitempty,url"`
}

type GolfVenue struct {
	Base
	CityID   string `gorm:"type:uuid;not null" json:"cityId" validate:"required,uuid"`
	City     *City  `json:"city,omitempty"`
	Name     string `gorm:"not null" json:"name" validate:"required,min=2"`
	Holes    int    `gorm:"default:18" json:"holes" validate:"omitempty,oneof=9 18 27 36"`
	Par      int    `json:"par" validate:"omitempty,min=27,max=80"`
	Address  string `json:"address"`
	Website  string `json:"website" validate:"omitempty,url"`
	ImageURL string `json:"imageUrl" validate:"omitempty,url"`
}

type ShoppingSpot struct {
	Base
	CityID   string `gorm:"type:uuid;not null" json:"cityId" validate:"required,uuid"`
	City     *City  `json:"city,omitempty"`
	Name     string `gorm:"not null" json:"name" validate:"required,min=2"`
	Category string `json:"category"`
	Address  string `json:"address"`
	ImageURL string `json:"imageUrl" validate:"omitempty,url"`
}

// ItineraryBlock is one weekday-keyed editorial block of a city itinerary.
type ItineraryBlock struct {
	Base
	CityID   string `gorm:"type:uuid;not null" json:"cityId" validate:"required,uuid"`
	City     *City  `json:"city,omitempty"`
	Title    string `gorm:"not null" json:"title" validate:"required"`
	Weekday  string `gorm:"not null" json:"weekday" validate:"required,weekday"`
	Position int    `gorm:"default:0" json:"position" validate:"min=0"`
	Body     string `gorm:"type:text" json:"body"`
	ImageURL string `json:"imageUrl" validate:"omitempty,url"`
}

// Upload records one persisted image-ingestion artifact.
type Upload struct {
	Base
	UserID       string `gorm:"type:uuid;default:NULL" json:"userId,omitempty" validate:"omitempty,uuid"`
	User         *User  `json:"user,omitempty"`
	Key          string `gorm:"uniqueIndex;not null" json:"key" validate:"required"`
	URL          string `gorm:"not null" json:"url" validate:"required,url"`
	Preset       string `gorm:"not null" json:"preset" validate:"required"`
	ContentType  string `gorm:"not null" json:"contentType"`
	SourceBytes  int64  `json:"sourceBytes"`
	EncodedBytes int64  `json:"encodedBytes"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
}

func (u *Upload) AfterCreate(tx *gorm.DB) error {
	events.Emit("uploads.recorded", u)
	return nil
}

// SeedImport tracks one ad-hoc seed-data bundle through its background import.
type SeedImport struct {
	Base
	UserID string         `gorm:"type:uuid;default:NULL" json:"userId,omitempty"`
	User   *User          `json:"user,omitempty"`
	Status ImportStatus   `gorm:"not null;default:'QUEUED'" json:"status"`
	Bundle datatypes.JSON `gorm:"type:jsonb;not null" json:"-"`
	Error  string         `gorm:"type:text" json:"error,omitempty"`
}
