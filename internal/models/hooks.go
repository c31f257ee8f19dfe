package models

import (
	"atlas/internal/events"

	"gorm.io/gorm"
)

func (c *Country) AfterCreate(tx *gorm.DB) error {
	events.Emit("countries.created", c)
	return nil
}

func (s *SeedImport) AfterCreate(tx *gorm.DB) error {
	events.Emit("seed_imports.created", s)
	return nil
}
