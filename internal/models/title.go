package models

import (
	"reviewhub/internal/validation"

	"gorm.io/gorm"
)

// Title is a reviewable work.
type Title struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"index;type:varchar(256);not null"`
	Year        int       `gorm:"index;not null"`
	Description string    `gorm:"type:text"`
	CategoryID  *uint     `gorm:"index"`
	Category    *Category `gorm:"constraint:OnDelete:SET NULL;"`
	Genres      []Genre   `gorm:"many2many:title_genres;constraint:OnDelete:CASCADE;"`

	// Rating is filled by list/detail queries and never persisted.
	Rating *float64 `gorm:"->;-:migration"`
}

// BeforeSave enforces the release year range on every write.
func (t *Title) BeforeSave(tx *gorm.DB) error {
	return validation.ValidateYear(t.Year)
}
