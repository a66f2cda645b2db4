package models

import (
	"time"

	"gorm.io/gorm"
)

// Category groups videos and series. VideoCount and SeriesCount are
// denormalized and refreshed by the category aggregator.
type Category struct {
	ID           string         `json:"id" gorm:"primaryKey"`
	Name         string         `json:"name" gorm:"not null"`
	Slug         string         `json:"slug" gorm:"uniqueIndex;not null"`
	Description  string         `json:"description,omitempty"`
	IconURL      string         `json:"iconUrl,omitempty"`
	VideoCount   int64          `json:"videoCount" gorm:"not null;default:0"`
	SeriesCount  int64          `json:"seriesCount" gorm:"not null;default:0"`
	IsActive     bool           `json:"isActive" gorm:"not null;index"`
	DisplayOrder int            `json:"displayOrder" gorm:"not null;default:0"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name for Category Model
func (Category) TableName() string {
	return "categories"
}

func (c *Category) BeforeCreate(*gorm.DB) error {
	c.ID = ensureID(c.ID)
	return nil
}
