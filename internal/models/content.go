package models

import (
	"time"

	"gorm.io/gorm"
)

// Video represents a single uploaded video. SeriesID is set when the video
// is an episode of a series.
type Video struct {
	ID               string           `json:"id" gorm:"primaryKey"`
	CreatorID        string           `json:"creatorId" gorm:"not null;index"`
	SeriesID         *string          `json:"seriesId,omitempty" gorm:"index"`
	Title            string           `json:"title" gorm:"not null"`
	ThumbnailURL     string           `json:"thumbnailUrl"`
	Category         string           `json:"category" gorm:"index"`
	ViewCount        int64            `json:"viewCount" gorm:"not null;default:0"`
	Price            float64          `json:"price" gorm:"not null;default:0"`
	DurationSeconds  int              `json:"durationSeconds" gorm:"not null;default:0"`
	IsActive         bool             `json:"isActive" gorm:"not null;index"`
	ModerationStatus ModerationStatus `json:"moderationStatus" gorm:"not null;default:'pending';index"`
	CreatedAt        time.Time        `json:"createdAt" gorm:"index"`
	UpdatedAt        time.Time        `json:"updatedAt"`
	DeletedAt        gorm.DeletedAt   `json:"-" gorm:"index"`
}

// TableName specifies the table name for Video Model
func (Video) TableName() string {
	return "videos"
}

func (v *Video) BeforeCreate(*gorm.DB) error {
	v.ID = ensureID(v.ID)
	return nil
}

// Series represents a multi-video show sold as a unit.
type Series struct {
	ID               string           `json:"id" gorm:"primaryKey"`
	CreatorID        string           `json:"creatorId" gorm:"not null;index"`
	Title            string           `json:"title" gorm:"not null"`
	ThumbnailURL     string           `json:"thumbnailUrl"`
	Category         string           `json:"category" gorm:"index"`
	ViewCount        int64            `json:"viewCount" gorm:"not null;default:0"`
	Price            float64          `json:"price" gorm:"not null;default:0"`
	IsActive         bool             `json:"isActive" gorm:"not null;index"`
	ModerationStatus ModerationStatus `json:"moderationStatus" gorm:"not null;default:'pending';index"`
	CreatedAt        time.Time        `json:"createdAt" gorm:"index"`
	UpdatedAt        time.Time        `json:"updatedAt"`
	DeletedAt        gorm.DeletedAt   `json:"-" gorm:"index"`
}

// TableName specifies the table name for Series Model
func (Series) TableName() string {
	return "series"
}

func (s *Series) BeforeCreate(*gorm.DB) error {
	s.ID = ensureID(s.ID)
	return nil
}
