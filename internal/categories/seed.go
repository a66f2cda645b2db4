package categories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"trending-api/internal/logging"
	"trending-api/internal/models"
)

// Defaults is the category set inserted into an empty table.
var Defaults = []models.Category{
	{Name: "Comedy", Slug: "comedy", Description: "Sketches, stand-up and pranks"},
	{Name: "Music", Slug: "music", Description: "Performances, covers and music videos"},
	{Name: "Gaming", Slug: "gaming", Description: "Let's plays, speedruns and reviews"},
	{Name: "Education", Slug: "education", Description: "Tutorials, explainers and courses"},
	{Name: "Lifestyle", Slug: "lifestyle", Description: "Vlogs, food and travel"},
	{Name: "Drama", Slug: "drama", Description: "Short films and scripted series"},
	{Name: "Sports", Slug: "sports", Description: "Highlights, training and analysis"},
	{Name: "Technology", Slug: "technology", Description: "Gadgets, software and science"},
}

// SeedDefaults inserts Defaults when the categories table is empty. It
// reports how many rows were inserted.
func (s *Service) SeedDefaults(ctx context.Context) (int, error) {
	inserted := 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Category{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		rows := make([]models.Category, len(Defaults))
		for i, d := range Defaults {
			d.IsActive = true
			d.DisplayOrder = i + 1
			rows[i] = d
		}
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
		inserted = len(rows)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("seed categories: %w", err)
	}
	if inserted > 0 {
		logging.Info().Int("categories", inserted).Msg("Seeded default categories")
	}
	return inserted, nil
}
