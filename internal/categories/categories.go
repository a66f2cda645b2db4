// Package categories serves the active category list with live content
// counts and refreshes the denormalized counts stored on category rows.
package categories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"trending-api/internal/cache"
	"trending-api/internal/logging"
	"trending-api/internal/metrics"
	"trending-api/internal/models"
)

var (
	ErrListCategories = errors.New("failed to list categories")
	ErrUpdateCounts   = errors.New("failed to update category counts")
)

// Category is an active category with its current content counts.
type Category struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Description  string `json:"description,omitempty"`
	IconURL      string `json:"iconUrl,omitempty"`
	VideoCount   int64  `json:"videoCount"`
	SeriesCount  int64  `json:"seriesCount"`
	ContentCount int64  `json:"contentCount"`
	IsActive     bool   `json:"isActive"`
	DisplayOrder int    `json:"displayOrder"`
}

// Service reads and maintains categories.
type Service struct {
	db    *gorm.DB
	cache *cache.TTLCache[any]
}

func NewService(db *gorm.DB, c *cache.TTLCache[any]) *Service {
	return &Service{db: db, cache: c}
}

// GetActiveCategories returns active categories ordered by display order
// then name, with counts of active approved videos and series. The list is
// cached under a single key until it expires or counts are refreshed.
func (s *Service) GetActiveCategories(ctx context.Context) ([]Category, error) {
	return cache.Remember(ctx, s.cache, cache.ActiveCategoriesKey, cache.ActiveCategoriesTTL,
		func(ctx context.Context) ([]Category, error) {
			start := time.Now()
			defer func() {
				metrics.RankingDuration.WithLabelValues("categories").Observe(time.Since(start).Seconds())
			}()

			out, err := s.loadActive(ctx)
			if err != nil {
				metrics.RankingErrors.WithLabelValues("categories").Inc()
				logging.Ctx(ctx).Error().Err(err).Msg("Failed to list active categories")
				return nil, fmt.Errorf("%w: %w", ErrListCategories, err)
			}
			return out, nil
		})
}

func (s *Service) loadActive(ctx context.Context) ([]Category, error) {
	db := s.db.WithContext(ctx)

	var rows []models.Category
	if err := db.Where("is_active = ?", true).
		Order("display_order ASC").
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	videoCounts, seriesCounts, err := contentCounts(db)
	if err != nil {
		return nil, err
	}

	out := make([]Category, 0, len(rows))
	for _, r := range rows {
		videos, series := videoCounts[r.Slug], seriesCounts[r.Slug]
		out = append(out, Category{
			ID:           r.ID,
			Name:         r.Name,
			Slug:         r.Slug,
			Description:  r.Description,
			IconURL:      r.IconURL,
			VideoCount:   videos,
			SeriesCount:  series,
			ContentCount: videos + series,
			IsActive:     r.IsActive,
			DisplayOrder: r.DisplayOrder,
		})
	}
	return out, nil
}

// UpdateCategoryCounts recomputes the content counts of every category
// and writes them back in one transaction. On success the cached active
// list is invalidated; on failure the stored counts and the cache are left
// as they were.
func (s *Service) UpdateCategoryCounts(ctx context.Context) error {
	var updated int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		videoCounts, seriesCounts, err := contentCounts(tx)
		if err != nil {
			return err
		}

		var rows []models.Category
		if err := tx.Select("id", "slug").Find(&rows).Error; err != nil {
			return err
		}
		for _, r := range rows {
			if err := tx.Model(&models.Category{}).
				Where("id = ?", r.ID).
				Updates(map[string]any{
					"video_count":  videoCounts[r.Slug],
					"series_count": seriesCounts[r.Slug],
				}).Error; err != nil {
				return err
			}
		}
		updated = len(rows)
		return nil
	})
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Msg("Failed to update category counts")
		return fmt.Errorf("%w: %w", ErrUpdateCounts, err)
	}

	s.cache.Delete(cache.ActiveCategoriesKey)
	logging.Ctx(ctx).Info().Int("categories", updated).Msg("Category counts updated")
	return nil
}

type countRow struct {
	Category string
	Count    int64
}

// contentCounts counts active approved videos and series per category slug.
func contentCounts(db *gorm.DB) (videos, series map[string]int64, err error) {
	videos, err = countBy(db.Model(&models.Video{}))
	if err != nil {
		return nil, nil, err
	}
	series, err = countBy(db.Model(&models.Series{}))
	if err != nil {
		return nil, nil, err
	}
	return videos, series, nil
}

func countBy(q *gorm.DB) (map[string]int64, error) {
	var rows []countRow
	if err := q.Select("category, COUNT(*) AS count").
		Where("is_active = ? AND moderation_status = ?", true, models.ModerationApproved).
		Group("category").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Category] = r.Count
	}
	return counts, nil
}
