package ranking

import (
	"context"
	"time"

	"trending-api/internal/cache"
	"trending-api/internal/models"
)

const featuredVideosQuery = `
SELECT
	v.id, v.title, v.thumbnail_url,
	COALESCE(NULLIF(u.display_name, ''), u.username) AS creator_name,
	v.creator_id, v.view_count, v.price, v.category, v.created_at, v.duration_seconds
FROM videos v
JOIN users u ON u.id = v.creator_id
WHERE ` + eligibleVideo + ` AND ` + eligibleCreator + `
	AND v.created_at >= @window_start
ORDER BY v.view_count DESC, v.created_at DESC, v.id ASC
LIMIT @limit`

const featuredSeriesQuery = `
SELECT
	s.id, s.title, s.thumbnail_url,
	COALESCE(NULLIF(u.display_name, ''), u.username) AS creator_name,
	s.creator_id, s.view_count, s.price, s.category, s.created_at,
	(SELECT COUNT(*) FROM videos v
		WHERE v.series_id = s.id AND ` + eligibleVideo + `) AS video_count
FROM series s
JOIN users u ON u.id = s.creator_id
WHERE ` + eligibleSeries + ` AND ` + eligibleCreator + `
	AND s.created_at >= @window_start
ORDER BY s.view_count DESC, s.created_at DESC, s.id ASC
LIMIT @limit`

type featuredRow struct {
	ID              string
	Title           string
	ThumbnailURL    string
	CreatorName     string
	CreatorID       string
	ViewCount       int64
	Price           float64
	Category        string
	CreatedAt       time.Time
	DurationSeconds int
	VideoCount      int64
}

func (r featuredRow) content(kind ShowKind) FeaturedContent {
	c := FeaturedContent{
		Kind:         kind,
		ID:           r.ID,
		Title:        r.Title,
		ThumbnailURL: r.ThumbnailURL,
		CreatorName:  r.CreatorName,
		CreatorID:    r.CreatorID,
		ViewCount:    r.ViewCount,
		Price:        r.Price,
		Category:     r.Category,
		CreatedAt:    r.CreatedAt,
	}
	if kind == KindVideo {
		d := r.DurationSeconds
		c.DurationSeconds = &d
	} else {
		n := r.VideoCount
		c.VideoCount = &n
	}
	return c
}

// GetFeaturedContent returns a shuffled selection of popular videos and
// series created in the last 30 days. The shuffle is cached with the list,
// so it only changes when the entry expires.
func (s *Service) GetFeaturedContent(ctx context.Context, limit int) ([]FeaturedContent, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}
	return cache.Remember(ctx, s.cache, cache.FeaturedContentKey(limit), cache.FeaturedContentTTL,
		func(ctx context.Context) ([]FeaturedContent, error) {
			return observe(ctx, "featured", ErrFetchFeatured, func() ([]FeaturedContent, error) {
				return s.computeFeaturedContent(ctx, limit)
			})
		})
}

func (s *Service) computeFeaturedContent(ctx context.Context, limit int) ([]FeaturedContent, error) {
	args := map[string]any{
		"approved":     models.ModerationApproved,
		"window_start": s.now().UTC().Add(-FeaturedWindow),
	}

	var videos []featuredRow
	args["limit"] = videoFeaturedQuota.of(limit)
	if err := s.scan(ctx, &videos, featuredVideosQuery, args); err != nil {
		return nil, err
	}

	var series []featuredRow
	args["limit"] = seriesFeaturedQuota.of(limit)
	if err := s.scan(ctx, &series, featuredSeriesQuery, args); err != nil {
		return nil, err
	}

	content := make([]FeaturedContent, 0, len(videos)+len(series))
	for _, r := range videos {
		content = append(content, r.content(KindVideo))
	}
	for _, r := range series {
		content = append(content, r.content(KindSeries))
	}

	s.shuffle(len(content), func(i, j int) {
		content[i], content[j] = content[j], content[i]
	})
	if len(content) > limit {
		content = content[:limit]
	}
	return content, nil
}
