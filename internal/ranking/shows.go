package ranking

import (
	"context"
	"sort"

	"trending-api/internal/cache"
	"trending-api/internal/models"
)

// eligibleCreator filters the joined creator u to active, unsuspended accounts.
const eligibleCreator = `u.is_active = TRUE AND u.is_suspended = FALSE AND u.deleted_at IS NULL`

const trendingVideosQuery = `
SELECT * FROM (
	SELECT
		v.id,
		v.title,
		v.thumbnail_url,
		COALESCE(NULLIF(u.display_name, ''), u.username) AS creator_name,
		v.creator_id,
		v.view_count,
		v.price,
		v.category,
		v.duration_seconds,
		(SELECT COUNT(*) FROM transactions t
			WHERE t.video_id = v.id AND t.type = @view_type AND t.status = @completed
				AND t.created_at >= @window_start) AS recent_views,
		(SELECT COUNT(*) FROM video_likes l
			WHERE l.video_id = v.id AND l.created_at >= @window_start) AS recent_likes
	FROM videos v
	JOIN users u ON u.id = v.creator_id
	WHERE ` + eligibleVideo + ` AND ` + eligibleCreator + `
) ranked
ORDER BY %s DESC, id ASC
LIMIT @limit`

const trendingSeriesQuery = `
SELECT * FROM (
	SELECT
		s.id,
		s.title,
		s.thumbnail_url,
		COALESCE(NULLIF(u.display_name, ''), u.username) AS creator_name,
		s.creator_id,
		s.view_count,
		s.price,
		s.category,
		(SELECT COUNT(*) FROM videos v
			WHERE v.series_id = s.id AND ` + eligibleVideo + `) AS video_count,
		(SELECT COUNT(*) FROM transactions t
			WHERE t.series_id = s.id AND t.type = @series_purchase_type AND t.status = @completed
				AND t.created_at >= @window_start) AS recent_purchases,
		(SELECT COUNT(*) FROM transactions t
			JOIN videos sv ON sv.id = t.video_id
			WHERE sv.series_id = s.id AND t.type = @view_type AND t.status = @completed
				AND t.created_at >= @window_start) AS recent_series_views
	FROM series s
	JOIN users u ON u.id = s.creator_id
	WHERE ` + eligibleSeries + ` AND ` + eligibleCreator + `
) ranked
ORDER BY %s DESC, id ASC
LIMIT @limit`

// eligibleSeries filters series s to the active, approved, live catalog.
const eligibleSeries = `s.is_active = TRUE AND s.moderation_status = @approved AND s.deleted_at IS NULL`

// showColumns are the columns both show queries select.
type showColumns struct {
	ID           string
	Title        string
	ThumbnailURL string
	CreatorName  string
	CreatorID    string
	ViewCount    int64
	Price        float64
	Category     string
}

// Row types are flat; gorm skips unexported embedded structs when scanning.
type videoRow struct {
	ID              string
	Title           string
	ThumbnailURL    string
	CreatorName     string
	CreatorID       string
	ViewCount       int64
	Price           float64
	Category        string
	DurationSeconds int
	RecentViews     int64
	RecentLikes     int64
}

type seriesRow struct {
	ID                string
	Title             string
	ThumbnailURL      string
	CreatorName       string
	CreatorID         string
	ViewCount         int64
	Price             float64
	Category          string
	VideoCount        int64
	RecentPurchases   int64
	RecentSeriesViews int64
}

func (r videoRow) columns() showColumns {
	return showColumns{r.ID, r.Title, r.ThumbnailURL, r.CreatorName, r.CreatorID, r.ViewCount, r.Price, r.Category}
}

func (r seriesRow) columns() showColumns {
	return showColumns{r.ID, r.Title, r.ThumbnailURL, r.CreatorName, r.CreatorID, r.ViewCount, r.Price, r.Category}
}

func (c showColumns) show(kind ShowKind) TrendingShow {
	return TrendingShow{
		Kind:         kind,
		ID:           c.ID,
		Title:        c.Title,
		ThumbnailURL: c.ThumbnailURL,
		CreatorName:  c.CreatorName,
		CreatorID:    c.CreatorID,
		ViewCount:    c.ViewCount,
		Price:        c.Price,
		Category:     c.Category,
	}
}

// CalculateTrendingShows returns up to limit videos and series merged into
// one list ordered by trending score, highest first. Videos and series are
// fetched with separate quotas so both kinds are represented.
func (s *Service) CalculateTrendingShows(ctx context.Context, limit int) ([]TrendingShow, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}
	return cache.Remember(ctx, s.cache, cache.TrendingShowsKey(limit), cache.TrendingShowsTTL,
		func(ctx context.Context) ([]TrendingShow, error) {
			return observe(ctx, "shows", ErrCalculateShows, func() ([]TrendingShow, error) {
				return s.computeTrendingShows(ctx, limit)
			})
		})
}

func (s *Service) computeTrendingShows(ctx context.Context, limit int) ([]TrendingShow, error) {
	args := map[string]any{
		"approved":             models.ModerationApproved,
		"view_type":            models.TransactionView,
		"series_purchase_type": models.TransactionSeriesPurchase,
		"completed":            models.TransactionCompleted,
		"window_start":         s.now().UTC().Add(-TrendingWindow),
	}

	var videos []videoRow
	args["limit"] = videoShowQuota.of(limit)
	if err := s.scan(ctx, &videos, withOrder(trendingVideosQuery, VideoFormula), args); err != nil {
		return nil, err
	}

	var series []seriesRow
	args["limit"] = seriesShowQuota.of(limit)
	if err := s.scan(ctx, &series, withOrder(trendingSeriesQuery, SeriesFormula), args); err != nil {
		return nil, err
	}

	shows := make([]TrendingShow, 0, len(videos)+len(series))
	for _, r := range videos {
		show := r.columns().show(KindVideo)
		duration := r.DurationSeconds
		show.DurationSeconds = &duration
		show.TrendingScore = VideoFormula.Score(r.RecentViews, r.RecentLikes, r.ViewCount)
		show.RecentActivityCount = r.RecentViews + r.RecentLikes
		shows = append(shows, show)
	}
	for _, r := range series {
		show := r.columns().show(KindSeries)
		count := r.VideoCount
		show.VideoCount = &count
		show.TrendingScore = SeriesFormula.Score(r.RecentPurchases, r.RecentSeriesViews, r.ViewCount)
		show.RecentActivityCount = r.RecentPurchases + r.RecentSeriesViews
		shows = append(shows, show)
	}

	sort.SliceStable(shows, func(i, j int) bool {
		return shows[i].TrendingScore > shows[j].TrendingScore
	})
	if len(shows) > limit {
		shows = shows[:limit]
	}
	return shows, nil
}
