package ranking

import (
	"context"
	"sort"

	"trending-api/internal/cache"
	"trending-api/internal/models"
)

// eligibleVideo filters videos v to the active, approved, live catalog.
const eligibleVideo = `v.is_active = TRUE AND v.moderation_status = @approved AND v.deleted_at IS NULL`

const creatorsQuery = `
SELECT * FROM (
	SELECT
		u.id,
		u.username,
		COALESCE(NULLIF(u.display_name, ''), u.username) AS display_name,
		u.avatar_url,
		u.follower_count,
		(SELECT COUNT(*) FROM videos v
			WHERE v.creator_id = u.id AND ` + eligibleVideo + `) AS video_count,
		(SELECT COUNT(*) FROM follows f
			WHERE f.following_id = u.id AND f.created_at >= @window_start) AS recent_followers,
		(SELECT COALESCE(SUM(v.view_count), 0) FROM videos v
			WHERE v.creator_id = u.id AND ` + eligibleVideo + ` AND v.created_at >= @window_start) AS recent_views,
		(SELECT COUNT(*) FROM profile_visits p
			WHERE p.profile_user_id = u.id AND p.created_at >= @window_start) AS recent_profile_visits,
		COALESCE((SELECT v.category FROM videos v
			WHERE v.creator_id = u.id AND ` + eligibleVideo + `
			GROUP BY v.category
			ORDER BY COUNT(*) DESC, v.category ASC
			LIMIT 1), '') AS primary_category
	FROM users u
	WHERE u.role = @creator_role
		AND u.is_active = TRUE
		AND u.is_suspended = FALSE
		AND u.deleted_at IS NULL
) ranked
ORDER BY %s DESC, id ASC
LIMIT @limit`

type creatorRow struct {
	ID                  string
	Username            string
	DisplayName         string
	AvatarURL           string
	FollowerCount       int64
	VideoCount          int64
	RecentFollowers     int64
	RecentViews         int64
	RecentProfileVisits int64
	PrimaryCategory     string
}

func (r creatorRow) score() int64 {
	return CreatorFormula.Score(r.RecentFollowers, r.RecentViews, r.RecentProfileVisits, r.VideoCount)
}

// CalculateTrendingCreators returns up to limit creators ordered by
// trending score, highest first. Results are cached per limit.
func (s *Service) CalculateTrendingCreators(ctx context.Context, limit int) ([]TrendingCreator, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}
	return cache.Remember(ctx, s.cache, cache.TrendingCreatorsKey(limit), cache.TrendingCreatorsTTL,
		func(ctx context.Context) ([]TrendingCreator, error) {
			return observe(ctx, "creators", ErrCalculateCreators, func() ([]TrendingCreator, error) {
				return s.computeTrendingCreators(ctx, limit)
			})
		})
}

func (s *Service) computeTrendingCreators(ctx context.Context, limit int) ([]TrendingCreator, error) {
	var rows []creatorRow
	err := s.scan(ctx, &rows, withOrder(creatorsQuery, CreatorFormula), map[string]any{
		"approved":     models.ModerationApproved,
		"creator_role": models.RoleCreator,
		"window_start": s.now().UTC().Add(-TrendingWindow),
		"limit":        limit,
	})
	if err != nil {
		return nil, err
	}

	creators := make([]TrendingCreator, 0, len(rows))
	for _, r := range rows {
		creators = append(creators, TrendingCreator{
			ID:                  r.ID,
			Username:            r.Username,
			DisplayName:         r.DisplayName,
			AvatarURL:           r.AvatarURL,
			FollowerCount:       r.FollowerCount,
			VideoCount:          r.VideoCount,
			RecentFollowers:     r.RecentFollowers,
			RecentViews:         r.RecentViews,
			RecentProfileVisits: r.RecentProfileVisits,
			PrimaryCategory:     r.PrimaryCategory,
			TrendingScore:       r.score(),
		})
	}
	sort.SliceStable(creators, func(i, j int) bool {
		return creators[i].TrendingScore > creators[j].TrendingScore
	})
	if len(creators) > limit {
		creators = creators[:limit]
	}
	return creators, nil
}
