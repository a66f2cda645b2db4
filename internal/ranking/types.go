package ranking

import "time"

// TrendingCreator is one row of the trending creators list.
type TrendingCreator struct {
	ID              string `json:"id"`
	Username        string `json:"username"`
	DisplayName     string `json:"displayName"`
	AvatarURL       string `json:"avatarUrl,omitempty"`
	FollowerCount   int64  `json:"followerCount"`
	VideoCount      int64  `json:"videoCount"`
	RecentFollowers int64  `json:"recentFollowers"`
	RecentViews     int64  `json:"recentViews"`
	// RecentProfileVisits is an input of the score, kept for display.
	RecentProfileVisits int64  `json:"recentProfileVisits"`
	PrimaryCategory     string `json:"primaryCategory"`
	TrendingScore       int64  `json:"trendingScore"`
}

// ShowKind discriminates TrendingShow and FeaturedContent records
type ShowKind string

const (
	KindVideo  ShowKind = "video"
	KindSeries ShowKind = "series"
)

// TrendingShow is one row of the merged trending shows list. DurationSeconds
// is set for videos, VideoCount for series.
type TrendingShow struct {
	Kind                ShowKind `json:"type"`
	ID                  string   `json:"id"`
	Title               string   `json:"title"`
	ThumbnailURL        string   `json:"thumbnailUrl"`
	CreatorName         string   `json:"creatorName"`
	CreatorID           string   `json:"creatorId"`
	ViewCount           int64    `json:"viewCount"`
	Price               float64  `json:"price"`
	Category            string   `json:"category"`
	TrendingScore       int64    `json:"trendingScore"`
	RecentActivityCount int64    `json:"recentActivityCount"`
	DurationSeconds     *int     `json:"duration,omitempty"`
	VideoCount          *int64   `json:"videoCount,omitempty"`
}

// FeaturedContent is an unscored content summary for the featured shelf.
type FeaturedContent struct {
	Kind            ShowKind  `json:"type"`
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	ThumbnailURL    string    `json:"thumbnailUrl"`
	CreatorName     string    `json:"creatorName"`
	CreatorID       string    `json:"creatorId"`
	ViewCount       int64     `json:"viewCount"`
	Price           float64   `json:"price"`
	Category        string    `json:"category"`
	CreatedAt       time.Time `json:"createdAt"`
	DurationSeconds *int      `json:"duration,omitempty"`
	VideoCount      *int64    `json:"videoCount,omitempty"`
}
