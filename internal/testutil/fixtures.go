package testutil

import (
	"fmt"
	"testing"
	"time"

	"trending-api/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Seeder inserts ranking fixtures. Rows default to eligible: active,
// approved, not suspended, created an hour before Now.
type Seeder struct {
	T   testing.TB
	DB  *gorm.DB
	Now time.Time
	seq int
}

// NewSeeder returns a Seeder over db with a fixed current time.
func NewSeeder(t testing.TB, db *gorm.DB, now time.Time) *Seeder {
	return &Seeder{T: t, DB: db, Now: now.UTC()}
}

func (s *Seeder) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%03d", prefix, s.seq)
}

func (s *Seeder) create(v any) {
	s.T.Helper()
	require.NoError(s.T, s.DB.Create(v).Error)
}

// Creator inserts an active creator.
func (s *Seeder) Creator(username string, opts ...func(*models.User)) models.User {
	s.T.Helper()
	u := models.User{
		ID:          s.nextID("user"),
		Username:    username,
		DisplayName: username,
		Role:        models.RoleCreator,
		IsActive:    true,
		CreatedAt:   s.Now.Add(-90 * 24 * time.Hour),
	}
	for _, opt := range opts {
		opt(&u)
	}
	s.create(&u)
	return u
}

// Video inserts an eligible video for creatorID.
func (s *Seeder) Video(creatorID string, opts ...func(*models.Video)) models.Video {
	s.T.Helper()
	v := models.Video{
		ID:               s.nextID("video"),
		CreatorID:        creatorID,
		Title:            "video",
		Category:         "comedy",
		IsActive:         true,
		ModerationStatus: models.ModerationApproved,
		DurationSeconds:  60,
		CreatedAt:        s.Now.Add(-time.Hour),
	}
	for _, opt := range opts {
		opt(&v)
	}
	s.create(&v)
	return v
}

// Series inserts an eligible series for creatorID.
func (s *Seeder) Series(creatorID string, opts ...func(*models.Series)) models.Series {
	s.T.Helper()
	sr := models.Series{
		ID:               s.nextID("series"),
		CreatorID:        creatorID,
		Title:            "series",
		Category:         "comedy",
		IsActive:         true,
		ModerationStatus: models.ModerationApproved,
		CreatedAt:        s.Now.Add(-time.Hour),
	}
	for _, opt := range opts {
		opt(&sr)
	}
	s.create(&sr)
	return sr
}

// Category inserts an active category.
func (s *Seeder) Category(slug string, order int) models.Category {
	s.T.Helper()
	c := models.Category{
		ID:           s.nextID("category"),
		Name:         slug,
		Slug:         slug,
		IsActive:     true,
		DisplayOrder: order,
	}
	s.create(&c)
	return c
}

// Follows inserts n follows of creatorID created at at.
func (s *Seeder) Follows(creatorID string, n int, at time.Time) {
	s.T.Helper()
	for i := 0; i < n; i++ {
		s.create(&models.Follow{ID: s.nextID("follow"), FollowerID: s.nextID("fan"), FollowingID: creatorID, CreatedAt: at.UTC()})
	}
}

// ProfileVisits inserts n visits to creatorID's profile at at.
func (s *Seeder) ProfileVisits(creatorID string, n int, at time.Time) {
	s.T.Helper()
	for i := 0; i < n; i++ {
		s.create(&models.ProfileVisit{ID: s.nextID("visit"), ProfileUserID: creatorID, CreatedAt: at.UTC()})
	}
}

// Likes inserts n likes of videoID at at.
func (s *Seeder) Likes(videoID string, n int, at time.Time) {
	s.T.Helper()
	for i := 0; i < n; i++ {
		s.create(&models.VideoLike{ID: s.nextID("like"), UserID: s.nextID("fan"), VideoID: videoID, CreatedAt: at.UTC()})
	}
}

// Views inserts n view transactions on videoID with the given status at at.
func (s *Seeder) Views(videoID string, n int, status models.TransactionStatus, at time.Time) {
	s.T.Helper()
	for i := 0; i < n; i++ {
		id := videoID
		s.create(&models.Transaction{
			ID:        s.nextID("txn"),
			Type:      models.TransactionView,
			Status:    status,
			VideoID:   &id,
			CreatedAt: at.UTC(),
		})
	}
}

// SeriesPurchases inserts n completed series purchases at at.
func (s *Seeder) SeriesPurchases(seriesID string, n int, at time.Time) {
	s.T.Helper()
	for i := 0; i < n; i++ {
		id := seriesID
		s.create(&models.Transaction{
			ID:        s.nextID("txn"),
			Type:      models.TransactionSeriesPurchase,
			Status:    models.TransactionCompleted,
			SeriesID:  &id,
			Amount:    9.99,
			CreatedAt: at.UTC(),
		})
	}
}
