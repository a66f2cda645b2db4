package categories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"trending-api/internal/cache"
	"trending-api/internal/models"
	"trending-api/internal/testutil"
)

func newTestService(t *testing.T) (*Service, *testutil.Seeder, *cache.TTLCache[any]) {
	t.Helper()
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	c := cache.New[any](cache.Options{Name: "categories-test"})
	return NewService(db, c), testutil.NewSeeder(t, db, time.Now()), c
}

func slugs(list []Category) []string {
	out := make([]string, 0, len(list))
	for _, c := range list {
		out = append(out, c.Slug)
	}
	return out
}

func TestSeedDefaults_Idempotent(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	n, err := svc.SeedDefaults(ctx)
	require.NoError(t, err)
	require.Equal(t, len(Defaults), n)

	n, err = svc.SeedDefaults(ctx)
	require.NoError(t, err)
	require.Equal(t, 0, n)

	list, err := svc.GetActiveCategories(ctx)
	require.NoError(t, err)
	require.Len(t, list, len(Defaults))
	require.Equal(t, "comedy", list[0].Slug)
	require.Equal(t, 1, list[0].DisplayOrder)
}

func TestSeedDefaults_SkipsNonEmptyTable(t *testing.T) {
	svc, s, _ := newTestService(t)
	s.Category("custom", 1)

	n, err := svc.SeedDefaults(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, n)
}

func TestGetActiveCategories_OrderAndCounts(t *testing.T) {
	svc, s, _ := newTestService(t)
	s.Category("music", 2)
	s.Category("comedy", 1)
	s.Category("art", 2)
	hidden := s.Category("hidden", 0)
	require.NoError(t, s.DB.Model(&hidden).Update("is_active", false).Error)

	creator := s.Creator("studio")
	s.Video(creator.ID, func(v *models.Video) { v.Category = "music" })
	s.Video(creator.ID, func(v *models.Video) { v.Category = "music" })
	s.Video(creator.ID, func(v *models.Video) { v.Category = "music"; v.IsActive = false })
	s.Video(creator.ID, func(v *models.Video) { v.Category = "comedy"; v.ModerationStatus = models.ModerationPending })
	s.Series(creator.ID, func(sr *models.Series) { sr.Category = "music" })

	list, err := svc.GetActiveCategories(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"comedy", "art", "music"}, slugs(list))

	music := list[2]
	require.Equal(t, int64(2), music.VideoCount)
	require.Equal(t, int64(1), music.SeriesCount)
	require.Equal(t, int64(3), music.ContentCount)
	require.Equal(t, int64(0), list[0].ContentCount)
}

func TestUpdateCategoryCounts_InvalidatesCache(t *testing.T) {
	svc, s, c := newTestService(t)
	ctx := context.Background()
	s.Category("music", 1)
	creator := s.Creator("studio")
	s.Video(creator.ID, func(v *models.Video) { v.Category = "music" })

	before, err := svc.GetActiveCategories(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), before[0].VideoCount)

	s.Video(creator.ID, func(v *models.Video) { v.Category = "music" })
	cached, err := svc.GetActiveCategories(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), cached[0].VideoCount)

	require.NoError(t, svc.UpdateCategoryCounts(ctx))
	require.False(t, c.Has(cache.ActiveCategoriesKey))

	after, err := svc.GetActiveCategories(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(2), after[0].VideoCount)

	var stored models.Category
	require.NoError(t, s.DB.Where("slug = ?", "music").First(&stored).Error)
	require.Equal(t, int64(2), stored.VideoCount)
	require.Equal(t, int64(0), stored.SeriesCount)
}

func TestUpdateCategoryCounts_AllOrNothing(t *testing.T) {
	svc, s, c := newTestService(t)
	ctx := context.Background()
	s.Category("comedy", 1)
	s.Category("music", 2)
	creator := s.Creator("studio")
	s.Video(creator.ID, func(v *models.Video) { v.Category = "comedy" })
	s.Video(creator.ID, func(v *models.Video) { v.Category = "music" })

	_, err := svc.GetActiveCategories(ctx)
	require.NoError(t, err)

	// Fail the second row update.
	updates := 0
	boom := errors.New("disk full")
	require.NoError(t, s.DB.Callback().Update().Before("gorm:update").Register("test:fail_second", func(db *gorm.DB) {
		updates++
		if updates == 2 {
			_ = db.AddError(boom)
		}
	}))

	err = svc.UpdateCategoryCounts(ctx)
	require.ErrorIs(t, err, ErrUpdateCounts)
	require.ErrorIs(t, err, boom)
	require.True(t, c.Has(cache.ActiveCategoriesKey))

	var stored []models.Category
	require.NoError(t, s.DB.Order("display_order").Find(&stored).Error)
	for _, cat := range stored {
		require.Equal(t, int64(0), cat.VideoCount, cat.Slug)
	}
}

func TestGetActiveCategories_FailureNotCached(t *testing.T) {
	svc, s, c := newTestService(t)
	sqlDB, err := s.DB.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = svc.GetActiveCategories(context.Background())
	require.ErrorIs(t, err, ErrListCategories)
	require.Equal(t, 0, c.Len())
}
