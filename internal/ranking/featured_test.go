package ranking

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"trending-api/internal/cache"
	"trending-api/internal/models"
)

func featuredIDs(items []FeaturedContent) []string {
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	return ids
}

func seedFeatured(f *fixture) (videos, series []string) {
	s := f.seeder
	creator := s.Creator("studio")
	for _, views := range []int64{50, 40, 30, 20, 10} {
		v := s.Video(creator.ID, func(v *models.Video) { v.ViewCount = views })
		videos = append(videos, v.ID)
	}
	s.Video(creator.ID, func(v *models.Video) {
		v.ViewCount = 1000
		v.CreatedAt = s.Now.Add(-40 * day)
	})
	for _, views := range []int64{30, 20, 10} {
		sr := s.Series(creator.ID, func(sr *models.Series) { sr.ViewCount = views })
		series = append(series, sr.ID)
	}
	return videos, series
}

func TestGetFeaturedContent_QuotasAndWindow(t *testing.T) {
	f := newFixture(t)
	videos, series := seedFeatured(f)

	items, err := f.svc.GetFeaturedContent(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, items, 5)
	// Three most viewed videos, two most viewed series.
	require.ElementsMatch(t, append(append([]string{}, videos[:3]...), series[:2]...), featuredIDs(items))

	for _, it := range items {
		switch it.Kind {
		case KindVideo:
			require.NotNil(t, it.DurationSeconds)
			require.Nil(t, it.VideoCount)
		case KindSeries:
			require.NotNil(t, it.VideoCount)
			require.Nil(t, it.DurationSeconds)
		default:
			t.Fatalf("unexpected kind %q", it.Kind)
		}
		require.False(t, it.CreatedAt.IsZero())
	}
}

func TestGetFeaturedContent_TruncatesToLimit(t *testing.T) {
	f := newFixture(t)
	seedFeatured(f)

	items, err := f.svc.GetFeaturedContent(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestGetFeaturedContent_SeededShuffleIsReproducible(t *testing.T) {
	f := newFixture(t)
	seedFeatured(f)

	ctx := context.Background()
	first, err := f.svc.GetFeaturedContent(ctx, 5)
	require.NoError(t, err)

	other := NewService(f.db, cache.New[any](cache.Options{Now: f.clock.Now}), Options{
		Now:  f.clock.Now,
		Rand: rand.New(rand.NewPCG(1, 2)),
	})
	second, err := other.GetFeaturedContent(ctx, 5)
	require.NoError(t, err)
	require.Equal(t, featuredIDs(first), featuredIDs(second))
}

func TestGetFeaturedContent_FrozenForTTL(t *testing.T) {
	f := newFixture(t)
	seedFeatured(f)

	ctx := context.Background()
	first, err := f.svc.GetFeaturedContent(ctx, 5)
	require.NoError(t, err)

	f.clock.Advance(cache.FeaturedContentTTL)
	again, err := f.svc.GetFeaturedContent(ctx, 5)
	require.NoError(t, err)
	require.Equal(t, featuredIDs(first), featuredIDs(again))
}

func TestGetFeaturedContent_Errors(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.GetFeaturedContent(context.Background(), -3)
	require.ErrorIs(t, err, ErrInvalidLimit)

	f.closeDB(t)
	_, err = f.svc.GetFeaturedContent(context.Background(), 5)
	require.ErrorIs(t, err, ErrFetchFeatured)
}
