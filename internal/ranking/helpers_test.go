package ranking

import (
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"trending-api/internal/cache"
	"trending-api/internal/testutil"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fixture struct {
	db     *gorm.DB
	clock  *testClock
	cache  *cache.TTLCache[any]
	svc    *Service
	seeder *testutil.Seeder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)

	clock := &testClock{now: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)}
	c := cache.New[any](cache.Options{Name: "ranking-test", Now: clock.Now})
	svc := NewService(db, c, Options{
		Now:  clock.Now,
		Rand: rand.New(rand.NewPCG(1, 2)),
	})
	return &fixture{
		db:     db,
		clock:  clock,
		cache:  c,
		svc:    svc,
		seeder: testutil.NewSeeder(t, db, clock.Now()),
	}
}

func (f *fixture) closeDB(t *testing.T) {
	t.Helper()
	sqlDB, err := f.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
}

const (
	day    = 24 * time.Hour
	hour   = time.Hour
	second = time.Second
)
