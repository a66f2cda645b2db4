package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"trending-api/internal/cache"
	"trending-api/internal/categories"
	"trending-api/internal/config"
	"trending-api/internal/ranking"
	"trending-api/internal/realtime"
	"trending-api/internal/testutil"
)

type testEnv struct {
	db     *gorm.DB
	seeder *testutil.Seeder
	h      *Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)

	c := cache.New[any](cache.Options{Name: "handlers-test"})
	return &testEnv{
		db:     db,
		seeder: testutil.NewSeeder(t, db, time.Now()),
		h: &Handler{
			Ranking:    ranking.NewService(db, c, ranking.Options{}),
			Categories: categories.NewService(db, c),
			Cache:      c,
			Hub:        realtime.NewHub(),
			Security:   config.SecurityConfig{AdminUsername: "admin"},
		},
	}
}

func (e *testEnv) closeDB(t *testing.T) {
	t.Helper()
	sqlDB, err := e.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
}

func serve(r *gin.Engine, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// fakeClient records hub messages.
type fakeClient struct{ msgs [][]byte }

func (f *fakeClient) Send(m []byte) bool { f.msgs = append(f.msgs, m); return true }
func (f *fakeClient) Close()             {}
