package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"trending-api/internal/auth"
	"trending-api/internal/cache"
	"trending-api/internal/categories"
	"trending-api/internal/handlers"
	"trending-api/internal/ranking"
	"trending-api/internal/realtime"
	"trending-api/internal/testutil"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	c := cache.New[any](cache.Options{Name: "routes-test"})
	return SetupRoutes(&handlers.Handler{
		Ranking:    ranking.NewService(db, c, ranking.Options{}),
		Categories: categories.NewService(db, c),
		Cache:      c,
		Hub:        realtime.NewHub(),
	})
}

func do(r *gin.Engine, method, target, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t)
	w := do(r, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestMetrics(t *testing.T) {
	r := newTestRouter(t)
	do(r, http.MethodGet, "/api/trending/creators", "")

	w := do(r, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, strings.Contains(w.Body.String(), "http_requests_total"))
}

func TestPublicRoutes(t *testing.T) {
	r := newTestRouter(t)
	for _, path := range []string{"/api/trending/creators", "/api/trending/shows", "/api/featured", "/api/categories"} {
		w := do(r, http.MethodGet, path, "")
		require.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestAdminRoutes_RequireAdminToken(t *testing.T) {
	r := newTestRouter(t)

	w := do(r, http.MethodGet, "/api/admin/cache/stats", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	viewer, err := auth.GenerateToken("u-1", "viewer", "viewer")
	require.NoError(t, err)
	w = do(r, http.MethodGet, "/api/admin/cache/stats", viewer)
	require.Equal(t, http.StatusForbidden, w.Code)

	admin, err := auth.GenerateToken("admin", "admin", "admin")
	require.NoError(t, err)
	w = do(r, http.MethodGet, "/api/admin/cache/stats", admin)
	require.Equal(t, http.StatusOK, w.Code)
	w = do(r, http.MethodPost, "/api/admin/categories/refresh", admin)
	require.Equal(t, http.StatusOK, w.Code)
	w = do(r, http.MethodDelete, "/api/admin/cache", admin)
	require.Equal(t, http.StatusOK, w.Code)
}
