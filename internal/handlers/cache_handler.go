package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"trending-api/internal/logging"
	"trending-api/internal/realtime"
)

// GetCacheStats handles GET /api/admin/cache/stats (protected)
func (h *Handler) GetCacheStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":  h.Cache.Name(),
		"stats": h.Cache.Stats(),
	})
}

// SweepCache handles POST /api/admin/cache/sweep (protected)
func (h *Handler) SweepCache(c *gin.Context) {
	removed := h.Cache.Sweep()
	h.Hub.Publish(realtime.Event{
		Type: realtime.EventCacheSwept,
		Data: map[string]any{"removed": removed},
	})

	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

// ClearCache handles DELETE /api/admin/cache (protected)
func (h *Handler) ClearCache(c *gin.Context) {
	removed := h.Cache.Len()
	h.Cache.Clear()
	logging.Ctx(c.Request.Context()).Info().
		Int("removed", removed).
		Str("by", c.GetString("username")).
		Msg("Cache cleared")

	h.Hub.Publish(realtime.Event{
		Type: realtime.EventCacheCleared,
		Data: map[string]any{"removed": removed, "by": c.GetString("username")},
	})

	c.JSON(http.StatusOK, gin.H{"removed": removed})
}
