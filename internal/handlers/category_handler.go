package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"trending-api/internal/realtime"
)

// GetCategories handles GET /api/categories
func (h *Handler) GetCategories(c *gin.Context) {
	list, err := h.Categories.GetActiveCategories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": list,
		"count":      len(list),
	})
}

// RefreshCategoryCounts handles POST /api/admin/categories/refresh (protected)
func (h *Handler) RefreshCategoryCounts(c *gin.Context) {
	if err := h.Categories.UpdateCategoryCounts(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category counts"})
		return
	}

	h.Hub.Publish(realtime.Event{
		Type: realtime.EventCategoriesUpdated,
		Data: map[string]any{"by": c.GetString("username")},
	})

	c.JSON(http.StatusOK, gin.H{"message": "Category counts updated"})
}
