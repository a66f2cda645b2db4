package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"trending-api/internal/ranking"
)

const (
	defaultLimit = 10
	maxLimit     = 50
)

var errBadLimit = errors.New("limit must be a positive integer")

// parseLimit reads ?limit=, defaulting to 10 and capping at 50.
func parseLimit(c *gin.Context) (int, error) {
	raw := c.Query("limit")
	if raw == "" {
		return defaultLimit, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return 0, errBadLimit
	}
	return min(limit, maxLimit), nil
}

// rankingError writes the response for a failed ranking call.
func rankingError(c *gin.Context, err error, msg string) {
	if errors.Is(err, ranking.ErrInvalidLimit) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}

// GetTrendingCreators handles GET /api/trending/creators?limit=
func (h *Handler) GetTrendingCreators(c *gin.Context) {
	limit, err := parseLimit(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	creators, err := h.Ranking.CalculateTrendingCreators(c.Request.Context(), limit)
	if err != nil {
		rankingError(c, err, "Failed to calculate trending creators")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"creators": creators,
		"count":    len(creators),
	})
}

// GetTrendingShows handles GET /api/trending/shows?limit=
func (h *Handler) GetTrendingShows(c *gin.Context) {
	limit, err := parseLimit(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	shows, err := h.Ranking.CalculateTrendingShows(c.Request.Context(), limit)
	if err != nil {
		rankingError(c, err, "Failed to calculate trending shows")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"shows": shows,
		"count": len(shows),
	})
}

// GetFeaturedContent handles GET /api/featured?limit=
func (h *Handler) GetFeaturedContent(c *gin.Context) {
	limit, err := parseLimit(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	content, err := h.Ranking.GetFeaturedContent(c.Request.Context(), limit)
	if err != nil {
		rankingError(c, err, "Failed to fetch featured content")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"content": content,
		"count":   len(content),
	})
}
