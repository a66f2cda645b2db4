package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"trending-api/internal/handlers"
	"trending-api/internal/middleware"
	"trending-api/internal/models"
)

func SetupRoutes(h *handlers.Handler) *gin.Engine {
	ginRouter := gin.New()
	ginRouter.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.CORS(),
	)

	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Trending API is running",
		})
	})
	ginRouter.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public routes (no authentication required)
	api := ginRouter.Group("/api")
	{
		api.POST("/login", h.Login)
		api.GET("/trending/creators", h.GetTrendingCreators)
		api.GET("/trending/shows", h.GetTrendingShows)
		api.GET("/featured", h.GetFeaturedContent)
		api.GET("/categories", h.GetCategories)
	}

	// Admin routes (admin token required)
	protectedRoutes := api.Group("")
	protectedRoutes.Use(middleware.JWTAuthMiddleware(), middleware.RequireRole(string(models.RoleAdmin)))
	{
		protectedRoutes.POST("/admin/categories/refresh", h.RefreshCategoryCounts)
		protectedRoutes.GET("/admin/cache/stats", h.GetCacheStats)
		protectedRoutes.POST("/admin/cache/sweep", h.SweepCache)
		protectedRoutes.DELETE("/admin/cache", h.ClearCache)
		protectedRoutes.GET("/ws", h.WebSocket)
	}

	return ginRouter
}
