package handlers

import (
	"trending-api/internal/cache"
	"trending-api/internal/categories"
	"trending-api/internal/config"
	"trending-api/internal/ranking"
	"trending-api/internal/realtime"
)

// Handler holds the services the HTTP endpoints call into.
type Handler struct {
	Ranking    *ranking.Service
	Categories *categories.Service
	Cache      *cache.TTLCache[any]
	Hub        *realtime.Hub
	Security   config.SecurityConfig
}
