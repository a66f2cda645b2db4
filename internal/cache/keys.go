package cache

import (
	"strconv"
	"time"
)

// Cache key prefixes. Limit-suffixed keys give every distinct limit its own slot.
const (
	TrendingCreatorsPrefix = "trending:creators"
	TrendingShowsPrefix    = "trending:shows"
	FeaturedContentPrefix  = "featured:content"
	ActiveCategoriesKey    = "categories:active"
)

// Default TTLs per key family.
const (
	TrendingCreatorsTTL = 300 * time.Second
	TrendingShowsTTL    = 300 * time.Second
	FeaturedContentTTL  = 1800 * time.Second
	ActiveCategoriesTTL = 3600 * time.Second
)

// DefaultSweepInterval is how often the sweeper removes expired entries.
const DefaultSweepInterval = 10 * time.Minute

func TrendingCreatorsKey(limit int) string {
	return withLimit(TrendingCreatorsPrefix, limit)
}

func TrendingShowsKey(limit int) string {
	return withLimit(TrendingShowsPrefix, limit)
}

func FeaturedContentKey(limit int) string {
	return withLimit(FeaturedContentPrefix, limit)
}

func withLimit(prefix string, limit int) string {
	return prefix + ":" + strconv.Itoa(limit)
}

// TTLSeconds converts a whole number of seconds to a duration.
func TTLSeconds(seconds int) time.Duration {
	return time.Duration(seconds) * time.Second
}
