package cache_fx

import (
	"log"
	"os"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"lakbay/pkg/cache"
)

var Module = fx.Provide(provideCacheStore)

// provideCacheStore picks Redis when REDIS_URL is configured and falls
// back to the in-process store otherwise.
func provideCacheStore() cache.Store {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		log.Println("REDIS_URL not set, using in-memory cache store")
		return cache.NewMemoryStore()
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("Invalid REDIS_URL, using in-memory cache store: %v", err)
		return cache.NewMemoryStore()
	}

	store, err := cache.NewRedisStore(redis.NewClient(opts))
	if err != nil {
		log.Printf("Redis cache unavailable, using in-memory cache store: %v", err)
		return cache.NewMemoryStore()
	}
	return store
}
