package factory

import (
	"context"
	"time"

	"github.com/akeren/waitlist-api/pkg/ratelimit"
	"github.com/go-redis/redis/v8"
)

type Cache interface {
	Ping(ctx context.Context) error
}

type RedisClientProvider interface {
	GetClient() *redis.Client
}

// RateLimiterFactory builds limiters that share the application's Redis
// client when one is configured, falling back to in-memory otherwise.
type RateLimiterFactory interface {
	CreateRateLimiter(requests int, window time.Duration) ratelimit.RateLimiter
}

type DefaultRateLimiterFactory struct {
	redisClient *redis.Client
	logger      ratelimit.Logger
}

func NewDefaultRateLimiterFactory(cache Cache, logger ratelimit.Logger) *DefaultRateLimiterFactory {
	var redisClient *redis.Client
	if cache != nil {
		if provider, ok := cache.(RedisClientProvider); ok {
			redisClient = provider.GetClient()
		}
	}

	return &DefaultRateLimiterFactory{
		redisClient: redisClient,
		logger:      logger,
	}
}

func (f *DefaultRateLimiterFactory) CreateRateLimiter(requests int, window time.Duration) ratelimit.RateLimiter {
	return ratelimit.NewRateLimiter(&ratelimit.RateLimitConfig{
		Requests: requests,
		Window:   window,
		Redis:    f.redisClient,
		Logger:   f.logger,
	})
}
