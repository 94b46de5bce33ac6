package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"fulfillment-routing-service/internal/domain"
	"fulfillment-routing-service/internal/ports"
)

const (
	keyPrefix = "routing:result:"

	breakerFailures = 3
	breakerTimeout  = 30 * time.Second
)

// RedisResultCache stores routing results in Redis behind a circuit breaker,
// so a Redis outage degrades to cache misses instead of slow requests.
type RedisResultCache struct {
	client  redis.UniversalClient
	ttl     time.Duration
	breaker *gobreaker.CircuitBreaker
}

var _ ports.ResultCache = (*RedisResultCache)(nil)

func NewRedisResultCache(client redis.UniversalClient, ttl time.Duration, logger *zap.Logger) *RedisResultCache {
	if logger == nil {
		logger = zap.NewNop()
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "redis-result-cache",
		MaxRequests: 1,
		Timeout:     breakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &RedisResultCache{client: client, ttl: ttl, breaker: breaker}
}

// Fetch a cached result. A miss is (zero, false, nil).
func (c *RedisResultCache) Get(ctx context.Context, key string) (domain.SimulationResult, bool, error) {
	if key == "" {
		return domain.SimulationResult{}, false, errors.New("get result cache: key must not be empty")
	}

	v, err := c.breaker.Execute(func() (interface{}, error) {
		b, err := c.client.Get(ctx, keyPrefix+key).Bytes()
		if errors.Is(err, redis.Nil) {
			// A miss is not a Redis failure.
			return nil, nil
		}
		return b, err
	})
	if err != nil {
		return domain.SimulationResult{}, false, fmt.Errorf("get result cache key=%q: %w", key, err)
	}

	b, _ := v.([]byte)
	if b == nil {
		return domain.SimulationResult{}, false, nil
	}

	var res domain.SimulationResult
	if err := json.Unmarshal(b, &res); err != nil {
		return domain.SimulationResult{}, false, fmt.Errorf("get result cache key=%q: decode: %w", key, err)
	}
	return res, true, nil
}

// Store a result with the configured TTL.
func (c *RedisResultCache) Put(ctx context.Context, key string, res domain.SimulationResult) error {
	if key == "" {
		return errors.New("put result cache: key must not be empty")
	}

	b, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("put result cache key=%q: encode: %w", key, err)
	}

	_, err = c.breaker.Execute(func() (interface{}, error) {
		return nil, c.client.Set(ctx, keyPrefix+key, b, c.ttl).Err()
	})
	if err != nil {
		return fmt.Errorf("put result cache key=%q: %w", key, err)
	}
	return nil
}
