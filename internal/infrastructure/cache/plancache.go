package cache

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"time"

	"github.com/redis/go-redis/v9"

	planusecases "github.com/fitmo-inc/fitmo/internal/application/plan/usecases"
	"github.com/fitmo-inc/fitmo/internal/shared/logger"
)

const (
	planCacheKeyPrefix = "plans:catalog:"
	basePlanTTL        = 30 * time.Minute
	planTTLJitter      = 10 * time.Minute // TTL range: 30-40 min (anti-stampede)
)

// RedisPlanCache caches the serialized plan catalog. The catalog changes
// rarely, so misses are cheap and staleness is bounded by the TTL plus an
// explicit invalidation on catalog writes.
type RedisPlanCache struct {
	client *redis.Client
	logger logger.Interface
}

func NewRedisPlanCache(client *redis.Client, logger logger.Interface) *RedisPlanCache {
	return &RedisPlanCache{
		client: client,
		logger: logger,
	}
}

func (c *RedisPlanCache) GetPlans(ctx context.Context, key string) ([]planusecases.PlanDTO, bool) {
	raw, err := c.client.Get(ctx, planCacheKeyPrefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warnw("failed to read plan cache", "error", err, "key", key)
		}
		return nil, false
	}

	var plans []planusecases.PlanDTO
	if err := json.Unmarshal(raw, &plans); err != nil {
		c.logger.Warnw("failed to decode cached plans, dropping entry", "error", err, "key", key)
		c.client.Del(ctx, planCacheKeyPrefix+key)
		return nil, false
	}
	return plans, true
}

func (c *RedisPlanCache) SetPlans(ctx context.Context, key string, plans []planusecases.PlanDTO) {
	raw, err := json.Marshal(plans)
	if err != nil {
		c.logger.Warnw("failed to encode plans for cache", "error", err, "key", key)
		return
	}

	ttl := basePlanTTL + time.Duration(rand.Int64N(int64(planTTLJitter)))
	if err := c.client.Set(ctx, planCacheKeyPrefix+key, raw, ttl).Err(); err != nil {
		c.logger.Warnw("failed to write plan cache", "error", err, "key", key)
	}
}

func (c *RedisPlanCache) Invalidate(ctx context.Context) {
	iter := c.client.Scan(ctx, 0, planCacheKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			c.logger.Warnw("failed to delete plan cache entry", "error", err, "key", iter.Val())
		}
	}
	if err := iter.Err(); err != nil {
		c.logger.Warnw("failed to scan plan cache keys", "error", err)
	}
}

// NoopPlanCache satisfies the cache port when redis is not configured.
type NoopPlanCache struct{}

func NewNoopPlanCache() *NoopPlanCache { return &NoopPlanCache{} }

func (NoopPlanCache) GetPlans(ctx context.Context, key string) ([]planusecases.PlanDTO, bool) {
	return nil, false
}

func (NoopPlanCache) SetPlans(ctx context.Context, key string, plans []planusecases.PlanDTO) {}

func (NoopPlanCache) Invalidate(ctx context.Context) {}
