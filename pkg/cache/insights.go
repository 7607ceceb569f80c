// Package cache provides a Redis-backed cache for generated insights.
// Briefings are expensive to regenerate and stable over short windows,
// so they are cached with a TTL. The cache is optional: a nil Redis
// client makes every lookup a miss and every store a no-op.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DefaultBriefingTTL is how long a prep briefing stays fresh.
const DefaultBriefingTTL = 15 * time.Minute

// InsightCache caches generated text keyed by subject.
type InsightCache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string, ttl time.Duration)
	Invalidate(ctx context.Context, key string)
}

type insightCache struct {
	client *redis.Client
	logger *zap.Logger
}

// NewInsightCache creates an InsightCache. The client may be nil when
// Redis is not configured.
func NewInsightCache(client *redis.Client, logger *zap.Logger) InsightCache {
	return &insightCache{
		client: client,
		logger: logger.Named("insight_cache"),
	}
}

// PersonBriefingKey builds the cache key for a person prep briefing.
func PersonBriefingKey(personID uuid.UUID) string {
	return fmt.Sprintf("briefing:person:%s", personID)
}

// ProjectBriefingKey builds the cache key for a project prep briefing.
func ProjectBriefingKey(projectID uuid.UUID) string {
	return fmt.Sprintf("briefing:project:%s", projectID)
}

func (c *insightCache) Get(ctx context.Context, key string) (string, bool) {
	if c.client == nil {
		return "", false
	}

	value, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false
	}
	if err != nil {
		// Cache failures degrade to a miss; they never fail the request.
		c.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		return "", false
	}
	return value, true
}

func (c *insightCache) Set(ctx context.Context, key string, value string, ttl time.Duration) {
	if c.client == nil {
		return
	}
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		c.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *insightCache) Invalidate(ctx context.Context, key string) {
	if c.client == nil {
		return
	}
	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.logger.Warn("cache invalidate failed", zap.String("key", key), zap.Error(err))
	}
}

var _ InsightCache = (*insightCache)(nil)
