package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"civic-forum-api/internal/dto"
	"civic-forum-api/internal/metrics"
)

// NoVersion tells Store that the version could not be read and nothing must be cached
const NoVersion int64 = -1

// ThreadCache caches un-annotated comment trees per post.
// Entries are keyed by a per-post version that every write bumps, so a tree
// built before a write is never served after it.
type ThreadCache interface {
	// Load returns the cached tree and the version it was looked up under
	Load(ctx context.Context, postID uuid.UUID) (*dto.GroupedThread, int64, bool)
	// Store caches a tree built while the post was at version
	Store(ctx context.Context, postID uuid.UUID, version int64, thread *dto.GroupedThread)
	// Invalidate bumps the post's version
	Invalidate(ctx context.Context, postID uuid.UUID)
}

type redisThreadCache struct {
	client  *redis.Client
	ttl     time.Duration
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewRedisThreadCache creates a Redis backed ThreadCache
func NewRedisThreadCache(client *redis.Client, ttl time.Duration, logger *zap.Logger, m *metrics.Metrics) ThreadCache {
	return &redisThreadCache{
		client:  client,
		ttl:     ttl,
		logger:  logger,
		metrics: m,
	}
}

func versionKey(postID uuid.UUID) string {
	return fmt.Sprintf("forum:thread:%s:version", postID)
}

func treeKey(postID uuid.UUID, version int64) string {
	return fmt.Sprintf("forum:thread:%s:v%d", postID, version)
}

func (c *redisThreadCache) record(result string) {
	if c.metrics != nil {
		c.metrics.RecordThreadCache(result)
	}
}

func (c *redisThreadCache) Load(ctx context.Context, postID uuid.UUID) (*dto.GroupedThread, int64, bool) {
	version, err := c.client.Get(ctx, versionKey(postID)).Int64()
	if errors.Is(err, redis.Nil) {
		version = 0
	} else if err != nil {
		c.logger.Warn("Thread cache version lookup failed", zap.String("post_id", postID.String()), zap.Error(err))
		c.record(metrics.CacheResultError)
		return nil, NoVersion, false
	}

	data, err := c.client.Get(ctx, treeKey(postID, version)).Bytes()
	if errors.Is(err, redis.Nil) {
		c.record(metrics.CacheResultMiss)
		return nil, version, false
	}
	if err != nil {
		c.logger.Warn("Thread cache read failed", zap.String("post_id", postID.String()), zap.Error(err))
		c.record(metrics.CacheResultError)
		return nil, version, false
	}

	var thread dto.GroupedThread
	if err := json.Unmarshal(data, &thread); err != nil {
		c.logger.Warn("Discarding undecodable thread cache entry", zap.String("post_id", postID.String()), zap.Error(err))
		c.record(metrics.CacheResultError)
		return nil, version, false
	}

	c.record(metrics.CacheResultHit)
	return &thread, version, true
}

func (c *redisThreadCache) Store(ctx context.Context, postID uuid.UUID, version int64, thread *dto.GroupedThread) {
	if version == NoVersion || thread == nil {
		return
	}
	data, err := json.Marshal(thread)
	if err != nil {
		c.logger.Warn("Failed to encode thread for cache", zap.String("post_id", postID.String()), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, treeKey(postID, version), data, c.ttl).Err(); err != nil {
		c.logger.Warn("Thread cache write failed", zap.String("post_id", postID.String()), zap.Error(err))
	}
}

func (c *redisThreadCache) Invalidate(ctx context.Context, postID uuid.UUID) {
	if err := c.client.Incr(ctx, versionKey(postID)).Err(); err != nil {
		// Entries still expire after ttl; log loudly since stale reads are possible until then
		c.logger.Error("Thread cache invalidation failed", zap.String("post_id", postID.String()), zap.Error(err))
	}
}

// noopThreadCache is used when caching is disabled
type noopThreadCache struct{}

// NewNoopThreadCache returns a ThreadCache that never hits
func NewNoopThreadCache() ThreadCache {
	return noopThreadCache{}
}

func (noopThreadCache) Load(context.Context, uuid.UUID) (*dto.GroupedThread, int64, bool) {
	return nil, NoVersion, false
}

func (noopThreadCache) Store(context.Context, uuid.UUID, int64, *dto.GroupedThread) {}

func (noopThreadCache) Invalidate(context.Context, uuid.UUID) {}
