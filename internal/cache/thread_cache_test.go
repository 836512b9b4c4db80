package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	dtoprom "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"civic-forum-api/internal/domain"
	"civic-forum-api/internal/dto"
	"civic-forum-api/internal/metrics"
)

func setupCache(t *testing.T) (ThreadCache, *miniredis.Miniredis, *metrics.Metrics) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	m := metrics.NewWithRegistry(prometheus.NewRegistry(), zap.NewNop())
	return NewRedisThreadCache(client, time.Minute, zap.NewNop(), m), mr, m
}

func sampleThread(postID uuid.UUID) *dto.GroupedThread {
	return &dto.GroupedThread{
		PostID: postID,
		Discussion: []*dto.CommentNode{{
			CommentResponse: dto.CommentResponse{ID: uuid.New(), PostID: postID, Type: domain.CommentTypeDiscussion, VoteCount: 3},
			Replies:         []*dto.CommentNode{},
		}},
		Question: []*dto.CommentNode{},
		Counts:   dto.GroupCounts{Discussion: 1},
	}
}

func cacheCount(t *testing.T, m *metrics.Metrics, result string) float64 {
	t.Helper()
	metric := &dtoprom.Metric{}
	require.NoError(t, m.ThreadCacheRequestsTotal.WithLabelValues(result).Write(metric))
	return metric.Counter.GetValue()
}

func TestThreadCache_MissThenHit(t *testing.T) {
	c, _, m := setupCache(t)
	ctx := context.Background()
	postID := uuid.New()

	got, version, ok := c.Load(ctx, postID)
	assert.False(t, ok)
	assert.Nil(t, got)
	assert.Equal(t, int64(0), version)

	thread := sampleThread(postID)
	c.Store(ctx, postID, version, thread)

	got, _, ok = c.Load(ctx, postID)
	require.True(t, ok)
	assert.Equal(t, thread.Discussion[0].ID, got.Discussion[0].ID)
	assert.Equal(t, 3, got.Discussion[0].VoteCount)
	assert.Equal(t, 1, got.Counts.Discussion)

	assert.Equal(t, 1.0, cacheCount(t, m, metrics.CacheResultMiss))
	assert.Equal(t, 1.0, cacheCount(t, m, metrics.CacheResultHit))
}

func TestThreadCache_InvalidateHidesOlderVersions(t *testing.T) {
	c, _, _ := setupCache(t)
	ctx := context.Background()
	postID := uuid.New()

	_, version, _ := c.Load(ctx, postID)
	c.Store(ctx, postID, version, sampleThread(postID))

	c.Invalidate(ctx, postID)

	_, newVersion, ok := c.Load(ctx, postID)
	assert.False(t, ok)
	assert.Equal(t, version+1, newVersion)
}

func TestThreadCache_BuildRacingAWriteIsNeverServed(t *testing.T) {
	c, _, _ := setupCache(t)
	ctx := context.Background()
	postID := uuid.New()

	// a reader misses and starts building under the current version
	_, staleVersion, _ := c.Load(ctx, postID)
	// a write commits and invalidates before the reader stores
	c.Invalidate(ctx, postID)
	c.Store(ctx, postID, staleVersion, sampleThread(postID))

	_, _, ok := c.Load(ctx, postID)
	assert.False(t, ok, "tree built before the write must not be served")
}

func TestThreadCache_RedisDownDegradesToMiss(t *testing.T) {
	c, mr, m := setupCache(t)
	ctx := context.Background()
	postID := uuid.New()
	mr.Close()

	got, version, ok := c.Load(ctx, postID)
	assert.False(t, ok)
	assert.Nil(t, got)
	assert.Equal(t, NoVersion, version)
	assert.Equal(t, 1.0, cacheCount(t, m, metrics.CacheResultError))

	assert.NotPanics(t, func() {
		c.Store(ctx, postID, version, sampleThread(postID))
		c.Invalidate(ctx, postID)
	})
}

func TestThreadCache_CorruptEntryIsAMiss(t *testing.T) {
	c, mr, _ := setupCache(t)
	postID := uuid.New()
	require.NoError(t, mr.Set(treeKey(postID, 0), "{not json"))

	_, _, ok := c.Load(context.Background(), postID)
	assert.False(t, ok)
}

func TestThreadCache_EntriesExpire(t *testing.T) {
	c, mr, _ := setupCache(t)
	ctx := context.Background()
	postID := uuid.New()

	c.Store(ctx, postID, 0, sampleThread(postID))
	mr.FastForward(2 * time.Minute)

	_, _, ok := c.Load(ctx, postID)
	assert.False(t, ok)
}

func TestNoopThreadCache(t *testing.T) {
	c := NewNoopThreadCache()
	postID := uuid.New()
	c.Store(context.Background(), postID, 0, sampleThread(postID))
	c.Invalidate(context.Background(), postID)

	_, version, ok := c.Load(context.Background(), postID)
	assert.False(t, ok)
	assert.Equal(t, NoVersion, version)
}
