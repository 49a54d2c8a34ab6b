package l2

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/benbjohnson/clock"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"traveltime-service/internal/config"
	"traveltime-service/internal/interfaces"
	"traveltime-service/internal/metrics"
	"traveltime-service/internal/models"
)

func newTestRedisCache(t *testing.T, ttl time.Duration, clk clock.Clock) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()

	srv := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cfg := &config.RedisCacheConfig{
		Enabled:      true,
		Addr:         srv.Addr(),
		ReadTimeout:  config.Duration(time.Second),
		WriteTimeout: config.Duration(time.Second),
	}

	c := NewRedisCache(cfg, config.Duration(ttl), client, clk, zap.NewNop())
	rc, ok := c.(*RedisCache)
	require.True(t, ok)
	return rc, srv
}

func sampleResult() models.TravelTimeResult {
	return models.TravelTimeResult{
		DurationMinutes: 45,
		DepartureTime:   time.Date(2025, 1, 18, 13, 0, 0, 0, time.UTC),
		ArrivalTime:     time.Date(2025, 1, 18, 13, 45, 0, 0, time.UTC),
		Transfers:       1,
	}
}

func TestRedisCache_ImplementsCache(t *testing.T) {
	var _ interfaces.Cache = (*RedisCache)(nil)
}

func TestRedisCache_SetGet(t *testing.T) {
	clk := clock.NewMock()
	rc, _ := newTestRedisCache(t, time.Hour, clk)
	ctx := context.Background()

	rc.Set(ctx, "key-1", sampleResult())

	entry, found := rc.Get(ctx, "key-1")
	require.True(t, found)
	assert.True(t, entry.Result.DepartureTime.Equal(sampleResult().DepartureTime))
	assert.Equal(t, sampleResult().DurationMinutes, entry.Result.DurationMinutes)
	assert.Equal(t, sampleResult().Transfers, entry.Result.Transfers)
	assert.Equal(t, clk.Now().Unix(), entry.StoredAt)
}

func TestRedisCache_Miss(t *testing.T) {
	rc, _ := newTestRedisCache(t, time.Hour, clock.NewMock())

	before := testutil.ToFloat64(metrics.CacheErrors.WithLabelValues("l2", "upstream"))

	entry, found := rc.Get(context.Background(), "unknown")
	assert.False(t, found)
	assert.Nil(t, entry)

	// An absent key is an ordinary miss, not a storage error.
	assert.Equal(t, before, testutil.ToFloat64(metrics.CacheErrors.WithLabelValues("l2", "upstream")))
}

func TestRedisCache_LazyExpiry(t *testing.T) {
	clk := clock.NewMock()
	rc, srv := newTestRedisCache(t, time.Hour, clk)
	ctx := context.Background()

	rc.Set(ctx, "key-1", sampleResult())

	clk.Add(2 * time.Hour)
	_, found := rc.Get(ctx, "key-1")
	assert.False(t, found, "entry past the TTL window should read as a miss")

	// The expired record is removed on read, not just skipped.
	assert.False(t, srv.Exists("key-1"))
}

func TestRedisCache_CorruptEntryDegradesToMiss(t *testing.T) {
	rc, srv := newTestRedisCache(t, time.Hour, clock.NewMock())

	require.NoError(t, srv.Set("key-1", "not json"))

	_, found := rc.Get(context.Background(), "key-1")
	assert.False(t, found)
	assert.False(t, srv.Exists("key-1"), "corrupted record should be removed")
}

func TestRedisCache_Delete(t *testing.T) {
	clk := clock.NewMock()
	rc, srv := newTestRedisCache(t, time.Hour, clk)
	ctx := context.Background()

	rc.Set(ctx, "key-1", sampleResult())
	require.True(t, srv.Exists("key-1"))

	rc.Delete(ctx, "key-1")
	assert.False(t, srv.Exists("key-1"))
}

func TestRedisCache_ConnectionFailureDegradesToMiss(t *testing.T) {
	clk := clock.NewMock()
	rc, srv := newTestRedisCache(t, time.Hour, clk)
	ctx := context.Background()

	rc.Set(ctx, "key-1", sampleResult())
	srv.Close()

	before := testutil.ToFloat64(metrics.CacheErrors.WithLabelValues("l2", "upstream"))

	_, found := rc.Get(ctx, "key-1")
	assert.False(t, found, "storage failure must degrade to a miss, not an error")

	// Unlike an absent key, a broken connection is counted.
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.CacheErrors.WithLabelValues("l2", "upstream")))
}
