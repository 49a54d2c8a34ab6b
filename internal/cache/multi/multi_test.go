package multi

import (
	"context"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"traveltime-service/internal/cache/l1"
	"traveltime-service/internal/config"
	"traveltime-service/internal/interfaces"
	"traveltime-service/internal/interfaces/mock"
	"traveltime-service/internal/models"
)

func sampleEntry() *models.CacheEntry {
	return &models.CacheEntry{
		Result: models.TravelTimeResult{
			DurationMinutes: 45,
			DepartureTime:   time.Date(2025, 1, 18, 13, 0, 0, 0, time.UTC),
			ArrivalTime:     time.Date(2025, 1, 18, 13, 45, 0, 0, time.UTC),
			Transfers:       1,
		},
		StoredAt: time.Date(2025, 1, 18, 12, 0, 0, 0, time.UTC).Unix(),
	}
}

func TestMultiCache_GetFirstTierHit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	l1 := mock.NewMockCache(ctrl)
	l2 := mock.NewMockCache(ctrl)
	mc := NewMultiCache([]interfaces.Cache{l1, l2}, zap.NewNop(), false)

	l1.EXPECT().Get(gomock.Any(), "key-1").Return(sampleEntry(), true)
	// L2 must not be consulted on an L1 hit.

	entry, found := mc.Get(context.Background(), "key-1")
	assert.True(t, found)
	assert.Equal(t, 45, entry.Result.DurationMinutes)
}

func TestMultiCache_GetFallsThroughTiers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	l1 := mock.NewMockCache(ctrl)
	l2 := mock.NewMockCache(ctrl)
	mc := NewMultiCache([]interfaces.Cache{l1, l2}, zap.NewNop(), false)

	l1.EXPECT().Get(gomock.Any(), "key-1").Return(nil, false)
	l2.EXPECT().Get(gomock.Any(), "key-1").Return(sampleEntry(), true)

	entry, found := mc.Get(context.Background(), "key-1")
	assert.True(t, found)
	assert.NotNil(t, entry)
}

func TestMultiCache_GetMissAllTiers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	l1 := mock.NewMockCache(ctrl)
	l2 := mock.NewMockCache(ctrl)
	mc := NewMultiCache([]interfaces.Cache{l1, l2}, zap.NewNop(), false)

	l1.EXPECT().Get(gomock.Any(), "key-1").Return(nil, false)
	l2.EXPECT().Get(gomock.Any(), "key-1").Return(nil, false)

	entry, found := mc.Get(context.Background(), "key-1")
	assert.False(t, found)
	assert.Nil(t, entry)
}

func TestMultiCache_PropagationWritesBackToEarlierTiers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	l1 := mock.NewMockCache(ctrl)
	l2 := mock.NewMockCache(ctrl)
	mc := NewMultiCache([]interfaces.Cache{l1, l2}, zap.NewNop(), true)

	entry := sampleEntry()
	l1.EXPECT().Get(gomock.Any(), "key-1").Return(nil, false)
	l2.EXPECT().Get(gomock.Any(), "key-1").Return(entry, true)
	// The entry moves between tiers as stored, StoredAt stamp included.
	l1.EXPECT().SetEntry(gomock.Any(), "key-1", *entry)

	_, found := mc.Get(context.Background(), "key-1")
	assert.True(t, found)
}

func TestMultiCache_PropagationPreservesFreshness(t *testing.T) {
	clk := clock.NewMock()
	cfg := &config.MemoryCacheConfig{Enabled: true, SizeMB: 8}
	ttl := time.Hour

	tierA, err := l1.NewBigCache(cfg, ttl, clk, zap.NewNop())
	require.NoError(t, err)
	tierB, err := l1.NewBigCache(cfg, ttl, clk, zap.NewNop())
	require.NoError(t, err)

	mc := NewMultiCache([]interfaces.Cache{tierA, tierB}, zap.NewNop(), true)

	ctx := context.Background()
	tierB.Set(ctx, "key-1", sampleEntry().Result)

	// A hit just before expiry propagates into the first tier.
	clk.Add(59 * time.Minute)
	_, found := mc.Get(ctx, "key-1")
	require.True(t, found)

	// The propagated copy keeps the original stamp, so crossing the TTL
	// boundary expires it in every tier at once.
	clk.Add(2 * time.Minute)
	_, found = mc.Get(ctx, "key-1")
	assert.False(t, found, "propagation must not extend an entry's freshness window")
}

func TestMultiCache_SetEntryWritesAllTiers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	l1 := mock.NewMockCache(ctrl)
	l2 := mock.NewMockCache(ctrl)
	mc := NewMultiCache([]interfaces.Cache{l1, l2}, zap.NewNop(), false)

	entry := *sampleEntry()
	l1.EXPECT().SetEntry(gomock.Any(), "key-1", entry)
	l2.EXPECT().SetEntry(gomock.Any(), "key-1", entry)

	mc.SetEntry(context.Background(), "key-1", entry)
}

func TestMultiCache_SetWritesAllTiers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	l1 := mock.NewMockCache(ctrl)
	l2 := mock.NewMockCache(ctrl)
	mc := NewMultiCache([]interfaces.Cache{l1, l2}, zap.NewNop(), false)

	result := sampleEntry().Result
	l1.EXPECT().Set(gomock.Any(), "key-1", result)
	l2.EXPECT().Set(gomock.Any(), "key-1", result)

	mc.Set(context.Background(), "key-1", result)
}

func TestMultiCache_DeleteRemovesFromAllTiers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	l1 := mock.NewMockCache(ctrl)
	l2 := mock.NewMockCache(ctrl)
	mc := NewMultiCache([]interfaces.Cache{l1, l2}, zap.NewNop(), false)

	l1.EXPECT().Delete(gomock.Any(), "key-1")
	l2.EXPECT().Delete(gomock.Any(), "key-1")

	mc.Delete(context.Background(), "key-1")
}

func TestMultiCache_NoTiers(t *testing.T) {
	mc := NewMultiCache(nil, zap.NewNop(), false)

	entry, found := mc.Get(context.Background(), "key-1")
	assert.False(t, found)
	assert.Nil(t, entry)
}
