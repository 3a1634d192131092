package logstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/automarketing/content-gateway/internal/shared/models"
)

func TestMemory_InsertAndGetByID(t *testing.T) {
	store := NewMemory()

	entry := &models.GenerationLogEntry{
		ID:          "id-1",
		Kind:        models.OpGenerate,
		Prompt:      "announce the launch",
		ContentType: "social_post",
		Output:      "We just launched!",
		Model:       "anthropic/claude-3-sonnet",
		DurationMs:  1200,
		ClientIP:    "203.0.113.7",
		CreatedAt:   time.Now().UTC(),
	}
	require.NoError(t, store.Insert(context.Background(), entry))

	got, err := store.GetByID(context.Background(), "id-1")
	require.NoError(t, err)
	assert.Equal(t, *entry, *got)

	_, err = store.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_DuplicateID(t *testing.T) {
	store := NewMemory()
	entry := &models.GenerationLogEntry{ID: "dup", Kind: models.OpGenerate}

	require.NoError(t, store.Insert(context.Background(), entry))
	assert.Error(t, store.Insert(context.Background(), entry))
}

func TestMemory_RecentNewestFirst(t *testing.T) {
	store := NewMemory()
	base := time.Now().UTC()

	for i := 0; i < 5; i++ {
		require.NoError(t, store.Insert(context.Background(), &models.GenerationLogEntry{
			ID:        string(rune('a' + i)),
			Kind:      models.OpGenerate,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}))
	}

	recent, err := store.Recent(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, "e", recent[0].ID)
	assert.Equal(t, "d", recent[1].ID)
	assert.Equal(t, "c", recent[2].ID)
}

func TestMemory_RecentFollowsInsertionOrder(t *testing.T) {
	store := NewMemory()
	base := time.Now().UTC()

	// A backfilled entry carries an older timestamp but is inserted
	// last; insertion order still decides recency.
	require.NoError(t, store.Insert(context.Background(), &models.GenerationLogEntry{
		ID: "first", Kind: models.OpGenerate, CreatedAt: base,
	}))
	require.NoError(t, store.Insert(context.Background(), &models.GenerationLogEntry{
		ID: "backfilled", Kind: models.OpGenerate, CreatedAt: base.Add(-time.Hour),
	}))

	recent, err := store.Recent(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "backfilled", recent[0].ID)
}

func TestMemory_ReadsAreIdempotent(t *testing.T) {
	store := NewMemory()
	base := time.Now().UTC()
	for i, id := range []string{"x", "y", "z"} {
		require.NoError(t, store.Insert(context.Background(), &models.GenerationLogEntry{
			ID:        id,
			Kind:      models.OpGenerate,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}))
	}

	// Repeated reads without intervening writes return identical results.
	first, err := store.Recent(context.Background(), 10)
	require.NoError(t, err)
	second, err := store.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	got1, err := store.GetByID(context.Background(), "y")
	require.NoError(t, err)
	got2, err := store.GetByID(context.Background(), "y")
	require.NoError(t, err)
	assert.Equal(t, got1, got2)
}

func TestMemory_RecentLimitExceedsEntries(t *testing.T) {
	store := NewMemory()
	require.NoError(t, store.Insert(context.Background(), &models.GenerationLogEntry{
		ID: "only", Kind: models.OpOptimize, CreatedAt: time.Now().UTC(),
	}))

	recent, err := store.Recent(context.Background(), 20)
	require.NoError(t, err)
	assert.Len(t, recent, 1)
}

func TestMemory_Statistics(t *testing.T) {
	store := NewMemory()
	now := time.Now().UTC()
	store.now = func() time.Time { return now }

	insert := func(id string, kind models.OperationKind, contentType, platform string, durationMs int64, age time.Duration) {
		require.NoError(t, store.Insert(context.Background(), &models.GenerationLogEntry{
			ID:          id,
			Kind:        kind,
			ContentType: contentType,
			Platform:    platform,
			DurationMs:  durationMs,
			CreatedAt:   now.Add(-age),
		}))
	}

	insert("g1", models.OpGenerate, "email", "", 100, time.Hour)
	insert("g2", models.OpGenerate, "social_post", "", 300, 2*time.Hour)
	insert("o1", models.OpOptimize, "", "twitter", 200, 3*time.Hour)
	// Outside the one-day window; must not be counted.
	insert("old", models.OpVariations, "blog", "", 900, 48*time.Hour)

	stats, err := store.Statistics(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.WindowDays)
	assert.Equal(t, int64(3), stats.TotalRequests)
	assert.Equal(t, int64(2), stats.ByKind["generate"])
	assert.Equal(t, int64(1), stats.ByKind["optimize"])
	assert.Zero(t, stats.ByKind["variations"])
	assert.Equal(t, int64(1), stats.ByContentType["email"])
	assert.Equal(t, int64(1), stats.ByPlatform["twitter"])
	assert.InDelta(t, 200.0, stats.AvgDurationMs, 0.001)
}

func TestMemory_StatisticsEmpty(t *testing.T) {
	store := NewMemory()

	stats, err := store.Statistics(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, int64(0), stats.TotalRequests)
	assert.Zero(t, stats.AvgDurationMs)
	assert.NotNil(t, stats.ByKind)
	assert.NotNil(t, stats.ByContentType)
	assert.NotNil(t, stats.ByPlatform)
}

func TestLogger_AssignsIDAndTimestamp(t *testing.T) {
	store := NewMemory()
	logger := NewLogger(store)

	id := logger.LogGeneration("prompt", "email", "output", "m", "10.0.0.1", 1500*time.Millisecond)
	require.NotEmpty(t, id)

	entry, err := store.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, models.OpGenerate, entry.Kind)
	assert.Equal(t, int64(1500), entry.DurationMs)
	assert.False(t, entry.CreatedAt.IsZero())
}

func TestLogger_Variations(t *testing.T) {
	store := NewMemory()
	logger := NewLogger(store)

	id := logger.LogVariations("prompt", "ad_copy", []string{"a", "b", "c"}, "m", "10.0.0.1", time.Second)

	entry, err := store.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, models.OpVariations, entry.Kind)
	assert.Equal(t, 3, entry.Count)
	assert.Equal(t, []string{"a", "b", "c"}, entry.Variations)
}

type failingStore struct{ Memory }

func (*failingStore) Insert(context.Context, *models.GenerationLogEntry) error {
	return context.DeadlineExceeded
}

func TestLogger_SwallowsStoreErrors(t *testing.T) {
	logger := NewLogger(&failingStore{})

	// A failing store must not panic or block; the id is still returned.
	id := logger.LogOptimization("content", "twitter", []string{"engagement"}, "out", "m", "10.0.0.1", time.Second)
	assert.NotEmpty(t, id)
}
