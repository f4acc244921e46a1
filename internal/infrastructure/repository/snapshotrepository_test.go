package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terplist/terplist/internal/domain/ranking"
)

func snapshotFor(producerID uint, avg float64, rank int, date time.Time) *ranking.Snapshot {
	return &ranking.Snapshot{
		ProducerID:    producerID,
		AverageRating: avg,
		CategoryRank:  rank,
		SnapshotDate:  date,
		CreatedAt:     time.Now().UTC(),
	}
}

func TestUpsertBatchSameDayRerunReplacesEarlierPoint(t *testing.T) {
	repo := NewSnapshotRepository(setupTestDB(t), testLogger())
	ctx := context.Background()
	date := time.Date(2025, 6, 1, 6, 0, 0, 0, time.UTC)

	require.NoError(t, repo.UpsertBatch(ctx, []*ranking.Snapshot{
		snapshotFor(10, 4.0, 1, date),
		snapshotFor(11, 3.0, 2, date),
	}))
	require.NoError(t, repo.UpsertBatch(ctx, []*ranking.Snapshot{
		snapshotFor(10, 4.5, 1, date),
	}))

	count, err := repo.CountForDate(ctx, date)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	history, err := repo.ListByProducer(ctx, 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.InDelta(t, 4.5, history[0].AverageRating, 1e-9)
}

func TestListByProducerOrdersBySnapshotDate(t *testing.T) {
	repo := NewSnapshotRepository(setupTestDB(t), testLogger())
	ctx := context.Background()

	day1 := time.Date(2025, 6, 1, 6, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)
	day3 := day1.AddDate(0, 0, 2)

	require.NoError(t, repo.UpsertBatch(ctx, []*ranking.Snapshot{snapshotFor(10, 3.0, 2, day2)}))
	require.NoError(t, repo.UpsertBatch(ctx, []*ranking.Snapshot{snapshotFor(10, 3.5, 1, day3)}))
	require.NoError(t, repo.UpsertBatch(ctx, []*ranking.Snapshot{snapshotFor(10, 2.5, 3, day1)}))

	history, err := repo.ListByProducer(ctx, 10)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.True(t, history[0].SnapshotDate.Before(history[1].SnapshotDate))
	assert.True(t, history[1].SnapshotDate.Before(history[2].SnapshotDate))
}

func TestUpsertBatchEmptyIsNoOp(t *testing.T) {
	repo := NewSnapshotRepository(setupTestDB(t), testLogger())
	require.NoError(t, repo.UpsertBatch(context.Background(), nil))
}
