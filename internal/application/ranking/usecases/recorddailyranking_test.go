package usecases

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terplist/terplist/internal/domain/producer"
	"github.com/terplist/terplist/internal/domain/ranking"
	"github.com/terplist/terplist/internal/domain/vote"
	"github.com/terplist/terplist/internal/shared/logger"
)

func testLogger() logger.Interface {
	return logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testProducer(t *testing.T, id uint, category producer.Category) *producer.Producer {
	t.Helper()
	now := time.Now()
	p, err := producer.ReconstructProducer(
		id, fmt.Sprintf("pd_%d", id), fmt.Sprintf("Producer %d", id), fmt.Sprintf("producer-%d", id),
		"", category, producer.MarketBoth, 1, now, now,
	)
	require.NoError(t, err)
	return p
}

func testVote(userID, producerID uint, value int) *vote.Vote {
	now := time.Now()
	return vote.ReconstructVote(0, userID, producerID, value, 1, now, now)
}

type stubProducerRepo struct {
	producer.Repository
	byCategory map[producer.Category][]*producer.Producer
	listErr    error
}

func (s *stubProducerRepo) ListByFilter(_ context.Context, filter producer.ListFilter) ([]*producer.Producer, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.byCategory[filter.Category], nil
}

type stubVoteRepo struct {
	vote.Repository
	votes map[uint][]*vote.Vote
}

func (s *stubVoteRepo) ListByProducerIDs(_ context.Context, producerIDs []uint) (map[uint][]*vote.Vote, error) {
	result := make(map[uint][]*vote.Vote)
	for _, id := range producerIDs {
		if vs, ok := s.votes[id]; ok {
			result[id] = vs
		}
	}
	return result, nil
}

type recordingSnapshotRepo struct {
	ranking.SnapshotRepository
	batches   [][]*ranking.Snapshot
	upsertErr error
}

func (s *recordingSnapshotRepo) UpsertBatch(_ context.Context, snapshots []*ranking.Snapshot) error {
	if s.upsertErr != nil {
		return s.upsertErr
	}
	s.batches = append(s.batches, snapshots)
	return nil
}

type passthroughTx struct {
	calls int
}

func (tx *passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.calls++
	return fn(ctx)
}

type stubLock struct {
	acquired   bool
	acquireErr error
	released   []string
}

func (l *stubLock) Acquire(_ context.Context, _ string) (bool, error) {
	return l.acquired, l.acquireErr
}

func (l *stubLock) Release(_ context.Context, date string) error {
	l.released = append(l.released, date)
	return nil
}

func TestRecordDailyRankingWritesOneBatchPerCategory(t *testing.T) {
	producers := &stubProducerRepo{byCategory: map[producer.Category][]*producer.Producer{
		producer.CategoryFlower: {testProducer(t, 1, producer.CategoryFlower), testProducer(t, 2, producer.CategoryFlower)},
		producer.CategoryHash:   {testProducer(t, 3, producer.CategoryHash)},
	}}
	votes := &stubVoteRepo{votes: map[uint][]*vote.Vote{
		1: {testVote(10, 1, 3), testVote(11, 1, 5)},
		2: {testVote(10, 2, 5)},
	}}
	snapshots := &recordingSnapshotRepo{}
	tx := &passthroughTx{}
	lock := &stubLock{acquired: true}

	uc := NewRecordDailyRankingUseCase(producers, votes, snapshots, tx, lock, testLogger())

	count, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Equal(t, 2, tx.calls, "one transaction per category")
	require.Len(t, snapshots.batches, 2)
	assert.Len(t, lock.released, 1)

	flower := snapshots.batches[0]
	require.Len(t, flower, 2)
	// Producer 2 has the higher average (5.0 vs 4.0) and takes rank 1.
	assert.Equal(t, uint(2), flower[0].ProducerID)
	assert.Equal(t, 1, flower[0].CategoryRank)
	assert.InDelta(t, 5.0, flower[0].AverageRating, 1e-9)
	assert.Equal(t, uint(1), flower[1].ProducerID)
	assert.Equal(t, 2, flower[1].CategoryRank)
	assert.InDelta(t, 4.0, flower[1].AverageRating, 1e-9)

	hash := snapshots.batches[1]
	require.Len(t, hash, 1)
	assert.InDelta(t, 0.0, hash[0].AverageRating, 1e-9, "voteless producer snapshots at zero")
	assert.Equal(t, 1, hash[0].CategoryRank)
}

func TestRecordDailyRankingSkipsWhenLockHeld(t *testing.T) {
	snapshots := &recordingSnapshotRepo{}
	uc := NewRecordDailyRankingUseCase(
		&stubProducerRepo{}, &stubVoteRepo{}, snapshots, &passthroughTx{},
		&stubLock{acquired: false}, testLogger(),
	)

	count, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Empty(t, snapshots.batches)
}

func TestRecordDailyRankingPropagatesLockError(t *testing.T) {
	uc := NewRecordDailyRankingUseCase(
		&stubProducerRepo{}, &stubVoteRepo{}, &recordingSnapshotRepo{}, &passthroughTx{},
		&stubLock{acquireErr: fmt.Errorf("redis down")}, testLogger(),
	)

	_, err := uc.Execute(context.Background())
	assert.Error(t, err)
}

func TestRecordDailyRankingStopsOnCategoryFailure(t *testing.T) {
	producers := &stubProducerRepo{byCategory: map[producer.Category][]*producer.Producer{
		producer.CategoryFlower: {testProducer(t, 1, producer.CategoryFlower)},
	}}
	snapshots := &recordingSnapshotRepo{upsertErr: fmt.Errorf("write failed")}
	lock := &stubLock{acquired: true}

	uc := NewRecordDailyRankingUseCase(producers, &stubVoteRepo{}, snapshots, &passthroughTx{}, lock, testLogger())

	count, err := uc.Execute(context.Background())
	assert.Error(t, err)
	assert.Zero(t, count)
	assert.Len(t, lock.released, 1, "lock released even on failure")
}
