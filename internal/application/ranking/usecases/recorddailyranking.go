// Package usecases contains the ranking application use cases.
package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/terplist/terplist/internal/domain/producer"
	"github.com/terplist/terplist/internal/domain/ranking"
	"github.com/terplist/terplist/internal/domain/vote"
	"github.com/terplist/terplist/internal/shared/biztime"
	"github.com/terplist/terplist/internal/shared/logger"
)

// releaseTimeout bounds the lock release after the run context expired.
const releaseTimeout = 5 * time.Second

// RunLock serializes snapshot runs across processes. Implemented by the redis
// run marker.
type RunLock interface {
	Acquire(ctx context.Context, snapshotDate string) (bool, error)
	Release(ctx context.Context, snapshotDate string) error
}

// Transactor runs a function inside a storage transaction.
type Transactor interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// RecordDailyRankingUseCase computes and persists the daily rating snapshot.
// Each category is ranked and written in its own transaction, so a failure
// mid-run leaves whole categories either fully snapshotted or untouched,
// never half-written.
type RecordDailyRankingUseCase struct {
	producerRepo producer.Repository
	voteRepo     vote.Repository
	snapshotRepo ranking.SnapshotRepository
	txManager    Transactor
	runLock      RunLock
	logger       logger.Interface
}

func NewRecordDailyRankingUseCase(
	producerRepo producer.Repository,
	voteRepo vote.Repository,
	snapshotRepo ranking.SnapshotRepository,
	txManager Transactor,
	runLock RunLock,
	log logger.Interface,
) *RecordDailyRankingUseCase {
	return &RecordDailyRankingUseCase{
		producerRepo: producerRepo,
		voteRepo:     voteRepo,
		snapshotRepo: snapshotRepo,
		txManager:    txManager,
		runLock:      runLock,
		logger:       log,
	}
}

// Execute runs the snapshot for today's business date and returns the number
// of snapshots written. A second invocation while the run marker is held
// returns immediately with zero writes. The caller bounds ctx with a
// deadline; a rerun on the same date replaces the earlier points.
func (uc *RecordDailyRankingUseCase) Execute(ctx context.Context) (int, error) {
	snapshotDate := biztime.Today()
	dateKey := snapshotDate.Format("2006-01-02")

	if uc.runLock != nil {
		acquired, err := uc.runLock.Acquire(ctx, dateKey)
		if err != nil {
			return 0, fmt.Errorf("failed to acquire snapshot run lock: %w", err)
		}
		if !acquired {
			uc.logger.Warnw("snapshot run already in progress, skipping", "date", dateKey)
			return 0, nil
		}
		defer func() {
			releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
			defer cancel()
			if err := uc.runLock.Release(releaseCtx, dateKey); err != nil {
				uc.logger.Warnw("failed to release snapshot run lock", "date", dateKey, "error", err)
			}
		}()
	}

	total := 0
	for _, category := range producer.Categories() {
		if err := ctx.Err(); err != nil {
			return total, fmt.Errorf("snapshot run aborted: %w", err)
		}

		count, err := uc.snapshotCategory(ctx, category, snapshotDate)
		if err != nil {
			return total, fmt.Errorf("failed to snapshot category %s: %w", category, err)
		}
		total += count

		uc.logger.Infow("category snapshot written",
			"category", category.String(), "date", dateKey, "count", count)
	}

	return total, nil
}

func (uc *RecordDailyRankingUseCase) snapshotCategory(ctx context.Context, category producer.Category, snapshotDate time.Time) (int, error) {
	producers, err := uc.producerRepo.ListByFilter(ctx, producer.ListFilter{Category: category})
	if err != nil {
		return 0, fmt.Errorf("failed to list producers: %w", err)
	}
	if len(producers) == 0 {
		return 0, nil
	}

	producerIDs := make([]uint, 0, len(producers))
	for _, p := range producers {
		producerIDs = append(producerIDs, p.ID())
	}

	votesByProducer, err := uc.voteRepo.ListByProducerIDs(ctx, producerIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to list votes: %w", err)
	}

	entries := make([]ranking.ProducerVotes, 0, len(producers))
	for _, p := range producers {
		entries = append(entries, ranking.ProducerVotes{
			Producer: p,
			Votes:    votesByProducer[p.ID()],
		})
	}

	ranked := ranking.Rank(entries)

	snapshots := make([]*ranking.Snapshot, 0, len(ranked))
	now := biztime.NowUTC()
	for _, r := range ranked {
		snapshots = append(snapshots, &ranking.Snapshot{
			ProducerID:    r.Producer.ID(),
			AverageRating: r.Average,
			CategoryRank:  r.Rank,
			SnapshotDate:  snapshotDate,
			CreatedAt:     now,
		})
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		return uc.snapshotRepo.UpsertBatch(txCtx, snapshots)
	})
	if err != nil {
		return 0, err
	}

	return len(snapshots), nil
}
