package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/terplist/terplist/internal/domain/producer"
	"github.com/terplist/terplist/internal/domain/ranking"
	"github.com/terplist/terplist/internal/shared/errors"
	"github.com/terplist/terplist/internal/shared/logger"
)

// RatingPoint is one historical snapshot in external form.
type RatingPoint struct {
	AverageRating float64   `json:"average_rating"`
	CategoryRank  int       `json:"category_rank"`
	SnapshotDate  time.Time `json:"snapshot_date"`
}

// GetRatingHistoryUseCase returns a producer's snapshot history ascending by
// date, for trend charting.
type GetRatingHistoryUseCase struct {
	producerRepo producer.Repository
	snapshotRepo ranking.SnapshotRepository
	logger       logger.Interface
}

func NewGetRatingHistoryUseCase(
	producerRepo producer.Repository,
	snapshotRepo ranking.SnapshotRepository,
	log logger.Interface,
) *GetRatingHistoryUseCase {
	return &GetRatingHistoryUseCase{
		producerRepo: producerRepo,
		snapshotRepo: snapshotRepo,
		logger:       log,
	}
}

func (uc *GetRatingHistoryUseCase) Execute(ctx context.Context, producerSID string) ([]RatingPoint, error) {
	entity, err := uc.producerRepo.GetBySID(ctx, producerSID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve producer: %w", err)
	}
	if entity == nil {
		return nil, errors.NewNotFoundError("producer not found")
	}

	snapshots, err := uc.snapshotRepo.ListByProducer(ctx, entity.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to load rating history: %w", err)
	}

	points := make([]RatingPoint, 0, len(snapshots))
	for _, s := range snapshots {
		points = append(points, RatingPoint{
			AverageRating: s.AverageRating,
			CategoryRank:  s.CategoryRank,
			SnapshotDate:  s.SnapshotDate,
		})
	}
	return points, nil
}
