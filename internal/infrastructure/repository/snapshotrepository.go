package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/terplist/terplist/internal/domain/ranking"
	"github.com/terplist/terplist/internal/infrastructure/persistence/models"
	"github.com/terplist/terplist/internal/shared/db"
	"github.com/terplist/terplist/internal/shared/id"
	"github.com/terplist/terplist/internal/shared/logger"
)

type SnapshotRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewSnapshotRepository(database *gorm.DB, log logger.Interface) ranking.SnapshotRepository {
	return &SnapshotRepository{db: database, logger: log}
}

// UpsertBatch writes the snapshots, replacing any existing row for the same
// (producer, snapshot date). The daily job wraps each category's batch in a
// transaction so the category is snapshotted all-or-nothing.
func (r *SnapshotRepository) UpsertBatch(ctx context.Context, snapshots []*ranking.Snapshot) error {
	if len(snapshots) == 0 {
		return nil
	}

	snapshotModels := make([]*models.RatingSnapshotModel, 0, len(snapshots))
	for _, s := range snapshots {
		sid, err := id.GenerateWithPrefix(id.PrefixRatingSnapshot, id.DefaultLength)
		if err != nil {
			return fmt.Errorf("failed to generate snapshot sid: %w", err)
		}
		snapshotModels = append(snapshotModels, &models.RatingSnapshotModel{
			SID:           sid,
			ProducerID:    s.ProducerID,
			AverageRating: s.AverageRating,
			CategoryRank:  s.CategoryRank,
			SnapshotDate:  s.SnapshotDate,
			CreatedAt:     s.CreatedAt,
		})
	}

	conn := db.GetTxFromContext(ctx, r.db)
	err := conn.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "producer_id"}, {Name: "snapshot_date"}},
		DoUpdates: clause.AssignmentColumns([]string{"average_rating", "category_rank", "created_at"}),
	}).Create(&snapshotModels).Error
	if err != nil {
		r.logger.Errorw("failed to upsert snapshot batch", "count", len(snapshotModels), "error", err)
		return fmt.Errorf("failed to upsert snapshots: %w", err)
	}

	return nil
}

func (r *SnapshotRepository) ListByProducer(ctx context.Context, producerID uint) ([]*ranking.Snapshot, error) {
	var snapshotModels []*models.RatingSnapshotModel
	err := r.db.WithContext(ctx).
		Where("producer_id = ?", producerID).
		Order("snapshot_date ASC").
		Find(&snapshotModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}

	snapshots := make([]*ranking.Snapshot, 0, len(snapshotModels))
	for _, model := range snapshotModels {
		snapshots = append(snapshots, &ranking.Snapshot{
			ID:            model.ID,
			SID:           model.SID,
			ProducerID:    model.ProducerID,
			AverageRating: model.AverageRating,
			CategoryRank:  model.CategoryRank,
			SnapshotDate:  model.SnapshotDate,
			CreatedAt:     model.CreatedAt,
		})
	}
	return snapshots, nil
}

func (r *SnapshotRepository) CountForDate(ctx context.Context, date time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.RatingSnapshotModel{}).
		Where("snapshot_date = ?", date).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count snapshots: %w", err)
	}
	return count, nil
}
