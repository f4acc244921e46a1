package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/terplist/terplist/internal/domain/vote"
	"github.com/terplist/terplist/internal/infrastructure/persistence/models"
	"github.com/terplist/terplist/internal/shared/db"
	"github.com/terplist/terplist/internal/shared/id"
	"github.com/terplist/terplist/internal/shared/logger"
)

type VoteRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewVoteRepository(database *gorm.DB, log logger.Interface) vote.Repository {
	return &VoteRepository{db: database, logger: log}
}

// Upsert inserts or replaces the vote for the (user, producer) pair in a
// single statement. The unique pair index serializes concurrent casts, so the
// stored row always holds exactly one caster's value.
func (r *VoteRepository) Upsert(ctx context.Context, v *vote.Vote) error {
	sid, err := id.GenerateWithPrefix(id.PrefixVote, id.DefaultLength)
	if err != nil {
		return fmt.Errorf("failed to generate vote sid: %w", err)
	}

	model := &models.VoteModel{
		SID:        sid,
		UserID:     v.UserID(),
		ProducerID: v.ProducerID(),
		Value:      v.Value(),
		StateID:    v.StateID(),
		CreatedAt:  v.CreatedAt(),
		UpdatedAt:  v.UpdatedAt(),
	}

	conn := db.GetTxFromContext(ctx, r.db)
	err = conn.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "producer_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "state_id", "updated_at"}),
	}).Create(model).Error
	if err != nil {
		r.logger.Errorw("failed to upsert vote",
			"user_id", v.UserID(), "producer_id", v.ProducerID(), "error", err)
		return fmt.Errorf("failed to upsert vote: %w", err)
	}

	return nil
}

func (r *VoteRepository) GetByUserAndProducer(ctx context.Context, userID, producerID uint) (*vote.Vote, error) {
	var model models.VoteModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND producer_id = ?", userID, producerID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get vote: %w", err)
	}
	return r.toEntity(&model), nil
}

func (r *VoteRepository) ListByProducer(ctx context.Context, producerID uint) ([]*vote.Vote, error) {
	var voteModels []*models.VoteModel
	if err := r.db.WithContext(ctx).Where("producer_id = ?", producerID).Find(&voteModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}

	votes := make([]*vote.Vote, 0, len(voteModels))
	for _, model := range voteModels {
		votes = append(votes, r.toEntity(model))
	}
	return votes, nil
}

func (r *VoteRepository) ListByProducerIDs(ctx context.Context, producerIDs []uint) (map[uint][]*vote.Vote, error) {
	result := make(map[uint][]*vote.Vote)
	if len(producerIDs) == 0 {
		return result, nil
	}

	var voteModels []*models.VoteModel
	if err := r.db.WithContext(ctx).Where("producer_id IN ?", producerIDs).Find(&voteModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list votes by producers: %w", err)
	}

	for _, model := range voteModels {
		result[model.ProducerID] = append(result[model.ProducerID], r.toEntity(model))
	}
	return result, nil
}

func (r *VoteRepository) toEntity(model *models.VoteModel) *vote.Vote {
	return vote.ReconstructVote(
		model.ID,
		model.UserID,
		model.ProducerID,
		model.Value,
		model.StateID,
		model.CreatedAt,
		model.UpdatedAt,
	)
}
