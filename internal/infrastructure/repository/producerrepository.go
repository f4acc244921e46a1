package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/terplist/terplist/internal/domain/producer"
	"github.com/terplist/terplist/internal/infrastructure/persistence/models"
	"github.com/terplist/terplist/internal/shared/db"
	"github.com/terplist/terplist/internal/shared/logger"
)

type ProducerRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewProducerRepository(database *gorm.DB, log logger.Interface) producer.Repository {
	return &ProducerRepository{db: database, logger: log}
}

func (r *ProducerRepository) Create(ctx context.Context, entity *producer.Producer) error {
	model := r.toModel(entity)

	conn := db.GetTxFromContext(ctx, r.db)
	if err := conn.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create producer", "slug", entity.Slug(), "error", err)
		return fmt.Errorf("failed to create producer: %w", err)
	}

	return entity.SetID(model.ID)
}

func (r *ProducerRepository) GetByID(ctx context.Context, id uint) (*producer.Producer, error) {
	var model models.ProducerModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get producer: %w", err)
	}
	return r.toEntity(&model)
}

func (r *ProducerRepository) GetBySID(ctx context.Context, sid string) (*producer.Producer, error) {
	var model models.ProducerModel
	if err := r.db.WithContext(ctx).Where("sid = ?", sid).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get producer by sid: %w", err)
	}
	return r.toEntity(&model)
}

func (r *ProducerRepository) GetBySlug(ctx context.Context, slug string) (*producer.Producer, error) {
	var model models.ProducerModel
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get producer by slug: %w", err)
	}
	return r.toEntity(&model)
}

func (r *ProducerRepository) Update(ctx context.Context, entity *producer.Producer) error {
	conn := db.GetTxFromContext(ctx, r.db)
	updates := map[string]interface{}{
		"name":        entity.Name(),
		"description": entity.Description(),
		"market":      entity.Market().String(),
		"updated_at":  entity.UpdatedAt(),
	}
	if err := conn.Model(&models.ProducerModel{}).Where("id = ?", entity.ID()).Updates(updates).Error; err != nil {
		r.logger.Errorw("failed to update producer", "id", entity.ID(), "error", err)
		return fmt.Errorf("failed to update producer: %w", err)
	}
	return nil
}

// ListByFilter returns producers in internal-ID ascending order. The ranking
// engine depends on this fetch order: it is the deterministic tiebreak for
// producers with equal averages.
func (r *ProducerRepository) ListByFilter(ctx context.Context, filter producer.ListFilter) ([]*producer.Producer, error) {
	query := r.db.WithContext(ctx).Model(&models.ProducerModel{})

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category.String())
	}
	if filter.StateID != nil {
		query = query.Where("state_id = ?", *filter.StateID)
	}
	if filter.Market != "" && filter.Market != producer.MarketBoth {
		query = query.Where("market IN ?", []string{filter.Market.String(), producer.MarketBoth.String()})
	}

	var producerModels []*models.ProducerModel
	if err := query.Order("id ASC").Find(&producerModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list producers: %w", err)
	}

	producers := make([]*producer.Producer, 0, len(producerModels))
	for _, model := range producerModels {
		entity, err := r.toEntity(model)
		if err != nil {
			r.logger.Warnw("failed to map producer model, skipping", "id", model.ID, "error", err)
			continue
		}
		producers = append(producers, entity)
	}
	return producers, nil
}

// StateRefFor resolves a producer's state affiliation in one joined query.
// Returns nil when the producer does not exist so callers can distinguish
// not-found from a storage failure.
func (r *ProducerRepository) StateRefFor(ctx context.Context, producerSID string) (*producer.StateRef, error) {
	var row struct {
		StateID uint
		SID     string
		Slug    string
	}

	err := r.db.WithContext(ctx).
		Table("producers").
		Select("producers.state_id AS state_id, states.sid AS sid, states.slug AS slug").
		Joins("JOIN states ON states.id = producers.state_id").
		Where("producers.sid = ?", producerSID).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve producer state: %w", err)
	}

	return &producer.StateRef{ID: row.StateID, SID: row.SID, Slug: row.Slug}, nil
}

func (r *ProducerRepository) toModel(entity *producer.Producer) *models.ProducerModel {
	return &models.ProducerModel{
		ID:          entity.ID(),
		SID:         entity.SID(),
		Name:        entity.Name(),
		Slug:        entity.Slug(),
		Description: entity.Description(),
		Category:    entity.Category().String(),
		Market:      entity.Market().String(),
		StateID:     entity.StateID(),
		CreatedAt:   entity.CreatedAt(),
		UpdatedAt:   entity.UpdatedAt(),
	}
}

func (r *ProducerRepository) toEntity(model *models.ProducerModel) (*producer.Producer, error) {
	return producer.ReconstructProducer(
		model.ID,
		model.SID,
		model.Name,
		model.Slug,
		model.Description,
		producer.Category(model.Category),
		producer.Market(model.Market),
		model.StateID,
		model.CreatedAt,
		model.UpdatedAt,
	)
}
