// Package repository contains the gorm implementations of the domain
// repository interfaces. All write methods resolve the connection through
// db.GetTxFromContext so use cases can compose them into transactions.
package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/terplist/terplist/internal/domain/state"
	"github.com/terplist/terplist/internal/infrastructure/persistence/models"
	"github.com/terplist/terplist/internal/shared/db"
	"github.com/terplist/terplist/internal/shared/logger"
)

type StateRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewStateRepository(database *gorm.DB, log logger.Interface) state.Repository {
	return &StateRepository{db: database, logger: log}
}

func (r *StateRepository) Create(ctx context.Context, entity *state.State) error {
	model := &models.StateModel{
		SID:       entity.SID(),
		Name:      entity.Name(),
		Slug:      entity.Slug(),
		CreatedAt: entity.CreatedAt(),
		UpdatedAt: entity.UpdatedAt(),
	}

	conn := db.GetTxFromContext(ctx, r.db)
	if err := conn.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create state", "slug", entity.Slug(), "error", err)
		return fmt.Errorf("failed to create state: %w", err)
	}

	return entity.SetID(model.ID)
}

func (r *StateRepository) GetByID(ctx context.Context, id uint) (*state.State, error) {
	var model models.StateModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get state: %w", err)
	}
	return r.toEntity(&model)
}

func (r *StateRepository) GetBySID(ctx context.Context, sid string) (*state.State, error) {
	var model models.StateModel
	if err := r.db.WithContext(ctx).Where("sid = ?", sid).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get state by sid: %w", err)
	}
	return r.toEntity(&model)
}

func (r *StateRepository) GetBySlug(ctx context.Context, slug string) (*state.State, error) {
	var model models.StateModel
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get state by slug: %w", err)
	}
	return r.toEntity(&model)
}

func (r *StateRepository) List(ctx context.Context) ([]*state.State, error) {
	var stateModels []*models.StateModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&stateModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list states: %w", err)
	}

	states := make([]*state.State, 0, len(stateModels))
	for _, model := range stateModels {
		entity, err := r.toEntity(model)
		if err != nil {
			r.logger.Warnw("failed to map state model, skipping", "id", model.ID, "error", err)
			continue
		}
		states = append(states, entity)
	}
	return states, nil
}

func (r *StateRepository) toEntity(model *models.StateModel) (*state.State, error) {
	return state.ReconstructState(model.ID, model.SID, model.Name, model.Slug, model.CreatedAt, model.UpdatedAt)
}
