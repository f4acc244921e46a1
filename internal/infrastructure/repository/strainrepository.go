package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/terplist/terplist/internal/domain/strain"
	"github.com/terplist/terplist/internal/infrastructure/persistence/models"
	"github.com/terplist/terplist/internal/shared/db"
	"github.com/terplist/terplist/internal/shared/logger"
)

type StrainRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewStrainRepository(database *gorm.DB, log logger.Interface) strain.Repository {
	return &StrainRepository{db: database, logger: log}
}

func (r *StrainRepository) Create(ctx context.Context, entity *strain.Strain) error {
	model, err := r.toModel(entity)
	if err != nil {
		return err
	}

	conn := db.GetTxFromContext(ctx, r.db)
	if err := conn.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create strain", "name", entity.Name(), "error", err)
		return fmt.Errorf("failed to create strain: %w", err)
	}

	return entity.SetID(model.ID)
}

func (r *StrainRepository) GetBySID(ctx context.Context, sid string) (*strain.Strain, error) {
	var model models.StrainModel
	if err := r.db.WithContext(ctx).Where("sid = ?", sid).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get strain by sid: %w", err)
	}
	return r.toEntity(&model)
}

func (r *StrainRepository) Update(ctx context.Context, entity *strain.Strain) error {
	terpenes, err := marshalTerpenes(entity.Terpenes())
	if err != nil {
		return err
	}

	conn := db.GetTxFromContext(ctx, r.db)
	updates := map[string]interface{}{
		"name":        entity.Name(),
		"description": entity.Description(),
		"terpenes":    terpenes,
		"drop_at":     entity.DropAt(),
		"updated_at":  entity.UpdatedAt(),
	}
	if err := conn.Model(&models.StrainModel{}).Where("id = ?", entity.ID()).Updates(updates).Error; err != nil {
		r.logger.Errorw("failed to update strain", "id", entity.ID(), "error", err)
		return fmt.Errorf("failed to update strain: %w", err)
	}
	return nil
}

func (r *StrainRepository) Delete(ctx context.Context, id uint) error {
	conn := db.GetTxFromContext(ctx, r.db)
	if err := conn.Delete(&models.StrainModel{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete strain: %w", err)
	}
	return nil
}

func (r *StrainRepository) ListByProducer(ctx context.Context, producerID uint) ([]*strain.Strain, error) {
	var strainModels []*models.StrainModel
	err := r.db.WithContext(ctx).
		Where("producer_id = ?", producerID).
		Order("name ASC").
		Find(&strainModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list strains: %w", err)
	}
	return r.toEntities(strainModels)
}

func (r *StrainRepository) ListDropsBetween(ctx context.Context, stateID *uint, from, to time.Time) ([]*strain.Strain, error) {
	query := r.db.WithContext(ctx).Model(&models.StrainModel{}).
		Where("strains.drop_at >= ? AND strains.drop_at < ?", from, to)

	if stateID != nil {
		query = query.
			Joins("JOIN producers ON producers.id = strains.producer_id").
			Where("producers.state_id = ?", *stateID)
	}

	var strainModels []*models.StrainModel
	if err := query.Order("strains.drop_at ASC").Find(&strainModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list drops: %w", err)
	}
	return r.toEntities(strainModels)
}

func (r *StrainRepository) toModel(entity *strain.Strain) (*models.StrainModel, error) {
	terpenes, err := marshalTerpenes(entity.Terpenes())
	if err != nil {
		return nil, err
	}
	return &models.StrainModel{
		ID:          entity.ID(),
		SID:         entity.SID(),
		ProducerID:  entity.ProducerID(),
		Name:        entity.Name(),
		Slug:        entity.Slug(),
		Description: entity.Description(),
		Terpenes:    terpenes,
		DropAt:      entity.DropAt(),
		CreatedAt:   entity.CreatedAt(),
		UpdatedAt:   entity.UpdatedAt(),
	}, nil
}

func (r *StrainRepository) toEntity(model *models.StrainModel) (*strain.Strain, error) {
	var terpenes []string
	if len(model.Terpenes) > 0 {
		if err := json.Unmarshal(model.Terpenes, &terpenes); err != nil {
			return nil, fmt.Errorf("failed to decode strain terpenes: %w", err)
		}
	}
	return strain.ReconstructStrain(
		model.ID,
		model.SID,
		model.ProducerID,
		model.Name,
		model.Slug,
		model.Description,
		terpenes,
		model.DropAt,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (r *StrainRepository) toEntities(strainModels []*models.StrainModel) ([]*strain.Strain, error) {
	strains := make([]*strain.Strain, 0, len(strainModels))
	for _, model := range strainModels {
		entity, err := r.toEntity(model)
		if err != nil {
			r.logger.Warnw("failed to map strain model, skipping", "id", model.ID, "error", err)
			continue
		}
		strains = append(strains, entity)
	}
	return strains, nil
}

func marshalTerpenes(terpenes []string) (datatypes.JSON, error) {
	if terpenes == nil {
		terpenes = []string{}
	}
	data, err := json.Marshal(terpenes)
	if err != nil {
		return nil, fmt.Errorf("failed to encode strain terpenes: %w", err)
	}
	return datatypes.JSON(data), nil
}
