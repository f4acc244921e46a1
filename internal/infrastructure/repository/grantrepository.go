package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/terplist/terplist/internal/domain/grant"
	"github.com/terplist/terplist/internal/infrastructure/persistence/models"
	"github.com/terplist/terplist/internal/shared/constants"
	"github.com/terplist/terplist/internal/shared/db"
	"github.com/terplist/terplist/internal/shared/logger"
)

type GrantRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewGrantRepository(database *gorm.DB, log logger.Interface) grant.Repository {
	return &GrantRepository{db: database, logger: log}
}

func (r *GrantRepository) CreateProducerGrant(ctx context.Context, g *grant.ProducerGrant) error {
	model := &models.ProducerAdminModel{
		SID:        g.SID,
		UserID:     g.UserID,
		ProducerID: g.ProducerID,
		CreatedAt:  g.CreatedAt,
	}

	conn := db.GetTxFromContext(ctx, r.db)
	if err := conn.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create producer grant",
			"user_id", g.UserID, "producer_id", g.ProducerID, "error", err)
		return fmt.Errorf("failed to create producer grant: %w", err)
	}
	g.ID = model.ID
	return nil
}

func (r *GrantRepository) CreateStateGrant(ctx context.Context, g *grant.StateGrant) error {
	model := &models.StateAdminModel{
		SID:       g.SID,
		UserID:    g.UserID,
		StateID:   g.StateID,
		CreatedAt: g.CreatedAt,
	}

	conn := db.GetTxFromContext(ctx, r.db)
	if err := conn.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create state grant",
			"user_id", g.UserID, "state_id", g.StateID, "error", err)
		return fmt.Errorf("failed to create state grant: %w", err)
	}
	g.ID = model.ID
	return nil
}

func (r *GrantRepository) DeleteProducerGrant(ctx context.Context, userID, producerID uint) error {
	conn := db.GetTxFromContext(ctx, r.db)
	err := conn.Where("user_id = ? AND producer_id = ?", userID, producerID).
		Delete(&models.ProducerAdminModel{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete producer grant: %w", err)
	}
	return nil
}

func (r *GrantRepository) DeleteStateGrant(ctx context.Context, userID, stateID uint) error {
	conn := db.GetTxFromContext(ctx, r.db)
	err := conn.Where("user_id = ? AND state_id = ?", userID, stateID).
		Delete(&models.StateAdminModel{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete state grant: %w", err)
	}
	return nil
}

// ListForUser assembles the external-identifier grant view embedded into
// token claims at issuance.
func (r *GrantRepository) ListForUser(ctx context.Context, userID uint) (*grant.UserGrants, error) {
	grants := &grant.UserGrants{}

	err := r.db.WithContext(ctx).
		Table(constants.TableProducerAdmins).
		Select("producers.sid").
		Joins("JOIN producers ON producers.id = producer_admins.producer_id").
		Where("producer_admins.user_id = ?", userID).
		Scan(&grants.ProducerSIDs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list producer grants: %w", err)
	}

	var stateRows []struct {
		SID  string
		Slug string
	}
	err = r.db.WithContext(ctx).
		Table(constants.TableStateAdmins).
		Select("states.sid AS sid, states.slug AS slug").
		Joins("JOIN states ON states.id = state_admins.state_id").
		Where("state_admins.user_id = ?", userID).
		Scan(&stateRows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list state grants: %w", err)
	}
	for _, row := range stateRows {
		grants.StateSIDs = append(grants.StateSIDs, row.SID)
		grants.StateSlugs = append(grants.StateSlugs, row.Slug)
	}

	return grants, nil
}

func (r *GrantRepository) HasProducerGrant(ctx context.Context, userID uint, producerSID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table(constants.TableProducerAdmins).
		Joins("JOIN producers ON producers.id = producer_admins.producer_id").
		Where("producer_admins.user_id = ? AND producers.sid = ?", userID, producerSID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check producer grant: %w", err)
	}
	return count > 0, nil
}

func (r *GrantRepository) HasStateGrant(ctx context.Context, userID uint, stateSID, stateSlug string) (bool, error) {
	query := r.db.WithContext(ctx).
		Table(constants.TableStateAdmins).
		Joins("JOIN states ON states.id = state_admins.state_id").
		Where("state_admins.user_id = ?", userID)

	switch {
	case stateSID != "" && stateSlug != "":
		query = query.Where("states.sid = ? OR states.slug = ?", stateSID, stateSlug)
	case stateSID != "":
		query = query.Where("states.sid = ?", stateSID)
	case stateSlug != "":
		query = query.Where("states.slug = ?", stateSlug)
	default:
		return false, nil
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check state grant: %w", err)
	}
	return count > 0, nil
}

// IsGlobalAdmin checks the relational role column, not the token claims.
func (r *GrantRepository) IsGlobalAdmin(ctx context.Context, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.UserModel{}).
		Where("id = ? AND role = ?", userID, constants.RoleAdmin).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check global admin: %w", err)
	}
	return count > 0, nil
}
