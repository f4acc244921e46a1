package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/terplist/terplist/internal/domain/notification"
	"github.com/terplist/terplist/internal/infrastructure/persistence/models"
	"github.com/terplist/terplist/internal/shared/constants"
	"github.com/terplist/terplist/internal/shared/db"
	"github.com/terplist/terplist/internal/shared/logger"
)

type DropSubscriptionRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewDropSubscriptionRepository(database *gorm.DB, log logger.Interface) notification.SubscriptionRepository {
	return &DropSubscriptionRepository{db: database, logger: log}
}

// Subscribe is idempotent: a second subscribe for the same pair is a no-op on
// the unique pair index.
func (r *DropSubscriptionRepository) Subscribe(ctx context.Context, sub *notification.DropSubscription) error {
	model := &models.DropSubscriptionModel{
		SID:        sub.SID,
		UserID:     sub.UserID,
		ProducerID: sub.ProducerID,
		CreatedAt:  sub.CreatedAt,
	}

	conn := db.GetTxFromContext(ctx, r.db)
	err := conn.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "producer_id"}},
		DoNothing: true,
	}).Create(model).Error
	if err != nil {
		r.logger.Errorw("failed to create drop subscription",
			"user_id", sub.UserID, "producer_id", sub.ProducerID, "error", err)
		return fmt.Errorf("failed to create drop subscription: %w", err)
	}

	sub.ID = model.ID
	return nil
}

func (r *DropSubscriptionRepository) Unsubscribe(ctx context.Context, userID, producerID uint) error {
	conn := db.GetTxFromContext(ctx, r.db)
	err := conn.Where("user_id = ? AND producer_id = ?", userID, producerID).
		Delete(&models.DropSubscriptionModel{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete drop subscription: %w", err)
	}
	return nil
}

func (r *DropSubscriptionRepository) IsSubscribed(ctx context.Context, userID, producerID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.DropSubscriptionModel{}).
		Where("user_id = ? AND producer_id = ?", userID, producerID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check drop subscription: %w", err)
	}
	return count > 0, nil
}

func (r *DropSubscriptionRepository) ListSubscriberEmails(ctx context.Context, producerID uint) ([]string, error) {
	var emails []string
	err := r.db.WithContext(ctx).
		Table(constants.TableDropSubscriptions).
		Select("users.email").
		Joins("JOIN users ON users.id = drop_subscriptions.user_id").
		Where("drop_subscriptions.producer_id = ?", producerID).
		Scan(&emails).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriber emails: %w", err)
	}
	return emails, nil
}
