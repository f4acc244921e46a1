// Package usecases contains the drop notification use cases.
package usecases

import (
	"context"
	"fmt"

	"github.com/terplist/terplist/internal/domain/notification"
	"github.com/terplist/terplist/internal/domain/producer"
	"github.com/terplist/terplist/internal/shared/biztime"
	"github.com/terplist/terplist/internal/shared/errors"
	"github.com/terplist/terplist/internal/shared/id"
	"github.com/terplist/terplist/internal/shared/logger"
)

// SubscribeUseCase opts a user into drop-date change emails for a producer.
// Subscribing twice is a no-op.
type SubscribeUseCase struct {
	subscriptionRepo notification.SubscriptionRepository
	producerRepo     producer.Repository
	logger           logger.Interface
}

func NewSubscribeUseCase(
	subscriptionRepo notification.SubscriptionRepository,
	producerRepo producer.Repository,
	log logger.Interface,
) *SubscribeUseCase {
	return &SubscribeUseCase{
		subscriptionRepo: subscriptionRepo,
		producerRepo:     producerRepo,
		logger:           log,
	}
}

func (uc *SubscribeUseCase) Execute(ctx context.Context, userID uint, producerSID string) error {
	if userID == 0 {
		return errors.NewUnauthorizedError("authentication required")
	}

	entity, err := uc.producerRepo.GetBySID(ctx, producerSID)
	if err != nil {
		return fmt.Errorf("failed to resolve producer: %w", err)
	}
	if entity == nil {
		return errors.NewNotFoundError("producer not found")
	}

	sid, err := id.GenerateWithPrefix(id.PrefixDropSubscription, id.DefaultLength)
	if err != nil {
		return fmt.Errorf("failed to generate subscription sid: %w", err)
	}

	err = uc.subscriptionRepo.Subscribe(ctx, &notification.DropSubscription{
		SID:        sid,
		UserID:     userID,
		ProducerID: entity.ID(),
		CreatedAt:  biztime.NowUTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to save subscription: %w", err)
	}

	uc.logger.Infow("drop subscription created", "user_id", userID, "producer_id", producerSID)
	return nil
}

// UnsubscribeUseCase removes a user's drop subscription for a producer.
type UnsubscribeUseCase struct {
	subscriptionRepo notification.SubscriptionRepository
	producerRepo     producer.Repository
	logger           logger.Interface
}

func NewUnsubscribeUseCase(
	subscriptionRepo notification.SubscriptionRepository,
	producerRepo producer.Repository,
	log logger.Interface,
) *UnsubscribeUseCase {
	return &UnsubscribeUseCase{
		subscriptionRepo: subscriptionRepo,
		producerRepo:     producerRepo,
		logger:           log,
	}
}

func (uc *UnsubscribeUseCase) Execute(ctx context.Context, userID uint, producerSID string) error {
	if userID == 0 {
		return errors.NewUnauthorizedError("authentication required")
	}

	entity, err := uc.producerRepo.GetBySID(ctx, producerSID)
	if err != nil {
		return fmt.Errorf("failed to resolve producer: %w", err)
	}
	if entity == nil {
		return errors.NewNotFoundError("producer not found")
	}

	if err := uc.subscriptionRepo.Unsubscribe(ctx, userID, entity.ID()); err != nil {
		return fmt.Errorf("failed to remove subscription: %w", err)
	}

	uc.logger.Infow("drop subscription removed", "user_id", userID, "producer_id", producerSID)
	return nil
}
