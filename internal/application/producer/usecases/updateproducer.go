package usecases

import (
	"context"
	"fmt"

	"github.com/terplist/terplist/internal/domain/access"
	"github.com/terplist/terplist/internal/domain/producer"
	"github.com/terplist/terplist/internal/shared/errors"
	"github.com/terplist/terplist/internal/shared/logger"
)

// UpdateProducerCommand updates a producer's mutable fields. Empty Name keeps
// the current name; Market is applied only when non-empty.
type UpdateProducerCommand struct {
	Actor       *access.Actor
	ProducerSID string
	Name        string
	Description string
	Market      string
}

type UpdateProducerUseCase struct {
	producerRepo producer.Repository
	authorizer   ManageAuthorizer
	logger       logger.Interface
}

func NewUpdateProducerUseCase(
	producerRepo producer.Repository,
	authorizer ManageAuthorizer,
	log logger.Interface,
) *UpdateProducerUseCase {
	return &UpdateProducerUseCase{
		producerRepo: producerRepo,
		authorizer:   authorizer,
		logger:       log,
	}
}

func (uc *UpdateProducerUseCase) Execute(ctx context.Context, cmd UpdateProducerCommand) error {
	allowed, err := uc.authorizer.CanManage(ctx, cmd.Actor, access.Target{ProducerSID: cmd.ProducerSID})
	if err != nil {
		// The resolver reports a missing producer as not found; everything
		// else is a storage failure.
		return err
	}
	if !allowed {
		return errors.NewForbiddenError("forbidden")
	}

	entity, err := uc.producerRepo.GetBySID(ctx, cmd.ProducerSID)
	if err != nil {
		return fmt.Errorf("failed to get producer: %w", err)
	}
	if entity == nil {
		return errors.NewNotFoundError("producer not found")
	}

	entity.UpdateDetails(cmd.Name, cmd.Description)
	if cmd.Market != "" {
		if err := entity.ChangeMarket(producer.Market(cmd.Market)); err != nil {
			return errors.NewValidationError(err.Error())
		}
	}

	if err := uc.producerRepo.Update(ctx, entity); err != nil {
		return fmt.Errorf("failed to update producer: %w", err)
	}

	uc.logger.Infow("producer updated", "id", cmd.ProducerSID)
	return nil
}
