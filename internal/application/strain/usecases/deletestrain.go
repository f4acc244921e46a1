package usecases

import (
	"context"
	"fmt"

	"github.com/terplist/terplist/internal/domain/access"
	"github.com/terplist/terplist/internal/domain/producer"
	"github.com/terplist/terplist/internal/domain/strain"
	"github.com/terplist/terplist/internal/shared/errors"
	"github.com/terplist/terplist/internal/shared/logger"
)

type DeleteStrainUseCase struct {
	strainRepo   strain.Repository
	producerRepo producer.Repository
	authorizer   ManageAuthorizer
	logger       logger.Interface
}

func NewDeleteStrainUseCase(
	strainRepo strain.Repository,
	producerRepo producer.Repository,
	authorizer ManageAuthorizer,
	log logger.Interface,
) *DeleteStrainUseCase {
	return &DeleteStrainUseCase{
		strainRepo:   strainRepo,
		producerRepo: producerRepo,
		authorizer:   authorizer,
		logger:       log,
	}
}

func (uc *DeleteStrainUseCase) Execute(ctx context.Context, actor *access.Actor, strainSID string) error {
	entity, err := uc.strainRepo.GetBySID(ctx, strainSID)
	if err != nil {
		return fmt.Errorf("failed to get strain: %w", err)
	}
	if entity == nil {
		return errors.NewNotFoundError("strain not found")
	}

	owner, err := uc.producerRepo.GetByID(ctx, entity.ProducerID())
	if err != nil {
		return fmt.Errorf("failed to get producer: %w", err)
	}
	if owner == nil {
		return errors.NewNotFoundError("producer not found")
	}

	allowed, err := uc.authorizer.CanManage(ctx, actor, access.Target{ProducerSID: owner.SID()})
	if err != nil {
		return err
	}
	if !allowed {
		return errors.NewForbiddenError("forbidden")
	}

	if err := uc.strainRepo.Delete(ctx, entity.ID()); err != nil {
		return fmt.Errorf("failed to delete strain: %w", err)
	}

	uc.logger.Infow("strain deleted", "id", strainSID)
	return nil
}
