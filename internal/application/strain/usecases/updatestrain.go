package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/terplist/terplist/internal/domain/access"
	"github.com/terplist/terplist/internal/domain/producer"
	"github.com/terplist/terplist/internal/domain/strain"
	"github.com/terplist/terplist/internal/shared/errors"
	"github.com/terplist/terplist/internal/shared/logger"
)

// UpdateStrainCommand updates a strain. SetDropAt distinguishes "leave the
// drop date alone" (false) from "set it to DropAt, possibly nil" (true).
type UpdateStrainCommand struct {
	Actor       *access.Actor
	StrainSID   string
	Name        string
	Description string
	Terpenes    []string
	DropAt      *time.Time
	SetDropAt   bool
}

type UpdateStrainUseCase struct {
	strainRepo   strain.Repository
	producerRepo producer.Repository
	authorizer   ManageAuthorizer
	notifier     DropChangeNotifier
	logger       logger.Interface
}

func NewUpdateStrainUseCase(
	strainRepo strain.Repository,
	producerRepo producer.Repository,
	authorizer ManageAuthorizer,
	notifier DropChangeNotifier,
	log logger.Interface,
) *UpdateStrainUseCase {
	return &UpdateStrainUseCase{
		strainRepo:   strainRepo,
		producerRepo: producerRepo,
		authorizer:   authorizer,
		notifier:     notifier,
		logger:       log,
	}
}

func (uc *UpdateStrainUseCase) Execute(ctx context.Context, cmd UpdateStrainCommand) error {
	entity, err := uc.strainRepo.GetBySID(ctx, cmd.StrainSID)
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

	allowed, err := uc.authorizer.CanManage(ctx, cmd.Actor, access.Target{ProducerSID: owner.SID()})
	if err != nil {
		return err
	}
	if !allowed {
		return errors.NewForbiddenError("forbidden")
	}

	entity.UpdateDetails(cmd.Name, cmd.Description, cmd.Terpenes)

	dropChanged := false
	if cmd.SetDropAt {
		dropChanged = entity.ScheduleDrop(cmd.DropAt)
	}

	if err := uc.strainRepo.Update(ctx, entity); err != nil {
		return fmt.Errorf("failed to update strain: %w", err)
	}

	uc.logger.Infow("strain updated",
		"id", cmd.StrainSID, "drop_changed", dropChanged)

	// Fan-out only fires when the drop date actually changed; saving the
	// same date twice stays silent.
	if dropChanged && uc.notifier != nil {
		uc.notifier.NotifyDropChanged(owner.ID(), entity.Name(), entity.DropAt())
	}

	return nil
}
