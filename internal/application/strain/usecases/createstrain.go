// Package usecases contains the strain application use cases. All writes are
// guarded by the access resolver: only actors who may manage the owning
// producer may touch its strains.
package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/terplist/terplist/internal/domain/access"
	"github.com/terplist/terplist/internal/domain/producer"
	"github.com/terplist/terplist/internal/domain/strain"
	"github.com/terplist/terplist/internal/shared/errors"
	"github.com/terplist/terplist/internal/shared/id"
	"github.com/terplist/terplist/internal/shared/logger"
	"github.com/terplist/terplist/internal/shared/utils"
)

// ManageAuthorizer decides whether an actor may manage a target. Implemented
// by the access resolver.
type ManageAuthorizer interface {
	CanManage(ctx context.Context, actor *access.Actor, target access.Target) (bool, error)
}

// DropChangeNotifier fans out drop-date change notifications. Implementations
// must not block the caller on delivery.
type DropChangeNotifier interface {
	NotifyDropChanged(producerID uint, strainName string, dropAt *time.Time)
}

type CreateStrainCommand struct {
	Actor       *access.Actor
	ProducerSID string
	Name        string
	Description string
	Terpenes    []string
	DropAt      *time.Time
}

type CreateStrainResult struct {
	ID   string `json:"id"`
	Slug string `json:"slug"`
}

type CreateStrainUseCase struct {
	strainRepo   strain.Repository
	producerRepo producer.Repository
	authorizer   ManageAuthorizer
	notifier     DropChangeNotifier
	logger       logger.Interface
}

func NewCreateStrainUseCase(
	strainRepo strain.Repository,
	producerRepo producer.Repository,
	authorizer ManageAuthorizer,
	notifier DropChangeNotifier,
	log logger.Interface,
) *CreateStrainUseCase {
	return &CreateStrainUseCase{
		strainRepo:   strainRepo,
		producerRepo: producerRepo,
		authorizer:   authorizer,
		notifier:     notifier,
		logger:       log,
	}
}

func (uc *CreateStrainUseCase) Execute(ctx context.Context, cmd CreateStrainCommand) (*CreateStrainResult, error) {
	allowed, err := uc.authorizer.CanManage(ctx, cmd.Actor, access.Target{ProducerSID: cmd.ProducerSID})
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, errors.NewForbiddenError("forbidden")
	}

	owner, err := uc.producerRepo.GetBySID(ctx, cmd.ProducerSID)
	if err != nil {
		return nil, fmt.Errorf("failed to get producer: %w", err)
	}
	if owner == nil {
		return nil, errors.NewNotFoundError("producer not found")
	}

	sid, err := id.GenerateWithPrefix(id.PrefixStrain, id.DefaultLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate strain sid: %w", err)
	}

	slug := utils.Slugify(cmd.Name)
	entity, err := strain.NewStrain(sid, owner.ID(), cmd.Name, slug, cmd.Description, cmd.Terpenes)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	dropScheduled := false
	if cmd.DropAt != nil {
		dropScheduled = entity.ScheduleDrop(cmd.DropAt)
	}

	if err := uc.strainRepo.Create(ctx, entity); err != nil {
		return nil, fmt.Errorf("failed to save strain: %w", err)
	}

	uc.logger.Infow("strain created", "id", sid, "producer_id", cmd.ProducerSID)

	if dropScheduled && uc.notifier != nil {
		uc.notifier.NotifyDropChanged(owner.ID(), entity.Name(), entity.DropAt())
	}

	return &CreateStrainResult{ID: sid, Slug: slug}, nil
}
