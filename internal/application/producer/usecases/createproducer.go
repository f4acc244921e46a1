package usecases

import (
	"context"
	"fmt"

	"github.com/terplist/terplist/internal/domain/access"
	"github.com/terplist/terplist/internal/domain/producer"
	"github.com/terplist/terplist/internal/domain/state"
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

// CreateProducerCommand creates a producer inside a state. Only actors with
// management rights over the state (or global admins) may create producers.
type CreateProducerCommand struct {
	Actor       *access.Actor
	Name        string
	Description string
	Category    string
	Market      string
	StateSlug   string
}

type CreateProducerResult struct {
	ID   string `json:"id"`
	Slug string `json:"slug"`
}

type CreateProducerUseCase struct {
	producerRepo producer.Repository
	stateRepo    state.Repository
	authorizer   ManageAuthorizer
	logger       logger.Interface
}

func NewCreateProducerUseCase(
	producerRepo producer.Repository,
	stateRepo state.Repository,
	authorizer ManageAuthorizer,
	log logger.Interface,
) *CreateProducerUseCase {
	return &CreateProducerUseCase{
		producerRepo: producerRepo,
		stateRepo:    stateRepo,
		authorizer:   authorizer,
		logger:       log,
	}
}

func (uc *CreateProducerUseCase) Execute(ctx context.Context, cmd CreateProducerCommand) (*CreateProducerResult, error) {
	st, err := uc.stateRepo.GetBySlug(ctx, cmd.StateSlug)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve state: %w", err)
	}
	if st == nil {
		return nil, errors.NewNotFoundError("state not found")
	}

	allowed, err := uc.authorizer.CanManage(ctx, cmd.Actor, access.Target{
		StateSID:  st.SID(),
		StateSlug: st.Slug(),
	})
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, errors.NewForbiddenError("forbidden")
	}

	category := producer.Category(cmd.Category)
	if !category.IsValid() {
		return nil, errors.NewValidationError("invalid category")
	}
	market := producer.Market(cmd.Market)
	if cmd.Market == "" {
		market = producer.MarketBoth
	}

	slug := utils.Slugify(cmd.Name)
	existing, err := uc.producerRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to check producer slug: %w", err)
	}
	if existing != nil {
		return nil, errors.NewConflictError("producer with this name already exists")
	}

	sid, err := id.GenerateWithPrefix(id.PrefixProducer, id.DefaultLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate producer sid: %w", err)
	}

	entity, err := producer.NewProducer(sid, cmd.Name, slug, category, market, st.ID())
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if cmd.Description != "" {
		entity.UpdateDetails(cmd.Name, cmd.Description)
	}

	if err := uc.producerRepo.Create(ctx, entity); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("producer with this name already exists")
		}
		return nil, fmt.Errorf("failed to save producer: %w", err)
	}

	uc.logger.Infow("producer created", "id", sid, "slug", slug, "state", st.Slug())

	return &CreateProducerResult{ID: sid, Slug: slug}, nil
}
