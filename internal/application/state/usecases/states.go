// Package usecases contains the state application use cases.
package usecases

import (
	"context"
	"fmt"

	"github.com/terplist/terplist/internal/domain/access"
	"github.com/terplist/terplist/internal/domain/grant"
	"github.com/terplist/terplist/internal/domain/state"
	"github.com/terplist/terplist/internal/shared/errors"
	"github.com/terplist/terplist/internal/shared/id"
	"github.com/terplist/terplist/internal/shared/logger"
	"github.com/terplist/terplist/internal/shared/utils"
)

// StateView is one state partition in external form.
type StateView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// CreateStateUseCase opens a new state partition. Global admins only.
type CreateStateUseCase struct {
	stateRepo state.Repository
	grantRepo grant.Repository
	logger    logger.Interface
}

func NewCreateStateUseCase(stateRepo state.Repository, grantRepo grant.Repository, log logger.Interface) *CreateStateUseCase {
	return &CreateStateUseCase{stateRepo: stateRepo, grantRepo: grantRepo, logger: log}
}

func (uc *CreateStateUseCase) Execute(ctx context.Context, actor *access.Actor, name string) (*StateView, error) {
	if !actor.IsAuthenticated() {
		return nil, errors.NewUnauthorizedError("authentication required")
	}
	if !actor.Claims.IsAdmin() && !actor.Role.IsAdmin() {
		isAdmin, err := uc.grantRepo.IsGlobalAdmin(ctx, actor.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to check admin role: %w", err)
		}
		if !isAdmin {
			return nil, errors.NewForbiddenError("forbidden")
		}
	}

	slug := utils.Slugify(name)
	existing, err := uc.stateRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to check state slug: %w", err)
	}
	if existing != nil {
		return nil, errors.NewConflictError("state already exists")
	}

	sid, err := id.GenerateWithPrefix(id.PrefixState, id.DefaultLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate state sid: %w", err)
	}

	entity, err := state.NewState(sid, name, slug)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.stateRepo.Create(ctx, entity); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("state already exists")
		}
		return nil, fmt.Errorf("failed to save state: %w", err)
	}

	uc.logger.Infow("state created", "id", sid, "slug", slug)

	return &StateView{ID: sid, Name: name, Slug: slug}, nil
}

// ListStatesUseCase lists all state partitions.
type ListStatesUseCase struct {
	stateRepo state.Repository
	logger    logger.Interface
}

func NewListStatesUseCase(stateRepo state.Repository, log logger.Interface) *ListStatesUseCase {
	return &ListStatesUseCase{stateRepo: stateRepo, logger: log}
}

func (uc *ListStatesUseCase) Execute(ctx context.Context) ([]StateView, error) {
	states, err := uc.stateRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list states: %w", err)
	}

	views := make([]StateView, 0, len(states))
	for _, st := range states {
		views = append(views, StateView{ID: st.SID(), Name: st.Name(), Slug: st.Slug()})
	}
	return views, nil
}
