// Package usecases contains grant administration. Only global admins may
// assign or revoke management rights; the grant rows are the source of truth
// the token claims are snapshotted from.
package usecases

import (
	"context"
	"fmt"

	"github.com/terplist/terplist/internal/domain/access"
	"github.com/terplist/terplist/internal/domain/grant"
	"github.com/terplist/terplist/internal/domain/producer"
	"github.com/terplist/terplist/internal/domain/state"
	"github.com/terplist/terplist/internal/domain/user"
	"github.com/terplist/terplist/internal/shared/biztime"
	"github.com/terplist/terplist/internal/shared/errors"
	"github.com/terplist/terplist/internal/shared/id"
	"github.com/terplist/terplist/internal/shared/logger"
)

// ManageGrantsUseCase assigns and revokes producer and state grants.
type ManageGrantsUseCase struct {
	grantRepo    grant.Repository
	userRepo     user.Repository
	producerRepo producer.Repository
	stateRepo    state.Repository
	logger       logger.Interface
}

func NewManageGrantsUseCase(
	grantRepo grant.Repository,
	userRepo user.Repository,
	producerRepo producer.Repository,
	stateRepo state.Repository,
	log logger.Interface,
) *ManageGrantsUseCase {
	return &ManageGrantsUseCase{
		grantRepo:    grantRepo,
		userRepo:     userRepo,
		producerRepo: producerRepo,
		stateRepo:    stateRepo,
		logger:       log,
	}
}

// requireGlobalAdmin allows claims-admins through directly and otherwise
// checks the relational role, mirroring the access resolver's admin path.
func (uc *ManageGrantsUseCase) requireGlobalAdmin(ctx context.Context, actor *access.Actor) error {
	if !actor.IsAuthenticated() {
		return errors.NewUnauthorizedError("authentication required")
	}
	if actor.Claims.IsAdmin() || actor.Role.IsAdmin() {
		return nil
	}
	isAdmin, err := uc.grantRepo.IsGlobalAdmin(ctx, actor.UserID)
	if err != nil {
		return fmt.Errorf("failed to check admin role: %w", err)
	}
	if !isAdmin {
		return errors.NewForbiddenError("forbidden")
	}
	return nil
}

func (uc *ManageGrantsUseCase) resolveUser(ctx context.Context, userSID string) (*user.User, error) {
	entity, err := uc.userRepo.GetBySID(ctx, userSID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if entity == nil {
		return nil, errors.NewNotFoundError("user not found")
	}
	return entity, nil
}

// GrantProducerAdmin gives a user management rights over one producer.
func (uc *ManageGrantsUseCase) GrantProducerAdmin(ctx context.Context, actor *access.Actor, userSID, producerSID string) error {
	if err := uc.requireGlobalAdmin(ctx, actor); err != nil {
		return err
	}

	target, err := uc.resolveUser(ctx, userSID)
	if err != nil {
		return err
	}

	p, err := uc.producerRepo.GetBySID(ctx, producerSID)
	if err != nil {
		return fmt.Errorf("failed to get producer: %w", err)
	}
	if p == nil {
		return errors.NewNotFoundError("producer not found")
	}

	sid, err := id.GenerateWithPrefix(id.PrefixProducerAdmin, id.DefaultLength)
	if err != nil {
		return fmt.Errorf("failed to generate grant sid: %w", err)
	}

	err = uc.grantRepo.CreateProducerGrant(ctx, &grant.ProducerGrant{
		SID:        sid,
		UserID:     target.ID(),
		ProducerID: p.ID(),
		CreatedAt:  biztime.NowUTC(),
	})
	if err != nil {
		if errors.IsDuplicateError(err) {
			return errors.NewConflictError("grant already exists")
		}
		return fmt.Errorf("failed to create grant: %w", err)
	}

	uc.logger.Infow("producer grant created", "user_id", userSID, "producer_id", producerSID)
	return nil
}

// RevokeProducerAdmin removes a user's producer grant. Existing tokens keep
// the stale claim until expiry; state-changing checks that matter re-verify
// relationally.
func (uc *ManageGrantsUseCase) RevokeProducerAdmin(ctx context.Context, actor *access.Actor, userSID, producerSID string) error {
	if err := uc.requireGlobalAdmin(ctx, actor); err != nil {
		return err
	}

	target, err := uc.resolveUser(ctx, userSID)
	if err != nil {
		return err
	}

	p, err := uc.producerRepo.GetBySID(ctx, producerSID)
	if err != nil {
		return fmt.Errorf("failed to get producer: %w", err)
	}
	if p == nil {
		return errors.NewNotFoundError("producer not found")
	}

	if err := uc.grantRepo.DeleteProducerGrant(ctx, target.ID(), p.ID()); err != nil {
		return fmt.Errorf("failed to delete grant: %w", err)
	}

	uc.logger.Infow("producer grant revoked", "user_id", userSID, "producer_id", producerSID)
	return nil
}

// GrantStateAdmin gives a user management rights over one state and every
// producer in it.
func (uc *ManageGrantsUseCase) GrantStateAdmin(ctx context.Context, actor *access.Actor, userSID, stateSID string) error {
	if err := uc.requireGlobalAdmin(ctx, actor); err != nil {
		return err
	}

	target, err := uc.resolveUser(ctx, userSID)
	if err != nil {
		return err
	}

	st, err := uc.stateRepo.GetBySID(ctx, stateSID)
	if err != nil {
		return fmt.Errorf("failed to get state: %w", err)
	}
	if st == nil {
		return errors.NewNotFoundError("state not found")
	}

	sid, err := id.GenerateWithPrefix(id.PrefixStateAdmin, id.DefaultLength)
	if err != nil {
		return fmt.Errorf("failed to generate grant sid: %w", err)
	}

	err = uc.grantRepo.CreateStateGrant(ctx, &grant.StateGrant{
		SID:       sid,
		UserID:    target.ID(),
		StateID:   st.ID(),
		CreatedAt: biztime.NowUTC(),
	})
	if err != nil {
		if errors.IsDuplicateError(err) {
			return errors.NewConflictError("grant already exists")
		}
		return fmt.Errorf("failed to create grant: %w", err)
	}

	uc.logger.Infow("state grant created", "user_id", userSID, "state_id", stateSID)
	return nil
}

// RevokeStateAdmin removes a user's state grant.
func (uc *ManageGrantsUseCase) RevokeStateAdmin(ctx context.Context, actor *access.Actor, userSID, stateSID string) error {
	if err := uc.requireGlobalAdmin(ctx, actor); err != nil {
		return err
	}

	target, err := uc.resolveUser(ctx, userSID)
	if err != nil {
		return err
	}

	st, err := uc.stateRepo.GetBySID(ctx, stateSID)
	if err != nil {
		return fmt.Errorf("failed to get state: %w", err)
	}
	if st == nil {
		return errors.NewNotFoundError("state not found")
	}

	if err := uc.grantRepo.DeleteStateGrant(ctx, target.ID(), st.ID()); err != nil {
		return fmt.Errorf("failed to delete grant: %w", err)
	}

	uc.logger.Infow("state grant revoked", "user_id", userSID, "state_id", stateSID)
	return nil
}
