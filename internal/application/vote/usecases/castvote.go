// Package usecases contains the vote application use cases.
package usecases

import (
	"context"
	"fmt"

	"github.com/terplist/terplist/internal/domain/producer"
	"github.com/terplist/terplist/internal/domain/state"
	"github.com/terplist/terplist/internal/domain/vote"
	"github.com/terplist/terplist/internal/shared/errors"
	"github.com/terplist/terplist/internal/shared/logger"
)

// Transactor runs a function inside a storage transaction.
type Transactor interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// CastVoteCommand carries one vote cast. StateSlug is optional; when supplied
// it must match the producer's actual state.
type CastVoteCommand struct {
	UserID      uint
	ProducerSID string
	Value       int
	StateSlug   string
}

// CastVoteResult is the stored vote in external form.
type CastVoteResult struct {
	ProducerSID string `json:"producer_id"`
	Value       int    `json:"value"`
}

// CastVoteUseCase records or replaces a user's vote for a producer. The
// producer's state is denormalized onto the vote row at write time; the vote
// value is validated before any storage access.
type CastVoteUseCase struct {
	producerRepo producer.Repository
	stateRepo    state.Repository
	voteRepo     vote.Repository
	txManager    Transactor
	logger       logger.Interface
}

func NewCastVoteUseCase(
	producerRepo producer.Repository,
	stateRepo state.Repository,
	voteRepo vote.Repository,
	txManager Transactor,
	log logger.Interface,
) *CastVoteUseCase {
	return &CastVoteUseCase{
		producerRepo: producerRepo,
		stateRepo:    stateRepo,
		voteRepo:     voteRepo,
		txManager:    txManager,
		logger:       log,
	}
}

func (uc *CastVoteUseCase) Execute(ctx context.Context, cmd CastVoteCommand) (*CastVoteResult, error) {
	if cmd.UserID == 0 {
		return nil, errors.NewUnauthorizedError("authentication required")
	}
	if err := vote.ValidateValue(cmd.Value); err != nil {
		return nil, err
	}

	entity, err := uc.producerRepo.GetBySID(ctx, cmd.ProducerSID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve producer: %w", err)
	}
	if entity == nil {
		return nil, errors.NewNotFoundError("producer not found")
	}

	// A caller-supplied state slug that disagrees with the producer's actual
	// state means the client is operating on stale data; reject rather than
	// silently recording under the producer's state.
	if cmd.StateSlug != "" {
		producerState, err := uc.stateRepo.GetByID(ctx, entity.StateID())
		if err != nil {
			return nil, fmt.Errorf("failed to resolve producer state: %w", err)
		}
		if producerState == nil || producerState.Slug() != cmd.StateSlug {
			return nil, errors.NewValidationError("state does not match producer's state")
		}
	}

	v, err := vote.NewVote(cmd.UserID, entity.ID(), cmd.Value, entity.StateID())
	if err != nil {
		return nil, err
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		return uc.voteRepo.Upsert(txCtx, v)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store vote: %w", err)
	}

	uc.logger.Infow("vote cast",
		"user_id", cmd.UserID, "producer_id", cmd.ProducerSID, "value", cmd.Value)

	return &CastVoteResult{ProducerSID: cmd.ProducerSID, Value: cmd.Value}, nil
}
