package usecases

import (
	"context"
	"fmt"

	"github.com/terplist/terplist/internal/domain/grant"
	"github.com/terplist/terplist/internal/domain/user"
	"github.com/terplist/terplist/internal/infrastructure/auth"
	"github.com/terplist/terplist/internal/shared/errors"
	"github.com/terplist/terplist/internal/shared/logger"
)

type RefreshUseCase struct {
	userRepo  user.Repository
	grantRepo grant.Repository
	tokens    TokenIssuer
	logger    logger.Interface
}

func NewRefreshUseCase(
	userRepo user.Repository,
	grantRepo grant.Repository,
	tokens TokenIssuer,
	log logger.Interface,
) *RefreshUseCase {
	return &RefreshUseCase{
		userRepo:  userRepo,
		grantRepo: grantRepo,
		tokens:    tokens,
		logger:    log,
	}
}

// Execute exchanges a refresh token for a fresh pair. The grant snapshot is
// reloaded from the rows, so a refresh picks up grants added or revoked since
// the last issuance.
func (uc *RefreshUseCase) Execute(ctx context.Context, refreshToken string) (*AuthResult, error) {
	claims, err := uc.tokens.Verify(refreshToken)
	if err != nil {
		return nil, errors.NewUnauthorizedError("invalid refresh token")
	}
	if claims.TokenType != auth.TokenTypeRefresh {
		return nil, errors.NewUnauthorizedError("invalid refresh token")
	}

	entity, err := uc.userRepo.GetBySID(ctx, claims.UserSID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if entity == nil {
		return nil, errors.NewUnauthorizedError("invalid refresh token")
	}

	grants, err := uc.grantRepo.ListForUser(ctx, entity.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to load grants: %w", err)
	}

	pair, err := uc.tokens.Generate(entity.SID(), entity.Role(), auth.GrantSnapshot{
		ProducerSIDs: grants.ProducerSIDs,
		StateSIDs:    grants.StateSIDs,
		StateSlugs:   grants.StateSlugs,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	uc.logger.Infow("tokens refreshed", "id", entity.SID())

	return &AuthResult{
		UserID:       entity.SID(),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	}, nil
}
