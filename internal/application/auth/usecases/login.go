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

type LoginCommand struct {
	Email    string
	Password string
}

type LoginUseCase struct {
	userRepo  user.Repository
	grantRepo grant.Repository
	hasher    PasswordHasher
	tokens    TokenIssuer
	logger    logger.Interface
}

func NewLoginUseCase(
	userRepo user.Repository,
	grantRepo grant.Repository,
	hasher PasswordHasher,
	tokens TokenIssuer,
	log logger.Interface,
) *LoginUseCase {
	return &LoginUseCase{
		userRepo:  userRepo,
		grantRepo: grantRepo,
		hasher:    hasher,
		tokens:    tokens,
		logger:    log,
	}
}

func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*AuthResult, error) {
	entity, err := uc.userRepo.GetByEmail(ctx, cmd.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	// Same error for unknown email and wrong password; never reveal which.
	if entity == nil || !uc.hasher.Compare(entity.PasswordHash(), cmd.Password) {
		return nil, errors.NewUnauthorizedError("invalid email or password")
	}

	snapshot, err := uc.grantSnapshot(ctx, entity.ID())
	if err != nil {
		return nil, err
	}

	pair, err := uc.tokens.Generate(entity.SID(), entity.Role(), snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	uc.logger.Infow("user logged in", "id", entity.SID())

	return &AuthResult{
		UserID:       entity.SID(),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	}, nil
}

// grantSnapshot loads the user's grant rows in external identifier form for
// embedding into the token claims.
func (uc *LoginUseCase) grantSnapshot(ctx context.Context, userID uint) (auth.GrantSnapshot, error) {
	grants, err := uc.grantRepo.ListForUser(ctx, userID)
	if err != nil {
		return auth.GrantSnapshot{}, fmt.Errorf("failed to load grants: %w", err)
	}
	return auth.GrantSnapshot{
		ProducerSIDs: grants.ProducerSIDs,
		StateSIDs:    grants.StateSIDs,
		StateSlugs:   grants.StateSlugs,
	}, nil
}
