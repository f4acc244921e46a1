// Package usecases contains the auth application use cases: registration,
// login and token refresh. Token issuance is where grant rows are snapshotted
// into claims; the embedded claims stay frozen until the next issuance.
package usecases

import (
	"context"
	"fmt"

	"github.com/terplist/terplist/internal/domain/grant"
	"github.com/terplist/terplist/internal/domain/user"
	"github.com/terplist/terplist/internal/infrastructure/auth"
	"github.com/terplist/terplist/internal/shared/authorization"
	"github.com/terplist/terplist/internal/shared/errors"
	"github.com/terplist/terplist/internal/shared/id"
	"github.com/terplist/terplist/internal/shared/logger"
)

// TokenIssuer issues and verifies token pairs. Implemented by the JWT service.
type TokenIssuer interface {
	Generate(userSID string, role authorization.UserRole, grants auth.GrantSnapshot) (*auth.TokenPair, error)
	Verify(tokenString string) (*auth.Claims, error)
}

// PasswordHasher hashes and compares passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

type RegisterCommand struct {
	Email    string
	Name     string
	Password string
}

// AuthResult is the token pair returned by register, login and refresh.
type AuthResult struct {
	UserID       string `json:"user_id"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type RegisterUseCase struct {
	userRepo  user.Repository
	grantRepo grant.Repository
	hasher    PasswordHasher
	tokens    TokenIssuer
	logger    logger.Interface
}

func NewRegisterUseCase(
	userRepo user.Repository,
	grantRepo grant.Repository,
	hasher PasswordHasher,
	tokens TokenIssuer,
	log logger.Interface,
) *RegisterUseCase {
	return &RegisterUseCase{
		userRepo:  userRepo,
		grantRepo: grantRepo,
		hasher:    hasher,
		tokens:    tokens,
		logger:    log,
	}
}

func (uc *RegisterUseCase) Execute(ctx context.Context, cmd RegisterCommand) (*AuthResult, error) {
	if len(cmd.Password) < 8 {
		return nil, errors.NewValidationError("password must be at least 8 characters")
	}

	exists, err := uc.userRepo.ExistsByEmail(ctx, cmd.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if exists {
		return nil, errors.NewConflictError("user with this email already exists")
	}

	passwordHash, err := uc.hasher.Hash(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	sid, err := id.GenerateWithPrefix(id.PrefixUser, id.DefaultLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate user sid: %w", err)
	}

	entity, err := user.NewUser(sid, cmd.Email, cmd.Name, passwordHash)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.userRepo.Create(ctx, entity); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("user with this email already exists")
		}
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	// New users hold no grants; the snapshot is empty by construction.
	pair, err := uc.tokens.Generate(entity.SID(), entity.Role(), auth.GrantSnapshot{})
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	uc.logger.Infow("user registered", "id", entity.SID(), "email", entity.Email())

	return &AuthResult{
		UserID:       entity.SID(),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	}, nil
}
