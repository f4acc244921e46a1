package usecases

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terplist/terplist/internal/domain/grant"
	"github.com/terplist/terplist/internal/domain/user"
	"github.com/terplist/terplist/internal/infrastructure/auth"
	"github.com/terplist/terplist/internal/shared/authorization"
	"github.com/terplist/terplist/internal/shared/errors"
	"github.com/terplist/terplist/internal/shared/logger"
)

func testLogger() logger.Interface {
	return logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

type stubUserRepo struct {
	user.Repository
	byEmail map[string]*user.User
}

func (s *stubUserRepo) GetByEmail(_ context.Context, email string) (*user.User, error) {
	return s.byEmail[email], nil
}

type stubGrantRepo struct {
	grant.Repository
	grants *grant.UserGrants
}

func (s *stubGrantRepo) ListForUser(_ context.Context, _ uint) (*grant.UserGrants, error) {
	if s.grants == nil {
		return &grant.UserGrants{}, nil
	}
	return s.grants, nil
}

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }
func (plainHasher) Compare(hash, password string) bool   { return hash == "hashed:"+password }

type recordingIssuer struct {
	lastSnapshot auth.GrantSnapshot
}

func (i *recordingIssuer) Generate(_ string, _ authorization.UserRole, grants auth.GrantSnapshot) (*auth.TokenPair, error) {
	i.lastSnapshot = grants
	return &auth.TokenPair{AccessToken: "access", RefreshToken: "refresh", ExpiresIn: 900}, nil
}

func (i *recordingIssuer) Verify(_ string) (*auth.Claims, error) {
	return nil, errors.NewUnauthorizedError("not implemented")
}

func loginFixture(t *testing.T) *stubUserRepo {
	t.Helper()
	now := time.Now()
	u, err := user.ReconstructUser(5, "us_abc", "grower@example.com", "Grower", "hashed:hunter22",
		authorization.RoleUser, now, now)
	require.NoError(t, err)
	return &stubUserRepo{byEmail: map[string]*user.User{"grower@example.com": u}}
}

func TestLoginEmbedsGrantSnapshot(t *testing.T) {
	users := loginFixture(t)
	grants := &stubGrantRepo{grants: &grant.UserGrants{
		ProducerSIDs: []string{"pd_abc"},
		StateSIDs:    []string{"st_co"},
		StateSlugs:   []string{"colorado"},
	}}
	issuer := &recordingIssuer{}
	uc := NewLoginUseCase(users, grants, plainHasher{}, issuer, testLogger())

	result, err := uc.Execute(context.Background(), LoginCommand{
		Email: "grower@example.com", Password: "hunter22",
	})
	require.NoError(t, err)
	assert.Equal(t, "us_abc", result.UserID)
	assert.Equal(t, []string{"pd_abc"}, issuer.lastSnapshot.ProducerSIDs)
	assert.Equal(t, []string{"st_co"}, issuer.lastSnapshot.StateSIDs)
	assert.Equal(t, []string{"colorado"}, issuer.lastSnapshot.StateSlugs)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	uc := NewLoginUseCase(loginFixture(t), &stubGrantRepo{}, plainHasher{}, &recordingIssuer{}, testLogger())

	_, err := uc.Execute(context.Background(), LoginCommand{
		Email: "grower@example.com", Password: "wrong",
	})
	require.Error(t, err)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeUnauthorized, appErr.Type)
}

func TestLoginUnknownEmailGetsSameError(t *testing.T) {
	uc := NewLoginUseCase(loginFixture(t), &stubGrantRepo{}, plainHasher{}, &recordingIssuer{}, testLogger())

	_, wrongPassErr := uc.Execute(context.Background(), LoginCommand{
		Email: "grower@example.com", Password: "wrong",
	})
	_, unknownErr := uc.Execute(context.Background(), LoginCommand{
		Email: "nobody@example.com", Password: "hunter22",
	})
	require.Error(t, wrongPassErr)
	require.Error(t, unknownErr)
	assert.Equal(t, wrongPassErr.Error(), unknownErr.Error(),
		"unknown email and wrong password must be indistinguishable")
}
