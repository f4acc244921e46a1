package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terplist/terplist/internal/shared/authorization"
)

func newTestJWTService() *JWTService {
	return NewJWTService("test-secret", 15, 7)
}

func TestGenerateAndVerifyRoundTrip(t *testing.T) {
	svc := newTestJWTService()

	grants := GrantSnapshot{
		ProducerSIDs: []string{"pd_abc", "pd_def"},
		StateSIDs:    []string{"st_co"},
		StateSlugs:   []string{"colorado"},
	}

	pair, err := svc.Generate("us_123", authorization.RoleUser, grants)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, int64(15*60), pair.ExpiresIn)

	claims, err := svc.Verify(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "us_123", claims.UserSID)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.Equal(t, []string{"pd_abc", "pd_def"}, claims.ProducerIDs)
	assert.Equal(t, []string{"st_co"}, claims.StateIDs)
	assert.Equal(t, []string{"colorado"}, claims.StateSlugs)

	refreshClaims, err := svc.Verify(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, refreshClaims.TokenType)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	pair, err := newTestJWTService().Generate("us_123", authorization.RoleUser, GrantSnapshot{})
	require.NoError(t, err)

	other := NewJWTService("different-secret", 15, 7)
	_, err = other.Verify(pair.AccessToken)
	assert.Error(t, err)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	_, err := newTestJWTService().Verify("not-a-token")
	assert.Error(t, err)
}

func TestAccessClaimsConversion(t *testing.T) {
	claims := &Claims{
		Role:        "admin",
		ProducerIDs: []string{"pd_abc"},
		StateIDs:    []string{"st_co"},
		StateSlugs:  []string{"colorado"},
	}

	ac := claims.AccessClaims()
	assert.True(t, ac.IsAdmin())
	assert.True(t, ac.AllowsProducer("pd_abc"))
	assert.True(t, ac.AllowsState("st_co", ""))
	assert.True(t, ac.AllowsState("", "colorado"))
	assert.False(t, ac.AllowsState("st_mi", "michigan"))
}

func TestEmptyGrantSnapshotYieldsEmptyClaims(t *testing.T) {
	svc := newTestJWTService()

	pair, err := svc.Generate("us_123", authorization.RoleUser, GrantSnapshot{})
	require.NoError(t, err)

	claims, err := svc.Verify(pair.AccessToken)
	require.NoError(t, err)

	ac := claims.AccessClaims()
	assert.False(t, ac.IsAdmin())
	assert.False(t, ac.AllowsProducer("pd_any"))
	assert.False(t, ac.AllowsState("st_any", "anywhere"))
}
