package middleware

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terplist/terplist/internal/domain/user"
	"github.com/terplist/terplist/internal/infrastructure/auth"
	"github.com/terplist/terplist/internal/shared/authorization"
	"github.com/terplist/terplist/internal/shared/logger"
)

func testLogger() logger.Interface {
	return logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

type stubUserRepo struct {
	user.Repository
	bySID map[string]*user.User
}

func (s *stubUserRepo) GetBySID(_ context.Context, sid string) (*user.User, error) {
	return s.bySID[sid], nil
}

func testUser(t *testing.T, sid string, role authorization.UserRole) *user.User {
	t.Helper()
	entity, err := user.ReconstructUser(42, sid, "test@example.com", "Test", "hash", role, time.Now(), time.Now())
	require.NoError(t, err)
	return entity
}

func newAuthRouter(t *testing.T, jwtService *auth.JWTService, repo user.Repository) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	m := NewAuthMiddleware(jwtService, repo, testLogger())
	router := gin.New()
	router.GET("/protected", m.RequireAuth(), func(c *gin.Context) {
		actor := ActorFromContext(c)
		c.JSON(http.StatusOK, gin.H{
			"user_id": actor.UserID,
			"role":    actor.Role.String(),
		})
	})
	return router
}

func get(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRequireAuthAcceptsValidToken(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", 15, 7)
	repo := &stubUserRepo{bySID: map[string]*user.User{
		"us_test00000001": testUser(t, "us_test00000001", authorization.RoleUser),
	}}
	router := newAuthRouter(t, jwtService, repo)

	pair, err := jwtService.Generate("us_test00000001", authorization.RoleUser, auth.GrantSnapshot{})
	require.NoError(t, err)

	rec := get(router, "Bearer "+pair.AccessToken)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"user_id":42`)
}

func TestRequireAuthRejectsMissingHeader(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", 15, 7)
	router := newAuthRouter(t, jwtService, &stubUserRepo{bySID: map[string]*user.User{}})

	rec := get(router, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthRejectsGarbageToken(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", 15, 7)
	router := newAuthRouter(t, jwtService, &stubUserRepo{bySID: map[string]*user.User{}})

	rec := get(router, "Bearer not-a-token")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// A refresh token must not open protected routes.
func TestRequireAuthRejectsRefreshToken(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", 15, 7)
	repo := &stubUserRepo{bySID: map[string]*user.User{
		"us_test00000001": testUser(t, "us_test00000001", authorization.RoleUser),
	}}
	router := newAuthRouter(t, jwtService, repo)

	pair, err := jwtService.Generate("us_test00000001", authorization.RoleUser, auth.GrantSnapshot{})
	require.NoError(t, err)

	rec := get(router, "Bearer "+pair.RefreshToken)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// A token for a deleted user verifies cryptographically but must not
// authenticate.
func TestRequireAuthRejectsUnknownUser(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", 15, 7)
	router := newAuthRouter(t, jwtService, &stubUserRepo{bySID: map[string]*user.User{}})

	pair, err := jwtService.Generate("us_gone00000001", authorization.RoleUser, auth.GrantSnapshot{})
	require.NoError(t, err)

	rec := get(router, "Bearer "+pair.AccessToken)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// The actor's role comes from the user row, not the token: a token minted
// before a promotion still yields the current role.
func TestActorRoleTracksUserRow(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", 15, 7)
	repo := &stubUserRepo{bySID: map[string]*user.User{
		"us_test00000001": testUser(t, "us_test00000001", authorization.RoleAdmin),
	}}
	router := newAuthRouter(t, jwtService, repo)

	pair, err := jwtService.Generate("us_test00000001", authorization.RoleUser, auth.GrantSnapshot{})
	require.NoError(t, err)

	rec := get(router, "Bearer "+pair.AccessToken)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"role":"admin"`)
}
