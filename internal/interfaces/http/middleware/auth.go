package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/terplist/terplist/internal/domain/access"
	"github.com/terplist/terplist/internal/domain/user"
	"github.com/terplist/terplist/internal/infrastructure/auth"
	"github.com/terplist/terplist/internal/shared/authorization"
	"github.com/terplist/terplist/internal/shared/constants"
	"github.com/terplist/terplist/internal/shared/logger"
	"github.com/terplist/terplist/internal/shared/utils"
)

// AuthMiddleware verifies bearer tokens and loads the acting user into the
// request context. The token's claim snapshot becomes the actor's fast-path
// claims; the relational role rides along so a stale token cannot deny what
// the rows grant.
type AuthMiddleware struct {
	jwtService *auth.JWTService
	userRepo   user.Repository
	logger     logger.Interface
}

func NewAuthMiddleware(jwtService *auth.JWTService, userRepo user.Repository, log logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		userRepo:   userRepo,
		logger:     log,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		if !m.authenticate(c, token) {
			c.Abort()
			return
		}

		c.Next()
	}
}

// OptionalAuth loads the actor when a valid token is present and continues
// anonymously otherwise.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			claims, err := m.jwtService.Verify(token)
			if err == nil && claims.TokenType == auth.TokenTypeAccess {
				m.setActor(c, claims)
			}
		}
		c.Next()
	}
}

func (m *AuthMiddleware) authenticate(c *gin.Context, token string) bool {
	claims, err := m.jwtService.Verify(token)
	if err != nil {
		m.logger.Warnw("failed to verify token", "error", err)
		utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
		return false
	}
	if claims.TokenType != auth.TokenTypeAccess {
		utils.ErrorResponse(c, http.StatusUnauthorized, "invalid token type")
		return false
	}

	if !m.setActor(c, claims) {
		utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
		return false
	}
	return true
}

func (m *AuthMiddleware) setActor(c *gin.Context, claims *auth.Claims) bool {
	entity, err := m.userRepo.GetBySID(c.Request.Context(), claims.UserSID)
	if err != nil {
		m.logger.Errorw("failed to load user for token", "user_sid", claims.UserSID, "error", err)
		return false
	}
	if entity == nil {
		return false
	}

	c.Set(constants.ContextKeyUserID, entity.ID())
	c.Set(constants.ContextKeyUserSID, entity.SID())
	c.Set(constants.ContextKeyUserRole, entity.Role().String())
	c.Set(constants.ContextKeyClaims, claims.AccessClaims())
	return true
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// ActorFromContext assembles the access actor from the request context. An
// unauthenticated request yields a zero actor, which the resolver denies.
func ActorFromContext(c *gin.Context) *access.Actor {
	actor := &access.Actor{}

	if v, ok := c.Get(constants.ContextKeyUserID); ok {
		if userID, ok := v.(uint); ok {
			actor.UserID = userID
		}
	}
	if v, ok := c.Get(constants.ContextKeyUserRole); ok {
		if role, ok := v.(string); ok {
			actor.Role = authorization.ParseUserRole(role)
		}
	}
	if v, ok := c.Get(constants.ContextKeyClaims); ok {
		if claims, ok := v.(*access.Claims); ok {
			actor.Claims = claims
		}
	}
	return actor
}

// UserIDFromContext returns the authenticated user's internal ID, or 0.
func UserIDFromContext(c *gin.Context) uint {
	if v, ok := c.Get(constants.ContextKeyUserID); ok {
		if userID, ok := v.(uint); ok {
			return userID
		}
	}
	return 0
}
