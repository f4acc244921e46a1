// Package auth provides JWT issuance/verification and password hashing.
// Tokens embed the actor's grant snapshot (producer and state SIDs) so most
// authorization checks resolve without touching the database; the access
// resolver still falls back to the grant rows when the snapshot is stale.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/terplist/terplist/internal/domain/access"
	"github.com/terplist/terplist/internal/shared/authorization"
	"github.com/terplist/terplist/internal/shared/biztime"
)

type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Claims is the full JWT payload. The grant snapshot fields mirror
// access.Claims and are computed from the grant rows at issuance time.
type Claims struct {
	UserSID     string    `json:"user_sid"`
	Role        string    `json:"role"`
	ProducerIDs []string  `json:"producer_ids,omitempty"`
	StateIDs    []string  `json:"state_ids,omitempty"`
	StateSlugs  []string  `json:"state_slugs,omitempty"`
	TokenType   TokenType `json:"token_type"`
	jwt.RegisteredClaims
}

// AccessClaims converts the token payload into the domain claim set.
func (c *Claims) AccessClaims() *access.Claims {
	return &access.Claims{
		Role:        c.Role,
		ProducerIDs: c.ProducerIDs,
		StateIDs:    c.StateIDs,
		StateSlugs:  c.StateSlugs,
	}
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// GrantSnapshot is the issuance-time view of a user's grants.
type GrantSnapshot struct {
	ProducerSIDs []string
	StateSIDs    []string
	StateSlugs   []string
}

type JWTService struct {
	secret           []byte
	accessExpMinutes int
	refreshExpDays   int
}

func NewJWTService(secret string, accessExpMinutes, refreshExpDays int) *JWTService {
	return &JWTService{
		secret:           []byte(secret),
		accessExpMinutes: accessExpMinutes,
		refreshExpDays:   refreshExpDays,
	}
}

// Generate issues an access/refresh token pair for the user, embedding the
// grant snapshot. Both tokens carry the snapshot so a refresh preserves it
// until the next relational reload.
func (s *JWTService) Generate(userSID string, role authorization.UserRole, grants GrantSnapshot) (*TokenPair, error) {
	now := biztime.NowUTC()

	accessToken, err := s.sign(userSID, role, grants, TokenTypeAccess, now,
		now.Add(time.Duration(s.accessExpMinutes)*time.Minute))
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refreshToken, err := s.sign(userSID, role, grants, TokenTypeRefresh, now,
		now.Add(time.Duration(s.refreshExpDays)*24*time.Hour))
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.accessExpMinutes * 60),
	}, nil
}

func (s *JWTService) sign(userSID string, role authorization.UserRole, grants GrantSnapshot, tokenType TokenType, now, exp time.Time) (string, error) {
	claims := &Claims{
		UserSID:     userSID,
		Role:        role.String(),
		ProducerIDs: grants.ProducerSIDs,
		StateIDs:    grants.StateSIDs,
		StateSlugs:  grants.StateSlugs,
		TokenType:   tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify parses and validates a token, returning its claims.
func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}
