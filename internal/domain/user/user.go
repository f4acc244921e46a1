// Package user models registered accounts. The global role lives here; all
// finer-grained management rights are grant rows (see internal/domain/grant).
package user

import (
	"fmt"
	"strings"
	"time"

	"github.com/terplist/terplist/internal/shared/authorization"
)

// User represents a registered account.
type User struct {
	id           uint
	sid          string
	email        string
	name         string
	passwordHash string
	role         authorization.UserRole
	createdAt    time.Time
	updatedAt    time.Time
}

// NewUser creates a new user with the regular role.
func NewUser(sid, email, name, passwordHash string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if passwordHash == "" {
		return nil, fmt.Errorf("password hash is required")
	}

	now := time.Now()
	return &User{
		sid:          sid,
		email:        email,
		name:         name,
		passwordHash: passwordHash,
		role:         authorization.RoleUser,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructUser rebuilds a user from persistence.
func ReconstructUser(id uint, sid, email, name, passwordHash string, role authorization.UserRole, createdAt, updatedAt time.Time) (*User, error) {
	if id == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	return &User{
		id:           id,
		sid:          sid,
		email:        email,
		name:         name,
		passwordHash: passwordHash,
		role:         role,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (u *User) ID() uint                      { return u.id }
func (u *User) SID() string                   { return u.sid }
func (u *User) Email() string                 { return u.email }
func (u *User) Name() string                  { return u.name }
func (u *User) PasswordHash() string          { return u.passwordHash }
func (u *User) Role() authorization.UserRole  { return u.role }
func (u *User) CreatedAt() time.Time          { return u.createdAt }
func (u *User) UpdatedAt() time.Time          { return u.updatedAt }

// IsAdmin reports whether the user holds the global admin role.
func (u *User) IsAdmin() bool {
	return u.role.IsAdmin()
}

// SetID sets the internal ID after persistence.
func (u *User) SetID(id uint) error {
	if u.id != 0 {
		return fmt.Errorf("user ID already set")
	}
	u.id = id
	return nil
}

// PromoteToAdmin grants the global admin role.
func (u *User) PromoteToAdmin() {
	u.role = authorization.RoleAdmin
	u.updatedAt = time.Now()
}
