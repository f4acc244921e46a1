// Package access decides whether an acting principal may manage a producer's
// or a state's data. Authority comes from three independent sources: the
// global admin role, per-producer grants, and per-state grants. Grants are
// snapshotted into signed token claims at issuance time, so claims act as a
// read-through cache over the relational grant rows — checked first, never
// trusted as the sole authority.
package access

import (
	"slices"

	"github.com/terplist/terplist/internal/shared/authorization"
)

// Claims is the authorization-relevant payload embedded in a session token at
// issuance. It reflects the grant rows as of the last token refresh and can
// be stale relative to the relational source of truth. Absent fields default
// to empty; a zero Claims grants nothing.
type Claims struct {
	Role        string   `json:"role,omitempty"`
	ProducerIDs []string `json:"producer_ids,omitempty"`
	StateIDs    []string `json:"state_ids,omitempty"`
	StateSlugs  []string `json:"state_slugs,omitempty"`
}

// IsAdmin reports whether the claims carry the global admin role.
func (c *Claims) IsAdmin() bool {
	if c == nil {
		return false
	}
	return authorization.UserRole(c.Role).IsAdmin()
}

// AllowsProducer reports whether the claims grant management of the producer.
func (c *Claims) AllowsProducer(producerSID string) bool {
	if c == nil || producerSID == "" {
		return false
	}
	return slices.Contains(c.ProducerIDs, producerSID)
}

// AllowsState reports whether the claims grant management of the state,
// matching by SID or by slug.
func (c *Claims) AllowsState(stateSID, stateSlug string) bool {
	if c == nil {
		return false
	}
	if stateSID != "" && slices.Contains(c.StateIDs, stateSID) {
		return true
	}
	if stateSlug != "" && slices.Contains(c.StateSlugs, stateSlug) {
		return true
	}
	return false
}

// Actor is the authenticated principal evaluated by the resolver. A nil
// Actor, or one with a zero UserID, is unauthenticated and denied everything.
type Actor struct {
	UserID uint
	// Role is the relationally-loaded global role, when the caller already
	// has the user row. Middleware that only verified a token leaves this
	// empty and relies on Claims plus the relational fallback.
	Role   authorization.UserRole
	Claims *Claims
}

// IsAuthenticated reports whether the actor identifies a real user.
func (a *Actor) IsAuthenticated() bool {
	return a != nil && a.UserID != 0
}
