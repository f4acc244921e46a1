// Package grant models the durable authorization rows: per-producer and
// per-state management rights. Grant rows are the source of truth the token
// claims are derived from at issuance time.
package grant

import "time"

// ProducerGrant confers management rights over one producer to one user.
type ProducerGrant struct {
	ID         uint
	SID        string
	UserID     uint
	ProducerID uint
	CreatedAt  time.Time
}

// StateGrant confers management rights over one state (and, transitively,
// every producer in it) to one user.
type StateGrant struct {
	ID        uint
	SID       string
	UserID    uint
	StateID   uint
	CreatedAt time.Time
}

// UserGrants is the external-identifier view of a user's grants, the exact
// shape embedded into token claims at issuance.
type UserGrants struct {
	ProducerSIDs []string
	StateSIDs    []string
	StateSlugs   []string
}
