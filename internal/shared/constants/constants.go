// Package constants defines shared constant values used across the application.
package constants

// Context keys set by middleware and read by handlers.
const (
	ContextKeyUserID    = "user_id"
	ContextKeyUserSID   = "user_sid"
	ContextKeyUserRole  = "user_role"
	ContextKeyClaims    = "access_claims"
	ContextKeyRequestID = "request_id"
)

// Database table names.
const (
	TableUsers             = "users"
	TableStates            = "states"
	TableProducers         = "producers"
	TableStrains           = "strains"
	TableVotes             = "votes"
	TableRatingSnapshots   = "producer_rating_snapshots"
	TableProducerAdmins    = "producer_admins"
	TableStateAdmins       = "state_admins"
	TableDropSubscriptions = "drop_subscriptions"
)

// User roles.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Vote value bounds. Votes are integer star ratings.
const (
	VoteValueMin = 1
	VoteValueMax = 5
)
