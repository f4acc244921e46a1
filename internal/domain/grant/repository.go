package grant

import "context"

// Repository defines the interface for grant data operations. The Has*
// methods back the access resolver's relational fallback and must stay cheap:
// one indexed lookup each.
type Repository interface {
	CreateProducerGrant(ctx context.Context, g *ProducerGrant) error
	CreateStateGrant(ctx context.Context, g *StateGrant) error
	DeleteProducerGrant(ctx context.Context, userID, producerID uint) error
	DeleteStateGrant(ctx context.Context, userID, stateID uint) error

	// ListForUser returns all of a user's grants in external identifier form,
	// for embedding into token claims at issuance.
	ListForUser(ctx context.Context, userID uint) (*UserGrants, error)

	HasProducerGrant(ctx context.Context, userID uint, producerSID string) (bool, error)
	HasStateGrant(ctx context.Context, userID uint, stateSID, stateSlug string) (bool, error)

	// IsGlobalAdmin checks the user's relational role. Lives here so the
	// access resolver has a single relational dependency.
	IsGlobalAdmin(ctx context.Context, userID uint) (bool, error)
}
