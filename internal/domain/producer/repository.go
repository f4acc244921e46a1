package producer

import "context"

// ListFilter narrows producer listings. A nil StateID means all states
// (global scope); Market filters visibility, empty means no filter.
type ListFilter struct {
	Category Category
	StateID  *uint
	Market   Market
}

// StateRef carries a producer's state affiliation in external identifier
// form, as needed by the access resolver and vote casting.
type StateRef struct {
	ID   uint
	SID  string
	Slug string
}

// Repository defines the interface for producer data operations.
// Lookups return nil (no error) when the producer does not exist; callers
// translate that into a not-found condition, which must stay distinct from
// authorization failure.
type Repository interface {
	Create(ctx context.Context, producer *Producer) error
	GetByID(ctx context.Context, id uint) (*Producer, error)
	GetBySID(ctx context.Context, sid string) (*Producer, error)
	GetBySlug(ctx context.Context, slug string) (*Producer, error)
	Update(ctx context.Context, producer *Producer) error

	// ListByFilter returns producers ordered by internal ID ascending. The
	// ranking engine relies on this stable fetch order as the tiebreak for
	// equal averages.
	ListByFilter(ctx context.Context, filter ListFilter) ([]*Producer, error)

	// StateRefFor resolves the state affiliation of a producer by SID.
	// Returns nil when the producer does not exist.
	StateRefFor(ctx context.Context, producerSID string) (*StateRef, error)
}
