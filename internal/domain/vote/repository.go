package vote

import "context"

// Repository defines the interface for vote data operations.
type Repository interface {
	// Upsert atomically inserts or replaces the vote for the vote's
	// (userID, producerID) pair. Two concurrent casts for the same pair must
	// resolve to exactly one stored row with one winner's value, never a
	// merged or partial write.
	Upsert(ctx context.Context, v *Vote) error

	// GetByUserAndProducer returns the current vote for the pair, or nil.
	GetByUserAndProducer(ctx context.Context, userID, producerID uint) (*Vote, error)

	// ListByProducer returns all current votes for one producer.
	ListByProducer(ctx context.Context, producerID uint) ([]*Vote, error)

	// ListByProducerIDs returns all current votes for the given producers,
	// keyed by producer ID. Producers with no votes are absent from the map.
	ListByProducerIDs(ctx context.Context, producerIDs []uint) (map[uint][]*Vote, error)
}
