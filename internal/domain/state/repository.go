package state

import "context"

// Repository defines the interface for state data operations.
// Implementations return nil (no error) when a state does not exist.
type Repository interface {
	Create(ctx context.Context, state *State) error
	GetByID(ctx context.Context, id uint) (*State, error)
	GetBySID(ctx context.Context, sid string) (*State, error)
	GetBySlug(ctx context.Context, slug string) (*State, error)
	List(ctx context.Context) ([]*State, error)
}
