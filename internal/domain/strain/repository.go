package strain

import (
	"context"
	"time"
)

// Repository defines the interface for strain data operations.
// Lookups return nil (no error) when the strain does not exist.
type Repository interface {
	Create(ctx context.Context, strain *Strain) error
	GetBySID(ctx context.Context, sid string) (*Strain, error)
	Update(ctx context.Context, strain *Strain) error
	Delete(ctx context.Context, id uint) error
	ListByProducer(ctx context.Context, producerID uint) ([]*Strain, error)

	// ListDropsBetween returns strains dropping in [from, to), optionally
	// scoped to one state (nil stateID means all states), ordered by drop
	// time ascending. Backs the weekly drop calendar.
	ListDropsBetween(ctx context.Context, stateID *uint, from, to time.Time) ([]*Strain, error)
}
