package ranking

import (
	"context"
	"time"
)

// Snapshot is an immutable record of a producer's computed average rating and
// category rank at one point in time, used to render historical trend charts.
type Snapshot struct {
	ID            uint
	SID           string
	ProducerID    uint
	AverageRating float64
	CategoryRank  int
	// SnapshotDate is the business-timezone date (midnight, stored UTC) the
	// snapshot belongs to. One snapshot exists per producer per date; a rerun
	// on the same date replaces the earlier point rather than duplicating it.
	SnapshotDate time.Time
	CreatedAt    time.Time
}

// SnapshotRepository persists rating snapshots.
type SnapshotRepository interface {
	// UpsertBatch writes one batch of snapshots, replacing any existing rows
	// for the same (producer, snapshot date). Callers wrap each category's
	// batch in a transaction so a partial failure cannot leave a category
	// half-snapshotted.
	UpsertBatch(ctx context.Context, snapshots []*Snapshot) error

	// ListByProducer returns a producer's snapshots ascending by snapshot
	// date, for trend charting.
	ListByProducer(ctx context.Context, producerID uint) ([]*Snapshot, error)

	// CountForDate returns how many snapshots exist for a date, across all
	// producers. Used by tests and operational checks.
	CountForDate(ctx context.Context, date time.Time) (int64, error)
}
