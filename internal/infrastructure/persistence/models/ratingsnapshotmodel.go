package models

import (
	"time"

	"github.com/terplist/terplist/internal/shared/constants"
)

// RatingSnapshotModel is the persistence model for daily rating snapshots.
// The unique index on (producer_id, snapshot_date) makes a same-day rerun
// replace the earlier point instead of duplicating it.
type RatingSnapshotModel struct {
	ID            uint      `gorm:"primarykey"`
	SID           string    `gorm:"uniqueIndex;not null;size:32"`
	ProducerID    uint      `gorm:"not null;uniqueIndex:idx_snapshots_producer_date,priority:1"`
	AverageRating float64   `gorm:"not null"`
	CategoryRank  int       `gorm:"not null"`
	SnapshotDate  time.Time `gorm:"not null;uniqueIndex:idx_snapshots_producer_date,priority:2;index"`
	CreatedAt     time.Time
}

func (RatingSnapshotModel) TableName() string {
	return constants.TableRatingSnapshots
}
