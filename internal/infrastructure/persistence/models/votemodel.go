package models

import (
	"time"

	"github.com/terplist/terplist/internal/shared/constants"
)

// VoteModel is the persistence model for votes. The unique index on
// (user_id, producer_id) is what makes the upsert race-safe: concurrent casts
// for the same pair serialize on the index instead of creating duplicates.
type VoteModel struct {
	ID         uint   `gorm:"primarykey"`
	SID        string `gorm:"uniqueIndex;not null;size:32"`
	UserID     uint   `gorm:"not null;uniqueIndex:idx_votes_user_producer,priority:1"`
	ProducerID uint   `gorm:"not null;uniqueIndex:idx_votes_user_producer,priority:2;index"`
	Value      int    `gorm:"not null"`
	StateID    uint   `gorm:"not null;index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (VoteModel) TableName() string {
	return constants.TableVotes
}
