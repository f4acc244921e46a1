package models

import (
	"time"

	"github.com/terplist/terplist/internal/shared/constants"
)

// DropSubscriptionModel is the persistence model for drop notification
// opt-ins. The unique pair index makes Subscribe idempotent.
type DropSubscriptionModel struct {
	ID         uint   `gorm:"primarykey"`
	SID        string `gorm:"uniqueIndex;not null;size:32"`
	UserID     uint   `gorm:"not null;uniqueIndex:idx_drop_subs_pair,priority:1"`
	ProducerID uint   `gorm:"not null;uniqueIndex:idx_drop_subs_pair,priority:2;index"`
	CreatedAt  time.Time
}

func (DropSubscriptionModel) TableName() string {
	return constants.TableDropSubscriptions
}
