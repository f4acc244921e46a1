package models

import (
	"time"

	"github.com/terplist/terplist/internal/shared/constants"
)

// ProducerAdminModel is the persistence model for per-producer grants.
type ProducerAdminModel struct {
	ID         uint   `gorm:"primarykey"`
	SID        string `gorm:"uniqueIndex;not null;size:32"`
	UserID     uint   `gorm:"not null;uniqueIndex:idx_producer_admins_pair,priority:1"`
	ProducerID uint   `gorm:"not null;uniqueIndex:idx_producer_admins_pair,priority:2"`
	CreatedAt  time.Time
}

func (ProducerAdminModel) TableName() string {
	return constants.TableProducerAdmins
}
