package models

import (
	"time"

	"github.com/terplist/terplist/internal/shared/constants"
)

// StateAdminModel is the persistence model for per-state grants.
type StateAdminModel struct {
	ID        uint   `gorm:"primarykey"`
	SID       string `gorm:"uniqueIndex;not null;size:32"`
	UserID    uint   `gorm:"not null;uniqueIndex:idx_state_admins_pair,priority:1"`
	StateID   uint   `gorm:"not null;uniqueIndex:idx_state_admins_pair,priority:2"`
	CreatedAt time.Time
}

func (StateAdminModel) TableName() string {
	return constants.TableStateAdmins
}
