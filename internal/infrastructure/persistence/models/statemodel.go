package models

import (
	"time"

	"github.com/terplist/terplist/internal/shared/constants"
)

// StateModel is the persistence model for state partitions.
type StateModel struct {
	ID        uint   `gorm:"primarykey"`
	SID       string `gorm:"uniqueIndex;not null;size:32"`
	Name      string `gorm:"not null;size:100"`
	Slug      string `gorm:"uniqueIndex;not null;size:100"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (StateModel) TableName() string {
	return constants.TableStates
}
