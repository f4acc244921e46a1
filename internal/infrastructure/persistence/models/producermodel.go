package models

import (
	"time"

	"github.com/terplist/terplist/internal/shared/constants"
)

// ProducerModel is the persistence model for producers.
type ProducerModel struct {
	ID          uint   `gorm:"primarykey"`
	SID         string `gorm:"uniqueIndex;not null;size:32"`
	Name        string `gorm:"not null;size:200"`
	Slug        string `gorm:"uniqueIndex;not null;size:200"`
	Description string `gorm:"type:text"`
	Category    string `gorm:"not null;size:20;index:idx_producers_pool,priority:2"`
	Market      string `gorm:"not null;default:both;size:10"`
	StateID     uint   `gorm:"not null;index:idx_producers_pool,priority:1"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (ProducerModel) TableName() string {
	return constants.TableProducers
}
