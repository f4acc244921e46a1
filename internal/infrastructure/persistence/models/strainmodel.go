package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/terplist/terplist/internal/shared/constants"
)

// StrainModel is the persistence model for strains. Terpenes are stored as a
// JSON array rather than a join table; they are display-only metadata.
type StrainModel struct {
	ID          uint           `gorm:"primarykey"`
	SID         string         `gorm:"uniqueIndex;not null;size:32"`
	ProducerID  uint           `gorm:"not null;index"`
	Name        string         `gorm:"not null;size:200"`
	Slug        string         `gorm:"not null;size:200;index"`
	Description string         `gorm:"type:text"`
	Terpenes    datatypes.JSON `gorm:"type:json"`
	DropAt      *time.Time     `gorm:"index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (StrainModel) TableName() string {
	return constants.TableStrains
}
