// Package strain models a producer's strains and their drop schedule.
package strain

import (
	"fmt"
	"time"
)

// Strain is one product line of a producer. DropAt, when set, places the
// strain on the weekly drop calendar; changing it triggers the notification
// pipeline for opted-in users.
type Strain struct {
	id          uint
	sid         string
	producerID  uint
	name        string
	slug        string
	description string
	terpenes    []string
	dropAt      *time.Time
	createdAt   time.Time
	updatedAt   time.Time
}

// NewStrain creates a new strain under the given producer.
func NewStrain(sid string, producerID uint, name, slug, description string, terpenes []string) (*Strain, error) {
	if producerID == 0 {
		return nil, fmt.Errorf("strain producer is required")
	}
	if name == "" {
		return nil, fmt.Errorf("strain name is required")
	}

	now := time.Now()
	return &Strain{
		sid:         sid,
		producerID:  producerID,
		name:        name,
		slug:        slug,
		description: description,
		terpenes:    terpenes,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructStrain rebuilds a strain from persistence.
func ReconstructStrain(
	id uint,
	sid string,
	producerID uint,
	name, slug, description string,
	terpenes []string,
	dropAt *time.Time,
	createdAt, updatedAt time.Time,
) (*Strain, error) {
	if id == 0 {
		return nil, fmt.Errorf("strain ID cannot be zero")
	}
	return &Strain{
		id:          id,
		sid:         sid,
		producerID:  producerID,
		name:        name,
		slug:        slug,
		description: description,
		terpenes:    terpenes,
		dropAt:      dropAt,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (s *Strain) ID() uint             { return s.id }
func (s *Strain) SID() string          { return s.sid }
func (s *Strain) ProducerID() uint     { return s.producerID }
func (s *Strain) Name() string         { return s.name }
func (s *Strain) Slug() string         { return s.slug }
func (s *Strain) Description() string  { return s.description }
func (s *Strain) Terpenes() []string   { return s.terpenes }
func (s *Strain) DropAt() *time.Time   { return s.dropAt }
func (s *Strain) CreatedAt() time.Time { return s.createdAt }
func (s *Strain) UpdatedAt() time.Time { return s.updatedAt }

// SetID sets the internal ID after persistence.
func (s *Strain) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("strain ID already set")
	}
	s.id = id
	return nil
}

// UpdateDetails updates the mutable display fields.
func (s *Strain) UpdateDetails(name, description string, terpenes []string) {
	if name != "" {
		s.name = name
	}
	s.description = description
	if terpenes != nil {
		s.terpenes = terpenes
	}
	s.updatedAt = time.Now()
}

// ScheduleDrop sets or clears the drop date. Returns true when the date
// actually changed, which is what gates the notification fan-out.
func (s *Strain) ScheduleDrop(dropAt *time.Time) bool {
	if equalTimePtr(s.dropAt, dropAt) {
		return false
	}
	s.dropAt = dropAt
	s.updatedAt = time.Now()
	return true
}

func equalTimePtr(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
