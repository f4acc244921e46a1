// Package state models the multi-tenant state partition. Producers, votes and
// grants all hang off a state; ranking pools never mix states unless a global
// scope is requested explicitly.
package state

import (
	"fmt"
	"time"
)

// State represents one legal market partition (e.g. Colorado, Michigan).
type State struct {
	id        uint
	sid       string
	name      string
	slug      string
	createdAt time.Time
	updatedAt time.Time
}

// NewState creates a new state partition.
func NewState(sid, name, slug string) (*State, error) {
	if name == "" {
		return nil, fmt.Errorf("state name is required")
	}
	if slug == "" {
		return nil, fmt.Errorf("state slug is required")
	}

	now := time.Now()
	return &State{
		sid:       sid,
		name:      name,
		slug:      slug,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructState rebuilds a state from persistence.
func ReconstructState(id uint, sid, name, slug string, createdAt, updatedAt time.Time) (*State, error) {
	if id == 0 {
		return nil, fmt.Errorf("state ID cannot be zero")
	}
	return &State{
		id:        id,
		sid:       sid,
		name:      name,
		slug:      slug,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

func (s *State) ID() uint             { return s.id }
func (s *State) SID() string          { return s.sid }
func (s *State) Name() string         { return s.name }
func (s *State) Slug() string         { return s.slug }
func (s *State) CreatedAt() time.Time { return s.createdAt }
func (s *State) UpdatedAt() time.Time { return s.updatedAt }

// SetID sets the internal ID after persistence.
func (s *State) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("state ID already set")
	}
	s.id = id
	return nil
}
