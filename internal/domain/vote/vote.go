// Package vote models producer ratings. A user holds at most one vote per
// producer; casting again overwrites the previous value (no history).
package vote

import (
	"time"

	"github.com/terplist/terplist/internal/shared/constants"
	"github.com/terplist/terplist/internal/shared/errors"
)

// Vote is one user's current rating of one producer. StateID is denormalized
// from the producer at write time for query efficiency and must never diverge
// from the producer's state.
type Vote struct {
	id         uint
	userID     uint
	producerID uint
	value      int
	stateID    uint
	createdAt  time.Time
	updatedAt  time.Time
}

// ValidateValue checks that a raw vote value is an integer star rating within
// bounds. Out-of-range values are a validation error, surfaced before any
// storage write.
func ValidateValue(value int) error {
	if value < constants.VoteValueMin || value > constants.VoteValueMax {
		return errors.NewValidationError("vote value must be between 1 and 5")
	}
	return nil
}

// NewVote creates a vote after validating the value.
func NewVote(userID, producerID uint, value int, stateID uint) (*Vote, error) {
	if userID == 0 {
		return nil, errors.NewValidationError("vote requires a user")
	}
	if producerID == 0 {
		return nil, errors.NewValidationError("vote requires a producer")
	}
	if err := ValidateValue(value); err != nil {
		return nil, err
	}

	now := time.Now()
	return &Vote{
		userID:     userID,
		producerID: producerID,
		value:      value,
		stateID:    stateID,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

// ReconstructVote rebuilds a vote from persistence.
func ReconstructVote(id, userID, producerID uint, value int, stateID uint, createdAt, updatedAt time.Time) *Vote {
	return &Vote{
		id:         id,
		userID:     userID,
		producerID: producerID,
		value:      value,
		stateID:    stateID,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

func (v *Vote) ID() uint             { return v.id }
func (v *Vote) UserID() uint         { return v.userID }
func (v *Vote) ProducerID() uint     { return v.producerID }
func (v *Vote) Value() int           { return v.value }
func (v *Vote) StateID() uint        { return v.stateID }
func (v *Vote) CreatedAt() time.Time { return v.createdAt }
func (v *Vote) UpdatedAt() time.Time { return v.updatedAt }
