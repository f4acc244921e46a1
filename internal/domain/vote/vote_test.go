package vote

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terplist/terplist/internal/shared/errors"
)

func TestValidateValue(t *testing.T) {
	tests := []struct {
		name    string
		value   int
		wantErr bool
	}{
		{"minimum", 1, false},
		{"maximum", 5, false},
		{"middle", 3, false},
		{"zero", 0, true},
		{"too high", 6, true},
		{"negative", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateValue(tt.value)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsValidationError(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewVote(t *testing.T) {
	v, err := NewVote(1, 2, 4, 3)
	require.NoError(t, err)
	assert.Equal(t, uint(1), v.UserID())
	assert.Equal(t, uint(2), v.ProducerID())
	assert.Equal(t, 4, v.Value())
	assert.Equal(t, uint(3), v.StateID())
}

func TestNewVoteRejectsOutOfRangeValue(t *testing.T) {
	_, err := NewVote(1, 2, 6, 3)
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestNewVoteRequiresUserAndProducer(t *testing.T) {
	_, err := NewVote(0, 2, 4, 3)
	assert.Error(t, err)

	_, err = NewVote(1, 0, 4, 3)
	assert.Error(t, err)
}
