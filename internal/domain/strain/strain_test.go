package strain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStrainValidation(t *testing.T) {
	_, err := NewStrain("sn_x", 0, "Gelato 41", "gelato-41", "", nil)
	assert.Error(t, err)

	_, err = NewStrain("sn_x", 1, "", "gelato-41", "", nil)
	assert.Error(t, err)

	s, err := NewStrain("sn_x", 1, "Gelato 41", "gelato-41", "creamy", []string{"limonene"})
	require.NoError(t, err)
	assert.Equal(t, uint(1), s.ProducerID())
	assert.Nil(t, s.DropAt())
}

func TestScheduleDropReportsChange(t *testing.T) {
	s, err := NewStrain("sn_x", 1, "Gelato 41", "gelato-41", "", nil)
	require.NoError(t, err)

	drop := time.Date(2026, 9, 4, 10, 0, 0, 0, time.UTC)

	assert.True(t, s.ScheduleDrop(&drop), "setting a date is a change")
	assert.False(t, s.ScheduleDrop(&drop), "same date is not a change")

	later := drop.AddDate(0, 0, 7)
	assert.True(t, s.ScheduleDrop(&later), "moving the date is a change")

	assert.True(t, s.ScheduleDrop(nil), "clearing the date is a change")
	assert.False(t, s.ScheduleDrop(nil), "already cleared")
}
