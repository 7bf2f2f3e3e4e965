package service

import (
	"testing"
	"time"

	"github.com/Heytechmate/overtime-cafe/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayOf(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Colombo")
	require.NoError(t, err)
	now := time.Date(2025, 6, 14, 15, 42, 7, 0, loc)

	day := dayOf(now)
	assert.Equal(t, 2025, day.Year())
	assert.Equal(t, time.June, day.Month())
	assert.Equal(t, 14, day.Day())
	assert.Equal(t, 0, day.Hour())
	assert.Equal(t, loc, day.Location())
}

func TestSlotActiveMatchesScheduleWindow(t *testing.T) {
	// The reconciler marks a facility occupied only while a booked window
	// contains now; 4:00 PM booking covers [16:00, 18:00).
	day := time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)

	during := time.Date(2025, 6, 14, 17, 0, 0, 0, time.UTC)
	active, err := domain.SlotActive(day, "4:00 PM", during)
	require.NoError(t, err)
	assert.True(t, active)

	after := time.Date(2025, 6, 14, 18, 0, 0, 0, time.UTC)
	active, err = domain.SlotActive(day, "4:00 PM", after)
	require.NoError(t, err)
	assert.False(t, active)
}
