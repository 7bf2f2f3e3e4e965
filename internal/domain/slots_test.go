package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingSlots(t *testing.T) {
	slots := BookingSlots()
	require.Len(t, slots, 6)
	assert.Equal(t, "10:00 AM", slots[0])
	assert.Equal(t, "8:00 PM", slots[5])
	for _, s := range slots {
		assert.True(t, ValidSlot(s))
	}
	assert.False(t, ValidSlot("9:00 AM"))
	assert.False(t, ValidSlot(""))
}

func TestSlotWindow(t *testing.T) {
	day := time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)

	start, end, err := SlotWindow(day, "2:00 PM")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 14, 14, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 6, 14, 16, 0, 0, 0, time.UTC), end)

	_, _, err = SlotWindow(day, "half past nine")
	assert.Error(t, err)
}

func TestSlotActive(t *testing.T) {
	day := time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		now    time.Time
		active bool
	}{
		{time.Date(2025, 6, 14, 9, 59, 0, 0, time.UTC), false},
		{time.Date(2025, 6, 14, 10, 0, 0, 0, time.UTC), true},
		{time.Date(2025, 6, 14, 11, 30, 0, 0, time.UTC), true},
		// End boundary is exclusive.
		{time.Date(2025, 6, 14, 12, 0, 0, 0, time.UTC), false},
	}
	for _, tc := range cases {
		active, err := SlotActive(day, "10:00 AM", tc.now)
		require.NoError(t, err)
		assert.Equal(t, tc.active, active, "now=%s", tc.now)
	}

	_, err := SlotActive(day, "25:99", time.Now())
	assert.Error(t, err)
}
