package domain

import (
	"fmt"
	"time"
)

// SlotDuration is the fixed length of every bookable window.
const SlotDuration = 2 * time.Hour

const slotLayout = "3:04 PM"

// BookingSlots lists the six fixed daily windows, in order.
func BookingSlots() []string {
	return []string{
		"10:00 AM",
		"12:00 PM",
		"2:00 PM",
		"4:00 PM",
		"6:00 PM",
		"8:00 PM",
	}
}

// ValidSlot reports whether slot is one of the fixed windows.
func ValidSlot(slot string) bool {
	for _, s := range BookingSlots() {
		if s == slot {
			return true
		}
	}
	return false
}

// SlotWindow resolves a slot start time on the given day into a concrete
// [start, end) window in the day's location.
func SlotWindow(day time.Time, slot string) (start, end time.Time, err error) {
	t, err := time.Parse(slotLayout, slot)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parse slot %q: %w", slot, err)
	}
	start = time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location())
	return start, start.Add(SlotDuration), nil
}

// SlotActive reports whether now falls inside the slot's window on the
// given day.
func SlotActive(day time.Time, slot string, now time.Time) (bool, error) {
	start, end, err := SlotWindow(day, slot)
	if err != nil {
		return false, err
	}
	return !now.Before(start) && now.Before(end), nil
}
