package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Heytechmate/overtime-cafe/internal/domain"
	"github.com/Heytechmate/overtime-cafe/internal/repository"
)

var (
	ErrUnknownFacility = errors.New("unknown facility")
	ErrUnknownSlot     = errors.New("unknown slot")
	ErrClosedDate      = errors.New("venue is closed on that date")
)

const bookingDateLayout = "2006-01-02"

// BookingService validates and records facility slot claims.
type BookingService struct {
	Bookings repository.BookingRepository
	Settings repository.SettingsRepository
	Logs     repository.ActivityLogRepository
	Logger   *slog.Logger
}

// SlotAvailability pairs a fixed slot with its taken flag for one day.
type SlotAvailability struct {
	Slot  string
	Taken bool
}

// Availability returns every fixed slot of a facility on a day with its
// current taken state.
func (s BookingService) Availability(ctx context.Context, facility domain.FacilityID, date time.Time) ([]SlotAvailability, error) {
	if !domain.ValidFacility(facility) {
		return nil, ErrUnknownFacility
	}
	booked, err := s.Bookings.ListByFacilityDate(ctx, facility, date)
	if err != nil {
		return nil, err
	}
	taken := make(map[string]bool, len(booked))
	for _, b := range booked {
		taken[b.Slot] = true
	}

	slots := domain.BookingSlots()
	out := make([]SlotAvailability, 0, len(slots))
	for _, slot := range slots {
		out = append(out, SlotAvailability{Slot: slot, Taken: taken[slot]})
	}
	return out, nil
}

type BookSlotInput struct {
	Facility domain.FacilityID
	Date     time.Time
	Slot     string
	UserName string
}

// Book claims one slot. The uniqueness guarantee lives in the database, so
// two concurrent claims for the same slot cannot both succeed.
func (s BookingService) Book(ctx context.Context, in BookSlotInput) (*domain.Booking, error) {
	if !domain.ValidFacility(in.Facility) {
		return nil, ErrUnknownFacility
	}
	if !domain.ValidSlot(in.Slot) {
		return nil, ErrUnknownSlot
	}
	if in.UserName == "" {
		return nil, fmt.Errorf("booking name is required")
	}

	settings, err := s.Settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	day := in.Date.Format(bookingDateLayout)
	for _, closed := range settings.ClosedDates {
		if closed == day {
			return nil, ErrClosedDate
		}
	}

	booking, err := s.Bookings.Create(ctx, repository.CreateBookingInput{
		Facility: in.Facility,
		Date:     in.Date,
		Slot:     in.Slot,
		UserName: in.UserName,
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.Logs.Create(ctx, repository.CreateActivityLogInput{
		Title:   "Slot booked",
		Message: fmt.Sprintf("%s booked %s on %s at %s", in.UserName, in.Facility, day, in.Slot),
		Actor:   in.UserName,
		Type:    domain.LogInfo,
	}); err != nil {
		s.Logger.Warn("activity log write failed", "title", "Slot booked", "error", err)
	}
	return booking, nil
}

// Recent returns the newest bookings across facilities for the admin view.
func (s BookingService) Recent(ctx context.Context, limit int) ([]domain.Booking, error) {
	return s.Bookings.ListRecent(ctx, limit)
}
