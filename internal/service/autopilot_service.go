package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/Heytechmate/overtime-cafe/internal/domain"
	"github.com/Heytechmate/overtime-cafe/internal/repository"
)

// AutoPilotService reconciles facility occupancy against the day's booking
// schedule. It runs as a background goroutine from main and stops with the
// server context.
type AutoPilotService struct {
	Facilities repository.FacilityRepository
	Bookings   repository.BookingRepository
	Logger     *slog.Logger
	Interval   time.Duration

	// lastDesired remembers the schedule's verdict per facility from the
	// previous tick, so a manual hold can be released exactly when a
	// booking window boundary passes.
	lastDesired map[domain.FacilityID]bool
}

// Run ticks until ctx is done. The first reconciliation happens immediately.
func (s *AutoPilotService) Run(ctx context.Context) {
	interval := s.Interval
	if interval <= 0 {
		interval = time.Minute
	}
	s.lastDesired = make(map[domain.FacilityID]bool)

	s.ReconcileAll(ctx, time.Now())
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.Logger.Info("auto-pilot stopped")
			return
		case now := <-ticker.C:
			s.ReconcileAll(ctx, now)
		}
	}
}

// ReconcileAll applies the schedule to every facility with auto-pilot on.
func (s *AutoPilotService) ReconcileAll(ctx context.Context, now time.Time) {
	if s.lastDesired == nil {
		s.lastDesired = make(map[domain.FacilityID]bool)
	}
	facilities, err := s.Facilities.List(ctx)
	if err != nil {
		s.Logger.Error("auto-pilot: list facilities", "error", err)
		return
	}
	for _, st := range facilities {
		if !st.AutoPilot {
			continue
		}
		desired, err := s.desiredOccupancy(ctx, st.Facility, now)
		if err != nil {
			s.Logger.Error("auto-pilot: compute occupancy", "facility", st.Facility, "error", err)
			continue
		}

		prev, seen := s.lastDesired[st.Facility]
		s.lastDesired[st.Facility] = desired

		if st.ManualHold {
			// A staff override stands until the schedule itself flips at
			// a window boundary; then the schedule takes back over.
			if !seen || prev == desired {
				continue
			}
		}
		if desired == st.Occupied && !st.ManualHold {
			continue
		}
		if err := s.Facilities.Reconcile(ctx, st.Facility, desired); err != nil {
			s.Logger.Error("auto-pilot: reconcile", "facility", st.Facility, "error", err)
			continue
		}
		s.Logger.Info("auto-pilot: occupancy updated", "facility", st.Facility, "occupied", desired)
	}
}

// desiredOccupancy reports whether any of today's bookings for the facility
// has a window containing now. Bookings with unparsable slot times are
// skipped, not fatal.
func (s *AutoPilotService) desiredOccupancy(ctx context.Context, facility domain.FacilityID, now time.Time) (bool, error) {
	bookings, err := s.Bookings.ListByFacilityDate(ctx, facility, dayOf(now))
	if err != nil {
		return false, err
	}
	for _, b := range bookings {
		active, err := domain.SlotActive(now, b.Slot, now)
		if err != nil {
			s.Logger.Warn("auto-pilot: skipping booking with bad slot time", "facility", facility, "slot", b.Slot, "error", err)
			continue
		}
		if active {
			return true, nil
		}
	}
	return false, nil
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
