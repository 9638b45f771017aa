package scheduling

import (
	"context"
	"time"

	"podbooker/models"
)

// SchedulingService is the boundary surface this core exposes to the HTTP
// layer.
type SchedulingService interface {
	// ListAvailableSlots returns the candidate slots on the given UTC day
	// where at least one connected host is free, ascending by start time.
	// An empty roster yields an empty slice, not an error.
	ListAvailableSlots(ctx context.Context, day time.Time) ([]models.Slot, error)

	// BookSlot re-verifies availability for the requested slot, assigns
	// one host under the fairness policy, creates the calendar event and
	// records the booking.
	BookSlot(ctx context.Context, req models.BookingRequest) (models.Booking, error)

	// HostStatuses reports the roster with connected flags. Read-only.
	HostStatuses(ctx context.Context) []models.HostStatus

	// ListBookings returns recorded bookings for a "YYYY-MM-DD" UTC day.
	ListBookings(ctx context.Context, day string) ([]models.Booking, error)
}

// SlotConfig shapes the bookable day. All hours are UTC.
type SlotConfig struct {
	WorkdayStartHour int
	WorkdayEndHour   int
	SlotDuration     time.Duration
}

// DaySlots generates the fixed candidate-slot ladder for the given UTC
// calendar day. A slot is included only if it ends by the workday end.
func (c SlotConfig) DaySlots(day time.Time) []models.Slot {
	day = day.UTC()
	start := time.Date(day.Year(), day.Month(), day.Day(), c.WorkdayStartHour, 0, 0, 0, time.UTC)
	end := time.Date(day.Year(), day.Month(), day.Day(), c.WorkdayEndHour, 0, 0, 0, time.UTC)

	var slots []models.Slot
	for s := start; !s.Add(c.SlotDuration).After(end); s = s.Add(c.SlotDuration) {
		slots = append(slots, models.Slot{StartTime: s})
	}
	return slots
}
