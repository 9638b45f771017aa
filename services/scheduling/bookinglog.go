package scheduling

import (
	"context"
	"sync"

	"podbooker/models"
)

// BookingLog is the append-only record of confirmed bookings. The daily
// fairness tier reads CountByHostAndDay; nothing ever updates or deletes
// an entry. Day keys are UTC calendar days in "YYYY-MM-DD" form.
type BookingLog interface {
	Append(ctx context.Context, b models.Booking) error
	CountByHostAndDay(ctx context.Context, hostID, day string) (int, error)
	ListByDay(ctx context.Context, day string) ([]models.Booking, error)
}

// MemoryBookingLog keeps bookings in process memory. It is the default
// store; bookings are lost on restart, which only affects the daily
// tie-break counts since double-booking protection comes from the live
// calendar recheck.
type MemoryBookingLog struct {
	mu       sync.RWMutex
	bookings []models.Booking
}

func NewMemoryBookingLog() *MemoryBookingLog {
	return &MemoryBookingLog{}
}

func (l *MemoryBookingLog) Append(_ context.Context, b models.Booking) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.bookings = append(l.bookings, b)
	return nil
}

func (l *MemoryBookingLog) CountByHostAndDay(_ context.Context, hostID, day string) (int, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	count := 0
	for _, b := range l.bookings {
		if b.Host.ID == hostID && b.Day() == day {
			count++
		}
	}
	return count, nil
}

func (l *MemoryBookingLog) ListByDay(_ context.Context, day string) ([]models.Booking, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []models.Booking
	for _, b := range l.bookings {
		if b.Day() == day {
			out = append(out, b)
		}
	}
	return out, nil
}
