package scheduling

import (
	"context"
	"fmt"
	"sync"
	"time"

	"podbooker/models"
	"podbooker/services/calendar"
	ai "podbooker/services/intelligence"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookSlot assigns exactly one free host to the requested slot and
// records the booking.
//
// The recheck (step 1) hits the calendar provider per host for the exact
// requested window; it deliberately does not reuse an earlier availability
// result, closing the race between a guest viewing slots and confirming.
// A host whose query fails is treated as unavailable rather than failing
// the whole attempt. Fairness selection, event creation and the log
// append then run under one mutex so concurrent bookings cannot interleave
// the cursor read-modify-write or double-assign a host.
func (se *DefaultSchedulingEngine) BookSlot(ctx context.Context, req models.BookingRequest) (models.Booking, error) {
	connected := se.connectedHosts(ctx)
	if len(connected) == 0 {
		return models.Booking{}, ErrNoHostsConnected
	}

	start := req.StartTime.UTC()
	end := start.Add(se.Slots.SlotDuration)

	candidates := se.recheckFreeHosts(ctx, connected, start, end)
	if len(candidates) == 0 {
		return models.Booking{}, ErrSlotUnavailable
	}

	se.mu.Lock()
	defer se.mu.Unlock()

	day := start.Format("2006-01-02")
	leastBooked, err := se.leastBookedToday(ctx, candidates, day)
	if err != nil {
		return models.Booking{}, err
	}

	selected, selectedIdx := se.pickRoundRobin(connected, leastBooked)

	details := se.Details.GenerateDetails(ctx, ai.EventInfo{
		HostName:   selected.Name,
		GuestName:  req.GuestName,
		GuestEmail: req.GuestEmail,
		Topic:      req.Topic,
		Date:       start,
		Time:       start.Format("15:04 UTC"),
	})

	cctx, cancel := context.WithTimeout(ctx, se.Timeout)
	defer cancel()

	created, err := se.Calendar.CreateEvent(cctx, selected, calendar.EventRequest{
		Start:       start,
		End:         end,
		Title:       details.Title,
		Description: details.Description,
		GuestEmail:  req.GuestEmail,
	})
	if err != nil {
		// Cursor is untouched, so the failed attempt cannot skew later
		// assignments.
		se.Logger.Error("event creation failed",
			zap.String("hostId", selected.ID), zap.Time("start", start), zap.Error(err))
		return models.Booking{}, fmt.Errorf("%w: %v", ErrEventCreationFailed, err)
	}
	se.cursor = selectedIdx

	booking := models.Booking{
		ID:         created.EventID,
		StartTime:  start,
		Host:       selected,
		GuestName:  req.GuestName,
		GuestEmail: req.GuestEmail,
		Topic:      req.Topic,
		MeetLink:   created.MeetLink,
		CreatedAt:  time.Now().UTC(),
	}
	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}

	if err := se.Log.Append(ctx, booking); err != nil {
		// The remote event exists; surface the store failure without
		// attempting compensation.
		se.Logger.Error("booking append failed", zap.String("bookingId", booking.ID), zap.Error(err))
		return models.Booking{}, fmt.Errorf("recording booking: %w", err)
	}

	se.Logger.Info("slot booked",
		zap.String("bookingId", booking.ID),
		zap.String("hostId", selected.ID),
		zap.Time("start", start))
	return booking, nil
}

// recheckFreeHosts queries each connected host's calendar for the exact
// [start, end) window, concurrently. A host is a candidate only if it
// reports zero busy intervals; query failures mark that host unavailable.
func (se *DefaultSchedulingEngine) recheckFreeHosts(ctx context.Context, connected []models.Host, start, end time.Time) []models.Host {
	free := make([]bool, len(connected))
	var wg sync.WaitGroup

	for i, h := range connected {
		wg.Add(1)
		go func(i int, h models.Host) {
			defer wg.Done()
			qctx, cancel := context.WithTimeout(ctx, se.Timeout)
			defer cancel()

			busy, err := se.Calendar.QueryFreeBusy(qctx, []models.Host{h}, start, end)
			if err != nil {
				se.Logger.Warn("could not verify availability, treating host as unavailable",
					zap.String("hostEmail", h.Email), zap.Error(err))
				return
			}
			free[i] = len(busy[h.Email]) == 0
		}(i, h)
	}
	wg.Wait()

	var candidates []models.Host
	for i, ok := range free {
		if ok {
			candidates = append(candidates, connected[i])
		}
	}
	return candidates
}

// leastBookedToday narrows the candidates to those with the minimum
// booking count on the requested slot's own UTC day.
func (se *DefaultSchedulingEngine) leastBookedToday(ctx context.Context, candidates []models.Host, day string) ([]models.Host, error) {
	counts := make([]int, len(candidates))
	minCount := -1
	for i, h := range candidates {
		n, err := se.Log.CountByHostAndDay(ctx, h.ID, day)
		if err != nil {
			return nil, fmt.Errorf("counting bookings for host %s: %w", h.ID, err)
		}
		counts[i] = n
		if minCount < 0 || n < minCount {
			minCount = n
		}
	}

	var least []models.Host
	for i, h := range candidates {
		if counts[i] == minCount {
			least = append(least, h)
		}
	}
	return least, nil
}

// pickRoundRobin scans the connected roster starting after the cursor,
// wrapping at most once, and returns the first host in the least-booked
// set together with its roster position. The cursor itself is only
// advanced by the caller once event creation succeeds.
func (se *DefaultSchedulingEngine) pickRoundRobin(connected, leastBooked []models.Host) (models.Host, int) {
	idx := (se.cursor + 1) % len(connected)
	for range connected {
		candidate := connected[idx]
		for _, h := range leastBooked {
			if h.ID == candidate.ID {
				return candidate, idx
			}
		}
		idx = (idx + 1) % len(connected)
	}

	// Unreachable when leastBooked is drawn from connected; kept as a
	// direct fallback mirroring the scan's contract.
	fallback := leastBooked[0]
	for i, h := range connected {
		if h.ID == fallback.ID {
			return fallback, i
		}
	}
	return fallback, se.cursor
}

// ListBookings returns the recorded bookings for one UTC day.
func (se *DefaultSchedulingEngine) ListBookings(ctx context.Context, day string) ([]models.Booking, error) {
	return se.Log.ListByDay(ctx, day)
}
