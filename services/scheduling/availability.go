package scheduling

import (
	"context"
	"fmt"
	"sync"
	"time"

	"podbooker/models"
	"podbooker/services/calendar"
	ai "podbooker/services/intelligence"

	"go.uber.org/zap"
)

// DefaultSchedulingEngine implements SchedulingService. It owns the
// round-robin cursor; the cursor is process-lifetime state and resets on
// restart, which is accepted: the daily-load tier is rebuilt from the
// booking log, so restarts only perturb tie-breaks.
type DefaultSchedulingEngine struct {
	Hosts    []models.Host
	Calendar calendar.Provider
	Tokens   calendar.TokenStore
	Log      BookingLog
	Details  ai.DetailsGenerator
	Slots    SlotConfig
	Timeout  time.Duration
	Logger   *zap.Logger

	// mu serializes the fairness-and-record section of a booking attempt:
	// cursor read-modify-write and the log append must not interleave.
	mu     sync.Mutex
	cursor int
}

func NewSchedulingEngine(
	hosts []models.Host,
	provider calendar.Provider,
	tokens calendar.TokenStore,
	log BookingLog,
	details ai.DetailsGenerator,
	slots SlotConfig,
	timeout time.Duration,
	logger *zap.Logger,
) *DefaultSchedulingEngine {
	return &DefaultSchedulingEngine{
		Hosts:    hosts,
		Calendar: provider,
		Tokens:   tokens,
		Log:      log,
		Details:  details,
		Slots:    slots,
		Timeout:  timeout,
		Logger:   logger,
		cursor:   -1,
	}
}

// connectedHosts returns the hosts with a stored credential, preserving
// the canonical roster order. Availability filtering and the round-robin
// scan both depend on this order being stable.
func (se *DefaultSchedulingEngine) connectedHosts(ctx context.Context) []models.Host {
	var connected []models.Host
	for _, h := range se.Hosts {
		if se.Tokens.Connected(ctx, h.ID) {
			connected = append(connected, h)
		}
	}
	return connected
}

// HostStatuses reports the full roster with connected flags.
func (se *DefaultSchedulingEngine) HostStatuses(ctx context.Context) []models.HostStatus {
	statuses := make([]models.HostStatus, 0, len(se.Hosts))
	for _, h := range se.Hosts {
		statuses = append(statuses, models.HostStatus{
			ID:        h.ID,
			Name:      h.Name,
			Email:     h.Email,
			Connected: se.Tokens.Connected(ctx, h.ID),
		})
	}
	return statuses
}

// ListAvailableSlots computes the bookable slots for one UTC calendar
// day: one batched free/busy fetch across the connected hosts, then the
// any-host-free union over the candidate ladder. Read-only, no locking;
// the result may be stale by the time a guest books, which is why BookSlot
// rechecks.
func (se *DefaultSchedulingEngine) ListAvailableSlots(ctx context.Context, day time.Time) ([]models.Slot, error) {
	connected := se.connectedHosts(ctx)
	if len(connected) == 0 {
		return []models.Slot{}, nil
	}

	day = day.UTC()
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24*time.Hour - time.Millisecond)

	qctx, cancel := context.WithTimeout(ctx, se.Timeout)
	defer cancel()

	busyByEmail, err := se.Calendar.QueryFreeBusy(qctx, connected, dayStart, dayEnd)
	if err != nil {
		se.Logger.Error("free/busy fetch failed", zap.String("day", dayStart.Format("2006-01-02")), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	available := []models.Slot{}
	for _, slot := range se.Slots.DaySlots(dayStart) {
		slotEnd := slot.StartTime.Add(se.Slots.SlotDuration)
		for _, h := range connected {
			if hostFree(busyByEmail[h.Email], slot.StartTime, slotEnd) {
				available = append(available, slot)
				break
			}
		}
	}
	return available, nil
}

// hostFree reports whether none of the busy intervals overlaps the
// half-open window [start, end). Touching endpoints do not overlap, so
// adjacent slots stay independently bookable.
func hostFree(busy []models.BusyInterval, start, end time.Time) bool {
	for _, b := range busy {
		if start.Before(b.End) && end.After(b.Start) {
			return false
		}
	}
	return true
}
