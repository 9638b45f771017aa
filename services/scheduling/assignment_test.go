package scheduling

import (
	"context"
	"errors"
	"testing"

	"podbooker/models"

	"github.com/stretchr/testify/require"
)

func bookingReq(day string, hour int) models.BookingRequest {
	return models.BookingRequest{
		StartTime:  utcTime(day, hour),
		GuestName:  "John Doe",
		GuestEmail: "john@example.com",
		Topic:      "Go concurrency",
	}
}

func TestBookSlotNoHostsConnected(t *testing.T) {
	engine := newTestEngine(t, &fakeProvider{})
	engine.Hosts = []models.Host{hostA}
	engine.Tokens = noTokens{}

	_, err := engine.BookSlot(context.Background(), bookingReq("2024-06-10", 11))
	require.ErrorIs(t, err, ErrNoHostsConnected)
}

func TestBookSlotAllHostsBusy(t *testing.T) {
	fp := &fakeProvider{}
	fp.markBusy(hostA.Email, utcTime("2024-06-10", 11), utcTime("2024-06-10", 12))
	fp.markBusy(hostB.Email, utcTime("2024-06-10", 11), utcTime("2024-06-10", 12))
	engine := newTestEngine(t, fp, hostA, hostB)

	_, err := engine.BookSlot(context.Background(), bookingReq("2024-06-10", 11))
	require.ErrorIs(t, err, ErrSlotUnavailable)
}

// A host that turned busy between the availability snapshot and the
// booking call is caught by the live recheck, never double-booked.
func TestBookSlotRaceSafety(t *testing.T) {
	ctx := context.Background()
	fp := &fakeProvider{}
	engine := newTestEngine(t, fp, hostA)

	slots, err := engine.ListAvailableSlots(ctx, utcTime("2024-06-10", 0))
	require.NoError(t, err)
	require.Len(t, slots, 8)

	// The only host's calendar fills up after the guest saw the slot.
	fp.markBusy(hostA.Email, utcTime("2024-06-10", 11), utcTime("2024-06-10", 12))

	_, err = engine.BookSlot(ctx, bookingReq("2024-06-10", 11))
	require.ErrorIs(t, err, ErrSlotUnavailable)
	require.Empty(t, fp.created)
}

func TestBookSlotAssignsTheFreeHost(t *testing.T) {
	fp := &fakeProvider{}
	fp.markBusy(hostA.Email, utcTime("2024-06-10", 11), utcTime("2024-06-10", 12))
	engine := newTestEngine(t, fp, hostA, hostB)

	booking, err := engine.BookSlot(context.Background(), bookingReq("2024-06-10", 11))
	require.NoError(t, err)
	require.Equal(t, hostB, booking.Host)
	require.Equal(t, utcTime("2024-06-10", 11), booking.StartTime)
	require.Equal(t, "https://meet.example/abc", booking.MeetLink)
	require.NotEmpty(t, booking.ID)
}

// Two sequential bookings on the same day with both hosts free land on
// different hosts.
func TestBookSlotRoundRobinAdvances(t *testing.T) {
	ctx := context.Background()
	engine := newTestEngine(t, &fakeProvider{}, hostA, hostB)

	first, err := engine.BookSlot(ctx, bookingReq("2024-06-10", 9))
	require.NoError(t, err)
	second, err := engine.BookSlot(ctx, bookingReq("2024-06-10", 10))
	require.NoError(t, err)

	require.NotEqual(t, first.Host.ID, second.Host.ID)
}

// With a tie in the daily counts the cursor rotates through the roster
// rather than restarting at the same host.
func TestBookSlotRoundRobinWrapsAround(t *testing.T) {
	ctx := context.Background()
	engine := newTestEngine(t, &fakeProvider{}, hostA, hostB)

	var assigned []string
	for hour := 9; hour < 13; hour++ {
		b, err := engine.BookSlot(ctx, bookingReq("2024-06-10", hour))
		require.NoError(t, err)
		assigned = append(assigned, b.Host.ID)
	}
	require.Equal(t, []string{"1", "2", "1", "2"}, assigned)
}

// The load-balancing tier outranks the cursor: a host with fewer
// bookings today wins even when the rotation points elsewhere.
func TestBookSlotLeastBookedTier(t *testing.T) {
	ctx := context.Background()
	engine := newTestEngine(t, &fakeProvider{}, hostA, hostB)

	// A already carries two bookings today; the cursor would prefer A next.
	for _, hour := range []int{9, 10} {
		require.NoError(t, engine.Log.Append(ctx, models.Booking{
			ID: "prior", StartTime: utcTime("2024-06-10", hour), Host: hostA,
		}))
	}
	engine.cursor = 1 // scan starts at A

	booking, err := engine.BookSlot(ctx, bookingReq("2024-06-10", 11))
	require.NoError(t, err)
	require.Equal(t, hostB, booking.Host)
}

// Daily counts consider only the requested slot's own day.
func TestBookSlotDailyCountIsPerDay(t *testing.T) {
	ctx := context.Background()
	engine := newTestEngine(t, &fakeProvider{}, hostA, hostB)

	// Heavy load on B yesterday must not influence today.
	for _, hour := range []int{9, 10, 11} {
		require.NoError(t, engine.Log.Append(ctx, models.Booking{
			ID: "prior", StartTime: utcTime("2024-06-09", hour), Host: hostB,
		}))
	}
	engine.cursor = 0 // rotation points at B next

	booking, err := engine.BookSlot(ctx, bookingReq("2024-06-10", 9))
	require.NoError(t, err)
	require.Equal(t, hostB, booking.Host)
}

// A per-host recheck failure marks only that host unavailable.
func TestBookSlotRecheckFailSafePerHost(t *testing.T) {
	fp := &fakeProvider{perHostErr: map[string]error{hostA.Email: errors.New("timeout")}}
	engine := newTestEngine(t, fp, hostA, hostB)

	booking, err := engine.BookSlot(context.Background(), bookingReq("2024-06-10", 11))
	require.NoError(t, err)
	require.Equal(t, hostB, booking.Host)
}

func TestBookSlotEveryRecheckFailing(t *testing.T) {
	fp := &fakeProvider{perHostErr: map[string]error{
		hostA.Email: errors.New("timeout"),
		hostB.Email: errors.New("timeout"),
	}}
	engine := newTestEngine(t, fp, hostA, hostB)

	_, err := engine.BookSlot(context.Background(), bookingReq("2024-06-10", 11))
	require.ErrorIs(t, err, ErrSlotUnavailable)
}

// A failed event creation leaves the cursor untouched: the next attempt's
// rotation behaves as if the failed attempt never happened, and nothing
// is appended to the log.
func TestBookSlotRollbackOnEventCreationFailure(t *testing.T) {
	ctx := context.Background()
	fp := &fakeProvider{createErr: errors.New("calendar rejected the event")}
	engine := newTestEngine(t, fp, hostA, hostB)

	_, err := engine.BookSlot(ctx, bookingReq("2024-06-10", 9))
	require.ErrorIs(t, err, ErrEventCreationFailed)

	n, err := engine.Log.CountByHostAndDay(ctx, hostA.ID, "2024-06-10")
	require.NoError(t, err)
	require.Zero(t, n)

	fp.mu.Lock()
	fp.createErr = nil
	fp.mu.Unlock()

	booking, err := engine.BookSlot(ctx, bookingReq("2024-06-10", 10))
	require.NoError(t, err)
	require.Equal(t, hostA, booking.Host, "rotation restarts from the pre-failure cursor")
}

func TestBookSlotRecordsBooking(t *testing.T) {
	ctx := context.Background()
	engine := newTestEngine(t, &fakeProvider{}, hostA)

	booking, err := engine.BookSlot(ctx, bookingReq("2024-06-10", 11))
	require.NoError(t, err)

	n, err := engine.Log.CountByHostAndDay(ctx, hostA.ID, "2024-06-10")
	require.NoError(t, err)
	require.Equal(t, 1, n)

	day, err := engine.ListBookings(ctx, "2024-06-10")
	require.NoError(t, err)
	require.Equal(t, []models.Booking{booking}, day)
}

func TestBookSlotEventWindowMatchesSlotDuration(t *testing.T) {
	fp := &fakeProvider{}
	engine := newTestEngine(t, fp, hostA)

	_, err := engine.BookSlot(context.Background(), bookingReq("2024-06-10", 11))
	require.NoError(t, err)

	require.Len(t, fp.created, 1)
	require.Equal(t, utcTime("2024-06-10", 11), fp.created[0].Start)
	require.Equal(t, utcTime("2024-06-10", 12), fp.created[0].End)
	require.Equal(t, "john@example.com", fp.created[0].GuestEmail)
	require.Contains(t, fp.created[0].Title, "Alice")
	require.Contains(t, fp.created[0].Title, "John Doe")
}

// Concurrent bookings for distinct slots never corrupt the cursor or the
// log: every attempt succeeds exactly once and daily counts stay balanced.
func TestBookSlotConcurrentAttempts(t *testing.T) {
	ctx := context.Background()
	engine := newTestEngine(t, &fakeProvider{}, hostA, hostB)

	errs := make(chan error, 4)
	for hour := 9; hour < 13; hour++ {
		go func(hour int) {
			_, err := engine.BookSlot(ctx, bookingReq("2024-06-10", hour))
			errs <- err
		}(hour)
	}
	for i := 0; i < 4; i++ {
		require.NoError(t, <-errs)
	}

	nA, err := engine.Log.CountByHostAndDay(ctx, hostA.ID, "2024-06-10")
	require.NoError(t, err)
	nB, err := engine.Log.CountByHostAndDay(ctx, hostB.ID, "2024-06-10")
	require.NoError(t, err)
	require.Equal(t, 2, nA)
	require.Equal(t, 2, nB)
}
