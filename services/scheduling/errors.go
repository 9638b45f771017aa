package scheduling

import "errors"

// Sentinel errors surfaced by the scheduling engine. None of them is
// retried inside the engine; retries are the caller's responsibility.
var (
	// ErrProviderUnavailable is returned when the upstream calendar cannot
	// be queried during an availability fetch. The fetch never partially
	// degrades: no host is silently treated as free or busy.
	ErrProviderUnavailable = errors.New("calendar provider unavailable")

	// ErrNoHostsConnected is returned when zero hosts have a stored
	// calendar credential.
	ErrNoHostsConnected = errors.New("no hosts have connected their calendars")

	// ErrSlotUnavailable is returned when the booking-time recheck finds
	// no free host for the requested slot. Callers should re-fetch
	// availability and pick another time.
	ErrSlotUnavailable = errors.New("slot is no longer available")

	// ErrEventCreationFailed is returned when the provider rejects the
	// event after a host was selected. Fairness state is left untouched.
	ErrEventCreationFailed = errors.New("failed to create calendar event")
)
