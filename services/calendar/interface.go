package calendar

import (
	"context"
	"time"

	"podbooker/models"

	"golang.org/x/oauth2"
)

// EventRequest describes a calendar event to create on a host's calendar.
type EventRequest struct {
	Start       time.Time
	End         time.Time
	Title       string
	Description string
	GuestEmail  string
}

// CreatedEvent is the provider's confirmation of a created event.
type CreatedEvent struct {
	EventID  string
	MeetLink string
}

// Provider is the upstream calendar capability. QueryFreeBusy returns, for
// each requested host email, the busy intervals overlapping [min, max).
// A host absent from the result map has no busy intervals in the range.
type Provider interface {
	QueryFreeBusy(ctx context.Context, hosts []models.Host, min, max time.Time) (map[string][]models.BusyInterval, error)
	CreateEvent(ctx context.Context, host models.Host, req EventRequest) (CreatedEvent, error)
}

// TokenStore holds each host's OAuth credential. A host with a stored
// token is considered connected.
type TokenStore interface {
	Save(ctx context.Context, hostID string, tok *oauth2.Token) error
	Get(ctx context.Context, hostID string) (*oauth2.Token, error)
	Connected(ctx context.Context, hostID string) bool
}
