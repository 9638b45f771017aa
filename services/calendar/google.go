package calendar

import (
	"context"
	"fmt"
	"time"

	"podbooker/config"
	"podbooker/models"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// OAuthConfig builds the OAuth2 config used for the host connect flow and
// for all authenticated calendar calls.
func OAuthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     config.AppConfig.GCPClientID,
		ClientSecret: config.AppConfig.GCPClientSecret,
		RedirectURL:  config.AppConfig.RedirectURI,
		Scopes: []string{
			gcal.CalendarEventsScope,
			gcal.CalendarReadonlyScope,
		},
		Endpoint: google.Endpoint,
	}
}

// GoogleProvider implements Provider against the Google Calendar API,
// authenticating each call with the relevant host's stored token.
type GoogleProvider struct {
	OAuth  *oauth2.Config
	Tokens TokenStore
}

func NewGoogleProvider(tokens TokenStore) *GoogleProvider {
	return &GoogleProvider{OAuth: OAuthConfig(), Tokens: tokens}
}

func (g *GoogleProvider) service(ctx context.Context, tok *oauth2.Token) (*gcal.Service, error) {
	return gcal.NewService(ctx, option.WithTokenSource(g.OAuth.TokenSource(ctx, tok)))
}

// QueryFreeBusy issues a single batched free/busy query covering all the
// given hosts, authenticated as the first of them.
func (g *GoogleProvider) QueryFreeBusy(ctx context.Context, hosts []models.Host, min, max time.Time) (map[string][]models.BusyInterval, error) {
	if len(hosts) == 0 {
		return map[string][]models.BusyInterval{}, nil
	}

	tok, err := g.Tokens.Get(ctx, hosts[0].ID)
	if err != nil {
		return nil, fmt.Errorf("no credential for host %s: %w", hosts[0].ID, err)
	}
	srv, err := g.service(ctx, tok)
	if err != nil {
		return nil, fmt.Errorf("calendar service: %w", err)
	}

	items := make([]*gcal.FreeBusyRequestItem, 0, len(hosts))
	for _, h := range hosts {
		items = append(items, &gcal.FreeBusyRequestItem{Id: h.Email})
	}

	resp, err := srv.Freebusy.Query(&gcal.FreeBusyRequest{
		TimeMin: min.UTC().Format(time.RFC3339),
		TimeMax: max.UTC().Format(time.RFC3339),
		Items:   items,
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("freebusy query: %w", err)
	}

	busy := make(map[string][]models.BusyInterval, len(resp.Calendars))
	for email, cal := range resp.Calendars {
		for _, p := range cal.Busy {
			start, err := time.Parse(time.RFC3339, p.Start)
			if err != nil {
				return nil, fmt.Errorf("bad busy start %q: %w", p.Start, err)
			}
			end, err := time.Parse(time.RFC3339, p.End)
			if err != nil {
				return nil, fmt.Errorf("bad busy end %q: %w", p.End, err)
			}
			busy[email] = append(busy[email], models.BusyInterval{Start: start, End: end})
		}
	}
	return busy, nil
}

// CreateEvent inserts the event on the host's primary calendar with a Meet
// conference attached, inviting the guest alongside the host.
func (g *GoogleProvider) CreateEvent(ctx context.Context, host models.Host, req EventRequest) (CreatedEvent, error) {
	tok, err := g.Tokens.Get(ctx, host.ID)
	if err != nil {
		return CreatedEvent{}, fmt.Errorf("no credential for host %s: %w", host.ID, err)
	}
	srv, err := g.service(ctx, tok)
	if err != nil {
		return CreatedEvent{}, fmt.Errorf("calendar service: %w", err)
	}

	event := &gcal.Event{
		Summary:     req.Title,
		Description: req.Description,
		Start:       &gcal.EventDateTime{DateTime: req.Start.UTC().Format(time.RFC3339), TimeZone: "UTC"},
		End:         &gcal.EventDateTime{DateTime: req.End.UTC().Format(time.RFC3339), TimeZone: "UTC"},
		Attendees: []*gcal.EventAttendee{
			{Email: host.Email},
			{Email: req.GuestEmail},
		},
		ConferenceData: &gcal.ConferenceData{
			CreateRequest: &gcal.CreateConferenceRequest{
				RequestId: "podcast-booking-" + uuid.New().String(),
				ConferenceSolutionKey: &gcal.ConferenceSolutionKey{
					Type: "hangoutsMeet",
				},
			},
		},
	}

	created, err := srv.Events.Insert("primary", event).
		ConferenceDataVersion(1).
		Context(ctx).
		Do()
	if err != nil {
		return CreatedEvent{}, fmt.Errorf("event insert: %w", err)
	}

	return CreatedEvent{EventID: created.Id, MeetLink: created.HangoutLink}, nil
}
