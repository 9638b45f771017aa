package scheduling

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"podbooker/models"
	"podbooker/services/calendar"
	ai "podbooker/services/intelligence"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// fakeProvider serves canned busy intervals per host email and records
// created events.
type fakeProvider struct {
	mu         sync.Mutex
	busy       map[string][]models.BusyInterval
	queryErr   error
	perHostErr map[string]error
	createErr  error
	created    []calendar.EventRequest
	seq        int
}

func (f *fakeProvider) QueryFreeBusy(_ context.Context, hosts []models.Host, min, max time.Time) (map[string][]models.BusyInterval, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	if len(hosts) == 1 {
		if err := f.perHostErr[hosts[0].Email]; err != nil {
			return nil, err
		}
	}
	out := make(map[string][]models.BusyInterval)
	for _, h := range hosts {
		for _, b := range f.busy[h.Email] {
			if min.Before(b.End) && max.After(b.Start) {
				out[h.Email] = append(out[h.Email], b)
			}
		}
	}
	return out, nil
}

func (f *fakeProvider) CreateEvent(_ context.Context, _ models.Host, req calendar.EventRequest) (calendar.CreatedEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return calendar.CreatedEvent{}, f.createErr
	}
	f.seq++
	f.created = append(f.created, req)
	return calendar.CreatedEvent{
		EventID:  fmt.Sprintf("evt-%d", f.seq),
		MeetLink: "https://meet.example/abc",
	}, nil
}

func (f *fakeProvider) markBusy(email string, start, end time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.busy == nil {
		f.busy = make(map[string][]models.BusyInterval)
	}
	f.busy[email] = append(f.busy[email], models.BusyInterval{Start: start, End: end})
}

var (
	hostA = models.Host{ID: "1", Name: "Alice", Email: "alice@example.com"}
	hostB = models.Host{ID: "2", Name: "Bob", Email: "bob@example.com"}
)

// noTokens is a TokenStore with nothing connected.
type noTokens struct{}

func (noTokens) Save(context.Context, string, *oauth2.Token) error { return nil }
func (noTokens) Get(context.Context, string) (*oauth2.Token, error) {
	return nil, fmt.Errorf("no token")
}
func (noTokens) Connected(context.Context, string) bool { return false }

func newTestEngine(t *testing.T, fp *fakeProvider, connected ...models.Host) *DefaultSchedulingEngine {
	t.Helper()
	tokens := calendar.NewMemoryTokenStore()
	for _, h := range connected {
		err := tokens.Save(context.Background(), h.ID, &oauth2.Token{AccessToken: "tok-" + h.ID})
		if err != nil {
			t.Fatalf("saving token: %v", err)
		}
	}
	return NewSchedulingEngine(
		connected,
		fp,
		tokens,
		NewMemoryBookingLog(),
		ai.StaticGenerator{},
		SlotConfig{WorkdayStartHour: 9, WorkdayEndHour: 17, SlotDuration: time.Hour},
		time.Second,
		zap.NewNop(),
	)
}

func utcTime(day string, hour int) time.Time {
	d, err := time.Parse("2006-01-02", day)
	if err != nil {
		panic(err)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), hour, 0, 0, 0, time.UTC)
}
