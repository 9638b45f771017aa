// File: services/intelligence/interface.go
package ai

import (
	"context"
	"time"
)

// EventInfo carries everything needed to describe a recording session.
type EventInfo struct {
	HostName   string
	GuestName  string
	GuestEmail string
	Topic      string
	Date       time.Time
	Time       string
}

// EventDetails is the generated calendar event text.
type EventDetails struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// DetailsGenerator produces event title/description text. Implementations
// never fail the caller: when generation is unavailable they return the
// deterministic fallback built purely from the input fields.
type DetailsGenerator interface {
	GenerateDetails(ctx context.Context, info EventInfo) EventDetails
}

// FallbackDetails builds event details from the input fields alone. It is
// the result whenever the generative backend is disabled or erroring.
func FallbackDetails(info EventInfo) EventDetails {
	return EventDetails{
		Title: "Podcast Recording: " + info.HostName + " w/ " + info.GuestName,
		Description: "Podcast recording session with " + info.GuestName +
			" (" + info.GuestEmail + ") to discuss \"" + info.Topic + "\".",
	}
}
