package ai

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFallbackDetails(t *testing.T) {
	info := EventInfo{
		HostName:   "Alice",
		GuestName:  "John Doe",
		GuestEmail: "john@example.com",
		Topic:      "Go concurrency",
		Date:       time.Date(2024, 6, 10, 11, 0, 0, 0, time.UTC),
		Time:       "11:00 UTC",
	}

	details := FallbackDetails(info)
	require.Equal(t, "Podcast Recording: Alice w/ John Doe", details.Title)
	require.Equal(t, `Podcast recording session with John Doe (john@example.com) to discuss "Go concurrency".`, details.Description)
}

func TestStaticGeneratorUsesFallback(t *testing.T) {
	info := EventInfo{HostName: "Bob", GuestName: "Jane", GuestEmail: "jane@example.com", Topic: "Testing"}

	details := StaticGenerator{}.GenerateDetails(context.Background(), info)
	require.Equal(t, FallbackDetails(info), details)
}

func TestBuildPromptIncludesEventFields(t *testing.T) {
	info := EventInfo{
		HostName:   "Alice",
		GuestName:  "John Doe",
		GuestEmail: "john@example.com",
		Topic:      "Go concurrency",
		Date:       time.Date(2024, 6, 10, 11, 0, 0, 0, time.UTC),
		Time:       "11:00 UTC",
	}

	prompt := buildPrompt(info)
	require.Contains(t, prompt, "Alice")
	require.Contains(t, prompt, "John Doe")
	require.Contains(t, prompt, `"Go concurrency"`)
	require.Contains(t, prompt, "Monday, June 10, 2024")
	require.Contains(t, prompt, "11:00 UTC")
}
