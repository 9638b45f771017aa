// File: services/intelligence/gemini.go
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	genai "github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// GeminiGenerator generates event details with Gemini, falling back to the
// deterministic template whenever the model is unavailable or returns
// something unusable.
type GeminiGenerator struct {
	model  *genai.GenerativeModel
	logger *zap.Logger
}

// StaticGenerator always returns the fallback details. Used when no API
// key is configured.
type StaticGenerator struct{}

func (StaticGenerator) GenerateDetails(_ context.Context, info EventInfo) EventDetails {
	return FallbackDetails(info)
}

// NewDetailsGenerator picks the Gemini-backed generator when an API key is
// configured, the static fallback otherwise.
func NewDetailsGenerator(apiKey string, logger *zap.Logger) DetailsGenerator {
	if apiKey == "" {
		logger.Warn("GEMINI_API_KEY not set, using fallback event details")
		return StaticGenerator{}
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		logger.Warn("failed to create Gemini client, using fallback event details", zap.Error(err))
		return StaticGenerator{}
	}

	model := client.GenerativeModel("models/gemini-2.5-flash")
	model.ResponseMIMEType = "application/json"
	return &GeminiGenerator{model: model, logger: logger}
}

func (g *GeminiGenerator) GenerateDetails(ctx context.Context, info EventInfo) EventDetails {
	prompt := buildPrompt(info)

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		g.logger.Warn("gemini generate error, using fallback details", zap.Error(err))
		return FallbackDetails(info)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		g.logger.Warn("gemini returned no candidates, using fallback details")
		return FallbackDetails(info)
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}

	var details EventDetails
	if err := json.Unmarshal([]byte(strings.TrimSpace(sb.String())), &details); err != nil ||
		details.Title == "" || details.Description == "" {
		g.logger.Warn("gemini response was not the expected JSON, using fallback details", zap.Error(err))
		return FallbackDetails(info)
	}
	return details
}

func buildPrompt(info EventInfo) string {
	formattedDate := info.Date.UTC().Format("Monday, January 2, 2006")

	return fmt.Sprintf(`You are a helpful assistant responsible for creating calendar event details for a podcast recording session.
Generate a concise, professional, and friendly calendar event title and a detailed event description.

**Event Information:**
- Podcast Host: %s
- Guest: %s
- Guest Email: %s
- Topic of Discussion: "%s"
- Date: %s
- Time: %s

**Instructions:**
1. **Title:** Create a clear and concise title following the format: "Podcast Recording: [Host Name] w/ [Guest Name]".
2. **Description:** Create a detailed description that welcomes the guest, states the purpose of the meeting, reiterates the topic, includes the date and time, gives a brief agenda (pre-chat, recording, post-chat), and closes positively.

**Output Format:**
Return a single JSON object with two keys: "title" and "description". Do not include any other text or markdown formatting.`,
		info.HostName, info.GuestName, info.GuestEmail, info.Topic, formattedDate, info.Time)
}
