package assistant

import (
	"context"
	"encoding/json"
	"fmt"

	"FitMind_V0.1/internal/geminiservice"
)

// CheckInMessage is one notification body in a generated batch.
type CheckInMessage struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// BatchSize is the fixed length of a check-in batch. The scheduler cycles
// through indices 0..BatchSize-1 round-robin.
const BatchSize = 10

// CheckInBatchSchema pins the structured response to exactly ten
// title/body pairs.
var CheckInBatchSchema = &geminiservice.GeminiSchema{
	Type: "OBJECT",
	Properties: map[string]*geminiservice.GeminiSchema{
		"messages": {
			Type:        "ARRAY",
			Description: "Exactly 10 check-in notification messages.",
			Items: &geminiservice.GeminiSchema{
				Type: "OBJECT",
				Properties: map[string]*geminiservice.GeminiSchema{
					"title": {
						Type:        "STRING",
						Description: "Notification title, max 6 words, no emoji.",
					},
					"body": {
						Type:        "STRING",
						Description: "One encouraging sentence, max 20 words.",
					},
				},
				Required: []string{"title", "body"},
			},
		},
	},
	Required: []string{"messages"},
}

type checkInBatchResponse struct {
	Messages []CheckInMessage `json:"messages"`
}

// GenerateCheckInBatch produces the 10-message batch the inactivity
// scheduler maps onto its notification series. Errors bubble up so the
// caller can fall back to its static batch; this function never pads or
// truncates silently.
func (s *Service) GenerateCheckInBatch(ctx context.Context, userID string) ([]CheckInMessage, error) {
	userContext := s.UserContext(ctx, userID)

	raw, err := s.llm.CompleteStructured(ctx, CheckInSystemPrompt, BuildCheckInBatchPrompt(userContext), CheckInBatchSchema)
	if err != nil {
		return nil, fmt.Errorf("check-in batch completion failed: %w", err)
	}

	var parsed checkInBatchResponse
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("malformed check-in batch JSON: %w", err)
	}
	if len(parsed.Messages) != BatchSize {
		return nil, fmt.Errorf("expected %d check-in messages, got %d", BatchSize, len(parsed.Messages))
	}
	return parsed.Messages, nil
}
