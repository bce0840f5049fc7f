package assistant

import (
	"context"
	"strings"
)

// IsCreateWorkoutRequest classifies one user utterance. The comparison is
// strict equality against "CREATE" after trimming and upper-casing: any
// other response, including empty output or a verbose explanation, counts
// as a negative. Transport errors propagate to the caller untouched; no
// retry happens at this layer.
func (s *Service) IsCreateWorkoutRequest(ctx context.Context, text, history string) (bool, error) {
	raw, err := s.llm.Complete(ctx, IntentSystemPrompt, BuildIntentPrompt(text, history))
	if err != nil {
		return false, err
	}
	return strings.ToUpper(strings.TrimSpace(raw)) == "CREATE", nil
}
