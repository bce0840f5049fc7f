/*
Package assistant implements the conversational coach: intent
classification, structured workout generation, casual chat, and the
check-in message generation used by the inactivity monitor.
*/
package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"FitMind_V0.1/internal/database"
	"FitMind_V0.1/internal/geminiservice"
	"FitMind_V0.1/internal/utility"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rs/zerolog/log"
)

// Completer is the slice of the Gemini client the assistant depends on.
// Tests substitute a canned implementation.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	CompleteStructured(ctx context.Context, systemPrompt, userPrompt string, schema *geminiservice.GeminiSchema) (string, error)
}

const (
	contextCacheSize = 256
	contextCacheTTL  = 10 * time.Minute
)

// Service orchestrates the assistant flows. Construct with NewService.
type Service struct {
	llm     Completer
	queries *database.Queries

	// contextCache holds rendered user-context strings keyed by user ID so
	// repeated chat turns do not re-query the profile every time.
	contextCache *expirable.LRU[string, string]
}

func NewService(llm Completer, q *database.Queries) *Service {
	return &Service{
		llm:          llm,
		queries:      q,
		contextCache: expirable.NewLRU[string, string](contextCacheSize, nil, contextCacheTTL),
	}
}

// ChatResponse is the assistant's reply to one user turn.
type ChatResponse struct {
	Reply          string       `json:"reply"`
	CreatedWorkout *WorkoutPlan `json:"created_workout,omitempty"`
	PlanID         string       `json:"plan_id,omitempty"`
}

// Chat handles one conversational turn: classify the utterance, then either
// generate-and-persist a workout plan or answer as a casual coach.
//
// Failure semantics follow the taxonomy: classification transport errors
// propagate to the caller; a generation parse failure is answered with the
// verbatim apology template and nothing is persisted.
func (s *Service) Chat(ctx context.Context, userID, text, history string) (*ChatResponse, error) {
	userContext := s.UserContext(ctx, userID)

	create, err := s.IsCreateWorkoutRequest(ctx, text, history)
	if err != nil {
		return nil, fmt.Errorf("intent classification failed: %w", err)
	}

	if !create {
		reply, err := s.llm.Complete(ctx, CasualChatSystemPrompt, BuildCasualChatPrompt(userContext, history, text))
		if err != nil {
			return nil, fmt.Errorf("casual chat completion failed: %w", err)
		}
		return &ChatResponse{Reply: reply}, nil
	}

	plan, err := s.GenerateWorkout(ctx, userContext, history, text)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Workout generation failed")
		// Do not persist anything on a parse failure; apologize verbatim.
		return &ChatResponse{Reply: WorkoutApology}, nil
	}

	exercisesJSON, err := json.Marshal(plan.Exercises)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal exercises: %w", err)
	}

	days := make([]int32, 0, len(plan.SelectedDays))
	for _, d := range plan.SelectedDays {
		days = append(days, int32(d))
	}

	saved, err := s.queries.CreateWorkoutPlan(ctx, database.CreateWorkoutPlanParams{
		UserID:       userID,
		WorkoutName:  plan.WorkoutName,
		WorkoutType:  plan.WorkoutType,
		SelectedDays: days,
		Exercises:    exercisesJSON,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save workout plan: %w", err)
	}

	planID, _ := utility.PgtypeUUIDToString(saved.PlanID)
	return &ChatResponse{
		Reply:          fmt.Sprintf("Done! I've created \"%s\" for you. You can find it in your workouts tab.", plan.WorkoutName),
		CreatedWorkout: plan,
		PlanID:         planID,
	}, nil
}

// UserContext returns the rendered profile context for a user, serving from
// the LRU when possible. A missing profile yields an empty context, which
// the prompt builders treat as "no profile on file".
func (s *Service) UserContext(ctx context.Context, userID string) string {
	if cached, ok := s.contextCache.Get(userID); ok {
		return cached
	}

	var rendered string
	profile, err := s.queries.GetUserProfile(ctx, userID)
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("Failed to fetch profile for context")
		rendered = BuildUserContext(nil)
	} else {
		rendered = BuildUserContext(&profile)
	}

	s.contextCache.Add(userID, rendered)
	return rendered
}

// InvalidateUserContext drops the cached context, e.g. after a profile update.
func (s *Service) InvalidateUserContext(userID string) {
	s.contextCache.Remove(userID)
}
