package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNoJSON is returned when a generation response contains no JSON object
// at all. A malformed object is reported as a wrapped json error instead.
var ErrNoJSON = errors.New("no JSON object found in model response")

// WorkoutPlan mirrors the JSON shape the generation prompt demands.
type WorkoutPlan struct {
	WorkoutName  string     `json:"workoutName"`
	WorkoutType  string     `json:"workoutType"`
	SelectedDays []int      `json:"selectedDays"`
	Exercises    []Exercise `json:"exercises"`
}

type Exercise struct {
	ExerciseName     string   `json:"exerciseName"`
	NumOfSets        int      `json:"numOfSets"`
	NumOfReps        int      `json:"numOfReps"`
	ExerciseDuration *int     `json:"exerciseDuration,omitempty"`
	ExerciseWeight   *float64 `json:"exerciseWeight,omitempty"`
	RestTime         int      `json:"restTime"`
}

// GenerateWorkout asks the model for a plan and parses the first JSON
// object out of the response. Models sometimes wrap the object in prose
// despite the instructions, so extraction never assumes a bare object.
//
// selectedDays and the numeric exercise fields are intentionally NOT
// validated here; the schema bounds are enforced only by the prompt.
func (s *Service) GenerateWorkout(ctx context.Context, userContext, history, text string) (*WorkoutPlan, error) {
	raw, err := s.llm.Complete(ctx, WorkoutSystemPrompt, BuildFeatureFlowPrompt(userContext, history, text))
	if err != nil {
		return nil, fmt.Errorf("workout completion failed: %w", err)
	}

	jsonText, err := ExtractJSONObject(raw)
	if err != nil {
		return nil, err
	}

	var plan WorkoutPlan
	if err := json.Unmarshal([]byte(jsonText), &plan); err != nil {
		return nil, fmt.Errorf("malformed workout JSON: %w", err)
	}
	return &plan, nil
}

// ExtractJSONObject returns the first complete JSON object embedded in s,
// using a balanced-brace scan that is aware of string literals and escape
// sequences. Greedy first-to-last brace matching breaks as soon as the
// surrounding prose itself contains a brace, so the scan tracks depth
// instead.
func ExtractJSONObject(s string) (string, error) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		ch := s[i]

		if start >= 0 && inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '{':
			if start < 0 {
				start = i
			}
			depth++
		case '}':
			if start < 0 {
				continue
			}
			depth--
			if depth == 0 {
				return s[start : i+1], nil
			}
		case '"':
			if start >= 0 {
				inString = true
			}
		}
	}

	return "", ErrNoJSON
}
