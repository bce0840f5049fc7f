package assistant

import (
	"context"
	"errors"
	"testing"

	"FitMind_V0.1/internal/database"
	"FitMind_V0.1/internal/geminiservice"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCompleter returns canned responses and records the prompts it saw.
type fakeCompleter struct {
	response       string
	structuredResp string
	err            error

	lastSystemPrompt string
	lastUserPrompt   string
}

func (f *fakeCompleter) Complete(_ context.Context, systemPrompt, userPrompt string) (string, error) {
	f.lastSystemPrompt = systemPrompt
	f.lastUserPrompt = userPrompt
	return f.response, f.err
}

func (f *fakeCompleter) CompleteStructured(_ context.Context, systemPrompt, userPrompt string, _ *geminiservice.GeminiSchema) (string, error) {
	f.lastSystemPrompt = systemPrompt
	f.lastUserPrompt = userPrompt
	return f.structuredResp, f.err
}

// emptyDB satisfies database.DBTX with a store that holds nothing, so any
// profile lookup falls back to the empty context.
type emptyDB struct{}

func (emptyDB) Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, pgx.ErrNoRows
}

func (emptyDB) Query(context.Context, string, ...interface{}) (pgx.Rows, error) {
	return nil, pgx.ErrNoRows
}

func (emptyDB) QueryRow(context.Context, string, ...interface{}) pgx.Row {
	return noRow{}
}

type noRow struct{}

func (noRow) Scan(...interface{}) error { return pgx.ErrNoRows }

func newTestService(llm Completer) *Service {
	return NewService(llm, database.New(emptyDB{}))
}

func TestIsCreateWorkoutRequestStrictMatch(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     bool
	}{
		{name: "exact token", response: "CREATE", want: true},
		{name: "lowercase", response: "create", want: true},
		{name: "surrounding whitespace", response: "  CREATE \n", want: true},
		{name: "negative token", response: "NO", want: false},
		{name: "empty output", response: "", want: false},
		{name: "verbose explanation", response: "Sure! The intent here is CREATE.", want: false},
		{name: "partial phrase", response: "CREATE WORKOUT", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(&fakeCompleter{response: tt.response})
			got, err := svc.IsCreateWorkoutRequest(context.Background(), "make me a plan", "")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsCreateWorkoutRequestPropagatesTransportError(t *testing.T) {
	wantErr := errors.New("gemini unavailable")
	svc := newTestService(&fakeCompleter{err: wantErr})

	_, err := svc.IsCreateWorkoutRequest(context.Background(), "hello", "")
	assert.ErrorIs(t, err, wantErr)
}

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{
			name:  "bare object",
			input: `{"workoutName":"Push Day"}`,
			want:  `{"workoutName":"Push Day"}`,
		},
		{
			name:  "object wrapped in prose",
			input: "Sure, here is your plan:\n```json\n{\"workoutName\":\"Push Day\"}\n```\nEnjoy!",
			want:  `{"workoutName":"Push Day"}`,
		},
		{
			name:  "braces inside string literals",
			input: `Here: {"workoutName":"Legs {heavy}","note":"use \"good\" form"} done`,
			want:  `{"workoutName":"Legs {heavy}","note":"use \"good\" form"}`,
		},
		{
			name:  "nested objects",
			input: `prefix {"a":{"b":{"c":1}},"d":2} suffix {"second":true}`,
			want:  `{"a":{"b":{"c":1}},"d":2}`,
		},
		{
			name:    "no object at all",
			input:   "I could not produce a plan this time.",
			wantErr: ErrNoJSON,
		},
		{
			name:    "unbalanced object",
			input:   `{"workoutName":"Push Day"`,
			wantErr: ErrNoJSON,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSONObject(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerateWorkoutParsesEmbeddedPlan(t *testing.T) {
	raw := `Here you go! {"workoutName":"Upper Body Strength","workoutType":"strength","selectedDays":[1,3,5],"exercises":[{"exerciseName":"Bench Press","numOfSets":4,"numOfReps":8,"exerciseWeight":60.0,"restTime":90}]} Have fun!`
	svc := newTestService(&fakeCompleter{response: raw})

	plan, err := svc.GenerateWorkout(context.Background(), "", "", "build me an upper body workout")
	require.NoError(t, err)

	assert.Equal(t, "Upper Body Strength", plan.WorkoutName)
	assert.Equal(t, []int{1, 3, 5}, plan.SelectedDays)
	require.Len(t, plan.Exercises, 1)
	assert.Equal(t, "Bench Press", plan.Exercises[0].ExerciseName)
	require.NotNil(t, plan.Exercises[0].ExerciseWeight)
	assert.InDelta(t, 60.0, *plan.Exercises[0].ExerciseWeight, 0.001)
	assert.Nil(t, plan.Exercises[0].ExerciseDuration)
}

func TestGenerateWorkoutMalformedJSON(t *testing.T) {
	svc := newTestService(&fakeCompleter{response: `{"workoutName": 42, "selectedDays": "monday"}`})

	_, err := svc.GenerateWorkout(context.Background(), "", "", "plan please")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed workout JSON")
}

// scriptedCompleter plays back one response per Complete call, in order.
type scriptedCompleter struct {
	responses []string
	calls     int
}

func (f *scriptedCompleter) Complete(_ context.Context, _, _ string) (string, error) {
	resp := f.responses[f.calls]
	f.calls++
	return resp, nil
}

func (f *scriptedCompleter) CompleteStructured(_ context.Context, _, _ string, _ *geminiservice.GeminiSchema) (string, error) {
	return "", errors.New("not scripted")
}

func TestChatCasualPath(t *testing.T) {
	svc := newTestService(&scriptedCompleter{responses: []string{
		"NO",
		"Drink some water and stretch before bed.",
	}})

	resp, err := svc.Chat(context.Background(), "user-1", "any recovery tips?", "")
	require.NoError(t, err)
	assert.Equal(t, "Drink some water and stretch before bed.", resp.Reply)
	assert.Nil(t, resp.CreatedWorkout)
	assert.Empty(t, resp.PlanID)
}

func TestChatApologizesOnGenerationFailure(t *testing.T) {
	svc := newTestService(&scriptedCompleter{responses: []string{
		"CREATE",
		"Sorry, I cannot produce that right now.", // no JSON object
	}})

	resp, err := svc.Chat(context.Background(), "user-1", "make me a leg day plan", "")
	require.NoError(t, err)
	assert.Equal(t, WorkoutApology, resp.Reply)
	assert.Nil(t, resp.CreatedWorkout)
	assert.Empty(t, resp.PlanID)
}

func TestGenerateCheckInBatchRejectsWrongLength(t *testing.T) {
	svc := newTestService(&fakeCompleter{
		structuredResp: `{"messages":[{"title":"Hey","body":"Time to move!"}]}`,
	})

	_, err := svc.GenerateCheckInBatch(context.Background(), "user-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 10 check-in messages")
}

func TestBuildUserContextNilProfile(t *testing.T) {
	assert.Equal(t, "", BuildUserContext(nil))
}

func TestBuildUserContextSubstitutesNotSet(t *testing.T) {
	profile := &database.UserProfile{
		DisplayName: pgtype.Text{String: "Alex", Valid: true},
		Age:         pgtype.Int4{Int32: 31, Valid: true},
		FitnessGoal: pgtype.Text{String: "build muscle", Valid: true},
	}

	got := BuildUserContext(profile)

	assert.Contains(t, got, "=== USER PROFILE ===")
	assert.Contains(t, got, "Name: Alex")
	assert.Contains(t, got, "Age: 31")
	assert.Contains(t, got, "Fitness goal: build muscle")
	// Missing fields render as "Not set", never disappear.
	assert.Contains(t, got, "Gender: Not set")
	assert.Contains(t, got, "Height: Not set")
	assert.Contains(t, got, "Equipment access: Not set")
}

func TestBuildUserContextStableShape(t *testing.T) {
	empty := BuildUserContext(&database.UserProfile{})
	full := BuildUserContext(&database.UserProfile{
		DisplayName:        pgtype.Text{String: "Sam", Valid: true},
		Age:                pgtype.Int4{Int32: 28, Valid: true},
		Gender:             pgtype.Text{String: "female", Valid: true},
		HeightCm:           pgtype.Float8{Float64: 170, Valid: true},
		WeightKg:           pgtype.Float8{Float64: 63.5, Valid: true},
		FitnessGoal:        pgtype.Text{String: "endurance", Valid: true},
		ExperienceLevel:    pgtype.Text{String: "intermediate", Valid: true},
		WorkoutDaysPerWeek: pgtype.Int4{Int32: 4, Valid: true},
		Injuries:           pgtype.Text{String: "none", Valid: true},
		EquipmentAccess:    pgtype.Text{String: "full gym", Valid: true},
	})

	// Same number of lines either way: the block shape never depends on
	// which fields are present.
	assert.Equal(t, countLines(empty), countLines(full))
}

func countLines(s string) int {
	n := 0
	for _, ch := range s {
		if ch == '\n' {
			n++
		}
	}
	return n
}
