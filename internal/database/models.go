package database

import (
	"encoding/json"

	"github.com/jackc/pgx/v5/pgtype"
)

type User struct {
	UserID       pgtype.UUID        `json:"user_id"`
	Email        string             `json:"email"`
	Username     string             `json:"username"`
	PasswordHash pgtype.Text        `json:"-"`
	CreatedAt    pgtype.Timestamptz `json:"created_at"`
}

type UserProfile struct {
	UserID             pgtype.UUID        `json:"user_id"`
	DisplayName        pgtype.Text        `json:"display_name"`
	Age                pgtype.Int4        `json:"age"`
	Gender             pgtype.Text        `json:"gender"`
	HeightCm           pgtype.Float8      `json:"height_cm"`
	WeightKg           pgtype.Float8      `json:"weight_kg"`
	FitnessGoal        pgtype.Text        `json:"fitness_goal"`
	ExperienceLevel    pgtype.Text        `json:"experience_level"`
	WorkoutDaysPerWeek pgtype.Int4        `json:"workout_days_per_week"`
	Injuries           pgtype.Text        `json:"injuries"`
	EquipmentAccess    pgtype.Text        `json:"equipment_access"`
	UpdatedAt          pgtype.Timestamptz `json:"updated_at"`
}

// WorkoutResult is a completed workout session. The canonical timestamp
// column for this source is created_at (exposed as createdAt).
type WorkoutResult struct {
	ResultID        pgtype.UUID        `json:"result_id"`
	UserID          string             `json:"user_id"`
	WorkoutName     string             `json:"workout_name"`
	WorkoutType     pgtype.Text        `json:"workout_type"`
	DurationMinutes pgtype.Int4        `json:"duration_minutes"`
	CaloriesBurned  pgtype.Int4        `json:"calories_burned"`
	Notes           pgtype.Text        `json:"notes"`
	CreatedAt       pgtype.Timestamptz `json:"createdAt"`
}

// WaterEntry is a single water-intake record. Its timestamp column is
// named time, unlike the other log sources.
type WaterEntry struct {
	EntryID  pgtype.UUID        `json:"entry_id"`
	UserID   string             `json:"user_id"`
	AmountMl int32              `json:"amount_ml"`
	Time     pgtype.Timestamptz `json:"time"`
}

type NutritionEntry struct {
	EntryID      pgtype.UUID        `json:"entry_id"`
	UserID       string             `json:"user_id"`
	MealName     string             `json:"meal_name"`
	Calories     pgtype.Int4        `json:"calories"`
	ProteinGrams pgtype.Float8      `json:"protein_grams"`
	CarbsGrams   pgtype.Float8      `json:"carbs_grams"`
	FatGrams     pgtype.Float8      `json:"fat_grams"`
	Timestamp    pgtype.Timestamptz `json:"timestamp"`
}

type BiometricEntry struct {
	EntryID           pgtype.UUID        `json:"entry_id"`
	UserID            string             `json:"user_id"`
	WeightKg          pgtype.Float8      `json:"weight_kg"`
	BodyFatPercentage pgtype.Float8      `json:"body_fat_percentage"`
	RestingHeartRate  pgtype.Int4        `json:"resting_heart_rate"`
	Timestamp         pgtype.Timestamptz `json:"timestamp"`
}

// WorkoutPlan is an AI-generated training plan persisted after the
// assistant confirms a creation request. Exercises is stored as jsonb.
type WorkoutPlan struct {
	PlanID       pgtype.UUID        `json:"plan_id"`
	UserID       string             `json:"user_id"`
	WorkoutName  string             `json:"workout_name"`
	WorkoutType  string             `json:"workout_type"`
	SelectedDays []int32            `json:"selected_days"`
	Exercises    json.RawMessage    `json:"exercises"`
	CreatedAt    pgtype.Timestamptz `json:"created_at"`
}
