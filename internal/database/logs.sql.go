package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createWorkoutResult = `-- name: CreateWorkoutResult :one
INSERT INTO workout_results (user_id, workout_name, workout_type, duration_minutes, calories_burned, notes, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING result_id, user_id, workout_name, workout_type, duration_minutes, calories_burned, notes, created_at
`

type CreateWorkoutResultParams struct {
	UserID          string
	WorkoutName     string
	WorkoutType     pgtype.Text
	DurationMinutes pgtype.Int4
	CaloriesBurned  pgtype.Int4
	Notes           pgtype.Text
	CreatedAt       pgtype.Timestamptz
}

func (q *Queries) CreateWorkoutResult(ctx context.Context, arg CreateWorkoutResultParams) (WorkoutResult, error) {
	row := q.db.QueryRow(ctx, createWorkoutResult,
		arg.UserID,
		arg.WorkoutName,
		arg.WorkoutType,
		arg.DurationMinutes,
		arg.CaloriesBurned,
		arg.Notes,
		arg.CreatedAt,
	)
	var i WorkoutResult
	err := row.Scan(
		&i.ResultID,
		&i.UserID,
		&i.WorkoutName,
		&i.WorkoutType,
		&i.DurationMinutes,
		&i.CaloriesBurned,
		&i.Notes,
		&i.CreatedAt,
	)
	return i, err
}

const listWorkoutResults = `-- name: ListWorkoutResults :many
SELECT result_id, user_id, workout_name, workout_type, duration_minutes, calories_burned, notes, created_at
FROM workout_results
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT 100
`

func (q *Queries) ListWorkoutResults(ctx context.Context, userID string) ([]WorkoutResult, error) {
	rows, err := q.db.Query(ctx, listWorkoutResults, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []WorkoutResult
	for rows.Next() {
		var i WorkoutResult
		if err := rows.Scan(
			&i.ResultID,
			&i.UserID,
			&i.WorkoutName,
			&i.WorkoutType,
			&i.DurationMinutes,
			&i.CaloriesBurned,
			&i.Notes,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const createWaterEntry = `-- name: CreateWaterEntry :one
INSERT INTO water_entries (user_id, amount_ml, time)
VALUES ($1, $2, $3)
RETURNING entry_id, user_id, amount_ml, time
`

type CreateWaterEntryParams struct {
	UserID   string
	AmountMl int32
	Time     pgtype.Timestamptz
}

func (q *Queries) CreateWaterEntry(ctx context.Context, arg CreateWaterEntryParams) (WaterEntry, error) {
	row := q.db.QueryRow(ctx, createWaterEntry, arg.UserID, arg.AmountMl, arg.Time)
	var i WaterEntry
	err := row.Scan(&i.EntryID, &i.UserID, &i.AmountMl, &i.Time)
	return i, err
}

const listWaterEntries = `-- name: ListWaterEntries :many
SELECT entry_id, user_id, amount_ml, time
FROM water_entries
WHERE user_id = $1
ORDER BY time DESC
LIMIT 100
`

func (q *Queries) ListWaterEntries(ctx context.Context, userID string) ([]WaterEntry, error) {
	rows, err := q.db.Query(ctx, listWaterEntries, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []WaterEntry
	for rows.Next() {
		var i WaterEntry
		if err := rows.Scan(&i.EntryID, &i.UserID, &i.AmountMl, &i.Time); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const createNutritionEntry = `-- name: CreateNutritionEntry :one
INSERT INTO nutrition_entries (user_id, meal_name, calories, protein_grams, carbs_grams, fat_grams, timestamp)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING entry_id, user_id, meal_name, calories, protein_grams, carbs_grams, fat_grams, timestamp
`

type CreateNutritionEntryParams struct {
	UserID       string
	MealName     string
	Calories     pgtype.Int4
	ProteinGrams pgtype.Float8
	CarbsGrams   pgtype.Float8
	FatGrams     pgtype.Float8
	Timestamp    pgtype.Timestamptz
}

func (q *Queries) CreateNutritionEntry(ctx context.Context, arg CreateNutritionEntryParams) (NutritionEntry, error) {
	row := q.db.QueryRow(ctx, createNutritionEntry,
		arg.UserID,
		arg.MealName,
		arg.Calories,
		arg.ProteinGrams,
		arg.CarbsGrams,
		arg.FatGrams,
		arg.Timestamp,
	)
	var i NutritionEntry
	err := row.Scan(
		&i.EntryID,
		&i.UserID,
		&i.MealName,
		&i.Calories,
		&i.ProteinGrams,
		&i.CarbsGrams,
		&i.FatGrams,
		&i.Timestamp,
	)
	return i, err
}

const listNutritionEntries = `-- name: ListNutritionEntries :many
SELECT entry_id, user_id, meal_name, calories, protein_grams, carbs_grams, fat_grams, timestamp
FROM nutrition_entries
WHERE user_id = $1
ORDER BY timestamp DESC
LIMIT 100
`

func (q *Queries) ListNutritionEntries(ctx context.Context, userID string) ([]NutritionEntry, error) {
	rows, err := q.db.Query(ctx, listNutritionEntries, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []NutritionEntry
	for rows.Next() {
		var i NutritionEntry
		if err := rows.Scan(
			&i.EntryID,
			&i.UserID,
			&i.MealName,
			&i.Calories,
			&i.ProteinGrams,
			&i.CarbsGrams,
			&i.FatGrams,
			&i.Timestamp,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const createBiometricEntry = `-- name: CreateBiometricEntry :one
INSERT INTO biometric_entries (user_id, weight_kg, body_fat_percentage, resting_heart_rate, timestamp)
VALUES ($1, $2, $3, $4, $5)
RETURNING entry_id, user_id, weight_kg, body_fat_percentage, resting_heart_rate, timestamp
`

type CreateBiometricEntryParams struct {
	UserID            string
	WeightKg          pgtype.Float8
	BodyFatPercentage pgtype.Float8
	RestingHeartRate  pgtype.Int4
	Timestamp         pgtype.Timestamptz
}

func (q *Queries) CreateBiometricEntry(ctx context.Context, arg CreateBiometricEntryParams) (BiometricEntry, error) {
	row := q.db.QueryRow(ctx, createBiometricEntry,
		arg.UserID,
		arg.WeightKg,
		arg.BodyFatPercentage,
		arg.RestingHeartRate,
		arg.Timestamp,
	)
	var i BiometricEntry
	err := row.Scan(&i.EntryID, &i.UserID, &i.WeightKg, &i.BodyFatPercentage, &i.RestingHeartRate, &i.Timestamp)
	return i, err
}

const listBiometricEntries = `-- name: ListBiometricEntries :many
SELECT entry_id, user_id, weight_kg, body_fat_percentage, resting_heart_rate, timestamp
FROM biometric_entries
WHERE user_id = $1
ORDER BY timestamp DESC
LIMIT 100
`

func (q *Queries) ListBiometricEntries(ctx context.Context, userID string) ([]BiometricEntry, error) {
	rows, err := q.db.Query(ctx, listBiometricEntries, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []BiometricEntry
	for rows.Next() {
		var i BiometricEntry
		if err := rows.Scan(&i.EntryID, &i.UserID, &i.WeightKg, &i.BodyFatPercentage, &i.RestingHeartRate, &i.Timestamp); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const createWorkoutPlan = `-- name: CreateWorkoutPlan :one
INSERT INTO workout_plans (user_id, workout_name, workout_type, selected_days, exercises)
VALUES ($1, $2, $3, $4, $5)
RETURNING plan_id, user_id, workout_name, workout_type, selected_days, exercises, created_at
`

type CreateWorkoutPlanParams struct {
	UserID       string
	WorkoutName  string
	WorkoutType  string
	SelectedDays []int32
	Exercises    []byte
}

func (q *Queries) CreateWorkoutPlan(ctx context.Context, arg CreateWorkoutPlanParams) (WorkoutPlan, error) {
	row := q.db.QueryRow(ctx, createWorkoutPlan,
		arg.UserID,
		arg.WorkoutName,
		arg.WorkoutType,
		arg.SelectedDays,
		arg.Exercises,
	)
	var i WorkoutPlan
	err := row.Scan(
		&i.PlanID,
		&i.UserID,
		&i.WorkoutName,
		&i.WorkoutType,
		&i.SelectedDays,
		&i.Exercises,
		&i.CreatedAt,
	)
	return i, err
}

const listWorkoutPlans = `-- name: ListWorkoutPlans :many
SELECT plan_id, user_id, workout_name, workout_type, selected_days, exercises, created_at
FROM workout_plans
WHERE user_id = $1
ORDER BY created_at DESC
`

func (q *Queries) ListWorkoutPlans(ctx context.Context, userID string) ([]WorkoutPlan, error) {
	rows, err := q.db.Query(ctx, listWorkoutPlans, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []WorkoutPlan
	for rows.Next() {
		var i WorkoutPlan
		if err := rows.Scan(
			&i.PlanID,
			&i.UserID,
			&i.WorkoutName,
			&i.WorkoutType,
			&i.SelectedDays,
			&i.Exercises,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const updateWorkoutResult = `-- name: UpdateWorkoutResult :one
UPDATE workout_results
SET workout_name     = COALESCE($3, workout_name),
    workout_type     = COALESCE($4, workout_type),
    duration_minutes = COALESCE($5, duration_minutes),
    calories_burned  = COALESCE($6, calories_burned),
    notes            = COALESCE($7, notes)
WHERE result_id = $1 AND user_id = $2
RETURNING result_id, user_id, workout_name, workout_type, duration_minutes, calories_burned, notes, created_at
`

type UpdateWorkoutResultParams struct {
	ResultID        string
	UserID          string
	WorkoutName     pgtype.Text
	WorkoutType     pgtype.Text
	DurationMinutes pgtype.Int4
	CaloriesBurned  pgtype.Int4
	Notes           pgtype.Text
}

func (q *Queries) UpdateWorkoutResult(ctx context.Context, arg UpdateWorkoutResultParams) (WorkoutResult, error) {
	row := q.db.QueryRow(ctx, updateWorkoutResult,
		arg.ResultID,
		arg.UserID,
		arg.WorkoutName,
		arg.WorkoutType,
		arg.DurationMinutes,
		arg.CaloriesBurned,
		arg.Notes,
	)
	var i WorkoutResult
	err := row.Scan(
		&i.ResultID,
		&i.UserID,
		&i.WorkoutName,
		&i.WorkoutType,
		&i.DurationMinutes,
		&i.CaloriesBurned,
		&i.Notes,
		&i.CreatedAt,
	)
	return i, err
}

const deleteWorkoutResult = `-- name: DeleteWorkoutResult :execrows
DELETE FROM workout_results
WHERE result_id = $1 AND user_id = $2
`

type DeleteWorkoutResultParams struct {
	ResultID string
	UserID   string
}

func (q *Queries) DeleteWorkoutResult(ctx context.Context, arg DeleteWorkoutResultParams) (int64, error) {
	result, err := q.db.Exec(ctx, deleteWorkoutResult, arg.ResultID, arg.UserID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const updateWaterEntry = `-- name: UpdateWaterEntry :one
UPDATE water_entries
SET amount_ml = COALESCE($3, amount_ml),
    time      = COALESCE($4, time)
WHERE entry_id = $1 AND user_id = $2
RETURNING entry_id, user_id, amount_ml, time
`

type UpdateWaterEntryParams struct {
	EntryID  string
	UserID   string
	AmountMl pgtype.Int4
	Time     pgtype.Timestamptz
}

func (q *Queries) UpdateWaterEntry(ctx context.Context, arg UpdateWaterEntryParams) (WaterEntry, error) {
	row := q.db.QueryRow(ctx, updateWaterEntry, arg.EntryID, arg.UserID, arg.AmountMl, arg.Time)
	var i WaterEntry
	err := row.Scan(&i.EntryID, &i.UserID, &i.AmountMl, &i.Time)
	return i, err
}

const deleteWaterEntry = `-- name: DeleteWaterEntry :execrows
DELETE FROM water_entries
WHERE entry_id = $1 AND user_id = $2
`

type DeleteWaterEntryParams struct {
	EntryID string
	UserID  string
}

func (q *Queries) DeleteWaterEntry(ctx context.Context, arg DeleteWaterEntryParams) (int64, error) {
	result, err := q.db.Exec(ctx, deleteWaterEntry, arg.EntryID, arg.UserID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const updateNutritionEntry = `-- name: UpdateNutritionEntry :one
UPDATE nutrition_entries
SET meal_name     = COALESCE($3, meal_name),
    calories      = COALESCE($4, calories),
    protein_grams = COALESCE($5, protein_grams),
    carbs_grams   = COALESCE($6, carbs_grams),
    fat_grams     = COALESCE($7, fat_grams)
WHERE entry_id = $1 AND user_id = $2
RETURNING entry_id, user_id, meal_name, calories, protein_grams, carbs_grams, fat_grams, timestamp
`

type UpdateNutritionEntryParams struct {
	EntryID      string
	UserID       string
	MealName     pgtype.Text
	Calories     pgtype.Int4
	ProteinGrams pgtype.Float8
	CarbsGrams   pgtype.Float8
	FatGrams     pgtype.Float8
}

func (q *Queries) UpdateNutritionEntry(ctx context.Context, arg UpdateNutritionEntryParams) (NutritionEntry, error) {
	row := q.db.QueryRow(ctx, updateNutritionEntry,
		arg.EntryID,
		arg.UserID,
		arg.MealName,
		arg.Calories,
		arg.ProteinGrams,
		arg.CarbsGrams,
		arg.FatGrams,
	)
	var i NutritionEntry
	err := row.Scan(
		&i.EntryID,
		&i.UserID,
		&i.MealName,
		&i.Calories,
		&i.ProteinGrams,
		&i.CarbsGrams,
		&i.FatGrams,
		&i.Timestamp,
	)
	return i, err
}

const deleteNutritionEntry = `-- name: DeleteNutritionEntry :execrows
DELETE FROM nutrition_entries
WHERE entry_id = $1 AND user_id = $2
`

type DeleteNutritionEntryParams struct {
	EntryID string
	UserID  string
}

func (q *Queries) DeleteNutritionEntry(ctx context.Context, arg DeleteNutritionEntryParams) (int64, error) {
	result, err := q.db.Exec(ctx, deleteNutritionEntry, arg.EntryID, arg.UserID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const updateBiometricEntry = `-- name: UpdateBiometricEntry :one
UPDATE biometric_entries
SET weight_kg           = COALESCE($3, weight_kg),
    body_fat_percentage = COALESCE($4, body_fat_percentage),
    resting_heart_rate  = COALESCE($5, resting_heart_rate)
WHERE entry_id = $1 AND user_id = $2
RETURNING entry_id, user_id, weight_kg, body_fat_percentage, resting_heart_rate, timestamp
`

type UpdateBiometricEntryParams struct {
	EntryID           string
	UserID            string
	WeightKg          pgtype.Float8
	BodyFatPercentage pgtype.Float8
	RestingHeartRate  pgtype.Int4
}

func (q *Queries) UpdateBiometricEntry(ctx context.Context, arg UpdateBiometricEntryParams) (BiometricEntry, error) {
	row := q.db.QueryRow(ctx, updateBiometricEntry,
		arg.EntryID,
		arg.UserID,
		arg.WeightKg,
		arg.BodyFatPercentage,
		arg.RestingHeartRate,
	)
	var i BiometricEntry
	err := row.Scan(&i.EntryID, &i.UserID, &i.WeightKg, &i.BodyFatPercentage, &i.RestingHeartRate, &i.Timestamp)
	return i, err
}

const deleteBiometricEntry = `-- name: DeleteBiometricEntry :execrows
DELETE FROM biometric_entries
WHERE entry_id = $1 AND user_id = $2
`

type DeleteBiometricEntryParams struct {
	EntryID string
	UserID  string
}

func (q *Queries) DeleteBiometricEntry(ctx context.Context, arg DeleteBiometricEntryParams) (int64, error) {
	result, err := q.db.Exec(ctx, deleteBiometricEntry, arg.EntryID, arg.UserID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
