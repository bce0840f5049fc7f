package user

import (
	"errors"
	"net/http"
	"time"

	"FitMind_V0.1/internal/database"
	"FitMind_V0.1/internal/utility"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

/* =================================================================================
							DTOs (Data Transfer Objects)
=================================================================================*/

// WorkoutResultRequest records a completed workout session.
type WorkoutResultRequest struct {
	WorkoutName     string  `json:"workout_name" validate:"required"`
	WorkoutType     *string `json:"workout_type,omitempty"`
	DurationMinutes *int32  `json:"duration_minutes,omitempty"`
	CaloriesBurned  *int32  `json:"calories_burned,omitempty"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt" validate:"required"` // RFC3339
}

// WaterEntryRequest records a single water intake.
type WaterEntryRequest struct {
	AmountMl int32  `json:"amount_ml" validate:"required,min=1"`
	Time     string `json:"time" validate:"required"` // RFC3339
}

// NutritionEntryRequest records one meal.
type NutritionEntryRequest struct {
	MealName     string   `json:"meal_name" validate:"required"`
	Calories     *int32   `json:"calories,omitempty"`
	ProteinGrams *float64 `json:"protein_grams,omitempty"`
	CarbsGrams   *float64 `json:"carbs_grams,omitempty"`
	FatGrams     *float64 `json:"fat_grams,omitempty"`
	Timestamp    string   `json:"timestamp" validate:"required"` // RFC3339
}

// BiometricEntryRequest records a body measurement.
type BiometricEntryRequest struct {
	WeightKg          *float64 `json:"weight_kg,omitempty"`
	BodyFatPercentage *float64 `json:"body_fat_percentage,omitempty"`
	RestingHeartRate  *int32   `json:"resting_heart_rate,omitempty"`
	Timestamp         string   `json:"timestamp" validate:"required"` // RFC3339
}

func parseRFC3339(value string) (pgtype.Timestamptz, bool) {
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return pgtype.Timestamptz{}, false
	}
	return pgtype.Timestamptz{Time: parsed, Valid: true}, true
}

/* =================================================================================
							WORKOUT RESULT HANDLERS
================================================================================= */

// CreateWorkoutResultHandler handles POST /logs/workouts
func CreateWorkoutResultHandler(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := utility.GetUserIDFromContext(c)
	if err != nil {
		return err
	}

	var req WorkoutResultRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	if req.WorkoutName == "" || req.CreatedAt == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Workout name and createdAt are required"})
	}

	createdAt, ok := parseRFC3339(req.CreatedAt)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid createdAt format. Use RFC3339."})
	}

	params := database.CreateWorkoutResultParams{
		UserID:      userID,
		WorkoutName: req.WorkoutName,
		CreatedAt:   createdAt,
	}
	if req.WorkoutType != nil {
		params.WorkoutType = pgtype.Text{String: *req.WorkoutType, Valid: true}
	}
	if req.DurationMinutes != nil {
		params.DurationMinutes = pgtype.Int4{Int32: *req.DurationMinutes, Valid: true}
	}
	if req.CaloriesBurned != nil {
		params.CaloriesBurned = pgtype.Int4{Int32: *req.CaloriesBurned, Valid: true}
	}
	if req.Notes != nil {
		params.Notes = pgtype.Text{String: *req.Notes, Valid: true}
	}

	record, err := queries.CreateWorkoutResult(ctx, params)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create workout result")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to save record"})
	}

	return c.JSON(http.StatusCreated, record)
}

// ListWorkoutResultsHandler handles GET /logs/workouts
func ListWorkoutResultsHandler(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := utility.GetUserIDFromContext(c)
	if err != nil {
		return err
	}

	records, err := queries.ListWorkoutResults(ctx, userID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to retrieve workout results")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to retrieve records"})
	}
	if records == nil {
		return c.JSON(http.StatusOK, []interface{}{})
	}
	return c.JSON(http.StatusOK, records)
}

/* =================================================================================
							WATER INTAKE HANDLERS
================================================================================= */

// CreateWaterEntryHandler handles POST /logs/water
func CreateWaterEntryHandler(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := utility.GetUserIDFromContext(c)
	if err != nil {
		return err
	}

	var req WaterEntryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	if req.AmountMl <= 0 || req.Time == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Amount (must be > 0) and time are required"})
	}

	entryTime, ok := parseRFC3339(req.Time)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid time format. Use RFC3339."})
	}

	record, err := queries.CreateWaterEntry(ctx, database.CreateWaterEntryParams{
		UserID:   userID,
		AmountMl: req.AmountMl,
		Time:     entryTime,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to create water entry")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to save record"})
	}

	return c.JSON(http.StatusCreated, record)
}

// ListWaterEntriesHandler handles GET /logs/water
func ListWaterEntriesHandler(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := utility.GetUserIDFromContext(c)
	if err != nil {
		return err
	}

	records, err := queries.ListWaterEntries(ctx, userID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to retrieve water entries")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to retrieve records"})
	}
	if records == nil {
		return c.JSON(http.StatusOK, []interface{}{})
	}
	return c.JSON(http.StatusOK, records)
}

/* =================================================================================
							NUTRITION HANDLERS
================================================================================= */

// CreateNutritionEntryHandler handles POST /logs/nutrition
func CreateNutritionEntryHandler(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := utility.GetUserIDFromContext(c)
	if err != nil {
		return err
	}

	var req NutritionEntryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	if req.MealName == "" || req.Timestamp == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Meal name and timestamp are required"})
	}

	ts, ok := parseRFC3339(req.Timestamp)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid timestamp format. Use RFC3339."})
	}

	params := database.CreateNutritionEntryParams{
		UserID:    userID,
		MealName:  req.MealName,
		Timestamp: ts,
	}
	if req.Calories != nil {
		params.Calories = pgtype.Int4{Int32: *req.Calories, Valid: true}
	}
	if req.ProteinGrams != nil {
		params.ProteinGrams = pgtype.Float8{Float64: *req.ProteinGrams, Valid: true}
	}
	if req.CarbsGrams != nil {
		params.CarbsGrams = pgtype.Float8{Float64: *req.CarbsGrams, Valid: true}
	}
	if req.FatGrams != nil {
		params.FatGrams = pgtype.Float8{Float64: *req.FatGrams, Valid: true}
	}

	record, err := queries.CreateNutritionEntry(ctx, params)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create nutrition entry")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to save record"})
	}

	return c.JSON(http.StatusCreated, record)
}

// ListNutritionEntriesHandler handles GET /logs/nutrition
func ListNutritionEntriesHandler(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := utility.GetUserIDFromContext(c)
	if err != nil {
		return err
	}

	records, err := queries.ListNutritionEntries(ctx, userID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to retrieve nutrition entries")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to retrieve records"})
	}
	if records == nil {
		return c.JSON(http.StatusOK, []interface{}{})
	}
	return c.JSON(http.StatusOK, records)
}

/* =================================================================================
							BIOMETRIC HANDLERS
================================================================================= */

// CreateBiometricEntryHandler handles POST /logs/biometrics
func CreateBiometricEntryHandler(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := utility.GetUserIDFromContext(c)
	if err != nil {
		return err
	}

	var req BiometricEntryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	if req.Timestamp == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Timestamp is required"})
	}
	if req.WeightKg == nil && req.BodyFatPercentage == nil && req.RestingHeartRate == nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "At least one measurement is required"})
	}

	ts, ok := parseRFC3339(req.Timestamp)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid timestamp format. Use RFC3339."})
	}

	params := database.CreateBiometricEntryParams{
		UserID:    userID,
		Timestamp: ts,
	}
	if req.WeightKg != nil {
		params.WeightKg = pgtype.Float8{Float64: *req.WeightKg, Valid: true}
	}
	if req.BodyFatPercentage != nil {
		params.BodyFatPercentage = pgtype.Float8{Float64: *req.BodyFatPercentage, Valid: true}
	}
	if req.RestingHeartRate != nil {
		params.RestingHeartRate = pgtype.Int4{Int32: *req.RestingHeartRate, Valid: true}
	}

	record, err := queries.CreateBiometricEntry(ctx, params)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create biometric entry")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to save record"})
	}

	return c.JSON(http.StatusCreated, record)
}

// ListBiometricEntriesHandler handles GET /logs/biometrics
func ListBiometricEntriesHandler(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := utility.GetUserIDFromContext(c)
	if err != nil {
		return err
	}

	records, err := queries.ListBiometricEntries(ctx, userID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to retrieve biometric entries")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to retrieve records"})
	}
	if records == nil {
		return c.JSON(http.StatusOK, []interface{}{})
	}
	return c.JSON(http.StatusOK, records)
}

/* =================================================================================
							WORKOUT PLAN HANDLERS
================================================================================= */

// ListWorkoutPlansHandler handles GET /workouts/plans
func ListWorkoutPlansHandler(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := utility.GetUserIDFromContext(c)
	if err != nil {
		return err
	}

	records, err := queries.ListWorkoutPlans(ctx, userID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to retrieve workout plans")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to retrieve records"})
	}
	if records == nil {
		return c.JSON(http.StatusOK, []interface{}{})
	}
	return c.JSON(http.StatusOK, records)
}

/* =================================================================================
							UPDATE / DELETE HANDLERS
================================================================================= */

// UpdateWorkoutResultRequest carries partial edits; omitted fields keep
// their stored value.
type UpdateWorkoutResultRequest struct {
	WorkoutName     *string `json:"workout_name,omitempty"`
	WorkoutType     *string `json:"workout_type,omitempty"`
	DurationMinutes *int32  `json:"duration_minutes,omitempty"`
	CaloriesBurned  *int32  `json:"calories_burned,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// UpdateWorkoutResultHandler handles PUT /logs/workouts/:result_id
func UpdateWorkoutResultHandler(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := utility.GetUserIDFromContext(c)
	if err != nil {
		return err
	}

	var req UpdateWorkoutResultRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	params := database.UpdateWorkoutResultParams{
		ResultID: c.Param("result_id"),
		UserID:   userID,
	}
	if req.WorkoutName != nil {
		params.WorkoutName = pgtype.Text{String: *req.WorkoutName, Valid: true}
	}
	if req.WorkoutType != nil {
		params.WorkoutType = pgtype.Text{String: *req.WorkoutType, Valid: true}
	}
	if req.DurationMinutes != nil {
		params.DurationMinutes = pgtype.Int4{Int32: *req.DurationMinutes, Valid: true}
	}
	if req.CaloriesBurned != nil {
		params.CaloriesBurned = pgtype.Int4{Int32: *req.CaloriesBurned, Valid: true}
	}
	if req.Notes != nil {
		params.Notes = pgtype.Text{String: *req.Notes, Valid: true}
	}

	record, err := queries.UpdateWorkoutResult(ctx, params)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Record not found"})
		}
		log.Error().Err(err).Msg("Failed to update workout result")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update record"})
	}

	return c.JSON(http.StatusOK, record)
}

// DeleteWorkoutResultHandler handles DELETE /logs/workouts/:result_id
func DeleteWorkoutResultHandler(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := utility.GetUserIDFromContext(c)
	if err != nil {
		return err
	}

	affected, err := queries.DeleteWorkoutResult(ctx, database.DeleteWorkoutResultParams{
		ResultID: c.Param("result_id"),
		UserID:   userID,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to delete workout result")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete record"})
	}
	if affected == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Record not found"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Record deleted"})
}

// UpdateWaterEntryRequest carries partial edits for a water entry.
type UpdateWaterEntryRequest struct {
	AmountMl *int32  `json:"amount_ml,omitempty"`
	Time     *string `json:"time,omitempty"` // RFC3339
}

// UpdateWaterEntryHandler handles PUT /logs/water/:entry_id
func UpdateWaterEntryHandler(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := utility.GetUserIDFromContext(c)
	if err != nil {
		return err
	}

	var req UpdateWaterEntryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	params := database.UpdateWaterEntryParams{
		EntryID: c.Param("entry_id"),
		UserID:  userID,
	}
	if req.AmountMl != nil {
		if *req.AmountMl <= 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Amount must be > 0"})
		}
		params.AmountMl = pgtype.Int4{Int32: *req.AmountMl, Valid: true}
	}
	if req.Time != nil {
		entryTime, ok := parseRFC3339(*req.Time)
		if !ok {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid time format. Use RFC3339."})
		}
		params.Time = entryTime
	}

	record, err := queries.UpdateWaterEntry(ctx, params)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Record not found"})
		}
		log.Error().Err(err).Msg("Failed to update water entry")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update record"})
	}

	return c.JSON(http.StatusOK, record)
}

// DeleteWaterEntryHandler handles DELETE /logs/water/:entry_id
func DeleteWaterEntryHandler(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := utility.GetUserIDFromContext(c)
	if err != nil {
		return err
	}

	affected, err := queries.DeleteWaterEntry(ctx, database.DeleteWaterEntryParams{
		EntryID: c.Param("entry_id"),
		UserID:  userID,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to delete water entry")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete record"})
	}
	if affected == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Record not found"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Record deleted"})
}

// UpdateNutritionEntryRequest carries partial edits for a meal entry.
type UpdateNutritionEntryRequest struct {
	MealName     *string  `json:"meal_name,omitempty"`
	Calories     *int32   `json:"calories,omitempty"`
	ProteinGrams *float64 `json:"protein_grams,omitempty"`
	CarbsGrams   *float64 `json:"carbs_grams,omitempty"`
	FatGrams     *float64 `json:"fat_grams,omitempty"`
}

// UpdateNutritionEntryHandler handles PUT /logs/nutrition/:entry_id
func UpdateNutritionEntryHandler(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := utility.GetUserIDFromContext(c)
	if err != nil {
		return err
	}

	var req UpdateNutritionEntryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	params := database.UpdateNutritionEntryParams{
		EntryID: c.Param("entry_id"),
		UserID:  userID,
	}
	if req.MealName != nil {
		params.MealName = pgtype.Text{String: *req.MealName, Valid: true}
	}
	if req.Calories != nil {
		params.Calories = pgtype.Int4{Int32: *req.Calories, Valid: true}
	}
	if req.ProteinGrams != nil {
		params.ProteinGrams = pgtype.Float8{Float64: *req.ProteinGrams, Valid: true}
	}
	if req.CarbsGrams != nil {
		params.CarbsGrams = pgtype.Float8{Float64: *req.CarbsGrams, Valid: true}
	}
	if req.FatGrams != nil {
		params.FatGrams = pgtype.Float8{Float64: *req.FatGrams, Valid: true}
	}

	record, err := queries.UpdateNutritionEntry(ctx, params)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Record not found"})
		}
		log.Error().Err(err).Msg("Failed to update nutrition entry")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update record"})
	}

	return c.JSON(http.StatusOK, record)
}

// DeleteNutritionEntryHandler handles DELETE /logs/nutrition/:entry_id
func DeleteNutritionEntryHandler(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := utility.GetUserIDFromContext(c)
	if err != nil {
		return err
	}

	affected, err := queries.DeleteNutritionEntry(ctx, database.DeleteNutritionEntryParams{
		EntryID: c.Param("entry_id"),
		UserID:  userID,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to delete nutrition entry")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete record"})
	}
	if affected == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Record not found"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Record deleted"})
}

// UpdateBiometricEntryRequest carries partial edits for a measurement.
type UpdateBiometricEntryRequest struct {
	WeightKg          *float64 `json:"weight_kg,omitempty"`
	BodyFatPercentage *float64 `json:"body_fat_percentage,omitempty"`
	RestingHeartRate  *int32   `json:"resting_heart_rate,omitempty"`
}

// UpdateBiometricEntryHandler handles PUT /logs/biometrics/:entry_id
func UpdateBiometricEntryHandler(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := utility.GetUserIDFromContext(c)
	if err != nil {
		return err
	}

	var req UpdateBiometricEntryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	params := database.UpdateBiometricEntryParams{
		EntryID: c.Param("entry_id"),
		UserID:  userID,
	}
	if req.WeightKg != nil {
		params.WeightKg = pgtype.Float8{Float64: *req.WeightKg, Valid: true}
	}
	if req.BodyFatPercentage != nil {
		params.BodyFatPercentage = pgtype.Float8{Float64: *req.BodyFatPercentage, Valid: true}
	}
	if req.RestingHeartRate != nil {
		params.RestingHeartRate = pgtype.Int4{Int32: *req.RestingHeartRate, Valid: true}
	}

	record, err := queries.UpdateBiometricEntry(ctx, params)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Record not found"})
		}
		log.Error().Err(err).Msg("Failed to update biometric entry")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update record"})
	}

	return c.JSON(http.StatusOK, record)
}

// DeleteBiometricEntryHandler handles DELETE /logs/biometrics/:entry_id
func DeleteBiometricEntryHandler(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := utility.GetUserIDFromContext(c)
	if err != nil {
		return err
	}

	affected, err := queries.DeleteBiometricEntry(ctx, database.DeleteBiometricEntryParams{
		EntryID: c.Param("entry_id"),
		UserID:  userID,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to delete biometric entry")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete record"})
	}
	if affected == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Record not found"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Record deleted"})
}
