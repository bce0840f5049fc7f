package user

import (
	"errors"
	"net/http"

	"FitMind_V0.1/internal/database"
	"FitMind_V0.1/internal/utility"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// UserProfileRequest carries the editable profile fields. All fields are
// optional; omitted fields keep their stored value.
type UserProfileRequest struct {
	DisplayName        *string  `json:"display_name,omitempty"`
	Age                *int32   `json:"age,omitempty"`
	Gender             *string  `json:"gender,omitempty"`
	HeightCm           *float64 `json:"height_cm,omitempty"`
	WeightKg           *float64 `json:"weight_kg,omitempty"`
	FitnessGoal        *string  `json:"fitness_goal,omitempty"`
	ExperienceLevel    *string  `json:"experience_level,omitempty"`
	WorkoutDaysPerWeek *int32   `json:"workout_days_per_week,omitempty"`
	Injuries           *string  `json:"injuries,omitempty"`
	EquipmentAccess    *string  `json:"equipment_access,omitempty"`
}

/* =================================================================================
							PROFILE HANDLERS
================================================================================= */

// GetUserProfileHandler handles GET /profile
func GetUserProfileHandler(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := utility.GetUserIDFromContext(c)
	if err != nil {
		return err
	}

	profile, err := queries.GetUserProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Profile not set up yet"})
		}
		log.Error().Err(err).Msg("Failed to retrieve user profile")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to retrieve profile"})
	}

	return c.JSON(http.StatusOK, profile)
}

// UpsertUserProfileHandler handles PUT /profile
func UpsertUserProfileHandler(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := utility.GetUserIDFromContext(c)
	if err != nil {
		return err
	}

	var req UserProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	params := database.UpsertUserProfileParams{UserID: userID}
	if req.DisplayName != nil {
		params.DisplayName = pgtype.Text{String: *req.DisplayName, Valid: true}
	}
	if req.Age != nil {
		params.Age = pgtype.Int4{Int32: *req.Age, Valid: true}
	}
	if req.Gender != nil {
		params.Gender = pgtype.Text{String: *req.Gender, Valid: true}
	}
	if req.HeightCm != nil {
		params.HeightCm = pgtype.Float8{Float64: *req.HeightCm, Valid: true}
	}
	if req.WeightKg != nil {
		params.WeightKg = pgtype.Float8{Float64: *req.WeightKg, Valid: true}
	}
	if req.FitnessGoal != nil {
		params.FitnessGoal = pgtype.Text{String: *req.FitnessGoal, Valid: true}
	}
	if req.ExperienceLevel != nil {
		params.ExperienceLevel = pgtype.Text{String: *req.ExperienceLevel, Valid: true}
	}
	if req.WorkoutDaysPerWeek != nil {
		params.WorkoutDaysPerWeek = pgtype.Int4{Int32: *req.WorkoutDaysPerWeek, Valid: true}
	}
	if req.Injuries != nil {
		params.Injuries = pgtype.Text{String: *req.Injuries, Valid: true}
	}
	if req.EquipmentAccess != nil {
		params.EquipmentAccess = pgtype.Text{String: *req.EquipmentAccess, Valid: true}
	}

	profile, err := queries.UpsertUserProfile(ctx, params)
	if err != nil {
		log.Error().Err(err).Msg("Failed to save user profile")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to save profile"})
	}

	// Stored profile changed, so any cached prompt context is stale.
	assistantSvc.InvalidateUserContext(userID)

	return c.JSON(http.StatusOK, profile)
}
