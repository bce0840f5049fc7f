package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createUser = `-- name: CreateUser :one
INSERT INTO users (email, username, password_hash)
VALUES ($1, $2, $3)
RETURNING user_id, email, username, password_hash, created_at
`

type CreateUserParams struct {
	Email        string
	Username     string
	PasswordHash pgtype.Text
}

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	row := q.db.QueryRow(ctx, createUser, arg.Email, arg.Username, arg.PasswordHash)
	var i User
	err := row.Scan(&i.UserID, &i.Email, &i.Username, &i.PasswordHash, &i.CreatedAt)
	return i, err
}

const getUserByEmail = `-- name: GetUserByEmail :one
SELECT user_id, email, username, password_hash, created_at
FROM users
WHERE email = $1
`

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (User, error) {
	row := q.db.QueryRow(ctx, getUserByEmail, email)
	var i User
	err := row.Scan(&i.UserID, &i.Email, &i.Username, &i.PasswordHash, &i.CreatedAt)
	return i, err
}

const getUserByID = `-- name: GetUserByID :one
SELECT user_id, email, username, password_hash, created_at
FROM users
WHERE user_id = $1
`

func (q *Queries) GetUserByID(ctx context.Context, userID string) (User, error) {
	row := q.db.QueryRow(ctx, getUserByID, userID)
	var i User
	err := row.Scan(&i.UserID, &i.Email, &i.Username, &i.PasswordHash, &i.CreatedAt)
	return i, err
}

const getUserProfile = `-- name: GetUserProfile :one
SELECT user_id, display_name, age, gender, height_cm, weight_kg, fitness_goal,
       experience_level, workout_days_per_week, injuries, equipment_access, updated_at
FROM user_profiles
WHERE user_id = $1
`

func (q *Queries) GetUserProfile(ctx context.Context, userID string) (UserProfile, error) {
	row := q.db.QueryRow(ctx, getUserProfile, userID)
	var i UserProfile
	err := row.Scan(
		&i.UserID,
		&i.DisplayName,
		&i.Age,
		&i.Gender,
		&i.HeightCm,
		&i.WeightKg,
		&i.FitnessGoal,
		&i.ExperienceLevel,
		&i.WorkoutDaysPerWeek,
		&i.Injuries,
		&i.EquipmentAccess,
		&i.UpdatedAt,
	)
	return i, err
}

const upsertUserProfile = `-- name: UpsertUserProfile :one
INSERT INTO user_profiles (
    user_id, display_name, age, gender, height_cm, weight_kg, fitness_goal,
    experience_level, workout_days_per_week, injuries, equipment_access, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now())
ON CONFLICT (user_id) DO UPDATE SET
    display_name          = COALESCE(EXCLUDED.display_name, user_profiles.display_name),
    age                   = COALESCE(EXCLUDED.age, user_profiles.age),
    gender                = COALESCE(EXCLUDED.gender, user_profiles.gender),
    height_cm             = COALESCE(EXCLUDED.height_cm, user_profiles.height_cm),
    weight_kg             = COALESCE(EXCLUDED.weight_kg, user_profiles.weight_kg),
    fitness_goal          = COALESCE(EXCLUDED.fitness_goal, user_profiles.fitness_goal),
    experience_level      = COALESCE(EXCLUDED.experience_level, user_profiles.experience_level),
    workout_days_per_week = COALESCE(EXCLUDED.workout_days_per_week, user_profiles.workout_days_per_week),
    injuries              = COALESCE(EXCLUDED.injuries, user_profiles.injuries),
    equipment_access      = COALESCE(EXCLUDED.equipment_access, user_profiles.equipment_access),
    updated_at            = now()
RETURNING user_id, display_name, age, gender, height_cm, weight_kg, fitness_goal,
          experience_level, workout_days_per_week, injuries, equipment_access, updated_at
`

type UpsertUserProfileParams struct {
	UserID             string
	DisplayName        pgtype.Text
	Age                pgtype.Int4
	Gender             pgtype.Text
	HeightCm           pgtype.Float8
	WeightKg           pgtype.Float8
	FitnessGoal        pgtype.Text
	ExperienceLevel    pgtype.Text
	WorkoutDaysPerWeek pgtype.Int4
	Injuries           pgtype.Text
	EquipmentAccess    pgtype.Text
}

func (q *Queries) UpsertUserProfile(ctx context.Context, arg UpsertUserProfileParams) (UserProfile, error) {
	row := q.db.QueryRow(ctx, upsertUserProfile,
		arg.UserID,
		arg.DisplayName,
		arg.Age,
		arg.Gender,
		arg.HeightCm,
		arg.WeightKg,
		arg.FitnessGoal,
		arg.ExperienceLevel,
		arg.WorkoutDaysPerWeek,
		arg.Injuries,
		arg.EquipmentAccess,
	)
	var i UserProfile
	err := row.Scan(
		&i.UserID,
		&i.DisplayName,
		&i.Age,
		&i.Gender,
		&i.HeightCm,
		&i.WeightKg,
		&i.FitnessGoal,
		&i.ExperienceLevel,
		&i.WorkoutDaysPerWeek,
		&i.Injuries,
		&i.EquipmentAccess,
		&i.UpdatedAt,
	)
	return i, err
}
