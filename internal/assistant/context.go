package assistant

import (
	"fmt"
	"strings"

	"FitMind_V0.1/internal/database"
)

const notSet = "Not set"

// BuildUserContext renders the user's profile into the labeled block every
// downstream prompt embeds. It is pure and total: a nil profile yields an
// empty string, and a missing field is rendered as "Not set" rather than
// omitted, so the block always has the same shape.
func BuildUserContext(profile *database.UserProfile) string {
	if profile == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("=== USER PROFILE ===\n")

	writeField := func(label, value string) {
		if strings.TrimSpace(value) == "" {
			value = notSet
		}
		fmt.Fprintf(&b, "%s: %s\n", label, value)
	}

	name := ""
	if profile.DisplayName.Valid {
		name = profile.DisplayName.String
	}
	writeField("Name", name)

	age := ""
	if profile.Age.Valid && profile.Age.Int32 > 0 {
		age = fmt.Sprintf("%d", profile.Age.Int32)
	}
	writeField("Age", age)

	gender := ""
	if profile.Gender.Valid {
		gender = profile.Gender.String
	}
	writeField("Gender", gender)

	height := ""
	if profile.HeightCm.Valid && profile.HeightCm.Float64 > 0 {
		height = fmt.Sprintf("%.0f cm", profile.HeightCm.Float64)
	}
	writeField("Height", height)

	weight := ""
	if profile.WeightKg.Valid && profile.WeightKg.Float64 > 0 {
		weight = fmt.Sprintf("%.1f kg", profile.WeightKg.Float64)
	}
	writeField("Weight", weight)

	goal := ""
	if profile.FitnessGoal.Valid {
		goal = profile.FitnessGoal.String
	}
	writeField("Fitness goal", goal)

	experience := ""
	if profile.ExperienceLevel.Valid {
		experience = profile.ExperienceLevel.String
	}
	writeField("Experience level", experience)

	daysPerWeek := ""
	if profile.WorkoutDaysPerWeek.Valid && profile.WorkoutDaysPerWeek.Int32 > 0 {
		daysPerWeek = fmt.Sprintf("%d", profile.WorkoutDaysPerWeek.Int32)
	}
	writeField("Workout days per week", daysPerWeek)

	injuries := ""
	if profile.Injuries.Valid {
		injuries = profile.Injuries.String
	}
	writeField("Injuries", injuries)

	equipment := ""
	if profile.EquipmentAccess.Valid {
		equipment = profile.EquipmentAccess.String
	}
	writeField("Equipment access", equipment)

	return b.String()
}
