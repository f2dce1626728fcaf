package services

import (
	"github.com/jmoiron/sqlx"
)

var defaultExercises = []ExerciseInput{
	{
		Name:         "Bench Press",
		Description:  "A compound exercise that primarily targets the chest muscles.",
		MuscleGroup:  "Chest",
		Equipment:    "Barbell",
		Difficulty:   "intermediate",
		Instructions: "Lie on a flat bench with feet firmly on the ground. Grip the barbell slightly wider than shoulder width. Lower the bar to your chest with control, then press back up.",
	},
	{
		Name:         "Push-Ups",
		Description:  "A bodyweight exercise that works the chest, shoulders, and triceps.",
		MuscleGroup:  "Chest",
		Equipment:    "Bodyweight",
		Difficulty:   "beginner",
		Instructions: "Start in a plank position with hands shoulder-width apart. Lower your body until the chest nearly touches the ground, then push back up keeping the core tight.",
	},
	{
		Name:         "Pull-Ups",
		Description:  "A compound upper body exercise that primarily targets the back muscles.",
		MuscleGroup:  "Back",
		Equipment:    "Bodyweight",
		Difficulty:   "intermediate",
		Instructions: "Hang from a pull-up bar with hands slightly wider than shoulders. Pull yourself up until the chin is over the bar, then lower with control.",
	},
	{
		Name:         "Bent-Over Rows",
		Description:  "An exercise that targets the middle back muscles and helps improve posture.",
		MuscleGroup:  "Back",
		Equipment:    "Barbell",
		Difficulty:   "intermediate",
		Instructions: "Bend at hips and knees keeping the back straight. Pull the weight to the lower chest, then lower it back down with control.",
	},
	{
		Name:         "Squat",
		Description:  "The primary compound movement for the lower body.",
		MuscleGroup:  "Legs",
		Equipment:    "Barbell",
		Difficulty:   "intermediate",
		Instructions: "Stand with feet shoulder-width apart, bar across the upper back. Sit down between your hips until thighs are at least parallel, then drive back up.",
	},
	{
		Name:         "Deadlift",
		Description:  "A full-body pull emphasizing the posterior chain.",
		MuscleGroup:  "Back",
		Equipment:    "Barbell",
		Difficulty:   "advanced",
		Instructions: "Stand over the bar with a flat back, grip just outside the knees, and stand up by driving through the floor. Keep the bar close to the body.",
	},
	{
		Name:         "Overhead Press",
		Description:  "A standing press that builds the shoulders and triceps.",
		MuscleGroup:  "Shoulders",
		Equipment:    "Barbell",
		Difficulty:   "intermediate",
		Instructions: "Hold the bar at shoulder height, brace, and press straight overhead until the elbows lock out. Lower under control.",
	},
	{
		Name:         "Dumbbell Lunges",
		Description:  "A unilateral leg exercise for quads and glutes.",
		MuscleGroup:  "Legs",
		Equipment:    "Dumbbell",
		Difficulty:   "beginner",
		Instructions: "Step forward and lower the back knee toward the floor, keeping the torso upright. Push back to standing and alternate legs.",
	},
	{
		Name:         "Plank",
		Description:  "An isometric hold for core stability.",
		MuscleGroup:  "Core",
		Equipment:    "Bodyweight",
		Difficulty:   "beginner",
		Instructions: "Support yourself on forearms and toes with a straight line from head to heels. Hold without letting the hips sag.",
	},
	{
		Name:         "Bicep Curls",
		Description:  "An isolation exercise for the biceps.",
		MuscleGroup:  "Arms",
		Equipment:    "Dumbbell",
		Difficulty:   "beginner",
		Instructions: "Curl the dumbbells toward the shoulders without swinging the torso, then lower slowly.",
	},
}

// EnsureExerciseCatalog seeds the built-in exercise library. Existing names
// are left untouched, so user edits survive restarts.
func EnsureExerciseCatalog(db *sqlx.DB) error {
	for _, exercise := range defaultExercises {
		var exists bool
		if err := db.Get(&exists, `SELECT EXISTS(SELECT 1 FROM exercises WHERE name = ? COLLATE NOCASE)`, exercise.Name); err != nil {
			return WrapError(err, "check catalog exercise")
		}
		if exists {
			continue
		}
		if _, err := AddExercise(db, exercise); err != nil {
			return err
		}
	}
	return nil
}
