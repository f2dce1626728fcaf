package services

import (
	"errors"
	"testing"
)

func TestProgramNesting(t *testing.T) {
	database := newTestDB(t)
	userID := mustCreateUser(t, database, "alice")

	exerciseID, err := AddExercise(database, ExerciseInput{Name: "Bench Press", MuscleGroup: "Chest", Equipment: "Barbell"})
	if err != nil {
		t.Fatalf("add exercise: %v", err)
	}

	programID, err := CreateProgram(database, userID, ProgramInput{Name: "5-Day Split", Tags: []string{"strength"}})
	if err != nil {
		t.Fatalf("create program: %v", err)
	}
	dayID, err := AddWorkoutDay(database, programID, 1, "Push")
	if err != nil {
		t.Fatalf("add day: %v", err)
	}
	if _, err := AddWorkoutExercise(database, dayID, WorkoutExerciseInput{
		ExerciseID:     exerciseID,
		Sets:           3,
		Reps:           "8-12",
		OrderInWorkout: 1,
	}); err != nil {
		t.Fatalf("add workout exercise: %v", err)
	}

	program, err := GetProgramByID(database, userID, programID)
	if err != nil {
		t.Fatalf("get program: %v", err)
	}
	if program == nil || program.DurationWeeks != 4 || program.Difficulty != "intermediate" {
		t.Fatalf("defaults not applied: %+v", program)
	}

	days, err := GetWorkoutDays(database, programID)
	if err != nil {
		t.Fatalf("list days: %v", err)
	}
	if len(days) != 1 || days[0].Name != "Push" {
		t.Fatalf("unexpected days: %+v", days)
	}

	exercises, err := GetWorkoutExercises(database, dayID)
	if err != nil {
		t.Fatalf("list exercises: %v", err)
	}
	if len(exercises) != 1 {
		t.Fatalf("expected one planned exercise, got %d", len(exercises))
	}
	detail := exercises[0]
	if detail.ExerciseName != "Bench Press" || detail.MuscleGroup != "Chest" {
		t.Fatalf("join did not resolve catalog fields: %+v", detail)
	}
	if detail.RestSeconds != 60 {
		t.Fatalf("default rest not applied: %d", detail.RestSeconds)
	}
}

func TestProgramOwnership(t *testing.T) {
	database := newTestDB(t)
	aliceID := mustCreateUser(t, database, "alice")
	bobID := mustCreateUser(t, database, "bob")

	programID, err := CreateProgram(database, aliceID, ProgramInput{Name: "Alice Plan"})
	if err != nil {
		t.Fatalf("create program: %v", err)
	}

	program, err := GetProgramByID(database, bobID, programID)
	if err != nil {
		t.Fatalf("cross-user lookup errored: %v", err)
	}
	if program != nil {
		t.Fatalf("bob can see alice's program")
	}

	err = DeleteProgram(database, bobID, programID)
	var serr ServiceError
	if !errors.As(err, &serr) || serr.Status != 404 {
		t.Fatalf("cross-user delete: expected 404, got %v", err)
	}
}

func TestDeleteProgramRemovesChildren(t *testing.T) {
	database := newTestDB(t)
	userID := mustCreateUser(t, database, "alice")

	exerciseID, err := AddExercise(database, ExerciseInput{Name: "Squat", MuscleGroup: "Legs"})
	if err != nil {
		t.Fatalf("add exercise: %v", err)
	}
	programID, err := CreateProgram(database, userID, ProgramInput{Name: "5-Day Split"})
	if err != nil {
		t.Fatalf("create program: %v", err)
	}
	for day := 1; day <= 2; day++ {
		dayID, err := AddWorkoutDay(database, programID, day, "Day")
		if err != nil {
			t.Fatalf("add day: %v", err)
		}
		if _, err := AddWorkoutExercise(database, dayID, WorkoutExerciseInput{ExerciseID: exerciseID, Sets: 3, Reps: "5"}); err != nil {
			t.Fatalf("add exercise: %v", err)
		}
	}

	if err := DeleteProgram(database, userID, programID); err != nil {
		t.Fatalf("delete program: %v", err)
	}

	var days, planned int
	if err := database.Get(&days, `SELECT COUNT(*) FROM workout_days WHERE program_id = ?`, programID); err != nil {
		t.Fatalf("count days: %v", err)
	}
	if err := database.Get(&planned, `
SELECT COUNT(*) FROM workout_exercises
WHERE workout_day_id IN (SELECT id FROM workout_days WHERE program_id = ?)
`, programID); err != nil {
		t.Fatalf("count planned: %v", err)
	}
	if days != 0 || planned != 0 {
		t.Fatalf("orphans left behind: days=%d planned=%d", days, planned)
	}
}

func TestSaveGeneratedProgram(t *testing.T) {
	database := newTestDB(t)
	userID := mustCreateUser(t, database, "alice")

	programID, err := SaveGeneratedProgram(database, userID, GeneratedProgram{
		Name:          "AI Push Pull",
		Description:   "Generated plan",
		Frequency:     "2 days/week",
		DurationWeeks: 6,
		Difficulty:    "Beginner",
		Tags:          []string{"ai"},
		WorkoutDays: []GeneratedDay{
			{
				DayNumber: 1,
				Name:      "Push",
				Exercises: []GeneratedExercise{
					{Name: "Push-Ups", Sets: 3, Reps: "10-15", RestSeconds: 45, Order: 1},
					{Name: "Handstand Hold", Sets: 2, Reps: "30s", RestSeconds: 90, Order: 2},
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("save generated program: %v", err)
	}

	days, err := GetWorkoutDays(database, programID)
	if err != nil || len(days) != 1 {
		t.Fatalf("expected one day, got %d (%v)", len(days), err)
	}
	exercises, err := GetWorkoutExercises(database, days[0].ID)
	if err != nil || len(exercises) != 2 {
		t.Fatalf("expected two planned exercises, got %d (%v)", len(exercises), err)
	}

	// A generator-invented name must land in the catalog as a custom entry.
	var isCustom bool
	if err := database.Get(&isCustom, `SELECT is_custom FROM exercises WHERE name = ?`, "Handstand Hold"); err != nil {
		t.Fatalf("generated exercise missing from catalog: %v", err)
	}
	if !isCustom {
		t.Fatalf("generated exercise should be flagged custom")
	}
}

func TestEnsureExerciseCatalogIdempotent(t *testing.T) {
	database := newTestDB(t)

	if err := EnsureExerciseCatalog(database); err != nil {
		t.Fatalf("seed catalog: %v", err)
	}
	var first int
	if err := database.Get(&first, `SELECT COUNT(*) FROM exercises`); err != nil {
		t.Fatalf("count: %v", err)
	}
	if first == 0 {
		t.Fatalf("catalog empty after seeding")
	}
	if err := EnsureExerciseCatalog(database); err != nil {
		t.Fatalf("second seed: %v", err)
	}
	var second int
	if err := database.Get(&second, `SELECT COUNT(*) FROM exercises`); err != nil {
		t.Fatalf("count: %v", err)
	}
	if first != second {
		t.Fatalf("seeding twice duplicated entries: %d -> %d", first, second)
	}
}

func TestListExercisesFilters(t *testing.T) {
	database := newTestDB(t)
	if err := EnsureExerciseCatalog(database); err != nil {
		t.Fatalf("seed catalog: %v", err)
	}

	chest, err := ListExercises(database, "Chest", "")
	if err != nil {
		t.Fatalf("filter by muscle group: %v", err)
	}
	for _, item := range chest {
		if item.MuscleGroup != "Chest" {
			t.Fatalf("filter leak: %+v", item)
		}
	}
	if len(chest) == 0 {
		t.Fatalf("expected seeded chest exercises")
	}

	all, err := ListExercises(database, "", "")
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) <= len(chest) {
		t.Fatalf("unfiltered list should be larger: %d vs %d", len(all), len(chest))
	}
}
