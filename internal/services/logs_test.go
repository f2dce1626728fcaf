package services

import "testing"

func TestLogWorkoutReturnsStoredRow(t *testing.T) {
	database := newTestDB(t)
	userID := mustCreateUser(t, database, "alice")

	exerciseID, err := AddExercise(database, ExerciseInput{Name: "Barbell Row", MuscleGroup: "Back"})
	if err != nil {
		t.Fatalf("add exercise: %v", err)
	}

	entry, err := LogWorkout(database, userID, WorkoutLogInput{
		Date:      "2026-08-20",
		StartTime: "10:00",
		EndTime:   "11:00",
		Notes:     "solid session",
	})
	if err != nil {
		t.Fatalf("log workout: %v", err)
	}
	if entry.ID == 0 || entry.UserID != userID || entry.Notes != "solid session" {
		t.Fatalf("stored row not returned: %+v", entry)
	}

	set, err := LogExerciseSet(database, entry.ID, ExerciseSetInput{
		ExerciseID: exerciseID,
		SetNumber:  1,
		Reps:       10,
		Weight:     60,
	})
	if err != nil {
		t.Fatalf("log set: %v", err)
	}
	if set.ID == 0 || set.WorkoutLogID != entry.ID || set.Weight != 60 {
		t.Fatalf("stored set not returned: %+v", set)
	}
}

func TestLogWorkoutRequiresTimes(t *testing.T) {
	database := newTestDB(t)
	userID := mustCreateUser(t, database, "alice")

	if _, err := LogWorkout(database, userID, WorkoutLogInput{Date: "2026-08-20"}); err == nil {
		t.Fatalf("expected validation error without start and end times")
	}
}
