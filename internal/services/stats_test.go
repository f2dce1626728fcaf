package services

import (
	"testing"
	"time"
)

func TestWorkoutStatisticsNilWithoutSessions(t *testing.T) {
	database := newTestDB(t)
	userID := mustCreateUser(t, database, "alice")

	stats, err := GetWorkoutStatistics(database, userID)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats != nil {
		t.Fatalf("expected nil stats for a user with no sessions, got %+v", stats)
	}
}

func TestWorkoutStatistics(t *testing.T) {
	database := newTestDB(t)
	userID := mustCreateUser(t, database, "alice")

	exerciseID, err := AddExercise(database, ExerciseInput{Name: "Bench Press", MuscleGroup: "Chest", Equipment: "Barbell"})
	if err != nil {
		t.Fatalf("add exercise: %v", err)
	}

	today := time.Now().UTC().Format("2006-01-02")
	entry, err := LogWorkout(database, userID, WorkoutLogInput{
		Date:      today,
		StartTime: "10:00",
		EndTime:   "11:00",
	})
	if err != nil {
		t.Fatalf("log workout: %v", err)
	}
	if _, err := LogExerciseSet(database, entry.ID, ExerciseSetInput{
		ExerciseID: exerciseID,
		SetNumber:  1,
		Reps:       8,
		Weight:     80,
	}); err != nil {
		t.Fatalf("log set: %v", err)
	}

	stats, err := GetWorkoutStatistics(database, userID)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats == nil {
		t.Fatalf("expected stats after one session")
	}
	if stats.TotalWorkouts != 1 {
		t.Fatalf("total workouts = %d", stats.TotalWorkouts)
	}
	if stats.AvgDurationMinutes != 60 {
		t.Fatalf("avg duration = %d, want 60", stats.AvgDurationMinutes)
	}
	if len(stats.WeeklyFrequency) != 1 || stats.WeeklyFrequency[0].Workouts != 1 {
		t.Fatalf("weekly frequency: %+v", stats.WeeklyFrequency)
	}
	if len(stats.MuscleGroups) != 1 || stats.MuscleGroups[0].Label != "Chest" {
		t.Fatalf("muscle groups: %+v", stats.MuscleGroups)
	}
	if len(stats.AvailableExercises) != 1 || stats.AvailableExercises[0] != "Bench Press" {
		t.Fatalf("available exercises: %+v", stats.AvailableExercises)
	}
	// No planned days exist, so the consistency ratio degrades to zero instead
	// of dividing by zero.
	if stats.Consistency != 0 {
		t.Fatalf("consistency without planned days = %d", stats.Consistency)
	}
}

func TestWorkoutStatisticsScopedPerUser(t *testing.T) {
	database := newTestDB(t)
	aliceID := mustCreateUser(t, database, "alice")
	bobID := mustCreateUser(t, database, "bob")

	if _, err := LogWorkout(database, aliceID, WorkoutLogInput{
		Date: "2026-08-01", StartTime: "09:00", EndTime: "09:45",
	}); err != nil {
		t.Fatalf("log workout: %v", err)
	}

	stats, err := GetWorkoutStatistics(database, bobID)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats != nil {
		t.Fatalf("bob sees alice's sessions")
	}
}

func TestExerciseProgressDailyBests(t *testing.T) {
	database := newTestDB(t)
	userID := mustCreateUser(t, database, "alice")

	exerciseID, err := AddExercise(database, ExerciseInput{Name: "Deadlift", MuscleGroup: "Back"})
	if err != nil {
		t.Fatalf("add exercise: %v", err)
	}

	sessions := []struct {
		date string
		sets []ExerciseSetInput
	}{
		{"2026-08-01", []ExerciseSetInput{
			{ExerciseID: exerciseID, SetNumber: 1, Reps: 5, Weight: 100},
			{ExerciseID: exerciseID, SetNumber: 2, Reps: 3, Weight: 120},
		}},
		{"2026-08-08", []ExerciseSetInput{
			{ExerciseID: exerciseID, SetNumber: 1, Reps: 5, Weight: 110},
		}},
	}
	for _, session := range sessions {
		entry, err := LogWorkout(database, userID, WorkoutLogInput{
			Date: session.date, StartTime: "10:00", EndTime: "11:00",
		})
		if err != nil {
			t.Fatalf("log workout: %v", err)
		}
		for _, set := range session.sets {
			if _, err := LogExerciseSet(database, entry.ID, set); err != nil {
				t.Fatalf("log set: %v", err)
			}
		}
	}

	points, err := GetExerciseProgress(database, userID, "deadlift")
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("expected one point per date, got %d", len(points))
	}
	if points[0].Date != "2026-08-01" || points[0].Weight != 120 || points[0].Reps != 5 {
		t.Fatalf("first point should carry the day's maxima: %+v", points[0])
	}
	if points[1].Weight != 110 {
		t.Fatalf("second point: %+v", points[1])
	}
}

func TestExerciseProgressNilWithoutHistory(t *testing.T) {
	database := newTestDB(t)
	userID := mustCreateUser(t, database, "alice")

	points, err := GetExerciseProgress(database, userID, "Bench Press")
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if points != nil {
		t.Fatalf("expected nil for an exercise with no history")
	}
}
