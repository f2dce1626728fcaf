package services

import (
	"github.com/jmoiron/sqlx"
)

type WeeklyFrequency struct {
	Week     string `db:"week" json:"week"`
	Workouts int    `db:"workouts" json:"workouts"`
}

type GroupCount struct {
	Label string `db:"label" json:"label"`
	Count int    `db:"count" json:"count"`
}

// WorkoutStatistics aggregates logged-session metrics for dashboards.
// Consistency is a heuristic: distinct logged days in the last 30 days over
// distinct planned day numbers, expressed as a rounded percentage.
type WorkoutStatistics struct {
	TotalWorkouts      int               `json:"totalWorkouts"`
	WorkoutsThisMonth  int               `json:"workoutsThisMonth"`
	AvgDurationMinutes int               `json:"avgDurationMinutes"`
	Consistency        int               `json:"consistency"`
	WeeklyFrequency    []WeeklyFrequency `json:"weeklyFrequency"`
	MuscleGroups       []GroupCount      `json:"muscleGroups"`
	ExerciseTypes      []GroupCount      `json:"exerciseTypes"`
	AvailableExercises []string          `json:"availableExercises"`
}

// GetWorkoutStatistics returns nil when the user has no logged sessions, so
// callers must branch before rendering charts.
func GetWorkoutStatistics(db *sqlx.DB, userID string) (*WorkoutStatistics, error) {
	var total int
	if err := db.Get(&total, `SELECT COUNT(*) FROM workout_logs WHERE user_id = ?`, userID); err != nil {
		return nil, WrapError(err, "count workouts")
	}
	if total == 0 {
		return nil, nil
	}

	stats := WorkoutStatistics{TotalWorkouts: total}

	if err := db.Get(&stats.WorkoutsThisMonth, `
SELECT COUNT(*) FROM workout_logs
WHERE user_id = ? AND date >= date('now', 'start of month')
`, userID); err != nil {
		return nil, WrapError(err, "count workouts this month")
	}

	if err := db.Get(&stats.AvgDurationMinutes, `
SELECT CAST(ROUND(COALESCE(AVG(
  (strftime('%s', end_time) - strftime('%s', start_time)) / 60
), 0)) AS INTEGER)
FROM workout_logs
WHERE user_id = ?
`, userID); err != nil {
		return nil, WrapError(err, "average duration")
	}

	if err := db.Get(&stats.Consistency, `
SELECT CAST(ROUND(COALESCE(
  COUNT(DISTINCT date) * 100.0 / NULLIF((
    SELECT COUNT(DISTINCT wd.day_number)
    FROM workout_days wd
    JOIN workout_programs wp ON wp.id = wd.program_id
    WHERE wp.user_id = ?
  ), 0), 0)) AS INTEGER)
FROM workout_logs
WHERE user_id = ? AND date >= date('now', '-30 days')
`, userID, userID); err != nil {
		return nil, WrapError(err, "consistency")
	}

	stats.WeeklyFrequency = []WeeklyFrequency{}
	if err := db.Select(&stats.WeeklyFrequency, `
SELECT strftime('%W', date) AS week, COUNT(*) AS workouts
FROM workout_logs
WHERE user_id = ? AND date >= date('now', '-84 days')
GROUP BY week
ORDER BY week
`, userID); err != nil {
		return nil, WrapError(err, "weekly frequency")
	}

	stats.MuscleGroups = []GroupCount{}
	if err := db.Select(&stats.MuscleGroups, `
SELECT e.muscle_group AS label, COUNT(*) AS count
FROM exercise_logs el
JOIN workout_logs wl ON wl.id = el.workout_log_id
JOIN exercises e ON e.id = el.exercise_id
WHERE wl.user_id = ?
GROUP BY e.muscle_group
`, userID); err != nil {
		return nil, WrapError(err, "muscle group distribution")
	}

	stats.ExerciseTypes = []GroupCount{}
	if err := db.Select(&stats.ExerciseTypes, `
SELECT e.equipment AS label, COUNT(*) AS count
FROM exercise_logs el
JOIN workout_logs wl ON wl.id = el.workout_log_id
JOIN exercises e ON e.id = el.exercise_id
WHERE wl.user_id = ?
GROUP BY e.equipment
`, userID); err != nil {
		return nil, WrapError(err, "equipment distribution")
	}

	stats.AvailableExercises = []string{}
	if err := db.Select(&stats.AvailableExercises, `
SELECT DISTINCT e.name
FROM exercise_logs el
JOIN workout_logs wl ON wl.id = el.workout_log_id
JOIN exercises e ON e.id = el.exercise_id
WHERE wl.user_id = ?
ORDER BY e.name
`, userID); err != nil {
		return nil, WrapError(err, "available exercises")
	}

	return &stats, nil
}

// ProgressPoint is one day's best for an exercise: the maximum weight and
// maximum reps logged on that date, not set-by-set history.
type ProgressPoint struct {
	Date   string  `db:"date" json:"date"`
	Weight float64 `db:"weight" json:"weight"`
	Reps   int     `db:"reps" json:"reps"`
}

// GetExerciseProgress returns nil when the exercise has no logged history.
func GetExerciseProgress(db *sqlx.DB, userID, exerciseName string) ([]ProgressPoint, error) {
	points := []ProgressPoint{}
	err := db.Select(&points, `
SELECT wl.date AS date, MAX(el.weight) AS weight, MAX(el.reps) AS reps
FROM exercise_logs el
JOIN workout_logs wl ON wl.id = el.workout_log_id
JOIN exercises e ON e.id = el.exercise_id
WHERE wl.user_id = ? AND e.name = ? COLLATE NOCASE
GROUP BY wl.date
ORDER BY wl.date
`, userID, exerciseName)
	if err != nil {
		return nil, WrapError(err, "exercise progress")
	}
	if len(points) == 0 {
		return nil, nil
	}
	return points, nil
}
