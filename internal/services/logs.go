package services

import (
	"zfit-backend-go/internal/models"

	"github.com/jmoiron/sqlx"
)

type WorkoutLogInput struct {
	Date      string
	StartTime string
	EndTime   string
	ProgramID *int64
	DayID     *int64
	Notes     string
	Rating    *int
}

// LogWorkout records a completed session and returns the stored row. Logs
// are append-only; there is no update path.
func LogWorkout(db *sqlx.DB, userID string, input WorkoutLogInput) (*models.WorkoutLog, error) {
	if input.Date == "" || input.StartTime == "" || input.EndTime == "" {
		return nil, ErrBadRequest("Date, start time and end time are required")
	}
	res, err := db.Exec(`
INSERT INTO workout_logs (user_id, date, start_time, end_time, program_id, day_id, notes, rating)
VALUES (?,?,?,?,?,?,?,?)
`, userID, input.Date, input.StartTime, input.EndTime, input.ProgramID, input.DayID, input.Notes, input.Rating)
	if err != nil {
		return nil, WrapError(err, "insert workout log")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, WrapError(err, "workout log id")
	}
	entry := models.WorkoutLog{}
	if err := db.Get(&entry, `SELECT * FROM workout_logs WHERE id = ?`, id); err != nil {
		return nil, WrapError(err, "read workout log")
	}
	return &entry, nil
}

type ExerciseSetInput struct {
	ExerciseID int64
	SetNumber  int
	Reps       int
	Weight     float64
	RPE        *int
	Notes      string
}

// LogExerciseSet appends one set record to an existing workout log and
// returns the stored row.
func LogExerciseSet(db *sqlx.DB, workoutLogID int64, input ExerciseSetInput) (*models.ExerciseLog, error) {
	if workoutLogID <= 0 {
		return nil, ErrBadRequest("A workout log id is required")
	}
	res, err := db.Exec(`
INSERT INTO exercise_logs (workout_log_id, exercise_id, set_number, reps, weight, rpe, notes)
VALUES (?,?,?,?,?,?,?)
`, workoutLogID, input.ExerciseID, input.SetNumber, input.Reps, input.Weight, input.RPE, input.Notes)
	if err != nil {
		return nil, WrapError(err, "insert exercise log")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, WrapError(err, "exercise log id")
	}
	entry := models.ExerciseLog{}
	if err := db.Get(&entry, `SELECT * FROM exercise_logs WHERE id = ?`, id); err != nil {
		return nil, WrapError(err, "read exercise log")
	}
	return &entry, nil
}
