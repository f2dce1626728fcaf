package services

import (
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"zfit-backend-go/internal/models"
)

type ExerciseInput struct {
	Name         string
	Description  string
	MuscleGroup  string
	Equipment    string
	Difficulty   string
	Instructions string
	VideoURL     string
	IsCustom     bool
}

// AddExercise inserts a catalog entry and returns its id.
func AddExercise(db *sqlx.DB, input ExerciseInput) (int64, error) {
	if strings.TrimSpace(input.Name) == "" {
		return 0, ErrBadRequest("Exercise name is required")
	}
	difficulty := input.Difficulty
	if difficulty == "" {
		difficulty = "intermediate"
	}
	res, err := db.Exec(`
INSERT INTO exercises (name, description, muscle_group, equipment, difficulty, instructions, video_url, is_custom)
VALUES (?,?,?,?,?,?,?,?)
`, strings.TrimSpace(input.Name), input.Description, input.MuscleGroup, input.Equipment,
		difficulty, input.Instructions, input.VideoURL, input.IsCustom)
	if err != nil {
		return 0, WrapError(err, "insert exercise")
	}
	id, err := res.LastInsertId()
	return id, WrapError(err, "exercise id")
}

// ListExercises filters the catalog by muscle group and equipment; empty
// filters match everything.
func ListExercises(db *sqlx.DB, muscleGroup, equipment string) ([]models.Exercise, error) {
	query := `SELECT * FROM exercises`
	clauses := []string{}
	args := []interface{}{}
	if muscleGroup != "" {
		clauses = append(clauses, `muscle_group = ?`)
		args = append(args, muscleGroup)
	}
	if equipment != "" {
		clauses = append(clauses, `equipment = ?`)
		args = append(args, equipment)
	}
	if len(clauses) > 0 {
		query += ` WHERE ` + strings.Join(clauses, ` AND `)
	}
	query += ` ORDER BY name`
	items := []models.Exercise{}
	if err := db.Select(&items, query, args...); err != nil {
		return nil, WrapError(err, "list exercises")
	}
	return items, nil
}

// GetExerciseByID returns nil, nil when absent.
func GetExerciseByID(db *sqlx.DB, id int64) (*models.Exercise, error) {
	item := models.Exercise{}
	err := db.Get(&item, `SELECT * FROM exercises WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, WrapError(err, "get exercise")
	}
	return &item, nil
}

type ProgramInput struct {
	Name          string
	Description   string
	Frequency     string
	DurationWeeks int
	Difficulty    string
	Tags          []string
}

// CreateProgram inserts a program shell and returns its id. Days and
// exercises are added by the caller with the returned id; the sequence is not
// atomic.
func CreateProgram(db *sqlx.DB, userID string, input ProgramInput) (int64, error) {
	if strings.TrimSpace(input.Name) == "" {
		return 0, ErrBadRequest("Program name is required")
	}
	weeks := input.DurationWeeks
	if weeks <= 0 {
		weeks = 4
	}
	difficulty := input.Difficulty
	if difficulty == "" {
		difficulty = "intermediate"
	}
	tags, err := json.Marshal(input.Tags)
	if err != nil {
		return 0, WrapError(err, "encode tags")
	}
	now := time.Now().UTC()
	res, err := db.Exec(`
INSERT INTO workout_programs (user_id, name, description, frequency, duration_weeks, difficulty, tags, created_at, updated_at)
VALUES (?,?,?,?,?,?,?,?,?)
`, userID, strings.TrimSpace(input.Name), input.Description, input.Frequency, weeks, difficulty, string(tags), now, now)
	if err != nil {
		return 0, WrapError(err, "insert program")
	}
	id, err := res.LastInsertId()
	return id, WrapError(err, "program id")
}

func AddWorkoutDay(db *sqlx.DB, programID int64, dayNumber int, name string) (int64, error) {
	res, err := db.Exec(`INSERT INTO workout_days (program_id, day_number, name) VALUES (?,?,?)`,
		programID, dayNumber, name)
	if err != nil {
		return 0, WrapError(err, "insert workout day")
	}
	id, err := res.LastInsertId()
	return id, WrapError(err, "workout day id")
}

type WorkoutExerciseInput struct {
	ExerciseID     int64
	Sets           int
	Reps           string
	RestSeconds    int
	Notes          string
	OrderInWorkout int
	IsSuperset     bool
	SupersetGroup  *int
}

func AddWorkoutExercise(db *sqlx.DB, dayID int64, input WorkoutExerciseInput) (int64, error) {
	rest := input.RestSeconds
	if rest <= 0 {
		rest = 60
	}
	res, err := db.Exec(`
INSERT INTO workout_exercises (workout_day_id, exercise_id, sets, reps, rest_seconds, notes, order_in_workout, is_superset, superset_group)
VALUES (?,?,?,?,?,?,?,?,?)
`, dayID, input.ExerciseID, input.Sets, input.Reps, rest, input.Notes, input.OrderInWorkout, input.IsSuperset, input.SupersetGroup)
	if err != nil {
		return 0, WrapError(err, "insert workout exercise")
	}
	id, err := res.LastInsertId()
	return id, WrapError(err, "workout exercise id")
}

func GetPrograms(db *sqlx.DB, userID string) ([]models.WorkoutProgram, error) {
	items := []models.WorkoutProgram{}
	err := db.Select(&items, `SELECT * FROM workout_programs WHERE user_id = ? ORDER BY created_at DESC`, userID)
	return items, WrapError(err, "list programs")
}

// GetProgramByID returns nil, nil when absent or owned by another user.
func GetProgramByID(db *sqlx.DB, userID string, programID int64) (*models.WorkoutProgram, error) {
	item := models.WorkoutProgram{}
	err := db.Get(&item, `SELECT * FROM workout_programs WHERE id = ? AND user_id = ?`, programID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, WrapError(err, "get program")
	}
	return &item, nil
}

func GetWorkoutDays(db *sqlx.DB, programID int64) ([]models.WorkoutDay, error) {
	items := []models.WorkoutDay{}
	err := db.Select(&items, `SELECT * FROM workout_days WHERE program_id = ? ORDER BY day_number`, programID)
	return items, WrapError(err, "list workout days")
}

func GetWorkoutExercises(db *sqlx.DB, dayID int64) ([]models.WorkoutExerciseDetail, error) {
	items := []models.WorkoutExerciseDetail{}
	err := db.Select(&items, `
SELECT we.id, we.workout_day_id, we.exercise_id, we.sets, we.reps, we.rest_seconds,
       we.notes, we.order_in_workout, we.is_superset, we.superset_group,
       e.name AS exercise_name, e.muscle_group, e.equipment
FROM workout_exercises we
JOIN exercises e ON e.id = we.exercise_id
WHERE we.workout_day_id = ?
ORDER BY we.order_in_workout
`, dayID)
	return items, WrapError(err, "list workout exercises")
}

// DeleteProgram removes a program with its days and planned exercises in one
// transaction, children before parents.
func DeleteProgram(db *sqlx.DB, userID string, programID int64) error {
	tx, err := db.Beginx()
	if err != nil {
		return WrapError(err, "begin delete program")
	}
	defer func() { _ = tx.Rollback() }()

	var exists bool
	if err := tx.Get(&exists, `SELECT EXISTS(SELECT 1 FROM workout_programs WHERE id = ? AND user_id = ?)`, programID, userID); err != nil {
		return WrapError(err, "check program")
	}
	if !exists {
		return ErrNotFound("Program not found")
	}
	if _, err := tx.Exec(`
DELETE FROM workout_exercises
WHERE workout_day_id IN (SELECT id FROM workout_days WHERE program_id = ?)
`, programID); err != nil {
		return WrapError(err, "delete workout exercises")
	}
	if _, err := tx.Exec(`DELETE FROM workout_days WHERE program_id = ?`, programID); err != nil {
		return WrapError(err, "delete workout days")
	}
	if _, err := tx.Exec(`DELETE FROM workout_programs WHERE id = ?`, programID); err != nil {
		return WrapError(err, "delete program")
	}
	return WrapError(tx.Commit(), "commit delete program")
}

// GeneratedProgram mirrors the structure the AI gateway produces.
type GeneratedProgram struct {
	Name          string                `json:"name"`
	Description   string                `json:"description"`
	Frequency     string                `json:"frequency"`
	DurationWeeks int                   `json:"duration_weeks"`
	Difficulty    string                `json:"difficulty"`
	Tags          []string              `json:"tags"`
	WorkoutDays   []GeneratedDay        `json:"workout_days"`
}

type GeneratedDay struct {
	DayNumber int                 `json:"day_number"`
	Name      string              `json:"name"`
	Exercises []GeneratedExercise `json:"exercises"`
}

type GeneratedExercise struct {
	Name        string `json:"name"`
	Sets        int    `json:"sets"`
	Reps        string `json:"reps"`
	RestSeconds int    `json:"rest_seconds"`
	Notes       string `json:"notes"`
	Order       int    `json:"order"`
}

// SaveGeneratedProgram persists an AI-generated program tree. Exercises named
// by the generator that are missing from the catalog are created as custom
// entries.
func SaveGeneratedProgram(db *sqlx.DB, userID string, program GeneratedProgram) (int64, error) {
	programID, err := CreateProgram(db, userID, ProgramInput{
		Name:          program.Name,
		Description:   program.Description,
		Frequency:     program.Frequency,
		DurationWeeks: program.DurationWeeks,
		Difficulty:    program.Difficulty,
		Tags:          program.Tags,
	})
	if err != nil {
		return 0, err
	}
	for _, day := range program.WorkoutDays {
		dayID, err := AddWorkoutDay(db, programID, day.DayNumber, day.Name)
		if err != nil {
			return 0, err
		}
		for _, exercise := range day.Exercises {
			exerciseID, err := findOrCreateExercise(db, exercise.Name)
			if err != nil {
				return 0, err
			}
			if _, err := AddWorkoutExercise(db, dayID, WorkoutExerciseInput{
				ExerciseID:     exerciseID,
				Sets:           exercise.Sets,
				Reps:           exercise.Reps,
				RestSeconds:    exercise.RestSeconds,
				Notes:          exercise.Notes,
				OrderInWorkout: exercise.Order,
			}); err != nil {
				return 0, err
			}
		}
	}
	return programID, nil
}

func findOrCreateExercise(db *sqlx.DB, name string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, ErrBadRequest("Exercise name is required")
	}
	var id int64
	err := db.Get(&id, `SELECT id FROM exercises WHERE name = ? COLLATE NOCASE`, name)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, WrapError(err, "lookup exercise")
	}
	return AddExercise(db, ExerciseInput{Name: name, IsCustom: true})
}
