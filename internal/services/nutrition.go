package services

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"zfit-backend-go/internal/models"
)

type FoodLogInput struct {
	Date        string
	Time        string
	FoodName    string
	MealType    string
	ServingSize float64
	Calories    float64
	Protein     float64
	Carbs       float64
	Fat         float64
	Fiber       float64
}

// AddFoodLog records one food intake entry and returns its id.
func AddFoodLog(db *sqlx.DB, userID string, input FoodLogInput) (int64, error) {
	if input.Date == "" {
		return 0, ErrBadRequest("Date is required")
	}
	if strings.TrimSpace(input.FoodName) == "" {
		return 0, ErrBadRequest("Food name is required")
	}
	res, err := db.Exec(`
INSERT INTO nutrition_logs (user_id, date, time, food_name, meal_type, serving_size, calories, protein, carbs, fat, fiber)
VALUES (?,?,?,?,?,?,?,?,?,?,?)
`, userID, input.Date, input.Time, strings.TrimSpace(input.FoodName), input.MealType,
		input.ServingSize, input.Calories, input.Protein, input.Carbs, input.Fat, input.Fiber)
	if err != nil {
		return 0, WrapError(err, "insert nutrition log")
	}
	id, err := res.LastInsertId()
	return id, WrapError(err, "nutrition log id")
}

func GetLogsByDate(db *sqlx.DB, userID, date string) ([]models.NutritionLog, error) {
	items := []models.NutritionLog{}
	err := db.Select(&items, `
SELECT * FROM nutrition_logs WHERE user_id = ? AND date = ? ORDER BY time, id
`, userID, date)
	return items, WrapError(err, "list nutrition logs")
}

// ClearLogsByDate bulk-deletes the day's entries and returns how many went.
func ClearLogsByDate(db *sqlx.DB, userID, date string) (int64, error) {
	res, err := db.Exec(`DELETE FROM nutrition_logs WHERE user_id = ? AND date = ?`, userID, date)
	if err != nil {
		return 0, WrapError(err, "clear nutrition logs")
	}
	affected, err := res.RowsAffected()
	return affected, WrapError(err, "rows affected")
}

type DailyGoalsInput struct {
	Calories int
	Protein  float64
	Carbs    float64
	Fat      float64
}

// SaveDailyGoals upserts the user's daily targets; the latest write wins.
func SaveDailyGoals(db *sqlx.DB, userID string, input DailyGoalsInput) error {
	_, err := db.Exec(`
INSERT INTO daily_goals (user_id, calories, protein, carbs, fat, updated_at)
VALUES (?,?,?,?,?,?)
ON CONFLICT (user_id) DO UPDATE SET
  calories = excluded.calories,
  protein = excluded.protein,
  carbs = excluded.carbs,
  fat = excluded.fat,
  updated_at = excluded.updated_at
`, userID, input.Calories, input.Protein, input.Carbs, input.Fat, time.Now().UTC())
	return WrapError(err, "save daily goals")
}

// GetDailyGoals returns nil, nil when the user has not set goals.
func GetDailyGoals(db *sqlx.DB, userID string) (*models.DailyGoals, error) {
	goals := models.DailyGoals{}
	err := db.Get(&goals, `SELECT * FROM daily_goals WHERE user_id = ?`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, WrapError(err, "get daily goals")
	}
	return &goals, nil
}

type BodyMeasurementInput struct {
	Date    string
	Weight  *float64
	BodyFat *float64
	Chest   *float64
	Waist   *float64
	Hips    *float64
	Biceps  *float64
	Thighs  *float64
	Notes   string
}

// AddBodyMeasurement appends a snapshot; measurements are never updated.
func AddBodyMeasurement(db *sqlx.DB, userID string, input BodyMeasurementInput) (int64, error) {
	if input.Date == "" {
		return 0, ErrBadRequest("Date is required")
	}
	res, err := db.Exec(`
INSERT INTO body_measurements (user_id, date, weight, body_fat, chest, waist, hips, biceps, thighs, notes)
VALUES (?,?,?,?,?,?,?,?,?,?)
`, userID, input.Date, input.Weight, input.BodyFat, input.Chest, input.Waist, input.Hips,
		input.Biceps, input.Thighs, input.Notes)
	if err != nil {
		return 0, WrapError(err, "insert body measurement")
	}
	id, err := res.LastInsertId()
	return id, WrapError(err, "body measurement id")
}

func GetBodyMeasurements(db *sqlx.DB, userID string) ([]models.BodyMeasurement, error) {
	items := []models.BodyMeasurement{}
	err := db.Select(&items, `SELECT * FROM body_measurements WHERE user_id = ? ORDER BY date`, userID)
	return items, WrapError(err, "list body measurements")
}

// AddProgressPhoto records a photo reference; the file itself lives outside
// the database.
func AddProgressPhoto(db *sqlx.DB, userID, date, photoPath, notes string) (int64, error) {
	if date == "" || photoPath == "" {
		return 0, ErrBadRequest("Date and photo path are required")
	}
	res, err := db.Exec(`
INSERT INTO progress_photos (user_id, date, photo_path, notes) VALUES (?,?,?,?)
`, userID, date, photoPath, notes)
	if err != nil {
		return 0, WrapError(err, "insert progress photo")
	}
	id, err := res.LastInsertId()
	return id, WrapError(err, "progress photo id")
}

func GetProgressPhotos(db *sqlx.DB, userID string) ([]models.ProgressPhoto, error) {
	items := []models.ProgressPhoto{}
	err := db.Select(&items, `SELECT * FROM progress_photos WHERE user_id = ? ORDER BY date`, userID)
	return items, WrapError(err, "list progress photos")
}
