package services

import (
	"database/sql"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"zfit-backend-go/internal/models"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{3,20}$`)

type CreateUserInput struct {
	Username      string
	Name          string
	Password      string
	Email         *string
	HeightCm      *float64
	WeightKg      *float64
	Age           *int
	Gender        *string
	FitnessGoal   string
	ActivityLevel string
}

// CreateUser validates input, hashes the password and inserts the account.
// The returned user never carries the password hash.
func CreateUser(db *sqlx.DB, tokens TokenService, input CreateUserInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	if !usernamePattern.MatchString(username) {
		return nil, ErrBadRequest("Username must be 3-20 characters: letters, digits, hyphen or underscore")
	}
	if len(input.Password) < 6 {
		return nil, ErrBadRequest("Password must be at least 6 characters")
	}
	var exists bool
	if err := db.Get(&exists, `SELECT EXISTS(SELECT 1 FROM users WHERE username = ? COLLATE NOCASE)`, username); err != nil {
		return nil, WrapError(err, "check username")
	}
	if exists {
		return nil, ErrConflict("Username already taken")
	}

	hash, err := tokens.HashPassword(input.Password)
	if err != nil {
		return nil, WrapError(err, "hash password")
	}
	userID := uuid.NewString()
	now := time.Now().UTC()
	goal := input.FitnessGoal
	if goal == "" {
		goal = "General Fitness"
	}
	activity := input.ActivityLevel
	if activity == "" {
		activity = "Moderate"
	}
	_, err = db.Exec(`
INSERT INTO users (id, username, name, email, password_hash, height_cm, weight_kg, age, gender,
                   fitness_goal, activity_level, created_at, updated_at)
VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)
`, userID, username, strings.TrimSpace(input.Name), normalizeEmail(input.Email), hash,
		input.HeightCm, input.WeightKg, input.Age, input.Gender, goal, activity, now, now)
	if err != nil {
		return nil, WrapError(err, "insert user")
	}
	return GetUserByID(db, userID)
}

// VerifyUser authenticates by username (or email) and password. The returned
// user is sanitized; any failure maps to the same unauthorized error.
func VerifyUser(db *sqlx.DB, tokens TokenService, identifier, password string) (*models.User, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, ErrUnauthorized("Invalid username or password")
	}
	user := models.User{}
	err := db.Get(&user, `
SELECT * FROM users
WHERE username = ? COLLATE NOCASE OR lower(email) = lower(?)
`, identifier, identifier)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUnauthorized("Invalid username or password")
	}
	if err != nil {
		return nil, WrapError(err, "lookup user")
	}
	if !tokens.VerifyPassword(password, user.PasswordHash) {
		return nil, ErrUnauthorized("Invalid username or password")
	}
	now := time.Now().UTC()
	_, _ = db.Exec(`UPDATE users SET last_login_at = ? WHERE id = ?`, now, user.ID)
	user.LastLoginAt = &now
	user.PasswordHash = ""
	return &user, nil
}

// GetUserByID returns nil, nil when the user does not exist.
func GetUserByID(db *sqlx.DB, userID string) (*models.User, error) {
	user := models.User{}
	err := db.Get(&user, `SELECT * FROM users WHERE id = ?`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, WrapError(err, "get user by id")
	}
	user.PasswordHash = ""
	return &user, nil
}

// GetUserByUsername returns nil, nil when the user does not exist.
func GetUserByUsername(db *sqlx.DB, username string) (*models.User, error) {
	user := models.User{}
	err := db.Get(&user, `SELECT * FROM users WHERE username = ? COLLATE NOCASE`, strings.TrimSpace(username))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, WrapError(err, "get user by username")
	}
	user.PasswordHash = ""
	return &user, nil
}

// ProfileUpdate carries the mutable profile fields. Nil fields are left
// untouched; anything outside this struct cannot be changed here.
type ProfileUpdate struct {
	Name          *string
	Email         *string
	HeightCm      *float64
	WeightKg      *float64
	Age           *int
	Gender        *string
	FitnessGoal   *string
	ActivityLevel *string
}

func UpdateProfile(db *sqlx.DB, userID string, update ProfileUpdate) (*models.User, error) {
	_, err := db.Exec(`
UPDATE users
SET name = COALESCE(?, name),
    email = COALESCE(?, email),
    height_cm = COALESCE(?, height_cm),
    weight_kg = COALESCE(?, weight_kg),
    age = COALESCE(?, age),
    gender = COALESCE(?, gender),
    fitness_goal = COALESCE(?, fitness_goal),
    activity_level = COALESCE(?, activity_level),
    updated_at = ?
WHERE id = ?
`, update.Name, normalizeEmail(update.Email), update.HeightCm, update.WeightKg, update.Age,
		update.Gender, update.FitnessGoal, update.ActivityLevel, time.Now().UTC(), userID)
	if err != nil {
		return nil, WrapError(err, "update profile")
	}
	user, err := GetUserByID(db, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound("User not found")
	}
	return user, nil
}

func ChangePassword(db *sqlx.DB, tokens TokenService, userID, currentPassword, newPassword string) error {
	if len(newPassword) < 6 {
		return ErrBadRequest("Password must be at least 6 characters")
	}
	var hash string
	err := db.Get(&hash, `SELECT password_hash FROM users WHERE id = ?`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound("User not found")
	}
	if err != nil {
		return WrapError(err, "lookup password hash")
	}
	if !tokens.VerifyPassword(currentPassword, hash) {
		return ErrUnauthorized("Current password is incorrect")
	}
	newHash, err := tokens.HashPassword(newPassword)
	if err != nil {
		return WrapError(err, "hash password")
	}
	_, err = db.Exec(`UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`, newHash, time.Now().UTC(), userID)
	return WrapError(err, "update password")
}

// DeleteAccount removes the user row; owned rows go with it via foreign keys.
func DeleteAccount(db *sqlx.DB, userID string) error {
	_, err := db.Exec(`DELETE FROM users WHERE id = ?`, userID)
	return WrapError(err, "delete account")
}

func normalizeEmail(email *string) *string {
	if email == nil {
		return nil
	}
	value := strings.ToLower(strings.TrimSpace(*email))
	if value == "" {
		return nil
	}
	return &value
}
