package models

import "time"

type User struct {
	ID            string     `db:"id" json:"id"`
	Username      string     `db:"username" json:"username"`
	Name          string     `db:"name" json:"name"`
	Email         *string    `db:"email" json:"email"`
	PasswordHash  string     `db:"password_hash" json:"-"`
	HeightCm      *float64   `db:"height_cm" json:"heightCm"`
	WeightKg      *float64   `db:"weight_kg" json:"weightKg"`
	Age           *int       `db:"age" json:"age"`
	Gender        *string    `db:"gender" json:"gender"`
	FitnessGoal   string     `db:"fitness_goal" json:"fitnessGoal"`
	ActivityLevel string     `db:"activity_level" json:"activityLevel"`
	CreatedAt     time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updatedAt"`
	LastLoginAt   *time.Time `db:"last_login_at" json:"lastLoginAt"`
}

type Exercise struct {
	ID           int64  `db:"id" json:"id"`
	Name         string `db:"name" json:"name"`
	Description  string `db:"description" json:"description"`
	MuscleGroup  string `db:"muscle_group" json:"muscleGroup"`
	Equipment    string `db:"equipment" json:"equipment"`
	Difficulty   string `db:"difficulty" json:"difficulty"`
	Instructions string `db:"instructions" json:"instructions"`
	VideoURL     string `db:"video_url" json:"videoUrl"`
	IsCustom     bool   `db:"is_custom" json:"isCustom"`
}

type WorkoutProgram struct {
	ID            int64     `db:"id" json:"id"`
	UserID        string    `db:"user_id" json:"userId"`
	Name          string    `db:"name" json:"name"`
	Description   string    `db:"description" json:"description"`
	Frequency     string    `db:"frequency" json:"frequency"`
	DurationWeeks int       `db:"duration_weeks" json:"durationWeeks"`
	Difficulty    string    `db:"difficulty" json:"difficulty"`
	Tags          string    `db:"tags" json:"tags"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `db:"updated_at" json:"updatedAt"`
}

type WorkoutDay struct {
	ID        int64  `db:"id" json:"id"`
	ProgramID int64  `db:"program_id" json:"programId"`
	DayNumber int    `db:"day_number" json:"dayNumber"`
	Name      string `db:"name" json:"name"`
}

type WorkoutExercise struct {
	ID             int64  `db:"id" json:"id"`
	WorkoutDayID   int64  `db:"workout_day_id" json:"workoutDayId"`
	ExerciseID     int64  `db:"exercise_id" json:"exerciseId"`
	Sets           int    `db:"sets" json:"sets"`
	Reps           string `db:"reps" json:"reps"`
	RestSeconds    int    `db:"rest_seconds" json:"restSeconds"`
	Notes          string `db:"notes" json:"notes"`
	OrderInWorkout int    `db:"order_in_workout" json:"orderInWorkout"`
	IsSuperset     bool   `db:"is_superset" json:"isSuperset"`
	SupersetGroup  *int   `db:"superset_group" json:"supersetGroup"`
}

// WorkoutExerciseDetail joins a planned exercise with its catalog entry.
type WorkoutExerciseDetail struct {
	WorkoutExercise
	ExerciseName string `db:"exercise_name" json:"exerciseName"`
	MuscleGroup  string `db:"muscle_group" json:"muscleGroup"`
	Equipment    string `db:"equipment" json:"equipment"`
}

type WorkoutLog struct {
	ID        int64  `db:"id" json:"id"`
	UserID    string `db:"user_id" json:"userId"`
	Date      string `db:"date" json:"date"`
	StartTime string `db:"start_time" json:"startTime"`
	EndTime   string `db:"end_time" json:"endTime"`
	ProgramID *int64 `db:"program_id" json:"programId"`
	DayID     *int64 `db:"day_id" json:"dayId"`
	Notes     string `db:"notes" json:"notes"`
	Rating    *int   `db:"rating" json:"rating"`
}

type ExerciseLog struct {
	ID           int64   `db:"id" json:"id"`
	WorkoutLogID int64   `db:"workout_log_id" json:"workoutLogId"`
	ExerciseID   int64   `db:"exercise_id" json:"exerciseId"`
	SetNumber    int     `db:"set_number" json:"setNumber"`
	Reps         int     `db:"reps" json:"reps"`
	Weight       float64 `db:"weight" json:"weight"`
	RPE          *int    `db:"rpe" json:"rpe"`
	Notes        string  `db:"notes" json:"notes"`
}

type NutritionLog struct {
	ID          int64   `db:"id" json:"id"`
	UserID      string  `db:"user_id" json:"userId"`
	Date        string  `db:"date" json:"date"`
	Time        string  `db:"time" json:"time"`
	FoodName    string  `db:"food_name" json:"foodName"`
	MealType    string  `db:"meal_type" json:"mealType"`
	ServingSize float64 `db:"serving_size" json:"servingSize"`
	Calories    float64 `db:"calories" json:"calories"`
	Protein     float64 `db:"protein" json:"protein"`
	Carbs       float64 `db:"carbs" json:"carbs"`
	Fat         float64 `db:"fat" json:"fat"`
	Fiber       float64 `db:"fiber" json:"fiber"`
}

type DailyGoals struct {
	UserID    string    `db:"user_id" json:"userId"`
	Calories  int       `db:"calories" json:"calories"`
	Protein   float64   `db:"protein" json:"protein"`
	Carbs     float64   `db:"carbs" json:"carbs"`
	Fat       float64   `db:"fat" json:"fat"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

type BodyMeasurement struct {
	ID      int64    `db:"id" json:"id"`
	UserID  string   `db:"user_id" json:"userId"`
	Date    string   `db:"date" json:"date"`
	Weight  *float64 `db:"weight" json:"weight"`
	BodyFat *float64 `db:"body_fat" json:"bodyFat"`
	Chest   *float64 `db:"chest" json:"chest"`
	Waist   *float64 `db:"waist" json:"waist"`
	Hips    *float64 `db:"hips" json:"hips"`
	Biceps  *float64 `db:"biceps" json:"biceps"`
	Thighs  *float64 `db:"thighs" json:"thighs"`
	Notes   string   `db:"notes" json:"notes"`
}

type ProgressPhoto struct {
	ID        int64  `db:"id" json:"id"`
	UserID    string `db:"user_id" json:"userId"`
	Date      string `db:"date" json:"date"`
	PhotoPath string `db:"photo_path" json:"photoPath"`
	Notes     string `db:"notes" json:"notes"`
}

type ServerMetricSample struct {
	ID                string    `db:"id" json:"id"`
	CapturedAt        time.Time `db:"captured_at" json:"capturedAt"`
	HeapUsedBytes     int64     `db:"heap_used_bytes" json:"heapUsedBytes"`
	HeapMaxBytes      int64     `db:"heap_max_bytes" json:"heapMaxBytes"`
	SystemMemoryTotal int64     `db:"system_memory_total_bytes" json:"systemMemoryTotalBytes"`
	SystemMemoryUsed  int64     `db:"system_memory_used_bytes" json:"systemMemoryUsedBytes"`
	DiskTotalBytes    int64     `db:"disk_total_bytes" json:"diskTotalBytes"`
	DiskUsedBytes     int64     `db:"disk_used_bytes" json:"diskUsedBytes"`
	ProcessCpuLoad    float64   `db:"process_cpu_load" json:"processCpuLoad"`
	SystemCpuLoad     float64   `db:"system_cpu_load" json:"systemCpuLoad"`
}
