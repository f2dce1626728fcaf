package httpapi

import (
	"encoding/json"
	"net/http"

	"zfit-backend-go/internal/models"
	"zfit-backend-go/internal/services"
)

type ProfileUpdateRequest struct {
	Name          *string  `json:"name"`
	Email         *string  `json:"email"`
	HeightCm      *float64 `json:"heightCm"`
	WeightKg      *float64 `json:"weightKg"`
	Age           *int     `json:"age"`
	Gender        *string  `json:"gender"`
	FitnessGoal   *string  `json:"fitnessGoal"`
	ActivityLevel *string  `json:"activityLevel"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (s *Server) Me(w http.ResponseWriter, r *http.Request) {
	user, err := services.GetUserByID(s.DB, CurrentUserID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if user == nil {
		WriteError(w, http.StatusNotFound, "User not found")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]*models.User{"user": user})
}

func (s *Server) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req ProfileUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	user, err := services.UpdateProfile(s.DB, CurrentUserID(r), services.ProfileUpdate{
		Name:          req.Name,
		Email:         req.Email,
		HeightCm:      req.HeightCm,
		WeightKg:      req.WeightKg,
		Age:           req.Age,
		Gender:        req.Gender,
		FitnessGoal:   req.FitnessGoal,
		ActivityLevel: req.ActivityLevel,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]*models.User{"user": user})
}

func (s *Server) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if req.ConfirmPassword != "" && req.NewPassword != req.ConfirmPassword {
		WriteError(w, http.StatusBadRequest, "Password confirmation does not match")
		return
	}
	if err := services.ChangePassword(s.DB, s.Tokens, CurrentUserID(r), req.CurrentPassword, req.NewPassword); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := services.DeleteAccount(s.DB, CurrentUserID(r)); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type DailyGoalsRequest struct {
	Calories int     `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

func (s *Server) GetDailyGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := services.GetDailyGoals(s.DB, CurrentUserID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if goals == nil {
		WriteError(w, http.StatusNotFound, "Daily goals not set")
		return
	}
	WriteJSON(w, http.StatusOK, goals)
}

func (s *Server) SaveDailyGoals(w http.ResponseWriter, r *http.Request) {
	var req DailyGoalsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	userID := CurrentUserID(r)
	if err := services.SaveDailyGoals(s.DB, userID, services.DailyGoalsInput{
		Calories: req.Calories,
		Protein:  req.Protein,
		Carbs:    req.Carbs,
		Fat:      req.Fat,
	}); err != nil {
		writeServiceError(w, err)
		return
	}
	goals, err := services.GetDailyGoals(s.DB, userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, goals)
}

type RecommendationResponse struct {
	BMR      float64               `json:"bmr"`
	TDEE     float64               `json:"tdee"`
	Calories int                   `json:"calories"`
	Macros   services.MacroTargets `json:"macros"`
}

// Recommendations derives calorie and macro targets from the stored profile.
// Weight, height and age must be set first.
func (s *Server) Recommendations(w http.ResponseWriter, r *http.Request) {
	user, err := services.GetUserByID(s.DB, CurrentUserID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if user == nil {
		WriteError(w, http.StatusNotFound, "User not found")
		return
	}
	if user.WeightKg == nil || user.HeightCm == nil || user.Age == nil {
		WriteError(w, http.StatusBadRequest, "Weight, height and age are required for recommendations")
		return
	}
	gender := ""
	if user.Gender != nil {
		gender = *user.Gender
	}
	bmr := services.CalculateBMR(*user.WeightKg, *user.HeightCm, *user.Age, gender)
	tdee := services.CalculateTDEE(bmr, user.ActivityLevel)
	calories := services.RecommendCalories(tdee, user.FitnessGoal)
	WriteJSON(w, http.StatusOK, RecommendationResponse{
		BMR:      bmr,
		TDEE:     tdee,
		Calories: calories,
		Macros:   services.RecommendMacros(calories, user.FitnessGoal),
	})
}

type MeasurementRequest struct {
	Date    string   `json:"date"`
	Weight  *float64 `json:"weight"`
	BodyFat *float64 `json:"bodyFat"`
	Chest   *float64 `json:"chest"`
	Waist   *float64 `json:"waist"`
	Hips    *float64 `json:"hips"`
	Biceps  *float64 `json:"biceps"`
	Thighs  *float64 `json:"thighs"`
	Notes   string   `json:"notes"`
}

func (s *Server) AddMeasurement(w http.ResponseWriter, r *http.Request) {
	var req MeasurementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	id, err := services.AddBodyMeasurement(s.DB, CurrentUserID(r), services.BodyMeasurementInput{
		Date:    req.Date,
		Weight:  req.Weight,
		BodyFat: req.BodyFat,
		Chest:   req.Chest,
		Waist:   req.Waist,
		Hips:    req.Hips,
		Biceps:  req.Biceps,
		Thighs:  req.Thighs,
		Notes:   req.Notes,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (s *Server) ListMeasurements(w http.ResponseWriter, r *http.Request) {
	items, err := services.GetBodyMeasurements(s.DB, CurrentUserID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string][]models.BodyMeasurement{"items": items})
}

type ProgressPhotoRequest struct {
	Date      string `json:"date"`
	PhotoPath string `json:"photoPath"`
	Notes     string `json:"notes"`
}

func (s *Server) AddProgressPhoto(w http.ResponseWriter, r *http.Request) {
	var req ProgressPhotoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	id, err := services.AddProgressPhoto(s.DB, CurrentUserID(r), req.Date, req.PhotoPath, req.Notes)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (s *Server) ListProgressPhotos(w http.ResponseWriter, r *http.Request) {
	items, err := services.GetProgressPhotos(s.DB, CurrentUserID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string][]models.ProgressPhoto{"items": items})
}
