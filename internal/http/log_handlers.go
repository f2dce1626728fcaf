package httpapi

import (
	"encoding/json"
	"net/http"

	"zfit-backend-go/internal/services"

	"github.com/go-chi/chi/v5"
)

type WorkoutLogRequest struct {
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	ProgramID *int64 `json:"programId"`
	DayID     *int64 `json:"dayId"`
	Notes     string `json:"notes"`
	Rating    *int   `json:"rating"`
}

func (s *Server) LogWorkout(w http.ResponseWriter, r *http.Request) {
	var req WorkoutLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	entry, err := services.LogWorkout(s.DB, CurrentUserID(r), services.WorkoutLogInput{
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		ProgramID: req.ProgramID,
		DayID:     req.DayID,
		Notes:     req.Notes,
		Rating:    req.Rating,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, entry)
}

type ExerciseSetRequest struct {
	ExerciseID int64   `json:"exerciseId"`
	SetNumber  int     `json:"setNumber"`
	Reps       int     `json:"reps"`
	Weight     float64 `json:"weight"`
	RPE        *int    `json:"rpe"`
	Notes      string  `json:"notes"`
}

func (s *Server) LogExerciseSet(w http.ResponseWriter, r *http.Request) {
	logID, ok := parseInt64(chi.URLParam(r, "logId"))
	if !ok {
		WriteError(w, http.StatusBadRequest, "Invalid workout log id")
		return
	}
	var exists bool
	if err := s.DB.Get(&exists, `SELECT EXISTS(SELECT 1 FROM workout_logs WHERE id = ? AND user_id = ?)`,
		logID, CurrentUserID(r)); err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !exists {
		WriteError(w, http.StatusNotFound, "Workout log not found")
		return
	}
	var req ExerciseSetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	set, err := services.LogExerciseSet(s.DB, logID, services.ExerciseSetInput{
		ExerciseID: req.ExerciseID,
		SetNumber:  req.SetNumber,
		Reps:       req.Reps,
		Weight:     req.Weight,
		RPE:        req.RPE,
		Notes:      req.Notes,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, set)
}

func (s *Server) WorkoutStats(w http.ResponseWriter, r *http.Request) {
	stats, err := services.GetWorkoutStatistics(s.DB, CurrentUserID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if stats == nil {
		WriteError(w, http.StatusNotFound, "No workouts logged yet")
		return
	}
	WriteJSON(w, http.StatusOK, stats)
}

func (s *Server) ExerciseProgress(w http.ResponseWriter, r *http.Request) {
	exercise := r.URL.Query().Get("exercise")
	if exercise == "" {
		WriteError(w, http.StatusBadRequest, "An exercise name is required")
		return
	}
	points, err := services.GetExerciseProgress(s.DB, CurrentUserID(r), exercise)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if points == nil {
		WriteError(w, http.StatusNotFound, "No history for this exercise")
		return
	}
	WriteJSON(w, http.StatusOK, map[string][]services.ProgressPoint{"items": points})
}
