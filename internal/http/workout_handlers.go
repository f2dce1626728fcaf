package httpapi

import (
	"encoding/json"
	"net/http"

	"zfit-backend-go/internal/models"
	"zfit-backend-go/internal/services"

	"github.com/go-chi/chi/v5"
)

type ExerciseRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	MuscleGroup  string `json:"muscleGroup"`
	Equipment    string `json:"equipment"`
	Difficulty   string `json:"difficulty"`
	Instructions string `json:"instructions"`
	VideoURL     string `json:"videoUrl"`
}

func (s *Server) ListExercises(w http.ResponseWriter, r *http.Request) {
	items, err := services.ListExercises(s.DB, r.URL.Query().Get("muscleGroup"), r.URL.Query().Get("equipment"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string][]models.Exercise{"items": items})
}

func (s *Server) CreateExercise(w http.ResponseWriter, r *http.Request) {
	var req ExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	id, err := services.AddExercise(s.DB, services.ExerciseInput{
		Name:         req.Name,
		Description:  req.Description,
		MuscleGroup:  req.MuscleGroup,
		Equipment:    req.Equipment,
		Difficulty:   req.Difficulty,
		Instructions: req.Instructions,
		VideoURL:     req.VideoURL,
		IsCustom:     true,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (s *Server) GetExercise(w http.ResponseWriter, r *http.Request) {
	id, ok := parseInt64(chi.URLParam(r, "exerciseId"))
	if !ok {
		WriteError(w, http.StatusBadRequest, "Invalid exercise id")
		return
	}
	item, err := services.GetExerciseByID(s.DB, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if item == nil {
		WriteError(w, http.StatusNotFound, "Exercise not found")
		return
	}
	WriteJSON(w, http.StatusOK, item)
}

type ProgramRequest struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Frequency     string   `json:"frequency"`
	DurationWeeks int      `json:"durationWeeks"`
	Difficulty    string   `json:"difficulty"`
	Tags          []string `json:"tags"`
}

func (s *Server) ListPrograms(w http.ResponseWriter, r *http.Request) {
	items, err := services.GetPrograms(s.DB, CurrentUserID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string][]models.WorkoutProgram{"items": items})
}

func (s *Server) CreateProgram(w http.ResponseWriter, r *http.Request) {
	var req ProgramRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	id, err := services.CreateProgram(s.DB, CurrentUserID(r), services.ProgramInput{
		Name:          req.Name,
		Description:   req.Description,
		Frequency:     req.Frequency,
		DurationWeeks: req.DurationWeeks,
		Difficulty:    req.Difficulty,
		Tags:          req.Tags,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (s *Server) GetProgram(w http.ResponseWriter, r *http.Request) {
	programID, ok := parseInt64(chi.URLParam(r, "programId"))
	if !ok {
		WriteError(w, http.StatusBadRequest, "Invalid program id")
		return
	}
	program, err := services.GetProgramByID(s.DB, CurrentUserID(r), programID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if program == nil {
		WriteError(w, http.StatusNotFound, "Program not found")
		return
	}
	WriteJSON(w, http.StatusOK, program)
}

func (s *Server) DeleteProgram(w http.ResponseWriter, r *http.Request) {
	programID, ok := parseInt64(chi.URLParam(r, "programId"))
	if !ok {
		WriteError(w, http.StatusBadRequest, "Invalid program id")
		return
	}
	if err := services.DeleteProgram(s.DB, CurrentUserID(r), programID); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type ProgramDayRequest struct {
	DayNumber int    `json:"dayNumber"`
	Name      string `json:"name"`
}

// ownProgram resolves the path program and enforces ownership in one step.
func (s *Server) ownProgram(w http.ResponseWriter, r *http.Request) (int64, bool) {
	programID, ok := parseInt64(chi.URLParam(r, "programId"))
	if !ok {
		WriteError(w, http.StatusBadRequest, "Invalid program id")
		return 0, false
	}
	program, err := services.GetProgramByID(s.DB, CurrentUserID(r), programID)
	if err != nil {
		writeServiceError(w, err)
		return 0, false
	}
	if program == nil {
		WriteError(w, http.StatusNotFound, "Program not found")
		return 0, false
	}
	return programID, true
}

func (s *Server) ListProgramDays(w http.ResponseWriter, r *http.Request) {
	programID, ok := s.ownProgram(w, r)
	if !ok {
		return
	}
	items, err := services.GetWorkoutDays(s.DB, programID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string][]models.WorkoutDay{"items": items})
}

func (s *Server) AddProgramDay(w http.ResponseWriter, r *http.Request) {
	programID, ok := s.ownProgram(w, r)
	if !ok {
		return
	}
	var req ProgramDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	id, err := services.AddWorkoutDay(s.DB, programID, req.DayNumber, req.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

type DayExerciseRequest struct {
	ExerciseID     int64  `json:"exerciseId"`
	Sets           int    `json:"sets"`
	Reps           string `json:"reps"`
	RestSeconds    int    `json:"restSeconds"`
	Notes          string `json:"notes"`
	OrderInWorkout int    `json:"orderInWorkout"`
	IsSuperset     bool   `json:"isSuperset"`
	SupersetGroup  *int   `json:"supersetGroup"`
}

// ownDay checks that the day belongs to one of the caller's programs.
func (s *Server) ownDay(w http.ResponseWriter, r *http.Request) (int64, bool) {
	dayID, ok := parseInt64(chi.URLParam(r, "dayId"))
	if !ok {
		WriteError(w, http.StatusBadRequest, "Invalid day id")
		return 0, false
	}
	var exists bool
	err := s.DB.Get(&exists, `
SELECT EXISTS(
  SELECT 1 FROM workout_days wd
  JOIN workout_programs wp ON wp.id = wd.program_id
  WHERE wd.id = ? AND wp.user_id = ?
)`, dayID, CurrentUserID(r))
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return 0, false
	}
	if !exists {
		WriteError(w, http.StatusNotFound, "Workout day not found")
		return 0, false
	}
	return dayID, true
}

func (s *Server) ListDayExercises(w http.ResponseWriter, r *http.Request) {
	dayID, ok := s.ownDay(w, r)
	if !ok {
		return
	}
	items, err := services.GetWorkoutExercises(s.DB, dayID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string][]models.WorkoutExerciseDetail{"items": items})
}

func (s *Server) AddDayExercise(w http.ResponseWriter, r *http.Request) {
	dayID, ok := s.ownDay(w, r)
	if !ok {
		return
	}
	var req DayExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	id, err := services.AddWorkoutExercise(s.DB, dayID, services.WorkoutExerciseInput{
		ExerciseID:     req.ExerciseID,
		Sets:           req.Sets,
		Reps:           req.Reps,
		RestSeconds:    req.RestSeconds,
		Notes:          req.Notes,
		OrderInWorkout: req.OrderInWorkout,
		IsSuperset:     req.IsSuperset,
		SupersetGroup:  req.SupersetGroup,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, map[string]int64{"id": id})
}
