package httpapi

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"zfit-backend-go/internal/ai"
	"zfit-backend-go/internal/services"
)

// RequireAI rejects assistant routes with 503 when no API key is configured.
func (s *Server) RequireAI(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.AI == nil || !s.AI.Enabled() {
			WriteError(w, http.StatusServiceUnavailable, "AI assistant is not configured")
			return
		}
		next.ServeHTTP(w, r)
	})
}

type GenerateProgramRequest struct {
	Goal           string   `json:"goal"`
	FitnessLevel   string   `json:"fitnessLevel"`
	Equipment      []string `json:"equipment"`
	DaysPerWeek    int      `json:"daysPerWeek"`
	TimePerSession int      `json:"timePerSession"`
	DurationWeeks  int      `json:"durationWeeks"`
	Save           bool     `json:"save"`
}

type GenerateProgramResponse struct {
	Program   *ai.GeneratedProgram `json:"program"`
	ProgramID *int64               `json:"programId,omitempty"`
}

// GenerateProgram asks the assistant for a program and optionally persists it
// under the caller's account.
func (s *Server) GenerateProgram(w http.ResponseWriter, r *http.Request) {
	var req GenerateProgramRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	program, err := s.AI.GenerateWorkoutProgram(r.Context(), ai.ProgramRequest{
		Goal:           req.Goal,
		FitnessLevel:   req.FitnessLevel,
		Equipment:      req.Equipment,
		DaysPerWeek:    req.DaysPerWeek,
		TimePerSession: req.TimePerSession,
		DurationWeeks:  req.DurationWeeks,
	})
	if err != nil {
		WriteError(w, http.StatusBadGateway, "AI assistant is unavailable")
		return
	}
	response := GenerateProgramResponse{Program: program}
	if req.Save {
		programID, err := services.SaveGeneratedProgram(s.DB, CurrentUserID(r), toGeneratedProgram(program))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		response.ProgramID = &programID
	}
	WriteJSON(w, http.StatusOK, response)
}

func toGeneratedProgram(program *ai.GeneratedProgram) services.GeneratedProgram {
	out := services.GeneratedProgram{
		Name:          program.Name,
		Description:   program.Description,
		Frequency:     program.Frequency,
		DurationWeeks: program.DurationWeeks,
		Difficulty:    program.Difficulty,
		Tags:          program.Tags,
	}
	for _, day := range program.WorkoutDays {
		outDay := services.GeneratedDay{DayNumber: day.DayNumber, Name: day.Name}
		for _, exercise := range day.Exercises {
			outDay.Exercises = append(outDay.Exercises, services.GeneratedExercise{
				Name:        exercise.Name,
				Sets:        exercise.Sets,
				Reps:        exercise.Reps,
				RestSeconds: exercise.RestSeconds,
				Notes:       exercise.Notes,
				Order:       exercise.Order,
			})
		}
		out.WorkoutDays = append(out.WorkoutDays, outDay)
	}
	return out
}

type FormTipsRequest struct {
	Exercise string `json:"exercise"`
}

func (s *Server) FormTips(w http.ResponseWriter, r *http.Request) {
	var req FormTipsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Exercise == "" {
		WriteError(w, http.StatusBadRequest, "An exercise name is required")
		return
	}
	tips, err := s.AI.GenerateFormTips(r.Context(), req.Exercise)
	if err != nil {
		WriteError(w, http.StatusBadGateway, "AI assistant is unavailable")
		return
	}
	WriteJSON(w, http.StatusOK, tips)
}

type ModificationsRequest struct {
	Workout  json.RawMessage `json:"workout"`
	Feedback string          `json:"feedback"`
}

func (s *Server) SuggestModifications(w http.ResponseWriter, r *http.Request) {
	var req ModificationsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Workout) == 0 {
		WriteError(w, http.StatusBadRequest, "Workout data is required")
		return
	}
	advice, err := s.AI.SuggestModifications(r.Context(), req.Workout, req.Feedback)
	if err != nil {
		WriteError(w, http.StatusBadGateway, "AI assistant is unavailable")
		return
	}
	WriteJSON(w, http.StatusOK, advice)
}

type AnalysisRequest struct {
	Workout json.RawMessage `json:"workout"`
}

func (s *Server) AnalyzePerformance(w http.ResponseWriter, r *http.Request) {
	var req AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Workout) == 0 {
		WriteError(w, http.StatusBadRequest, "Workout data is required")
		return
	}
	analysis, err := s.AI.AnalyzeWorkoutPerformance(r.Context(), req.Workout)
	if err != nil {
		WriteError(w, http.StatusBadGateway, "AI assistant is unavailable")
		return
	}
	WriteJSON(w, http.StatusOK, analysis)
}

type ChatRequest struct {
	Message string `json:"message"`
	Context string `json:"context"`
}

func (s *Server) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == "" {
		WriteError(w, http.StatusBadRequest, "A message is required")
		return
	}
	reply, err := s.AI.Chat(r.Context(), req.Message, req.Context)
	if err != nil {
		WriteError(w, http.StatusBadGateway, "AI assistant is unavailable")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

type NutritionImageRequest struct {
	Image    string `json:"image"`
	MimeType string `json:"mimeType"`
}

// EstimateNutrition takes a base64-encoded food photo and returns estimated
// macros.
func (s *Server) EstimateNutrition(w http.ResponseWriter, r *http.Request) {
	var req NutritionImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Image == "" {
		WriteError(w, http.StatusBadRequest, "An image is required")
		return
	}
	image, err := base64.StdEncoding.DecodeString(req.Image)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Image must be base64 encoded")
		return
	}
	estimate, err := s.AI.EstimateNutritionFromImage(r.Context(), image, req.MimeType)
	if err != nil {
		WriteError(w, http.StatusBadGateway, "AI assistant is unavailable")
		return
	}
	WriteJSON(w, http.StatusOK, estimate)
}
