package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"zfit-backend-go/internal/foodref"
	"zfit-backend-go/internal/models"
	"zfit-backend-go/internal/services"

	"github.com/go-chi/chi/v5"
)

type FoodLogRequest struct {
	Date        string  `json:"date"`
	Time        string  `json:"time"`
	FoodName    string  `json:"foodName"`
	MealType    string  `json:"mealType"`
	ServingSize float64 `json:"servingSize"`
	Calories    float64 `json:"calories"`
	Protein     float64 `json:"protein"`
	Carbs       float64 `json:"carbs"`
	Fat         float64 `json:"fat"`
	Fiber       float64 `json:"fiber"`
}

func (s *Server) AddFoodLog(w http.ResponseWriter, r *http.Request) {
	var req FoodLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	id, err := services.AddFoodLog(s.DB, CurrentUserID(r), services.FoodLogInput{
		Date:        req.Date,
		Time:        req.Time,
		FoodName:    req.FoodName,
		MealType:    req.MealType,
		ServingSize: req.ServingSize,
		Calories:    req.Calories,
		Protein:     req.Protein,
		Carbs:       req.Carbs,
		Fat:         req.Fat,
		Fiber:       req.Fiber,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (s *Server) ListFoodLogs(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		WriteError(w, http.StatusBadRequest, "A date is required")
		return
	}
	items, err := services.GetLogsByDate(s.DB, CurrentUserID(r), date)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string][]models.NutritionLog{"items": items})
}

func (s *Server) ClearFoodLogs(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		WriteError(w, http.StatusBadRequest, "A date is required")
		return
	}
	deleted, err := services.ClearLogsByDate(s.DB, CurrentUserID(r), date)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]int64{"deleted": deleted})
}

func (s *Server) SearchFood(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		WriteError(w, http.StatusBadRequest, "A search query is required")
		return
	}
	limit := parseInt(r.URL.Query().Get("limit"), 20)
	if limit > 100 {
		limit = 100
	}
	matches := s.Foods.Search(query, limit)
	if matches == nil {
		matches = []foodref.Match{}
	}
	WriteJSON(w, http.StatusOK, map[string][]foodref.Match{"items": matches})
}

func (s *Server) FoodCategories(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string][]string{"items": s.Foods.Categories()})
}

func (s *Server) FoodsByCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	WriteJSON(w, http.StatusOK, map[string]interface{}{"items": s.Foods.ByCategory(category)})
}

func (s *Server) FoodsByNutrient(w http.ResponseWriter, r *http.Request) {
	nutrient := r.URL.Query().Get("nutrient")
	if nutrient == "" {
		WriteError(w, http.StatusBadRequest, "A nutrient name is required")
		return
	}
	min := parseFloat(r.URL.Query().Get("min"), -1)
	max := parseFloat(r.URL.Query().Get("max"), -1)
	limit := parseInt(r.URL.Query().Get("limit"), 20)
	if limit > 100 {
		limit = 100
	}
	matches := s.Foods.ByNutrient(nutrient, min, max, limit)
	if matches == nil {
		WriteError(w, http.StatusBadRequest, "Unknown nutrient")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{"items": matches})
}

func (s *Server) FoodServing(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || index < 0 {
		WriteError(w, http.StatusBadRequest, "Invalid food index")
		return
	}
	grams := parseFloat(r.URL.Query().Get("grams"), 0)
	serving := s.Foods.ScaleServing(index, grams)
	if serving == nil {
		WriteError(w, http.StatusNotFound, "Food not found or invalid serving size")
		return
	}
	WriteJSON(w, http.StatusOK, serving)
}
