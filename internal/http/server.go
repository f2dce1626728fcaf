package httpapi

import (
	"net/http"
	"time"

	"zfit-backend-go/internal/ai"
	"zfit-backend-go/internal/config"
	"zfit-backend-go/internal/foodref"
	"zfit-backend-go/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"
)

type Server struct {
	DB         *sqlx.DB
	Config     config.Config
	Tokens     services.TokenService
	Foods      *foodref.Table
	AI         *ai.Client
	MetricsHub *services.MetricsHub
}

func NewServer(db *sqlx.DB, cfg config.Config, foods *foodref.Table, aiClient *ai.Client, hub *services.MetricsHub) *Server {
	tokens := services.TokenService{
		Secret:     []byte(cfg.JWTSecret),
		Issuer:     cfg.JWTIssuer,
		AccessTTL:  time.Duration(cfg.AccessTTLSeconds) * time.Second,
		RefreshTTL: time.Duration(cfg.RefreshTTLSeconds) * time.Second,
	}
	if foods == nil {
		foods = &foodref.Table{}
	}
	return &Server{
		DB:         db,
		Config:     cfg,
		Tokens:     tokens,
		Foods:      foods,
		AI:         aiClient,
		MetricsHub: hub,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestLogger)
	if len(s.Config.CorsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.Config.CorsOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	r.Route("/api", func(api chi.Router) {
		api.Post("/auth/register", s.Register)
		api.Post("/auth/login", s.Login)
		api.Post("/auth/refresh", s.Refresh)
		api.Post("/auth/logout", s.Logout)

		api.Route("/me", func(me chi.Router) {
			me.Use(WithAuth(s.Tokens))
			me.Get("/", s.Me)
			me.Get("/profile", s.Me)
			me.Put("/profile", s.UpdateProfile)
			me.Put("/password", s.ChangePassword)
			me.Delete("/", s.DeleteAccount)
			me.Get("/goals", s.GetDailyGoals)
			me.Put("/goals", s.SaveDailyGoals)
			me.Get("/recommendations", s.Recommendations)
			me.Get("/measurements", s.ListMeasurements)
			me.Post("/measurements", s.AddMeasurement)
			me.Get("/photos", s.ListProgressPhotos)
			me.Post("/photos", s.AddProgressPhoto)
		})

		api.Route("/exercises", func(exercises chi.Router) {
			exercises.Use(WithAuth(s.Tokens))
			exercises.Get("/", s.ListExercises)
			exercises.Post("/", s.CreateExercise)
			exercises.Get("/{exerciseId}", s.GetExercise)
		})

		api.Route("/programs", func(programs chi.Router) {
			programs.Use(WithAuth(s.Tokens))
			programs.Get("/", s.ListPrograms)
			programs.Post("/", s.CreateProgram)
			programs.Get("/{programId}", s.GetProgram)
			programs.Delete("/{programId}", s.DeleteProgram)
			programs.Get("/{programId}/days", s.ListProgramDays)
			programs.Post("/{programId}/days", s.AddProgramDay)
			programs.Get("/days/{dayId}/exercises", s.ListDayExercises)
			programs.Post("/days/{dayId}/exercises", s.AddDayExercise)
		})

		api.Route("/logs", func(logs chi.Router) {
			logs.Use(WithAuth(s.Tokens))
			logs.Post("/workouts", s.LogWorkout)
			logs.Post("/workouts/{logId}/sets", s.LogExerciseSet)
		})

		api.Route("/stats", func(stats chi.Router) {
			stats.Use(WithAuth(s.Tokens))
			stats.Get("/workouts", s.WorkoutStats)
			stats.Get("/progress", s.ExerciseProgress)
		})

		api.Route("/nutrition", func(nutrition chi.Router) {
			nutrition.Use(WithAuth(s.Tokens))
			nutrition.Get("/logs", s.ListFoodLogs)
			nutrition.Post("/logs", s.AddFoodLog)
			nutrition.Delete("/logs", s.ClearFoodLogs)
		})

		api.Route("/food", func(food chi.Router) {
			food.Use(WithAuth(s.Tokens))
			food.Get("/search", s.SearchFood)
			food.Get("/categories", s.FoodCategories)
			food.Get("/categories/{category}", s.FoodsByCategory)
			food.Get("/by-nutrient", s.FoodsByNutrient)
			food.Get("/{index}/serving", s.FoodServing)
		})

		api.Route("/ai", func(trainer chi.Router) {
			trainer.Use(WithAuth(s.Tokens))
			trainer.Use(s.RequireAI)
			trainer.Post("/program", s.GenerateProgram)
			trainer.Post("/form-tips", s.FormTips)
			trainer.Post("/modifications", s.SuggestModifications)
			trainer.Post("/analysis", s.AnalyzePerformance)
			trainer.Post("/chat", s.Chat)
			trainer.Post("/nutrition-image", s.EstimateNutrition)
		})

		api.With(WithAuth(s.Tokens)).Get("/metrics/history", s.MetricsHistory)
	})

	r.Get("/ws/metrics", s.MetricsSocket)
	return r
}
