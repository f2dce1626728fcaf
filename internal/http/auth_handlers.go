package httpapi

import (
	"encoding/json"
	"net/http"

	"zfit-backend-go/internal/models"
	"zfit-backend-go/internal/services"
)

type RegisterRequest struct {
	Username      string   `json:"username"`
	Name          string   `json:"name"`
	Password      string   `json:"password"`
	Email         *string  `json:"email"`
	HeightCm      *float64 `json:"heightCm"`
	WeightKg      *float64 `json:"weightKg"`
	Age           *int     `json:"age"`
	Gender        *string  `json:"gender"`
	FitnessGoal   string   `json:"fitnessGoal"`
	ActivityLevel string   `json:"activityLevel"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	ExpiresAt    int64        `json:"expiresAt"`
	User         *models.User `json:"user"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	user, err := services.CreateUser(s.DB, s.Tokens, services.CreateUserInput{
		Username:      req.Username,
		Name:          req.Name,
		Password:      req.Password,
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
	s.writeTokens(w, user)
}

func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	user, err := services.VerifyUser(s.DB, s.Tokens, req.Username, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	s.writeTokens(w, user)
}

func (s *Server) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Authentication failed")
		return
	}
	token, claims, err := s.Tokens.ParseToken(req.RefreshToken)
	if err != nil || !token.Valid || claims["typ"] != "refresh" {
		WriteError(w, http.StatusUnauthorized, "Authentication failed")
		return
	}
	userID, _ := claims["sub"].(string)
	if userID == "" {
		WriteError(w, http.StatusUnauthorized, "Authentication failed")
		return
	}
	user, err := services.GetUserByID(s.DB, userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if user == nil {
		WriteError(w, http.StatusUnauthorized, "Authentication failed")
		return
	}
	s.writeTokens(w, user)
}

func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeTokens(w http.ResponseWriter, user *models.User) {
	access, exp, err := s.Tokens.CreateAccessToken(user.ID, user.Username)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	refresh, err := s.Tokens.CreateRefreshToken(user.ID)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	WriteJSON(w, http.StatusOK, TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    exp,
		User:         user,
	})
}
