package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"zfit-backend-go/internal/config"
	"zfit-backend-go/internal/db"
	"zfit-backend-go/internal/foodref"
	"zfit-backend-go/internal/migrations"
	"zfit-backend-go/internal/services"
)

const testFoodCSV = `Food,Measure,Grams,Calories,Protein,Fat,Sat.Fat,Fiber,Carbs,Category
Apple,1 medium,100,52,0.3,0.2,t,2.4,13.8,Fruits
Chicken breast,100 g,100,165,31,3.6,1,0,0,Meat
`

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	dir := t.TempDir()
	database, err := db.Open(filepath.Join(dir, "zfit.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	if err := migrations.Apply(database); err != nil {
		t.Fatalf("migrations: %v", err)
	}

	foodPath := filepath.Join(dir, "foods.csv")
	if err := os.WriteFile(foodPath, []byte(testFoodCSV), 0o644); err != nil {
		t.Fatalf("write foods: %v", err)
	}
	foods, err := foodref.Load(foodPath)
	if err != nil {
		t.Fatalf("load foods: %v", err)
	}

	cfg := config.Config{
		JWTSecret:         "test-secret",
		JWTIssuer:         "zfit",
		AccessTTLSeconds:  3600,
		RefreshTTLSeconds: 86400,
	}
	server := NewServer(database, cfg, foods, nil, services.NewMetricsHub())
	ts := httptest.NewServer(server.Router())
	t.Cleanup(ts.Close)
	return server, ts
}

func doJSON(t *testing.T, method, url, token string, payload any) (*http.Response, []byte) {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()
	buf := bytes.Buffer{}
	_, _ = buf.ReadFrom(resp.Body)
	return resp, buf.Bytes()
}

func register(t *testing.T, ts *httptest.Server, username string) TokenResponse {
	t.Helper()
	resp, body := doJSON(t, http.MethodPost, ts.URL+"/api/auth/register", "", map[string]string{
		"username": username,
		"name":     "Test User",
		"password": "secret1",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("register %s: status %d body %s", username, resp.StatusCode, body)
	}
	var tokens TokenResponse
	if err := json.Unmarshal(body, &tokens); err != nil {
		t.Fatalf("decode tokens: %v", err)
	}
	if tokens.AccessToken == "" || tokens.RefreshToken == "" || tokens.User == nil {
		t.Fatalf("incomplete token response: %s", body)
	}
	return tokens
}

func TestRegisterLoginFlow(t *testing.T) {
	_, ts := newTestServer(t)

	tokens := register(t, ts, "alice")
	if tokens.User.Username != "alice" {
		t.Fatalf("unexpected user: %+v", tokens.User)
	}

	resp, body := doJSON(t, http.MethodPost, ts.URL+"/api/auth/login", "", map[string]string{
		"username": "alice",
		"password": "secret1",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: status %d body %s", resp.StatusCode, body)
	}
	if strings.Contains(string(body), "password") || strings.Contains(string(body), "Hash") {
		t.Fatalf("login response leaks password material: %s", body)
	}

	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/api/auth/login", "", map[string]string{
		"username": "alice",
		"password": "wrong",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("wrong password: status %d", resp.StatusCode)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	_, ts := newTestServer(t)
	register(t, ts, "alice")

	resp, body := doJSON(t, http.MethodPost, ts.URL+"/api/auth/register", "", map[string]string{
		"username": "ALICE",
		"name":     "Impostor",
		"password": "secret2",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate username: status %d body %s", resp.StatusCode, body)
	}
}

func TestRefreshFlow(t *testing.T) {
	_, ts := newTestServer(t)
	tokens := register(t, ts, "alice")

	resp, body := doJSON(t, http.MethodPost, ts.URL+"/api/auth/refresh", "", map[string]string{
		"refreshToken": tokens.RefreshToken,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("refresh: status %d body %s", resp.StatusCode, body)
	}

	// An access token is not valid as a refresh token.
	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/api/auth/refresh", "", map[string]string{
		"refreshToken": tokens.AccessToken,
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("access-as-refresh: status %d", resp.StatusCode)
	}
}

func TestAuthRequired(t *testing.T) {
	_, ts := newTestServer(t)

	paths := []string{"/api/me", "/api/exercises", "/api/programs", "/api/stats/workouts", "/api/food/search?q=a"}
	for _, path := range paths {
		resp, _ := doJSON(t, http.MethodGet, ts.URL+path, "", nil)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("%s without token: status %d", path, resp.StatusCode)
		}
	}

	tokens := register(t, ts, "alice")
	resp, _ := doJSON(t, http.MethodGet, ts.URL+"/api/me", tokens.RefreshToken, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("refresh token on an access route: status %d", resp.StatusCode)
	}
}

func TestProgramLifecycle(t *testing.T) {
	_, ts := newTestServer(t)
	alice := register(t, ts, "alice")
	bob := register(t, ts, "bob")

	resp, body := doJSON(t, http.MethodPost, ts.URL+"/api/exercises", alice.AccessToken, map[string]any{
		"name": "Bench Press", "muscleGroup": "Chest", "equipment": "Barbell",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create exercise: status %d body %s", resp.StatusCode, body)
	}
	var created map[string]int64
	_ = json.Unmarshal(body, &created)
	exerciseID := created["id"]

	resp, body = doJSON(t, http.MethodPost, ts.URL+"/api/programs", alice.AccessToken, map[string]any{
		"name": "5-Day Split", "durationWeeks": 5,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create program: status %d body %s", resp.StatusCode, body)
	}
	_ = json.Unmarshal(body, &created)
	programID := created["id"]

	resp, body = doJSON(t, http.MethodPost, fmt.Sprintf("%s/api/programs/%d/days", ts.URL, programID), alice.AccessToken, map[string]any{
		"dayNumber": 1, "name": "Push",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("add day: status %d body %s", resp.StatusCode, body)
	}
	_ = json.Unmarshal(body, &created)
	dayID := created["id"]

	resp, body = doJSON(t, http.MethodPost, fmt.Sprintf("%s/api/programs/days/%d/exercises", ts.URL, dayID), alice.AccessToken, map[string]any{
		"exerciseId": exerciseID, "sets": 3, "reps": "8-12", "orderInWorkout": 1,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("add day exercise: status %d body %s", resp.StatusCode, body)
	}

	// Ownership: bob cannot read or delete alice's program.
	resp, _ = doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/programs/%d", ts.URL, programID), bob.AccessToken, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("cross-user read: status %d", resp.StatusCode)
	}
	resp, _ = doJSON(t, http.MethodDelete, fmt.Sprintf("%s/api/programs/%d", ts.URL, programID), bob.AccessToken, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("cross-user delete: status %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, http.MethodDelete, fmt.Sprintf("%s/api/programs/%d", ts.URL, programID), alice.AccessToken, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete program: status %d", resp.StatusCode)
	}
}

func TestWorkoutLogAndStats(t *testing.T) {
	_, ts := newTestServer(t)
	alice := register(t, ts, "alice")

	resp, _ := doJSON(t, http.MethodGet, ts.URL+"/api/stats/workouts", alice.AccessToken, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("stats without sessions: status %d", resp.StatusCode)
	}

	resp, body := doJSON(t, http.MethodPost, ts.URL+"/api/logs/workouts", alice.AccessToken, map[string]any{
		"date": "2026-08-20", "startTime": "10:00", "endTime": "11:00",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("log workout: status %d body %s", resp.StatusCode, body)
	}

	resp, body = doJSON(t, http.MethodGet, ts.URL+"/api/stats/workouts", alice.AccessToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("stats: status %d body %s", resp.StatusCode, body)
	}
	var stats services.WorkoutStatistics
	if err := json.Unmarshal(body, &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if stats.TotalWorkouts != 1 {
		t.Fatalf("total workouts = %d", stats.TotalWorkouts)
	}

	resp, _ = doJSON(t, http.MethodGet, ts.URL+"/api/stats/progress?exercise=Bench+Press", alice.AccessToken, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("progress without history: status %d", resp.StatusCode)
	}
}

func TestNutritionEndpoints(t *testing.T) {
	_, ts := newTestServer(t)
	alice := register(t, ts, "alice")

	resp, body := doJSON(t, http.MethodPost, ts.URL+"/api/nutrition/logs", alice.AccessToken, map[string]any{
		"date": "2026-08-20", "time": "08:00", "foodName": "Apple", "mealType": "breakfast", "calories": 52,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("add food log: status %d body %s", resp.StatusCode, body)
	}

	resp, body = doJSON(t, http.MethodGet, ts.URL+"/api/nutrition/logs?date=2026-08-20", alice.AccessToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list food logs: status %d", resp.StatusCode)
	}
	if !strings.Contains(string(body), "Apple") {
		t.Fatalf("log not returned: %s", body)
	}

	resp, _ = doJSON(t, http.MethodGet, ts.URL+"/api/nutrition/logs", alice.AccessToken, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("missing date: status %d", resp.StatusCode)
	}

	resp, body = doJSON(t, http.MethodDelete, ts.URL+"/api/nutrition/logs?date=2026-08-20", alice.AccessToken, nil)
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), `"deleted":1`) {
		t.Fatalf("clear logs: status %d body %s", resp.StatusCode, body)
	}
}

func TestDailyGoalsEndpoints(t *testing.T) {
	_, ts := newTestServer(t)
	alice := register(t, ts, "alice")

	resp, _ := doJSON(t, http.MethodGet, ts.URL+"/api/me/goals", alice.AccessToken, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("goals before set: status %d", resp.StatusCode)
	}

	resp, body := doJSON(t, http.MethodPut, ts.URL+"/api/me/goals", alice.AccessToken, map[string]any{
		"calories": 2200, "protein": 160, "carbs": 220, "fat": 70,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("save goals: status %d body %s", resp.StatusCode, body)
	}
	if !strings.Contains(string(body), `"calories":2200`) {
		t.Fatalf("saved goals not echoed: %s", body)
	}
}

func TestRecommendationsRequireProfile(t *testing.T) {
	_, ts := newTestServer(t)
	alice := register(t, ts, "alice")

	resp, _ := doJSON(t, http.MethodGet, ts.URL+"/api/me/recommendations", alice.AccessToken, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("recommendations without profile: status %d", resp.StatusCode)
	}

	resp, body := doJSON(t, http.MethodPut, ts.URL+"/api/me/profile", alice.AccessToken, map[string]any{
		"weightKg": 80, "heightCm": 180, "age": 30, "gender": "male",
		"fitnessGoal": "Weight Loss", "activityLevel": "moderate",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update profile: status %d body %s", resp.StatusCode, body)
	}

	resp, body = doJSON(t, http.MethodGet, ts.URL+"/api/me/recommendations", alice.AccessToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("recommendations: status %d body %s", resp.StatusCode, body)
	}
	var rec RecommendationResponse
	if err := json.Unmarshal(body, &rec); err != nil {
		t.Fatalf("decode recommendations: %v", err)
	}
	if rec.BMR != 1780 {
		t.Fatalf("BMR = %v, want 1780", rec.BMR)
	}
	if rec.Calories != 2259 {
		t.Fatalf("calories = %d, want 2259", rec.Calories)
	}
}

func TestFoodEndpoints(t *testing.T) {
	_, ts := newTestServer(t)
	alice := register(t, ts, "alice")

	resp, body := doJSON(t, http.MethodGet, ts.URL+"/api/food/search?q=apple", alice.AccessToken, nil)
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "Apple") {
		t.Fatalf("search: status %d body %s", resp.StatusCode, body)
	}

	resp, body = doJSON(t, http.MethodGet, ts.URL+"/api/food/categories", alice.AccessToken, nil)
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "Fruits") {
		t.Fatalf("categories: status %d body %s", resp.StatusCode, body)
	}

	resp, body = doJSON(t, http.MethodGet, ts.URL+"/api/food/0/serving?grams=150", alice.AccessToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("serving: status %d body %s", resp.StatusCode, body)
	}
	var serving foodref.Serving
	if err := json.Unmarshal(body, &serving); err != nil {
		t.Fatalf("decode serving: %v", err)
	}
	if serving.Calories != 78 {
		t.Fatalf("150g apple = %v kcal, want 78", serving.Calories)
	}

	resp, _ = doJSON(t, http.MethodGet, ts.URL+"/api/food/99/serving?grams=100", alice.AccessToken, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("invalid index: status %d", resp.StatusCode)
	}
}

func TestFoodQueryLimitsCapped(t *testing.T) {
	server, ts := newTestServer(t)
	alice := register(t, ts, "alice")

	var b strings.Builder
	b.WriteString("Food,Measure,Grams,Calories,Protein,Fat,Sat.Fat,Fiber,Carbs,Category\n")
	for i := 0; i < 120; i++ {
		fmt.Fprintf(&b, "Bulk food %03d,1 cup,100,%d,5,1,0,1,10,Bulk\n", i, 100+i)
	}
	path := filepath.Join(t.TempDir(), "bulk.csv")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write foods: %v", err)
	}
	foods, err := foodref.Load(path)
	if err != nil {
		t.Fatalf("load foods: %v", err)
	}
	server.Foods = foods

	var payload struct {
		Items []foodref.Match `json:"items"`
	}

	resp, body := doJSON(t, http.MethodGet, ts.URL+"/api/food/by-nutrient?nutrient=calories&limit=1000", alice.AccessToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("by-nutrient: status %d body %s", resp.StatusCode, body)
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(payload.Items) != 100 {
		t.Fatalf("by-nutrient limit not capped at 100: %d items", len(payload.Items))
	}

	resp, body = doJSON(t, http.MethodGet, ts.URL+"/api/food/search?q=bulk&limit=1000", alice.AccessToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("search: status %d body %s", resp.StatusCode, body)
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(payload.Items) != 100 {
		t.Fatalf("search limit not capped at 100: %d items", len(payload.Items))
	}
}

func TestAIRoutesUnavailableWithoutKey(t *testing.T) {
	_, ts := newTestServer(t)
	alice := register(t, ts, "alice")

	routes := []string{"/api/ai/program", "/api/ai/form-tips", "/api/ai/chat", "/api/ai/nutrition-image"}
	for _, route := range routes {
		resp, _ := doJSON(t, http.MethodPost, ts.URL+route, alice.AccessToken, map[string]string{})
		if resp.StatusCode != http.StatusServiceUnavailable {
			t.Fatalf("%s without key: status %d", route, resp.StatusCode)
		}
	}
}

func TestDeleteAccountEndToEnd(t *testing.T) {
	_, ts := newTestServer(t)
	alice := register(t, ts, "alice")

	resp, _ := doJSON(t, http.MethodDelete, ts.URL+"/api/me", alice.AccessToken, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete account: status %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, http.MethodGet, ts.URL+"/api/me", alice.AccessToken, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("profile after deletion: status %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/api/auth/login", "", map[string]string{
		"username": "alice", "password": "secret1",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("login after deletion: status %d", resp.StatusCode)
	}
}
