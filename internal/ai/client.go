// Package ai wraps the Gemini generateContent REST API for workout and
// nutrition assistance. All responses that carry structure are requested as
// JSON and decoded strictly; free-form answers come back as plain text.
package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

type Client struct {
	apiKey      string
	baseURL     string
	model       string
	visionModel string
	client      *http.Client
}

func NewClient(apiKey, model, visionModel string) *Client {
	return &Client{
		apiKey:      apiKey,
		baseURL:     defaultBaseURL,
		model:       model,
		visionModel: visionModel,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Enabled reports whether an API key was configured. Handlers answer 503 when
// it is not, instead of forwarding doomed requests upstream.
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

// SetBaseURL points the client at a different endpoint. Used by tests.
func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = strings.TrimRight(baseURL, "/")
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (c *Client) generate(ctx context.Context, model string, parts []part) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("GEMINI_API_KEY not configured")
	}

	payload, err := json.Marshal(generateRequest{Contents: []content{{Parts: parts}}})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", c.baseURL, model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini error (status %d): %s", resp.StatusCode, string(body))
	}

	var parsed generateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no candidates returned")
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

func (c *Client) generateText(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, c.model, []part{{Text: prompt}})
}

// ProgramRequest describes the user profile a generated program is built for.
type ProgramRequest struct {
	Goal           string   `json:"goal"`
	FitnessLevel   string   `json:"fitness_level"`
	Equipment      []string `json:"equipment"`
	DaysPerWeek    int      `json:"days_per_week"`
	TimePerSession int      `json:"time_per_session"`
	DurationWeeks  int      `json:"duration_weeks"`
}

// GeneratedProgram mirrors the JSON shape the model is asked to produce.
type GeneratedProgram struct {
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	Frequency     string         `json:"frequency"`
	DurationWeeks int            `json:"duration_weeks"`
	Difficulty    string         `json:"difficulty"`
	Tags          []string       `json:"tags"`
	WorkoutDays   []GeneratedDay `json:"workout_days"`
}

type GeneratedDay struct {
	DayNumber int                 `json:"day_number"`
	Name      string              `json:"name"`
	Exercises []GeneratedExercise `json:"exercises"`
}

type GeneratedExercise struct {
	Name        string `json:"name"`
	Sets        int    `json:"sets"`
	Reps        string `json:"reps"`
	RestSeconds int    `json:"rest_seconds"`
	Notes       string `json:"notes"`
	Order       int    `json:"order"`
}

// GenerateWorkoutProgram asks the model for a full multi-week program matching
// the profile and decodes the structured reply.
func (c *Client) GenerateWorkoutProgram(ctx context.Context, req ProgramRequest) (*GeneratedProgram, error) {
	if req.DurationWeeks <= 0 {
		req.DurationWeeks = 4
	}
	if req.DaysPerWeek <= 0 {
		req.DaysPerWeek = 3
	}
	if req.TimePerSession <= 0 {
		req.TimePerSession = 45
	}
	if req.Goal == "" {
		req.Goal = "General Fitness"
	}
	if req.FitnessLevel == "" {
		req.FitnessLevel = "Beginner"
	}
	equipment := strings.Join(req.Equipment, ", ")
	if equipment == "" {
		equipment = "Bodyweight"
	}

	prompt := fmt.Sprintf(`As an expert fitness trainer, create a detailed %d-week workout program following these specifications:

USER PROFILE:
- Goal: %s
- Experience Level: %s
- Available Equipment: %s
- Training Frequency: %d days per week
- Session Duration: %d minutes

REQUIREMENTS:
1. Focus on proper exercise progression
2. Include compound movements as primary exercises
3. Balance workout intensity and recovery
4. Provide clear exercise order and rest periods
5. Include form cues and safety notes
6. Ensure exercises match available equipment
7. Structure workouts to fit within time limit

Respond with a JSON object only, in this exact format:
{
  "name": "Program name reflecting the goal",
  "description": "Detailed program overview",
  "frequency": "X days/week",
  "duration_weeks": %d,
  "difficulty": "Beginner/Intermediate/Advanced",
  "tags": ["relevant", "program", "tags"],
  "workout_days": [
    {
      "day_number": 1,
      "name": "Focus of the day (e.g., Push, Pull)",
      "exercises": [
        {
          "name": "Exercise name",
          "sets": 3,
          "reps": "8-12",
          "rest_seconds": 60,
          "notes": "Form cues and safety tips",
          "order": 1
        }
      ]
    }
  ]
}`, req.DurationWeeks, req.Goal, req.FitnessLevel, equipment, req.DaysPerWeek, req.TimePerSession, req.DurationWeeks)

	text, err := c.generateText(ctx, prompt)
	if err != nil {
		return nil, err
	}
	program := GeneratedProgram{}
	if err := decodeJSONBlock(text, &program); err != nil {
		return nil, err
	}
	if program.DurationWeeks <= 0 {
		program.DurationWeeks = req.DurationWeeks
	}
	return &program, nil
}

// FormTips is the structured coaching answer for a single exercise.
type FormTips struct {
	Exercise       string   `json:"exercise"`
	Setup          []string `json:"setup"`
	Execution      []string `json:"execution"`
	CommonMistakes []string `json:"common_mistakes"`
	SafetyTips     []string `json:"safety_tips"`
	Breathing      string   `json:"breathing"`
	Variations     []string `json:"variations"`
}

func (c *Client) GenerateFormTips(ctx context.Context, exerciseName string) (*FormTips, error) {
	prompt := fmt.Sprintf(`As an expert fitness trainer, provide detailed form instructions and tips for the %s exercise.
Include setup, execution, common mistakes, and safety considerations.

Respond with a JSON object only, in this exact format:
{
  "exercise": "%s",
  "setup": ["Step-by-step setup instructions"],
  "execution": ["Step-by-step execution points"],
  "common_mistakes": ["List of common mistakes"],
  "safety_tips": ["Important safety considerations"],
  "breathing": "Breathing pattern instructions",
  "variations": ["Possible variations or progressions"]
}`, exerciseName, exerciseName)

	text, err := c.generateText(ctx, prompt)
	if err != nil {
		return nil, err
	}
	tips := FormTips{}
	if err := decodeJSONBlock(text, &tips); err != nil {
		return nil, err
	}
	if tips.Exercise == "" {
		tips.Exercise = exerciseName
	}
	return &tips, nil
}

// Modification is one suggested change to an existing workout.
type Modification struct {
	Exercise    string `json:"exercise"`
	Change      string `json:"change"`
	Reason      string `json:"reason"`
	Alternative string `json:"alternative"`
}

type ModificationAdvice struct {
	Modifications []Modification `json:"modifications"`
	GeneralAdvice string         `json:"general_advice"`
}

// SuggestModifications proposes adjustments to a workout given free-form user
// feedback. The workout payload passes through as JSON.
func (c *Client) SuggestModifications(ctx context.Context, workout any, feedback string) (*ModificationAdvice, error) {
	workoutJSON, err := json.MarshalIndent(workout, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal workout: %w", err)
	}
	prompt := fmt.Sprintf(`As an expert fitness trainer, analyze this workout data and user feedback to suggest modifications:

Current Workout:
%s

User Feedback:
%s

Respond with a JSON object only, in this exact format:
{
  "modifications": [
    {
      "exercise": "Original exercise name",
      "change": "What to change",
      "reason": "Why make this change",
      "alternative": "Alternative exercise or modification"
    }
  ],
  "general_advice": "Overall advice for improvement"
}`, workoutJSON, feedback)

	text, err := c.generateText(ctx, prompt)
	if err != nil {
		return nil, err
	}
	advice := ModificationAdvice{}
	if err := decodeJSONBlock(text, &advice); err != nil {
		return nil, err
	}
	return &advice, nil
}

type PerformanceAnalysis struct {
	OverallPerformance  string   `json:"overall_performance"`
	Achievements        []string `json:"achievements"`
	AreasForImprovement []string `json:"areas_for_improvement"`
	Recommendations     []string `json:"recommendations"`
	NextSessionTips     []string `json:"next_session_tips"`
}

// AnalyzeWorkoutPerformance reviews logged session data and returns coaching
// insights.
func (c *Client) AnalyzeWorkoutPerformance(ctx context.Context, workout any) (*PerformanceAnalysis, error) {
	workoutJSON, err := json.MarshalIndent(workout, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal workout: %w", err)
	}
	prompt := fmt.Sprintf(`As an expert fitness trainer, analyze this workout performance data and provide insights:

Workout Data:
%s

Respond with a JSON object only, in this exact format:
{
  "overall_performance": "General performance assessment",
  "achievements": ["List of notable achievements"],
  "areas_for_improvement": ["Areas that need work"],
  "recommendations": ["Specific recommendations"],
  "next_session_tips": ["Tips for the next workout"]
}`, workoutJSON)

	text, err := c.generateText(ctx, prompt)
	if err != nil {
		return nil, err
	}
	analysis := PerformanceAnalysis{}
	if err := decodeJSONBlock(text, &analysis); err != nil {
		return nil, err
	}
	return &analysis, nil
}

// Chat answers a free-form question, optionally prefixed with caller context.
// The reply is plain text, not JSON.
func (c *Client) Chat(ctx context.Context, message, contextText string) (string, error) {
	prompt := message
	if contextText != "" {
		prompt = contextText + "\n\n" + message
	}
	return c.generateText(ctx, prompt)
}

// NutritionEstimate is the vision model's read of a food photo. Confidence is
// in [0, 1].
type NutritionEstimate struct {
	Calories   float64 `json:"calories"`
	Protein    float64 `json:"protein"`
	Carbs      float64 `json:"carbs"`
	Fat        float64 `json:"fat"`
	Confidence float64 `json:"confidence"`
}

const nutritionPrompt = `Analyze this food image and provide nutritional information in the following JSON format:
{
  "calories": number (estimated calories),
  "protein": number (grams of protein),
  "carbs": number (grams of carbohydrates),
  "fat": number (grams of fat),
  "confidence": number (between 0 and 1, indicating confidence in the estimation)
}
Be conservative in your estimates and provide realistic values based on typical serving sizes.
Consider the portion size visible in the image.
If multiple food items are present, provide combined nutritional values.`

// EstimateNutritionFromImage sends the photo to the vision model. Model output
// for images is flaky enough to warrant a fixed retry count; the last error is
// returned when every attempt fails. Missing numeric fields default to zero,
// missing confidence to 0.5.
func (c *Client) EstimateNutritionFromImage(ctx context.Context, image []byte, mimeType string) (*NutritionEstimate, error) {
	if len(image) == 0 {
		return nil, fmt.Errorf("empty image")
	}
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	parts := []part{
		{Text: nutritionPrompt},
		{InlineData: &inlineData{
			MimeType: mimeType,
			Data:     base64.StdEncoding.EncodeToString(image),
		}},
	}

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Second):
			}
		}
		text, err := c.generate(ctx, c.visionModel, parts)
		if err != nil {
			lastErr = err
			continue
		}
		raw := map[string]any{}
		if err := decodeJSONBlock(text, &raw); err != nil {
			lastErr = err
			continue
		}
		estimate := &NutritionEstimate{
			Calories:   numberField(raw, "calories", 0),
			Protein:    numberField(raw, "protein", 0),
			Carbs:      numberField(raw, "carbs", 0),
			Fat:        numberField(raw, "fat", 0),
			Confidence: numberField(raw, "confidence", 0.5),
		}
		return estimate, nil
	}
	return nil, fmt.Errorf("estimate nutrition: %w", lastErr)
}

func numberField(m map[string]any, key string, fallback float64) float64 {
	value, ok := m[key].(float64)
	if !ok {
		return fallback
	}
	return value
}
