package services

import (
	"math"
	"strings"
)

// MacroTargets is a daily macronutrient recommendation in grams.
type MacroTargets struct {
	Protein int `json:"protein"`
	Carbs   int `json:"carbs"`
	Fat     int `json:"fat"`
}

type goalRatios struct {
	calorieAdjust int
	protein       float64
	carbs         float64
	fat           float64
}

var nutritionGoals = map[string]goalRatios{
	"Weight Loss": {calorieAdjust: -500, protein: 0.4, carbs: 0.3, fat: 0.3},
	"Muscle Gain": {calorieAdjust: 300, protein: 0.35, carbs: 0.45, fat: 0.2},
	"Maintain":    {calorieAdjust: 0, protein: 0.3, carbs: 0.4, fat: 0.3},
}

var activityMultipliers = map[string]float64{
	"sedentary":    1.2,
	"light":        1.375,
	"moderate":     1.55,
	"very active":  1.725,
	"extra active": 1.9,
}

// CalculateBMR implements the Mifflin-St Jeor equation. Weight in kg, height
// in cm.
func CalculateBMR(weightKg, heightCm float64, age int, gender string) float64 {
	base := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if strings.EqualFold(gender, "male") {
		return base + 5
	}
	return base - 161
}

// CalculateTDEE scales BMR by the activity multiplier. Unknown levels fall
// back to moderate.
func CalculateTDEE(bmr float64, activityLevel string) float64 {
	multiplier, ok := activityMultipliers[strings.ToLower(strings.TrimSpace(activityLevel))]
	if !ok {
		multiplier = activityMultipliers["moderate"]
	}
	return bmr * multiplier
}

// RecommendCalories applies the goal's calorie adjustment to TDEE.
func RecommendCalories(tdee float64, goal string) int {
	ratios, ok := nutritionGoals[goal]
	if !ok {
		ratios = nutritionGoals["Maintain"]
	}
	return int(math.Round(tdee)) + ratios.calorieAdjust
}

// RecommendMacros splits a calorie target into grams per macro using the
// goal's ratios. Protein and carbs count 4 kcal/g, fat 9 kcal/g.
func RecommendMacros(calories int, goal string) MacroTargets {
	ratios, ok := nutritionGoals[goal]
	if !ok {
		ratios = nutritionGoals["Maintain"]
	}
	total := float64(calories)
	return MacroTargets{
		Protein: int(math.Round(total * ratios.protein / 4)),
		Carbs:   int(math.Round(total * ratios.carbs / 4)),
		Fat:     int(math.Round(total * ratios.fat / 9)),
	}
}
