package structs

import "time"

// Summary is everything the daily report shows for one user and date.
type Summary struct {
	UserID    int64            `json:"user_id"`
	Date      time.Time        `json:"date"`
	Weight    float64          `json:"weight"`
	Targets   Targets          `json:"targets"`
	Nutrition *NutritionTotals `json:"nutrition,omitempty"`
	Calorie   Calorie          `json:"calorie"`
}
