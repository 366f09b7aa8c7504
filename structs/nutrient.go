package structs

// Targets are the daily goals derived from a user profile.
type Targets struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Fat      int `json:"fat"`
	Carbs    int `json:"carbs"`
}

// NutritionTotals is the sum of a day's meal entries.
type NutritionTotals struct {
	Calories int     `json:"calories"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
	Carbs    float64 `json:"carbs"`
	Meals    int     `json:"meals"`
}
