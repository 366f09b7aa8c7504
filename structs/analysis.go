package structs

import (
	"encoding/json"
	"math"
)

// FoodNutrients is one row of the inference service's answer.
type FoodNutrients struct {
	Item     string  `json:"item,omitempty"`
	Calories int     `json:"calories"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
	Carbs    float64 `json:"carbs"`
}

// UnmarshalJSON accepts fractional calories and rounds them.
func (n *FoodNutrients) UnmarshalJSON(data []byte) error {
	type alias FoodNutrients
	aux := struct {
		Calories float64 `json:"calories"`
		*alias
	}{alias: (*alias)(n)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	n.Calories = int(math.Floor(aux.Calories + 0.5))
	return nil
}

type FoodAnalysis struct {
	Total     FoodNutrients   `json:"total"`
	Breakdown []FoodNutrients `json:"breakdown"`
}
