package calculator

import (
	"fmt"

	"github.com/AliaksandrTarashkevich/ppianieal/enums"
	"github.com/AliaksandrTarashkevich/ppianieal/services"
	"github.com/AliaksandrTarashkevich/ppianieal/structs"
)

const (
	kcalPerLeanKg    = 30
	proteinPerLeanKg = 2
	fatPerLeanKg     = 1
	kcalPerGramProt  = 4
	kcalPerGramFat   = 9
	kcalPerGramCarbs = 4
)

// LeanMass is body weight minus estimated fat mass.
func LeanMass(weight, bodyFat float64) float64 {
	return weight * (1 - bodyFat/100)
}

// Targets computes daily calorie and macro targets. Calories are not floored.
func Targets(weight, bodyFat float64, deficit int) structs.Targets {
	lean := LeanMass(weight, bodyFat)

	calories := services.Round(lean*kcalPerLeanKg) - deficit
	protein := services.Round(lean * proteinPerLeanKg)
	fat := services.Round(lean * fatPerLeanKg)

	carbs := services.Round(float64(calories-protein*kcalPerGramProt-fat*kcalPerGramFat) / kcalPerGramCarbs)
	if carbs < 0 {
		carbs = 0
	}

	return structs.Targets{
		Calories: calories,
		Protein:  protein,
		Fat:      fat,
		Carbs:    carbs,
	}
}

// Deficit returns the kcal offset for a deficit tier name.
func Deficit(mode string) (int, error) {
	deficit, ok := enums.Deficits[mode]
	if !ok {
		return 0, fmt.Errorf("unknown deficit mode %q", mode)
	}
	return deficit, nil
}

// TargetsForMode is Targets with the deficit looked up by tier name.
func TargetsForMode(weight, bodyFat float64, mode string) (structs.Targets, error) {
	deficit, err := Deficit(mode)
	if err != nil {
		return structs.Targets{}, err
	}
	return Targets(weight, bodyFat, deficit), nil
}
