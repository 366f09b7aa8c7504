package summary

import (
	"errors"
	"time"

	"github.com/AliaksandrTarashkevich/ppianieal/enums"
	"github.com/AliaksandrTarashkevich/ppianieal/models"
	"github.com/AliaksandrTarashkevich/ppianieal/services"
	"github.com/AliaksandrTarashkevich/ppianieal/services/store"
	"github.com/AliaksandrTarashkevich/ppianieal/structs"
)

// Store is the part of the persistence gateway the report reads from.
type Store interface {
	GetUser(userID int64) (*models.User, error)
	GetUserTargets(userID int64) (structs.Targets, error)
	GetNutritionForDate(userID int64, date time.Time) (*structs.NutritionTotals, error)
	GetSteps(userID int64, date time.Time) (int, bool, error)
	GetBurnedCalories(userID int64, date time.Time) (int, error)
}

type SummaryService struct {
	store            Store
	stepsCoefficient float64
}

func New(store Store, stepsCoefficient float64) *SummaryService {
	if stepsCoefficient <= 0 {
		stepsCoefficient = enums.DefaultStepsCoeff
	}
	return &SummaryService{store: store, stepsCoefficient: stepsCoefficient}
}

// Build gathers the day's meals, activity, profile and targets into a summary.
func (s *SummaryService) Build(userID int64, date time.Time) (*structs.Summary, error) {
	result := &structs.Summary{UserID: userID, Date: date, Weight: enums.DefaultProfileWeight}

	user, err := s.store.GetUser(userID)
	switch {
	case err == nil:
		result.Weight = user.Weight
	case !errors.Is(err, store.ErrUserNotFound):
		return nil, err
	}

	if result.Targets, err = s.store.GetUserTargets(userID); err != nil {
		return nil, err
	}

	nutrition, err := s.store.GetNutritionForDate(userID, date)
	if err != nil && !errors.Is(err, store.ErrNoMeals) {
		return nil, err
	}
	result.Nutrition = nutrition

	steps, _, err := s.store.GetSteps(userID, date)
	if err != nil {
		return nil, err
	}
	extra, err := s.store.GetBurnedCalories(userID, date)
	if err != nil {
		return nil, err
	}

	consumed := 0
	if nutrition != nil {
		consumed = nutrition.Calories
	}
	result.Calorie = Calculate(result.Targets.Calories, consumed, steps, result.Weight, extra, s.stepsCoefficient)
	return result, nil
}

// StepsBurned estimates the kcal spent walking.
func StepsBurned(steps int, weight, coefficient float64) int {
	return services.Round(float64(steps) * weight * coefficient)
}

// Calculate derives the burn and balance figures of a day.
func Calculate(targetCalories, consumed, steps int, weight float64, extra int, coefficient float64) structs.Calorie {
	calorie := structs.Calorie{
		Steps:       steps,
		StepsBurned: StepsBurned(steps, weight, coefficient),
		ExtraBurned: extra,
		Consumed:    consumed,
	}
	calorie.TotalBurned = calorie.StepsBurned + calorie.ExtraBurned
	calorie.Allowance = targetCalories + calorie.TotalBurned
	calorie.Balance = consumed - calorie.TotalBurned
	calorie.WithinBudget = calorie.Balance <= targetCalories
	if !calorie.WithinBudget {
		calorie.ExceededBy = calorie.Balance - targetCalories
	}
	return calorie
}
