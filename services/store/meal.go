package store

import (
	"fmt"
	"time"

	"github.com/AliaksandrTarashkevich/ppianieal/models"
	"github.com/AliaksandrTarashkevich/ppianieal/structs"

	"github.com/sirupsen/logrus"
	gormbulk "github.com/t-tiger/gorm-bulk-insert/v2"
)

// SaveMeal appends the meal and its itemized breakdown in one transaction.
func (s *StoreService) SaveMeal(meal *models.Meal) error {
	tx := s.db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("begin meal tx: %w", tx.Error)
	}

	if err := tx.Create(meal).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("create meal for %d: %w", meal.UserID, err)
	}

	if len(meal.Items) > 0 {
		insertRecords := make([]interface{}, 0, len(meal.Items))
		for i := range meal.Items {
			meal.Items[i].MealID = meal.ID
			insertRecords = append(insertRecords, &meal.Items[i])
		}
		if err := gormbulk.BulkInsert(tx, insertRecords, 3000); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert meal items for %s: %w", meal.ID, err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("commit meal %s: %w", meal.ID, err)
	}
	s.logger.WithFields(logrus.Fields{"user_id": meal.UserID, "meal_id": meal.ID, "calories": meal.Calories, "items": len(meal.Items)}).Info("meal saved")
	return nil
}

type nutritionRow struct {
	Meals    int
	Calories int
	Protein  float64
	Fat      float64
	Carbs    float64
}

// GetNutritionForDate sums every meal of the day. It returns ErrNoMeals when nothing was logged.
func (s *StoreService) GetNutritionForDate(userID int64, date time.Time) (*structs.NutritionTotals, error) {
	var row nutritionRow
	if err := s.db.Model(&models.Meal{}).
		Select("count(*) as meals, coalesce(sum(calories), 0) as calories, coalesce(sum(protein), 0) as protein, coalesce(sum(fat), 0) as fat, coalesce(sum(carbs), 0) as carbs").
		Where("user_id = ? and date = ?", userID, day(date)).
		Scan(&row).Error; err != nil {
		return nil, fmt.Errorf("sum meals for %d on %s: %w", userID, day(date), err)
	}
	if row.Meals == 0 {
		return nil, ErrNoMeals
	}
	return &structs.NutritionTotals{
		Calories: row.Calories,
		Protein:  row.Protein,
		Fat:      row.Fat,
		Carbs:    row.Carbs,
		Meals:    row.Meals,
	}, nil
}

// HasMealBetween reports whether a meal was logged on the date within the inclusive hour range.
func (s *StoreService) HasMealBetween(userID int64, date time.Time, fromHour, toHour int) (bool, error) {
	count := 0
	if err := s.db.Model(&models.Meal{}).
		Where("user_id = ? and date = ? and hour between ? and ?", userID, day(date), fromHour, toHour).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("count meals for %d on %s: %w", userID, day(date), err)
	}
	return count > 0, nil
}

// GetMeals lists the day's meals with their items, oldest first.
func (s *StoreService) GetMeals(userID int64, date time.Time) ([]models.Meal, error) {
	var meals []models.Meal
	if err := s.db.Where("user_id = ? and date = ?", userID, day(date)).Order("hour, created_at").Find(&meals).Error; err != nil {
		return nil, fmt.Errorf("find meals for %d on %s: %w", userID, day(date), err)
	}
	for i := range meals {
		if err := s.db.Where("meal_id = ?", meals[i].ID).Order("id").Find(&meals[i].Items).Error; err != nil {
			return nil, fmt.Errorf("find items for meal %s: %w", meals[i].ID, err)
		}
	}
	return meals, nil
}
