package store

import (
	"fmt"
	"time"

	"github.com/AliaksandrTarashkevich/ppianieal/models"

	"github.com/jinzhu/gorm"
	"github.com/sirupsen/logrus"
)

// SaveBurnedCalories overwrites the manually reported activity kcal for the date.
func (s *StoreService) SaveBurnedCalories(userID int64, calories int, date time.Time) error {
	var record models.BurnedCalorie
	err := s.db.Where("user_id = ? and date = ?", userID, day(date)).First(&record).Error
	if gorm.IsRecordNotFoundError(err) {
		record = models.BurnedCalorie{UserID: userID, Date: day(date), Calories: calories}
		if err := s.db.Create(&record).Error; err != nil {
			return fmt.Errorf("create burned calories for %d: %w", userID, err)
		}
	} else if err != nil {
		return fmt.Errorf("find burned calories for %d: %w", userID, err)
	} else if err := s.db.Model(&record).Update("calories", calories).Error; err != nil {
		return fmt.Errorf("update burned calories for %d: %w", userID, err)
	}
	s.logger.WithFields(logrus.Fields{"user_id": userID, "date": day(date), "calories": calories}).Info("burned calories saved")
	return nil
}

// GetBurnedCalories returns 0 when nothing was reported for the date.
func (s *StoreService) GetBurnedCalories(userID int64, date time.Time) (int, error) {
	var record models.BurnedCalorie
	err := s.db.Where("user_id = ? and date = ?", userID, day(date)).First(&record).Error
	if gorm.IsRecordNotFoundError(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("find burned calories for %d: %w", userID, err)
	}
	return record.Calories, nil
}
