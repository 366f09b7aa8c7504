package store

import (
	"fmt"
	"time"

	"github.com/AliaksandrTarashkevich/ppianieal/models"

	"github.com/jinzhu/gorm"
	"github.com/sirupsen/logrus"
)

// upsertDaily writes one column of the (user, date) row, creating the row when it is missing.
func (s *StoreService) upsertDaily(userID int64, date time.Time, column string, value interface{}) error {
	var record models.DailyRecord
	err := s.db.Where("user_id = ? and date = ?", userID, day(date)).First(&record).Error
	if err == nil {
		if err := s.db.Model(&record).Updates(map[string]interface{}{column: value}).Error; err != nil {
			return fmt.Errorf("update %s for %d on %s: %w", column, userID, day(date), err)
		}
		return nil
	}
	if !gorm.IsRecordNotFoundError(err) {
		return fmt.Errorf("find daily record for %d on %s: %w", userID, day(date), err)
	}

	record = models.DailyRecord{UserID: userID, Date: day(date)}
	switch v := value.(type) {
	case float64:
		record.Weight = &v
	case int:
		record.Steps = &v
	}
	if err := s.db.Create(&record).Error; err != nil {
		return fmt.Errorf("create daily record for %d on %s: %w", userID, day(date), err)
	}
	return nil
}

// SaveWeight stores the day's weight, replacing an earlier value for the same date, and moves
// the profile weight to the most recent weigh-in.
func (s *StoreService) SaveWeight(userID int64, weight float64, date time.Time) error {
	if err := s.upsertDaily(userID, date, "weight", weight); err != nil {
		return err
	}
	s.logger.WithFields(logrus.Fields{"user_id": userID, "date": day(date), "weight": weight}).Info("weight saved")

	var latest models.DailyRecord
	err := s.db.Where("user_id = ? and weight is not null", userID).Order("date desc").First(&latest).Error
	if gorm.IsRecordNotFoundError(err) || (err == nil && latest.Weight == nil) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("find latest weight for %d: %w", userID, err)
	}
	if err := s.db.Model(&models.User{}).Where("user_id = ?", userID).Update("weight", *latest.Weight).Error; err != nil {
		return fmt.Errorf("update profile weight for %d: %w", userID, err)
	}
	return nil
}

// SaveSteps stores the day's step count, replacing an earlier value for the same date.
func (s *StoreService) SaveSteps(userID int64, steps int, date time.Time) error {
	if err := s.upsertDaily(userID, date, "steps", steps); err != nil {
		return err
	}
	s.logger.WithFields(logrus.Fields{"user_id": userID, "date": day(date), "steps": steps}).Info("steps saved")
	return nil
}

// GetSteps returns the step count for the date and whether one was recorded.
func (s *StoreService) GetSteps(userID int64, date time.Time) (int, bool, error) {
	var record models.DailyRecord
	err := s.db.Where("user_id = ? and date = ?", userID, day(date)).First(&record).Error
	if gorm.IsRecordNotFoundError(err) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("find steps for %d on %s: %w", userID, day(date), err)
	}
	if record.Steps == nil {
		return 0, false, nil
	}
	return *record.Steps, true, nil
}

func (s *StoreService) StepsExist(userID int64, date time.Time) (bool, error) {
	_, ok, err := s.GetSteps(userID, date)
	return ok, err
}

// GetLastWeight returns the most recent weight recorded on any date other than excludeDate.
func (s *StoreService) GetLastWeight(userID int64, excludeDate time.Time) (float64, bool, error) {
	var record models.DailyRecord
	err := s.db.Where("user_id = ? and date <> ? and weight is not null", userID, day(excludeDate)).
		Order("date desc").
		First(&record).Error
	if gorm.IsRecordNotFoundError(err) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("find last weight for %d: %w", userID, err)
	}
	return *record.Weight, true, nil
}
