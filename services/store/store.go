package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/AliaksandrTarashkevich/ppianieal/enums"
	"github.com/AliaksandrTarashkevich/ppianieal/models"
	"github.com/AliaksandrTarashkevich/ppianieal/services/calculator"
	"github.com/AliaksandrTarashkevich/ppianieal/structs"

	"github.com/jinzhu/gorm"
	"github.com/sirupsen/logrus"
)

var (
	// ErrUserNotFound is returned when no profile exists for the user id.
	ErrUserNotFound = errors.New("user not found")
	// ErrNoMeals marks a day without any logged meal, as opposed to a day totalling zero kcal.
	ErrNoMeals = errors.New("no meals logged")
)

// DefaultTargets are served to users who never finished onboarding.
var DefaultTargets = structs.Targets{Calories: 2000, Protein: 100, Fat: 70, Carbs: 200}

type StoreService struct {
	db          *gorm.DB
	logger      *logrus.Entry
	minCalories int
}

func New(db *gorm.DB, logger *logrus.Entry, minCalories int) *StoreService {
	return &StoreService{db: db, logger: logger, minCalories: minCalories}
}

func day(date time.Time) string {
	return date.Format(enums.DateLayout)
}

// SaveUser creates the profile or overwrites the existing one for the same user id.
func (s *StoreService) SaveUser(user models.User) error {
	deficit, err := calculator.Deficit(user.DeficitMode)
	if err != nil {
		return err
	}
	user.Deficit = deficit

	var existing models.User
	err = s.db.Where("user_id = ?", user.UserID).First(&existing).Error
	if gorm.IsRecordNotFoundError(err) {
		user.ID = 0
		if err := s.db.Create(&user).Error; err != nil {
			return fmt.Errorf("create user %d: %w", user.UserID, err)
		}
		s.logger.WithFields(logrus.Fields{"user_id": user.UserID}).Info("user created")
		return nil
	}
	if err != nil {
		return fmt.Errorf("find user %d: %w", user.UserID, err)
	}

	if err := s.db.Model(&existing).Updates(map[string]interface{}{
		"weight":       user.Weight,
		"height":       user.Height,
		"bodyfat":      user.BodyFat,
		"gender":       user.Gender,
		"deficit_mode": user.DeficitMode,
		"deficit":      user.Deficit,
	}).Error; err != nil {
		return fmt.Errorf("update user %d: %w", user.UserID, err)
	}
	s.logger.WithFields(logrus.Fields{"user_id": user.UserID}).Info("user updated")
	return nil
}

func (s *StoreService) UserExists(userID int64) (bool, error) {
	count := 0
	if err := s.db.Model(&models.User{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return false, fmt.Errorf("count user %d: %w", userID, err)
	}
	return count > 0, nil
}

func (s *StoreService) GetUser(userID int64) (*models.User, error) {
	var user models.User
	err := s.db.Where("user_id = ?", userID).First(&user).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user %d: %w", userID, err)
	}
	return &user, nil
}

// GetUserTargets derives the targets from the stored profile, DefaultTargets without one.
func (s *StoreService) GetUserTargets(userID int64) (structs.Targets, error) {
	user, err := s.GetUser(userID)
	if errors.Is(err, ErrUserNotFound) {
		return DefaultTargets, nil
	}
	if err != nil {
		return structs.Targets{}, err
	}

	targets := calculator.Targets(user.Weight, user.BodyFat, user.Deficit)
	if s.minCalories > 0 && targets.Calories < s.minCalories {
		s.logger.WithFields(logrus.Fields{"user_id": userID, "calories": targets.Calories}).Warn("calorie target raised to minimum")
		targets.Calories = s.minCalories
	}
	return targets, nil
}

// SetDeficitMode switches the user's tier and returns the previous deficit.
func (s *StoreService) SetDeficitMode(userID int64, mode string) (int, error) {
	deficit, err := calculator.Deficit(mode)
	if err != nil {
		return 0, err
	}
	user, err := s.GetUser(userID)
	if err != nil {
		return 0, err
	}
	previous := user.Deficit
	if err := s.db.Model(user).Updates(map[string]interface{}{"deficit_mode": mode, "deficit": deficit}).Error; err != nil {
		return 0, fmt.Errorf("update deficit for %d: %w", userID, err)
	}
	return previous, nil
}

func (s *StoreService) ListUserIDs() ([]int64, error) {
	var ids []int64
	if err := s.db.Model(&models.User{}).Order("user_id").Pluck("user_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return ids, nil
}
