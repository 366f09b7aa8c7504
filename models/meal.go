package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
)

// Meal is one analyzed food submission. Meals are never updated.
type Meal struct {
	ID          string     `gorm:"column:id;primary_key;size:36" json:"id"`
	UserID      int64      `gorm:"column:user_id;index:idx_meals_user_date" json:"user_id"`
	Date        string     `gorm:"column:date;size:10;index:idx_meals_user_date" json:"date"`
	Hour        int        `gorm:"column:hour" json:"hour"`
	Description string     `gorm:"column:description" json:"description"`
	Calories    int        `gorm:"column:calories" json:"calories"`
	Protein     float64    `gorm:"column:protein" json:"protein"`
	Fat         float64    `gorm:"column:fat" json:"fat"`
	Carbs       float64    `gorm:"column:carbs" json:"carbs"`
	PhotoKey    string     `gorm:"column:photo_key" json:"photo_key"`
	Items       []MealItem `gorm:"-" json:"items"`
	CreatedAt   *time.Time `gorm:"column:created_at" json:"created_at"`
}

func (m *Meal) BeforeCreate(scope *gorm.Scope) error {
	if m.ID != "" {
		return nil
	}
	return scope.SetColumn("ID", uuid.New().String())
}

// TableName sets the insert table name for this struct type
func (m *Meal) TableName() string {
	return "meals"
}
