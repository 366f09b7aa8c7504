package models

import "time"

type MealItem struct {
	ID        int64      `gorm:"column:id;primary_key;AUTO_INCREMENT" json:"id"`
	MealID    string     `gorm:"column:meal_id;size:36;index" json:"meal_id"`
	Item      string     `gorm:"column:item" json:"item"`
	Calories  int        `gorm:"column:calories" json:"calories"`
	Protein   float64    `gorm:"column:protein" json:"protein"`
	Fat       float64    `gorm:"column:fat" json:"fat"`
	Carbs     float64    `gorm:"column:carbs" json:"carbs"`
	CreatedAt *time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName sets the insert table name for this struct type
func (m *MealItem) TableName() string {
	return "meal_items"
}
