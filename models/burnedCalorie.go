package models

import "time"

// BurnedCalorie is the manually reported activity kcal for a day.
type BurnedCalorie struct {
	ID        int64      `gorm:"column:id;primary_key" json:"id"`
	UserID    int64      `gorm:"column:user_id;unique_index:idx_burned_calories_user_date" json:"user_id"`
	Date      string     `gorm:"column:date;size:10;unique_index:idx_burned_calories_user_date" json:"date"`
	Calories  int        `gorm:"column:calories" json:"calories"`
	CreatedAt *time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt *time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName sets the insert table name for this struct type
func (b *BurnedCalorie) TableName() string {
	return "burned_calories"
}
