package models

import "time"

// User is the profile collected during onboarding, keyed by the chat user id.
type User struct {
	ID          int64      `gorm:"column:id;primary_key" json:"id"`
	UserID      int64      `gorm:"column:user_id;unique_index" json:"user_id"`
	Weight      float64    `gorm:"column:weight" json:"weight"`
	Height      int        `gorm:"column:height" json:"height"`
	BodyFat     float64    `gorm:"column:bodyfat" json:"bodyfat"`
	Gender      string     `gorm:"column:gender;size:16" json:"gender"`
	DeficitMode string     `gorm:"column:deficit_mode;size:16" json:"deficit_mode"`
	Deficit     int        `gorm:"column:deficit" json:"deficit"`
	CreatedAt   *time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   *time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName sets the insert table name for this struct type
func (u *User) TableName() string {
	return "users"
}
