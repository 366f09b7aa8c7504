package models

import "time"

// DailyRecord holds one day's weigh-in and step count; at most one row per user and date.
type DailyRecord struct {
	ID        int64      `gorm:"column:id;primary_key" json:"id"`
	UserID    int64      `gorm:"column:user_id;unique_index:idx_daily_records_user_date" json:"user_id"`
	Date      string     `gorm:"column:date;size:10;unique_index:idx_daily_records_user_date" json:"date"`
	Weight    *float64   `gorm:"column:weight" json:"weight"`
	Steps     *int       `gorm:"column:steps" json:"steps"`
	CreatedAt *time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt *time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName sets the insert table name for this struct type
func (d *DailyRecord) TableName() string {
	return "daily_records"
}
