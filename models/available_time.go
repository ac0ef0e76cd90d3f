package models

import "time"

// AvailableTime represents the onboarding_available_times table: one weekly
// setup slot per row, keyed by day_of_week + start_time. Rows are replaced
// wholesale on every STEP4 save.
type AvailableTime struct {
	AvailableTimeID     int        `gorm:"primaryKey;autoIncrement;column:available_time_id" json:"available_time_id"`
	OnboardingRequestID string     `gorm:"column:onboarding_request_id" json:"onboarding_request_id"`
	DayOfWeek           int        `gorm:"column:day_of_week" json:"day_of_week"`
	StartTime           string     `gorm:"column:start_time" json:"start_time"`
	EndTime             string     `gorm:"column:end_time" json:"end_time"`
	Note                *string    `gorm:"column:note" json:"note,omitempty"`
	CreatedAt           *time.Time `gorm:"column:created_at" json:"created_at,omitempty"`
}

func (AvailableTime) TableName() string {
	return "onboarding_available_times"
}
