package models

import "time"

// StadiumInfo represents the onboarding_stadium_info table (1:1 with a
// request, upserted on onboarding_request_id). Contact numbers are stored
// normalized to digits only.
type StadiumInfo struct {
	StadiumInfoID       int        `gorm:"primaryKey;autoIncrement;column:stadium_info_id" json:"stadium_info_id"`
	OnboardingRequestID string     `gorm:"column:onboarding_request_id;uniqueIndex" json:"onboarding_request_id"`
	StadiumName         string     `gorm:"column:stadium_name" json:"stadium_name"`
	Region              string     `gorm:"column:region" json:"region"`
	Address             string     `gorm:"column:address" json:"address"`
	AddressDetail       string     `gorm:"column:address_detail" json:"address_detail"`
	StadiumContact      *string    `gorm:"column:stadium_contact" json:"stadium_contact,omitempty"`
	LaundryContact      *string    `gorm:"column:laundry_contact" json:"laundry_contact,omitempty"`
	ParkingInfo         string     `gorm:"column:parking_info" json:"parking_info"`
	ShowerInfo          string     `gorm:"column:shower_info" json:"shower_info"`
	EtcInfo             string     `gorm:"column:etc_info" json:"etc_info"`
	CreatedAt           *time.Time `gorm:"column:created_at" json:"created_at,omitempty"`
	UpdatedAt           *time.Time `gorm:"column:updated_at" json:"updated_at,omitempty"`
}

func (StadiumInfo) TableName() string {
	return "onboarding_stadium_info"
}

// CourtInfo represents the onboarding_court_info table (1:many, replaced
// wholesale on every stadium save, ordered by sort_order).
type CourtInfo struct {
	CourtInfoID         int        `gorm:"primaryKey;autoIncrement;column:court_info_id" json:"court_info_id"`
	OnboardingRequestID string     `gorm:"column:onboarding_request_id" json:"onboarding_request_id"`
	CourtName           string     `gorm:"column:court_name" json:"court_name"`
	Capacity            *int       `gorm:"column:capacity" json:"capacity,omitempty"`
	PlayTimeMinutes     *int       `gorm:"column:play_time_minutes" json:"play_time_minutes,omitempty"`
	SizeX               *float64   `gorm:"column:size_x" json:"size_x,omitempty"`
	SizeY               *float64   `gorm:"column:size_y" json:"size_y,omitempty"`
	FloorType           string     `gorm:"column:floor_type" json:"floor_type"`
	IndoorOutdoor       string     `gorm:"column:indoor_outdoor" json:"indoor_outdoor"`
	SortOrder           int        `gorm:"column:sort_order" json:"sort_order"`
	CreatedAt           *time.Time `gorm:"column:created_at" json:"created_at,omitempty"`
}

func (CourtInfo) TableName() string {
	return "onboarding_court_info"
}
