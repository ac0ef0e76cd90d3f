package models

import "time"

// OnboardingRequest represents the onboarding_requests table: one row per
// facility partnership request. StepStatus is the only workflow driver; every
// other field is reference data captured from the owner or staff.
type OnboardingRequest struct {
	ID              string     `gorm:"primaryKey;column:id" json:"id"`
	OwnerID         *string    `gorm:"column:owner_id" json:"owner_id,omitempty"`
	OwnerEmail      *string    `gorm:"column:owner_email" json:"owner_email,omitempty"`
	StepStatus      Status     `gorm:"column:step_status" json:"step_status"`
	TempCode        *string    `gorm:"column:temp_code" json:"temp_code,omitempty"`
	TempPassword    *string    `gorm:"column:temp_password" json:"-"`
	StadiumName     string     `gorm:"column:stadium_name" json:"stadium_name"`
	OwnerName       string     `gorm:"column:owner_name" json:"owner_name"`
	Contact         *string    `gorm:"column:contact" json:"contact,omitempty"`
	Region          string     `gorm:"column:region" json:"region"`
	Address         string     `gorm:"column:address" json:"address"`
	AddressDetail   string     `gorm:"column:address_detail" json:"address_detail"`
	OperatingStatus string     `gorm:"column:operating_status" json:"operating_status"`
	FacilityCount   string     `gorm:"column:facility_count" json:"facility_count"`
	SizeInfo        string     `gorm:"column:size_info" json:"size_info"`
	ServiceTypes    string     `gorm:"column:service_types" json:"service_types"`
	OtherServices   string     `gorm:"column:other_services" json:"other_services"`
	Memo            string     `gorm:"column:memo" json:"memo"`
	Source          string     `gorm:"column:source" json:"source"`
	FinalAccount    *string    `gorm:"column:final_account" json:"final_account,omitempty"`
	FinalPassword   *string    `gorm:"column:final_password" json:"final_password,omitempty"`
	CreatedAt       *time.Time `gorm:"column:created_at" json:"created_at,omitempty"`
	UpdatedAt       *time.Time `gorm:"column:updated_at" json:"updated_at,omitempty"`
}

func (OnboardingRequest) TableName() string {
	return "onboarding_requests"
}

// OnboardingListItem is the flattened admin list row (request + joined
// stadium name).
type OnboardingListItem struct {
	ID          string     `json:"id"`
	OwnerName   string     `json:"owner_name"`
	OwnerEmail  *string    `json:"owner_email"`
	Region      string     `json:"region"`
	StepStatus  Status     `json:"step_status"`
	UpdatedAt   *time.Time `json:"updated_at"`
	StadiumName *string    `json:"stadium_name"`
}
