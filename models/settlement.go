package models

import (
	"encoding/json"
	"time"
)

// SettlementProposal represents the onboarding_settlement_proposals table.
// Proposals are append-only; the newest row is the effective one.
type SettlementProposal struct {
	ID                  string     `gorm:"primaryKey;column:id" json:"id"`
	OnboardingRequestID string     `gorm:"column:onboarding_request_id" json:"onboarding_request_id"`
	Title               string     `gorm:"column:title" json:"title"`
	Description         string     `gorm:"column:description" json:"description"`
	ImageURLs           string     `gorm:"column:image_urls" json:"-"`
	CreatedAt           *time.Time `gorm:"column:created_at" json:"created_at,omitempty"`
}

func (SettlementProposal) TableName() string {
	return "onboarding_settlement_proposals"
}

// ImageURLList decodes the JSON-encoded image_urls column.
func (p *SettlementProposal) ImageURLList() []string {
	var urls []string
	if err := json.Unmarshal([]byte(p.ImageURLs), &urls); err != nil {
		return nil
	}
	return urls
}

// SetImageURLs encodes urls into the image_urls column.
func (p *SettlementProposal) SetImageURLs(urls []string) error {
	data, err := json.Marshal(urls)
	if err != nil {
		return err
	}
	p.ImageURLs = string(data)
	return nil
}

// MarshalJSON flattens image_urls back into an array on the wire.
func (p SettlementProposal) MarshalJSON() ([]byte, error) {
	type alias SettlementProposal
	return json.Marshal(struct {
		alias
		ImageURLs []string `json:"image_urls"`
	}{
		alias:     alias(p),
		ImageURLs: p.ImageURLList(),
	})
}
