package models

import "time"

// Document types accepted for the STEP3 submission. All three are required.
const (
	DocTypeBusinessRegistration = "business_registration"
	DocTypeBankbook             = "bankbook"
	DocTypeLeaseContract        = "lease_contract"
)

// RequiredDocTypes lists the doc_type values replaced on every submission.
var RequiredDocTypes = []string{
	DocTypeBusinessRegistration,
	DocTypeBankbook,
	DocTypeLeaseContract,
}

// IsValidDocType reports whether docType is one of the accepted upload kinds.
func IsValidDocType(docType string) bool {
	for _, t := range RequiredDocTypes {
		if docType == t {
			return true
		}
	}
	return false
}

// OnboardingDocument represents the onboarding_documents table.
type OnboardingDocument struct {
	DocumentID          int        `gorm:"primaryKey;autoIncrement;column:document_id" json:"document_id"`
	OnboardingRequestID string     `gorm:"column:onboarding_request_id" json:"onboarding_request_id"`
	DocType             string     `gorm:"column:doc_type" json:"doc_type"`
	FileURL             string     `gorm:"column:file_url" json:"file_url"`
	UploadedAt          *time.Time `gorm:"column:uploaded_at" json:"uploaded_at,omitempty"`
}

func (OnboardingDocument) TableName() string {
	return "onboarding_documents"
}
