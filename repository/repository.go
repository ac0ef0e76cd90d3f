package repository

import (
	"context"
	"errors"

	"stadium-onboarding-api/models"
)

// ErrNotFound is returned when a looked-up row does not exist. Implementations
// must translate their driver's own not-found signal into this error so the
// service layer can classify failures without knowing the backend.
var ErrNotFound = errors.New("record not found")

// Store is the persistence port for the onboarding workflow. Every guard in
// the service layer receives a Store instead of touching a shared client, so
// tests substitute MemoryStore for the MySQL-backed GormStore.
type Store interface {
	CreateRequest(ctx context.Context, req *models.OnboardingRequest) error
	GetRequest(ctx context.Context, id string) (*models.OnboardingRequest, error)
	GetRequestByTempCode(ctx context.Context, tempCode string) (*models.OnboardingRequest, error)
	ListRequests(ctx context.Context) ([]models.OnboardingListItem, error)
	// UpdateRequest merges the given column values into the row. Plain
	// last-write-wins: there is no version check on step_status.
	UpdateRequest(ctx context.Context, id string, fields map[string]interface{}) error
	// DeleteRequestCascade removes the request and all of its child rows
	// (proposals, documents, times, courts, stadium info), children first.
	DeleteRequestCascade(ctx context.Context, id string) error

	UpsertStadium(ctx context.Context, info *models.StadiumInfo) error
	// GetStadium returns (nil, nil) when no stadium row exists yet.
	GetStadium(ctx context.Context, requestID string) (*models.StadiumInfo, error)
	ReplaceCourts(ctx context.Context, requestID string, courts []models.CourtInfo) error
	ListCourts(ctx context.Context, requestID string) ([]models.CourtInfo, error)

	CreateProposal(ctx context.Context, proposal *models.SettlementProposal) error
	// ListProposals returns proposals newest first.
	ListProposals(ctx context.Context, requestID string) ([]models.SettlementProposal, error)
	// DeleteProposal removes a proposal only if it belongs to requestID.
	DeleteProposal(ctx context.Context, requestID, proposalID string) error

	// ReplaceDocuments drops the required doc_type rows and inserts docs.
	ReplaceDocuments(ctx context.Context, requestID string, docs []models.OnboardingDocument) error
	ListDocuments(ctx context.Context, requestID string) ([]models.OnboardingDocument, error)

	ReplaceAvailableTimes(ctx context.Context, requestID string, times []models.AvailableTime) error
	// ListAvailableTimes returns slots ordered by day_of_week then start_time.
	ListAvailableTimes(ctx context.Context, requestID string) ([]models.AvailableTime, error)
}
