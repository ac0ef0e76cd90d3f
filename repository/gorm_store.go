package repository

import (
	"context"
	"errors"

	"stadium-onboarding-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore is the MySQL-backed Store.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *GormStore) CreateRequest(ctx context.Context, req *models.OnboardingRequest) error {
	return s.db.WithContext(ctx).Create(req).Error
}

func (s *GormStore) GetRequest(ctx context.Context, id string) (*models.OnboardingRequest, error) {
	var req models.OnboardingRequest
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&req).Error; err != nil {
		return nil, translate(err)
	}
	return &req, nil
}

func (s *GormStore) GetRequestByTempCode(ctx context.Context, tempCode string) (*models.OnboardingRequest, error) {
	var req models.OnboardingRequest
	if err := s.db.WithContext(ctx).Where("temp_code = ?", tempCode).First(&req).Error; err != nil {
		return nil, translate(err)
	}
	return &req, nil
}

func (s *GormStore) ListRequests(ctx context.Context) ([]models.OnboardingListItem, error) {
	var items []models.OnboardingListItem
	err := s.db.WithContext(ctx).
		Table("onboarding_requests AS r").
		Select("r.id, r.owner_name, r.owner_email, r.region, r.step_status, r.updated_at, s.stadium_name").
		Joins("LEFT JOIN onboarding_stadium_info AS s ON s.onboarding_request_id = r.id").
		Order("r.updated_at DESC").
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *GormStore) UpdateRequest(ctx context.Context, id string, fields map[string]interface{}) error {
	res := s.db.WithContext(ctx).
		Model(&models.OnboardingRequest{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) DeleteRequestCascade(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Children first, then the request row.
		if err := tx.Where("onboarding_request_id = ?", id).Delete(&models.SettlementProposal{}).Error; err != nil {
			return err
		}
		if err := tx.Where("onboarding_request_id = ?", id).Delete(&models.OnboardingDocument{}).Error; err != nil {
			return err
		}
		if err := tx.Where("onboarding_request_id = ?", id).Delete(&models.AvailableTime{}).Error; err != nil {
			return err
		}
		if err := tx.Where("onboarding_request_id = ?", id).Delete(&models.CourtInfo{}).Error; err != nil {
			return err
		}
		if err := tx.Where("onboarding_request_id = ?", id).Delete(&models.StadiumInfo{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.OnboardingRequest{}).Error
	})
}

func (s *GormStore) UpsertStadium(ctx context.Context, info *models.StadiumInfo) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "onboarding_request_id"}},
			UpdateAll: true,
		}).
		Create(info).Error
}

func (s *GormStore) GetStadium(ctx context.Context, requestID string) (*models.StadiumInfo, error) {
	var info models.StadiumInfo
	err := s.db.WithContext(ctx).Where("onboarding_request_id = ?", requestID).First(&info).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &info, nil
}

func (s *GormStore) ReplaceCourts(ctx context.Context, requestID string, courts []models.CourtInfo) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("onboarding_request_id = ?", requestID).Delete(&models.CourtInfo{}).Error; err != nil {
			return err
		}
		if len(courts) == 0 {
			return nil
		}
		return tx.Create(&courts).Error
	})
}

func (s *GormStore) ListCourts(ctx context.Context, requestID string) ([]models.CourtInfo, error) {
	var courts []models.CourtInfo
	err := s.db.WithContext(ctx).
		Where("onboarding_request_id = ?", requestID).
		Order("sort_order ASC, created_at ASC").
		Find(&courts).Error
	if err != nil {
		return nil, err
	}
	return courts, nil
}

func (s *GormStore) CreateProposal(ctx context.Context, proposal *models.SettlementProposal) error {
	return s.db.WithContext(ctx).Create(proposal).Error
}

func (s *GormStore) ListProposals(ctx context.Context, requestID string) ([]models.SettlementProposal, error) {
	var proposals []models.SettlementProposal
	err := s.db.WithContext(ctx).
		Where("onboarding_request_id = ?", requestID).
		Order("created_at DESC").
		Find(&proposals).Error
	if err != nil {
		return nil, err
	}
	return proposals, nil
}

func (s *GormStore) DeleteProposal(ctx context.Context, requestID, proposalID string) error {
	return s.db.WithContext(ctx).
		Where("id = ? AND onboarding_request_id = ?", proposalID, requestID).
		Delete(&models.SettlementProposal{}).Error
}

func (s *GormStore) ReplaceDocuments(ctx context.Context, requestID string, docs []models.OnboardingDocument) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("onboarding_request_id = ? AND doc_type IN ?", requestID, models.RequiredDocTypes).
			Delete(&models.OnboardingDocument{}).Error
		if err != nil {
			return err
		}
		if len(docs) == 0 {
			return nil
		}
		return tx.Create(&docs).Error
	})
}

func (s *GormStore) ListDocuments(ctx context.Context, requestID string) ([]models.OnboardingDocument, error) {
	var docs []models.OnboardingDocument
	err := s.db.WithContext(ctx).
		Where("onboarding_request_id = ?", requestID).
		Find(&docs).Error
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (s *GormStore) ReplaceAvailableTimes(ctx context.Context, requestID string, times []models.AvailableTime) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("onboarding_request_id = ?", requestID).Delete(&models.AvailableTime{}).Error; err != nil {
			return err
		}
		if len(times) == 0 {
			return nil
		}
		return tx.Create(&times).Error
	})
}

func (s *GormStore) ListAvailableTimes(ctx context.Context, requestID string) ([]models.AvailableTime, error) {
	var times []models.AvailableTime
	err := s.db.WithContext(ctx).
		Where("onboarding_request_id = ?", requestID).
		Order("day_of_week ASC, start_time ASC").
		Find(&times).Error
	if err != nil {
		return nil, err
	}
	return times, nil
}
