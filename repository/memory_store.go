package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"stadium-onboarding-api/models"
)

// MemoryStore is an in-memory Store used by tests and local development. It
// mirrors GormStore behavior, including cascade deletes and replace-on-write
// child tables.
type MemoryStore struct {
	mu        sync.RWMutex
	requests  map[string]models.OnboardingRequest
	stadiums  map[string]models.StadiumInfo
	courts    map[string][]models.CourtInfo
	proposals map[string][]models.SettlementProposal
	documents map[string][]models.OnboardingDocument
	times     map[string][]models.AvailableTime
	nextID    int
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		requests:  make(map[string]models.OnboardingRequest),
		stadiums:  make(map[string]models.StadiumInfo),
		courts:    make(map[string][]models.CourtInfo),
		proposals: make(map[string][]models.SettlementProposal),
		documents: make(map[string][]models.OnboardingDocument),
		times:     make(map[string][]models.AvailableTime),
	}
}

func (s *MemoryStore) next() int {
	s.nextID++
	return s.nextID
}

func (s *MemoryStore) CreateRequest(_ context.Context, req *models.OnboardingRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests[req.ID] = *req
	return nil
}

func (s *MemoryStore) GetRequest(_ context.Context, id string) (*models.OnboardingRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	req, ok := s.requests[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &req, nil
}

func (s *MemoryStore) GetRequestByTempCode(_ context.Context, tempCode string) (*models.OnboardingRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, req := range s.requests {
		if req.TempCode != nil && *req.TempCode == tempCode {
			found := req
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) ListRequests(_ context.Context) ([]models.OnboardingListItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]models.OnboardingListItem, 0, len(s.requests))
	for id, req := range s.requests {
		item := models.OnboardingListItem{
			ID:         id,
			OwnerName:  req.OwnerName,
			OwnerEmail: req.OwnerEmail,
			Region:     req.Region,
			StepStatus: req.StepStatus,
			UpdatedAt:  req.UpdatedAt,
		}
		if stadium, ok := s.stadiums[id]; ok {
			name := stadium.StadiumName
			item.StadiumName = &name
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		a, b := items[i].UpdatedAt, items[j].UpdatedAt
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})
	return items, nil
}

func (s *MemoryStore) UpdateRequest(_ context.Context, id string, fields map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	req, ok := s.requests[id]
	if !ok {
		return ErrNotFound
	}
	for column, value := range fields {
		switch column {
		case "step_status":
			switch v := value.(type) {
			case models.Status:
				req.StepStatus = v
			case string:
				req.StepStatus = models.Status(v)
			}
		case "memo":
			if v, ok := value.(string); ok {
				req.Memo = v
			}
		case "final_account":
			if v, ok := value.(string); ok {
				req.FinalAccount = &v
			}
		case "final_password":
			if v, ok := value.(string); ok {
				req.FinalPassword = &v
			}
		case "updated_at":
			if v, ok := value.(time.Time); ok {
				req.UpdatedAt = &v
			}
		}
	}
	s.requests[id] = req
	return nil
}

func (s *MemoryStore) DeleteRequestCascade(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.proposals, id)
	delete(s.documents, id)
	delete(s.times, id)
	delete(s.courts, id)
	delete(s.stadiums, id)
	delete(s.requests, id)
	return nil
}

func (s *MemoryStore) UpsertStadium(_ context.Context, info *models.StadiumInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.stadiums[info.OnboardingRequestID]; ok {
		info.StadiumInfoID = existing.StadiumInfoID
	} else {
		info.StadiumInfoID = s.next()
	}
	s.stadiums[info.OnboardingRequestID] = *info
	return nil
}

func (s *MemoryStore) GetStadium(_ context.Context, requestID string) (*models.StadiumInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	info, ok := s.stadiums[requestID]
	if !ok {
		return nil, nil
	}
	return &info, nil
}

func (s *MemoryStore) ReplaceCourts(_ context.Context, requestID string, courts []models.CourtInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := make([]models.CourtInfo, len(courts))
	for i, court := range courts {
		court.CourtInfoID = s.next()
		rows[i] = court
	}
	s.courts[requestID] = rows
	return nil
}

func (s *MemoryStore) ListCourts(_ context.Context, requestID string) ([]models.CourtInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := append([]models.CourtInfo(nil), s.courts[requestID]...)
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].SortOrder < rows[j].SortOrder })
	return rows, nil
}

func (s *MemoryStore) CreateProposal(_ context.Context, proposal *models.SettlementProposal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.proposals[proposal.OnboardingRequestID] = append(s.proposals[proposal.OnboardingRequestID], *proposal)
	return nil
}

func (s *MemoryStore) ListProposals(_ context.Context, requestID string) ([]models.SettlementProposal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := append([]models.SettlementProposal(nil), s.proposals[requestID]...)
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].CreatedAt, rows[j].CreatedAt
		if a == nil || b == nil {
			return false
		}
		return a.After(*b)
	})
	return rows, nil
}

func (s *MemoryStore) DeleteProposal(_ context.Context, requestID, proposalID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := s.proposals[requestID]
	kept := rows[:0]
	for _, row := range rows {
		if row.ID != proposalID {
			kept = append(kept, row)
		}
	}
	s.proposals[requestID] = kept
	return nil
}

func (s *MemoryStore) ReplaceDocuments(_ context.Context, requestID string, docs []models.OnboardingDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := make([]models.OnboardingDocument, 0)
	for _, doc := range s.documents[requestID] {
		if !models.IsValidDocType(doc.DocType) {
			kept = append(kept, doc)
		}
	}
	for _, doc := range docs {
		doc.DocumentID = s.next()
		kept = append(kept, doc)
	}
	s.documents[requestID] = kept
	return nil
}

func (s *MemoryStore) ListDocuments(_ context.Context, requestID string) ([]models.OnboardingDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.OnboardingDocument(nil), s.documents[requestID]...), nil
}

func (s *MemoryStore) ReplaceAvailableTimes(_ context.Context, requestID string, times []models.AvailableTime) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := make([]models.AvailableTime, len(times))
	for i, slot := range times {
		slot.AvailableTimeID = s.next()
		rows[i] = slot
	}
	s.times[requestID] = rows
	return nil
}

func (s *MemoryStore) ListAvailableTimes(_ context.Context, requestID string) ([]models.AvailableTime, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := append([]models.AvailableTime(nil), s.times[requestID]...)
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].DayOfWeek != rows[j].DayOfWeek {
			return rows[i].DayOfWeek < rows[j].DayOfWeek
		}
		return rows[i].StartTime < rows[j].StartTime
	})
	return rows, nil
}
