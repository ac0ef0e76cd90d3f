package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"stadium-onboarding-api/models"
	"stadium-onboarding-api/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Failure kinds surfaced by the guards. Controllers translate these into the
// wire error codes; nothing below retries or recovers locally.
var (
	ErrInvalidID          = errors.New("invalid id")
	ErrNotFound           = errors.New("onboarding request not found")
	ErrInvalidTransition  = errors.New("current status does not allow this operation")
	ErrInvalidPhone       = errors.New("contact must contain 10 or 11 digits")
	ErrInvalidStatus      = errors.New("unknown status value")
	ErrInvalidAction      = errors.New("unknown action")
	ErrInvalidProposalID  = errors.New("invalid proposal id")
	ErrInvalidPayload     = errors.New("invalid payload")
	ErrMissingCredentials = errors.New("temp code and password are required")
)

// ErrMissingRequired is the base error every MissingFieldError matches.
var ErrMissingRequired = errors.New("missing required field")

// MissingFieldError identifies which required field was absent at submit time.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingRequired
}

// StorageError wraps a failure from the persistence layer so callers can tell
// it apart from validation and transition failures.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storeErr(op string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return &StorageError{Op: op, Err: err}
}

// Notifier sends best-effort workflow notifications. Implementations must not
// block the request path on delivery problems.
type Notifier interface {
	ApplicationReceived(req *models.OnboardingRequest)
	ApplicationRejected(req *models.OnboardingRequest, memo string)
}

// OnboardingService owns every status transition of an onboarding request.
// All owner-driven operations are guarded by allowed-predecessor checks;
// AdminSetStatus is the single privileged path that bypasses them.
type OnboardingService struct {
	store    repository.Store
	notifier Notifier
}

// NewOnboardingService builds a service around the given store. notifier may
// be nil.
func NewOnboardingService(store repository.Store, notifier Notifier) *OnboardingService {
	return &OnboardingService{store: store, notifier: notifier}
}

// validateID enforces the 36-char UUID shape used for every request id.
func validateID(id string) error {
	if len(id) != 36 {
		return ErrInvalidID
	}
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidID
	}
	return nil
}

// CreateInput carries the owner's initial partnership request.
type CreateInput struct {
	OwnerID         *string
	OwnerEmail      *string
	OwnerName       string
	StadiumName     string
	Region          string
	Address         string
	AddressDetail   string
	OperatingStatus string
	FacilityCount   string
	SizeInfo        string
	ServiceTypes    string
	OtherServices   string
	Memo            string
	Source          string
	TempCode        string
	TempPassword    string
}

// Create inserts a new request in step0_pending. This is the workflow entry
// point; there is no predecessor to check.
func (s *OnboardingService) Create(ctx context.Context, in CreateInput) (*models.OnboardingRequest, error) {
	for _, field := range []struct {
		name, value string
	}{
		{"owner_name", in.OwnerName},
		{"region", in.Region},
		{"address", in.Address},
		{"stadium_name", in.StadiumName},
	} {
		if strings.TrimSpace(field.value) == "" {
			return nil, &MissingFieldError{Field: field.name}
		}
	}

	now := time.Now()
	req := &models.OnboardingRequest{
		ID:              uuid.NewString(),
		OwnerID:         in.OwnerID,
		OwnerEmail:      in.OwnerEmail,
		StepStatus:      models.StatusStep0Pending,
		StadiumName:     in.StadiumName,
		OwnerName:       in.OwnerName,
		Region:          in.Region,
		Address:         in.Address,
		AddressDetail:   in.AddressDetail,
		OperatingStatus: in.OperatingStatus,
		FacilityCount:   in.FacilityCount,
		SizeInfo:        in.SizeInfo,
		ServiceTypes:    in.ServiceTypes,
		OtherServices:   in.OtherServices,
		Memo:            in.Memo,
		Source:          in.Source,
		CreatedAt:       &now,
		UpdatedAt:       &now,
	}
	if code := strings.TrimSpace(in.TempCode); code != "" {
		req.TempCode = &code
	}
	if in.TempPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.TempPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash temp password: %w", err)
		}
		hashed := string(hash)
		req.TempPassword = &hashed
	}

	if err := s.store.CreateRequest(ctx, req); err != nil {
		return nil, storeErr("create request", err)
	}
	if s.notifier != nil {
		s.notifier.ApplicationReceived(req)
	}
	return req, nil
}

// Get returns the full request row.
func (s *OnboardingService) Get(ctx context.Context, id string) (*models.OnboardingRequest, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	req, err := s.store.GetRequest(ctx, id)
	if err != nil {
		return nil, storeErr("get request", err)
	}
	return req, nil
}

// List returns the admin overview rows, newest update first.
func (s *OnboardingService) List(ctx context.Context) ([]models.OnboardingListItem, error) {
	items, err := s.store.ListRequests(ctx)
	if err != nil {
		return nil, storeErr("list requests", err)
	}
	return items, nil
}

// AdminSetStatusInput is the staff override payload.
type AdminSetStatusInput struct {
	NewStatus     string
	Memo          string
	FinalAccount  *string
	FinalPassword *string
}

// AdminSetStatus is the privileged escape hatch: staff may move a request to
// any enumerated status, forward or backward, without predecessor checks. A
// move to step0_rejected records the memo as the rejection reason.
func (s *OnboardingService) AdminSetStatus(ctx context.Context, id string, in AdminSetStatusInput) (models.Status, error) {
	if err := validateID(id); err != nil {
		return "", err
	}
	target, err := models.ParseStatus(in.NewStatus)
	if err != nil {
		return "", ErrInvalidStatus
	}

	req, err := s.store.GetRequest(ctx, id)
	if err != nil {
		return "", storeErr("get request", err)
	}

	fields := map[string]interface{}{
		"step_status": target,
		"updated_at":  time.Now(),
	}
	if target == models.StatusStep0Rejected && in.Memo != "" {
		fields["memo"] = in.Memo
	}
	if in.FinalAccount != nil {
		fields["final_account"] = *in.FinalAccount
	}
	if in.FinalPassword != nil {
		fields["final_password"] = *in.FinalPassword
	}

	if err := s.store.UpdateRequest(ctx, id, fields); err != nil {
		return "", storeErr("update status", err)
	}
	if target == models.StatusStep0Rejected && s.notifier != nil {
		s.notifier.ApplicationRejected(req, in.Memo)
	}
	return target, nil
}

// Delete removes a request and all of its child rows.
func (s *OnboardingService) Delete(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	if _, err := s.store.GetRequest(ctx, id); err != nil {
		return storeErr("get request", err)
	}
	if err := s.store.DeleteRequestCascade(ctx, id); err != nil {
		return storeErr("delete request", err)
	}
	return nil
}

// proposalPredecessors is the allowed set for submitting a settlement
// proposal: only after the phone briefing is done.
var proposalPredecessors = map[models.Status]struct{}{
	models.StatusStep2Done:     {},
	models.StatusStep3Proposed: {},
	models.StatusStep3Approved: {},
}

// SubmitProposal records a settlement proposal and advances the request to
// step3_proposed. Re-submission while already proposed or approved keeps the
// persisted status (idempotent re-entry); the reported status is always
// step3_proposed, matching the historical response shape.
func (s *OnboardingService) SubmitProposal(ctx context.Context, id, title, description string, imageURLs []string) (models.Status, error) {
	if err := validateID(id); err != nil {
		return "", err
	}
	if strings.TrimSpace(title) == "" {
		return "", &MissingFieldError{Field: "title"}
	}
	if len(imageURLs) == 0 {
		return "", &MissingFieldError{Field: "image_urls"}
	}

	req, err := s.store.GetRequest(ctx, id)
	if err != nil {
		return "", storeErr("get request", err)
	}
	current := req.StepStatus
	if _, ok := proposalPredecessors[current]; !ok {
		return "", ErrInvalidTransition
	}

	now := time.Now()
	proposal := &models.SettlementProposal{
		ID:                  uuid.NewString(),
		OnboardingRequestID: id,
		Title:               title,
		Description:         description,
		CreatedAt:           &now,
	}
	if err := proposal.SetImageURLs(imageURLs); err != nil {
		return "", fmt.Errorf("encode image urls: %w", err)
	}
	if err := s.store.CreateProposal(ctx, proposal); err != nil {
		return "", storeErr("create proposal", err)
	}

	if current != models.StatusStep3Proposed && current != models.StatusStep3Approved {
		if err := s.updateStatus(ctx, id, models.StatusStep3Proposed); err != nil {
			return "", err
		}
	}
	return models.StatusStep3Proposed, nil
}

// ApproveProposal marks the settlement terms accepted. step2_done is allowed
// as a predecessor so the flow can proceed when staff never uploaded a
// proposal document.
func (s *OnboardingService) ApproveProposal(ctx context.Context, id string) (models.Status, error) {
	if err := validateID(id); err != nil {
		return "", err
	}
	req, err := s.store.GetRequest(ctx, id)
	if err != nil {
		return "", storeErr("get request", err)
	}
	current := req.StepStatus
	if current != models.StatusStep3Proposed && current != models.StatusStep2Done {
		return "", ErrInvalidTransition
	}
	if err := s.updateStatus(ctx, id, models.StatusStep3Approved); err != nil {
		return "", err
	}
	return models.StatusStep3Approved, nil
}

// DeleteProposal removes a single proposal. Scoped by ownership of the
// proposal id, not by status; the request status never changes.
func (s *OnboardingService) DeleteProposal(ctx context.Context, id, proposalID string) error {
	if err := validateID(id); err != nil {
		return err
	}
	if len(proposalID) != 36 {
		return ErrInvalidProposalID
	}
	if _, err := uuid.Parse(proposalID); err != nil {
		return ErrInvalidProposalID
	}
	if err := s.store.DeleteProposal(ctx, id, proposalID); err != nil {
		return storeErr("delete proposal", err)
	}
	return nil
}

// ProposalsDetail is the STEP1 page payload.
type ProposalsDetail struct {
	Proposals  []models.SettlementProposal
	StepStatus models.Status
}

func (s *OnboardingService) Proposals(ctx context.Context, id string) (*ProposalsDetail, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	req, err := s.store.GetRequest(ctx, id)
	if err != nil {
		return nil, storeErr("get request", err)
	}
	proposals, err := s.store.ListProposals(ctx, id)
	if err != nil {
		return nil, storeErr("list proposals", err)
	}
	return &ProposalsDetail{Proposals: proposals, StepStatus: req.StepStatus}, nil
}

// StadiumInput is the STEP2 form payload.
type StadiumInput struct {
	StadiumName    string
	Region         string
	Address        string
	AddressDetail  string
	StadiumContact string
	LaundryContact string
	ParkingInfo    string
	ShowerInfo     string
	EtcInfo        string
}

// CourtInput is one court row of the STEP2 form.
type CourtInput struct {
	CourtName       string
	Capacity        *int
	PlayTimeMinutes *int
	SizeX           *float64
	SizeY           *float64
	FloorType       string
	IndoorOutdoor   string
	SortOrder       *int
}

// stadiumSubmitPredecessors is the allowed set for the STEP2 submit
// transition. Draft saves (submit=false) are never gated.
var stadiumSubmitPredecessors = map[models.Status]struct{}{
	models.StatusStep0Pending:   {},
	models.StatusStep0Approved:  {},
	models.StatusStep1Pending:   {},
	models.StatusStep1NeedFix:   {},
	models.StatusStep1Submitted: {},
	models.StatusStep1Approved:  {},
}

// SaveStadium upserts the stadium detail and replaces the court rows. A draft
// save (submit=false) is never gated and never touches the status. With
// submit=true the required fields and the phone rule are validated, the
// predecessor set is checked, and the request moves to step1_submitted.
func (s *OnboardingService) SaveStadium(ctx context.Context, id string, stadium StadiumInput, courts []CourtInput, submit bool) (models.Status, error) {
	if err := validateID(id); err != nil {
		return "", err
	}
	if submit {
		for _, field := range []struct {
			name, value string
		}{
			{"region", stadium.Region},
			{"stadium_name", stadium.StadiumName},
			{"address", stadium.Address},
			{"stadium_contact", stadium.StadiumContact},
		} {
			if strings.TrimSpace(field.value) == "" {
				return "", &MissingFieldError{Field: field.name}
			}
		}
		if !models.IsValidPhone(stadium.StadiumContact) {
			return "", ErrInvalidPhone
		}
	}

	req, err := s.store.GetRequest(ctx, id)
	if err != nil {
		return "", storeErr("get request", err)
	}
	if submit {
		if _, ok := stadiumSubmitPredecessors[req.StepStatus]; !ok {
			return "", ErrInvalidTransition
		}
	}

	now := time.Now()
	info := &models.StadiumInfo{
		OnboardingRequestID: id,
		StadiumName:         stadium.StadiumName,
		Region:              stadium.Region,
		Address:             stadium.Address,
		AddressDetail:       stadium.AddressDetail,
		ParkingInfo:         stadium.ParkingInfo,
		ShowerInfo:          stadium.ShowerInfo,
		EtcInfo:             stadium.EtcInfo,
		UpdatedAt:           &now,
	}
	if digits := models.NormalizePhone(stadium.StadiumContact); digits != "" {
		info.StadiumContact = &digits
	}
	if digits := models.NormalizePhone(stadium.LaundryContact); digits != "" {
		info.LaundryContact = &digits
	}
	if err := s.store.UpsertStadium(ctx, info); err != nil {
		return "", storeErr("upsert stadium", err)
	}

	rows := make([]models.CourtInfo, 0, len(courts))
	for i, court := range courts {
		order := i
		if court.SortOrder != nil {
			order = *court.SortOrder
		}
		rows = append(rows, models.CourtInfo{
			OnboardingRequestID: id,
			CourtName:           court.CourtName,
			Capacity:            court.Capacity,
			PlayTimeMinutes:     court.PlayTimeMinutes,
			SizeX:               court.SizeX,
			SizeY:               court.SizeY,
			FloorType:           court.FloorType,
			IndoorOutdoor:       court.IndoorOutdoor,
			SortOrder:           order,
			CreatedAt:           &now,
		})
	}
	if err := s.store.ReplaceCourts(ctx, id, rows); err != nil {
		return "", storeErr("replace courts", err)
	}

	if !submit {
		return req.StepStatus, nil
	}
	if err := s.updateStatus(ctx, id, models.StatusStep1Submitted); err != nil {
		return "", err
	}
	return models.StatusStep1Submitted, nil
}

// StadiumDetail is the STEP2 page payload.
type StadiumDetail struct {
	Stadium    *models.StadiumInfo
	Courts     []models.CourtInfo
	StepStatus models.Status
}

func (s *OnboardingService) Stadium(ctx context.Context, id string) (*StadiumDetail, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	req, err := s.store.GetRequest(ctx, id)
	if err != nil {
		return nil, storeErr("get request", err)
	}
	stadium, err := s.store.GetStadium(ctx, id)
	if err != nil {
		return nil, storeErr("get stadium", err)
	}
	courts, err := s.store.ListCourts(ctx, id)
	if err != nil {
		return nil, storeErr("list courts", err)
	}
	return &StadiumDetail{Stadium: stadium, Courts: courts, StepStatus: req.StepStatus}, nil
}

// documentRestingStates are the statuses a document re-submission must not
// move backward from.
var documentRestingStates = map[models.Status]struct{}{
	models.StatusStep4Submitted: {},
	models.StatusStep4Complete:  {},
	models.StatusStep5Submitted: {},
}

// SubmitDocuments replaces the three required documents and advances the
// request to step4_submitted. Every non-terminal status may submit; resting
// states past STEP3 are an idempotent no-op. skipStatus persists the files
// without ever touching the status (staff re-upload path).
func (s *OnboardingService) SubmitDocuments(ctx context.Context, id, businessURL, bankbookURL, leaseContractURL string, skipStatus bool) (models.Status, error) {
	if err := validateID(id); err != nil {
		return "", err
	}
	for _, doc := range []struct {
		field, url string
	}{
		{"business_url", businessURL},
		{"bankbook_url", bankbookURL},
		{"lease_contract_url", leaseContractURL},
	} {
		if strings.TrimSpace(doc.url) == "" {
			return "", &MissingFieldError{Field: doc.field}
		}
	}

	req, err := s.store.GetRequest(ctx, id)
	if err != nil {
		return "", storeErr("get request", err)
	}
	current := req.StepStatus
	if current.Terminal() {
		return "", ErrInvalidTransition
	}

	now := time.Now()
	docs := []models.OnboardingDocument{
		{OnboardingRequestID: id, DocType: models.DocTypeBusinessRegistration, FileURL: businessURL, UploadedAt: &now},
		{OnboardingRequestID: id, DocType: models.DocTypeBankbook, FileURL: bankbookURL, UploadedAt: &now},
		{OnboardingRequestID: id, DocType: models.DocTypeLeaseContract, FileURL: leaseContractURL, UploadedAt: &now},
	}
	if err := s.store.ReplaceDocuments(ctx, id, docs); err != nil {
		return "", storeErr("replace documents", err)
	}

	next := current
	if _, resting := documentRestingStates[current]; !skipStatus && !resting {
		next = models.StatusStep4Submitted
		if err := s.updateStatus(ctx, id, next); err != nil {
			return "", err
		}
	}
	return next, nil
}

// DocumentsDetail is the STEP3 page payload.
type DocumentsDetail struct {
	StepStatus models.Status
	Documents  []models.OnboardingDocument
	Stadium    *models.StadiumInfo
	Courts     []models.CourtInfo
}

func (s *OnboardingService) Documents(ctx context.Context, id string) (*DocumentsDetail, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	req, err := s.store.GetRequest(ctx, id)
	if err != nil {
		return nil, storeErr("get request", err)
	}
	docs, err := s.store.ListDocuments(ctx, id)
	if err != nil {
		return nil, storeErr("list documents", err)
	}
	stadium, err := s.store.GetStadium(ctx, id)
	if err != nil {
		return nil, storeErr("get stadium", err)
	}
	courts, err := s.store.ListCourts(ctx, id)
	if err != nil {
		return nil, storeErr("list courts", err)
	}
	return &DocumentsDetail{StepStatus: req.StepStatus, Documents: docs, Stadium: stadium, Courts: courts}, nil
}

// TimeSlotInput is one weekly setup slot of the STEP4 form.
type TimeSlotInput struct {
	DayOfWeek int
	StartTime string
	EndTime   string
	Note      *string
}

// timesSubmitPredecessors is the allowed set for the setup-time submission:
// only after the documents step.
var timesSubmitPredecessors = map[models.Status]struct{}{
	models.StatusStep4Submitted: {},
	models.StatusStep4Complete:  {},
	models.StatusStep5Submitted: {},
}

// SaveAvailableTimes replaces the weekly setup slots. A plain save keeps the
// status; submit=true requires the documents step to be done and advances the
// request to step5_submitted.
func (s *OnboardingService) SaveAvailableTimes(ctx context.Context, id string, times []TimeSlotInput, submit bool) (models.Status, error) {
	if err := validateID(id); err != nil {
		return "", err
	}
	req, err := s.store.GetRequest(ctx, id)
	if err != nil {
		return "", storeErr("get request", err)
	}
	if submit {
		if _, ok := timesSubmitPredecessors[req.StepStatus]; !ok {
			return "", ErrInvalidTransition
		}
	}

	now := time.Now()
	rows := make([]models.AvailableTime, 0, len(times))
	for _, slot := range times {
		rows = append(rows, models.AvailableTime{
			OnboardingRequestID: id,
			DayOfWeek:           slot.DayOfWeek,
			StartTime:           slot.StartTime,
			EndTime:             slot.EndTime,
			Note:                slot.Note,
			CreatedAt:           &now,
		})
	}
	if err := s.store.ReplaceAvailableTimes(ctx, id, rows); err != nil {
		return "", storeErr("replace available times", err)
	}

	if !submit {
		return req.StepStatus, nil
	}
	if err := s.updateStatus(ctx, id, models.StatusStep5Submitted); err != nil {
		return "", err
	}
	return models.StatusStep5Submitted, nil
}

// TimesDetail is the STEP4/STEP5 page payload.
type TimesDetail struct {
	StepStatus    models.Status
	Times         []models.AvailableTime
	FinalAccount  *string
	FinalPassword *string
}

func (s *OnboardingService) AvailableTimes(ctx context.Context, id string) (*TimesDetail, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	req, err := s.store.GetRequest(ctx, id)
	if err != nil {
		return nil, storeErr("get request", err)
	}
	times, err := s.store.ListAvailableTimes(ctx, id)
	if err != nil {
		return nil, storeErr("list available times", err)
	}
	return &TimesDetail{
		StepStatus:    req.StepStatus,
		Times:         times,
		FinalAccount:  req.FinalAccount,
		FinalPassword: req.FinalPassword,
	}, nil
}

// OwnerLoginResult points a returning owner at the page for their status.
type OwnerLoginResult struct {
	ID         string
	StepStatus models.Status
	Path       string
}

// OwnerLogin resolves a temp-code credential pair to the request and the next
// page. Stored passwords are bcrypt hashes; rows created before hashing are
// compared verbatim.
func (s *OnboardingService) OwnerLogin(ctx context.Context, tempCode, tempPassword string) (*OwnerLoginResult, error) {
	if tempCode == "" || tempPassword == "" {
		return nil, ErrMissingCredentials
	}
	req, err := s.store.GetRequestByTempCode(ctx, tempCode)
	if err != nil {
		return nil, storeErr("get request by temp code", err)
	}
	if req.TempPassword == nil || !passwordMatches(*req.TempPassword, tempPassword) {
		return nil, ErrNotFound
	}
	return &OwnerLoginResult{
		ID:         req.ID,
		StepStatus: req.StepStatus,
		Path:       req.StepStatus.PathFor(req.ID),
	}, nil
}

func passwordMatches(stored, candidate string) bool {
	if strings.HasPrefix(stored, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(candidate)) == nil
	}
	return stored == candidate
}

// updateStatus persists a status change. Single-column last-write-wins
// update; concurrent writers race exactly as the storage layer allows.
func (s *OnboardingService) updateStatus(ctx context.Context, id string, next models.Status) error {
	fields := map[string]interface{}{
		"step_status": next,
		"updated_at":  time.Now(),
	}
	if err := s.store.UpdateRequest(ctx, id, fields); err != nil {
		return storeErr("update status", err)
	}
	return nil
}
