package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"stadium-onboarding-api/models"
	"stadium-onboarding-api/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingNotifier captures notification calls without sending anything.
type recordingNotifier struct {
	received []string
	rejected []string
	memos    []string
}

func (n *recordingNotifier) ApplicationReceived(req *models.OnboardingRequest) {
	n.received = append(n.received, req.ID)
}

func (n *recordingNotifier) ApplicationRejected(req *models.OnboardingRequest, memo string) {
	n.rejected = append(n.rejected, req.ID)
	n.memos = append(n.memos, memo)
}

func newTestService(t *testing.T) (*OnboardingService, *repository.MemoryStore, *recordingNotifier) {
	t.Helper()
	store := repository.NewMemoryStore()
	notifier := &recordingNotifier{}
	return NewOnboardingService(store, notifier), store, notifier
}

func createRequest(t *testing.T, svc *OnboardingService) *models.OnboardingRequest {
	t.Helper()
	req, err := svc.Create(context.Background(), CreateInput{
		OwnerName:    "김사장",
		Region:       "서울",
		Address:      "강남구 테헤란로 1",
		StadiumName:  "테스트 스타디움",
		TempCode:     "CODE-1234",
		TempPassword: "secret-pass",
	})
	require.NoError(t, err)
	return req
}

func setStatus(t *testing.T, store *repository.MemoryStore, id string, status models.Status) {
	t.Helper()
	err := store.UpdateRequest(context.Background(), id, map[string]interface{}{
		"step_status": status,
	})
	require.NoError(t, err)
}

func TestCreateRequiredFields(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	base := CreateInput{
		OwnerName:   "김사장",
		Region:      "서울",
		Address:     "강남구 테헤란로 1",
		StadiumName: "테스트 스타디움",
	}

	cases := []struct {
		field  string
		mutate func(in *CreateInput)
	}{
		{"owner_name", func(in *CreateInput) { in.OwnerName = "" }},
		{"region", func(in *CreateInput) { in.Region = "  " }},
		{"address", func(in *CreateInput) { in.Address = "" }},
		{"stadium_name", func(in *CreateInput) { in.StadiumName = "" }},
	}
	for _, tc := range cases {
		in := base
		tc.mutate(&in)
		_, err := svc.Create(ctx, in)
		require.Error(t, err, "field %s", tc.field)
		var missing *MissingFieldError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, tc.field, missing.Field)
		assert.ErrorIs(t, err, ErrMissingRequired)
	}
}

func TestCreateStartsAtStep0Pending(t *testing.T) {
	svc, _, notifier := newTestService(t)
	req := createRequest(t, svc)

	assert.Equal(t, models.StatusStep0Pending, req.StepStatus)
	assert.Len(t, req.ID, 36)
	assert.Equal(t, []string{req.ID}, notifier.received)

	// The temp password is stored as a bcrypt hash, never in the clear.
	require.NotNil(t, req.TempPassword)
	assert.True(t, strings.HasPrefix(*req.TempPassword, "$2"))
	assert.NotEqual(t, "secret-pass", *req.TempPassword)
}

func TestGetValidation(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Get(ctx, "short")
	assert.ErrorIs(t, err, ErrInvalidID)

	_, err = svc.Get(ctx, "not-a-uuid-but-36-characters-long!!!")
	assert.ErrorIs(t, err, ErrInvalidID)

	_, err = svc.Get(ctx, "6f1e7a2c-9f1b-4c2e-8f3a-0b1c2d3e4f5a")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSubmitProposalGuards(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()
	req := createRequest(t, svc)
	images := []string{"https://cdn.example.com/p1.png"}

	// step0_pending is not an allowed predecessor.
	_, err := svc.SubmitProposal(ctx, req.ID, "제안서", "", images)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	setStatus(t, store, req.ID, models.StatusStep2Done)

	_, err = svc.SubmitProposal(ctx, req.ID, " ", "", images)
	var missing *MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "title", missing.Field)

	_, err = svc.SubmitProposal(ctx, req.ID, "제안서", "", nil)
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "image_urls", missing.Field)

	next, err := svc.SubmitProposal(ctx, req.ID, "제안서", "정산 조건", images)
	require.NoError(t, err)
	assert.Equal(t, models.StatusStep3Proposed, next)

	// Re-submitting while proposed keeps the status.
	next, err = svc.SubmitProposal(ctx, req.ID, "제안서 v2", "", images)
	require.NoError(t, err)
	assert.Equal(t, models.StatusStep3Proposed, next)

	// Re-submitting after approval reports step3_proposed (the historical
	// response shape) but must not move the persisted status backward.
	setStatus(t, store, req.ID, models.StatusStep3Approved)
	next, err = svc.SubmitProposal(ctx, req.ID, "제안서 v3", "", images)
	require.NoError(t, err)
	assert.Equal(t, models.StatusStep3Proposed, next)

	detail, err := svc.Proposals(ctx, req.ID)
	require.NoError(t, err)
	assert.Len(t, detail.Proposals, 3)
	assert.Equal(t, models.StatusStep3Approved, detail.StepStatus)
}

func TestApproveProposal(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()
	req := createRequest(t, svc)

	_, err := svc.ApproveProposal(ctx, req.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	setStatus(t, store, req.ID, models.StatusStep3Proposed)
	next, err := svc.ApproveProposal(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusStep3Approved, next)

	// step2_done may approve directly when no proposal document was uploaded.
	setStatus(t, store, req.ID, models.StatusStep2Done)
	next, err = svc.ApproveProposal(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusStep3Approved, next)

	// Approving twice is not allowed; step3_approved is not a predecessor.
	_, err = svc.ApproveProposal(ctx, req.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestDeleteProposal(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()
	req := createRequest(t, svc)
	setStatus(t, store, req.ID, models.StatusStep2Done)

	next, err := svc.SubmitProposal(ctx, req.ID, "제안서", "", []string{"https://cdn.example.com/p1.png"})
	require.NoError(t, err)
	require.Equal(t, models.StatusStep3Proposed, next)

	err = svc.DeleteProposal(ctx, req.ID, "bogus")
	assert.ErrorIs(t, err, ErrInvalidProposalID)

	detail, err := svc.Proposals(ctx, req.ID)
	require.NoError(t, err)
	require.Len(t, detail.Proposals, 1)

	err = svc.DeleteProposal(ctx, req.ID, detail.Proposals[0].ID)
	require.NoError(t, err)

	detail, err = svc.Proposals(ctx, req.ID)
	require.NoError(t, err)
	assert.Empty(t, detail.Proposals)
	// Deleting a proposal never touches the workflow status.
	assert.Equal(t, models.StatusStep3Proposed, detail.StepStatus)
}

func TestSaveStadiumDraft(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()
	req := createRequest(t, svc)
	setStatus(t, store, req.ID, models.StatusStep3Approved)

	// Drafts are never validated and never gated.
	status, err := svc.SaveStadium(ctx, req.ID, StadiumInput{StadiumName: "임시 저장"}, nil, false)
	require.NoError(t, err)
	assert.Equal(t, models.StatusStep3Approved, status)

	detail, err := svc.Stadium(ctx, req.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.Stadium)
	assert.Equal(t, "임시 저장", detail.Stadium.StadiumName)
}

func TestSaveStadiumSubmit(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()
	req := createRequest(t, svc)
	setStatus(t, store, req.ID, models.StatusStep1Pending)

	valid := StadiumInput{
		StadiumName:    "테스트 스타디움",
		Region:         "서울",
		Address:        "강남구 테헤란로 1",
		StadiumContact: "010-1234-5678",
		LaundryContact: "02-9876-5432",
	}

	missing := valid
	missing.StadiumContact = ""
	_, err := svc.SaveStadium(ctx, req.ID, missing, nil, true)
	var missingErr *MissingFieldError
	require.ErrorAs(t, err, &missingErr)
	assert.Equal(t, "stadium_contact", missingErr.Field)

	badPhone := valid
	badPhone.StadiumContact = "abc-123"
	_, err = svc.SaveStadium(ctx, req.ID, badPhone, nil, true)
	assert.ErrorIs(t, err, ErrInvalidPhone)

	capacity := 12
	courts := []CourtInput{
		{CourtName: "B코트"},
		{CourtName: "A코트", Capacity: &capacity},
	}
	status, err := svc.SaveStadium(ctx, req.ID, valid, courts, true)
	require.NoError(t, err)
	assert.Equal(t, models.StatusStep1Submitted, status)

	detail, err := svc.Stadium(ctx, req.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.Stadium)
	require.NotNil(t, detail.Stadium.StadiumContact)
	assert.Equal(t, "01012345678", *detail.Stadium.StadiumContact)
	require.NotNil(t, detail.Stadium.LaundryContact)
	assert.Equal(t, "0298765432", *detail.Stadium.LaundryContact)
	require.Len(t, detail.Courts, 2)
	assert.Equal(t, "B코트", detail.Courts[0].CourtName)
	assert.Equal(t, 0, detail.Courts[0].SortOrder)
	assert.Equal(t, 1, detail.Courts[1].SortOrder)

	// Re-submitting from step1_submitted is allowed (fix-and-resubmit loop).
	status, err = svc.SaveStadium(ctx, req.ID, valid, courts, true)
	require.NoError(t, err)
	assert.Equal(t, models.StatusStep1Submitted, status)

	// Courts are replace-on-write, not appended.
	detail, err = svc.Stadium(ctx, req.ID)
	require.NoError(t, err)
	assert.Len(t, detail.Courts, 2)

	// Once the flow has moved past STEP2 the submit transition is closed.
	setStatus(t, store, req.ID, models.StatusStep2Done)
	_, err = svc.SaveStadium(ctx, req.ID, valid, courts, true)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestSubmitDocuments(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()
	req := createRequest(t, svc)
	setStatus(t, store, req.ID, models.StatusStep1Approved)

	const (
		business = "https://cdn.example.com/biz.pdf"
		bankbook = "https://cdn.example.com/bank.pdf"
		lease    = "https://cdn.example.com/lease.pdf"
	)

	_, err := svc.SubmitDocuments(ctx, req.ID, business, "", lease, false)
	var missing *MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "bankbook_url", missing.Field)

	next, err := svc.SubmitDocuments(ctx, req.ID, business, bankbook, lease, false)
	require.NoError(t, err)
	assert.Equal(t, models.StatusStep4Submitted, next)

	// Second submission from the resting state is an idempotent no-op.
	next, err = svc.SubmitDocuments(ctx, req.ID, business, bankbook, lease, false)
	require.NoError(t, err)
	assert.Equal(t, models.StatusStep4Submitted, next)

	detail, err := svc.Documents(ctx, req.ID)
	require.NoError(t, err)
	assert.Len(t, detail.Documents, 3)

	// Re-submission after staff confirmed the documents must not move backward.
	setStatus(t, store, req.ID, models.StatusStep4Complete)
	next, err = svc.SubmitDocuments(ctx, req.ID, business, bankbook, lease, false)
	require.NoError(t, err)
	assert.Equal(t, models.StatusStep4Complete, next)

	// skip_status persists files without touching the status at all.
	setStatus(t, store, req.ID, models.StatusStep1Approved)
	next, err = svc.SubmitDocuments(ctx, req.ID, business, bankbook, lease, true)
	require.NoError(t, err)
	assert.Equal(t, models.StatusStep1Approved, next)

	updated, err := svc.Get(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusStep1Approved, updated.StepStatus)

	// The terminal states accept nothing.
	setStatus(t, store, req.ID, models.StatusStep5Complete)
	_, err = svc.SubmitDocuments(ctx, req.ID, business, bankbook, lease, false)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestSubmitDocumentsRejectedStaysRejected(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()
	req := createRequest(t, svc)
	setStatus(t, store, req.ID, models.StatusStep0Rejected)

	_, err := svc.SubmitDocuments(ctx, req.ID,
		"https://cdn.example.com/biz.pdf",
		"https://cdn.example.com/bank.pdf",
		"https://cdn.example.com/lease.pdf",
		false)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// A rejected application must not come back to life through STEP3.
	updated, err := svc.Get(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusStep0Rejected, updated.StepStatus)

	detail, err := svc.Documents(ctx, req.ID)
	require.NoError(t, err)
	assert.Empty(t, detail.Documents)
}

func TestSaveAvailableTimes(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()
	req := createRequest(t, svc)

	slots := []TimeSlotInput{
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00"},
		{DayOfWeek: 3, StartTime: "14:00", EndTime: "18:00"},
	}

	// Draft save works from any status and keeps it.
	status, err := svc.SaveAvailableTimes(ctx, req.ID, slots, false)
	require.NoError(t, err)
	assert.Equal(t, models.StatusStep0Pending, status)

	// Submitting before the documents step is rejected.
	_, err = svc.SaveAvailableTimes(ctx, req.ID, slots, true)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	setStatus(t, store, req.ID, models.StatusStep4Complete)
	status, err = svc.SaveAvailableTimes(ctx, req.ID, slots, true)
	require.NoError(t, err)
	assert.Equal(t, models.StatusStep5Submitted, status)

	detail, err := svc.AvailableTimes(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusStep5Submitted, detail.StepStatus)
	require.Len(t, detail.Times, 2)
	assert.Equal(t, 1, detail.Times[0].DayOfWeek)

	// Re-submission from step5_submitted stays allowed.
	status, err = svc.SaveAvailableTimes(ctx, req.ID, slots[:1], true)
	require.NoError(t, err)
	assert.Equal(t, models.StatusStep5Submitted, status)

	detail, err = svc.AvailableTimes(ctx, req.ID)
	require.NoError(t, err)
	assert.Len(t, detail.Times, 1)
}

func TestAdminSetStatus(t *testing.T) {
	svc, _, notifier := newTestService(t)
	ctx := context.Background()
	req := createRequest(t, svc)

	_, err := svc.AdminSetStatus(ctx, req.ID, AdminSetStatusInput{NewStatus: "step9_done"})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	// Staff may jump forward past every guard.
	next, err := svc.AdminSetStatus(ctx, req.ID, AdminSetStatusInput{NewStatus: "step5_submitted"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusStep5Submitted, next)

	// And backward.
	next, err = svc.AdminSetStatus(ctx, req.ID, AdminSetStatusInput{NewStatus: "step2_done"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusStep2Done, next)

	account := "stadium-owner"
	password := "initial-pw"
	next, err = svc.AdminSetStatus(ctx, req.ID, AdminSetStatusInput{
		NewStatus:     "step5_complete",
		FinalAccount:  &account,
		FinalPassword: &password,
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusStep5Complete, next)

	updated, err := svc.Get(ctx, req.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.FinalAccount)
	assert.Equal(t, "stadium-owner", *updated.FinalAccount)
	require.NotNil(t, updated.FinalPassword)
	assert.Equal(t, "initial-pw", *updated.FinalPassword)

	// Rejection records the memo and notifies the owner.
	next, err = svc.AdminSetStatus(ctx, req.ID, AdminSetStatusInput{
		NewStatus: "step0_rejected",
		Memo:      "서류 미비",
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusStep0Rejected, next)

	updated, err = svc.Get(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, "서류 미비", updated.Memo)
	assert.Equal(t, []string{req.ID}, notifier.rejected)
	assert.Equal(t, []string{"서류 미비"}, notifier.memos)
}

func TestDeleteCascade(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()
	req := createRequest(t, svc)
	setStatus(t, store, req.ID, models.StatusStep2Done)

	_, err := svc.SubmitProposal(ctx, req.ID, "제안서", "", []string{"https://cdn.example.com/p1.png"})
	require.NoError(t, err)
	_, err = svc.SaveStadium(ctx, req.ID, StadiumInput{StadiumName: "테스트"}, []CourtInput{{CourtName: "A코트"}}, false)
	require.NoError(t, err)
	_, err = svc.SaveAvailableTimes(ctx, req.ID, []TimeSlotInput{{DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00"}}, false)
	require.NoError(t, err)

	err = svc.Delete(ctx, req.ID)
	require.NoError(t, err)

	_, err = svc.Get(ctx, req.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting a missing request surfaces not-found, not success.
	err = svc.Delete(ctx, req.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Child rows are gone with the parent.
	courts, err := store.ListCourts(ctx, req.ID)
	require.NoError(t, err)
	assert.Empty(t, courts)
	proposals, err := store.ListProposals(ctx, req.ID)
	require.NoError(t, err)
	assert.Empty(t, proposals)
	times, err := store.ListAvailableTimes(ctx, req.ID)
	require.NoError(t, err)
	assert.Empty(t, times)
}

func TestOwnerLogin(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()
	req := createRequest(t, svc)

	_, err := svc.OwnerLogin(ctx, "", "secret-pass")
	assert.ErrorIs(t, err, ErrMissingCredentials)

	_, err = svc.OwnerLogin(ctx, "CODE-1234", "wrong-pass")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.OwnerLogin(ctx, "NO-SUCH-CODE", "secret-pass")
	assert.ErrorIs(t, err, ErrNotFound)

	res, err := svc.OwnerLogin(ctx, "CODE-1234", "secret-pass")
	require.NoError(t, err)
	assert.Equal(t, req.ID, res.ID)
	assert.Equal(t, models.StatusStep0Pending, res.StepStatus)
	assert.Equal(t, "/onboarding/"+req.ID+"/wait", res.Path)

	// The landing page follows the workflow status.
	setStatus(t, store, req.ID, models.StatusStep4Complete)
	res, err = svc.OwnerLogin(ctx, "CODE-1234", "secret-pass")
	require.NoError(t, err)
	assert.Equal(t, "/onboarding/"+req.ID+"/step4", res.Path)
}

func TestStorageErrorWrapping(t *testing.T) {
	err := storeErr("get request", repository.ErrNotFound)
	assert.ErrorIs(t, err, ErrNotFound)

	inner := errors.New("connection refused")
	err = storeErr("list requests", inner)
	var storage *StorageError
	require.ErrorAs(t, err, &storage)
	assert.Equal(t, "list requests", storage.Op)
	assert.ErrorIs(t, err, inner)
}
