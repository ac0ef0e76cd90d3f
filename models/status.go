package models

import (
	"fmt"
	"strings"
)

// Status is the single step_status value stored on an onboarding request.
// The string values are the historical ones from the production schema; the
// step numbers in the names do not match the actual flow order (step1_* comes
// after step2_done/step3_* in practice), so never sort or compare by name.
type Status string

const (
	StatusStep0Pending   Status = "step0_pending"
	StatusStep0Approved  Status = "step0_approved"
	StatusStep0Rejected  Status = "step0_rejected"
	StatusStep1Pending   Status = "step1_pending"
	StatusStep1Submitted Status = "step1_submitted"
	StatusStep1NeedFix   Status = "step1_need_fix"
	StatusStep1Approved  Status = "step1_approved"
	StatusStep2Done      Status = "step2_done"
	StatusStep3Proposed  Status = "step3_proposed"
	StatusStep3Approved  Status = "step3_approved"
	StatusStep4Submitted Status = "step4_submitted"
	StatusStep4Complete  Status = "step4_complete"
	StatusStep5Submitted Status = "step5_submitted"
	StatusStep5Complete  Status = "step5_complete"
)

// AllStatuses lists every valid status in workflow order.
var AllStatuses = []Status{
	StatusStep0Pending,
	StatusStep0Approved,
	StatusStep0Rejected,
	StatusStep1Pending,
	StatusStep1Submitted,
	StatusStep1NeedFix,
	StatusStep1Approved,
	StatusStep2Done,
	StatusStep3Proposed,
	StatusStep3Approved,
	StatusStep4Submitted,
	StatusStep4Complete,
	StatusStep5Submitted,
	StatusStep5Complete,
}

var validStatuses = func() map[Status]struct{} {
	m := make(map[Status]struct{}, len(AllStatuses))
	for _, s := range AllStatuses {
		m[s] = struct{}{}
	}
	return m
}()

// ParseStatus validates an incoming status string.
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.TrimSpace(raw))
	if _, ok := validStatuses[s]; !ok {
		return "", fmt.Errorf("unknown status: %q", raw)
	}
	return s, nil
}

// Valid reports whether s is one of the 14 enumerated values.
func (s Status) Valid() bool {
	_, ok := validStatuses[s]
	return ok
}

// Terminal reports whether the workflow ends at s.
func (s Status) Terminal() bool {
	return s == StatusStep0Rejected || s == StatusStep5Complete
}

var statusLabels = map[Status]string{
	StatusStep0Pending:   "01 · 제휴 요청 검토",
	StatusStep0Approved:  "01 · 승인 후 전화 안내",
	StatusStep0Rejected:  "01 · 제휴 요청 반려",
	StatusStep1Pending:   "03 · 구장 정보 검토",
	StatusStep1Submitted: "03 · 구장 정보 검토",
	StatusStep1NeedFix:   "03 · 구장 정보 검토",
	StatusStep1Approved:  "03 · 구장 정보 검토",
	StatusStep2Done:      "02 · 정산안 업로드/제안",
	StatusStep3Proposed:  "02 · 정산안 업로드/제안",
	StatusStep3Approved:  "03 · 구장 정보 검토",
	StatusStep4Submitted: "STEP3 · 서류 제출 완료",
	StatusStep4Complete:  "STEP3 · 서류 검토 완료",
	StatusStep5Submitted: "STEP4 · 세팅 시간 제출",
	StatusStep5Complete:  "STEP5 · 온보딩 완료",
}

// Label returns the display label for s. Unknown values fall back to the raw
// string; with the closed enum that branch should never be taken.
func (s Status) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

var statusPaths = map[Status]string{
	// STEP0 pending/approved both park the owner on the wait page.
	StatusStep0Pending:  "wait",
	StatusStep0Approved: "wait",
	StatusStep0Rejected: "wait",
	// STEP1 (settlement negotiation)
	StatusStep2Done:     "step1",
	StatusStep3Proposed: "step1",
	StatusStep3Approved: "step2",
	// STEP2 (stadium detail)
	StatusStep1Pending:   "step2",
	StatusStep1Submitted: "step2",
	StatusStep1NeedFix:   "step2",
	StatusStep1Approved:  "step5",
	// STEP3 (documents)
	StatusStep4Submitted: "step3",
	StatusStep4Complete:  "step4",
	// STEP4 (setup times) and completion
	StatusStep5Submitted: "step5",
	StatusStep5Complete:  "step5",
}

// PathFor returns the owner-facing route the client should show next for the
// request id in state s. Unknown values fall back to the step1 page.
func (s Status) PathFor(id string) string {
	base := "/onboarding/" + id
	if page, ok := statusPaths[s]; ok {
		return base + "/" + page
	}
	return base + "/step1"
}

// NormalizePhone strips every non-digit character from input.
func NormalizePhone(input string) string {
	var b strings.Builder
	for _, r := range input {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsValidPhone reports whether input contains 10 or 11 digits once all
// non-digit characters are stripped. This is the only phone rule the workflow
// enforces; it gates the STEP2 submit transition.
func IsValidPhone(input string) bool {
	n := len(NormalizePhone(input))
	return n >= 10 && n <= 11
}
