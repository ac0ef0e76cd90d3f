package services

import (
	"fmt"
	"log"
	"os"
	"strings"

	"stadium-onboarding-api/config"
	"stadium-onboarding-api/models"
)

// MailNotifier sends workflow notifications over SMTP. Delivery problems are
// logged and dropped; mail never fails a request.
type MailNotifier struct {
	// staffRecipients get the "new application" mail.
	staffRecipients []string
}

var _ Notifier = (*MailNotifier)(nil)

// NewMailNotifier reads the staff recipient list from ONBOARDING_NOTIFY_TO
// (comma separated). Returns nil when unset so callers can skip wiring.
func NewMailNotifier() *MailNotifier {
	raw := os.Getenv("ONBOARDING_NOTIFY_TO")
	if raw == "" {
		return nil
	}
	var recipients []string
	for _, addr := range strings.Split(raw, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			recipients = append(recipients, addr)
		}
	}
	if len(recipients) == 0 {
		return nil
	}
	return &MailNotifier{staffRecipients: recipients}
}

func (n *MailNotifier) ApplicationReceived(req *models.OnboardingRequest) {
	subject := fmt.Sprintf("[온보딩] 새 제휴 요청: %s", req.StadiumName)
	html := fmt.Sprintf(
		"<p>새 제휴 요청이 접수되었습니다.</p><p>구장: %s<br>대표자: %s<br>지역: %s</p><p>요청 ID: %s</p>",
		req.StadiumName, req.OwnerName, req.Region, req.ID,
	)
	if err := config.SendMail(n.staffRecipients, subject, html); err != nil {
		log.Printf("Warning: failed to send application-received mail for %s: %v", req.ID, err)
	}
}

func (n *MailNotifier) ApplicationRejected(req *models.OnboardingRequest, memo string) {
	if req.OwnerEmail == nil || *req.OwnerEmail == "" {
		return
	}
	subject := fmt.Sprintf("[온보딩] 제휴 요청 결과 안내: %s", req.StadiumName)
	html := fmt.Sprintf(
		"<p>%s님, 제휴 요청이 반려되었습니다.</p><p>사유: %s</p>",
		req.OwnerName, memo,
	)
	if err := config.SendMail([]string{*req.OwnerEmail}, subject, html); err != nil {
		log.Printf("Warning: failed to send rejection mail for %s: %v", req.ID, err)
	}
}
