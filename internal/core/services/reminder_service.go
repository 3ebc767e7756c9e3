package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/claims_app/internal/core/domain"
	portsrepo "github.com/SscSPs/claims_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/claims_app/internal/core/ports/services"
)

const reminderPageSize = 100

type reminderService struct {
	BaseService
	claims   portsrepo.ClaimReader
	notifier portssvc.Notifier
}

// NewReminderService creates the service behind the periodic reminder sweep.
func NewReminderService(claims portsrepo.ClaimReader, notifier portssvc.Notifier) portssvc.ReminderSvc {
	return &reminderService{claims: claims, notifier: notifier}
}

var _ portssvc.ReminderSvc = (*reminderService)(nil)

// SendReminders nudges approvers of pending claims and finance members of approved
// ones. It never changes claim state; a failed notification is logged and skipped.
func (s *reminderService) SendReminders(ctx context.Context) (int, error) {
	filter := domain.ClaimFilter{Statuses: []domain.ClaimStatus{domain.ClaimPending, domain.ClaimApproved}}

	sent := 0
	var token *string
	for {
		claims, next, err := s.claims.ListClaims(ctx, filter, reminderPageSize, token)
		if err != nil {
			s.LogError(ctx, err, "Failed to list claims for reminders")
			return sent, err
		}
		for _, c := range claims {
			kind, ok := reminderKind(c)
			if !ok {
				continue
			}
			if err := s.notifier.Notify(ctx, c.ClaimID, kind); err != nil {
				s.LogError(ctx, err, "Failed to send reminder", slog.String("claim_id", c.ClaimID))
				continue
			}
			sent++
		}
		if next == nil {
			break
		}
		token = next
	}

	s.LogInfo(ctx, "Reminder sweep finished", slog.Int("sent", sent))
	return sent, nil
}

func reminderKind(c domain.Claim) (domain.NotificationKind, bool) {
	switch {
	case c.Status == domain.ClaimPending:
		return domain.NotifyClaimSubmitted, true
	case c.Status == domain.ClaimApproved && c.FinanceID != nil:
		return domain.NotifyManagerApproved, true
	}
	return "", false
}
