package services

import (
	"context"

	"github.com/SscSPs/claims_app/internal/core/domain"
	"github.com/SscSPs/claims_app/internal/dto"
)

// ClaimReaderSvc defines read operations on claims. Every call is scoped to the actor.
type ClaimReaderSvc interface {
	// GetClaim returns a claim the actor may see: as claimant, approver, assigned finance or admin.
	GetClaim(ctx context.Context, actor domain.Actor, claimID string) (*domain.Claim, error)

	// ListClaims lists claims under the requested view mode.
	ListClaims(ctx context.Context, actor domain.Actor, params dto.ListClaimsParams) (*dto.ListClaimsResponse, error)

	// ListChangeLogs returns a claim's audit trail under GetClaim's read rule.
	ListChangeLogs(ctx context.Context, actor domain.Actor, claimID string) ([]domain.ClaimChangeLog, error)
}

// ClaimCounterSvc defines the per-view-mode status count projection.
type ClaimCounterSvc interface {
	GetStatusCounts(ctx context.Context, actor domain.Actor, params dto.StatusCountParams) (*domain.StatusCounts, error)
}

// ClaimWorkflowSvc defines the state-changing claim operations. Each runs in one
// transaction and dispatches its notifications after commit.
type ClaimWorkflowSvc interface {
	CreateClaim(ctx context.Context, actor domain.Actor, req dto.CreateClaimRequest) (*domain.Claim, error)
	UpdateClaim(ctx context.Context, actor domain.Actor, claimID string, req dto.UpdateClaimRequest) (*domain.Claim, error)
	SubmitClaim(ctx context.Context, actor domain.Actor, claimID string) (*domain.Claim, error)
	ApproveClaim(ctx context.Context, actor domain.Actor, claimID string) (*domain.Claim, error)
	RejectClaim(ctx context.Context, actor domain.Actor, claimID string, reason string) (*domain.Claim, error)
	ReturnClaim(ctx context.Context, actor domain.Actor, claimID string, reason string) (*domain.Claim, error)
	CancelClaim(ctx context.Context, actor domain.Actor, claimID string, reason string) (*domain.Claim, error)
	PayClaim(ctx context.Context, actor domain.Actor, claimID string) (*domain.Claim, error)
}

// ClaimSvcFacade combines all claim-related service interfaces
type ClaimSvcFacade interface {
	ClaimReaderSvc
	ClaimCounterSvc
	ClaimWorkflowSvc
}

// Notifier dispatches claim events to the mail pipeline. Callers log and swallow
// its errors.
type Notifier interface {
	Notify(ctx context.Context, claimID string, kind domain.NotificationKind) error
}

// ReminderSvc re-emits notifications for claims waiting on someone.
type ReminderSvc interface {
	// SendReminders returns how many reminders were dispatched.
	SendReminders(ctx context.Context) (int, error)
}
