package repositories

import (
	"context"

	"github.com/SscSPs/claims_app/internal/core/domain"
)

// ClaimReader defines read operations for claims. Reads run outside any claim
// transaction and see committed state only.
type ClaimReader interface {
	// FindClaimByID loads a claim with its approvers, claimant and project names.
	FindClaimByID(ctx context.Context, claimID string) (*domain.Claim, error)

	// ListClaims returns one page of claims matching filter, newest first, and the
	// token for the following page (nil on the last page).
	ListClaims(ctx context.Context, filter domain.ClaimFilter, limit int, nextToken *string) ([]domain.Claim, *string, error)

	// ListChangeLogs returns a claim's audit trail, oldest first.
	ListChangeLogs(ctx context.Context, claimID string) ([]domain.ClaimChangeLog, error)
}

// ClaimCounter defines the aggregate queries behind status counts.
type ClaimCounter interface {
	// CountClaimsByStatus counts claims matching filter grouped by overall status.
	CountClaimsByStatus(ctx context.Context, filter domain.ClaimFilter) (map[domain.ClaimStatus]int, error)

	// CountApproverDecisions counts approverID's own decisions grouped by decision,
	// over claims whose status is not in excluded and that fall inside created.
	CountApproverDecisions(ctx context.Context, approverID string, excluded []domain.ClaimStatus, created domain.DateRange) (map[domain.ApproverStatus]int, error)
}

// ClaimTxRepository is the view of the store available inside a claim transaction.
// Every method runs on the same underlying transaction.
type ClaimTxRepository interface {
	// FindClaimForUpdate loads a claim and its approver rows and locks them until the
	// transaction ends.
	FindClaimForUpdate(ctx context.Context, claimID string) (*domain.Claim, error)

	// FindProjectByID loads a project with its roster.
	FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error)

	// ListFinanceStaff lists active staff holding the Finance role.
	ListFinanceStaff(ctx context.Context) ([]domain.Staff, error)

	InsertClaim(ctx context.Context, claim domain.Claim) error
	UpdateClaim(ctx context.Context, claim domain.Claim) error

	// ReplaceApprovers replaces the claim's whole approver set.
	ReplaceApprovers(ctx context.Context, claimID string, approvers []domain.ClaimApprover) error

	InsertChangeLog(ctx context.Context, entry domain.ClaimChangeLog) error
}

// ClaimWriter runs claim mutations atomically.
type ClaimWriter interface {
	// RunInTx executes fn inside one transaction. The transaction commits when fn
	// returns nil and rolls back otherwise.
	RunInTx(ctx context.Context, fn func(ctx context.Context, tx ClaimTxRepository) error) error
}

// ClaimRepositoryFacade combines all claim-related repository interfaces
type ClaimRepositoryFacade interface {
	ClaimReader
	ClaimCounter
	ClaimWriter
}
