package workflow

import (
	"time"

	"github.com/SscSPs/claims_app/internal/core/domain"
)

// AssignApprovers builds the approver set for a claim raised against project.
// One record for the project manager, one for the business unit leader; a slot held
// by the claimant starts Approved. When the PM and BUL are the same person a single
// record is produced to keep (claim, approver) unique.
func AssignApprovers(claimID string, project domain.Project, claimantID string, now time.Time) []domain.ClaimApprover {
	ids := []string{project.ProjectManagerID}
	if project.BusinessUnitLeaderID != project.ProjectManagerID {
		ids = append(ids, project.BusinessUnitLeaderID)
	}

	approvers := make([]domain.ClaimApprover, 0, len(ids))
	for _, id := range ids {
		approvers = append(approvers, initialDecision(domain.ClaimApprover{ClaimID: claimID, ApproverID: id}, claimantID, now))
	}
	return approvers
}

// ResetApprovers starts a new approval round on an existing approver set.
func ResetApprovers(approvers []domain.ClaimApprover, claimantID string, now time.Time) []domain.ClaimApprover {
	out := make([]domain.ClaimApprover, len(approvers))
	for i, a := range approvers {
		out[i] = initialDecision(a, claimantID, now)
	}
	return out
}

func initialDecision(a domain.ClaimApprover, claimantID string, now time.Time) domain.ClaimApprover {
	if a.ApproverID == claimantID {
		decided := now
		a.Status = domain.ApproverApproved
		a.DecidedAt = &decided
		return a
	}
	a.Status = domain.ApproverPending
	a.DecidedAt = nil
	return a
}
