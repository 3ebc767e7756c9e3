package workflow

import "github.com/SscSPs/claims_app/internal/core/domain"

// OverallStatus derives a claim's status from the current round of approver decisions.
//
// Approved is checked before Returned and Rejected, so the caller must pass only the
// decisions of the current round. An empty set yields Pending.
func OverallStatus(decisions []domain.ApproverStatus) domain.ClaimStatus {
	if len(decisions) == 0 {
		return domain.ClaimPending
	}

	allApproved := true
	anyReturned := false
	anyRejected := false
	for _, d := range decisions {
		switch d {
		case domain.ApproverApproved:
		case domain.ApproverReturned:
			anyReturned = true
			allApproved = false
		case domain.ApproverRejected:
			anyRejected = true
			allApproved = false
		default:
			allApproved = false
		}
	}

	switch {
	case allApproved:
		return domain.ClaimApproved
	case anyReturned:
		return domain.ClaimPending
	case anyRejected:
		return domain.ClaimRejected
	default:
		return domain.ClaimPending
	}
}
