package domain

import "time"

// ApproverStatus is one approver's decision on one claim.
type ApproverStatus string

const (
	ApproverPending  ApproverStatus = "PENDING"
	ApproverApproved ApproverStatus = "APPROVED"
	ApproverReturned ApproverStatus = "RETURNED"
	ApproverRejected ApproverStatus = "REJECTED"
)

// ClaimApprover is keyed by (ClaimID, ApproverID).
type ClaimApprover struct {
	ClaimID      string         `json:"claimID"`
	ApproverID   string         `json:"approverID"`
	ApproverName string         `json:"approverName,omitempty"`
	Status       ApproverStatus `json:"status"`
	DecidedAt    *time.Time     `json:"decidedAt,omitempty"`
}

func (a ClaimApprover) clone() ClaimApprover {
	out := a
	if a.DecidedAt != nil {
		t := *a.DecidedAt
		out.DecidedAt = &t
	}
	return out
}

// Decisions extracts the decision multiset from a set of approver records.
func Decisions(approvers []ClaimApprover) []ApproverStatus {
	out := make([]ApproverStatus, len(approvers))
	for i, a := range approvers {
		out[i] = a.Status
	}
	return out
}
