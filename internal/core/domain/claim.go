package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ClaimType classifies what a claim is reimbursing.
type ClaimType string

const (
	ClaimOvertime ClaimType = "OVERTIME"
	ClaimBonus    ClaimType = "BONUS"
	ClaimSalary   ClaimType = "SALARY"
	ClaimOther    ClaimType = "OTHER"
)

// ParseClaimType converts a symbolic claim type name (case-insensitive).
func ParseClaimType(s string) (ClaimType, bool) {
	t := ClaimType(strings.ToUpper(strings.TrimSpace(s)))
	switch t {
	case ClaimOvertime, ClaimBonus, ClaimSalary, ClaimOther:
		return t, true
	}
	return "", false
}

// ClaimStatus is the overall status of a claim. It is persisted by name.
type ClaimStatus string

const (
	ClaimDraft     ClaimStatus = "DRAFT"
	ClaimPending   ClaimStatus = "PENDING"
	ClaimApproved  ClaimStatus = "APPROVED"
	ClaimPaid      ClaimStatus = "PAID"
	ClaimRejected  ClaimStatus = "REJECTED"
	ClaimCancelled ClaimStatus = "CANCELLED"
)

// AllClaimStatuses lists every claim status in display order.
var AllClaimStatuses = []ClaimStatus{ClaimDraft, ClaimPending, ClaimApproved, ClaimRejected, ClaimPaid, ClaimCancelled}

// ParseClaimStatus converts a symbolic status name (case-insensitive).
func ParseClaimStatus(s string) (ClaimStatus, bool) {
	st := ClaimStatus(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range AllClaimStatuses {
		if st == known {
			return st, true
		}
	}
	return "", false
}

// Claim is a reimbursement request raised by a claimant.
type Claim struct {
	ClaimID           string          `json:"claimID"`
	ClaimType         ClaimType       `json:"claimType"`
	Status            ClaimStatus     `json:"status"`
	Name              string          `json:"name"`
	Remark            string          `json:"remark"`
	Amount            decimal.Decimal `json:"amount"`
	TotalWorkingHours decimal.Decimal `json:"totalWorkingHours"`
	StartDate         time.Time       `json:"startDate"`
	EndDate           time.Time       `json:"endDate"`
	ClaimerID         string          `json:"claimerID"`
	ClaimerName       string          `json:"claimerName,omitempty"`
	ClaimerEmail      string          `json:"claimerEmail,omitempty"`
	ProjectID         *string         `json:"projectID,omitempty"`
	ProjectName       *string         `json:"projectName,omitempty"`
	FinanceID         *string         `json:"financeID,omitempty"`
	Approvers         []ClaimApprover `json:"approvers"`
	AuditFields
}

// Clone returns a deep copy so callers can mutate without touching the original.
func (c Claim) Clone() Claim {
	out := c
	if c.ProjectID != nil {
		v := *c.ProjectID
		out.ProjectID = &v
	}
	if c.ProjectName != nil {
		v := *c.ProjectName
		out.ProjectName = &v
	}
	if c.FinanceID != nil {
		v := *c.FinanceID
		out.FinanceID = &v
	}
	if c.Approvers != nil {
		out.Approvers = make([]ClaimApprover, len(c.Approvers))
		for i, a := range c.Approvers {
			out.Approvers[i] = a.clone()
		}
	}
	return out
}

// ApproverFor returns the index of the approver record held by staffID, or -1.
func (c Claim) ApproverFor(staffID string) int {
	for i, a := range c.Approvers {
		if a.ApproverID == staffID {
			return i
		}
	}
	return -1
}

// IsFinance reports whether staffID is the finance member assigned to the claim.
func (c Claim) IsFinance(staffID string) bool {
	return c.FinanceID != nil && *c.FinanceID == staffID
}

// ClaimFilter narrows claim listings and status counts.
type ClaimFilter struct {
	ClaimerID       *string
	FinanceID       *string
	ApproverID      *string
	Statuses        []ClaimStatus
	ExcludeStatuses []ClaimStatus
	Created         DateRange
}
