package dto

import (
	"time"

	"github.com/SscSPs/claims_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateClaimRequest defines the data needed to open a draft claim.
type CreateClaimRequest struct {
	ClaimType         string          `json:"claimType" binding:"required,claimtype"`
	Name              string          `json:"name" binding:"required,max=200"`
	Remark            string          `json:"remark" binding:"max=2000"`
	Amount            decimal.Decimal `json:"amount"`
	TotalWorkingHours decimal.Decimal `json:"totalWorkingHours"`
	StartDate         time.Time       `json:"startDate" binding:"required"`
	EndDate           time.Time       `json:"endDate" binding:"required,gtefield=StartDate"`
	ProjectID         *string         `json:"projectID"`
}

// UpdateClaimRequest defines the fields editable on a draft claim.
// Using pointers to differentiate between omitted fields and zero-value fields;
// an empty projectID detaches the claim from its project.
type UpdateClaimRequest struct {
	ClaimType         *string          `json:"claimType" binding:"omitempty,claimtype"`
	Name              *string          `json:"name" binding:"omitempty,max=200"`
	Remark            *string          `json:"remark" binding:"omitempty,max=2000"`
	Amount            *decimal.Decimal `json:"amount"`
	TotalWorkingHours *decimal.Decimal `json:"totalWorkingHours"`
	StartDate         *time.Time       `json:"startDate"`
	EndDate           *time.Time       `json:"endDate"`
	ProjectID         *string          `json:"projectID"`
}

// ClaimActionRequest carries the reason text for reject, return and cancel.
type ClaimActionRequest struct {
	Reason string `json:"reason" binding:"max=2000"`
}

// ListClaimsParams defines query parameters for listing claims.
// Dates are YYYY-MM-DD and bound the claim creation date inclusively.
type ListClaimsParams struct {
	View      string   `form:"view,default=CLAIMER"`
	Status    []string `form:"status"`
	From      string   `form:"from"`
	To        string   `form:"to"`
	Limit     int      `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken *string  `form:"nextToken"`
}

// StatusCountParams defines query parameters for the status-count projection.
type StatusCountParams struct {
	View string `form:"view,default=CLAIMER"`
	From string `form:"from"`
	To   string `form:"to"`
}

// ClaimApproverResponse is one approver decision on a claim.
type ClaimApproverResponse struct {
	ApproverID   string     `json:"approverID"`
	ApproverName string     `json:"approverName,omitempty"`
	Status       string     `json:"status"`
	DecidedAt    *time.Time `json:"decidedAt,omitempty"`
}

// ClaimResponse defines the data returned for a claim.
type ClaimResponse struct {
	ClaimID           string                  `json:"claimID"`
	ClaimType         string                  `json:"claimType"`
	Status            string                  `json:"status"`
	Name              string                  `json:"name"`
	Remark            string                  `json:"remark"`
	Amount            decimal.Decimal         `json:"amount"`
	TotalWorkingHours decimal.Decimal         `json:"totalWorkingHours"`
	StartDate         time.Time               `json:"startDate"`
	EndDate           time.Time               `json:"endDate"`
	ClaimerID         string                  `json:"claimerID"`
	ClaimerName       string                  `json:"claimerName,omitempty"`
	ProjectID         *string                 `json:"projectID,omitempty"`
	ProjectName       *string                 `json:"projectName,omitempty"`
	FinanceID         *string                 `json:"financeID,omitempty"`
	Approvers         []ClaimApproverResponse `json:"approvers"`
	CreatedAt         time.Time               `json:"createdAt"`
	LastUpdatedAt     time.Time               `json:"lastUpdatedAt"`
}

// ListClaimsResponse wraps one page of claims.
type ListClaimsResponse struct {
	Claims    []ClaimResponse `json:"claims"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ChangeLogResponse is one audit trail entry.
type ChangeLogResponse struct {
	ChangeLogID string    `json:"changeLogID"`
	Message     string    `json:"message"`
	ChangedBy   string    `json:"changedBy"`
	ChangedAt   time.Time `json:"changedAt"`
}

// ToClaimResponse converts a domain.Claim to ClaimResponse DTO.
func ToClaimResponse(c *domain.Claim) ClaimResponse {
	approvers := make([]ClaimApproverResponse, len(c.Approvers))
	for i, a := range c.Approvers {
		approvers[i] = ClaimApproverResponse{
			ApproverID:   a.ApproverID,
			ApproverName: a.ApproverName,
			Status:       string(a.Status),
			DecidedAt:    a.DecidedAt,
		}
	}
	return ClaimResponse{
		ClaimID:           c.ClaimID,
		ClaimType:         string(c.ClaimType),
		Status:            string(c.Status),
		Name:              c.Name,
		Remark:            c.Remark,
		Amount:            c.Amount,
		TotalWorkingHours: c.TotalWorkingHours,
		StartDate:         c.StartDate,
		EndDate:           c.EndDate,
		ClaimerID:         c.ClaimerID,
		ClaimerName:       c.ClaimerName,
		ProjectID:         c.ProjectID,
		ProjectName:       c.ProjectName,
		FinanceID:         c.FinanceID,
		Approvers:         approvers,
		CreatedAt:         c.CreatedAt,
		LastUpdatedAt:     c.LastUpdatedAt,
	}
}

// ToListClaimsResponse converts a page of claims to ListClaimsResponse DTO.
func ToListClaimsResponse(claims []domain.Claim, nextToken *string) ListClaimsResponse {
	out := make([]ClaimResponse, len(claims))
	for i := range claims {
		out[i] = ToClaimResponse(&claims[i])
	}
	return ListClaimsResponse{Claims: out, NextToken: nextToken}
}

// ToChangeLogResponses converts change log entries to their DTOs.
func ToChangeLogResponses(logs []domain.ClaimChangeLog) []ChangeLogResponse {
	out := make([]ChangeLogResponse, len(logs))
	for i, l := range logs {
		out[i] = ChangeLogResponse{
			ChangeLogID: l.ChangeLogID,
			Message:     l.Message,
			ChangedBy:   l.ChangedBy,
			ChangedAt:   l.ChangedAt,
		}
	}
	return out
}
