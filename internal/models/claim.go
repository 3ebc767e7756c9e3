package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Claim is a row of the claims table, joined with claimant and project names.
type Claim struct {
	ClaimID           string          `db:"claim_id"`
	ClaimType         string          `db:"claim_type"`
	Status            string          `db:"status"`
	Name              string          `db:"name"`
	Remark            string          `db:"remark"`
	Amount            decimal.Decimal `db:"amount"`
	TotalWorkingHours decimal.Decimal `db:"total_working_hours"`
	StartDate         time.Time       `db:"start_date"`
	EndDate           time.Time       `db:"end_date"`
	ClaimerID         string          `db:"claimer_id"`
	ClaimerName       string          `db:"claimer_name"`
	ClaimerEmail      string          `db:"claimer_email"`
	ProjectID         *string         `db:"project_id"`
	ProjectName       *string         `db:"project_name"`
	FinanceID         *string         `db:"finance_id"`
	AuditFields
}

// ClaimApprover is a row of the claim_approvers table. Position keeps the
// project manager ahead of the business unit leader.
type ClaimApprover struct {
	ClaimID      string     `db:"claim_id"`
	ApproverID   string     `db:"approver_id"`
	ApproverName string     `db:"approver_name"`
	Position     int        `db:"position"`
	Status       string     `db:"status"`
	DecidedAt    *time.Time `db:"decided_at"`
}

// ClaimChangeLog is a row of the append-only claim_change_logs table.
type ClaimChangeLog struct {
	ChangeLogID string    `db:"change_log_id"`
	ClaimID     string    `db:"claim_id"`
	Message     string    `db:"message"`
	ChangedBy   string    `db:"changed_by"`
	ChangedAt   time.Time `db:"changed_at"`
}
