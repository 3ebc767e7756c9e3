package domain

import "time"

// ClaimChangeLog is an append-only audit entry, one per state-changing action.
type ClaimChangeLog struct {
	ChangeLogID string    `json:"changeLogID"`
	ClaimID     string    `json:"claimID"`
	Message     string    `json:"message"`
	ChangedBy   string    `json:"changedBy"` // actor email
	ChangedAt   time.Time `json:"changedAt"`
}
