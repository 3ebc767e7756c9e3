package domain

// NotificationKind names the email template a claim event should trigger.
type NotificationKind string

const (
	NotifyClaimSubmitted  NotificationKind = "CLAIM_SUBMITTED"
	NotifyClaimReturned   NotificationKind = "CLAIM_RETURNED"
	NotifyManagerApproved NotificationKind = "MANAGER_APPROVED"
	NotifyClaimApproved   NotificationKind = "CLAIM_APPROVED"
)

// Notification is queued by a claim transition and dispatched after commit.
type Notification struct {
	ClaimID string           `json:"claimId"`
	Kind    NotificationKind `json:"kind"`
}
