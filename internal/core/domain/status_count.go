package domain

// ClaimStatusCount buckets claims by overall status.
type ClaimStatusCount struct {
	Draft     int `json:"draft"`
	Pending   int `json:"pending"`
	Approved  int `json:"approved"`
	Rejected  int `json:"rejected"`
	Paid      int `json:"paid"`
	Cancelled int `json:"cancelled"`
	Total     int `json:"total"`
}

// NewClaimStatusCount folds raw per-status counts into buckets.
func NewClaimStatusCount(raw map[ClaimStatus]int) ClaimStatusCount {
	var c ClaimStatusCount
	for status, n := range raw {
		switch status {
		case ClaimDraft:
			c.Draft += n
		case ClaimPending:
			c.Pending += n
		case ClaimApproved:
			c.Approved += n
		case ClaimRejected:
			c.Rejected += n
		case ClaimPaid:
			c.Paid += n
		case ClaimCancelled:
			c.Cancelled += n
		default:
			continue
		}
		c.Total += n
	}
	return c
}

// ApproverStatusCount buckets an approver's own decisions.
type ApproverStatusCount struct {
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
	Total    int `json:"total"`
}

// NewApproverStatusCount folds raw per-decision counts into buckets.
// Returned decisions are not a bucket of their own and are left out.
func NewApproverStatusCount(raw map[ApproverStatus]int) ApproverStatusCount {
	var c ApproverStatusCount
	for status, n := range raw {
		switch status {
		case ApproverPending:
			c.Pending += n
		case ApproverApproved:
			c.Approved += n
		case ApproverRejected:
			c.Rejected += n
		default:
			continue
		}
		c.Total += n
	}
	return c
}

// StatusCounts is the result of a status-count query. Exactly one of the two
// projections is set depending on the view mode.
type StatusCounts struct {
	ViewMode ViewMode             `json:"viewMode"`
	Claims   *ClaimStatusCount    `json:"claims,omitempty"`
	Approver *ApproverStatusCount `json:"approver,omitempty"`
}
