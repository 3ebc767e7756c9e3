package domain

// Actor is the authenticated staff member performing an operation.
// It is passed explicitly into every claim operation.
type Actor struct {
	StaffID string
	Role    SystemRole
	Email   string
}
