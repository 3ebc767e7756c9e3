package domain

import "strings"

// ViewMode is the role-scoped lens under which claims are listed and counted.
type ViewMode string

const (
	ViewClaimer  ViewMode = "CLAIMER"
	ViewApprover ViewMode = "APPROVER"
	ViewFinance  ViewMode = "FINANCE"
	ViewAdmin    ViewMode = "ADMIN"
)

// ParseViewMode converts a view mode name (case-insensitive).
func ParseViewMode(s string) (ViewMode, bool) {
	m := ViewMode(strings.ToUpper(strings.TrimSpace(s)))
	switch m {
	case ViewClaimer, ViewApprover, ViewFinance, ViewAdmin:
		return m, true
	}
	return "", false
}
