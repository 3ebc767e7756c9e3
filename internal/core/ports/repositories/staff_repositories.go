package repositories

import (
	"context"

	"github.com/SscSPs/claims_app/internal/core/domain"
)

// StaffReader defines read operations for staff data
type StaffReader interface {
	// FindStaffByID retrieves a staff member by ID, active or not.
	FindStaffByID(ctx context.Context, staffID string) (*domain.Staff, error)

	// FindStaffByEmail retrieves a staff member by their (unique) email.
	FindStaffByEmail(ctx context.Context, email string) (*domain.Staff, error)

	// FindStaff retrieves a page of staff matching filter.
	FindStaff(ctx context.Context, filter domain.StaffFilter) ([]domain.Staff, error)
}

// StaffWriter defines write operations for staff data
type StaffWriter interface {
	// SaveStaff persists a new staff member. A taken email yields ErrDuplicate.
	SaveStaff(ctx context.Context, staff domain.Staff) error

	// UpdateStaff updates an existing staff member's details.
	UpdateStaff(ctx context.Context, staff domain.Staff) error
}

// StaffRepositoryFacade combines all staff-related repository interfaces
type StaffRepositoryFacade interface {
	StaffReader
	StaffWriter
}
