package services

import (
	"context"

	"github.com/SscSPs/claims_app/internal/core/domain"
	"github.com/SscSPs/claims_app/internal/dto"
)

// StaffReaderSvc defines read operations for staff data
type StaffReaderSvc interface {
	// GetStaffByID retrieves a staff member by ID.
	GetStaffByID(ctx context.Context, actor domain.Actor, staffID string) (*domain.Staff, error)

	// ListStaff retrieves a paginated list of staff.
	ListStaff(ctx context.Context, actor domain.Actor, params dto.ListStaffParams) ([]domain.Staff, error)
}

// StaffWriterSvc defines write operations for staff data. Admin only.
type StaffWriterSvc interface {
	CreateStaff(ctx context.Context, actor domain.Actor, req dto.CreateStaffRequest) (*domain.Staff, error)
	UpdateStaff(ctx context.Context, actor domain.Actor, staffID string, req dto.UpdateStaffRequest) (*domain.Staff, error)
	DeactivateStaff(ctx context.Context, actor domain.Actor, staffID string) error
}

// StaffAuthSvc defines operations for staff authentication
type StaffAuthSvc interface {
	// AuthenticateStaff checks email and password of an active staff member.
	AuthenticateStaff(ctx context.Context, email, password string) (*domain.Staff, error)
}

// StaffSvcFacade combines all staff-related service interfaces
type StaffSvcFacade interface {
	StaffReaderSvc
	StaffWriterSvc
	StaffAuthSvc
}
