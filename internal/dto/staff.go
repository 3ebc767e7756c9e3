package dto

import (
	"time"

	"github.com/SscSPs/claims_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateStaffRequest defines the data needed to register a staff member.
type CreateStaffRequest struct {
	Name       string          `json:"name" binding:"required,max=200"`
	Email      string          `json:"email" binding:"required,email"`
	Password   string          `json:"password" binding:"required,min=8"`
	Role       string          `json:"role" binding:"required,oneof=APPROVER STAFF FINANCE ADMIN"`
	Department string          `json:"department" binding:"required,oneof=FINANCE ENGINEERING PROJECT_MANAGEMENT BUSINESS_UNIT_LEADER"`
	Salary     decimal.Decimal `json:"salary"`
	AvatarURL  *string         `json:"avatarURL" binding:"omitempty,url"`
}

// UpdateStaffRequest defines the data allowed for updating a staff member.
type UpdateStaffRequest struct {
	Name       *string          `json:"name" binding:"omitempty,max=200"`
	Role       *string          `json:"role" binding:"omitempty,oneof=APPROVER STAFF FINANCE ADMIN"`
	Department *string          `json:"department" binding:"omitempty,oneof=FINANCE ENGINEERING PROJECT_MANAGEMENT BUSINESS_UNIT_LEADER"`
	Salary     *decimal.Decimal `json:"salary"`
	AvatarURL  *string          `json:"avatarURL" binding:"omitempty,url"`
	Password   *string          `json:"password" binding:"omitempty,min=8"`
}

// ListStaffParams defines query parameters for listing staff.
type ListStaffParams struct {
	Role       string `form:"role"`
	ActiveOnly bool   `form:"activeOnly,default=true"`
	Limit      int    `form:"limit,default=20"`
	Offset     int    `form:"offset,default=0"`
}

// StaffResponse defines the data returned for a staff member. Credentials never leave the service.
type StaffResponse struct {
	StaffID    string          `json:"staffID"`
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	Role       string          `json:"role"`
	Department string          `json:"department"`
	Salary     decimal.Decimal `json:"salary"`
	AvatarURL  *string         `json:"avatarURL,omitempty"`
	IsActive   bool            `json:"isActive"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// ListStaffResponse wraps the list of staff.
type ListStaffResponse struct {
	Staff []StaffResponse `json:"staff"`
}

// ToStaffResponse converts a domain.Staff to StaffResponse DTO
func ToStaffResponse(s *domain.Staff) StaffResponse {
	return StaffResponse{
		StaffID:    s.StaffID,
		Name:       s.Name,
		Email:      s.Email,
		Role:       string(s.Role),
		Department: string(s.Department),
		Salary:     s.Salary,
		AvatarURL:  s.AvatarURL,
		IsActive:   s.IsActive,
		CreatedAt:  s.CreatedAt,
	}
}

// ToListStaffResponse converts a slice of domain.Staff to ListStaffResponse DTO
func ToListStaffResponse(staff []domain.Staff) ListStaffResponse {
	out := make([]StaffResponse, len(staff))
	for i := range staff {
		out[i] = ToStaffResponse(&staff[i])
	}
	return ListStaffResponse{Staff: out}
}
