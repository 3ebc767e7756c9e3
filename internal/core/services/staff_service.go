package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/claims_app/internal/apperrors"
	"github.com/SscSPs/claims_app/internal/core/domain"
	portsrepo "github.com/SscSPs/claims_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/claims_app/internal/core/ports/services"
	"github.com/SscSPs/claims_app/internal/dto"
	"github.com/SscSPs/claims_app/internal/utils"
	"github.com/google/uuid"
)

var errInvalidCredentials = apperrors.NewUnauthorizedError("invalid email or password")

type staffService struct {
	BaseService
	staffRepo portsrepo.StaffRepositoryFacade
}

// NewStaffService creates a new staff service.
func NewStaffService(staffRepo portsrepo.StaffRepositoryFacade) portssvc.StaffSvcFacade {
	return &staffService{staffRepo: staffRepo}
}

var _ portssvc.StaffSvcFacade = (*staffService)(nil)

func (s *staffService) CreateStaff(ctx context.Context, actor domain.Actor, req dto.CreateStaffRequest) (*domain.Staff, error) {
	if err := s.RequireAdmin(ctx, actor); err != nil {
		return nil, err
	}

	role, dept, err := parseRoleDepartment(req.Role, req.Department)
	if err != nil {
		return nil, err
	}

	email := normalizeEmail(req.Email)
	existing, err := s.staffRepo.FindStaffByEmail(ctx, email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check staff email")
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewConflictError("email " + email + " is already registered")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, apperrors.NewAppError(500, "failed to hash password", err)
	}

	now := time.Now().UTC()
	staff := domain.Staff{
		StaffID:      uuid.NewString(),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Department:   dept,
		Salary:       req.Salary,
		AvatarURL:    req.AvatarURL,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.StaffID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.StaffID,
		},
	}
	if err := s.staffRepo.SaveStaff(ctx, staff); err != nil {
		s.LogFailure(ctx, err, "Failed to save staff", slog.String("email", email))
		return nil, err
	}

	s.LogInfo(ctx, "Staff created", slog.String("staff_id", staff.StaffID), slog.String("role", string(role)))
	return &staff, nil
}

func (s *staffService) UpdateStaff(ctx context.Context, actor domain.Actor, staffID string, req dto.UpdateStaffRequest) (*domain.Staff, error) {
	if err := s.RequireAdmin(ctx, actor); err != nil {
		return nil, err
	}

	staff, err := s.staffRepo.FindStaffByID(ctx, staffID)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to load staff for update", slog.String("staff_id", staffID))
		return nil, err
	}

	roleName, deptName := string(staff.Role), string(staff.Department)
	if req.Role != nil {
		roleName = *req.Role
	}
	if req.Department != nil {
		deptName = *req.Department
	}
	role, dept, err := parseRoleDepartment(roleName, deptName)
	if err != nil {
		return nil, err
	}
	staff.Role, staff.Department = role, dept

	if req.Name != nil {
		staff.Name = strings.TrimSpace(*req.Name)
	}
	if req.Salary != nil {
		staff.Salary = *req.Salary
	}
	if req.AvatarURL != nil {
		staff.AvatarURL = req.AvatarURL
	}
	if req.Password != nil {
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to hash password", err)
		}
		staff.PasswordHash = hash
	}
	staff.LastUpdatedAt = time.Now().UTC()
	staff.LastUpdatedBy = actor.StaffID

	if err := s.staffRepo.UpdateStaff(ctx, *staff); err != nil {
		s.LogFailure(ctx, err, "Failed to update staff", slog.String("staff_id", staffID))
		return nil, err
	}
	return staff, nil
}

func (s *staffService) DeactivateStaff(ctx context.Context, actor domain.Actor, staffID string) error {
	if err := s.RequireAdmin(ctx, actor); err != nil {
		return err
	}
	if actor.StaffID == staffID {
		return apperrors.NewBusinessRuleError("admins cannot deactivate themselves")
	}

	staff, err := s.staffRepo.FindStaffByID(ctx, staffID)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to load staff for deactivation", slog.String("staff_id", staffID))
		return err
	}
	if !staff.IsActive {
		return nil
	}
	staff.IsActive = false
	staff.LastUpdatedAt = time.Now().UTC()
	staff.LastUpdatedBy = actor.StaffID
	if err := s.staffRepo.UpdateStaff(ctx, *staff); err != nil {
		s.LogError(ctx, err, "Failed to deactivate staff", slog.String("staff_id", staffID))
		return err
	}
	s.LogInfo(ctx, "Staff deactivated", slog.String("staff_id", staffID))
	return nil
}

func (s *staffService) GetStaffByID(ctx context.Context, actor domain.Actor, staffID string) (*domain.Staff, error) {
	if actor.StaffID != staffID && actor.Role != domain.RoleAdmin {
		return nil, apperrors.NewUnauthorizedError("staff can only view their own profile")
	}
	staff, err := s.staffRepo.FindStaffByID(ctx, staffID)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to get staff", slog.String("staff_id", staffID))
		return nil, err
	}
	return staff, nil
}

func (s *staffService) ListStaff(ctx context.Context, actor domain.Actor, params dto.ListStaffParams) ([]domain.Staff, error) {
	if err := s.RequireAdmin(ctx, actor); err != nil {
		return nil, err
	}
	filter := domain.StaffFilter{ActiveOnly: params.ActiveOnly, Limit: params.Limit, Offset: params.Offset}
	if params.Role != "" {
		role, ok := domain.ParseSystemRole(params.Role)
		if !ok {
			return nil, apperrors.NewValidationFailedError("unknown role " + params.Role)
		}
		filter.Role = &role
	}
	staff, err := s.staffRepo.FindStaff(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list staff")
		return nil, err
	}
	return staff, nil
}

func (s *staffService) AuthenticateStaff(ctx context.Context, email, password string) (*domain.Staff, error) {
	staff, err := s.staffRepo.FindStaffByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, errInvalidCredentials
		}
		s.LogError(ctx, err, "Failed to load staff for authentication")
		return nil, err
	}
	if !staff.IsActive || !utils.CheckPasswordHash(password, staff.PasswordHash) {
		s.GetLogger(ctx).Warn("Authentication failed", slog.String("staff_id", staff.StaffID))
		return nil, errInvalidCredentials
	}
	return staff, nil
}

func parseRoleDepartment(roleName, deptName string) (domain.SystemRole, domain.Department, error) {
	role, ok := domain.ParseSystemRole(roleName)
	if !ok {
		return "", "", apperrors.NewValidationFailedError("unknown role " + roleName)
	}
	dept, ok := domain.ParseDepartment(deptName)
	if !ok {
		return "", "", apperrors.NewValidationFailedError("unknown department " + deptName)
	}
	if !domain.RoleAllowsDepartment(role, dept) {
		return "", "", apperrors.NewBusinessRuleError(fmt.Sprintf("role %s cannot belong to department %s", role, dept))
	}
	return role, dept, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
