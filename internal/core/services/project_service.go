package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/claims_app/internal/apperrors"
	"github.com/SscSPs/claims_app/internal/core/domain"
	portsrepo "github.com/SscSPs/claims_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/claims_app/internal/core/ports/services"
	"github.com/SscSPs/claims_app/internal/dto"
	"github.com/google/uuid"
)

type projectService struct {
	BaseService
	projectRepo portsrepo.ProjectRepositoryFacade
	staffRepo   portsrepo.StaffReader
}

// NewProjectService creates a new project service. Staff are read to check the
// PM and BUL and roster candidates.
func NewProjectService(projectRepo portsrepo.ProjectRepositoryFacade, staffRepo portsrepo.StaffReader) portssvc.ProjectSvcFacade {
	return &projectService{projectRepo: projectRepo, staffRepo: staffRepo}
}

var _ portssvc.ProjectSvcFacade = (*projectService)(nil)

func (s *projectService) CreateProject(ctx context.Context, actor domain.Actor, req dto.CreateProjectRequest) (*domain.Project, error) {
	if err := s.RequireAdmin(ctx, actor); err != nil {
		return nil, err
	}
	if req.EndDate != nil && req.StartDate.After(*req.EndDate) {
		return nil, apperrors.NewValidationFailedError("project start date must not be after its end date")
	}
	status := domain.ProjectPlanning
	if req.Status != "" {
		status = domain.ProjectStatus(strings.ToUpper(req.Status))
	}

	if err := s.requireLead(ctx, req.ProjectManagerID, domain.DepartmentProjectManagement); err != nil {
		return nil, err
	}
	if err := s.requireLead(ctx, req.BusinessUnitLeaderID, domain.DepartmentBusinessUnitLeader); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	project := domain.Project{
		ProjectID:            uuid.NewString(),
		Name:                 strings.TrimSpace(req.Name),
		Code:                 strings.TrimSpace(req.Code),
		StartDate:            req.StartDate,
		EndDate:              req.EndDate,
		Budget:               req.Budget,
		Status:               status,
		ProjectManagerID:     req.ProjectManagerID,
		BusinessUnitLeaderID: req.BusinessUnitLeaderID,
		Staff:                []domain.ProjectStaff{},
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.StaffID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.StaffID,
		},
	}
	if err := s.projectRepo.SaveProject(ctx, project); err != nil {
		s.LogFailure(ctx, err, "Failed to save project", slog.String("code", project.Code))
		return nil, err
	}
	s.LogInfo(ctx, "Project created", slog.String("project_id", project.ProjectID))
	return &project, nil
}

// requireLead checks staffID is an active Approver placed in dept.
func (s *projectService) requireLead(ctx context.Context, staffID string, dept domain.Department) error {
	staff, err := s.staffRepo.FindStaffByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("staff " + staffID + " not found")
		}
		return err
	}
	if !staff.IsActive {
		return apperrors.NewNotFoundError("staff " + staffID + " is inactive")
	}
	if staff.Role != domain.RoleApprover || staff.Department != dept {
		return apperrors.NewBusinessRuleError("staff " + staffID + " must be an approver in department " + string(dept))
	}
	return nil
}

func (s *projectService) AssignStaff(ctx context.Context, actor domain.Actor, projectID string, req dto.AssignProjectStaffRequest) (*domain.Project, error) {
	if err := s.RequireAdmin(ctx, actor); err != nil {
		return nil, err
	}
	project, err := s.projectRepo.FindProjectByID(ctx, projectID)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to load project", slog.String("project_id", projectID))
		return nil, err
	}
	staff, err := s.staffRepo.FindStaffByID(ctx, req.StaffID)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to load staff for assignment", slog.String("staff_id", req.StaffID))
		return nil, err
	}
	if !staff.IsActive {
		return nil, apperrors.NewNotFoundError("staff " + req.StaffID + " is inactive")
	}
	if project.HasMember(req.StaffID) {
		return nil, apperrors.NewConflictError("staff " + req.StaffID + " is already a member of project " + projectID)
	}

	assignment := domain.ProjectStaff{
		ProjectID:  projectID,
		StaffID:    staff.StaffID,
		StaffName:  staff.Name,
		Role:       domain.ProjectRole(strings.ToUpper(req.Role)),
		AssignedAt: time.Now().UTC(),
	}
	if err := s.projectRepo.AddProjectStaff(ctx, assignment); err != nil {
		s.LogFailure(ctx, err, "Failed to assign staff", slog.String("project_id", projectID))
		return nil, err
	}
	project.Staff = append(project.Staff, assignment)
	return project, nil
}

func (s *projectService) RemoveStaff(ctx context.Context, actor domain.Actor, projectID, staffID string) error {
	if err := s.RequireAdmin(ctx, actor); err != nil {
		return err
	}
	if err := s.projectRepo.RemoveProjectStaff(ctx, projectID, staffID); err != nil {
		s.LogFailure(ctx, err, "Failed to remove staff from project",
			slog.String("project_id", projectID), slog.String("staff_id", staffID))
		return err
	}
	return nil
}

func (s *projectService) GetProject(ctx context.Context, projectID string) (*domain.Project, error) {
	project, err := s.projectRepo.FindProjectByID(ctx, projectID)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to get project", slog.String("project_id", projectID))
		return nil, err
	}
	return project, nil
}

func (s *projectService) ListProjects(ctx context.Context, params dto.ListProjectsParams) ([]domain.Project, error) {
	projects, err := s.projectRepo.ListProjects(ctx, params.Limit, params.Offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list projects")
		return nil, err
	}
	return projects, nil
}

func (s *projectService) IsMember(ctx context.Context, projectID, staffID string) (bool, error) {
	return s.projectRepo.IsMember(ctx, projectID, staffID)
}
