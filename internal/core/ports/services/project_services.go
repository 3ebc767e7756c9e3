package services

import (
	"context"

	"github.com/SscSPs/claims_app/internal/core/domain"
	"github.com/SscSPs/claims_app/internal/dto"
)

// ProjectReaderSvc defines read operations for projects.
type ProjectReaderSvc interface {
	GetProject(ctx context.Context, projectID string) (*domain.Project, error)
	ListProjects(ctx context.Context, params dto.ListProjectsParams) ([]domain.Project, error)
	IsMember(ctx context.Context, projectID, staffID string) (bool, error)
}

// ProjectWriterSvc defines write operations for projects. Admin only.
type ProjectWriterSvc interface {
	CreateProject(ctx context.Context, actor domain.Actor, req dto.CreateProjectRequest) (*domain.Project, error)
	AssignStaff(ctx context.Context, actor domain.Actor, projectID string, req dto.AssignProjectStaffRequest) (*domain.Project, error)
	RemoveStaff(ctx context.Context, actor domain.Actor, projectID, staffID string) error
}

// ProjectSvcFacade combines all project-related service interfaces
type ProjectSvcFacade interface {
	ProjectReaderSvc
	ProjectWriterSvc
}
