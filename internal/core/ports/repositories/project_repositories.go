package repositories

import (
	"context"

	"github.com/SscSPs/claims_app/internal/core/domain"
)

// ProjectReader defines read operations for projects and their rosters.
type ProjectReader interface {
	// FindProjectByID loads a project together with its staff roster.
	FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error)

	// ListProjects retrieves a page of projects without rosters.
	ListProjects(ctx context.Context, limit, offset int) ([]domain.Project, error)

	// IsMember reports whether staffID is on the roster, or is the PM or BUL.
	IsMember(ctx context.Context, projectID, staffID string) (bool, error)
}

// ProjectWriter defines write operations for projects.
type ProjectWriter interface {
	SaveProject(ctx context.Context, project domain.Project) error
	AddProjectStaff(ctx context.Context, assignment domain.ProjectStaff) error
	RemoveProjectStaff(ctx context.Context, projectID, staffID string) error
}

// ProjectRepositoryFacade combines all project-related repository interfaces
type ProjectRepositoryFacade interface {
	ProjectReader
	ProjectWriter
}
