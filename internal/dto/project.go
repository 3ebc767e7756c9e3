package dto

import (
	"time"

	"github.com/SscSPs/claims_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateProjectRequest defines the data needed to create a project.
type CreateProjectRequest struct {
	Name                 string          `json:"name" binding:"required,max=200"`
	Code                 string          `json:"code" binding:"required,max=50"`
	StartDate            time.Time       `json:"startDate" binding:"required"`
	EndDate              *time.Time      `json:"endDate"`
	Budget               decimal.Decimal `json:"budget"`
	Status               string          `json:"status" binding:"omitempty,oneof=PLANNING IN_PROGRESS COMPLETED ON_HOLD"`
	ProjectManagerID     string          `json:"projectManagerID" binding:"required"`
	BusinessUnitLeaderID string          `json:"businessUnitLeaderID" binding:"required"`
}

// AssignProjectStaffRequest adds a staff member to a project roster.
type AssignProjectStaffRequest struct {
	StaffID string `json:"staffID" binding:"required"`
	Role    string `json:"role" binding:"required,oneof=DEVELOPER TESTER DESIGNER ANALYST"`
}

// ListProjectsParams defines query parameters for listing projects.
type ListProjectsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ProjectStaffResponse is one roster entry.
type ProjectStaffResponse struct {
	StaffID    string    `json:"staffID"`
	StaffName  string    `json:"staffName,omitempty"`
	Role       string    `json:"role"`
	AssignedAt time.Time `json:"assignedAt"`
}

// ProjectResponse defines the data returned for a project.
type ProjectResponse struct {
	ProjectID            string                 `json:"projectID"`
	Name                 string                 `json:"name"`
	Code                 string                 `json:"code"`
	StartDate            time.Time              `json:"startDate"`
	EndDate              *time.Time             `json:"endDate,omitempty"`
	Budget               decimal.Decimal        `json:"budget"`
	Status               string                 `json:"status"`
	ProjectManagerID     string                 `json:"projectManagerID"`
	BusinessUnitLeaderID string                 `json:"businessUnitLeaderID"`
	Staff                []ProjectStaffResponse `json:"staff"`
}

// ListProjectsResponse wraps the list of projects.
type ListProjectsResponse struct {
	Projects []ProjectResponse `json:"projects"`
}

// ToProjectResponse converts a domain.Project to ProjectResponse DTO
func ToProjectResponse(p *domain.Project) ProjectResponse {
	staff := make([]ProjectStaffResponse, len(p.Staff))
	for i, s := range p.Staff {
		staff[i] = ProjectStaffResponse{
			StaffID:    s.StaffID,
			StaffName:  s.StaffName,
			Role:       string(s.Role),
			AssignedAt: s.AssignedAt,
		}
	}
	return ProjectResponse{
		ProjectID:            p.ProjectID,
		Name:                 p.Name,
		Code:                 p.Code,
		StartDate:            p.StartDate,
		EndDate:              p.EndDate,
		Budget:               p.Budget,
		Status:               string(p.Status),
		ProjectManagerID:     p.ProjectManagerID,
		BusinessUnitLeaderID: p.BusinessUnitLeaderID,
		Staff:                staff,
	}
}

// ToListProjectsResponse converts a slice of domain.Project to ListProjectsResponse DTO
func ToListProjectsResponse(projects []domain.Project) ListProjectsResponse {
	out := make([]ProjectResponse, len(projects))
	for i := range projects {
		out[i] = ToProjectResponse(&projects[i])
	}
	return ListProjectsResponse{Projects: out}
}
