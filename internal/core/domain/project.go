package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProjectStatus tracks where a project is in its own lifecycle.
type ProjectStatus string

const (
	ProjectPlanning   ProjectStatus = "PLANNING"
	ProjectInProgress ProjectStatus = "IN_PROGRESS"
	ProjectCompleted  ProjectStatus = "COMPLETED"
	ProjectOnHold     ProjectStatus = "ON_HOLD"
)

// ProjectRole is the per-assignment role of a staff member on a project roster.
type ProjectRole string

const (
	ProjectRoleDeveloper ProjectRole = "DEVELOPER"
	ProjectRoleTester    ProjectRole = "TESTER"
	ProjectRoleDesigner  ProjectRole = "DESIGNER"
	ProjectRoleAnalyst   ProjectRole = "ANALYST"
)

// Project owns exactly one project manager and one business unit leader.
type Project struct {
	ProjectID            string          `json:"projectID"`
	Name                 string          `json:"name"`
	Code                 string          `json:"code"`
	StartDate            time.Time       `json:"startDate"`
	EndDate              *time.Time      `json:"endDate,omitempty"`
	Budget               decimal.Decimal `json:"budget"`
	Status               ProjectStatus   `json:"status"`
	ProjectManagerID     string          `json:"projectManagerID"`
	BusinessUnitLeaderID string          `json:"businessUnitLeaderID"`
	Staff                []ProjectStaff  `json:"staff,omitempty"`
	AuditFields
}

// ProjectStaff is one roster entry of a project.
type ProjectStaff struct {
	ProjectID  string      `json:"projectID"`
	StaffID    string      `json:"staffID"`
	StaffName  string      `json:"staffName"`
	Role       ProjectRole `json:"role"`
	AssignedAt time.Time   `json:"assignedAt"`
}

// HasMember reports whether staffID is the PM, the BUL, or on the roster.
func (p Project) HasMember(staffID string) bool {
	if p.ProjectManagerID == staffID || p.BusinessUnitLeaderID == staffID {
		return true
	}
	for _, s := range p.Staff {
		if s.StaffID == staffID {
			return true
		}
	}
	return false
}
