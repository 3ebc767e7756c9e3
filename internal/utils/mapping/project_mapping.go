package mapping

import (
	"github.com/SscSPs/claims_app/internal/core/domain"
	"github.com/SscSPs/claims_app/internal/models"
)

// ToModelProject converts a domain Project to a model Project. The roster is
// stored separately.
func ToModelProject(d domain.Project) models.Project {
	return models.Project{
		ProjectID:            d.ProjectID,
		Name:                 d.Name,
		Code:                 d.Code,
		StartDate:            d.StartDate,
		EndDate:              d.EndDate,
		Budget:               d.Budget,
		Status:               string(d.Status),
		ProjectManagerID:     d.ProjectManagerID,
		BusinessUnitLeaderID: d.BusinessUnitLeaderID,
		AuditFields:          ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainProject converts a model Project and its roster to a domain Project
func ToDomainProject(m models.Project, roster []models.ProjectStaff) domain.Project {
	staff := make([]domain.ProjectStaff, len(roster))
	for i, r := range roster {
		staff[i] = ToDomainProjectStaff(r)
	}
	return domain.Project{
		ProjectID:            m.ProjectID,
		Name:                 m.Name,
		Code:                 m.Code,
		StartDate:            m.StartDate,
		EndDate:              m.EndDate,
		Budget:               m.Budget,
		Status:               domain.ProjectStatus(m.Status),
		ProjectManagerID:     m.ProjectManagerID,
		BusinessUnitLeaderID: m.BusinessUnitLeaderID,
		Staff:                staff,
		AuditFields:          ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainProjectStaff(m models.ProjectStaff) domain.ProjectStaff {
	return domain.ProjectStaff{
		ProjectID:  m.ProjectID,
		StaffID:    m.StaffID,
		StaffName:  m.StaffName,
		Role:       domain.ProjectRole(m.Role),
		AssignedAt: m.AssignedAt,
	}
}
