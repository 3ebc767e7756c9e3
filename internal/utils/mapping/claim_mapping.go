package mapping

import (
	"github.com/SscSPs/claims_app/internal/core/domain"
	"github.com/SscSPs/claims_app/internal/models"
)

// ToModelClaim converts a domain Claim to a model Claim. Approvers are mapped
// separately with ToModelClaimApprovers.
func ToModelClaim(d domain.Claim) models.Claim {
	return models.Claim{
		ClaimID:           d.ClaimID,
		ClaimType:         string(d.ClaimType),
		Status:            string(d.Status),
		Name:              d.Name,
		Remark:            d.Remark,
		Amount:            d.Amount,
		TotalWorkingHours: d.TotalWorkingHours,
		StartDate:         d.StartDate,
		EndDate:           d.EndDate,
		ClaimerID:         d.ClaimerID,
		ClaimerName:       d.ClaimerName,
		ClaimerEmail:      d.ClaimerEmail,
		ProjectID:         d.ProjectID,
		ProjectName:       d.ProjectName,
		FinanceID:         d.FinanceID,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainClaim converts a model Claim and its approver rows to a domain Claim
func ToDomainClaim(m models.Claim, approvers []models.ClaimApprover) domain.Claim {
	out := make([]domain.ClaimApprover, len(approvers))
	for i, a := range approvers {
		out[i] = domain.ClaimApprover{
			ClaimID:      a.ClaimID,
			ApproverID:   a.ApproverID,
			ApproverName: a.ApproverName,
			Status:       domain.ApproverStatus(a.Status),
			DecidedAt:    a.DecidedAt,
		}
	}
	return domain.Claim{
		ClaimID:           m.ClaimID,
		ClaimType:         domain.ClaimType(m.ClaimType),
		Status:            domain.ClaimStatus(m.Status),
		Name:              m.Name,
		Remark:            m.Remark,
		Amount:            m.Amount,
		TotalWorkingHours: m.TotalWorkingHours,
		StartDate:         m.StartDate,
		EndDate:           m.EndDate,
		ClaimerID:         m.ClaimerID,
		ClaimerName:       m.ClaimerName,
		ClaimerEmail:      m.ClaimerEmail,
		ProjectID:         m.ProjectID,
		ProjectName:       m.ProjectName,
		FinanceID:         m.FinanceID,
		Approvers:         out,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelClaimApprovers converts approver records, keeping their order as position.
func ToModelClaimApprovers(claimID string, ds []domain.ClaimApprover) []models.ClaimApprover {
	out := make([]models.ClaimApprover, len(ds))
	for i, d := range ds {
		out[i] = models.ClaimApprover{
			ClaimID:    claimID,
			ApproverID: d.ApproverID,
			Position:   i,
			Status:     string(d.Status),
			DecidedAt:  d.DecidedAt,
		}
	}
	return out
}

func ToModelChangeLog(d domain.ClaimChangeLog) models.ClaimChangeLog {
	return models.ClaimChangeLog(d)
}

func ToDomainChangeLog(m models.ClaimChangeLog) domain.ClaimChangeLog {
	return domain.ClaimChangeLog(m)
}
