package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/claims_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stringPtr(s string) *string {
	return &s
}

func TestRoleAllowsDepartment(t *testing.T) {
	tests := []struct {
		role domain.SystemRole
		dept domain.Department
		want bool
	}{
		{domain.RoleFinance, domain.DepartmentFinance, true},
		{domain.RoleFinance, domain.DepartmentEngineering, false},
		{domain.RoleApprover, domain.DepartmentProjectManagement, true},
		{domain.RoleApprover, domain.DepartmentBusinessUnitLeader, true},
		{domain.RoleApprover, domain.DepartmentFinance, false},
		{domain.RoleStaff, domain.DepartmentEngineering, true},
		{domain.RoleStaff, domain.DepartmentProjectManagement, false},
		{domain.RoleAdmin, domain.DepartmentProjectManagement, true},
		{domain.RoleAdmin, domain.DepartmentBusinessUnitLeader, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+"/"+string(tt.dept), func(t *testing.T) {
			assert.Equal(t, tt.want, domain.RoleAllowsDepartment(tt.role, tt.dept))
		})
	}
}

func TestParseEnums(t *testing.T) {
	mode, ok := domain.ParseViewMode(" approver ")
	assert.True(t, ok)
	assert.Equal(t, domain.ViewApprover, mode)

	_, ok = domain.ParseViewMode("auditor")
	assert.False(t, ok)

	status, ok := domain.ParseClaimStatus("paid")
	assert.True(t, ok)
	assert.Equal(t, domain.ClaimPaid, status)

	_, ok = domain.ParseClaimStatus("ARCHIVED")
	assert.False(t, ok)

	ct, ok := domain.ParseClaimType("Overtime")
	assert.True(t, ok)
	assert.Equal(t, domain.ClaimOvertime, ct)

	role, ok := domain.ParseSystemRole("finance")
	assert.True(t, ok)
	assert.Equal(t, domain.RoleFinance, role)

	_, ok = domain.ParseDepartment("MARKETING")
	assert.False(t, ok)
}

func TestProjectHasMember(t *testing.T) {
	p := domain.Project{
		ProjectManagerID:     "pm",
		BusinessUnitLeaderID: "bul",
		Staff:                []domain.ProjectStaff{{StaffID: "dev"}},
	}

	assert.True(t, p.HasMember("pm"))
	assert.True(t, p.HasMember("bul"))
	assert.True(t, p.HasMember("dev"))
	assert.False(t, p.HasMember("outsider"))
}

func TestClaimCloneIsDeep(t *testing.T) {
	decided := time.Now()
	original := domain.Claim{
		ClaimID:   "c1",
		ProjectID: stringPtr("p1"),
		FinanceID: stringPtr("f1"),
		Approvers: []domain.ClaimApprover{
			{ClaimID: "c1", ApproverID: "a", Status: domain.ApproverApproved, DecidedAt: &decided},
		},
	}

	clone := original.Clone()
	*clone.ProjectID = "p2"
	*clone.FinanceID = "f2"
	clone.Approvers[0].Status = domain.ApproverRejected
	*clone.Approvers[0].DecidedAt = decided.Add(time.Hour)

	assert.Equal(t, "p1", *original.ProjectID)
	assert.Equal(t, "f1", *original.FinanceID)
	assert.Equal(t, domain.ApproverApproved, original.Approvers[0].Status)
	assert.Equal(t, decided, *original.Approvers[0].DecidedAt)
}

func TestClaimApproverLookup(t *testing.T) {
	c := domain.Claim{
		FinanceID: stringPtr("fin"),
		Approvers: []domain.ClaimApprover{{ApproverID: "a"}, {ApproverID: "b"}},
	}
	assert.Equal(t, 1, c.ApproverFor("b"))
	assert.Equal(t, -1, c.ApproverFor("z"))
	assert.True(t, c.IsFinance("fin"))
	assert.False(t, c.IsFinance("a"))
	assert.False(t, domain.Claim{}.IsFinance(""))
}

func TestNewClaimStatusCount(t *testing.T) {
	counts := domain.NewClaimStatusCount(map[domain.ClaimStatus]int{
		domain.ClaimDraft:     2,
		domain.ClaimPending:   3,
		domain.ClaimApproved:  1,
		domain.ClaimRejected:  4,
		domain.ClaimPaid:      5,
		domain.ClaimCancelled: 6,
		"UNKNOWN":             100,
	})

	assert.Equal(t, domain.ClaimStatusCount{
		Draft: 2, Pending: 3, Approved: 1, Rejected: 4, Paid: 5, Cancelled: 6, Total: 21,
	}, counts)
}

func TestNewApproverStatusCount(t *testing.T) {
	counts := domain.NewApproverStatusCount(map[domain.ApproverStatus]int{
		domain.ApproverPending:  1,
		domain.ApproverApproved: 2,
		domain.ApproverRejected: 3,
		domain.ApproverReturned: 7,
	})

	assert.Equal(t, domain.ApproverStatusCount{Pending: 1, Approved: 2, Rejected: 3, Total: 6}, counts)
}

func TestDateRangeValid(t *testing.T) {
	now := time.Now()
	later := now.Add(time.Hour)

	assert.True(t, domain.DateRange{}.Valid())
	assert.True(t, domain.DateRange{From: &now}.Valid())
	assert.True(t, domain.DateRange{From: &now, To: &later}.Valid())
	require.False(t, domain.DateRange{From: &later, To: &now}.Valid())
}
