package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// SystemRole is the role a staff member holds across the whole system.
type SystemRole string

const (
	RoleApprover SystemRole = "APPROVER"
	RoleStaff    SystemRole = "STAFF"
	RoleFinance  SystemRole = "FINANCE"
	RoleAdmin    SystemRole = "ADMIN"
)

// Department a staff member belongs to.
type Department string

const (
	DepartmentFinance            Department = "FINANCE"
	DepartmentEngineering        Department = "ENGINEERING"
	DepartmentProjectManagement  Department = "PROJECT_MANAGEMENT"
	DepartmentBusinessUnitLeader Department = "BUSINESS_UNIT_LEADER"
)

// ParseSystemRole converts a symbolic role name (case-insensitive) to a SystemRole.
func ParseSystemRole(s string) (SystemRole, bool) {
	r := SystemRole(strings.ToUpper(strings.TrimSpace(s)))
	switch r {
	case RoleApprover, RoleStaff, RoleFinance, RoleAdmin:
		return r, true
	}
	return "", false
}

// ParseDepartment converts a symbolic department name (case-insensitive) to a Department.
func ParseDepartment(s string) (Department, bool) {
	d := Department(strings.ToUpper(strings.TrimSpace(s)))
	switch d {
	case DepartmentFinance, DepartmentEngineering, DepartmentProjectManagement, DepartmentBusinessUnitLeader:
		return d, true
	}
	return "", false
}

// allowedDepartments couples every role with the departments it may be placed in.
var allowedDepartments = map[SystemRole][]Department{
	RoleFinance:  {DepartmentFinance},
	RoleApprover: {DepartmentProjectManagement, DepartmentBusinessUnitLeader},
	RoleStaff:    {DepartmentEngineering},
	RoleAdmin:    {DepartmentProjectManagement},
}

// RoleAllowsDepartment reports whether a staff member with role may belong to dept.
func RoleAllowsDepartment(role SystemRole, dept Department) bool {
	for _, d := range allowedDepartments[role] {
		if d == dept {
			return true
		}
	}
	return false
}

// Staff is an employee able to act in the system.
type Staff struct {
	StaffID      string          `json:"staffID"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	PasswordHash string          `json:"-"`
	Role         SystemRole      `json:"role"`
	Department   Department      `json:"department"`
	Salary       decimal.Decimal `json:"salary"`
	AvatarURL    *string         `json:"avatarURL,omitempty"`
	IsActive     bool            `json:"isActive"`
	AuditFields
}

// StaffFilter narrows staff listings.
type StaffFilter struct {
	Role       *SystemRole
	ActiveOnly bool
	Limit      int
	Offset     int
}
