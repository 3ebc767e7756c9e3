package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Project is a row of the projects table.
type Project struct {
	ProjectID            string          `db:"project_id"`
	Name                 string          `db:"name"`
	Code                 string          `db:"code"`
	StartDate            time.Time       `db:"start_date"`
	EndDate              *time.Time      `db:"end_date"`
	Budget               decimal.Decimal `db:"budget"`
	Status               string          `db:"status"`
	ProjectManagerID     string          `db:"project_manager_id"`
	BusinessUnitLeaderID string          `db:"business_unit_leader_id"`
	AuditFields
}

// ProjectStaff is a row of the project_staff roster table, joined with the staff name.
type ProjectStaff struct {
	ProjectID  string    `db:"project_id"`
	StaffID    string    `db:"staff_id"`
	StaffName  string    `db:"staff_name"`
	Role       string    `db:"role"`
	AssignedAt time.Time `db:"assigned_at"`
}
