package models

import "github.com/shopspring/decimal"

// Staff is a row of the staff table.
type Staff struct {
	StaffID      string          `db:"staff_id"`
	Name         string          `db:"name"`
	Email        string          `db:"email"`
	PasswordHash string          `db:"password_hash"`
	Role         string          `db:"role"`
	Department   string          `db:"department"`
	Salary       decimal.Decimal `db:"salary"`
	AvatarURL    *string         `db:"avatar_url"`
	IsActive     bool            `db:"is_active"`
	AuditFields
}
