package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/claims_app/internal/apperrors"
	"github.com/SscSPs/claims_app/internal/core/domain"
	portsrepo "github.com/SscSPs/claims_app/internal/core/ports/repositories"
	"github.com/SscSPs/claims_app/internal/models"
	"github.com/SscSPs/claims_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const staffColumns = `staff_id, name, email, password_hash, role, department, salary, avatar_url, is_active,
		created_at, created_by, last_updated_at, last_updated_by`

type PgxStaffRepository struct {
	BaseRepository
}

func newPgxStaffRepository(pool *pgxpool.Pool) portsrepo.StaffRepositoryFacade {
	return &PgxStaffRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.StaffRepositoryFacade = (*PgxStaffRepository)(nil)

func scanStaff(row pgx.Row) (models.Staff, error) {
	var m models.Staff
	err := row.Scan(
		&m.StaffID,
		&m.Name,
		&m.Email,
		&m.PasswordHash,
		&m.Role,
		&m.Department,
		&m.Salary,
		&m.AvatarURL,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxStaffRepository) findOne(ctx context.Context, where string, arg any) (*domain.Staff, error) {
	query := `SELECT ` + staffColumns + ` FROM staff WHERE ` + where + `;`
	m, err := scanStaff(r.Pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find staff: %w", err)
	}
	staff := mapping.ToDomainStaff(m)
	return &staff, nil
}

func (r *PgxStaffRepository) FindStaffByID(ctx context.Context, staffID string) (*domain.Staff, error) {
	staff, err := r.findOne(ctx, "staff_id = $1", staffID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.NewNotFoundError("staff " + staffID + " not found")
	}
	return staff, err
}

func (r *PgxStaffRepository) FindStaffByEmail(ctx context.Context, email string) (*domain.Staff, error) {
	return r.findOne(ctx, "email = $1", email)
}

func (r *PgxStaffRepository) FindStaff(ctx context.Context, filter domain.StaffFilter) ([]domain.Staff, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := max(filter.Offset, 0)

	var args queryArgs
	var where []string
	if filter.Role != nil {
		where = append(where, "role = "+args.add(string(*filter.Role)))
	}
	if filter.ActiveOnly {
		where = append(where, "is_active")
	}

	query := `SELECT ` + staffColumns + ` FROM staff`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY name, staff_id LIMIT ` + args.add(limit) + ` OFFSET ` + args.add(offset) + `;`

	return queryStaff(ctx, r.Pool, query, args...)
}

func queryStaff(ctx context.Context, db dbtx, query string, args ...any) ([]domain.Staff, error) {
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query staff: %w", err)
	}
	defer rows.Close()

	modelStaff := []models.Staff{}
	for rows.Next() {
		m, err := scanStaff(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan staff row: %w", err)
		}
		modelStaff = append(modelStaff, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating staff rows: %w", err)
	}
	return mapping.ToDomainStaffSlice(modelStaff), nil
}

func (r *PgxStaffRepository) SaveStaff(ctx context.Context, staff domain.Staff) error {
	m := mapping.ToModelStaff(staff)
	query := `
		INSERT INTO staff (` + staffColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.StaffID, m.Name, m.Email, m.PasswordHash, m.Role, m.Department, m.Salary, m.AvatarURL, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return apperrors.NewConflictError("email " + m.Email + " is already registered")
		}
		return fmt.Errorf("failed to save staff %s: %w", m.StaffID, err)
	}
	return nil
}

func (r *PgxStaffRepository) UpdateStaff(ctx context.Context, staff domain.Staff) error {
	m := mapping.ToModelStaff(staff)
	query := `
		UPDATE staff
		SET name = $1, password_hash = $2, role = $3, department = $4, salary = $5,
		    avatar_url = $6, is_active = $7, last_updated_at = $8, last_updated_by = $9
		WHERE staff_id = $10;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.Name, m.PasswordHash, m.Role, m.Department, m.Salary,
		m.AvatarURL, m.IsActive, m.LastUpdatedAt, m.LastUpdatedBy,
		m.StaffID,
	)
	if err != nil {
		return fmt.Errorf("failed to update staff %s: %w", m.StaffID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("staff " + m.StaffID + " not found")
	}
	return nil
}
