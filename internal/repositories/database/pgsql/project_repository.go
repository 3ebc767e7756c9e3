package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/claims_app/internal/apperrors"
	"github.com/SscSPs/claims_app/internal/core/domain"
	portsrepo "github.com/SscSPs/claims_app/internal/core/ports/repositories"
	"github.com/SscSPs/claims_app/internal/models"
	"github.com/SscSPs/claims_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const projectColumns = `project_id, name, code, start_date, end_date, budget, status,
		project_manager_id, business_unit_leader_id,
		created_at, created_by, last_updated_at, last_updated_by`

type PgxProjectRepository struct {
	BaseRepository
}

func newPgxProjectRepository(pool *pgxpool.Pool) portsrepo.ProjectRepositoryFacade {
	return &PgxProjectRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ProjectRepositoryFacade = (*PgxProjectRepository)(nil)

func scanProject(row pgx.Row) (models.Project, error) {
	var m models.Project
	err := row.Scan(
		&m.ProjectID,
		&m.Name,
		&m.Code,
		&m.StartDate,
		&m.EndDate,
		&m.Budget,
		&m.Status,
		&m.ProjectManagerID,
		&m.BusinessUnitLeaderID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// findProject loads a project with its roster using db, which may be a transaction.
func findProject(ctx context.Context, db dbtx, projectID string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE project_id = $1;`
	m, err := scanProject(db.QueryRow(ctx, query, projectID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("project " + projectID + " not found")
		}
		return nil, fmt.Errorf("failed to find project %s: %w", projectID, err)
	}

	rows, err := db.Query(ctx, `
		SELECT ps.project_id, ps.staff_id, s.name, ps.role, ps.assigned_at
		FROM project_staff ps
		JOIN staff s ON s.staff_id = ps.staff_id
		WHERE ps.project_id = $1
		ORDER BY ps.assigned_at, ps.staff_id;
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query roster of project %s: %w", projectID, err)
	}
	defer rows.Close()

	roster := []models.ProjectStaff{}
	for rows.Next() {
		var ps models.ProjectStaff
		if err := rows.Scan(&ps.ProjectID, &ps.StaffID, &ps.StaffName, &ps.Role, &ps.AssignedAt); err != nil {
			return nil, fmt.Errorf("failed to scan roster row: %w", err)
		}
		roster = append(roster, ps)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating roster rows: %w", err)
	}

	project := mapping.ToDomainProject(m, roster)
	return &project, nil
}

func (r *PgxProjectRepository) FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	return findProject(ctx, r.Pool, projectID)
}

// ListProjects returns projects without their rosters.
func (r *PgxProjectRepository) ListProjects(ctx context.Context, limit, offset int) ([]domain.Project, error) {
	if limit <= 0 {
		limit = 20
	}
	offset = max(offset, 0)

	query := `SELECT ` + projectColumns + ` FROM projects ORDER BY created_at DESC, project_id DESC LIMIT $1 OFFSET $2;`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	projects := []domain.Project{}
	for rows.Next() {
		m, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project row: %w", err)
		}
		projects = append(projects, mapping.ToDomainProject(m, nil))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}
	return projects, nil
}

func (r *PgxProjectRepository) IsMember(ctx context.Context, projectID, staffID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM projects
			WHERE project_id = $1 AND (project_manager_id = $2 OR business_unit_leader_id = $2)
		) OR EXISTS (
			SELECT 1 FROM project_staff WHERE project_id = $1 AND staff_id = $2
		);
	`
	var member bool
	if err := r.Pool.QueryRow(ctx, query, projectID, staffID).Scan(&member); err != nil {
		return false, fmt.Errorf("failed to check membership of %s in %s: %w", staffID, projectID, err)
	}
	return member, nil
}

func (r *PgxProjectRepository) SaveProject(ctx context.Context, project domain.Project) error {
	m := mapping.ToModelProject(project)
	query := `
		INSERT INTO projects (` + projectColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ProjectID, m.Name, m.Code, m.StartDate, m.EndDate, m.Budget, m.Status,
		m.ProjectManagerID, m.BusinessUnitLeaderID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		switch pgErrorCode(err) {
		case pgUniqueViolation:
			return apperrors.NewConflictError("project code " + m.Code + " already exists")
		case pgForeignKeyViolation:
			return apperrors.NewNotFoundError("project manager or business unit leader does not exist")
		}
		return fmt.Errorf("failed to save project %s: %w", m.ProjectID, err)
	}
	return nil
}

func (r *PgxProjectRepository) AddProjectStaff(ctx context.Context, assignment domain.ProjectStaff) error {
	query := `
		INSERT INTO project_staff (project_id, staff_id, role, assigned_at)
		VALUES ($1, $2, $3, $4);
	`
	_, err := r.Pool.Exec(ctx, query, assignment.ProjectID, assignment.StaffID, string(assignment.Role), assignment.AssignedAt)
	if err != nil {
		switch pgErrorCode(err) {
		case pgUniqueViolation:
			return apperrors.NewConflictError("staff " + assignment.StaffID + " is already on project " + assignment.ProjectID)
		case pgForeignKeyViolation:
			return apperrors.NewNotFoundError("project or staff does not exist")
		}
		return fmt.Errorf("failed to assign staff to project %s: %w", assignment.ProjectID, err)
	}
	return nil
}

func (r *PgxProjectRepository) RemoveProjectStaff(ctx context.Context, projectID, staffID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM project_staff WHERE project_id = $1 AND staff_id = $2;`, projectID, staffID)
	if err != nil {
		return fmt.Errorf("failed to remove staff from project %s: %w", projectID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("staff " + staffID + " is not on project " + projectID)
	}
	return nil
}
