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
	"github.com/SscSPs/claims_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const claimSelect = `
	SELECT c.claim_id, c.claim_type, c.status, c.name, c.remark, c.amount, c.total_working_hours,
	       c.start_date, c.end_date, c.claimer_id, s.name, s.email, c.project_id, p.name, c.finance_id,
	       c.created_at, c.created_by, c.last_updated_at, c.last_updated_by
	FROM claims c
	JOIN staff s ON s.staff_id = c.claimer_id
	LEFT JOIN projects p ON p.project_id = c.project_id
`

type PgxClaimRepository struct {
	BaseRepository
}

func newPgxClaimRepository(pool *pgxpool.Pool) portsrepo.ClaimRepositoryFacade {
	return &PgxClaimRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ClaimRepositoryFacade = (*PgxClaimRepository)(nil)

func scanClaim(row pgx.Row) (models.Claim, error) {
	var m models.Claim
	err := row.Scan(
		&m.ClaimID,
		&m.ClaimType,
		&m.Status,
		&m.Name,
		&m.Remark,
		&m.Amount,
		&m.TotalWorkingHours,
		&m.StartDate,
		&m.EndDate,
		&m.ClaimerID,
		&m.ClaimerName,
		&m.ClaimerEmail,
		&m.ProjectID,
		&m.ProjectName,
		&m.FinanceID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// findClaim loads one claim with its approvers. lock takes a row lock on the claim
// for the rest of the transaction.
func findClaim(ctx context.Context, db dbtx, claimID string, lock bool) (*domain.Claim, error) {
	query := claimSelect + ` WHERE c.claim_id = $1`
	if lock {
		query += ` FOR UPDATE OF c`
	}
	m, err := scanClaim(db.QueryRow(ctx, query+`;`, claimID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("claim " + claimID + " not found")
		}
		return nil, fmt.Errorf("failed to find claim %s: %w", claimID, err)
	}

	approvers, err := loadApprovers(ctx, db, []string{claimID})
	if err != nil {
		return nil, err
	}
	claim := mapping.ToDomainClaim(m, approvers[claimID])
	return &claim, nil
}

// loadApprovers fetches approver rows for the given claims, grouped by claim id.
func loadApprovers(ctx context.Context, db dbtx, claimIDs []string) (map[string][]models.ClaimApprover, error) {
	out := make(map[string][]models.ClaimApprover, len(claimIDs))
	if len(claimIDs) == 0 {
		return out, nil
	}
	rows, err := db.Query(ctx, `
		SELECT ca.claim_id, ca.approver_id, s.name, ca.position, ca.status, ca.decided_at
		FROM claim_approvers ca
		JOIN staff s ON s.staff_id = ca.approver_id
		WHERE ca.claim_id = ANY($1)
		ORDER BY ca.claim_id, ca.position;
	`, claimIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query claim approvers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var a models.ClaimApprover
		if err := rows.Scan(&a.ClaimID, &a.ApproverID, &a.ApproverName, &a.Position, &a.Status, &a.DecidedAt); err != nil {
			return nil, fmt.Errorf("failed to scan claim approver row: %w", err)
		}
		out[a.ClaimID] = append(out[a.ClaimID], a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating claim approver rows: %w", err)
	}
	return out, nil
}

func (r *PgxClaimRepository) FindClaimByID(ctx context.Context, claimID string) (*domain.Claim, error) {
	return findClaim(ctx, r.Pool, claimID, false)
}

// filterClause renders the WHERE conditions of a claim filter against alias c.
func filterClause(f domain.ClaimFilter, args *queryArgs) []string {
	var where []string
	if f.ClaimerID != nil {
		where = append(where, "c.claimer_id = "+args.add(*f.ClaimerID))
	}
	if f.FinanceID != nil {
		where = append(where, "c.finance_id = "+args.add(*f.FinanceID))
	}
	if f.ApproverID != nil {
		where = append(where, `EXISTS (SELECT 1 FROM claim_approvers ca
			WHERE ca.claim_id = c.claim_id AND ca.approver_id = `+args.add(*f.ApproverID)+`)`)
	}
	if len(f.Statuses) > 0 {
		where = append(where, "c.status = ANY("+args.add(statusNames(f.Statuses))+")")
	}
	if len(f.ExcludeStatuses) > 0 {
		where = append(where, "NOT (c.status = ANY("+args.add(statusNames(f.ExcludeStatuses))+"))")
	}
	where = append(where, createdClause(f.Created, args)...)
	return where
}

func createdClause(r domain.DateRange, args *queryArgs) []string {
	var where []string
	if r.From != nil {
		where = append(where, "c.created_at >= "+args.add(*r.From))
	}
	if r.To != nil {
		where = append(where, "c.created_at <= "+args.add(*r.To))
	}
	return where
}

func statusNames(statuses []domain.ClaimStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

func whereSQL(conds []string) string {
	if len(conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conds, " AND ")
}

// ListClaims returns one page of claims ordered by (created_at desc, claim_id desc).
func (r *PgxClaimRepository) ListClaims(ctx context.Context, filter domain.ClaimFilter, limit int, nextToken *string) ([]domain.Claim, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	var args queryArgs
	where := filterClause(filter, &args)
	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", err)
		}
		where = append(where, "(c.created_at, c.claim_id) < ("+args.add(lastCreatedAt)+", "+args.add(lastID)+")")
	}
	query := claimSelect + whereSQL(where) +
		` ORDER BY c.created_at DESC, c.claim_id DESC LIMIT ` + args.add(fetchLimit) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query claims", err)
	}
	defer rows.Close()

	modelClaims := make([]models.Claim, 0, fetchLimit)
	for rows.Next() {
		m, err := scanClaim(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan claim row", err)
		}
		modelClaims = append(modelClaims, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating claim rows", err)
	}

	var nextTokenVal *string
	if len(modelClaims) > limit {
		last := modelClaims[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.ClaimID)
		nextTokenVal = &token
		modelClaims = modelClaims[:limit]
	}

	ids := make([]string, len(modelClaims))
	for i, m := range modelClaims {
		ids[i] = m.ClaimID
	}
	approvers, err := loadApprovers(ctx, r.Pool, ids)
	if err != nil {
		return nil, nil, err
	}

	claims := make([]domain.Claim, len(modelClaims))
	for i, m := range modelClaims {
		claims[i] = mapping.ToDomainClaim(m, approvers[m.ClaimID])
	}
	return claims, nextTokenVal, nil
}

func (r *PgxClaimRepository) ListChangeLogs(ctx context.Context, claimID string) ([]domain.ClaimChangeLog, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT change_log_id, claim_id, message, changed_by, changed_at
		FROM claim_change_logs
		WHERE claim_id = $1
		ORDER BY changed_at ASC, change_log_id ASC;
	`, claimID)
	if err != nil {
		return nil, fmt.Errorf("failed to query change logs of claim %s: %w", claimID, err)
	}
	defer rows.Close()

	logs := []domain.ClaimChangeLog{}
	for rows.Next() {
		var m models.ClaimChangeLog
		if err := rows.Scan(&m.ChangeLogID, &m.ClaimID, &m.Message, &m.ChangedBy, &m.ChangedAt); err != nil {
			return nil, fmt.Errorf("failed to scan change log row: %w", err)
		}
		logs = append(logs, mapping.ToDomainChangeLog(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating change log rows: %w", err)
	}
	return logs, nil
}

func (r *PgxClaimRepository) CountClaimsByStatus(ctx context.Context, filter domain.ClaimFilter) (map[domain.ClaimStatus]int, error) {
	var args queryArgs
	query := `SELECT c.status, COUNT(*) FROM claims c` + whereSQL(filterClause(filter, &args)) + ` GROUP BY c.status;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to count claims: %w", err)
	}
	defer rows.Close()

	out := map[domain.ClaimStatus]int{}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("failed to scan claim count row: %w", err)
		}
		out[domain.ClaimStatus(status)] = n
	}
	return out, rows.Err()
}

func (r *PgxClaimRepository) CountApproverDecisions(ctx context.Context, approverID string, excluded []domain.ClaimStatus, created domain.DateRange) (map[domain.ApproverStatus]int, error) {
	var args queryArgs
	where := []string{"ca.approver_id = " + args.add(approverID)}
	if len(excluded) > 0 {
		where = append(where, "NOT (c.status = ANY("+args.add(statusNames(excluded))+"))")
	}
	where = append(where, createdClause(created, &args)...)
	query := `
		SELECT ca.status, COUNT(*)
		FROM claim_approvers ca
		JOIN claims c ON c.claim_id = ca.claim_id` + whereSQL(where) + `
		GROUP BY ca.status;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to count approver decisions: %w", err)
	}
	defer rows.Close()

	out := map[domain.ApproverStatus]int{}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("failed to scan approver count row: %w", err)
		}
		out[domain.ApproverStatus(status)] = n
	}
	return out, rows.Err()
}

// RunInTx runs fn in a single transaction. Any error rolls back every write fn made.
func (r *PgxClaimRepository) RunInTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.ClaimTxRepository) error) error {
	return r.withTx(ctx, func(tx pgx.Tx) error {
		return fn(ctx, &pgxClaimTx{tx: tx})
	})
}

// pgxClaimTx is the transactional view handed to RunInTx callbacks.
type pgxClaimTx struct {
	tx pgx.Tx
}

var _ portsrepo.ClaimTxRepository = (*pgxClaimTx)(nil)

func (t *pgxClaimTx) FindClaimForUpdate(ctx context.Context, claimID string) (*domain.Claim, error) {
	return findClaim(ctx, t.tx, claimID, true)
}

func (t *pgxClaimTx) FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	return findProject(ctx, t.tx, projectID)
}

func (t *pgxClaimTx) ListFinanceStaff(ctx context.Context) ([]domain.Staff, error) {
	query := `SELECT ` + staffColumns + ` FROM staff WHERE role = $1 AND is_active ORDER BY staff_id;`
	return queryStaff(ctx, t.tx, query, string(domain.RoleFinance))
}

func (t *pgxClaimTx) InsertClaim(ctx context.Context, claim domain.Claim) error {
	m := mapping.ToModelClaim(claim)
	_, err := t.tx.Exec(ctx, `
		INSERT INTO claims (claim_id, claim_type, status, name, remark, amount, total_working_hours,
		                    start_date, end_date, claimer_id, project_id, finance_id,
		                    created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`,
		m.ClaimID, m.ClaimType, m.Status, m.Name, m.Remark, m.Amount, m.TotalWorkingHours,
		m.StartDate, m.EndDate, m.ClaimerID, m.ProjectID, m.FinanceID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return fmt.Errorf("%w: claim with ID %s already exists", apperrors.ErrDuplicate, m.ClaimID)
		}
		return fmt.Errorf("failed to insert claim %s: %w", m.ClaimID, err)
	}
	return nil
}

func (t *pgxClaimTx) UpdateClaim(ctx context.Context, claim domain.Claim) error {
	m := mapping.ToModelClaim(claim)
	cmdTag, err := t.tx.Exec(ctx, `
		UPDATE claims
		SET claim_type = $1, status = $2, name = $3, remark = $4, amount = $5, total_working_hours = $6,
		    start_date = $7, end_date = $8, project_id = $9, finance_id = $10,
		    last_updated_at = $11, last_updated_by = $12
		WHERE claim_id = $13;
	`,
		m.ClaimType, m.Status, m.Name, m.Remark, m.Amount, m.TotalWorkingHours,
		m.StartDate, m.EndDate, m.ProjectID, m.FinanceID,
		m.LastUpdatedAt, m.LastUpdatedBy,
		m.ClaimID,
	)
	if err != nil {
		return fmt.Errorf("failed to update claim %s: %w", m.ClaimID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("claim " + m.ClaimID + " not found")
	}
	return nil
}

// ReplaceApprovers rewrites the whole approver set of a claim.
func (t *pgxClaimTx) ReplaceApprovers(ctx context.Context, claimID string, approvers []domain.ClaimApprover) error {
	if _, err := t.tx.Exec(ctx, `DELETE FROM claim_approvers WHERE claim_id = $1;`, claimID); err != nil {
		return fmt.Errorf("failed to clear approvers of claim %s: %w", claimID, err)
	}
	if len(approvers) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, a := range mapping.ToModelClaimApprovers(claimID, approvers) {
		batch.Queue(`
			INSERT INTO claim_approvers (claim_id, approver_id, position, status, decided_at)
			VALUES ($1, $2, $3, $4, $5);
		`, a.ClaimID, a.ApproverID, a.Position, a.Status, a.DecidedAt)
	}
	if err := t.tx.SendBatch(ctx, batch).Close(); err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return fmt.Errorf("%w: duplicate approver on claim %s", apperrors.ErrDuplicate, claimID)
		}
		return fmt.Errorf("failed to insert approvers of claim %s: %w", claimID, err)
	}
	return nil
}

func (t *pgxClaimTx) InsertChangeLog(ctx context.Context, entry domain.ClaimChangeLog) error {
	m := mapping.ToModelChangeLog(entry)
	_, err := t.tx.Exec(ctx, `
		INSERT INTO claim_change_logs (change_log_id, claim_id, message, changed_by, changed_at)
		VALUES ($1, $2, $3, $4, $5);
	`, m.ChangeLogID, m.ClaimID, m.Message, m.ChangedBy, m.ChangedAt)
	if err != nil {
		return fmt.Errorf("failed to insert change log for claim %s: %w", m.ClaimID, err)
	}
	return nil
}
