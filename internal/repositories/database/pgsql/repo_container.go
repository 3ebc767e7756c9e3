package pgsql

import (
	portsrepo "github.com/SscSPs/claims_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	staffRepo := newPgxStaffRepository(dbPool)
	projectRepo := newPgxProjectRepository(dbPool)
	claimRepo := newPgxClaimRepository(dbPool)

	return portsrepo.RepositoryProvider{
		ClaimRepo:   claimRepo,
		StaffRepo:   staffRepo,
		ProjectRepo: projectRepo,
	}
}
