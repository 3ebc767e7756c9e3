package pgsql

import (
	"testing"
	"time"

	"github.com/SscSPs/claims_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestFilterClause(t *testing.T) {
	approver := "a1"
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	filter := domain.ClaimFilter{
		ApproverID:      &approver,
		ExcludeStatuses: []domain.ClaimStatus{domain.ClaimDraft, domain.ClaimPaid},
		Created:         domain.DateRange{From: &from},
	}

	var args queryArgs
	where := filterClause(filter, &args)

	assert.Len(t, where, 3)
	assert.Contains(t, where[0], "ca.approver_id = $1")
	assert.Equal(t, "NOT (c.status = ANY($2))", where[1])
	assert.Equal(t, "c.created_at >= $3", where[2])
	assert.Equal(t, queryArgs{"a1", []string{"DRAFT", "PAID"}, from}, args)
}

func TestFilterClause_Empty(t *testing.T) {
	var args queryArgs
	where := filterClause(domain.ClaimFilter{}, &args)

	assert.Empty(t, where)
	assert.Empty(t, args)
	assert.Equal(t, "", whereSQL(where))
}

func TestWhereSQL(t *testing.T) {
	assert.Equal(t, " WHERE a AND b", whereSQL([]string{"a", "b"}))
}
