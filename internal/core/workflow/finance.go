package workflow

import (
	"math/rand/v2"
	"sync"

	"github.com/SscSPs/claims_app/internal/apperrors"
	"github.com/SscSPs/claims_app/internal/core/domain"
)

// FinanceSelector picks the finance member who will handle an approved claim.
type FinanceSelector interface {
	Select(candidates []domain.Staff) (domain.Staff, error)
}

// UniformFinanceSelector chooses uniformly at random among the candidates.
type UniformFinanceSelector struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewUniformFinanceSelector returns a selector backed by the global random source.
func NewUniformFinanceSelector() *UniformFinanceSelector {
	return &UniformFinanceSelector{}
}

// NewSeededFinanceSelector returns a selector with a deterministic source.
func NewSeededFinanceSelector(seed1, seed2 uint64) *UniformFinanceSelector {
	return &UniformFinanceSelector{rng: rand.New(rand.NewPCG(seed1, seed2))}
}

func (s *UniformFinanceSelector) Select(candidates []domain.Staff) (domain.Staff, error) {
	if len(candidates) == 0 {
		return domain.Staff{}, apperrors.NewBusinessRuleError("no eligible finance staff available")
	}
	if s.rng == nil {
		return candidates[rand.IntN(len(candidates))], nil
	}
	s.mu.Lock()
	idx := s.rng.IntN(len(candidates))
	s.mu.Unlock()
	return candidates[idx], nil
}

// EligibleFinance keeps active finance staff other than the claimant.
func EligibleFinance(staff []domain.Staff, claimantID string) []domain.Staff {
	out := make([]domain.Staff, 0, len(staff))
	for _, s := range staff {
		if s.IsActive && s.Role == domain.RoleFinance && s.StaffID != claimantID {
			out = append(out, s)
		}
	}
	return out
}
