package services

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/SscSPs/claims_app/internal/apperrors"
	"github.com/SscSPs/claims_app/internal/core/domain"
	portsrepo "github.com/SscSPs/claims_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/claims_app/internal/core/ports/services"
	"github.com/SscSPs/claims_app/internal/core/workflow"
	"github.com/SscSPs/claims_app/internal/dto"
	"github.com/google/uuid"
)

const defaultClaimPageSize = 20

// Statuses hidden from approvers: nothing to decide on yet, or nothing left to decide.
var approverHiddenStatuses = []domain.ClaimStatus{domain.ClaimDraft, domain.ClaimCancelled, domain.ClaimPaid}

// Statuses a finance member ever sees on claims assigned to them.
var financeVisibleStatuses = []domain.ClaimStatus{domain.ClaimApproved, domain.ClaimPaid}

// claimService implements the ClaimSvcFacade interface
type claimService struct {
	BaseService
	claimRepo portsrepo.ClaimRepositoryFacade
	notifier  portssvc.Notifier
	selector  workflow.FinanceSelector
	now       func() time.Time
	newID     func() string
	machine   *workflow.Machine
}

// ClaimServiceOption is a functional option for configuring the claim service
type ClaimServiceOption func(*claimService)

// WithNotifier sets the collaborator that receives post-commit notifications.
func WithNotifier(n portssvc.Notifier) ClaimServiceOption {
	return func(s *claimService) {
		s.notifier = n
	}
}

// WithFinanceSelector replaces the uniform random finance selection.
func WithFinanceSelector(sel workflow.FinanceSelector) ClaimServiceOption {
	return func(s *claimService) {
		s.selector = sel
	}
}

// WithClaimClock overrides the time source used for transitions and change logs.
func WithClaimClock(now func() time.Time) ClaimServiceOption {
	return func(s *claimService) {
		s.now = now
	}
}

// WithIDGenerator overrides how claim and change log ids are minted.
func WithIDGenerator(newID func() string) ClaimServiceOption {
	return func(s *claimService) {
		s.newID = newID
	}
}

// NewClaimService creates a new claim service with the provided options
func NewClaimService(repo portsrepo.ClaimRepositoryFacade, options ...ClaimServiceOption) portssvc.ClaimSvcFacade {
	svc := &claimService{
		claimRepo: repo,
		selector:  workflow.NewUniformFinanceSelector(),
		now:       func() time.Time { return time.Now().UTC() },
		newID:     uuid.NewString,
	}
	for _, option := range options {
		option(svc)
	}
	svc.machine = workflow.NewMachine(svc.selector, workflow.WithClock(svc.now))
	return svc
}

var _ portssvc.ClaimSvcFacade = (*claimService)(nil)

// --- Workflow ---

func (s *claimService) CreateClaim(ctx context.Context, actor domain.Actor, req dto.CreateClaimRequest) (*domain.Claim, error) {
	claimType, ok := domain.ParseClaimType(req.ClaimType)
	if !ok {
		return nil, apperrors.NewValidationFailedError("unknown claim type " + req.ClaimType)
	}
	in := workflow.NewClaim{
		ClaimType:         claimType,
		Name:              req.Name,
		Remark:            req.Remark,
		Amount:            req.Amount,
		TotalWorkingHours: req.TotalWorkingHours,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
		ProjectID:         req.ProjectID,
	}
	if in.ProjectID != nil && *in.ProjectID == "" {
		in.ProjectID = nil
	}

	var res workflow.Result
	err := s.claimRepo.RunInTx(ctx, func(ctx context.Context, tx portsrepo.ClaimTxRepository) error {
		var project *domain.Project
		if in.ProjectID != nil {
			p, err := tx.FindProjectByID(ctx, *in.ProjectID)
			if err != nil {
				return err
			}
			project = p
		}
		var err error
		res, err = s.machine.Create(s.newID(), actor, in, project)
		if err != nil {
			return err
		}
		if err := tx.InsertClaim(ctx, res.Claim); err != nil {
			return err
		}
		return s.appendChangeLog(ctx, tx, actor, res)
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to create claim", slog.String("user_id", actor.StaffID))
		return nil, err
	}

	s.LogInfo(ctx, "Claim created", slog.String("claim_id", res.Claim.ClaimID))
	s.dispatch(ctx, res.Notifications)
	return &res.Claim, nil
}

func (s *claimService) UpdateClaim(ctx context.Context, actor domain.Actor, claimID string, req dto.UpdateClaimRequest) (*domain.Claim, error) {
	changes := workflow.ClaimChanges{
		Name:              req.Name,
		Remark:            req.Remark,
		Amount:            req.Amount,
		TotalWorkingHours: req.TotalWorkingHours,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
		ProjectID:         req.ProjectID,
	}
	if req.ClaimType != nil {
		claimType, ok := domain.ParseClaimType(*req.ClaimType)
		if !ok {
			return nil, apperrors.NewValidationFailedError("unknown claim type " + *req.ClaimType)
		}
		changes.ClaimType = &claimType
	}

	return s.transition(ctx, actor, claimID, "update", func(ctx context.Context, tx portsrepo.ClaimTxRepository, current domain.Claim) (workflow.Result, error) {
		var project *domain.Project
		if changes.ProjectID != nil && *changes.ProjectID != "" {
			p, err := tx.FindProjectByID(ctx, *changes.ProjectID)
			if err != nil {
				return workflow.Result{}, err
			}
			project = p
		}
		return s.machine.Update(current, actor, changes, project)
	})
}

func (s *claimService) SubmitClaim(ctx context.Context, actor domain.Actor, claimID string) (*domain.Claim, error) {
	return s.transition(ctx, actor, claimID, "submit", func(ctx context.Context, tx portsrepo.ClaimTxRepository, current domain.Claim) (workflow.Result, error) {
		var project *domain.Project
		// Approvers only come from the project on a first submission.
		if current.ProjectID != nil && len(current.Approvers) == 0 && current.Status == domain.ClaimDraft {
			p, err := tx.FindProjectByID(ctx, *current.ProjectID)
			if err != nil {
				return workflow.Result{}, err
			}
			project = p
		}
		return s.machine.Submit(current, actor, project, s.financePool(ctx, tx))
	})
}

func (s *claimService) ApproveClaim(ctx context.Context, actor domain.Actor, claimID string) (*domain.Claim, error) {
	return s.transition(ctx, actor, claimID, "approve", func(ctx context.Context, tx portsrepo.ClaimTxRepository, current domain.Claim) (workflow.Result, error) {
		return s.machine.Approve(current, actor, s.financePool(ctx, tx))
	})
}

func (s *claimService) RejectClaim(ctx context.Context, actor domain.Actor, claimID string, reason string) (*domain.Claim, error) {
	return s.transition(ctx, actor, claimID, "reject", func(_ context.Context, _ portsrepo.ClaimTxRepository, current domain.Claim) (workflow.Result, error) {
		return s.machine.Reject(current, actor, reason)
	})
}

func (s *claimService) ReturnClaim(ctx context.Context, actor domain.Actor, claimID string, reason string) (*domain.Claim, error) {
	return s.transition(ctx, actor, claimID, "return", func(_ context.Context, _ portsrepo.ClaimTxRepository, current domain.Claim) (workflow.Result, error) {
		return s.machine.Return(current, actor, reason)
	})
}

func (s *claimService) CancelClaim(ctx context.Context, actor domain.Actor, claimID string, reason string) (*domain.Claim, error) {
	return s.transition(ctx, actor, claimID, "cancel", func(_ context.Context, _ portsrepo.ClaimTxRepository, current domain.Claim) (workflow.Result, error) {
		return s.machine.Cancel(current, actor, reason)
	})
}

func (s *claimService) PayClaim(ctx context.Context, actor domain.Actor, claimID string) (*domain.Claim, error) {
	return s.transition(ctx, actor, claimID, "pay", func(_ context.Context, _ portsrepo.ClaimTxRepository, current domain.Claim) (workflow.Result, error) {
		return s.machine.Pay(current, actor)
	})
}

type transitionFunc func(ctx context.Context, tx portsrepo.ClaimTxRepository, current domain.Claim) (workflow.Result, error)

// transition loads and locks the claim, applies fn, persists the outcome and its
// change log in the same transaction, and dispatches notifications once committed.
func (s *claimService) transition(ctx context.Context, actor domain.Actor, claimID, op string, fn transitionFunc) (*domain.Claim, error) {
	var res workflow.Result
	err := s.claimRepo.RunInTx(ctx, func(ctx context.Context, tx portsrepo.ClaimTxRepository) error {
		current, err := tx.FindClaimForUpdate(ctx, claimID)
		if err != nil {
			return err
		}
		res, err = fn(ctx, tx, *current)
		if err != nil {
			return err
		}
		if err := tx.UpdateClaim(ctx, res.Claim); err != nil {
			return err
		}
		if res.ApproversChanged {
			if err := tx.ReplaceApprovers(ctx, res.Claim.ClaimID, res.Claim.Approvers); err != nil {
				return err
			}
		}
		return s.appendChangeLog(ctx, tx, actor, res)
	})
	if err != nil {
		s.LogFailure(ctx, err, "Claim transition failed",
			slog.String("operation", op),
			slog.String("claim_id", claimID),
			slog.String("user_id", actor.StaffID))
		return nil, err
	}

	s.LogInfo(ctx, "Claim transition applied",
		slog.String("operation", op),
		slog.String("claim_id", claimID),
		slog.String("status", string(res.Claim.Status)))
	s.dispatch(ctx, res.Notifications)
	return &res.Claim, nil
}

func (s *claimService) appendChangeLog(ctx context.Context, tx portsrepo.ClaimTxRepository, actor domain.Actor, res workflow.Result) error {
	return tx.InsertChangeLog(ctx, domain.ClaimChangeLog{
		ChangeLogID: s.newID(),
		ClaimID:     res.Claim.ClaimID,
		Message:     res.Message,
		ChangedBy:   actor.Email,
		ChangedAt:   res.Claim.LastUpdatedAt,
	})
}

func (s *claimService) financePool(ctx context.Context, tx portsrepo.ClaimTxRepository) workflow.FinancePool {
	return func() ([]domain.Staff, error) {
		return tx.ListFinanceStaff(ctx)
	}
}

// dispatch hands notifications to the notifier after commit. Failures are logged
// and never reach the caller.
func (s *claimService) dispatch(ctx context.Context, notifications []domain.Notification) {
	if s.notifier == nil || len(notifications) == 0 {
		return
	}
	ctx = context.WithoutCancel(ctx)
	for _, n := range notifications {
		if err := s.notifier.Notify(ctx, n.ClaimID, n.Kind); err != nil {
			s.LogError(ctx, err, "Failed to dispatch claim notification",
				slog.String("claim_id", n.ClaimID),
				slog.String("kind", string(n.Kind)))
		}
	}
}

// --- Queries ---

func (s *claimService) GetClaim(ctx context.Context, actor domain.Actor, claimID string) (*domain.Claim, error) {
	claim, err := s.claimRepo.FindClaimByID(ctx, claimID)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to load claim", slog.String("claim_id", claimID))
		return nil, err
	}
	if !canRead(actor, *claim) {
		err := apperrors.NewUnauthorizedError("actor cannot view this claim")
		s.LogFailure(ctx, err, "Claim read denied", slog.String("claim_id", claimID), slog.String("user_id", actor.StaffID))
		return nil, err
	}
	return claim, nil
}

func (s *claimService) ListChangeLogs(ctx context.Context, actor domain.Actor, claimID string) ([]domain.ClaimChangeLog, error) {
	if _, err := s.GetClaim(ctx, actor, claimID); err != nil {
		return nil, err
	}
	logs, err := s.claimRepo.ListChangeLogs(ctx, claimID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list change logs", slog.String("claim_id", claimID))
		return nil, err
	}
	return logs, nil
}

func (s *claimService) ListClaims(ctx context.Context, actor domain.Actor, params dto.ListClaimsParams) (*dto.ListClaimsResponse, error) {
	view, err := s.resolveView(ctx, actor, params.View)
	if err != nil {
		return nil, err
	}
	created, err := dto.ParseDateRange(params.From, params.To)
	if err != nil {
		return nil, err
	}
	requested, err := parseStatuses(params.Status)
	if err != nil {
		return nil, err
	}

	filter := viewFilter(view, actor)
	filter.Created = created
	if len(requested) > 0 {
		if len(filter.Statuses) > 0 {
			requested = slices.DeleteFunc(requested, func(st domain.ClaimStatus) bool {
				return !slices.Contains(filter.Statuses, st)
			})
			if len(requested) == 0 {
				// Every requested status lies outside what this view can ever show.
				resp := dto.ToListClaimsResponse(nil, nil)
				return &resp, nil
			}
		}
		filter.Statuses = requested
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultClaimPageSize
	}
	claims, next, err := s.claimRepo.ListClaims(ctx, filter, limit, params.NextToken)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to list claims", slog.String("view", string(view)))
		return nil, err
	}

	resp := dto.ToListClaimsResponse(claims, next)
	return &resp, nil
}

func (s *claimService) GetStatusCounts(ctx context.Context, actor domain.Actor, params dto.StatusCountParams) (*domain.StatusCounts, error) {
	view, err := s.resolveView(ctx, actor, params.View)
	if err != nil {
		return nil, err
	}
	created, err := dto.ParseDateRange(params.From, params.To)
	if err != nil {
		return nil, err
	}

	result := &domain.StatusCounts{ViewMode: view}
	if view == domain.ViewApprover {
		raw, err := s.claimRepo.CountApproverDecisions(ctx, actor.StaffID, approverHiddenStatuses, created)
		if err != nil {
			s.LogError(ctx, err, "Failed to count approver decisions", slog.String("user_id", actor.StaffID))
			return nil, err
		}
		counts := domain.NewApproverStatusCount(raw)
		result.Approver = &counts
		return result, nil
	}

	filter := viewFilter(view, actor)
	filter.Created = created
	raw, err := s.claimRepo.CountClaimsByStatus(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to count claims", slog.String("view", string(view)))
		return nil, err
	}
	counts := domain.NewClaimStatusCount(raw)
	result.Claims = &counts
	return result, nil
}

// resolveView parses the requested view mode and checks the actor's role may use it.
func (s *claimService) resolveView(ctx context.Context, actor domain.Actor, raw string) (domain.ViewMode, error) {
	if strings.TrimSpace(raw) == "" {
		return domain.ViewClaimer, nil
	}
	view, ok := domain.ParseViewMode(raw)
	if !ok {
		return "", apperrors.NewValidationFailedError("unknown view mode " + raw)
	}

	var required domain.SystemRole
	switch view {
	case domain.ViewApprover:
		required = domain.RoleApprover
	case domain.ViewFinance:
		required = domain.RoleFinance
	case domain.ViewAdmin:
		required = domain.RoleAdmin
	default:
		return view, nil
	}
	if actor.Role != required {
		err := apperrors.NewUnauthorizedError("role " + string(actor.Role) + " cannot use view " + string(view))
		s.LogFailure(ctx, err, "View mode denied", slog.String("user_id", actor.StaffID))
		return "", err
	}
	return view, nil
}

func viewFilter(view domain.ViewMode, actor domain.Actor) domain.ClaimFilter {
	id := actor.StaffID
	switch view {
	case domain.ViewClaimer:
		return domain.ClaimFilter{ClaimerID: &id}
	case domain.ViewApprover:
		return domain.ClaimFilter{ApproverID: &id, ExcludeStatuses: approverHiddenStatuses}
	case domain.ViewFinance:
		return domain.ClaimFilter{FinanceID: &id, Statuses: financeVisibleStatuses}
	default:
		return domain.ClaimFilter{}
	}
}

func parseStatuses(raw []string) ([]domain.ClaimStatus, error) {
	var out []domain.ClaimStatus
	for _, entry := range raw {
		// Accept both repeated params and comma separated lists.
		for _, part := range strings.Split(entry, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			st, ok := domain.ParseClaimStatus(part)
			if !ok {
				return nil, apperrors.NewValidationFailedError("unknown claim status " + part)
			}
			if !slices.Contains(out, st) {
				out = append(out, st)
			}
		}
	}
	return out, nil
}

func canRead(actor domain.Actor, c domain.Claim) bool {
	return actor.Role == domain.RoleAdmin ||
		c.ClaimerID == actor.StaffID ||
		c.ApproverFor(actor.StaffID) >= 0 ||
		c.IsFinance(actor.StaffID)
}
