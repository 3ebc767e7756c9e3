package workflow

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/claims_app/internal/apperrors"
	"github.com/SscSPs/claims_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FinancePool lists finance staff. It is only invoked when a claim becomes Approved
// and has no finance member yet.
type FinancePool func() ([]domain.Staff, error)

// NewClaim carries the attributes of a claim being created.
type NewClaim struct {
	ClaimType         domain.ClaimType
	Name              string
	Remark            string
	Amount            decimal.Decimal
	TotalWorkingHours decimal.Decimal
	StartDate         time.Time
	EndDate           time.Time
	ProjectID         *string
}

// ClaimChanges is a field-level edit of a draft claim. Nil fields are left untouched;
// a ProjectID pointing at "" detaches the claim from its project.
type ClaimChanges struct {
	ClaimType         *domain.ClaimType
	Name              *string
	Remark            *string
	Amount            *decimal.Decimal
	TotalWorkingHours *decimal.Decimal
	StartDate         *time.Time
	EndDate           *time.Time
	ProjectID         *string
}

// Result is the outcome of a transition. Nothing in it has been persisted yet.
type Result struct {
	Claim            domain.Claim
	Message          string
	Notifications    []domain.Notification
	ApproversChanged bool
}

func (r *Result) notify(kind domain.NotificationKind) {
	r.Notifications = append(r.Notifications, domain.Notification{ClaimID: r.Claim.ClaimID, Kind: kind})
}

// Machine applies claim transitions to in-memory claim snapshots. It performs no I/O
// of its own; persistence and notification dispatch belong to the caller.
type Machine struct {
	selector FinanceSelector
	now      func() time.Time
}

// MachineOption configures a Machine.
type MachineOption func(*Machine)

// WithClock overrides the time source.
func WithClock(now func() time.Time) MachineOption {
	return func(m *Machine) {
		m.now = now
	}
}

// NewMachine creates a state machine that assigns finance through selector.
func NewMachine(selector FinanceSelector, opts ...MachineOption) *Machine {
	m := &Machine{
		selector: selector,
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create opens a new draft claim owned by actor. project must be the loaded project
// when in.ProjectID is set.
func (m *Machine) Create(claimID string, actor domain.Actor, in NewClaim, project *domain.Project) (Result, error) {
	now := m.now()
	c := domain.Claim{
		ClaimID:           claimID,
		ClaimType:         in.ClaimType,
		Status:            domain.ClaimDraft,
		Name:              strings.TrimSpace(in.Name),
		Remark:            in.Remark,
		Amount:            in.Amount,
		TotalWorkingHours: in.TotalWorkingHours,
		StartDate:         in.StartDate,
		EndDate:           in.EndDate,
		ClaimerID:         actor.StaffID,
		Approvers:         []domain.ClaimApprover{},
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.StaffID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.StaffID,
		},
	}
	if err := validateFields(c); err != nil {
		return Result{}, err
	}

	if in.ProjectID != nil {
		if err := requireProject(project, *in.ProjectID); err != nil {
			return Result{}, err
		}
		if !project.HasMember(actor.StaffID) {
			return Result{}, apperrors.NewBusinessRuleError("claimant is not a member of project " + project.ProjectID)
		}
		id := project.ProjectID
		c.ProjectID = &id
		name := project.Name
		c.ProjectName = &name
	}

	return Result{Claim: c, Message: "Claim created as draft"}, nil
}

// Submit moves a draft claim into review. First submission assigns approvers from the
// project; a resubmission starts a fresh round on the existing approver set.
func (m *Machine) Submit(current domain.Claim, actor domain.Actor, project *domain.Project, pool FinancePool) (Result, error) {
	c := current.Clone()
	if err := requireStatus(c, domain.ClaimDraft, "submit"); err != nil {
		return Result{}, err
	}
	if c.ClaimerID != actor.StaffID {
		return Result{}, apperrors.NewUnauthorizedError("only the claimant can submit this claim")
	}

	now := m.now()
	message := "Claim submitted"
	switch {
	case len(c.Approvers) > 0:
		c.Approvers = ResetApprovers(c.Approvers, c.ClaimerID, now)
		message = "Claim resubmitted"
	case c.ProjectID != nil:
		if err := requireProject(project, *c.ProjectID); err != nil {
			return Result{}, err
		}
		c.Approvers = AssignApprovers(c.ClaimID, *project, c.ClaimerID, now)
	}

	if len(c.Approvers) == 0 {
		// No project, nobody to review: the claim is self-approved.
		c.Status = domain.ClaimApproved
	} else {
		c.Status = OverallStatus(domain.Decisions(c.Approvers))
	}
	touch(&c, actor, now)

	res := Result{Claim: c, Message: message, ApproversChanged: true}
	res.notify(domain.NotifyClaimSubmitted)
	if c.Status == domain.ClaimApproved {
		if err := m.assignFinance(&res.Claim, pool); err != nil {
			return Result{}, err
		}
		res.notify(domain.NotifyManagerApproved)
	}
	return res, nil
}

// Approve records actor's approval and recomputes the overall status.
func (m *Machine) Approve(current domain.Claim, actor domain.Actor, pool FinancePool) (Result, error) {
	c := current.Clone()
	if err := requireStatus(c, domain.ClaimPending, "approve"); err != nil {
		return Result{}, err
	}
	idx, err := pendingDecision(c, actor)
	if err != nil {
		return Result{}, err
	}

	now := m.now()
	c.Approvers[idx].Status = domain.ApproverApproved
	c.Approvers[idx].DecidedAt = &now
	c.Status = OverallStatus(domain.Decisions(c.Approvers))
	touch(&c, actor, now)

	res := Result{Claim: c, Message: "Claim approved by " + actor.Email, ApproversChanged: true}
	if c.Status == domain.ClaimApproved {
		if err := m.assignFinance(&res.Claim, pool); err != nil {
			return Result{}, err
		}
		res.notify(domain.NotifyManagerApproved)
	}
	return res, nil
}

// Reject ends the claim. A pending claim is rejected by one of its approvers and every
// approver record follows; an approved claim is rejected by finance directly.
func (m *Machine) Reject(current domain.Claim, actor domain.Actor, reason string) (Result, error) {
	c := current.Clone()
	now := m.now()

	if c.Status == domain.ClaimApproved {
		// Approvers reject pending claims only; an approved claim is finance's call.
		if actor.Role != domain.RoleFinance {
			return Result{}, requireStatus(c, domain.ClaimPending, "reject")
		}
		if c.FinanceID != nil && *c.FinanceID != actor.StaffID {
			return Result{}, apperrors.NewUnauthorizedError("claim is assigned to another finance member")
		}
		c.Status = domain.ClaimRejected
		touch(&c, actor, now)
		return Result{Claim: c, Message: withReason("Claim rejected by finance", reason)}, nil
	}

	if err := requireStatus(c, domain.ClaimPending, "reject"); err != nil {
		return Result{}, err
	}
	idx, err := pendingDecision(c, actor)
	if err != nil {
		return Result{}, err
	}

	for i := range c.Approvers {
		c.Approvers[i].Status = domain.ApproverRejected
		if i == idx || c.Approvers[i].DecidedAt == nil {
			decided := now
			c.Approvers[i].DecidedAt = &decided
		}
	}
	c.Status = domain.ClaimRejected
	touch(&c, actor, now)

	return Result{Claim: c, Message: withReason("Claim rejected by "+actor.Email, reason), ApproversChanged: true}, nil
}

// Return sends a pending claim back to its claimant as a draft. Approver records are
// left as they are until the next submission.
func (m *Machine) Return(current domain.Claim, actor domain.Actor, reason string) (Result, error) {
	c := current.Clone()
	if err := requireStatus(c, domain.ClaimPending, "return"); err != nil {
		return Result{}, err
	}
	if c.ApproverFor(actor.StaffID) < 0 && !c.IsFinance(actor.StaffID) {
		return Result{}, apperrors.NewUnauthorizedError("actor is not assigned to this claim")
	}
	if strings.TrimSpace(reason) == "" {
		return Result{}, apperrors.NewValidationFailedError("a reason is required to return a claim")
	}

	now := m.now()
	c.Status = domain.ClaimDraft
	c.Remark = reason
	touch(&c, actor, now)

	res := Result{Claim: c, Message: withReason("Claim returned by "+actor.Email, reason)}
	res.notify(domain.NotifyClaimReturned)
	return res, nil
}

// Cancel withdraws a draft claim. Only its claimant may do so.
func (m *Machine) Cancel(current domain.Claim, actor domain.Actor, reason string) (Result, error) {
	c := current.Clone()
	if err := requireStatus(c, domain.ClaimDraft, "cancel"); err != nil {
		return Result{}, err
	}
	if c.ClaimerID != actor.StaffID {
		return Result{}, apperrors.NewUnauthorizedError("only the claimant can cancel this claim")
	}
	if strings.TrimSpace(reason) == "" {
		return Result{}, apperrors.NewValidationFailedError("a reason is required to cancel a claim")
	}

	now := m.now()
	c.Status = domain.ClaimCancelled
	c.Remark = reason
	touch(&c, actor, now)

	res := Result{Claim: c, Message: withReason("Claim cancelled", reason)}
	res.notify(domain.NotifyClaimReturned)
	return res, nil
}

// Pay settles an approved claim. Only the assigned finance member may pay.
func (m *Machine) Pay(current domain.Claim, actor domain.Actor) (Result, error) {
	c := current.Clone()
	if err := requireStatus(c, domain.ClaimApproved, "pay"); err != nil {
		return Result{}, err
	}
	if !c.IsFinance(actor.StaffID) {
		return Result{}, apperrors.NewUnauthorizedError("only the assigned finance member can pay this claim")
	}

	now := m.now()
	c.Status = domain.ClaimPaid
	touch(&c, actor, now)

	res := Result{Claim: c, Message: "Claim paid by " + actor.Email}
	res.notify(domain.NotifyClaimApproved)
	return res, nil
}

// Update edits a draft claim's fields. Moving the claim to another project drops its
// approvers; they are assigned again on the next submission.
func (m *Machine) Update(current domain.Claim, actor domain.Actor, changes ClaimChanges, project *domain.Project) (Result, error) {
	c := current.Clone()
	if err := requireStatus(c, domain.ClaimDraft, "update"); err != nil {
		return Result{}, err
	}
	if c.ClaimerID != actor.StaffID && c.ApproverFor(actor.StaffID) < 0 && !c.IsFinance(actor.StaffID) {
		return Result{}, apperrors.NewUnauthorizedError("actor cannot edit this claim")
	}

	if changes.ClaimType != nil {
		c.ClaimType = *changes.ClaimType
	}
	if changes.Name != nil {
		c.Name = strings.TrimSpace(*changes.Name)
	}
	if changes.Remark != nil {
		c.Remark = *changes.Remark
	}
	if changes.Amount != nil {
		c.Amount = *changes.Amount
	}
	if changes.TotalWorkingHours != nil {
		c.TotalWorkingHours = *changes.TotalWorkingHours
	}
	if changes.StartDate != nil {
		c.StartDate = *changes.StartDate
	}
	if changes.EndDate != nil {
		c.EndDate = *changes.EndDate
	}
	if err := validateFields(c); err != nil {
		return Result{}, err
	}

	approversChanged := false
	if changes.ProjectID != nil {
		target := *changes.ProjectID
		switch {
		case target == "":
			if c.ProjectID != nil {
				c.ProjectID = nil
				c.ProjectName = nil
				c.Approvers = []domain.ClaimApprover{}
				approversChanged = true
			}
		case c.ProjectID == nil || *c.ProjectID != target:
			if err := requireProject(project, target); err != nil {
				return Result{}, err
			}
			if !project.HasMember(c.ClaimerID) {
				return Result{}, apperrors.NewBusinessRuleError("claimant is not a member of project " + target)
			}
			c.ProjectID = &target
			name := project.Name
			c.ProjectName = &name
			c.Approvers = []domain.ClaimApprover{}
			approversChanged = true
		}
	}

	now := m.now()
	touch(&c, actor, now)

	res := Result{Claim: c, Message: "Claim updated by " + actor.Email, ApproversChanged: approversChanged}
	res.notify(domain.NotifyClaimSubmitted)
	return res, nil
}

// assignFinance sets the finance member once; an existing assignment is never replaced.
func (m *Machine) assignFinance(c *domain.Claim, pool FinancePool) error {
	if c.FinanceID != nil {
		return nil
	}
	if pool == nil {
		return apperrors.NewBusinessRuleError("no eligible finance staff available")
	}
	staff, err := pool()
	if err != nil {
		return err
	}
	chosen, err := m.selector.Select(EligibleFinance(staff, c.ClaimerID))
	if err != nil {
		return err
	}
	id := chosen.StaffID
	c.FinanceID = &id
	return nil
}

func requireStatus(c domain.Claim, want domain.ClaimStatus, op string) error {
	if c.Status != want {
		return apperrors.NewBusinessRuleError(fmt.Sprintf("cannot %s a claim in status %s", op, c.Status))
	}
	return nil
}

func requireProject(project *domain.Project, projectID string) error {
	if project == nil || project.ProjectID != projectID {
		return apperrors.NewNotFoundError("project " + projectID + " not found")
	}
	return nil
}

// pendingDecision finds actor's approver record and checks it is still undecided.
func pendingDecision(c domain.Claim, actor domain.Actor) (int, error) {
	idx := c.ApproverFor(actor.StaffID)
	if idx < 0 {
		return -1, apperrors.NewUnauthorizedError("actor is not an approver of this claim")
	}
	if c.Approvers[idx].Status != domain.ApproverPending {
		return -1, apperrors.NewBusinessRuleError("approver has already decided on this claim")
	}
	return idx, nil
}

func validateFields(c domain.Claim) error {
	if c.Name == "" {
		return apperrors.NewValidationFailedError("claim name is required")
	}
	if _, ok := domain.ParseClaimType(string(c.ClaimType)); !ok {
		return apperrors.NewValidationFailedError("unknown claim type " + string(c.ClaimType))
	}
	if c.Amount.IsNegative() {
		return apperrors.NewValidationFailedError("amount must not be negative")
	}
	if c.TotalWorkingHours.IsNegative() {
		return apperrors.NewValidationFailedError("total working hours must not be negative")
	}
	if c.StartDate.After(c.EndDate) {
		return apperrors.NewValidationFailedError("start date must not be after end date")
	}
	return nil
}

func touch(c *domain.Claim, actor domain.Actor, now time.Time) {
	c.LastUpdatedAt = now
	c.LastUpdatedBy = actor.StaffID
}

func withReason(msg, reason string) string {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return msg
	}
	return msg + ": " + reason
}
