package service

import (
	"context"
	"fmt"
	"time"

	"github.com/openpress/editorial/internal/application/port"
	"github.com/openpress/editorial/internal/domain/decision"
	"github.com/openpress/editorial/internal/domain/entity"
	"github.com/openpress/editorial/internal/domain/step"
)

// Logger interface for minimal logging dependency
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// RecordRequest carries everything needed to record one decision.
type RecordRequest struct {
	SubmissionID  int64
	EditorID      int64
	Decision      int
	ReviewRoundID *int64
	Actions       []decision.EmailAction

	// AllowedAttachmentStages is the caller's allow-list of file stages a
	// submission-file attachment may come from.
	AllowedAttachmentStages []entity.FileStage
}

// DecisionService records editorial decisions and exposes their wizards.
type DecisionService interface {
	// Record validates the request, persists the decision and applies its
	// side effects. Validation failures return decision.FieldErrors.
	Record(ctx context.Context, req RecordRequest) (*entity.Decision, error)

	// Steps returns the wizard for taking the decision type on the
	// submission, or nil when the type has no interactive workflow.
	Steps(ctx context.Context, code int, submissionID, editorID int64, reviewRoundID *int64) (*step.Workflow, error)

	// Decisions materializes the decisions matching the collector.
	Decisions(ctx context.Context, c *port.DecisionCollector) ([]*entity.Decision, error)

	// ReassignDecisions moves decision authorship between editor accounts.
	ReassignDecisions(ctx context.Context, fromEditorID, toEditorID int64) (int64, error)

	// ValidateRecipients checks that every recipient id resolves to a
	// user, adding a single combined field error when any does not.
	ValidateRecipients(ctx context.Context, field string, ids []int64, locale string, errs decision.FieldErrors) error
}

type decisionServiceImpl struct {
	catalog     *decision.Catalog
	decisions   port.DecisionRepository
	submissions port.SubmissionRepository
	rounds      port.ReviewRoundRepository
	reviews     port.ReviewAssignmentRepository
	assignments port.StageAssignmentRepository
	users       port.UserRepository
	files       port.FileRepository
	notifier    port.ReviewRoundNotifier
	txManager   port.TransactionManager
	logger      Logger
	locks       *submissionLocks
}

// NewDecisionService creates a DecisionService over the given catalog and
// stores.
func NewDecisionService(
	catalog *decision.Catalog,
	decisions port.DecisionRepository,
	submissions port.SubmissionRepository,
	rounds port.ReviewRoundRepository,
	reviews port.ReviewAssignmentRepository,
	assignments port.StageAssignmentRepository,
	users port.UserRepository,
	files port.FileRepository,
	notifier port.ReviewRoundNotifier,
	txManager port.TransactionManager,
	logger Logger,
) DecisionService {
	return &decisionServiceImpl{
		catalog:     catalog,
		decisions:   decisions,
		submissions: submissions,
		rounds:      rounds,
		reviews:     reviews,
		assignments: assignments,
		users:       users,
		files:       files,
		notifier:    notifier,
		txManager:   txManager,
		logger:      logger,
		locks:       newSubmissionLocks(),
	}
}

// Record records one decision: validate, insert, side effects. Concurrent
// decisions on the same submission are serialized; the insert and the side
// effects share one transaction.
func (s *decisionServiceImpl) Record(ctx context.Context, req RecordRequest) (*entity.Decision, error) {
	s.locks.lock(req.SubmissionID)
	defer s.locks.unlock(req.SubmissionID)

	t, err := s.catalog.Get(req.Decision)
	if err != nil {
		return nil, err
	}

	submission, err := s.submissions.Get(ctx, req.SubmissionID)
	if err != nil {
		return nil, err
	}
	if submission == nil {
		return nil, fmt.Errorf("%w: submission %d not found", decision.ErrPrecondition, req.SubmissionID)
	}

	editor, err := s.users.Get(ctx, req.EditorID)
	if err != nil {
		return nil, err
	}
	if editor == nil {
		return nil, fmt.Errorf("%w: editor %d not found", decision.ErrPrecondition, req.EditorID)
	}

	errs := decision.FieldErrors{}
	if submission.StageID != t.StageID() {
		errs.Add("decision", fmt.Sprintf(
			"This decision cannot be taken while the submission is in the %s stage.", submission.StageID))
	}

	var round *entity.ReviewRound
	if t.IsInReview() {
		if req.ReviewRoundID == nil {
			return nil, fmt.Errorf("%w: decision %d requires a review round id", decision.ErrPrecondition, t.Decision())
		}
		round, err = s.rounds.Get(ctx, *req.ReviewRoundID)
		if err != nil {
			return nil, err
		}
		if round == nil || round.SubmissionID != submission.ID || round.StageID != t.StageID() {
			return nil, fmt.Errorf("%w: review round %d does not belong to submission %d at stage %s",
				decision.ErrPrecondition, *req.ReviewRoundID, submission.ID, t.StageID())
		}
	} else if req.ReviewRoundID != nil {
		return nil, fmt.Errorf("%w: decision %d does not accept a review round id", decision.ErrPrecondition, t.Decision())
	}

	props := &decision.Props{
		Decision:      req.Decision,
		ReviewRoundID: req.ReviewRoundID,
		Actions:       req.Actions,
	}
	if err := s.validateEmailActions(ctx, req.Actions, submission, req.EditorID, req.AllowedAttachmentStages, errs); err != nil {
		return nil, err
	}
	t.Validate(ctx, props, submission, errs)
	if !errs.IsEmpty() {
		return nil, errs
	}

	d := &entity.Decision{
		SubmissionID:  submission.ID,
		EditorID:      editor.ID,
		Decision:      t.Decision(),
		StageID:       t.StageID(),
		ReviewRoundID: req.ReviewRoundID,
		DateDecided:   time.Now(),
	}
	if round != nil {
		r := round.Round
		d.Round = &r
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		id, err := s.decisions.Insert(txCtx, d)
		if err != nil {
			return fmt.Errorf("insert decision: %w", err)
		}
		d.ID = id

		runner := &effectRunner{svc: s, contextID: submission.ContextID}
		if err := t.RunAdditionalActions(txCtx, runner, d, submission); err != nil {
			return fmt.Errorf("run decision actions: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to record decision", "error", err,
			"submission_id", submission.ID, "decision", t.Decision())
		return nil, err
	}

	s.logger.Info("Decision recorded", "id", d.ID, "decision", t.Decision(),
		"submission_id", submission.ID, "editor_id", editor.ID, "stage_id", int(t.StageID()))
	return d, nil
}

// Steps builds the wizard for a decision type.
func (s *decisionServiceImpl) Steps(ctx context.Context, code int, submissionID, editorID int64, reviewRoundID *int64) (*step.Workflow, error) {
	t, err := s.catalog.Get(code)
	if err != nil {
		return nil, err
	}

	submission, err := s.submissions.Get(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if submission == nil {
		return nil, fmt.Errorf("%w: submission %d not found", decision.ErrPrecondition, submissionID)
	}

	editor, err := s.users.Get(ctx, editorID)
	if err != nil {
		return nil, err
	}

	var round *entity.ReviewRound
	if t.IsInReview() {
		if reviewRoundID == nil {
			return nil, fmt.Errorf("%w: decision %d requires a review round id", decision.ErrPrecondition, t.Decision())
		}
		round, err = s.rounds.Get(ctx, *reviewRoundID)
		if err != nil {
			return nil, err
		}
		if round == nil || round.SubmissionID != submission.ID || round.StageID != t.StageID() {
			return nil, fmt.Errorf("%w: review round %d does not belong to submission %d at stage %s",
				decision.ErrPrecondition, *reviewRoundID, submission.ID, t.StageID())
		}
	}

	return t.Steps(ctx, s, submission, editor, round)
}

// Decisions materializes a collector query through the lazy iterator.
func (s *decisionServiceImpl) Decisions(ctx context.Context, c *port.DecisionCollector) ([]*entity.Decision, error) {
	it, err := s.decisions.Query(ctx, c)
	if err != nil {
		return nil, err
	}
	defer it.Close()

	var out []*entity.Decision
	for it.Next() {
		out = append(out, it.Decision())
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ReassignDecisions moves decision authorship between editor accounts.
func (s *decisionServiceImpl) ReassignDecisions(ctx context.Context, fromEditorID, toEditorID int64) (int64, error) {
	n, err := s.decisions.ReassignDecisions(ctx, fromEditorID, toEditorID)
	if err != nil {
		s.logger.Error("Failed to reassign decisions", "error", err,
			"from_editor_id", fromEditorID, "to_editor_id", toEditorID)
		return 0, err
	}
	s.logger.Info("Decisions reassigned", "count", n,
		"from_editor_id", fromEditorID, "to_editor_id", toEditorID)
	return n, nil
}

// StageParticipants implements decision.StepContext.
func (s *decisionServiceImpl) StageParticipants(ctx context.Context, submissionID int64, stage entity.StageID, role entity.RoleID) ([]*entity.User, error) {
	return s.assignments.ParticipantsByRole(ctx, submissionID, stage, role)
}

// DecidingEditors implements decision.StepContext.
func (s *decisionServiceImpl) DecidingEditors(ctx context.Context, submissionID int64, stage entity.StageID) ([]*entity.User, error) {
	return s.assignments.DecidingEditors(ctx, submissionID, stage)
}

// ActiveReviewers implements decision.StepContext.
func (s *decisionServiceImpl) ActiveReviewers(ctx context.Context, reviewRoundID int64) ([]*entity.User, error) {
	all, err := s.reviews.ByReviewRound(ctx, reviewRoundID)
	if err != nil {
		return nil, err
	}
	active := make([]*entity.ReviewAssignment, 0, len(all))
	for _, a := range all {
		if a.IsActive() {
			active = append(active, a)
		}
	}
	return s.ReviewersFromAssignments(ctx, active)
}

// ReviewersFromAssignments resolves each assignment's reviewer, preserving
// input order and duplicates.
func (s *decisionServiceImpl) ReviewersFromAssignments(ctx context.Context, assignments []*entity.ReviewAssignment) ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(assignments))
	for _, a := range assignments {
		u, err := s.users.Get(ctx, a.ReviewerID)
		if err != nil {
			return nil, err
		}
		if u == nil {
			s.logger.Error("Review assignment references missing user",
				"assignment_id", a.ID, "reviewer_id", a.ReviewerID)
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

// effectRunner adapts the stores to the decision.Actions surface for one
// recording.
type effectRunner struct {
	svc       *decisionServiceImpl
	contextID int64
}

func (r *effectRunner) UpdateSubmission(ctx context.Context, s *entity.Submission) error {
	return r.svc.submissions.Update(ctx, s)
}

func (r *effectRunner) ReviewRound(ctx context.Context, id int64) (*entity.ReviewRound, error) {
	rr, err := r.svc.rounds.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if rr == nil {
		return nil, fmt.Errorf("%w: review round %d not found", decision.ErrPrecondition, id)
	}
	return rr, nil
}

func (r *effectRunner) LastReviewRound(ctx context.Context, submissionID int64, stage entity.StageID) (*entity.ReviewRound, error) {
	return r.svc.rounds.GetLastBySubmissionAndStage(ctx, submissionID, stage)
}

func (r *effectRunner) CreateReviewRound(ctx context.Context, submissionID int64, stage entity.StageID, round int, status entity.RoundStatus) (*entity.ReviewRound, error) {
	return r.svc.rounds.Build(ctx, submissionID, stage, round, status)
}

func (r *effectRunner) SetReviewRoundStatus(ctx context.Context, rr *entity.ReviewRound, status entity.RoundStatus) error {
	return r.svc.rounds.UpdateStatus(ctx, rr, status)
}

func (r *effectRunner) RecomputeReviewRoundStatus(ctx context.Context, rr *entity.ReviewRound) error {
	return r.svc.rounds.RecomputeStatus(ctx, rr)
}

func (r *effectRunner) ReviewRoundCreated(ctx context.Context, rr *entity.ReviewRound) {
	if r.svc.notifier == nil {
		return
	}
	if err := r.svc.notifier.NotifyReviewRoundStatus(ctx, r.contextID, rr); err != nil {
		r.svc.logger.Error("Failed to send review round notification",
			"error", err, "review_round_id", rr.ID)
	}
}
