// Package decision defines the closed catalog of editorial decision types:
// the compile-time facts of each action (stage, resulting statuses,
// promotion target), its validation, its side effects, and the wizard
// steps required before it can be committed.
package decision

import (
	"context"

	"github.com/openpress/editorial/internal/domain/entity"
	"github.com/openpress/editorial/internal/domain/step"
)

// Type is the polymorphic contract implemented once per decision code.
type Type interface {
	// Decision returns the stable numeric code, unique across the catalog.
	Decision() int

	// StageID returns the only workflow stage this decision may be taken in.
	StageID() entity.StageID

	// Label returns the human-readable name of the decision.
	Label() string

	// Description explains what taking the decision does.
	Description() string

	// CompletedLabel is shown after the decision has been recorded.
	CompletedLabel() string

	// NewStatus returns the submission status to apply, or nil for no change.
	NewStatus() *entity.SubmissionStatus

	// NewReviewRoundStatus returns what happens to the review round the
	// decision was taken in.
	NewReviewRoundStatus() RoundOutcome

	// NewStageID returns the stage the submission is promoted to, or nil
	// when the decision does not move it. Pure: no side effects, reads
	// only its inputs.
	NewStageID(s *entity.Submission, reviewRoundID *int64) *entity.StageID

	// IsInReview reports whether the decision is taken inside a review
	// stage and therefore requires a review round id.
	IsInReview() bool

	// IsRecommendation reports whether this is a recommendation by a
	// recommend-only assignee rather than a direct decision.
	IsRecommendation() bool

	// Validate adds type-specific field errors beyond the generic checks.
	// It must record failures rather than return them.
	Validate(ctx context.Context, props *Props, s *entity.Submission, errs FieldErrors)

	// RunAdditionalActions applies the decision's side effects to the
	// submission and review rounds through the given collaborators.
	RunAdditionalActions(ctx context.Context, a Actions, d *entity.Decision, s *entity.Submission) error

	// Steps returns the wizard for this decision, or nil when it has no
	// interactive workflow and can be recorded directly.
	Steps(ctx context.Context, sc StepContext, s *entity.Submission, editor *entity.User, rr *entity.ReviewRound) (*step.Workflow, error)
}

// Actions is the narrow collaborator surface side effects run against. The
// application layer implements it over the stores; each call is atomic
// against its own entity.
type Actions interface {
	// UpdateSubmission persists the submission's mutated fields.
	UpdateSubmission(ctx context.Context, s *entity.Submission) error

	// ReviewRound loads a round by id.
	ReviewRound(ctx context.Context, id int64) (*entity.ReviewRound, error)

	// LastReviewRound returns the most recent round for the stage, or nil.
	LastReviewRound(ctx context.Context, submissionID int64, stage entity.StageID) (*entity.ReviewRound, error)

	// CreateReviewRound creates and persists a new round.
	CreateReviewRound(ctx context.Context, submissionID int64, stage entity.StageID, round int, status entity.RoundStatus) (*entity.ReviewRound, error)

	// SetReviewRoundStatus forces a status on the round.
	SetReviewRoundStatus(ctx context.Context, rr *entity.ReviewRound, status entity.RoundStatus) error

	// RecomputeReviewRoundStatus derives the round status from its current
	// review assignment state.
	RecomputeReviewRoundStatus(ctx context.Context, rr *entity.ReviewRound) error

	// ReviewRoundCreated signals that a round needs a status notification.
	// Delivery is external; failures must not abort the decision.
	ReviewRoundCreated(ctx context.Context, rr *entity.ReviewRound)
}

// StepContext answers the stage-participant queries needed while composing
// steps.
type StepContext interface {
	// StageParticipants returns the distinct users holding the role on the
	// submission at the stage.
	StageParticipants(ctx context.Context, submissionID int64, stage entity.StageID, role entity.RoleID) ([]*entity.User, error)

	// DecidingEditors returns the distinct manager and sub-editor
	// assignees who may finalize decisions; recommend-only assignees are
	// excluded.
	DecidingEditors(ctx context.Context, submissionID int64, stage entity.StageID) ([]*entity.User, error)

	// ActiveReviewers returns the reviewers of the round whose assignments
	// are neither declined nor cancelled, in assignment order with
	// duplicates preserved.
	ActiveReviewers(ctx context.Context, reviewRoundID int64) ([]*entity.User, error)
}
