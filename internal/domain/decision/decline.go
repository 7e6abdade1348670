package decision

import (
	"context"

	"github.com/openpress/editorial/internal/domain/entity"
	"github.com/openpress/editorial/internal/domain/step"
)

type decline struct {
	facts
}

// NewDecline declines a submission after review.
func NewDecline() Type {
	return &decline{facts{
		code:        CodeDecline,
		stageID:     entity.StageExternalReview,
		label:       "Decline Submission",
		description: "This submission will be declined following peer review.",
		completed:   "The submission was declined.",
	}}
}

func (t *decline) NewStatus() *entity.SubmissionStatus {
	return statusPtr(entity.StatusDeclined)
}

func (t *decline) NewReviewRoundStatus() RoundOutcome {
	return RoundFixed(entity.RoundStatusDeclined)
}

func (t *decline) RunAdditionalActions(ctx context.Context, a Actions, d *entity.Decision, s *entity.Submission) error {
	return applyEffects(ctx, t, a, d, s)
}

func (t *decline) Steps(ctx context.Context, sc StepContext, s *entity.Submission, editor *entity.User, rr *entity.ReviewRound) (*step.Workflow, error) {
	return notifyAuthorsWorkflow(ctx, sc, s, t.stageID,
		"Send an email to the authors to let them know that the submission has been declined.")
}

type initialDecline struct {
	facts
}

// NewInitialDecline declines a submission before review begins.
func NewInitialDecline() Type {
	return &initialDecline{facts{
		code:        CodeInitialDecline,
		stageID:     entity.StageSubmission,
		label:       "Decline Submission",
		description: "This submission will be declined without entering review.",
		completed:   "The submission was declined.",
	}}
}

func (t *initialDecline) NewStatus() *entity.SubmissionStatus {
	return statusPtr(entity.StatusDeclined)
}

func (t *initialDecline) RunAdditionalActions(ctx context.Context, a Actions, d *entity.Decision, s *entity.Submission) error {
	return applyEffects(ctx, t, a, d, s)
}

func (t *initialDecline) Steps(ctx context.Context, sc StepContext, s *entity.Submission, editor *entity.User, rr *entity.ReviewRound) (*step.Workflow, error) {
	return notifyAuthorsWorkflow(ctx, sc, s, t.stageID,
		"Send an email to the authors to let them know that the submission has been declined.")
}

type revertDecline struct {
	facts
}

// NewRevertDecline reverses a decline decision taken in review and restores
// the submission to its active state.
func NewRevertDecline() Type {
	return &revertDecline{facts{
		code:        CodeRevertDecline,
		stageID:     entity.StageExternalReview,
		label:       "Revert Decline",
		description: "Reverse the decision to decline this submission and restore it to review.",
		completed:   "The decline decision was reverted.",
	}}
}

func (t *revertDecline) NewStatus() *entity.SubmissionStatus {
	return statusPtr(entity.StatusQueued)
}

// NewReviewRoundStatus is inherited: the round status is recomputed from
// assignment state, since a reverted decline says nothing about reviews.

func (t *revertDecline) RunAdditionalActions(ctx context.Context, a Actions, d *entity.Decision, s *entity.Submission) error {
	return applyEffects(ctx, t, a, d, s)
}

type revertInitialDecline struct {
	facts
}

// NewRevertInitialDecline reverses a pre-review decline.
func NewRevertInitialDecline() Type {
	return &revertInitialDecline{facts{
		code:        CodeRevertInitialDecline,
		stageID:     entity.StageSubmission,
		label:       "Revert Decline",
		description: "Reverse the decision to decline this submission.",
		completed:   "The decline decision was reverted.",
	}}
}

func (t *revertInitialDecline) NewStatus() *entity.SubmissionStatus {
	return statusPtr(entity.StatusQueued)
}

func (t *revertInitialDecline) RunAdditionalActions(ctx context.Context, a Actions, d *entity.Decision, s *entity.Submission) error {
	return applyEffects(ctx, t, a, d, s)
}
