package decision

import (
	"context"

	"github.com/openpress/editorial/internal/domain/entity"
	"github.com/openpress/editorial/internal/domain/step"
)

// recommendation is a decision suggested by a recommend-only assignee.
// Recording one changes no submission or round state beyond the round
// status recompute; the deciding editors act on it separately.
type recommendation struct {
	facts
}

func newRecommendation(code int, label, description string) Type {
	return &recommendation{facts{
		code:           code,
		stageID:        entity.StageExternalReview,
		label:          label,
		description:    description,
		completed:      "Your recommendation was recorded and the deciding editors were notified.",
		recommendation: true,
	}}
}

// NewRecommendAccept recommends accepting the submission.
func NewRecommendAccept() Type {
	return newRecommendation(CodeRecommendAccept, "Recommend Accept",
		"Recommend that this submission be accepted for publication.")
}

// NewRecommendPendingRevisions recommends requesting revisions.
func NewRecommendPendingRevisions() Type {
	return newRecommendation(CodeRecommendPendingRevisions, "Recommend Revisions",
		"Recommend that revisions be requested from the authors.")
}

// NewRecommendResubmit recommends asking for a new round of review.
func NewRecommendResubmit() Type {
	return newRecommendation(CodeRecommendResubmit, "Recommend Resubmit",
		"Recommend that the authors resubmit for another round of review.")
}

// NewRecommendDecline recommends declining the submission.
func NewRecommendDecline() Type {
	return newRecommendation(CodeRecommendDecline, "Recommend Decline",
		"Recommend that this submission be declined.")
}

func (t *recommendation) RunAdditionalActions(ctx context.Context, a Actions, d *entity.Decision, s *entity.Submission) error {
	return applyEffects(ctx, t, a, d, s)
}

func (t *recommendation) Steps(ctx context.Context, sc StepContext, s *entity.Submission, editor *entity.User, rr *entity.ReviewRound) (*step.Workflow, error) {
	editors, err := sc.DecidingEditors(ctx, s.ID, t.stageID)
	if err != nil {
		return nil, err
	}
	w := step.NewWorkflow()
	discussion := step.NewEmailStep(
		"discussion",
		"Notify Editors",
		"Send an email to the deciding editors to let them know about your recommendation.",
		step.Recipients(editors),
	)
	discussion.CanSkip = false
	discussion.AttachmentStages = []entity.FileStage{entity.FileStageReviewAttachment, entity.FileStageAttachment}
	w.AddStep(discussion, false)
	return w, nil
}
