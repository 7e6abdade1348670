package decision

import (
	"context"

	"github.com/openpress/editorial/internal/domain/entity"
	"github.com/openpress/editorial/internal/domain/step"
)

type pendingRevisions struct {
	facts
}

// NewPendingRevisions asks the authors for revisions that will not need a
// new review round.
func NewPendingRevisions() Type {
	return &pendingRevisions{facts{
		code:        CodePendingRevisions,
		stageID:     entity.StageExternalReview,
		label:       "Request Revisions",
		description: "The authors must provide revisions before this submission is accepted.",
		completed:   "Revisions were requested from the authors.",
	}}
}

func (t *pendingRevisions) NewReviewRoundStatus() RoundOutcome {
	return RoundFixed(entity.RoundStatusRevisionsRequested)
}

func (t *pendingRevisions) RunAdditionalActions(ctx context.Context, a Actions, d *entity.Decision, s *entity.Submission) error {
	return applyEffects(ctx, t, a, d, s)
}

func (t *pendingRevisions) Steps(ctx context.Context, sc StepContext, s *entity.Submission, editor *entity.User, rr *entity.ReviewRound) (*step.Workflow, error) {
	return notifyAuthorsWorkflow(ctx, sc, s, t.stageID,
		"Send an email to the authors to let them know that revisions are requested.")
}

type resubmit struct {
	facts
}

// NewResubmit asks the authors for revisions to be resubmitted for another
// round of review.
func NewResubmit() Type {
	return &resubmit{facts{
		code:        CodeResubmit,
		stageID:     entity.StageExternalReview,
		label:       "Resubmit for Review",
		description: "The authors must submit revisions for another round of review.",
		completed:   "The authors were asked to resubmit for a new review round.",
	}}
}

func (t *resubmit) NewReviewRoundStatus() RoundOutcome {
	return RoundFixed(entity.RoundStatusResubmitForReview)
}

func (t *resubmit) RunAdditionalActions(ctx context.Context, a Actions, d *entity.Decision, s *entity.Submission) error {
	return applyEffects(ctx, t, a, d, s)
}

func (t *resubmit) Steps(ctx context.Context, sc StepContext, s *entity.Submission, editor *entity.User, rr *entity.ReviewRound) (*step.Workflow, error) {
	return notifyAuthorsWorkflow(ctx, sc, s, t.stageID,
		"Send an email to the authors to let them know that the submission must be resubmitted for review.")
}

// notifyAuthorsWorkflow builds the single-step wizard shared by decisions
// that only notify the authors.
func notifyAuthorsWorkflow(ctx context.Context, sc StepContext, s *entity.Submission, stage entity.StageID, description string) (*step.Workflow, error) {
	authors, err := sc.StageParticipants(ctx, s.ID, stage, entity.RoleAuthor)
	if err != nil {
		return nil, err
	}
	w := step.NewWorkflow()
	notify := step.NewEmailStep("notifyAuthors", "Notify Authors", description, step.Recipients(authors))
	notify.AttachmentStages = []entity.FileStage{entity.FileStageReviewAttachment, entity.FileStageAttachment}
	w.AddStep(notify, false)
	return w, nil
}
