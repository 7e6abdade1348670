package decision

import (
	"context"

	"github.com/openpress/editorial/internal/domain/entity"
	"github.com/openpress/editorial/internal/domain/step"
)

type externalReview struct {
	facts
}

// NewExternalReview sends the submission to the external review stage.
func NewExternalReview() Type {
	return &externalReview{facts{
		code:        CodeExternalReview,
		stageID:     entity.StageSubmission,
		label:       "Send to Review",
		description: "This submission will be sent to the external review stage.",
		completed:   "The submission was sent to external review.",
	}}
}

func (t *externalReview) NewStageID(*entity.Submission, *int64) *entity.StageID {
	return stagePtr(entity.StageExternalReview)
}

func (t *externalReview) RunAdditionalActions(ctx context.Context, a Actions, d *entity.Decision, s *entity.Submission) error {
	return applyEffects(ctx, t, a, d, s)
}

func (t *externalReview) Steps(ctx context.Context, sc StepContext, s *entity.Submission, editor *entity.User, rr *entity.ReviewRound) (*step.Workflow, error) {
	w, err := notifyAuthorsWorkflow(ctx, sc, s, t.stageID,
		"Send an email to the authors to let them know that the submission is entering review.")
	if err != nil {
		return nil, err
	}
	w.AddStep(step.NewPromoteFilesStep(
		"promoteFiles",
		"Select Files for Review",
		"Select the files that should be made available to reviewers.",
		[]entity.FileStage{entity.FileStageSubmission},
		entity.FileStageReviewFile,
	), false)
	return w, nil
}

type skipExternalReview struct {
	facts
}

// NewSkipExternalReview accepts the submission without review and sends it
// straight to copyediting.
func NewSkipExternalReview() Type {
	return &skipExternalReview{facts{
		code:        CodeSkipExternalReview,
		stageID:     entity.StageSubmission,
		label:       "Accept and Skip Review",
		description: "This submission will skip the review stage and be sent to copyediting.",
		completed:   "The submission was accepted and sent to copyediting without review.",
	}}
}

func (t *skipExternalReview) NewStageID(*entity.Submission, *int64) *entity.StageID {
	return stagePtr(entity.StageCopyediting)
}

func (t *skipExternalReview) RunAdditionalActions(ctx context.Context, a Actions, d *entity.Decision, s *entity.Submission) error {
	return applyEffects(ctx, t, a, d, s)
}

func (t *skipExternalReview) Steps(ctx context.Context, sc StepContext, s *entity.Submission, editor *entity.User, rr *entity.ReviewRound) (*step.Workflow, error) {
	w, err := notifyAuthorsWorkflow(ctx, sc, s, t.stageID,
		"Send an email to the authors to let them know that the submission has been accepted.")
	if err != nil {
		return nil, err
	}
	w.AddStep(step.NewPromoteFilesStep(
		"promoteFiles",
		"Select Files for Copyediting",
		"Select the files that should be sent to the copyediting stage.",
		[]entity.FileStage{entity.FileStageSubmission},
		entity.FileStageFinal,
	), false)
	return w, nil
}
