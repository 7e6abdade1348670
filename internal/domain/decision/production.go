package decision

import (
	"context"

	"github.com/openpress/editorial/internal/domain/entity"
	"github.com/openpress/editorial/internal/domain/step"
)

type sendToProduction struct {
	facts
}

// NewSendToProduction moves the submission from copyediting to production.
func NewSendToProduction() Type {
	return &sendToProduction{facts{
		code:        CodeSendToProduction,
		stageID:     entity.StageCopyediting,
		label:       "Send to Production",
		description: "This submission is ready to be sent to the production stage.",
		completed:   "The submission was sent to production.",
	}}
}

func (t *sendToProduction) NewStageID(*entity.Submission, *int64) *entity.StageID {
	return stagePtr(entity.StageProduction)
}

func (t *sendToProduction) RunAdditionalActions(ctx context.Context, a Actions, d *entity.Decision, s *entity.Submission) error {
	return applyEffects(ctx, t, a, d, s)
}

func (t *sendToProduction) Steps(ctx context.Context, sc StepContext, s *entity.Submission, editor *entity.User, rr *entity.ReviewRound) (*step.Workflow, error) {
	w, err := notifyAuthorsWorkflow(ctx, sc, s, t.stageID,
		"Send an email to the authors to let them know that the submission is entering production.")
	if err != nil {
		return nil, err
	}
	w.AddStep(step.NewPromoteFilesStep(
		"promoteFiles",
		"Select Files for Production",
		"Select the copyedited files that should be sent to the production stage.",
		[]entity.FileStage{entity.FileStageCopyedited},
		entity.FileStageProof,
	), false)
	return w, nil
}

type backFromProduction struct {
	facts
}

// NewBackFromProduction returns the submission from production to
// copyediting.
func NewBackFromProduction() Type {
	return &backFromProduction{facts{
		code:        CodeBackFromProduction,
		stageID:     entity.StageProduction,
		label:       "Back to Copyediting",
		description: "Return this submission to the copyediting stage.",
		completed:   "The submission was returned to copyediting.",
	}}
}

func (t *backFromProduction) NewStageID(*entity.Submission, *int64) *entity.StageID {
	return stagePtr(entity.StageCopyediting)
}

func (t *backFromProduction) RunAdditionalActions(ctx context.Context, a Actions, d *entity.Decision, s *entity.Submission) error {
	return applyEffects(ctx, t, a, d, s)
}

type backFromCopyediting struct {
	facts
}

// NewBackFromCopyediting returns the submission from copyediting to the
// stage it arrived from: its last review stage, or the submission stage
// when review was skipped.
func NewBackFromCopyediting() Type {
	return &backFromCopyediting{facts{
		code:        CodeBackFromCopyediting,
		stageID:     entity.StageCopyediting,
		label:       "Back to Review",
		description: "Return this submission to the stage it was accepted from.",
		completed:   "The submission was sent back from copyediting.",
	}}
}

func (t *backFromCopyediting) NewStageID(s *entity.Submission, _ *int64) *entity.StageID {
	if s.LastReviewStage != nil {
		stage := *s.LastReviewStage
		return &stage
	}
	return stagePtr(entity.StageSubmission)
}

func (t *backFromCopyediting) RunAdditionalActions(ctx context.Context, a Actions, d *entity.Decision, s *entity.Submission) error {
	return applyEffects(ctx, t, a, d, s)
}
