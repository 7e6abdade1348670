package decision

import (
	"context"

	"github.com/openpress/editorial/internal/domain/entity"
	"github.com/openpress/editorial/internal/domain/step"
)

// Decision codes. Stable across deployments: persisted decisions reference
// them forever, so values are never reused.
const (
	CodeAccept                    = 1
	CodePendingRevisions          = 2
	CodeResubmit                  = 3
	CodeDecline                   = 4
	CodeSendToProduction          = 7
	CodeExternalReview            = 8
	CodeInitialDecline            = 9
	CodeRecommendAccept           = 11
	CodeRecommendPendingRevisions = 12
	CodeRecommendResubmit         = 13
	CodeRecommendDecline          = 14
	CodeNewExternalReviewRound    = 16
	CodeRevertDecline             = 17
	CodeRevertInitialDecline      = 18
	CodeSkipExternalReview        = 19
	CodeBackFromProduction        = 20
	CodeBackFromCopyediting       = 21
)

type accept struct {
	facts
}

// NewAccept accepts the submission for publication and moves it to
// copyediting.
func NewAccept() Type {
	return &accept{facts{
		code:        CodeAccept,
		stageID:     entity.StageExternalReview,
		label:       "Accept Submission",
		description: "This submission will be accepted for publication and sent to copyediting.",
		completed:   "The submission was accepted and sent to copyediting.",
	}}
}

func (t *accept) NewReviewRoundStatus() RoundOutcome {
	return RoundFixed(entity.RoundStatusAccepted)
}

func (t *accept) NewStageID(*entity.Submission, *int64) *entity.StageID {
	return stagePtr(entity.StageCopyediting)
}

func (t *accept) RunAdditionalActions(ctx context.Context, a Actions, d *entity.Decision, s *entity.Submission) error {
	return applyEffects(ctx, t, a, d, s)
}

func (t *accept) Steps(ctx context.Context, sc StepContext, s *entity.Submission, editor *entity.User, rr *entity.ReviewRound) (*step.Workflow, error) {
	w := step.NewWorkflow()

	authors, err := sc.StageParticipants(ctx, s.ID, t.stageID, entity.RoleAuthor)
	if err != nil {
		return nil, err
	}
	notifyAuthors := step.NewEmailStep(
		"notifyAuthors",
		"Notify Authors",
		"Send an email to the authors to let them know that their submission has been accepted.",
		step.Recipients(authors),
	)
	notifyAuthors.AttachmentStages = []entity.FileStage{entity.FileStageReviewRevision, entity.FileStageAttachment}
	w.AddStep(notifyAuthors, false)

	if rr != nil {
		reviewers, err := sc.ActiveReviewers(ctx, rr.ID)
		if err != nil {
			return nil, err
		}
		if len(reviewers) > 0 {
			notifyReviewers := step.NewEmailStep(
				"notifyReviewers",
				"Notify Reviewers",
				"Send an email to the reviewers to thank them for their review.",
				step.Recipients(reviewers),
			)
			notifyReviewers.CanChangeRecipients = true
			w.AddStep(notifyReviewers, false)
		}
	}

	w.AddStep(step.NewPromoteFilesStep(
		"promoteFiles",
		"Select Files for Copyediting",
		"Select the files that should be sent to the copyediting stage.",
		[]entity.FileStage{entity.FileStageReviewRevision, entity.FileStageReviewFile},
		entity.FileStageFinal,
	), false)

	return w, nil
}
