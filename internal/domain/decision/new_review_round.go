package decision

import (
	"context"
	"fmt"

	"github.com/openpress/editorial/internal/domain/entity"
)

type newExternalReviewRound struct {
	facts
}

// NewNewExternalReviewRound opens another round of external review for a
// submission already in that stage.
func NewNewExternalReviewRound() Type {
	return &newExternalReviewRound{facts{
		code:        CodeNewExternalReviewRound,
		stageID:     entity.StageExternalReview,
		label:       "New Review Round",
		description: "Create a new round of external review for this submission.",
		completed:   "A new review round was created.",
	}}
}

// RunAdditionalActions runs the common recipe, then opens round
// lastRound+1 awaiting reviewers. The current round keeps its recomputed
// status; only the new round is pending.
func (t *newExternalReviewRound) RunAdditionalActions(ctx context.Context, a Actions, d *entity.Decision, s *entity.Submission) error {
	if err := applyEffects(ctx, t, a, d, s); err != nil {
		return err
	}

	last, err := a.LastReviewRound(ctx, s.ID, t.stageID)
	if err != nil {
		return fmt.Errorf("look up last review round: %w", err)
	}
	round := 1
	if last != nil {
		round = last.Round + 1
	}
	rr, err := a.CreateReviewRound(ctx, s.ID, t.stageID, round, entity.RoundStatusPendingReviewers)
	if err != nil {
		return fmt.Errorf("create review round: %w", err)
	}
	a.ReviewRoundCreated(ctx, rr)
	return nil
}
