package decision

import (
	"context"
	"fmt"

	"github.com/openpress/editorial/internal/domain/entity"
)

// applyEffects is the shared side-effect recipe every decision type
// delegates to. Order matters: later steps read state written by earlier
// ones.
//
//  1. Apply the type's submission status, if any.
//  2. Apply the promotion target, if any; entering a review stage creates
//     round 1 (pending reviewers) or resets the latest existing round.
//  3. If the decision was taken within a review round, force the type's
//     round status or recompute it from assignment state.
//
// A storage failure aborts the remaining steps and surfaces to the caller.
func applyEffects(ctx context.Context, t Type, a Actions, d *entity.Decision, s *entity.Submission) error {
	if status := t.NewStatus(); status != nil {
		s.Status = *status
		if err := a.UpdateSubmission(ctx, s); err != nil {
			return fmt.Errorf("update submission status: %w", err)
		}
	}

	if target := t.NewStageID(s, d.ReviewRoundID); target != nil {
		s.StageID = *target
		if target.IsReviewStage() {
			stage := *target
			s.LastReviewStage = &stage
		}
		if err := a.UpdateSubmission(ctx, s); err != nil {
			return fmt.Errorf("update submission stage: %w", err)
		}

		if target.IsReviewStage() {
			last, err := a.LastReviewRound(ctx, s.ID, *target)
			if err != nil {
				return fmt.Errorf("look up last review round: %w", err)
			}
			if last == nil {
				rr, err := a.CreateReviewRound(ctx, s.ID, *target, 1, entity.RoundStatusPendingReviewers)
				if err != nil {
					return fmt.Errorf("create review round: %w", err)
				}
				a.ReviewRoundCreated(ctx, rr)
			} else if err := a.SetReviewRoundStatus(ctx, last, entity.RoundStatusPendingReviewers); err != nil {
				return fmt.Errorf("reset review round: %w", err)
			}
		}
	}

	if d.ReviewRoundID != nil {
		rr, err := a.ReviewRound(ctx, *d.ReviewRoundID)
		if err != nil {
			return fmt.Errorf("look up review round: %w", err)
		}
		if status, ok := t.NewReviewRoundStatus().Fixed(); ok {
			if err := a.SetReviewRoundStatus(ctx, rr, status); err != nil {
				return fmt.Errorf("set review round status: %w", err)
			}
		} else if err := a.RecomputeReviewRoundStatus(ctx, rr); err != nil {
			return fmt.Errorf("recompute review round status: %w", err)
		}
	}

	return nil
}
