package port

import (
	"context"

	"github.com/openpress/editorial/internal/domain/entity"
)

// ReviewRoundNotifier is told when a review round needs a status
// notification. Delivery mechanics are external; the engine logs failures
// and moves on.
type ReviewRoundNotifier interface {
	NotifyReviewRoundStatus(ctx context.Context, contextID int64, rr *entity.ReviewRound) error
}
