package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/openpress/editorial/internal/application/port"
	"github.com/openpress/editorial/internal/domain/entity"
	"github.com/openpress/editorial/internal/infrastructure/persistence/sqlite"
	"go.uber.org/zap"
)

// ReviewAssignmentRepository implements port.ReviewAssignmentRepository
// over sqlite.
type ReviewAssignmentRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewReviewAssignmentRepository creates a new review assignment repository
func NewReviewAssignmentRepository(db *sql.DB, logger *zap.Logger) port.ReviewAssignmentRepository {
	return &ReviewAssignmentRepository{db: db, logger: logger}
}

// ByReviewRound returns the round's assignments in creation order.
func (r *ReviewAssignmentRepository) ByReviewRound(ctx context.Context, reviewRoundID int64) ([]*entity.ReviewAssignment, error) {
	query := `
		SELECT review_assignment_id, review_round_id, reviewer_id,
		       date_due, date_completed, date_confirmed, declined, cancelled
		FROM review_assignments
		WHERE review_round_id = ?
		ORDER BY review_assignment_id
	`

	rows, err := sqlite.ExecutorFor(ctx, r.db).QueryContext(ctx, query, reviewRoundID)
	if err != nil {
		r.logger.Error("Failed to query review assignments",
			zap.Int64("review_round_id", reviewRoundID), zap.Error(err))
		return nil, fmt.Errorf("failed to query review assignments: %w", err)
	}
	defer rows.Close()

	var assignments []*entity.ReviewAssignment
	for rows.Next() {
		var a entity.ReviewAssignment
		var due, completed, confirmed sql.NullTime
		if err := rows.Scan(
			&a.ID,
			&a.ReviewRoundID,
			&a.ReviewerID,
			&due,
			&completed,
			&confirmed,
			&a.Declined,
			&a.Cancelled,
		); err != nil {
			return nil, err
		}
		if due.Valid {
			t := due.Time
			a.DateDue = &t
		}
		if completed.Valid {
			t := completed.Time
			a.DateCompleted = &t
		}
		if confirmed.Valid {
			t := confirmed.Time
			a.DateConfirmed = &t
		}
		assignments = append(assignments, &a)
	}
	return assignments, rows.Err()
}
