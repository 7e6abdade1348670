package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/openpress/editorial/internal/application/port"
	"github.com/openpress/editorial/internal/domain/entity"
	"github.com/openpress/editorial/internal/infrastructure/persistence/sqlite"
	"go.uber.org/zap"
)

// ReviewRoundRepository implements port.ReviewRoundRepository over sqlite.
type ReviewRoundRepository struct {
	db          *sql.DB
	assignments port.ReviewAssignmentRepository
	logger      *zap.Logger
}

// NewReviewRoundRepository creates a new review round repository
func NewReviewRoundRepository(db *sql.DB, assignments port.ReviewAssignmentRepository, logger *zap.Logger) port.ReviewRoundRepository {
	return &ReviewRoundRepository{db: db, assignments: assignments, logger: logger}
}

// Get retrieves a round by id, or nil when absent.
func (r *ReviewRoundRepository) Get(ctx context.Context, id int64) (*entity.ReviewRound, error) {
	query := `
		SELECT review_round_id, submission_id, stage_id, round, status
		FROM review_rounds
		WHERE review_round_id = ?
	`

	rr, err := r.scanRound(sqlite.ExecutorFor(ctx, r.db).QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get review round", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get review round: %w", err)
	}
	return rr, nil
}

// GetLastBySubmissionAndStage returns the highest-numbered round for the
// submission at the stage, or nil when none exists.
func (r *ReviewRoundRepository) GetLastBySubmissionAndStage(ctx context.Context, submissionID int64, stage entity.StageID) (*entity.ReviewRound, error) {
	query := `
		SELECT review_round_id, submission_id, stage_id, round, status
		FROM review_rounds
		WHERE submission_id = ? AND stage_id = ?
		ORDER BY round DESC
		LIMIT 1
	`

	rr, err := r.scanRound(sqlite.ExecutorFor(ctx, r.db).QueryRowContext(ctx, query, submissionID, int(stage)))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get last review round",
			zap.Int64("submission_id", submissionID), zap.Int("stage_id", int(stage)), zap.Error(err))
		return nil, fmt.Errorf("failed to get last review round: %w", err)
	}
	return rr, nil
}

// Build creates and persists a new round. The unique constraint on
// (submission, stage, round) rejects duplicates.
func (r *ReviewRoundRepository) Build(ctx context.Context, submissionID int64, stage entity.StageID, round int, status entity.RoundStatus) (*entity.ReviewRound, error) {
	query := `
		INSERT INTO review_rounds (submission_id, stage_id, round, status)
		VALUES (?, ?, ?, ?)
	`

	result, err := sqlite.ExecutorFor(ctx, r.db).ExecContext(ctx, query,
		submissionID, int(stage), round, int(status))
	if err != nil {
		r.logger.Error("Failed to build review round",
			zap.Int64("submission_id", submissionID), zap.Int("round", round), zap.Error(err))
		return nil, fmt.Errorf("failed to build review round: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert id: %w", err)
	}

	return &entity.ReviewRound{
		ID:           id,
		SubmissionID: submissionID,
		StageID:      stage,
		Round:        round,
		Status:       status,
	}, nil
}

// UpdateStatus forces a status on the round.
func (r *ReviewRoundRepository) UpdateStatus(ctx context.Context, rr *entity.ReviewRound, status entity.RoundStatus) error {
	query := `UPDATE review_rounds SET status = ? WHERE review_round_id = ?`

	if _, err := sqlite.ExecutorFor(ctx, r.db).ExecContext(ctx, query, int(status), rr.ID); err != nil {
		r.logger.Error("Failed to update review round status",
			zap.Int64("id", rr.ID), zap.Int("status", int(status)), zap.Error(err))
		return fmt.Errorf("failed to update review round status: %w", err)
	}

	rr.Status = status
	return nil
}

// RecomputeStatus derives the round's status from its active review
// assignments and persists it.
func (r *ReviewRoundRepository) RecomputeStatus(ctx context.Context, rr *entity.ReviewRound) error {
	assignments, err := r.assignments.ByReviewRound(ctx, rr.ID)
	if err != nil {
		return fmt.Errorf("failed to load review assignments: %w", err)
	}
	return r.UpdateStatus(ctx, rr, deriveRoundStatus(assignments, time.Now()))
}

// deriveRoundStatus reduces the active assignments to a round status.
// Declined and cancelled assignments never count.
func deriveRoundStatus(assignments []*entity.ReviewAssignment, now time.Time) entity.RoundStatus {
	var active []*entity.ReviewAssignment
	for _, a := range assignments {
		if a.IsActive() {
			active = append(active, a)
		}
	}

	if len(active) == 0 {
		return entity.RoundStatusPendingReviewers
	}

	incomplete := false
	overdue := false
	unconfirmed := false
	for _, a := range active {
		if a.DateCompleted == nil {
			incomplete = true
			// No due date means the review cannot be overdue.
			if a.DateDue != nil && now.After(*a.DateDue) {
				overdue = true
			}
			continue
		}
		if a.DateConfirmed == nil {
			unconfirmed = true
		}
	}

	switch {
	case overdue:
		return entity.RoundStatusReviewsOverdue
	case incomplete:
		return entity.RoundStatusPendingReviews
	case unconfirmed:
		return entity.RoundStatusReviewsReady
	default:
		return entity.RoundStatusReviewsCompleted
	}
}

func (r *ReviewRoundRepository) scanRound(row *sql.Row) (*entity.ReviewRound, error) {
	var rr entity.ReviewRound
	var stageID, status int
	if err := row.Scan(&rr.ID, &rr.SubmissionID, &stageID, &rr.Round, &status); err != nil {
		return nil, err
	}
	rr.StageID = entity.StageID(stageID)
	rr.Status = entity.RoundStatus(status)
	return &rr, nil
}
