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

// SubmissionRepository implements port.SubmissionRepository over sqlite.
type SubmissionRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSubmissionRepository creates a new submission repository
func NewSubmissionRepository(db *sql.DB, logger *zap.Logger) port.SubmissionRepository {
	return &SubmissionRepository{db: db, logger: logger}
}

// Get retrieves a submission by id, or nil when absent.
func (r *SubmissionRepository) Get(ctx context.Context, id int64) (*entity.Submission, error) {
	query := `
		SELECT submission_id, context_id, stage_id, status, locale,
		       last_review_stage_id, created_at, updated_at
		FROM submissions
		WHERE submission_id = ?
	`

	var s entity.Submission
	var stageID, status int
	var lastReviewStage sql.NullInt64

	err := sqlite.ExecutorFor(ctx, r.db).QueryRowContext(ctx, query, id).Scan(
		&s.ID,
		&s.ContextID,
		&stageID,
		&status,
		&s.Locale,
		&lastReviewStage,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get submission", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}

	s.StageID = entity.StageID(stageID)
	s.Status = entity.SubmissionStatus(status)
	if lastReviewStage.Valid {
		stage := entity.StageID(lastReviewStage.Int64)
		s.LastReviewStage = &stage
	}
	return &s, nil
}

// Update persists the submission's mutable fields.
func (r *SubmissionRepository) Update(ctx context.Context, s *entity.Submission) error {
	query := `
		UPDATE submissions
		SET stage_id = ?, status = ?, locale = ?, last_review_stage_id = ?, updated_at = ?
		WHERE submission_id = ?
	`

	var lastReviewStage interface{}
	if s.LastReviewStage != nil {
		lastReviewStage = int(*s.LastReviewStage)
	}

	s.UpdatedAt = time.Now()
	result, err := sqlite.ExecutorFor(ctx, r.db).ExecContext(ctx, query,
		int(s.StageID),
		int(s.Status),
		s.Locale,
		lastReviewStage,
		s.UpdatedAt,
		s.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update submission", zap.Int64("id", s.ID), zap.Error(err))
		return fmt.Errorf("failed to update submission: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("submission %d not found", s.ID)
	}
	return nil
}
