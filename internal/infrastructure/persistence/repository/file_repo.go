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

// FileRepository implements port.FileRepository over sqlite. Only the
// metadata needed for attachment validation is read; file bytes live
// elsewhere.
type FileRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewFileRepository creates a new file repository
func NewFileRepository(db *sql.DB, logger *zap.Logger) port.FileRepository {
	return &FileRepository{db: db, logger: logger}
}

// TemporaryFile returns the temporary file, or nil when absent.
func (r *FileRepository) TemporaryFile(ctx context.Context, id int64) (*entity.TemporaryFile, error) {
	query := `
		SELECT temporary_file_id, user_id, file_name
		FROM temporary_files
		WHERE temporary_file_id = ?
	`

	var f entity.TemporaryFile
	err := sqlite.ExecutorFor(ctx, r.db).QueryRowContext(ctx, query, id).Scan(&f.ID, &f.UserID, &f.FileName)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get temporary file", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get temporary file: %w", err)
	}
	return &f, nil
}

// SubmissionFile returns the submission file, or nil when absent.
func (r *FileRepository) SubmissionFile(ctx context.Context, id int64) (*entity.SubmissionFile, error) {
	query := `
		SELECT submission_file_id, submission_id, file_stage, name
		FROM submission_files
		WHERE submission_file_id = ?
	`

	var f entity.SubmissionFile
	var fileStage int
	err := sqlite.ExecutorFor(ctx, r.db).QueryRowContext(ctx, query, id).Scan(&f.ID, &f.SubmissionID, &fileStage, &f.Name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get submission file", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get submission file: %w", err)
	}
	f.FileStage = entity.FileStage(fileStage)
	return &f, nil
}

// LibraryFile returns the library file, or nil when absent.
func (r *FileRepository) LibraryFile(ctx context.Context, id int64) (*entity.LibraryFile, error) {
	query := `
		SELECT library_file_id, context_id, submission_id, name
		FROM library_files
		WHERE library_file_id = ?
	`

	var f entity.LibraryFile
	var submissionID sql.NullInt64
	err := sqlite.ExecutorFor(ctx, r.db).QueryRowContext(ctx, query, id).Scan(&f.ID, &f.ContextID, &submissionID, &f.Name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get library file", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get library file: %w", err)
	}
	if submissionID.Valid {
		f.SubmissionID = &submissionID.Int64
	}
	return &f, nil
}
