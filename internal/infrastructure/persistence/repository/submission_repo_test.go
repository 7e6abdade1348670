package repository

import (
	"context"
	"testing"

	"github.com/openpress/editorial/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSubmissionRepositoryGetAndUpdate(t *testing.T) {
	db := newTestDB(t)
	seedSubmission(t, db, 1, 7, int(entity.StageSubmission))
	repo := NewSubmissionRepository(db.DB, zap.NewNop())
	ctx := context.Background()

	s, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, int64(7), s.ContextID)
	assert.Equal(t, entity.StageSubmission, s.StageID)
	assert.Equal(t, entity.StatusQueued, s.Status)
	assert.Equal(t, "en", s.Locale)
	assert.Nil(t, s.LastReviewStage)

	stage := entity.StageExternalReview
	s.StageID = stage
	s.Status = entity.StatusDeclined
	s.LastReviewStage = &stage
	require.NoError(t, repo.Update(ctx, s))

	got, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, entity.StageExternalReview, got.StageID)
	assert.Equal(t, entity.StatusDeclined, got.Status)
	require.NotNil(t, got.LastReviewStage)
	assert.Equal(t, entity.StageExternalReview, *got.LastReviewStage)
}

func TestSubmissionRepositoryMissing(t *testing.T) {
	db := newTestDB(t)
	repo := NewSubmissionRepository(db.DB, zap.NewNop())
	ctx := context.Background()

	s, err := repo.Get(ctx, 99)
	require.NoError(t, err)
	assert.Nil(t, s)

	err = repo.Update(ctx, &entity.Submission{ID: 99, StageID: entity.StageSubmission, Status: entity.StatusQueued, Locale: "en"})
	assert.Error(t, err)
}

func TestUserRepositoryGet(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, 1, "ada", "Ada", "Author")
	repo := NewUserRepository(db.DB, zap.NewNop())
	ctx := context.Background()

	u, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "Ada Author", u.FullName())
	assert.Equal(t, "ada@example.com", u.Email)

	missing, err := repo.Get(ctx, 2)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestFileRepository(t *testing.T) {
	db := newTestDB(t)
	seedSubmission(t, db, 1, 1, int(entity.StageExternalReview))
	seedUser(t, db, 1, "ada", "", "")

	_, err := db.Exec(`INSERT INTO temporary_files (temporary_file_id, user_id, file_name) VALUES (1, 1, 'draft.pdf')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO submission_files (submission_file_id, submission_id, file_stage, name) VALUES (1, 1, ?, 'review.pdf')`,
		int(entity.FileStageReviewFile))
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO library_files (library_file_id, context_id, submission_id, name) VALUES (1, 1, NULL, 'guidelines.pdf')`)
	require.NoError(t, err)

	repo := NewFileRepository(db.DB, zap.NewNop())
	ctx := context.Background()

	tf, err := repo.TemporaryFile(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, tf)
	assert.Equal(t, int64(1), tf.UserID)

	sf, err := repo.SubmissionFile(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, sf)
	assert.Equal(t, entity.FileStageReviewFile, sf.FileStage)

	lf, err := repo.LibraryFile(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, lf)
	assert.Nil(t, lf.SubmissionID)

	missing, err := repo.TemporaryFile(ctx, 9)
	require.NoError(t, err)
	assert.Nil(t, missing)
}
