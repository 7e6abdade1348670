package repository

import (
	"context"
	"testing"
	"time"

	"github.com/openpress/editorial/internal/domain/entity"
	"github.com/openpress/editorial/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestReviewRoundBuildAndGet(t *testing.T) {
	db := newTestDB(t)
	seedSubmission(t, db, 1, 1, int(entity.StageExternalReview))
	assignments := NewReviewAssignmentRepository(db.DB, zap.NewNop())
	repo := NewReviewRoundRepository(db.DB, assignments, zap.NewNop())
	ctx := context.Background()

	rr, err := repo.Build(ctx, 1, entity.StageExternalReview, 1, entity.RoundStatusPendingReviewers)
	require.NoError(t, err)
	require.NotZero(t, rr.ID)

	got, err := repo.Get(ctx, rr.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, entity.StageExternalReview, got.StageID)
	assert.Equal(t, 1, got.Round)
	assert.Equal(t, entity.RoundStatusPendingReviewers, got.Status)

	missing, err := repo.Get(ctx, 99)
	require.NoError(t, err)
	assert.Nil(t, missing)

	// The (submission, stage, round) triple is unique.
	_, err = repo.Build(ctx, 1, entity.StageExternalReview, 1, entity.RoundStatusPendingReviewers)
	assert.Error(t, err)
}

func TestReviewRoundGetLast(t *testing.T) {
	db := newTestDB(t)
	seedSubmission(t, db, 1, 1, int(entity.StageExternalReview))
	assignments := NewReviewAssignmentRepository(db.DB, zap.NewNop())
	repo := NewReviewRoundRepository(db.DB, assignments, zap.NewNop())
	ctx := context.Background()

	none, err := repo.GetLastBySubmissionAndStage(ctx, 1, entity.StageExternalReview)
	require.NoError(t, err)
	assert.Nil(t, none)

	for round := 1; round <= 3; round++ {
		_, err := repo.Build(ctx, 1, entity.StageExternalReview, round, entity.RoundStatusPendingReviewers)
		require.NoError(t, err)
	}

	last, err := repo.GetLastBySubmissionAndStage(ctx, 1, entity.StageExternalReview)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, 3, last.Round)

	otherStage, err := repo.GetLastBySubmissionAndStage(ctx, 1, entity.StageInternalReview)
	require.NoError(t, err)
	assert.Nil(t, otherStage)
}

func TestReviewRoundUpdateStatus(t *testing.T) {
	db := newTestDB(t)
	seedSubmission(t, db, 1, 1, int(entity.StageExternalReview))
	assignments := NewReviewAssignmentRepository(db.DB, zap.NewNop())
	repo := NewReviewRoundRepository(db.DB, assignments, zap.NewNop())
	ctx := context.Background()

	rr, err := repo.Build(ctx, 1, entity.StageExternalReview, 1, entity.RoundStatusPendingReviewers)
	require.NoError(t, err)

	require.NoError(t, repo.UpdateStatus(ctx, rr, entity.RoundStatusAccepted))
	assert.Equal(t, entity.RoundStatusAccepted, rr.Status)

	got, err := repo.Get(ctx, rr.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoundStatusAccepted, got.Status)
}

func TestReviewRoundRecomputeStatus(t *testing.T) {
	past := time.Now().Add(-48 * time.Hour)
	future := time.Now().Add(48 * time.Hour)
	done := time.Now().Add(-time.Hour)

	tests := []struct {
		name string
		seed func(t *testing.T, db *database.DB, roundID int64)
		want entity.RoundStatus
	}{
		{
			name: "no assignments",
			seed: func(*testing.T, *database.DB, int64) {},
			want: entity.RoundStatusPendingReviewers,
		},
		{
			name: "only declined and cancelled assignments",
			seed: func(t *testing.T, db *database.DB, roundID int64) {
				seedReviewAssignment(t, db, roundID, 10, timePtr(future), nil, nil, true, false)
				seedReviewAssignment(t, db, roundID, 11, timePtr(future), nil, nil, false, true)
			},
			want: entity.RoundStatusPendingReviewers,
		},
		{
			name: "incomplete within due date",
			seed: func(t *testing.T, db *database.DB, roundID int64) {
				seedReviewAssignment(t, db, roundID, 10, timePtr(future), nil, nil, false, false)
			},
			want: entity.RoundStatusPendingReviews,
		},
		{
			name: "incomplete without a due date",
			seed: func(t *testing.T, db *database.DB, roundID int64) {
				seedReviewAssignment(t, db, roundID, 10, nil, nil, nil, false, false)
			},
			want: entity.RoundStatusPendingReviews,
		},
		{
			name: "incomplete past due date",
			seed: func(t *testing.T, db *database.DB, roundID int64) {
				seedReviewAssignment(t, db, roundID, 10, timePtr(past), nil, nil, false, false)
				seedReviewAssignment(t, db, roundID, 11, timePtr(future), timePtr(done), timePtr(done), false, false)
			},
			want: entity.RoundStatusReviewsOverdue,
		},
		{
			name: "completed but unconfirmed",
			seed: func(t *testing.T, db *database.DB, roundID int64) {
				seedReviewAssignment(t, db, roundID, 10, timePtr(past), timePtr(done), nil, false, false)
			},
			want: entity.RoundStatusReviewsReady,
		},
		{
			name: "all completed and confirmed",
			seed: func(t *testing.T, db *database.DB, roundID int64) {
				seedReviewAssignment(t, db, roundID, 10, timePtr(past), timePtr(done), timePtr(done), false, false)
				seedReviewAssignment(t, db, roundID, 11, timePtr(past), timePtr(done), timePtr(done), false, false)
			},
			want: entity.RoundStatusReviewsCompleted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := newTestDB(t)
			seedSubmission(t, db, 1, 1, int(entity.StageExternalReview))
			seedUser(t, db, 10, "r1", "", "")
			seedUser(t, db, 11, "r2", "", "")
			assignments := NewReviewAssignmentRepository(db.DB, zap.NewNop())
			repo := NewReviewRoundRepository(db.DB, assignments, zap.NewNop())
			ctx := context.Background()

			rr, err := repo.Build(ctx, 1, entity.StageExternalReview, 1, entity.RoundStatusPendingReviewers)
			require.NoError(t, err)

			tt.seed(t, db, rr.ID)

			require.NoError(t, repo.RecomputeStatus(ctx, rr))
			assert.Equal(t, tt.want, rr.Status)
		})
	}
}
