package repository

import (
	"testing"
	"time"

	"github.com/openpress/editorial/pkg/database"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newTestDB opens a migrated in-memory database.
func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.NewInMemory(zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	migrator := database.NewMigrator(db, zap.NewNop())
	require.NoError(t, migrator.RunMigrations())
	return db
}

func seedSubmission(t *testing.T, db *database.DB, id, contextID int64, stage int) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO submissions (submission_id, context_id, stage_id, status, locale) VALUES (?, ?, ?, 1, 'en')`,
		id, contextID, stage)
	require.NoError(t, err)
}

func seedUser(t *testing.T, db *database.DB, id int64, username, given, family string) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO users (user_id, username, given_name, family_name, email) VALUES (?, ?, ?, ?, ?)`,
		id, username, given, family, username+"@example.com")
	require.NoError(t, err)
}

func seedUserGroup(t *testing.T, db *database.DB, id, contextID int64, roleID int, permitMetadataEdit bool, stages ...int) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO user_groups (user_group_id, context_id, role_id, name, permit_metadata_edit) VALUES (?, ?, ?, '', ?)`,
		id, contextID, roleID, permitMetadataEdit)
	require.NoError(t, err)
	for _, stage := range stages {
		_, err := db.Exec(`INSERT INTO user_group_stage (user_group_id, stage_id) VALUES (?, ?)`, id, stage)
		require.NoError(t, err)
	}
}

func seedStageAssignment(t *testing.T, db *database.DB, submissionID, groupID, userID int64, recommendOnly bool) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO stage_assignments (submission_id, user_group_id, user_id, recommend_only, can_change_metadata)
		 VALUES (?, ?, ?, ?, 0)`,
		submissionID, groupID, userID, recommendOnly)
	require.NoError(t, err)
}

func seedReviewAssignment(t *testing.T, db *database.DB, roundID, reviewerID int64, due, completed, confirmed *time.Time, declined, cancelled bool) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO review_assignments (review_round_id, reviewer_id, date_due, date_completed, date_confirmed, declined, cancelled)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		roundID, reviewerID, due, completed, confirmed, declined, cancelled)
	require.NoError(t, err)
}

func timePtr(v time.Time) *time.Time { return &v }
