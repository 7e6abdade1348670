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

// StageAssignmentRepository implements port.StageAssignmentRepository over
// sqlite. Stage coverage is derived from the assignment's user group, so
// queries join through user_group_stage.
type StageAssignmentRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewStageAssignmentRepository creates a new stage assignment repository
func NewStageAssignmentRepository(db *sql.DB, logger *zap.Logger) port.StageAssignmentRepository {
	return &StageAssignmentRepository{db: db, logger: logger}
}

// DecidingEditorIDs returns the user ids assigned as manager or sub-editor
// at the stage with recommendOnly=false.
func (r *StageAssignmentRepository) DecidingEditorIDs(ctx context.Context, submissionID int64, stage entity.StageID) ([]int64, error) {
	query := `
		SELECT DISTINCT sa.user_id
		FROM stage_assignments sa
		JOIN user_groups ug ON ug.user_group_id = sa.user_group_id
		JOIN user_group_stage ugs ON ugs.user_group_id = ug.user_group_id
		WHERE sa.submission_id = ?
		  AND ugs.stage_id = ?
		  AND ug.role_id IN (?, ?)
		  AND sa.recommend_only = 0
		ORDER BY sa.user_id
	`

	rows, err := sqlite.ExecutorFor(ctx, r.db).QueryContext(ctx, query,
		submissionID, int(stage), int(entity.RoleManager), int(entity.RoleSubEditor))
	if err != nil {
		r.logger.Error("Failed to query deciding editors",
			zap.Int64("submission_id", submissionID), zap.Int("stage_id", int(stage)), zap.Error(err))
		return nil, fmt.Errorf("failed to query deciding editors: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// DecidingEditors resolves DecidingEditorIDs to distinct users.
func (r *StageAssignmentRepository) DecidingEditors(ctx context.Context, submissionID int64, stage entity.StageID) ([]*entity.User, error) {
	query := `
		SELECT DISTINCT u.user_id, u.username, u.given_name, u.family_name, u.email
		FROM stage_assignments sa
		JOIN user_groups ug ON ug.user_group_id = sa.user_group_id
		JOIN user_group_stage ugs ON ugs.user_group_id = ug.user_group_id
		JOIN users u ON u.user_id = sa.user_id
		WHERE sa.submission_id = ?
		  AND ugs.stage_id = ?
		  AND ug.role_id IN (?, ?)
		  AND sa.recommend_only = 0
		ORDER BY u.user_id
	`

	return r.queryUsers(ctx, query,
		submissionID, int(stage), int(entity.RoleManager), int(entity.RoleSubEditor))
}

// ParticipantsByRole returns the distinct users holding the role on the
// submission at the stage.
func (r *StageAssignmentRepository) ParticipantsByRole(ctx context.Context, submissionID int64, stage entity.StageID, role entity.RoleID) ([]*entity.User, error) {
	query := `
		SELECT DISTINCT u.user_id, u.username, u.given_name, u.family_name, u.email
		FROM stage_assignments sa
		JOIN user_groups ug ON ug.user_group_id = sa.user_group_id
		JOIN user_group_stage ugs ON ugs.user_group_id = ug.user_group_id
		JOIN users u ON u.user_id = sa.user_id
		WHERE sa.submission_id = ?
		  AND ugs.stage_id = ?
		  AND ug.role_id = ?
		ORDER BY u.user_id
	`

	return r.queryUsers(ctx, query, submissionID, int(stage), int(role))
}

// Build returns the existing assignment for the (submission, group, user)
// triple or creates one. CanChangeMetadata defaults to the group's
// permit_metadata_edit when the caller leaves it nil.
func (r *StageAssignmentRepository) Build(ctx context.Context, submissionID, userGroupID, userID int64, opts *port.StageAssignmentOptions) (*entity.StageAssignment, error) {
	exec := sqlite.ExecutorFor(ctx, r.db)

	existing := `
		SELECT stage_assignment_id, submission_id, user_group_id, user_id,
		       recommend_only, can_change_metadata
		FROM stage_assignments
		WHERE submission_id = ? AND user_group_id = ? AND user_id = ?
	`
	sa, err := scanStageAssignment(exec.QueryRowContext(ctx, existing, submissionID, userGroupID, userID))
	if err == nil {
		return sa, nil
	}
	if err != sql.ErrNoRows {
		r.logger.Error("Failed to look up stage assignment", zap.Error(err))
		return nil, fmt.Errorf("failed to look up stage assignment: %w", err)
	}

	recommendOnly := false
	var canChangeMetadata *bool
	if opts != nil {
		recommendOnly = opts.RecommendOnly
		canChangeMetadata = opts.CanChangeMetadata
	}

	if canChangeMetadata == nil {
		var permit bool
		err := exec.QueryRowContext(ctx,
			`SELECT permit_metadata_edit FROM user_groups WHERE user_group_id = ?`,
			userGroupID).Scan(&permit)
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user group %d not found", userGroupID)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to look up user group: %w", err)
		}
		canChangeMetadata = &permit
	}

	insert := `
		INSERT INTO stage_assignments (submission_id, user_group_id, user_id, recommend_only, can_change_metadata)
		VALUES (?, ?, ?, ?, ?)
	`
	result, err := exec.ExecContext(ctx, insert, submissionID, userGroupID, userID, recommendOnly, *canChangeMetadata)
	if err != nil {
		r.logger.Error("Failed to insert stage assignment", zap.Error(err))
		return nil, fmt.Errorf("failed to insert stage assignment: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert id: %w", err)
	}

	return &entity.StageAssignment{
		ID:                id,
		SubmissionID:      submissionID,
		UserGroupID:       userGroupID,
		UserID:            userID,
		RecommendOnly:     recommendOnly,
		CanChangeMetadata: *canChangeMetadata,
	}, nil
}

func (r *StageAssignmentRepository) queryUsers(ctx context.Context, query string, args ...interface{}) ([]*entity.User, error) {
	rows, err := sqlite.ExecutorFor(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to query stage participants", zap.Error(err))
		return nil, fmt.Errorf("failed to query stage participants: %w", err)
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.Username, &u.GivenName, &u.FamilyName, &u.Email); err != nil {
			return nil, err
		}
		users = append(users, &u)
	}
	return users, rows.Err()
}

func scanStageAssignment(row *sql.Row) (*entity.StageAssignment, error) {
	var sa entity.StageAssignment
	if err := row.Scan(
		&sa.ID,
		&sa.SubmissionID,
		&sa.UserGroupID,
		&sa.UserID,
		&sa.RecommendOnly,
		&sa.CanChangeMetadata,
	); err != nil {
		return nil, err
	}
	return &sa, nil
}
