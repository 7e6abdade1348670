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

// UserRepository implements port.UserRepository over sqlite.
type UserRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB, logger *zap.Logger) port.UserRepository {
	return &UserRepository{db: db, logger: logger}
}

// Get returns the user, or nil when the id does not resolve.
func (r *UserRepository) Get(ctx context.Context, id int64) (*entity.User, error) {
	query := `
		SELECT user_id, username, given_name, family_name, email
		FROM users
		WHERE user_id = ?
	`

	var u entity.User
	err := sqlite.ExecutorFor(ctx, r.db).QueryRowContext(ctx, query, id).Scan(
		&u.ID,
		&u.Username,
		&u.GivenName,
		&u.FamilyName,
		&u.Email,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get user", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}
