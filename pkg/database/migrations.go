package database

import (
	"fmt"

	"go.uber.org/zap"
)

// Migration represents one schema change.
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// Migrator applies the built-in schema in order, tracking applied versions
// in schema_migrations.
type Migrator struct {
	db     *DB
	logger *zap.Logger
}

// NewMigrator creates a new migrator
func NewMigrator(db *DB, logger *zap.Logger) *Migrator {
	return &Migrator{db: db, logger: logger}
}

func (m *Migrator) createMigrationsTable() error {
	query := `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`
	_, err := m.db.Exec(query)
	return err
}

func (m *Migrator) appliedMigrations() (map[int]bool, error) {
	rows, err := m.db.Query("SELECT version FROM schema_migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

// RunMigrations applies every pending built-in migration.
func (m *Migrator) RunMigrations() error {
	if err := m.createMigrationsTable(); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := m.appliedMigrations()
	if err != nil {
		return fmt.Errorf("failed to read applied migrations: %w", err)
	}

	for _, migration := range Migrations() {
		if applied[migration.Version] {
			continue
		}

		tx, err := m.db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", migration.Version, err)
		}
		if _, err := tx.Exec(migration.SQL); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d (%s) failed: %w", migration.Version, migration.Name, err)
		}
		if _, err := tx.Exec("INSERT INTO schema_migrations (version, name) VALUES (?, ?)",
			migration.Version, migration.Name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}

		m.logger.Info("Applied migration",
			zap.Int("version", migration.Version), zap.String("name", migration.Name))
	}

	return nil
}

// Migrations returns the built-in schema in application order.
func Migrations() []Migration {
	return []Migration{
		{
			Version: 1,
			Name:    "core_entities",
			SQL: `
				CREATE TABLE submissions (
					submission_id INTEGER PRIMARY KEY AUTOINCREMENT,
					context_id INTEGER NOT NULL,
					stage_id INTEGER NOT NULL DEFAULT 1,
					status INTEGER NOT NULL DEFAULT 1,
					locale TEXT NOT NULL DEFAULT 'en',
					last_review_stage_id INTEGER,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
				);

				CREATE TABLE users (
					user_id INTEGER PRIMARY KEY AUTOINCREMENT,
					username TEXT NOT NULL UNIQUE,
					given_name TEXT NOT NULL DEFAULT '',
					family_name TEXT NOT NULL DEFAULT '',
					email TEXT NOT NULL DEFAULT ''
				);

				CREATE TABLE user_groups (
					user_group_id INTEGER PRIMARY KEY AUTOINCREMENT,
					context_id INTEGER NOT NULL,
					role_id INTEGER NOT NULL,
					name TEXT NOT NULL DEFAULT '',
					permit_metadata_edit INTEGER NOT NULL DEFAULT 0
				);

				CREATE TABLE user_group_stage (
					user_group_id INTEGER NOT NULL REFERENCES user_groups(user_group_id),
					stage_id INTEGER NOT NULL,
					PRIMARY KEY (user_group_id, stage_id)
				);

				CREATE TABLE stage_assignments (
					stage_assignment_id INTEGER PRIMARY KEY AUTOINCREMENT,
					submission_id INTEGER NOT NULL REFERENCES submissions(submission_id),
					user_group_id INTEGER NOT NULL REFERENCES user_groups(user_group_id),
					user_id INTEGER NOT NULL REFERENCES users(user_id),
					recommend_only INTEGER NOT NULL DEFAULT 0,
					can_change_metadata INTEGER NOT NULL DEFAULT 0,
					UNIQUE (submission_id, user_group_id, user_id)
				);
			`,
		},
		{
			Version: 2,
			Name:    "review_rounds",
			SQL: `
				CREATE TABLE review_rounds (
					review_round_id INTEGER PRIMARY KEY AUTOINCREMENT,
					submission_id INTEGER NOT NULL REFERENCES submissions(submission_id),
					stage_id INTEGER NOT NULL,
					round INTEGER NOT NULL,
					status INTEGER NOT NULL,
					UNIQUE (submission_id, stage_id, round)
				);

				CREATE TABLE review_assignments (
					review_assignment_id INTEGER PRIMARY KEY AUTOINCREMENT,
					review_round_id INTEGER NOT NULL REFERENCES review_rounds(review_round_id),
					reviewer_id INTEGER NOT NULL REFERENCES users(user_id),
					date_due DATETIME,
					date_completed DATETIME,
					date_confirmed DATETIME,
					declined INTEGER NOT NULL DEFAULT 0,
					cancelled INTEGER NOT NULL DEFAULT 0
				);
			`,
		},
		{
			Version: 3,
			Name:    "edit_decisions",
			SQL: `
				CREATE TABLE edit_decisions (
					decision_id INTEGER PRIMARY KEY AUTOINCREMENT,
					submission_id INTEGER NOT NULL REFERENCES submissions(submission_id),
					editor_id INTEGER NOT NULL REFERENCES users(user_id),
					decision INTEGER NOT NULL,
					stage_id INTEGER NOT NULL,
					review_round_id INTEGER,
					round INTEGER,
					date_decided DATETIME NOT NULL
				);

				CREATE INDEX idx_edit_decisions_submission ON edit_decisions(submission_id);
				CREATE INDEX idx_edit_decisions_editor ON edit_decisions(editor_id);
			`,
		},
		{
			Version: 4,
			Name:    "files",
			SQL: `
				CREATE TABLE temporary_files (
					temporary_file_id INTEGER PRIMARY KEY AUTOINCREMENT,
					user_id INTEGER NOT NULL REFERENCES users(user_id),
					file_name TEXT NOT NULL DEFAULT ''
				);

				CREATE TABLE submission_files (
					submission_file_id INTEGER PRIMARY KEY AUTOINCREMENT,
					submission_id INTEGER NOT NULL REFERENCES submissions(submission_id),
					file_stage INTEGER NOT NULL,
					name TEXT NOT NULL DEFAULT ''
				);

				CREATE TABLE library_files (
					library_file_id INTEGER PRIMARY KEY AUTOINCREMENT,
					context_id INTEGER NOT NULL,
					submission_id INTEGER,
					name TEXT NOT NULL DEFAULT ''
				);
			`,
		},
	}
}
