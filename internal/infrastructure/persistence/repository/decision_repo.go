package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/openpress/editorial/internal/application/port"
	"github.com/openpress/editorial/internal/domain/entity"
	"github.com/openpress/editorial/internal/infrastructure/persistence/sqlite"
	"go.uber.org/zap"
)

const decisionColumns = "decision_id, submission_id, editor_id, decision, stage_id, review_round_id, round, date_decided"

// DecisionRepository implements port.DecisionRepository over sqlite.
type DecisionRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewDecisionRepository creates a new decision repository
func NewDecisionRepository(db *sql.DB, logger *zap.Logger) port.DecisionRepository {
	return &DecisionRepository{db: db, logger: logger}
}

// Insert persists the decision and assigns its id.
func (r *DecisionRepository) Insert(ctx context.Context, d *entity.Decision) (int64, error) {
	query := `
		INSERT INTO edit_decisions (
			submission_id, editor_id, decision, stage_id,
			review_round_id, round, date_decided
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := sqlite.ExecutorFor(ctx, r.db).ExecContext(ctx, query,
		d.SubmissionID,
		d.EditorID,
		d.Decision,
		int(d.StageID),
		d.ReviewRoundID,
		d.Round,
		d.DateDecided,
	)
	if err != nil {
		r.logger.Error("Failed to insert decision", zap.Error(err))
		return 0, fmt.Errorf("failed to insert decision: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert id: %w", err)
	}

	d.ID = id
	return id, nil
}

// Get retrieves a decision by id, or nil when absent.
func (r *DecisionRepository) Get(ctx context.Context, id int64) (*entity.Decision, error) {
	query := `SELECT ` + decisionColumns + ` FROM edit_decisions WHERE decision_id = ?`

	row := sqlite.ExecutorFor(ctx, r.db).QueryRowContext(ctx, query, id)
	d, err := scanDecision(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get decision", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get decision: %w", err)
	}
	return d, nil
}

// ReassignDecisions bulk-moves decision authorship between editors. The
// only in-place mutation of persisted decisions; no side effects re-run.
func (r *DecisionRepository) ReassignDecisions(ctx context.Context, fromEditorID, toEditorID int64) (int64, error) {
	query := `UPDATE edit_decisions SET editor_id = ? WHERE editor_id = ?`

	result, err := sqlite.ExecutorFor(ctx, r.db).ExecContext(ctx, query, toEditorID, fromEditorID)
	if err != nil {
		r.logger.Error("Failed to reassign decisions", zap.Error(err),
			zap.Int64("from_editor_id", fromEditorID), zap.Int64("to_editor_id", toEditorID))
		return 0, fmt.Errorf("failed to reassign decisions: %w", err)
	}
	return result.RowsAffected()
}

// Count returns the number of decisions matching the collector.
func (r *DecisionRepository) Count(ctx context.Context, c *port.DecisionCollector) (int, error) {
	where, args := collectorWhere(c)
	query := `SELECT COUNT(*) FROM edit_decisions` + where

	var count int
	if err := sqlite.ExecutorFor(ctx, r.db).QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count decisions: %w", err)
	}
	return count, nil
}

// IDs returns the ordered decision ids matching the collector.
func (r *DecisionRepository) IDs(ctx context.Context, c *port.DecisionCollector) ([]int64, error) {
	where, args := collectorWhere(c)
	query := `SELECT decision_id FROM edit_decisions` + where + collectorOrder(c)

	rows, err := sqlite.ExecutorFor(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query decision ids: %w", err)
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

// Query returns a lazy iterator over the matching decisions. Re-issuing the
// query restarts iteration.
func (r *DecisionRepository) Query(ctx context.Context, c *port.DecisionCollector) (port.DecisionIterator, error) {
	where, args := collectorWhere(c)
	query := `SELECT ` + decisionColumns + ` FROM edit_decisions` + where + collectorOrder(c)

	rows, err := sqlite.ExecutorFor(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query decisions: %w", err)
	}
	return &decisionIterator{rows: rows}, nil
}

type decisionIterator struct {
	rows    *sql.Rows
	current *entity.Decision
	err     error
}

func (it *decisionIterator) Next() bool {
	if it.err != nil || !it.rows.Next() {
		return false
	}
	d, err := scanDecision(it.rows.Scan)
	if err != nil {
		it.err = err
		return false
	}
	it.current = d
	return true
}

func (it *decisionIterator) Decision() *entity.Decision { return it.current }

func (it *decisionIterator) Err() error {
	if it.err != nil {
		return it.err
	}
	return it.rows.Err()
}

func (it *decisionIterator) Close() error { return it.rows.Close() }

func scanDecision(scan func(dest ...any) error) (*entity.Decision, error) {
	var d entity.Decision
	var stageID int
	var reviewRoundID sql.NullInt64
	var round sql.NullInt64

	if err := scan(
		&d.ID,
		&d.SubmissionID,
		&d.EditorID,
		&d.Decision,
		&stageID,
		&reviewRoundID,
		&round,
		&d.DateDecided,
	); err != nil {
		return nil, err
	}

	d.StageID = entity.StageID(stageID)
	if reviewRoundID.Valid {
		d.ReviewRoundID = &reviewRoundID.Int64
	}
	if round.Valid {
		n := int(round.Int64)
		d.Round = &n
	}
	return &d, nil
}

func collectorWhere(c *port.DecisionCollector) (string, []any) {
	if c == nil {
		return "", nil
	}

	var clauses []string
	var args []any

	addInts := func(column string, values []int) {
		if len(values) == 0 {
			return
		}
		ph := make([]string, len(values))
		for i, v := range values {
			ph[i] = "?"
			args = append(args, v)
		}
		clauses = append(clauses, fmt.Sprintf("%s IN (%s)", column, strings.Join(ph, ", ")))
	}
	addInt64s := func(column string, values []int64) {
		if len(values) == 0 {
			return
		}
		ph := make([]string, len(values))
		for i, v := range values {
			ph[i] = "?"
			args = append(args, v)
		}
		clauses = append(clauses, fmt.Sprintf("%s IN (%s)", column, strings.Join(ph, ", ")))
	}

	addInts("decision", c.DecisionTypes)
	addInt64s("editor_id", c.EditorIDs)
	if len(c.StageIDs) > 0 {
		stages := make([]int, len(c.StageIDs))
		for i, s := range c.StageIDs {
			stages[i] = int(s)
		}
		addInts("stage_id", stages)
	}
	addInt64s("submission_id", c.SubmissionIDs)
	addInt64s("review_round_id", c.ReviewRoundIDs)
	addInts("round", c.Rounds)

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func collectorOrder(c *port.DecisionCollector) string {
	column := port.OrderByDateDecided
	desc := false
	if c != nil {
		if c.OrderColumn == port.OrderByID {
			column = port.OrderByID
		}
		desc = c.OrderDesc
	}
	direction := "ASC"
	if desc {
		direction = "DESC"
	}
	return fmt.Sprintf(" ORDER BY %s %s, decision_id %s", column, direction, direction)
}
