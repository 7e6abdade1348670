// Package port defines the narrow contracts between the decision engine
// and its collaborators. Implementations live in infrastructure.
package port

import (
	"context"

	"github.com/openpress/editorial/internal/domain/entity"
)

// SubmissionRepository reads and writes submissions. The engine mutates
// only status, stage and last-review-stage.
type SubmissionRepository interface {
	Get(ctx context.Context, id int64) (*entity.Submission, error)
	Update(ctx context.Context, s *entity.Submission) error
}

// DecisionIterator lazily produces the decisions matched by a collector
// query. It is finite; re-issuing the query restarts it.
type DecisionIterator interface {
	// Next advances to the next decision, returning false when exhausted
	// or on error.
	Next() bool

	// Decision returns the current decision. Valid only after a true Next.
	Decision() *entity.Decision

	// Err returns the first error encountered while iterating.
	Err() error

	// Close releases the underlying resources.
	Close() error
}

// DecisionRepository persists and queries the append-only decision log.
type DecisionRepository interface {
	// Insert persists the decision and assigns its id.
	Insert(ctx context.Context, d *entity.Decision) (int64, error)

	// Get retrieves a decision by id, or nil when absent.
	Get(ctx context.Context, id int64) (*entity.Decision, error)

	// ReassignDecisions moves every decision attributed to fromEditorID
	// onto toEditorID and returns the number of rows changed. This is the
	// only in-place mutation of persisted decisions; it exists for editor
	// account consolidation and re-runs no side effects.
	ReassignDecisions(ctx context.Context, fromEditorID, toEditorID int64) (int64, error)

	// Count returns the number of decisions matching the collector.
	Count(ctx context.Context, c *DecisionCollector) (int, error)

	// IDs returns the ordered ids matching the collector.
	IDs(ctx context.Context, c *DecisionCollector) ([]int64, error)

	// Query returns a lazy iterator over the matching decisions.
	Query(ctx context.Context, c *DecisionCollector) (DecisionIterator, error)
}

// ReviewRoundRepository reads and mutates review rounds.
type ReviewRoundRepository interface {
	// Get retrieves a round by id, or nil when absent.
	Get(ctx context.Context, id int64) (*entity.ReviewRound, error)

	// GetLastBySubmissionAndStage returns the highest-numbered round for
	// the submission at the stage, or nil when none exists.
	GetLastBySubmissionAndStage(ctx context.Context, submissionID int64, stage entity.StageID) (*entity.ReviewRound, error)

	// Build creates and persists a new round.
	Build(ctx context.Context, submissionID int64, stage entity.StageID, round int, status entity.RoundStatus) (*entity.ReviewRound, error)

	// UpdateStatus forces a status on the round.
	UpdateStatus(ctx context.Context, rr *entity.ReviewRound, status entity.RoundStatus) error

	// RecomputeStatus derives and persists the round's status from its
	// current review assignment state.
	RecomputeStatus(ctx context.Context, rr *entity.ReviewRound) error
}

// ReviewAssignmentRepository reads reviewer engagements.
type ReviewAssignmentRepository interface {
	// ByReviewRound returns the round's assignments in creation order.
	ByReviewRound(ctx context.Context, reviewRoundID int64) ([]*entity.ReviewAssignment, error)
}

// StageAssignmentOptions carries the optional flags for Build.
type StageAssignmentOptions struct {
	RecommendOnly bool
	// CanChangeMetadata defaults to the user group's configured permission
	// when nil.
	CanChangeMetadata *bool
}

// StageAssignmentRepository is the canonical source of who may act on a
// submission stage and with what authority.
type StageAssignmentRepository interface {
	// DecidingEditorIDs returns the user ids assigned as manager or
	// sub-editor at the stage with recommendOnly=false.
	DecidingEditorIDs(ctx context.Context, submissionID int64, stage entity.StageID) ([]int64, error)

	// DecidingEditors resolves DecidingEditorIDs to distinct users.
	DecidingEditors(ctx context.Context, submissionID int64, stage entity.StageID) ([]*entity.User, error)

	// ParticipantsByRole returns the distinct users holding the role on
	// the submission at the stage.
	ParticipantsByRole(ctx context.Context, submissionID int64, stage entity.StageID, role entity.RoleID) ([]*entity.User, error)

	// Build returns the existing assignment for the (submission, group,
	// user) triple or creates one. Idempotent.
	Build(ctx context.Context, submissionID, userGroupID, userID int64, opts *StageAssignmentOptions) (*entity.StageAssignment, error)
}

// UserRepository resolves user ids.
type UserRepository interface {
	// Get returns the user, or nil when the id does not resolve.
	Get(ctx context.Context, id int64) (*entity.User, error)
}

// FileRepository performs the existence and ownership probes used by
// attachment validation. Each getter returns nil when the file is absent.
type FileRepository interface {
	TemporaryFile(ctx context.Context, id int64) (*entity.TemporaryFile, error)
	SubmissionFile(ctx context.Context, id int64) (*entity.SubmissionFile, error)
	LibraryFile(ctx context.Context, id int64) (*entity.LibraryFile, error)
}

// TransactionManager handles database transactions. Nested calls reuse the
// ambient transaction, so a caller-supplied unit of work spans the whole
// decision sequence.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
