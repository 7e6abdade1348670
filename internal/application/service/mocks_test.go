package service

import (
	"context"

	"github.com/openpress/editorial/internal/application/port"
	"github.com/openpress/editorial/internal/domain/entity"
)

// Hand-rolled function-field mocks. Nil functions fall back to benign
// defaults so each test only wires what it asserts on.

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

type mockSubmissionRepo struct {
	getFunc    func(ctx context.Context, id int64) (*entity.Submission, error)
	updateFunc func(ctx context.Context, s *entity.Submission) error
}

func (m *mockSubmissionRepo) Get(ctx context.Context, id int64) (*entity.Submission, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockSubmissionRepo) Update(ctx context.Context, s *entity.Submission) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, s)
	}
	return nil
}

type mockDecisionRepo struct {
	insertFunc   func(ctx context.Context, d *entity.Decision) (int64, error)
	getFunc      func(ctx context.Context, id int64) (*entity.Decision, error)
	reassignFunc func(ctx context.Context, fromEditorID, toEditorID int64) (int64, error)
	queryFunc    func(ctx context.Context, c *port.DecisionCollector) (port.DecisionIterator, error)
}

func (m *mockDecisionRepo) Insert(ctx context.Context, d *entity.Decision) (int64, error) {
	if m.insertFunc != nil {
		return m.insertFunc(ctx, d)
	}
	return 1, nil
}

func (m *mockDecisionRepo) Get(ctx context.Context, id int64) (*entity.Decision, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockDecisionRepo) ReassignDecisions(ctx context.Context, fromEditorID, toEditorID int64) (int64, error) {
	if m.reassignFunc != nil {
		return m.reassignFunc(ctx, fromEditorID, toEditorID)
	}
	return 0, nil
}

func (m *mockDecisionRepo) Count(context.Context, *port.DecisionCollector) (int, error) {
	return 0, nil
}

func (m *mockDecisionRepo) IDs(context.Context, *port.DecisionCollector) ([]int64, error) {
	return nil, nil
}

func (m *mockDecisionRepo) Query(ctx context.Context, c *port.DecisionCollector) (port.DecisionIterator, error) {
	if m.queryFunc != nil {
		return m.queryFunc(ctx, c)
	}
	return &sliceIterator{}, nil
}

// sliceIterator is an in-memory DecisionIterator for tests.
type sliceIterator struct {
	decisions []*entity.Decision
	pos       int
	closed    bool
	err       error
}

func (it *sliceIterator) Next() bool {
	if it.err != nil || it.pos >= len(it.decisions) {
		return false
	}
	it.pos++
	return true
}

func (it *sliceIterator) Decision() *entity.Decision { return it.decisions[it.pos-1] }
func (it *sliceIterator) Err() error                 { return it.err }
func (it *sliceIterator) Close() error               { it.closed = true; return nil }

type mockReviewRoundRepo struct {
	getFunc       func(ctx context.Context, id int64) (*entity.ReviewRound, error)
	getLastFunc   func(ctx context.Context, submissionID int64, stage entity.StageID) (*entity.ReviewRound, error)
	buildFunc     func(ctx context.Context, submissionID int64, stage entity.StageID, round int, status entity.RoundStatus) (*entity.ReviewRound, error)
	updateFunc    func(ctx context.Context, rr *entity.ReviewRound, status entity.RoundStatus) error
	recomputeFunc func(ctx context.Context, rr *entity.ReviewRound) error
}

func (m *mockReviewRoundRepo) Get(ctx context.Context, id int64) (*entity.ReviewRound, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockReviewRoundRepo) GetLastBySubmissionAndStage(ctx context.Context, submissionID int64, stage entity.StageID) (*entity.ReviewRound, error) {
	if m.getLastFunc != nil {
		return m.getLastFunc(ctx, submissionID, stage)
	}
	return nil, nil
}

func (m *mockReviewRoundRepo) Build(ctx context.Context, submissionID int64, stage entity.StageID, round int, status entity.RoundStatus) (*entity.ReviewRound, error) {
	if m.buildFunc != nil {
		return m.buildFunc(ctx, submissionID, stage, round, status)
	}
	return &entity.ReviewRound{SubmissionID: submissionID, StageID: stage, Round: round, Status: status}, nil
}

func (m *mockReviewRoundRepo) UpdateStatus(ctx context.Context, rr *entity.ReviewRound, status entity.RoundStatus) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, rr, status)
	}
	rr.Status = status
	return nil
}

func (m *mockReviewRoundRepo) RecomputeStatus(ctx context.Context, rr *entity.ReviewRound) error {
	if m.recomputeFunc != nil {
		return m.recomputeFunc(ctx, rr)
	}
	return nil
}

type mockReviewAssignmentRepo struct {
	byRoundFunc func(ctx context.Context, reviewRoundID int64) ([]*entity.ReviewAssignment, error)
}

func (m *mockReviewAssignmentRepo) ByReviewRound(ctx context.Context, reviewRoundID int64) ([]*entity.ReviewAssignment, error) {
	if m.byRoundFunc != nil {
		return m.byRoundFunc(ctx, reviewRoundID)
	}
	return nil, nil
}

type mockStageAssignmentRepo struct {
	decidingIDsFunc  func(ctx context.Context, submissionID int64, stage entity.StageID) ([]int64, error)
	decidingFunc     func(ctx context.Context, submissionID int64, stage entity.StageID) ([]*entity.User, error)
	participantsFunc func(ctx context.Context, submissionID int64, stage entity.StageID, role entity.RoleID) ([]*entity.User, error)
	buildFunc        func(ctx context.Context, submissionID, userGroupID, userID int64, opts *port.StageAssignmentOptions) (*entity.StageAssignment, error)
}

func (m *mockStageAssignmentRepo) DecidingEditorIDs(ctx context.Context, submissionID int64, stage entity.StageID) ([]int64, error) {
	if m.decidingIDsFunc != nil {
		return m.decidingIDsFunc(ctx, submissionID, stage)
	}
	return nil, nil
}

func (m *mockStageAssignmentRepo) DecidingEditors(ctx context.Context, submissionID int64, stage entity.StageID) ([]*entity.User, error) {
	if m.decidingFunc != nil {
		return m.decidingFunc(ctx, submissionID, stage)
	}
	return nil, nil
}

func (m *mockStageAssignmentRepo) ParticipantsByRole(ctx context.Context, submissionID int64, stage entity.StageID, role entity.RoleID) ([]*entity.User, error) {
	if m.participantsFunc != nil {
		return m.participantsFunc(ctx, submissionID, stage, role)
	}
	return nil, nil
}

func (m *mockStageAssignmentRepo) Build(ctx context.Context, submissionID, userGroupID, userID int64, opts *port.StageAssignmentOptions) (*entity.StageAssignment, error) {
	if m.buildFunc != nil {
		return m.buildFunc(ctx, submissionID, userGroupID, userID, opts)
	}
	return nil, nil
}

type mockUserRepo struct {
	getFunc func(ctx context.Context, id int64) (*entity.User, error)
}

func (m *mockUserRepo) Get(ctx context.Context, id int64) (*entity.User, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return nil, nil
}

type mockFileRepo struct {
	temporaryFunc  func(ctx context.Context, id int64) (*entity.TemporaryFile, error)
	submissionFunc func(ctx context.Context, id int64) (*entity.SubmissionFile, error)
	libraryFunc    func(ctx context.Context, id int64) (*entity.LibraryFile, error)
}

func (m *mockFileRepo) TemporaryFile(ctx context.Context, id int64) (*entity.TemporaryFile, error) {
	if m.temporaryFunc != nil {
		return m.temporaryFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockFileRepo) SubmissionFile(ctx context.Context, id int64) (*entity.SubmissionFile, error) {
	if m.submissionFunc != nil {
		return m.submissionFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockFileRepo) LibraryFile(ctx context.Context, id int64) (*entity.LibraryFile, error) {
	if m.libraryFunc != nil {
		return m.libraryFunc(ctx, id)
	}
	return nil, nil
}

// mockTxManager runs the unit of work inline and counts invocations.
type mockTxManager struct {
	calls int
	fail  error
}

func (m *mockTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	if err := fn(ctx); err != nil {
		return err
	}
	return m.fail
}

type mockNotifier struct {
	notices []*entity.ReviewRound
	err     error
}

func (m *mockNotifier) NotifyReviewRoundStatus(_ context.Context, _ int64, rr *entity.ReviewRound) error {
	m.notices = append(m.notices, rr)
	return m.err
}
