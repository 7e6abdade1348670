package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openpress/editorial/internal/application/port"
	"github.com/openpress/editorial/internal/application/service"
	"github.com/openpress/editorial/internal/domain/decision"
	"github.com/openpress/editorial/internal/domain/entity"
	"github.com/openpress/editorial/internal/domain/step"
)

type testLogger struct{}

func (testLogger) Info(string, ...interface{})  {}
func (testLogger) Error(string, ...interface{}) {}

type mockDecisionService struct {
	recordFunc    func(ctx context.Context, req service.RecordRequest) (*entity.Decision, error)
	stepsFunc     func(ctx context.Context, code int, submissionID, editorID int64, reviewRoundID *int64) (*step.Workflow, error)
	decisionsFunc func(ctx context.Context, c *port.DecisionCollector) ([]*entity.Decision, error)
	reassignFunc  func(ctx context.Context, fromEditorID, toEditorID int64) (int64, error)
}

func (m *mockDecisionService) Record(ctx context.Context, req service.RecordRequest) (*entity.Decision, error) {
	return m.recordFunc(ctx, req)
}

func (m *mockDecisionService) Steps(ctx context.Context, code int, submissionID, editorID int64, reviewRoundID *int64) (*step.Workflow, error) {
	return m.stepsFunc(ctx, code, submissionID, editorID, reviewRoundID)
}

func (m *mockDecisionService) Decisions(ctx context.Context, c *port.DecisionCollector) ([]*entity.Decision, error) {
	return m.decisionsFunc(ctx, c)
}

func (m *mockDecisionService) ReassignDecisions(ctx context.Context, fromEditorID, toEditorID int64) (int64, error) {
	return m.reassignFunc(ctx, fromEditorID, toEditorID)
}

func (m *mockDecisionService) ValidateRecipients(context.Context, string, []int64, string, decision.FieldErrors) error {
	return nil
}

func newTestServer(svc service.DecisionService) *Server {
	return NewServer(DefaultServerConfig(), svc, testLogger{})
}

func doRequest(t *testing.T, s *Server, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHealthCheck(t *testing.T) {
	s := newTestServer(&mockDecisionService{})

	w := doRequest(t, s, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
}

func TestRecordDecision(t *testing.T) {
	var captured service.RecordRequest
	svc := &mockDecisionService{
		recordFunc: func(_ context.Context, req service.RecordRequest) (*entity.Decision, error) {
			captured = req
			return &entity.Decision{
				ID:           7,
				SubmissionID: req.SubmissionID,
				EditorID:     req.EditorID,
				Decision:     req.Decision,
				StageID:      entity.StageExternalReview,
				DateDecided:  time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
			}, nil
		},
	}
	s := newTestServer(svc)

	w := doRequest(t, s, http.MethodPost, "/api/v1/submissions/3/decisions", RecordDecisionRequest{
		Decision: decision.CodeAccept,
		EditorID: 2,
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(3), captured.SubmissionID)
	assert.Equal(t, int64(2), captured.EditorID)
	assert.NotEmpty(t, captured.AllowedAttachmentStages)

	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var d DecisionResponse
	require.NoError(t, json.Unmarshal(data, &d))
	assert.Equal(t, int64(7), d.ID)
	assert.Equal(t, "2025-06-01T09:00:00Z", d.DateDecided)
}

func TestRecordDecisionErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"field errors", decision.FieldErrors{"decision": {"not valid at this stage"}}, http.StatusBadRequest},
		{"unknown decision", decision.ErrUnknownDecision, http.StatusBadRequest},
		{"precondition", decision.ErrPrecondition, http.StatusBadRequest},
		{"storage failure", assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockDecisionService{
				recordFunc: func(context.Context, service.RecordRequest) (*entity.Decision, error) {
					return nil, tt.err
				},
			}
			s := newTestServer(svc)

			w := doRequest(t, s, http.MethodPost, "/api/v1/submissions/3/decisions", RecordDecisionRequest{
				Decision: decision.CodeAccept,
				EditorID: 2,
			})

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := decodeResponse(t, w)
			assert.False(t, resp.Success)
		})
	}
}

func TestRecordDecisionFieldErrorsPayload(t *testing.T) {
	svc := &mockDecisionService{
		recordFunc: func(context.Context, service.RecordRequest) (*entity.Decision, error) {
			return nil, decision.FieldErrors{"actions.0.to": {"Not all recipients could be found: 42."}}
		},
	}
	s := newTestServer(svc)

	w := doRequest(t, s, http.MethodPost, "/api/v1/submissions/3/decisions", RecordDecisionRequest{
		Decision: decision.CodeAccept,
		EditorID: 2,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	require.Contains(t, resp.Errors, "actions.0.to")
	assert.Equal(t, []string{"Not all recipients could be found: 42."}, resp.Errors["actions.0.to"])
}

func TestRecordDecisionBadSubmissionID(t *testing.T) {
	s := newTestServer(&mockDecisionService{})

	w := doRequest(t, s, http.MethodPost, "/api/v1/submissions/abc/decisions", RecordDecisionRequest{
		Decision: 1, EditorID: 2,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListDecisionsAppliesQueryFilters(t *testing.T) {
	var captured *port.DecisionCollector
	svc := &mockDecisionService{
		decisionsFunc: func(_ context.Context, c *port.DecisionCollector) ([]*entity.Decision, error) {
			captured = c
			return nil, nil
		},
	}
	s := newTestServer(svc)

	w := doRequest(t, s, http.MethodGet,
		"/api/v1/submissions/3/decisions?decisions=1,4&editor_ids=2&order_by=decision_id&order_dir=desc", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, captured)
	assert.Equal(t, []int64{3}, captured.SubmissionIDs)
	assert.Equal(t, []int{1, 4}, captured.DecisionTypes)
	assert.Equal(t, []int64{2}, captured.EditorIDs)
	assert.Equal(t, port.OrderByID, captured.OrderColumn)
	assert.True(t, captured.OrderDesc)
}

func TestListDecisionsRejectsBadFilters(t *testing.T) {
	s := newTestServer(&mockDecisionService{})

	w := doRequest(t, s, http.MethodGet, "/api/v1/submissions/3/decisions?decisions=1,x", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, s, http.MethodGet, "/api/v1/submissions/3/decisions?order_by=editor_id", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDecisionStepsNoWizard(t *testing.T) {
	svc := &mockDecisionService{
		stepsFunc: func(context.Context, int, int64, int64, *int64) (*step.Workflow, error) {
			return nil, nil
		},
	}
	s := newTestServer(svc)

	w := doRequest(t, s, http.MethodGet, "/api/v1/submissions/3/decisions/steps?decision=9&editor_id=2", nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestDecisionStepsReturnsWorkflowState(t *testing.T) {
	svc := &mockDecisionService{
		stepsFunc: func(_ context.Context, code int, submissionID, editorID int64, reviewRoundID *int64) (*step.Workflow, error) {
			assert.Equal(t, decision.CodeAccept, code)
			assert.Equal(t, int64(3), submissionID)
			assert.Equal(t, int64(2), editorID)
			assert.Nil(t, reviewRoundID)

			wf := step.NewWorkflow()
			wf.AddStep(step.NewPromoteFilesStep("promoteFiles", "Promote files", "",
				[]entity.FileStage{entity.FileStageReviewRevision}, entity.FileStageFinal), false)
			return wf, nil
		},
	}
	s := newTestServer(svc)

	w := doRequest(t, s, http.MethodGet, "/api/v1/submissions/3/decisions/steps?decision=1&editor_id=2", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
}

func TestReassignDecisionsEndpoint(t *testing.T) {
	svc := &mockDecisionService{
		reassignFunc: func(_ context.Context, from, to int64) (int64, error) {
			assert.Equal(t, int64(10), from)
			assert.Equal(t, int64(11), to)
			return 5, nil
		},
	}
	s := newTestServer(svc)

	w := doRequest(t, s, http.MethodPost, "/api/v1/editors/reassign-decisions", ReassignDecisionsRequest{
		FromEditorID: 10, ToEditorID: 11,
	})

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
}
