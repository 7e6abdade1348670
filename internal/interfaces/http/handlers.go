package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openpress/editorial/internal/application/port"
	"github.com/openpress/editorial/internal/application/service"
	"github.com/openpress/editorial/internal/domain/decision"
	"github.com/openpress/editorial/internal/domain/entity"
)

// Handlers contains all HTTP request handlers
type Handlers struct {
	decisionService service.DecisionService
	logger          Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(decisionService service.DecisionService, logger Logger) *Handlers {
	return &Handlers{decisionService: decisionService, logger: logger}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	// Errors carries per-field validation messages when present.
	Errors map[string][]string `json:"errors,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// RecordDecisionRequest is the body of POST .../decisions.
type RecordDecisionRequest struct {
	Decision      int                    `json:"decision" binding:"required"`
	EditorID      int64                  `json:"editor_id" binding:"required"`
	ReviewRoundID *int64                 `json:"review_round_id"`
	Actions       []decision.EmailAction `json:"actions"`
}

// DecisionResponse represents a recorded decision in API responses
type DecisionResponse struct {
	ID            int64  `json:"id"`
	SubmissionID  int64  `json:"submission_id"`
	EditorID      int64  `json:"editor_id"`
	Decision      int    `json:"decision"`
	StageID       int    `json:"stage_id"`
	ReviewRoundID *int64 `json:"review_round_id,omitempty"`
	Round         *int   `json:"round,omitempty"`
	DateDecided   string `json:"date_decided"`
}

// ReassignDecisionsRequest is the body of POST /editors/reassign-decisions.
type ReassignDecisionsRequest struct {
	FromEditorID int64 `json:"from_editor_id" binding:"required"`
	ToEditorID   int64 `json:"to_editor_id" binding:"required"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   "1.0.0",
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    response,
	})
}

// RecordDecision handles POST /api/v1/submissions/:submissionId/decisions
func (h *Handlers) RecordDecision(c *gin.Context) {
	submissionID, ok := h.submissionID(c)
	if !ok {
		return
	}

	var req RecordDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid decision request body", "error", err)
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid request body",
		})
		return
	}

	d, err := h.decisionService.Record(c.Request.Context(), service.RecordRequest{
		SubmissionID:  submissionID,
		EditorID:      req.EditorID,
		Decision:      req.Decision,
		ReviewRoundID: req.ReviewRoundID,
		Actions:       req.Actions,
		AllowedAttachmentStages: []entity.FileStage{
			entity.FileStageReviewFile,
			entity.FileStageReviewAttachment,
			entity.FileStageReviewRevision,
			entity.FileStageAttachment,
		},
	})
	if err != nil {
		h.writeRecordError(c, submissionID, err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    toDecisionResponse(d),
	})
}

// ListDecisions handles GET /api/v1/submissions/:submissionId/decisions
func (h *Handlers) ListDecisions(c *gin.Context) {
	submissionID, ok := h.submissionID(c)
	if !ok {
		return
	}

	collector := port.NewDecisionCollector().FilterBySubmissionIDs(submissionID)
	if err := applyCollectorQuery(c, collector); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	decisions, err := h.decisionService.Decisions(c.Request.Context(), collector)
	if err != nil {
		h.logger.Error("Failed to list decisions", "submission_id", submissionID, "error", err)
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to retrieve decisions",
		})
		return
	}

	responses := make([]DecisionResponse, 0, len(decisions))
	for _, d := range decisions {
		responses = append(responses, toDecisionResponse(d))
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    responses,
	})
}

// DecisionSteps handles GET /api/v1/submissions/:submissionId/decisions/steps.
// Decision types without an interactive workflow answer 204.
func (h *Handlers) DecisionSteps(c *gin.Context) {
	submissionID, ok := h.submissionID(c)
	if !ok {
		return
	}

	code, err := strconv.Atoi(c.Query("decision"))
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid decision code",
		})
		return
	}
	editorID, err := strconv.ParseInt(c.Query("editor_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid editor id",
		})
		return
	}
	var reviewRoundID *int64
	if raw := c.Query("review_round_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, Response{
				Success: false,
				Error:   "invalid review round id",
			})
			return
		}
		reviewRoundID = &id
	}

	workflow, err := h.decisionService.Steps(c.Request.Context(), code, submissionID, editorID, reviewRoundID)
	if err != nil {
		h.writeRecordError(c, submissionID, err)
		return
	}
	if workflow == nil {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    workflow.State(),
	})
}

// ReassignDecisions handles POST /api/v1/editors/reassign-decisions
func (h *Handlers) ReassignDecisions(c *gin.Context) {
	var req ReassignDecisionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid request body",
		})
		return
	}

	count, err := h.decisionService.ReassignDecisions(c.Request.Context(), req.FromEditorID, req.ToEditorID)
	if err != nil {
		h.logger.Error("Failed to reassign decisions", "error", err)
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to reassign decisions",
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    gin.H{"reassigned": count},
	})
}

func (h *Handlers) submissionID(c *gin.Context) (int64, bool) {
	idStr := c.Param("submissionId")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.logger.Error("Invalid submission ID", "id", idStr, "error", err)
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid submission ID",
		})
		return 0, false
	}
	return id, true
}

func (h *Handlers) writeRecordError(c *gin.Context, submissionID int64, err error) {
	var fieldErrs decision.FieldErrors
	switch {
	case errors.As(err, &fieldErrs):
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "validation failed",
			Errors:  fieldErrs,
		})
	case errors.Is(err, decision.ErrUnknownDecision), errors.Is(err, decision.ErrPrecondition):
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
	default:
		h.logger.Error("Failed to record decision", "submission_id", submissionID, "error", err)
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to record decision",
		})
	}
}

// applyCollectorQuery maps list query parameters onto the collector.
func applyCollectorQuery(c *gin.Context, collector *port.DecisionCollector) error {
	if codes, err := intList(c.Query("decisions")); err != nil {
		return errors.New("invalid decisions filter")
	} else if len(codes) > 0 {
		collector.FilterByDecisionTypes(codes...)
	}

	if ids, err := int64List(c.Query("editor_ids")); err != nil {
		return errors.New("invalid editor_ids filter")
	} else if len(ids) > 0 {
		collector.FilterByEditorIDs(ids...)
	}

	if stages, err := intList(c.Query("stage_ids")); err != nil {
		return errors.New("invalid stage_ids filter")
	} else if len(stages) > 0 {
		stageIDs := make([]entity.StageID, len(stages))
		for i, s := range stages {
			stageIDs[i] = entity.StageID(s)
		}
		collector.FilterByStageIDs(stageIDs...)
	}

	if ids, err := int64List(c.Query("review_round_ids")); err != nil {
		return errors.New("invalid review_round_ids filter")
	} else if len(ids) > 0 {
		collector.FilterByReviewRoundIDs(ids...)
	}

	if rounds, err := intList(c.Query("rounds")); err != nil {
		return errors.New("invalid rounds filter")
	} else if len(rounds) > 0 {
		collector.FilterByRounds(rounds...)
	}

	switch c.Query("order_by") {
	case "", port.OrderByDateDecided:
	case port.OrderByID:
		collector.OrderColumn = port.OrderByID
	default:
		return errors.New("invalid order_by column")
	}
	collector.OrderDesc = c.Query("order_dir") == "desc"

	return nil
}

func intList(raw string) ([]int, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func int64List(raw string) ([]int64, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	out := make([]int64, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// toDecisionResponse converts the domain entity to the API shape
func toDecisionResponse(d *entity.Decision) DecisionResponse {
	return DecisionResponse{
		ID:            d.ID,
		SubmissionID:  d.SubmissionID,
		EditorID:      d.EditorID,
		Decision:      d.Decision,
		StageID:       int(d.StageID),
		ReviewRoundID: d.ReviewRoundID,
		Round:         d.Round,
		DateDecided:   d.DateDecided.UTC().Format(time.RFC3339),
	}
}
