package decision

import (
	"context"

	"github.com/openpress/editorial/internal/domain/entity"
	"github.com/openpress/editorial/internal/domain/step"
)

// facts carries the compile-time-fixed properties shared by all decision
// types. Concrete types embed it and override the variable behavior.
type facts struct {
	code           int
	stageID        entity.StageID
	label          string
	description    string
	completed      string
	recommendation bool
}

func (f facts) Decision() int           { return f.code }
func (f facts) StageID() entity.StageID { return f.stageID }
func (f facts) Label() string           { return f.label }
func (f facts) Description() string     { return f.description }
func (f facts) CompletedLabel() string  { return f.completed }
func (f facts) IsRecommendation() bool  { return f.recommendation }

func (f facts) IsInReview() bool { return f.stageID.IsReviewStage() }

func (f facts) NewStatus() *entity.SubmissionStatus { return nil }

func (f facts) NewReviewRoundStatus() RoundOutcome { return RoundRecompute() }

func (f facts) NewStageID(*entity.Submission, *int64) *entity.StageID { return nil }

// Validate adds nothing by default; generic schema and email-action checks
// run before it.
func (f facts) Validate(context.Context, *Props, *entity.Submission, FieldErrors) {}

// Steps returns no wizard by default; such decisions are recorded directly.
func (f facts) Steps(context.Context, StepContext, *entity.Submission, *entity.User, *entity.ReviewRound) (*step.Workflow, error) {
	return nil, nil
}

func statusPtr(s entity.SubmissionStatus) *entity.SubmissionStatus { return &s }

func stagePtr(s entity.StageID) *entity.StageID { return &s }
