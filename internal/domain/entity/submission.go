package entity

import "time"

// Submission is the manuscript moving through the workflow. The decision
// engine mutates only Status, StageID and LastReviewStage.
type Submission struct {
	ID        int64            `json:"id"`
	ContextID int64            `json:"context_id"`
	StageID   StageID          `json:"stage_id"`
	Status    SubmissionStatus `json:"status"`
	Locale    string           `json:"locale"`
	// LastReviewStage records the most recent review stage the submission
	// entered, so that returning from copyediting can land in the right
	// place without a round lookup.
	LastReviewStage *StageID  `json:"last_review_stage,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
