package entity

import "time"

// ReviewRound is one numbered cycle of review within a review stage.
// Exactly one round exists per (submission, stage, round) triple.
type ReviewRound struct {
	ID           int64       `json:"id"`
	SubmissionID int64       `json:"submission_id"`
	StageID      StageID     `json:"stage_id"`
	Round        int         `json:"round"`
	Status       RoundStatus `json:"status"`
}

// ReviewAssignment is one reviewer's engagement with a review round. The
// engine reads these when recomputing a round's status; it never writes
// them.
type ReviewAssignment struct {
	ID            int64      `json:"id"`
	ReviewRoundID int64      `json:"review_round_id"`
	ReviewerID    int64      `json:"reviewer_id"`
	DateDue       *time.Time `json:"date_due,omitempty"`
	DateCompleted *time.Time `json:"date_completed,omitempty"`
	DateConfirmed *time.Time `json:"date_confirmed,omitempty"`
	Declined      bool       `json:"declined"`
	Cancelled     bool       `json:"cancelled"`
}

// IsActive returns true if the assignment still counts toward the round's
// status.
func (a *ReviewAssignment) IsActive() bool {
	return !a.Declined && !a.Cancelled
}
