package entity

import "time"

// Decision is the append-only record of one editorial action taken on a
// submission. Once persisted it is never updated, except for editor
// reassignment during account consolidation.
type Decision struct {
	ID            int64     `json:"id"`
	SubmissionID  int64     `json:"submission_id"`
	EditorID      int64     `json:"editor_id"`
	Decision      int       `json:"decision"`
	StageID       StageID   `json:"stage_id"`
	ReviewRoundID *int64    `json:"review_round_id,omitempty"`
	Round         *int      `json:"round,omitempty"`
	DateDecided   time.Time `json:"date_decided"`
}
