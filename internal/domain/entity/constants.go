package entity

// StageID identifies a phase of the editorial workflow. The set is closed;
// a submission always sits in exactly one stage.
type StageID int

const (
	StageSubmission     StageID = 1
	StageInternalReview StageID = 2
	StageExternalReview StageID = 3
	StageCopyediting    StageID = 4
	StageProduction     StageID = 5
)

var validStages = map[StageID]bool{
	StageSubmission:     true,
	StageInternalReview: true,
	StageExternalReview: true,
	StageCopyediting:    true,
	StageProduction:     true,
}

// IsValid returns true if the stage is part of the workflow.
func (s StageID) IsValid() bool {
	return validStages[s]
}

// IsReviewStage returns true for stages that carry review rounds.
func (s StageID) IsReviewStage() bool {
	return s == StageInternalReview || s == StageExternalReview
}

// String returns the string representation of the stage
func (s StageID) String() string {
	switch s {
	case StageSubmission:
		return "submission"
	case StageInternalReview:
		return "internalReview"
	case StageExternalReview:
		return "externalReview"
	case StageCopyediting:
		return "copyediting"
	case StageProduction:
		return "production"
	}
	return "unknown"
}

// SubmissionStatus is the publication status of a submission.
type SubmissionStatus int

const (
	StatusQueued    SubmissionStatus = 1
	StatusPublished SubmissionStatus = 3
	StatusDeclined  SubmissionStatus = 4
	StatusScheduled SubmissionStatus = 5
)

// RoundStatus is the status of one review round. The decision engine only
// names the statuses it writes; the rest it carries opaquely.
type RoundStatus int

const (
	RoundStatusRevisionsRequested RoundStatus = 1
	RoundStatusResubmitForReview  RoundStatus = 2
	RoundStatusAccepted           RoundStatus = 4
	RoundStatusDeclined           RoundStatus = 5
	RoundStatusPendingReviewers   RoundStatus = 6
	RoundStatusPendingReviews     RoundStatus = 7
	RoundStatusReviewsReady       RoundStatus = 8
	RoundStatusReviewsCompleted   RoundStatus = 9
	RoundStatusReviewsOverdue     RoundStatus = 10
	RoundStatusRevisionsSubmitted RoundStatus = 11
)

// RoleID identifies a role group category.
type RoleID int

const (
	RoleManager   RoleID = 16
	RoleSubEditor RoleID = 17
	RoleReviewer  RoleID = 4096
	RoleAssistant RoleID = 4097
	RoleAuthor    RoleID = 65536
)

// FileStage identifies where a submission file lives in the workflow.
// Callers pass an allow-list of these when validating email attachments.
type FileStage int

const (
	FileStageSubmission       FileStage = 2
	FileStageReviewFile       FileStage = 4
	FileStageReviewAttachment FileStage = 5
	FileStageFinal            FileStage = 6
	FileStageCopyedited       FileStage = 9
	FileStageProof            FileStage = 10
	FileStageAttachment       FileStage = 13
	FileStageReviewRevision   FileStage = 15
)
