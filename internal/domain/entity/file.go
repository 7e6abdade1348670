package entity

// The engine performs existence and ownership checks on files only; bytes
// are handled elsewhere.

// TemporaryFile is an upload pending association, owned by its uploader.
type TemporaryFile struct {
	ID       int64  `json:"id"`
	UserID   int64  `json:"user_id"`
	FileName string `json:"file_name"`
}

// SubmissionFile is a file already visible to a submission at a file stage.
type SubmissionFile struct {
	ID           int64     `json:"id"`
	SubmissionID int64     `json:"submission_id"`
	FileStage    FileStage `json:"file_stage"`
	Name         string    `json:"name"`
}

// LibraryFile belongs to a context's library and may optionally be attached
// to one submission.
type LibraryFile struct {
	ID           int64  `json:"id"`
	ContextID    int64  `json:"context_id"`
	SubmissionID *int64 `json:"submission_id,omitempty"`
	Name         string `json:"name"`
}
