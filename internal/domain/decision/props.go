package decision

// AttachmentRef points an email attachment at exactly one file source.
// Validation rejects refs that set none, or more than one, of the ids.
type AttachmentRef struct {
	Name             string `json:"name,omitempty"`
	TemporaryFileID  *int64 `json:"temporary_file_id,omitempty"`
	SubmissionFileID *int64 `json:"submission_file_id,omitempty"`
	LibraryFileID    *int64 `json:"library_file_id,omitempty"`
}

// DisplayName returns a label for error messages.
func (a AttachmentRef) DisplayName() string {
	if a.Name != "" {
		return a.Name
	}
	return "attachment"
}

// EmailAction is the payload of one email-shaped action attached to a
// decision request (notifyAuthors, notifyReviewers, ...). The id matches
// the email step it fulfills.
type EmailAction struct {
	ID          string          `json:"id"`
	Subject     string          `json:"subject"`
	Body        string          `json:"body"`
	Locale      string          `json:"locale,omitempty"`
	To          []string        `json:"to,omitempty"`
	CC          []string        `json:"cc,omitempty"`
	BCC         []string        `json:"bcc,omitempty"`
	Attachments []AttachmentRef `json:"attachments,omitempty"`
}

// Props is the caller-supplied payload for one decision request, already
// parsed from the wire.
type Props struct {
	Decision      int           `json:"decision"`
	ReviewRoundID *int64        `json:"review_round_id,omitempty"`
	Actions       []EmailAction `json:"actions,omitempty"`
}
