// Package step defines the declarative wizard descriptors a decision type
// exposes before it can be committed. Steps are pure data: they are built
// fresh per request, serialized to the caller, and never persisted.
package step

import "github.com/openpress/editorial/internal/domain/entity"

// Step kinds understood by callers.
const (
	KindEmail        = "email"
	KindPromoteFiles = "promoteFiles"
	KindForm         = "form"
)

// Step is one unit of data collection in a decision wizard.
type Step interface {
	// ID addresses the step within its workflow; adding a step with an
	// existing id replaces it.
	ID() string

	// Kind discriminates the declarative shape consumed by the caller.
	Kind() string

	// Name returns the human-readable title.
	Name() string

	// Description explains what the step collects.
	Description() string

	// State returns the serializable descriptor for this step.
	State() State
}

// State is the wire shape of one step. Errors start empty and are filled in
// by the caller at submission time, not here.
type State struct {
	ID          string              `json:"id"`
	Kind        string              `json:"type"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Errors      map[string][]string `json:"errors"`
	Payload     map[string]any      `json:"payload,omitempty"`
}

type base struct {
	id          string
	kind        string
	name        string
	description string
}

func (b base) ID() string          { return b.id }
func (b base) Kind() string        { return b.kind }
func (b base) Name() string        { return b.name }
func (b base) Description() string { return b.description }

func (b base) state() State {
	return State{
		ID:          b.id,
		Kind:        b.kind,
		Name:        b.name,
		Description: b.description,
		Errors:      map[string][]string{},
	}
}

// Recipient is a user preselected for an email step.
type Recipient struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Recipients converts users to recipients, preserving order.
func Recipients(users []*entity.User) []Recipient {
	out := make([]Recipient, 0, len(users))
	for _, u := range users {
		out = append(out, Recipient{ID: u.ID, Name: u.FullName()})
	}
	return out
}

// EmailStep collects an email to be sent when the decision is recorded.
type EmailStep struct {
	base
	Recipients          []Recipient
	CanChangeRecipients bool
	CanSkip             bool
	AttachmentStages    []entity.FileStage
}

// NewEmailStep creates an email step.
func NewEmailStep(id, name, description string, recipients []Recipient) *EmailStep {
	return &EmailStep{
		base:       base{id: id, kind: KindEmail, name: name, description: description},
		Recipients: recipients,
		CanSkip:    true,
	}
}

// State returns the serializable descriptor for this step.
func (s *EmailStep) State() State {
	st := s.state()
	stages := make([]int, 0, len(s.AttachmentStages))
	for _, fs := range s.AttachmentStages {
		stages = append(stages, int(fs))
	}
	st.Payload = map[string]any{
		"recipients":          s.Recipients,
		"canChangeRecipients": s.CanChangeRecipients,
		"canSkip":             s.CanSkip,
		"attachmentStages":    stages,
	}
	return st
}

// PromoteFilesStep selects files to carry forward into the target stage.
type PromoteFilesStep struct {
	base
	FromFileStages []entity.FileStage
	ToFileStage    entity.FileStage
}

// NewPromoteFilesStep creates a file promotion step.
func NewPromoteFilesStep(id, name, description string, from []entity.FileStage, to entity.FileStage) *PromoteFilesStep {
	return &PromoteFilesStep{
		base:           base{id: id, kind: KindPromoteFiles, name: name, description: description},
		FromFileStages: from,
		ToFileStage:    to,
	}
}

// State returns the serializable descriptor for this step.
func (s *PromoteFilesStep) State() State {
	st := s.state()
	from := make([]int, 0, len(s.FromFileStages))
	for _, fs := range s.FromFileStages {
		from = append(from, int(fs))
	}
	st.Payload = map[string]any{
		"fromFileStages": from,
		"toFileStage":    int(s.ToFileStage),
	}
	return st
}
