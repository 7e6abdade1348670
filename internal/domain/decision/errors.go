package decision

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrUnknownDecision is returned when a decision code has no
	// registered type. Hitting it for a persisted decision is a caller
	// bug, not a user error.
	ErrUnknownDecision = errors.New("unknown decision code")

	// ErrDuplicateDecision is returned when two types register the same
	// decision code.
	ErrDuplicateDecision = errors.New("duplicate decision code")

	// ErrPrecondition marks programmer or caller errors, such as taking
	// an in-review decision without a review round. These are not meant
	// to be handled as user-facing validation failures.
	ErrPrecondition = errors.New("decision precondition failed")
)

// FieldErrors collects recoverable validation failures keyed by field path.
// Validation adds errors here instead of failing fast, so the caller can
// surface every problem at once.
type FieldErrors map[string][]string

// Add appends a message to the given field.
func (e FieldErrors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

// IsEmpty returns true when no errors have been recorded.
func (e FieldErrors) IsEmpty() bool {
	return len(e) == 0
}

// Error implements error so a non-empty set can be returned directly.
func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	var b strings.Builder
	b.WriteString("validation failed")
	for _, f := range fields {
		fmt.Fprintf(&b, "; %s: %s", f, strings.Join(e[f], ", "))
	}
	return b.String()
}
