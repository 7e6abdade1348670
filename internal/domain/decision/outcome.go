package decision

import "github.com/openpress/editorial/internal/domain/entity"

// RoundOutcome is what a decision does to the review round it was taken in:
// either force a fixed status, or recompute the status from the round's
// current review assignments. Modeling both cases explicitly keeps nil out
// of the contract.
type RoundOutcome struct {
	fixed  bool
	status entity.RoundStatus
}

// RoundFixed forces the given status on the round.
func RoundFixed(status entity.RoundStatus) RoundOutcome {
	return RoundOutcome{fixed: true, status: status}
}

// RoundRecompute derives the round status from its assignment state.
func RoundRecompute() RoundOutcome {
	return RoundOutcome{}
}

// Fixed returns the forced status and true, or false for recompute.
func (o RoundOutcome) Fixed() (entity.RoundStatus, bool) {
	return o.status, o.fixed
}
