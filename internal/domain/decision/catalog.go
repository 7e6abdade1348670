package decision

import (
	"fmt"
	"sort"
)

// Catalog is the registration table of decision types, looked up by code.
// At most one type may register per code; the set is fixed at construction
// and injected wherever decisions are recorded.
type Catalog struct {
	types map[int]Type
}

// NewCatalog builds a catalog, rejecting duplicate codes and types placed
// outside the fixed stage set.
func NewCatalog(types ...Type) (*Catalog, error) {
	c := &Catalog{types: make(map[int]Type, len(types))}
	for _, t := range types {
		if !t.StageID().IsValid() {
			return nil, fmt.Errorf("decision %d: invalid stage %d", t.Decision(), t.StageID())
		}
		if _, ok := c.types[t.Decision()]; ok {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateDecision, t.Decision())
		}
		c.types[t.Decision()] = t
	}
	return c, nil
}

// Get returns the type registered for the code.
func (c *Catalog) Get(code int) (Type, error) {
	t, ok := c.types[code]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownDecision, code)
	}
	return t, nil
}

// Types returns all registered types ordered by code.
func (c *Catalog) Types() []Type {
	out := make([]Type, 0, len(c.types))
	for _, t := range c.types {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Decision() < out[j].Decision() })
	return out
}

// MustDefaultCatalog returns the full built-in decision set. It panics on a
// registration conflict, which can only be a programming error.
func MustDefaultCatalog() *Catalog {
	c, err := NewCatalog(
		NewAccept(),
		NewPendingRevisions(),
		NewResubmit(),
		NewDecline(),
		NewSendToProduction(),
		NewExternalReview(),
		NewInitialDecline(),
		NewRecommendAccept(),
		NewRecommendPendingRevisions(),
		NewRecommendResubmit(),
		NewRecommendDecline(),
		NewNewExternalReviewRound(),
		NewRevertDecline(),
		NewRevertInitialDecline(),
		NewSkipExternalReview(),
		NewBackFromProduction(),
		NewBackFromCopyediting(),
	)
	if err != nil {
		panic(err)
	}
	return c
}
