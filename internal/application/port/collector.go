package port

import "github.com/openpress/editorial/internal/domain/entity"

// Decision collector order columns.
const (
	OrderByDateDecided = "date_decided"
	OrderByID          = "decision_id"
)

// DecisionCollector narrows and orders decision queries. Zero-value slices
// leave their dimension unfiltered.
type DecisionCollector struct {
	DecisionTypes  []int
	EditorIDs      []int64
	StageIDs       []entity.StageID
	SubmissionIDs  []int64
	ReviewRoundIDs []int64
	Rounds         []int
	OrderColumn    string
	OrderDesc      bool
}

// NewDecisionCollector returns an empty collector ordered by decided date
// ascending.
func NewDecisionCollector() *DecisionCollector {
	return &DecisionCollector{OrderColumn: OrderByDateDecided}
}

// FilterByDecisionTypes narrows to the given decision codes.
func (c *DecisionCollector) FilterByDecisionTypes(codes ...int) *DecisionCollector {
	c.DecisionTypes = codes
	return c
}

// FilterByEditorIDs narrows to decisions taken by the given editors.
func (c *DecisionCollector) FilterByEditorIDs(ids ...int64) *DecisionCollector {
	c.EditorIDs = ids
	return c
}

// FilterByStageIDs narrows to decisions taken in the given stages.
func (c *DecisionCollector) FilterByStageIDs(stages ...entity.StageID) *DecisionCollector {
	c.StageIDs = stages
	return c
}

// FilterBySubmissionIDs narrows to the given submissions.
func (c *DecisionCollector) FilterBySubmissionIDs(ids ...int64) *DecisionCollector {
	c.SubmissionIDs = ids
	return c
}

// FilterByReviewRoundIDs narrows to decisions taken in the given rounds.
func (c *DecisionCollector) FilterByReviewRoundIDs(ids ...int64) *DecisionCollector {
	c.ReviewRoundIDs = ids
	return c
}

// FilterByRounds narrows to the given round numbers.
func (c *DecisionCollector) FilterByRounds(rounds ...int) *DecisionCollector {
	c.Rounds = rounds
	return c
}

// OrderBy sets the order column and direction.
func (c *DecisionCollector) OrderBy(column string, desc bool) *DecisionCollector {
	c.OrderColumn = column
	c.OrderDesc = desc
	return c
}
