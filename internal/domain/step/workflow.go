package step

// Workflow is the ordered collection of steps for one decision wizard.
// Steps are addressable by id: adding a step whose id already exists
// replaces it in place unless it is being prepended.
type Workflow struct {
	steps []Step
}

// NewWorkflow creates an empty workflow.
func NewWorkflow() *Workflow {
	return &Workflow{}
}

// AddStep appends the step, or inserts it at the front when prepend is
// true. When not prepending, a step with a matching id replaces the
// existing one without changing its position.
func (w *Workflow) AddStep(s Step, prepend bool) {
	if prepend {
		w.steps = append([]Step{s}, w.steps...)
		return
	}
	for i, existing := range w.steps {
		if existing.ID() == s.ID() {
			w.steps[i] = s
			return
		}
	}
	w.steps = append(w.steps, s)
}

// Get returns the step with the given id, or nil.
func (w *Workflow) Get(id string) Step {
	for _, s := range w.steps {
		if s.ID() == id {
			return s
		}
	}
	return nil
}

// Len returns the number of steps.
func (w *Workflow) Len() int {
	return len(w.steps)
}

// State returns the ordered step descriptors for serialization.
func (w *Workflow) State() []State {
	out := make([]State, 0, len(w.steps))
	for _, s := range w.steps {
		out = append(out, s.State())
	}
	return out
}
