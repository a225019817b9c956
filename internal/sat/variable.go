package sat

// assignState is a Variable's current value under the partial assignment.
type assignState int

const (
	unassigned assignState = iota
	assignedTrue
	assignedFalse
)

// Variable is a bipartite-graph node: an assignment slot plus the two
// occurrence sets that name every clause mentioning it, keyed by polarity.
type Variable struct {
	ID       VariableID
	State    assignState
	Positive map[ClauseID]struct{}
	Negative map[ClauseID]struct{}
}

func newVariable(id VariableID) *Variable {
	return &Variable{
		ID:       id,
		State:    unassigned,
		Positive: make(map[ClauseID]struct{}),
		Negative: make(map[ClauseID]struct{}),
	}
}

// Score is the decision heuristic from spec.md §4.4: the larger of the two
// occurrence-set sizes, computed from the current graph.
func (v *Variable) Score() int {
	if len(v.Positive) > len(v.Negative) {
		return len(v.Positive)
	}
	return len(v.Negative)
}
