package sat

// Outcome is the final result of Run: either a satisfying model or UNSAT.
type Outcome struct {
	Satisfiable bool
	// Model maps every variable id mentioned anywhere in the input to its
	// truth value. Only meaningful when Satisfiable is true.
	Model map[VariableID]bool
	Stats *Statistics
}

// Run chains the pipeline described in spec.md §2 (Graph container already
// built by Parse, then Simplifier, then CDCL) and assembles the final
// model. It owns no I/O: callers (cmd/solver, internal/cnf) decide how to
// read the input and report the outcome.
func Run(g *Graph) (Outcome, error) {
	stats := NewStatistics()

	result, err := Simplify(g, stats)
	if err != nil {
		return Outcome{Satisfiable: false, Stats: stats}, err
	}

	if !result.Decided {
		c := NewCDCL(g)
		sat, err := c.Solve()
		stats.mergeCDCL(c)
		if err != nil {
			return Outcome{Satisfiable: false, Stats: stats}, err
		}
		if !sat {
			return Outcome{Satisfiable: false, Stats: stats}, &UnsatisfiableError{Reason: "no satisfying assignment exists"}
		}
	} else if !result.Satisfiable {
		return Outcome{Satisfiable: false, Stats: stats}, &UnsatisfiableError{Reason: "simplification derived the empty clause"}
	}

	model := make(map[VariableID]bool, g.NumVariables())
	for id, v := range g.allVariables() {
		switch v.State {
		case assignedTrue:
			model[id] = true
		case assignedFalse:
			model[id] = false
		default:
			// A variable left unassigned (e.g. simplified away by pure-literal
			// elimination of every clause mentioning it before it was itself
			// ever forced) is free; fix it arbitrarily to satisfy the output
			// contract that every known variable gets a value.
			model[id] = true
		}
	}

	return Outcome{Satisfiable: true, Model: model, Stats: stats}, nil
}
