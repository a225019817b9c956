package sat

// SimplifyResult reports whether the Simplifier alone settled the formula.
type SimplifyResult struct {
	// Decided is true when the simplifier already determined SAT or UNSAT;
	// the CDCL stage must not run in that case.
	Decided bool
	// Satisfiable is only meaningful when Decided is true.
	Satisfiable bool
}

// forcedAssignment is a pending assignment discovered by unit propagation
// or pure-literal elimination, queued rather than applied recursively so
// that a long chain of forced assignments never grows the call stack
// (spec.md §5).
type forcedAssignment struct {
	v     VariableID
	value bool
}

type simplifier struct {
	g      *Graph
	stats  *Statistics
	queue  []forcedAssignment
	solved bool // the clause set was exhausted mid-run: SAT
}

// Simplify runs unit propagation to fixpoint (Phase A) followed by
// pure-literal elimination to fixpoint (Phase B), per spec.md §4.3. stats
// may be nil; if given, every clause removed outright is counted against
// SimplifiedCount.
func Simplify(g *Graph, stats *Statistics) (SimplifyResult, error) {
	if stats == nil {
		stats = NewStatistics()
	}
	s := &simplifier{g: g, stats: stats}

	for _, seed := range g.UnitClauseSeeds() {
		c, ok := g.Clause(seed)
		if !ok || len(c.Literals) != 1 {
			continue // "for each seed unit clause still present"
		}
		lit := c.Literals[0]
		s.queue = append(s.queue, forcedAssignment{v: VarOf(lit), value: !IsNegated(lit)})
	}
	if err := s.drain(); err != nil {
		return SimplifyResult{}, err
	}
	if s.solved || g.NumClauses() == 0 {
		return SimplifyResult{Decided: true, Satisfiable: true}, nil
	}

	// Phase B: pure-literal elimination over the snapshot of variables
	// unassigned at phase start. Variables that disappear mid-iteration
	// (impossible here, since variables are never deleted, only their
	// occurrence sets shrink) are simply re-checked and skipped if no
	// longer eligible.
	for _, v := range g.UnassignedVariables() {
		variable, ok := g.Variable(v)
		if !ok || variable.State != unassigned {
			continue
		}
		if pure, value := g.PureLiteralValue(v); pure {
			s.queue = append(s.queue, forcedAssignment{v: v, value: value})
			if err := s.drain(); err != nil {
				return SimplifyResult{}, err
			}
			if s.solved || g.NumClauses() == 0 {
				return SimplifyResult{Decided: true, Satisfiable: true}, nil
			}
		}
	}

	return SimplifyResult{}, nil
}

// drain applies queued forced assignments to fixpoint.
func (s *simplifier) drain() error {
	for len(s.queue) > 0 {
		fa := s.queue[0]
		s.queue = s.queue[1:]

		variable, ok := s.g.Variable(fa.v)
		if !ok {
			panicInvariant("simplify: unknown variable %d", fa.v)
		}
		if variable.State != unassigned {
			// Already settled by an earlier forced assignment in this
			// batch; if it settled to the opposite value that's a genuine
			// conflict, otherwise it's a harmless duplicate.
			wantTrue := fa.value
			isTrue := variable.State == assignedTrue
			if wantTrue != isTrue {
				return &UnsatisfiableError{Reason: "conflicting forced assignments during simplification"}
			}
			continue
		}
		if err := s.apply(fa.v, fa.value); err != nil {
			return err
		}
		if s.solved {
			return nil
		}
	}
	return nil
}

// apply performs the actual assignment and its structural cascade
// (spec.md §4.3): clauses satisfied by the assignment are removed
// outright (revisiting their other variables for newly-pure literals),
// clauses falsified in one literal are shrunk (an empty result is UNSAT,
// a unit result is queued for further propagation).
func (s *simplifier) apply(v VariableID, value bool) error {
	outcome := s.g.Assign(v, value, false)
	switch outcome {
	case assignConflict:
		return &UnsatisfiableError{Reason: "unit propagation contradicts an existing assignment"}
	case assignNoOp:
		return nil
	}

	variable, _ := s.g.Variable(v)
	var satisfied, falsified map[ClauseID]struct{}
	if value {
		satisfied, falsified = variable.Positive, variable.Negative
	} else {
		satisfied, falsified = variable.Negative, variable.Positive
	}

	satisfiedIDs := make([]ClauseID, 0, len(satisfied))
	for cid := range satisfied {
		satisfiedIDs = append(satisfiedIDs, cid)
	}
	for _, cid := range satisfiedIDs {
		if !s.g.HasClause(cid) {
			continue
		}
		touched := s.g.RemoveClause(cid)
		s.stats.SimplifiedCount++
		if s.g.NumClauses() == 0 {
			s.solved = true
			return nil
		}
		for _, tv := range touched {
			if tv == v {
				continue
			}
			if pure, pv := s.g.PureLiteralValue(tv); pure {
				s.queue = append(s.queue, forcedAssignment{v: tv, value: pv})
			}
		}
	}

	falsifiedIDs := make([]ClauseID, 0, len(falsified))
	for cid := range falsified {
		falsifiedIDs = append(falsifiedIDs, cid)
	}
	falsifiedLit := ToLiteral(v, !value)
	for _, cid := range falsifiedIDs {
		if !s.g.HasClause(cid) {
			continue
		}
		newSize := s.g.RemoveLiteral(cid, falsifiedLit)
		switch newSize {
		case 0:
			return &UnsatisfiableError{Reason: "unit propagation produced an empty clause"}
		case 1:
			c, _ := s.g.Clause(cid)
			lit := c.Literals[0]
			s.queue = append(s.queue, forcedAssignment{v: VarOf(lit), value: !IsNegated(lit)})
		}
	}
	return nil
}
