package sat

import "sort"

// visitOutcome is the result of (re-)scanning a clause after one of its
// literals was assigned (spec.md §4.4 visitClause).
type visitOutcome int

const (
	visitSAT visitOutcome = iota
	visitUNSAT
	visitUnit
	visitUnassigned
)

// pendingAssign is queued CDCL work: a forced assignment plus the clause
// that forces it (0 for a decision). Propagation is driven through this
// queue instead of recursion so a long implication chain never grows the
// call stack (spec.md §5).
type pendingAssign struct {
	v      VariableID
	value  bool
	reason ClauseID
}

// CDCL runs conflict-driven clause learning over a Graph already left in a
// quiescent state by the Simplifier.
type CDCL struct {
	g     *Graph
	trail *Trail
	order []VariableID

	Decisions      int
	Propagations   int
	Conflicts      int
	LearnedClauses int
}

// NewCDCL builds a CDCL engine over g. The decision order is fixed at
// construction time: the variables unassigned at entry, sorted descending
// by Variable.Score with ties broken by ascending id for deterministic
// replay (spec.md §4.4).
func NewCDCL(g *Graph) *CDCL {
	c := &CDCL{g: g, trail: newTrail()}
	c.order = g.UnassignedVariables()
	sort.Slice(c.order, func(i, j int) bool {
		vi, _ := g.Variable(c.order[i])
		vj, _ := g.Variable(c.order[j])
		si, sj := vi.Score(), vj.Score()
		if si != sj {
			return si > sj
		}
		return c.order[i] < c.order[j]
	})
	return c
}

// Solve runs the main CDCL loop to completion, returning true with every
// variable assigned on SAT, or an *UnsatisfiableError on UNSAT.
func (c *CDCL) Solve() (bool, error) {
	for {
		v, ok := c.nextUnassigned()
		if !ok {
			return true, nil
		}
		c.Decisions++
		conflict, conflictClause := c.assign(v, true, 0)
		if conflict {
			if err := c.resolveConflicts(conflictClause); err != nil {
				return false, err
			}
		}
	}
}

// nextUnassigned scans the fixed decision order for the first still
// unassigned variable. Non-chronological backtracking may unassign
// variables earlier in the order, so every decision rescans from the
// start (spec.md §4.4 "the outer loop may reiterate V").
func (c *CDCL) nextUnassigned() (VariableID, bool) {
	for _, v := range c.order {
		variable, ok := c.g.Variable(v)
		if !ok {
			panicInvariant("cdcl: decision variable %d vanished", v)
		}
		if variable.State == unassigned {
			return v, true
		}
	}
	return 0, false
}

// assign implements spec.md §4.4's assign(v, value, reason): it sets v,
// pushes the trail step, and propagates through the opposite-polarity
// occurrence set, queuing any unit consequences instead of recursing.
func (c *CDCL) assign(v VariableID, value bool, reason ClauseID) (conflict bool, conflictClause ClauseID) {
	queue := []pendingAssign{{v: v, value: value, reason: reason}}

	for len(queue) > 0 {
		pa := queue[0]
		queue = queue[1:]

		variable, ok := c.g.Variable(pa.v)
		if !ok {
			panicInvariant("cdcl: assign of unknown variable %d", pa.v)
		}
		if variable.State != unassigned {
			isTrue := variable.State == assignedTrue
			if isTrue == pa.value {
				continue // already holds; nothing new to propagate
			}
			if pa.reason == 0 {
				panicInvariant("cdcl: decision on already-assigned variable %d", pa.v)
			}
			return true, pa.reason
		}

		c.trail.Push(pa.v, pa.reason)
		if outcome := c.g.Assign(pa.v, pa.value, false); outcome != assignFresh {
			panicInvariant("cdcl: assign of variable %d was not fresh", pa.v)
		}
		c.Propagations++

		variable, _ = c.g.Variable(pa.v)
		var toVisit map[ClauseID]struct{}
		if pa.value {
			toVisit = variable.Negative
		} else {
			toVisit = variable.Positive
		}
		ids := make([]ClauseID, 0, len(toVisit))
		for cid := range toVisit {
			ids = append(ids, cid)
		}

		for _, cid := range ids {
			cl, ok := c.g.Clause(cid)
			if !ok || cl.Status == clauseSAT {
				continue
			}
			outcome, unitVar, unitValue := c.visitClause(cid, pa.v)
			switch outcome {
			case visitUNSAT:
				return true, cid
			case visitUnit:
				queue = append(queue, pendingAssign{v: unitVar, value: unitValue, reason: cid})
			}
		}
	}
	return false, 0
}

// visitClause re-scans a clause after one of its variables changed, per
// spec.md §4.4.
func (c *CDCL) visitClause(id ClauseID, fromVar VariableID) (outcome visitOutcome, unitVar VariableID, unitValue bool) {
	cl, _ := c.g.Clause(id)

	unassignedCount := 0
	var unassignedLit Literal

	for _, l := range cl.Literals {
		switch c.g.LiteralValue(l) {
		case litTrue:
			cl.Status = clauseSAT
			cl.ByVariable = VarOf(l)
			return visitSAT, 0, false
		case litUndef:
			unassignedCount++
			unassignedLit = l
		}
	}

	if unassignedCount == 0 {
		cl.Status = clauseUNSAT
		cl.ByVariable = fromVar
		return visitUNSAT, 0, false
	}
	if unassignedCount == 1 {
		cl.Status = clauseSAT
		cl.ByVariable = VarOf(unassignedLit)
		return visitUnit, VarOf(unassignedLit), !IsNegated(unassignedLit)
	}
	return visitUnassigned, 0, false
}

// resolveConflicts learns from a conflict, backtracks by unassigning
// through the trail, and re-propagates the asserting literal, looping if
// that propagation immediately conflicts again (spec.md §4.4 edge case:
// a unit learned clause whose propagation conflicts is UNSAT).
func (c *CDCL) resolveConflicts(conflict ClauseID) error {
	for {
		c.Conflicts++
		literals, assertingVar, assertingValue, err := c.learnClause(conflict)
		if err != nil {
			return err
		}
		cid := c.g.AddClause(literals)
		c.LearnedClauses++
		// The learned clause has exactly one unassigned literal and every
		// other literal false; visiting it now (rather than waiting for some
		// later occurrence-set scan to stumble onto it) caches that and
		// confirms it agrees with what learnClause already determined.
		if outcome, unitVar, _ := c.visitClause(cid, assertingVar); outcome != visitUnit || unitVar != assertingVar {
			panicInvariant("resolveConflicts: learned clause %d was not the expected unit clause", cid)
		}

		conflictAgain, nextConflict := c.assign(assertingVar, assertingValue, cid)
		if !conflictAgain {
			return nil
		}
		conflict = nextConflict
	}
}

// learnClause implements spec.md §4.4's learnClause(conflictC): a
// resolution walk back to the nearest decision, followed by a
// backtracking walk that finds the asserting literal.
func (c *CDCL) learnClause(conflict ClauseID) (literals []Literal, assertingVar VariableID, assertingValue bool, err error) {
	cl, ok := c.g.Clause(conflict)
	if !ok {
		panicInvariant("learnClause: unknown conflict clause %d", conflict)
	}
	l := newLitSet(cl.Literals)

	// Pass 1: resolve back to (but not including) the nearest decision.
	for {
		top, ok := c.trail.Top()
		if !ok {
			return nil, 0, false, &UnsatisfiableError{Reason: "conflict has no decision to backtrack to"}
		}
		if top.Reason == 0 {
			break
		}
		x := top.Var
		c.trail.Pop()
		c.g.Unassign(x)

		reasonClause, ok := c.g.Clause(top.Reason)
		if !ok {
			panicInvariant("learnClause: missing reason clause %d for variable %d", top.Reason, x)
		}
		px, found := reasonClause.literalFor(x)
		if !found {
			panicInvariant("learnClause: reason clause %d does not mention variable %d", top.Reason, x)
		}
		negPx := Negate(px)
		if l.contains(negPx) {
			l.remove(negPx)
			l.remove(px)
			for _, lit := range reasonClause.Literals {
				if lit == px {
					continue // pivot literal: excluded from both sides of the resolvent
				}
				if l.contains(Negate(lit)) {
					panicInvariant("learnClause: resolution introduced a tautology on variable %d", VarOf(lit))
				}
				l.add(lit)
			}
			if l.empty() {
				return nil, 0, false, &UnsatisfiableError{Reason: "conflict analysis derived the empty clause"}
			}
		}
	}

	// Pass 2: keep unassigning until the negation of the topmost remaining
	// assignment's literal appears in L (every literal of L is false under
	// the current assignment); that's the asserting step, and the learned
	// clause asserts the opposite of the value it had.
	for {
		top, ok := c.trail.Top()
		if !ok {
			panicInvariant("learnClause: trail exhausted before an asserting literal was found")
		}
		variable, ok := c.g.Variable(top.Var)
		if !ok {
			panicInvariant("learnClause: missing variable %d on trail", top.Var)
		}
		value := variable.State == assignedTrue
		assertedLit := ToLiteral(top.Var, value)

		if l.contains(Negate(assertedLit)) {
			if l.contains(assertedLit) {
				panicInvariant("learnClause: L contains both polarities of the asserting variable %d", top.Var)
			}
			c.trail.Pop()
			c.g.Unassign(top.Var)
			return l.toSlice(), top.Var, !value, nil
		}
		c.trail.Pop()
		c.g.Unassign(top.Var)
	}
}

// litSet is a small set of literals used to accumulate the learned clause
// during conflict analysis.
type litSet map[Literal]struct{}

func newLitSet(lits []Literal) litSet {
	s := make(litSet, len(lits))
	for _, l := range lits {
		s[l] = struct{}{}
	}
	return s
}

func (s litSet) contains(l Literal) bool {
	_, ok := s[l]
	return ok
}

func (s litSet) add(l Literal) {
	s[l] = struct{}{}
}

func (s litSet) remove(l Literal) {
	delete(s, l)
}

func (s litSet) empty() bool {
	return len(s) == 0
}

func (s litSet) toSlice() []Literal {
	out := make([]Literal, 0, len(s))
	for l := range s {
		out = append(out, l)
	}
	return out
}
