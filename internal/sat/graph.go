package sat

import (
	"log"
	"strconv"
)

// assignOutcome is the result of Graph.Assign, distinguishing a genuinely
// fresh assignment (which must cascade through the structural rules) from a
// no-op (already set to that value) or a conflict (already set to the
// opposite value with override=false).
type assignOutcome int

const (
	assignFresh assignOutcome = iota
	assignNoOp
	assignConflict
)

// Graph is the bipartite relation between variables and clauses described
// in spec.md §3/§4.2. All of Parser, Simplifier and CDCL operate on one
// Graph passed by reference, per §5's single-owner model.
type Graph struct {
	logger *log.Logger

	clauseCounter ClauseID
	clauses       map[ClauseID]*Clause
	variables     map[VariableID]*Variable

	// unitClauses seeds the simplifier: clauses that were unit (size 1) at
	// the moment they were installed, in insertion order.
	unitClauses []ClauseID

	unassigned map[VariableID]struct{}
}

// NewGraph returns an empty graph. logger may be nil; diagnostics are then
// discarded.
func NewGraph(logger *log.Logger) *Graph {
	if logger == nil {
		logger = log.New(devNull{}, "", 0)
	}
	return &Graph{
		logger:     logger,
		clauses:    make(map[ClauseID]*Clause),
		variables:  make(map[VariableID]*Variable),
		unassigned: make(map[VariableID]struct{}),
	}
}

type devNull struct{}

func (devNull) Write(p []byte) (int, error) { return len(p), nil }

func (g *Graph) getOrCreateVariable(id VariableID) *Variable {
	v, ok := g.variables[id]
	if ok {
		return v
	}
	v = newVariable(id)
	g.variables[id] = v
	g.unassigned[id] = struct{}{}
	return v
}

// AddClause allocates a new clause id, installs the clause's back-edges
// into each referenced variable, seeds the unassigned index for newly-seen
// variables and, for a unit clause, the unit-clause seed list. Matches
// spec.md §4.2.
func (g *Graph) AddClause(literals []Literal) ClauseID {
	seen := make(map[Literal]struct{}, len(literals))
	for _, l := range literals {
		if _, ok := seen[Negate(l)]; ok {
			panicInvariant("AddClause: tautological clause containing both %d and %d", l, -l)
		}
		seen[l] = struct{}{}
	}

	g.clauseCounter++
	id := g.clauseCounter
	c := &Clause{ID: id, Literals: append([]Literal(nil), literals...)}
	g.clauses[id] = c

	for _, l := range literals {
		v := g.getOrCreateVariable(VarOf(l))
		if IsNegated(l) {
			v.Negative[id] = struct{}{}
		} else {
			v.Positive[id] = struct{}{}
		}
	}

	if len(literals) == 1 {
		g.unitClauses = append(g.unitClauses, id)
	}

	return id
}

// Assign sets var's value. If var is unassigned, it is set and removed from
// the unassigned index (assignFresh). If already set to the same value,
// it's a no-op (assignNoOp). If set to the opposite value: with
// override=false this is a conflict (assignConflict) surfaced to the
// caller; with override=true the variable is unassigned first and then
// re-assigned fresh. Matches spec.md §4.2.
func (g *Graph) Assign(id VariableID, value bool, override bool) assignOutcome {
	v, ok := g.variables[id]
	if !ok {
		panicInvariant("Assign: unknown variable %d", id)
	}
	switch v.State {
	case unassigned:
		if value {
			v.State = assignedTrue
		} else {
			v.State = assignedFalse
		}
		delete(g.unassigned, id)
		return assignFresh
	case assignedTrue:
		if value {
			return assignNoOp
		}
	case assignedFalse:
		if !value {
			return assignNoOp
		}
	}
	// Assigned to the opposite value.
	if !override {
		return assignConflict
	}
	g.Unassign(id)
	return g.Assign(id, value, false)
}

// Unassign reverts var to unassigned, restores the unassigned index and
// invalidates the cached status of every clause whose cache this variable
// last set (spec.md §4.4 "Cache invalidation on unassign").
func (g *Graph) Unassign(id VariableID) {
	v, ok := g.variables[id]
	if !ok {
		panicInvariant("Unassign: unknown variable %d", id)
	}
	if v.State == unassigned {
		panicInvariant("Unassign: variable %d is already unassigned", id)
	}
	v.State = unassigned
	g.unassigned[id] = struct{}{}

	for cid := range v.Positive {
		c := g.clauses[cid]
		if c != nil && c.ByVariable == id {
			c.Status = clauseUnassigned
			c.ByVariable = 0
		}
	}
	for cid := range v.Negative {
		c := g.clauses[cid]
		if c != nil && c.ByVariable == id {
			c.Status = clauseUnassigned
			c.ByVariable = 0
		}
	}
}

// RemoveClause permanently deletes a clause (used only by the Simplifier,
// never by CDCL, per the design notes in spec.md §9) and returns the
// variables whose occurrence sets lost a back-edge, for pure-literal
// revisiting.
func (g *Graph) RemoveClause(id ClauseID) []VariableID {
	c, ok := g.clauses[id]
	if !ok {
		panicInvariant("RemoveClause: unknown clause %d", id)
	}
	touched := make([]VariableID, 0, len(c.Literals))
	for _, l := range c.Literals {
		vid := VarOf(l)
		v := g.variables[vid]
		if v == nil {
			panicInvariant("RemoveClause: clause %d references unknown variable %d", id, vid)
		}
		if IsNegated(l) {
			delete(v.Negative, id)
		} else {
			delete(v.Positive, id)
		}
		touched = append(touched, vid)
	}
	delete(g.clauses, id)
	return touched
}

// RemoveLiteral shrinks a clause by one literal (the Simplifier's
// falsified-literal rule) and returns the clause's new size.
func (g *Graph) RemoveLiteral(id ClauseID, lit Literal) int {
	c, ok := g.clauses[id]
	if !ok {
		panicInvariant("RemoveLiteral: unknown clause %d", id)
	}
	idx := -1
	for i, l := range c.Literals {
		if l == lit {
			idx = i
			break
		}
	}
	if idx == -1 {
		panicInvariant("RemoveLiteral: literal %d not present in clause %d", lit, id)
	}
	c.Literals = append(c.Literals[:idx], c.Literals[idx+1:]...)

	v := g.variables[VarOf(lit)]
	if v == nil {
		panicInvariant("RemoveLiteral: unknown variable for literal %d", lit)
	}
	if IsNegated(lit) {
		delete(v.Negative, id)
	} else {
		delete(v.Positive, id)
	}
	return len(c.Literals)
}

// Clause returns the clause named by id.
func (g *Graph) Clause(id ClauseID) (*Clause, bool) {
	c, ok := g.clauses[id]
	return c, ok
}

// Variable returns the variable named by id.
func (g *Graph) Variable(id VariableID) (*Variable, bool) {
	v, ok := g.variables[id]
	return v, ok
}

// AllClauseIDs returns a snapshot of every currently-installed clause id.
// Order is unspecified; used by tests and diagnostics that need to walk
// every live clause rather than assume a contiguous id range (simplification
// can remove clauses from the middle of the original numbering).
func (g *Graph) AllClauseIDs() []ClauseID {
	out := make([]ClauseID, 0, len(g.clauses))
	for id := range g.clauses {
		out = append(out, id)
	}
	return out
}

// HasClause reports whether id names a currently-installed clause.
func (g *Graph) HasClause(id ClauseID) bool {
	_, ok := g.clauses[id]
	return ok
}

// HasVariable reports whether id names a known variable.
func (g *Graph) HasVariable(id VariableID) bool {
	_, ok := g.variables[id]
	return ok
}

// NumClauses returns the number of clauses currently installed.
func (g *Graph) NumClauses() int {
	return len(g.clauses)
}

// NumVariables returns the number of known variables.
func (g *Graph) NumVariables() int {
	return len(g.variables)
}

// allVariables exposes the variable map for iteration by package-internal
// callers that need every variable regardless of assignment state (Run's
// final model assembly).
func (g *Graph) allVariables() map[VariableID]*Variable {
	return g.variables
}

// UnassignedVariables returns a snapshot of the currently-unassigned
// variable ids. The order is unspecified; callers that need determinism
// (the CDCL decision heuristic) sort the result themselves.
func (g *Graph) UnassignedVariables() []VariableID {
	out := make([]VariableID, 0, len(g.unassigned))
	for v := range g.unassigned {
		out = append(out, v)
	}
	return out
}

// UnitClauseSeeds returns a snapshot of the clauses that were unit at
// insertion time, in insertion order (the Simplifier's Phase A seed list).
func (g *Graph) UnitClauseSeeds() []ClauseID {
	out := make([]ClauseID, len(g.unitClauses))
	copy(out, g.unitClauses)
	return out
}

// LiteralValue reports l's value under the current partial assignment.
func (g *Graph) LiteralValue(l Literal) triState {
	v, ok := g.variables[VarOf(l)]
	if !ok {
		panicInvariant("LiteralValue: unknown variable %d", VarOf(l))
	}
	switch v.State {
	case unassigned:
		return litUndef
	case assignedTrue:
		if IsNegated(l) {
			return litFalse
		}
		return litTrue
	default: // assignedFalse
		if IsNegated(l) {
			return litTrue
		}
		return litFalse
	}
}

// PureLiteralValue reports whether v is currently pure (occurs in only one
// polarity among its still-live clauses) and, if so, the value that would
// satisfy every clause mentioning it. A variable with no live clauses at
// all is not considered pure (spec.md §4.3 Phase B).
func (g *Graph) PureLiteralValue(v VariableID) (pure bool, value bool) {
	variable, ok := g.variables[v]
	if !ok || variable.State != unassigned {
		return false, false
	}
	hasPos := len(variable.Positive) > 0
	hasNeg := len(variable.Negative) > 0
	switch {
	case hasPos && !hasNeg:
		return true, true
	case hasNeg && !hasPos:
		return true, false
	default:
		return false, false
	}
}

// Logger returns the graph's diagnostic logger.
func (g *Graph) Logger() *log.Logger {
	return g.logger
}

// CheckInvariants re-derives the graph-side invariants from scratch (back-
// edges in both directions, no complementary literals in a clause, every
// cache witness assigned, the unassigned index matching variable state) and
// returns the first violation found. It does not check the trail, nor that
// a cached status is justified by its witness's value. It is a test/debug
// helper, never called on the hot path.
func (g *Graph) CheckInvariants() error {
	for id, c := range g.clauses {
		seen := make(map[Literal]struct{}, len(c.Literals))
		for _, l := range c.Literals {
			if _, ok := seen[Negate(l)]; ok {
				return &InvariantViolation{Msg: "clause " + strconv.Itoa(int(id)) + " contains complementary literals"}
			}
			seen[l] = struct{}{}
			v, ok := g.variables[VarOf(l)]
			if !ok {
				return &InvariantViolation{Msg: "clause references unknown variable"}
			}
			if IsNegated(l) {
				if _, ok := v.Negative[id]; !ok {
					return &InvariantViolation{Msg: "missing negative back-edge"}
				}
			} else {
				if _, ok := v.Positive[id]; !ok {
					return &InvariantViolation{Msg: "missing positive back-edge"}
				}
			}
		}
		if c.ByVariable != 0 {
			v, ok := g.variables[c.ByVariable]
			if !ok || v.State == unassigned {
				return &InvariantViolation{Msg: "clause cache witness is not assigned"}
			}
		}
	}
	for id, v := range g.variables {
		_, unassignedIndexed := g.unassigned[id]
		if (v.State == unassigned) != unassignedIndexed {
			return &InvariantViolation{Msg: "unassigned index disagrees with variable state"}
		}
		for cid := range v.Positive {
			c, ok := g.clauses[cid]
			if !ok {
				return &InvariantViolation{Msg: "positive occurrence references removed clause"}
			}
			if _, found := c.literalFor(id); !found {
				return &InvariantViolation{Msg: "positive occurrence not mirrored in clause"}
			}
		}
		for cid := range v.Negative {
			c, ok := g.clauses[cid]
			if !ok {
				return &InvariantViolation{Msg: "negative occurrence references removed clause"}
			}
			if _, found := c.literalFor(id); !found {
				return &InvariantViolation{Msg: "negative occurrence not mirrored in clause"}
			}
		}
	}
	return nil
}

