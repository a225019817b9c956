package sat

// clauseStatus is the cached SAT/UNSAT-under-current-assignment flag
// described in spec.md §3/§9. Only the variable named by ByVariable is
// allowed to clear it.
type clauseStatus int

const (
	clauseUnassigned clauseStatus = iota
	clauseSAT
	clauseUNSAT
)

// Clause is a disjunction of literals plus the cache the CDCL stage relies
// on to avoid re-scanning satisfied clauses on every propagation.
type Clause struct {
	ID         ClauseID
	Literals   []Literal
	Status     clauseStatus
	ByVariable VariableID
}

// literalFor reports whether the clause mentions v, and if so with which
// literal.
func (c *Clause) literalFor(v VariableID) (Literal, bool) {
	for _, l := range c.Literals {
		if VarOf(l) == v {
			return l, true
		}
	}
	return 0, false
}
