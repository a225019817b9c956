package sat

import "testing"

func TestAddClauseRejectsTautology(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("AddClause did not panic on a tautological clause")
		}
	}()
	g := NewGraph(nil)
	g.AddClause([]Literal{1, -1})
}

func TestAssignUnassignRoundTrip(t *testing.T) {
	// Property 6: assign(v, x); unassign(v) leaves the graph in its
	// pre-state.
	g := NewGraph(nil)
	g.AddClause([]Literal{1, 2})
	g.AddClause([]Literal{-1, 2})

	before, err := snapshotClauseCache(g)
	if err != nil {
		t.Fatal(err)
	}

	g.Assign(1, true, false)
	g.Unassign(1)

	after, err := snapshotClauseCache(g)
	if err != nil {
		t.Fatal(err)
	}
	if len(before) != len(after) {
		t.Fatalf("clause cache snapshot sizes differ: %d vs %d", len(before), len(after))
	}
	for id, status := range before {
		if after[id] != status {
			t.Fatalf("clause %d status changed across assign/unassign: %v -> %v", id, status, after[id])
		}
	}
	if v, _ := g.Variable(1); v.State != unassigned {
		t.Fatalf("variable 1 State = %v, want unassigned", v.State)
	}
}

func snapshotClauseCache(g *Graph) (map[ClauseID]clauseStatus, error) {
	out := make(map[ClauseID]clauseStatus)
	for _, id := range g.AllClauseIDs() {
		c, _ := g.Clause(id)
		out[id] = c.Status
	}
	return out, nil
}

func TestAssignConflictWithoutOverride(t *testing.T) {
	g := NewGraph(nil)
	g.AddClause([]Literal{1, 2})
	g.Assign(1, true, false)
	if outcome := g.Assign(1, false, false); outcome != assignConflict {
		t.Fatalf("Assign() = %v, want assignConflict", outcome)
	}
}

func TestPureLiteralDetection(t *testing.T) {
	g := NewGraph(nil)
	g.AddClause([]Literal{1, 2})
	g.AddClause([]Literal{1, 3})
	g.AddClause([]Literal{-2, 3})
	pure, value := g.PureLiteralValue(1)
	if !pure || !value {
		t.Fatalf("PureLiteralValue(1) = (%v, %v), want (true, true)", pure, value)
	}
	pure, _ = g.PureLiteralValue(2)
	if pure {
		t.Fatal("PureLiteralValue(2) = true, want false (2 is not pure)")
	}
}

func TestCheckInvariantsOnWellFormedGraph(t *testing.T) {
	g := mustParse(t, "1 2 0\n-1 3 0\n2 -3 0\n")
	if err := g.CheckInvariants(); err != nil {
		t.Fatalf("CheckInvariants() = %v, want nil", err)
	}
}
