package sat

import "testing"

// checkModel verifies property 1 (every clause has a satisfied literal)
// and property 2 (no variable is printed with both signs, trivially true
// here since Outcome.Model is a map keyed by variable).
func checkModel(t *testing.T, g *Graph, model map[VariableID]bool) {
	t.Helper()
	for _, id := range g.AllClauseIDs() {
		c, ok := g.Clause(id)
		if !ok {
			continue
		}
		satisfied := false
		for _, l := range c.Literals {
			value, ok := model[VarOf(l)]
			if !ok {
				t.Fatalf("model missing variable %d referenced by clause %d", VarOf(l), id)
			}
			if value != IsNegated(l) {
				satisfied = true
				break
			}
		}
		if !satisfied {
			t.Fatalf("clause %d not satisfied by model %v", id, model)
		}
	}
}

func TestRunTrivialSAT(t *testing.T) {
	// S1 — trivial SAT: 1 -2 0 / 2 0.
	g := mustParse(t, "1 -2 0\n2 0\n")
	outcome, err := Run(g)
	if err != nil {
		t.Fatalf("Run() = %v", err)
	}
	if !outcome.Satisfiable {
		t.Fatal("Run() Satisfiable = false, want true")
	}
	if !outcome.Model[1] || !outcome.Model[2] {
		t.Fatalf("Model = %v, want both 1 and 2 true", outcome.Model)
	}
}

func TestRunTrivialUNSAT(t *testing.T) {
	// S2 — trivial UNSAT: 1 0 / -1 0.
	g := mustParse(t, "1 0\n-1 0\n")
	_, err := Run(g)
	if _, ok := err.(*UnsatisfiableError); !ok {
		t.Fatalf("Run() error = %v, want *UnsatisfiableError", err)
	}
}

func TestRunRequiresCDCLAndFindsModel(t *testing.T) {
	g := mustParse(t, "1 2 0\n-1 2 0\n1 -2 0\n")
	outcome, err := Run(g)
	if err != nil {
		t.Fatalf("Run() = %v", err)
	}
	if !outcome.Satisfiable {
		t.Fatal("Run() Satisfiable = false, want true")
	}
	checkModel(t, g, outcome.Model)
}

func TestRunUnsatRequiringConflictLearning(t *testing.T) {
	// Pigeonhole-esque: three variables pairwise-exclusive-or'd into a cycle
	// that cannot be simultaneously satisfied, forcing at least one learned
	// clause before UNSAT is found.
	g := mustParse(t, "1 2 0\n-1 -2 0\n2 3 0\n-2 -3 0\n1 3 0\n-1 -3 0\n1 2 3 0\n-1 -2 -3 0\n")
	_, err := Run(g)
	if _, ok := err.(*UnsatisfiableError); !ok {
		t.Fatalf("Run() error = %v, want *UnsatisfiableError", err)
	}
}

func TestRunLargerSatisfiableInstance(t *testing.T) {
	g := mustParse(t, "1 2 3 0\n-1 -2 0\n-2 -3 0\n-1 -3 0\n4 5 0\n-4 -5 0\n2 4 0\n")
	outcome, err := Run(g)
	if err != nil {
		t.Fatalf("Run() = %v", err)
	}
	if !outcome.Satisfiable {
		t.Fatal("Run() Satisfiable = false, want true")
	}
	checkModel(t, g, outcome.Model)
}
