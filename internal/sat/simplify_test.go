package sat

import "testing"

func TestSimplifyUnitPropagationForcesValues(t *testing.T) {
	// S4 — forced by propagation: -1 2 0 / -2 3 0 / 1 0 forces 1, 2, 3 true.
	g := mustParse(t, "-1 2 0\n-2 3 0\n1 0\n")
	result, err := Simplify(g, nil)
	if err != nil {
		t.Fatalf("Simplify() = %v", err)
	}
	if !result.Decided || !result.Satisfiable {
		t.Fatalf("Simplify() result = %+v, want fully decided SAT", result)
	}
	for _, v := range []VariableID{1, 2, 3} {
		variable, ok := g.Variable(v)
		if !ok || variable.State != assignedTrue {
			t.Fatalf("variable %d state = %v, want assignedTrue", v, variable.State)
		}
	}
}

func TestSimplifyDetectsUnsat(t *testing.T) {
	// S2 — trivial UNSAT: 1 0 / -1 0.
	g := mustParse(t, "1 0\n-1 0\n")
	_, err := Simplify(g, nil)
	if _, ok := err.(*UnsatisfiableError); !ok {
		t.Fatalf("Simplify() error = %v, want *UnsatisfiableError", err)
	}
}

func TestSimplifyPureLiteral(t *testing.T) {
	// S3 — pure literal: 1 2 0 / 1 3 0. Variable 1 is pure-positive.
	g := mustParse(t, "1 2 0\n1 3 0\n")
	result, err := Simplify(g, nil)
	if err != nil {
		t.Fatalf("Simplify() = %v", err)
	}
	if !result.Decided || !result.Satisfiable {
		t.Fatalf("Simplify() result = %+v, want fully decided SAT", result)
	}
	v, _ := g.Variable(1)
	if v.State != assignedTrue {
		t.Fatalf("variable 1 state = %v, want assignedTrue", v.State)
	}
}

func TestSimplifyLeavesUndecidedFormulaForCDCL(t *testing.T) {
	// A genuine choice point: neither unit propagation nor pure-literal
	// elimination can settle "1 2 0 / -1 2 0 / 1 -2 0".
	g := mustParse(t, "1 2 0\n-1 2 0\n1 -2 0\n")
	result, err := Simplify(g, nil)
	if err != nil {
		t.Fatalf("Simplify() = %v", err)
	}
	if result.Decided {
		t.Fatalf("Simplify() result = %+v, want Decided=false (requires CDCL)", result)
	}
}
