package sat

import (
	"strings"
	"testing"
)

func mustParse(t *testing.T, input string) *Graph {
	t.Helper()
	g, err := Parse(strings.NewReader(input), nil)
	if err != nil {
		t.Fatalf("Parse(%q) = %v", input, err)
	}
	return g
}

func TestParseIgnoresCommentsAndHeader(t *testing.T) {
	g := mustParse(t, "c a comment\np cnf 2 1\n1 -2 0\n")
	if g.NumClauses() != 1 {
		t.Fatalf("NumClauses() = %d, want 1", g.NumClauses())
	}
	if g.NumVariables() != 2 {
		t.Fatalf("NumVariables() = %d, want 2", g.NumVariables())
	}
}

func TestParseToleratesMissingHeader(t *testing.T) {
	g := mustParse(t, "1 2 0\n-1 3 0\n")
	if g.NumClauses() != 2 {
		t.Fatalf("NumClauses() = %d, want 2", g.NumClauses())
	}
}

func TestParseDoesNotTrustDeclaredCounts(t *testing.T) {
	g := mustParse(t, "p cnf 99 99\n1 0\n")
	if g.NumVariables() != 1 {
		t.Fatalf("NumVariables() = %d, want 1 (declared count must be ignored)", g.NumVariables())
	}
}

func TestParseDropsTautologies(t *testing.T) {
	g := mustParse(t, "1 -1 2 0\n2 0\n")
	if g.NumClauses() != 1 {
		t.Fatalf("NumClauses() = %d, want 1 (tautology must be dropped)", g.NumClauses())
	}
}

func TestParseUnterminatedClauseErrors(t *testing.T) {
	_, err := Parse(strings.NewReader("1 2 3"), nil)
	if err == nil {
		t.Fatal("Parse() = nil error, want UnterminatedClauseError")
	}
	if _, ok := err.(*UnterminatedClauseError); !ok {
		t.Fatalf("Parse() error = %T, want *UnterminatedClauseError", err)
	}
}

func TestParseRejectsGarbageByte(t *testing.T) {
	_, err := Parse(strings.NewReader("1 x 0\n"), nil)
	if err == nil {
		t.Fatal("Parse() = nil error, want ParseError")
	}
	if _, ok := err.(*ParseError); !ok {
		t.Fatalf("Parse() error = %T, want *ParseError", err)
	}
}

func TestParseSeedsUnitClauses(t *testing.T) {
	g := mustParse(t, "1 0\n1 2 0\n")
	seeds := g.UnitClauseSeeds()
	if len(seeds) != 1 {
		t.Fatalf("UnitClauseSeeds() = %v, want exactly one seed", seeds)
	}
}
