// Package cnf provides shared clause-encoding helpers for the puzzle
// generator commands: a Builder that accumulates clauses the way the
// generators' constraint loops naturally produce them, and can either
// emit the result as a DIMACS file or hand it straight to the sat engine.
package cnf

import (
	"bufio"
	"fmt"
	"io"
	"log"

	"github.com/Jonasdoubleyou/satellite/internal/sat"
)

// Builder accumulates CNF clauses over positive integer variable ids.
type Builder struct {
	clauses [][]int
	maxVar  int
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// AddClause records one clause. A clause containing a variable and its own
// negation is a tautology and is silently dropped, matching the parser's
// handling of the same case (spec.md §4.1).
func (b *Builder) AddClause(literals ...int) {
	seen := make(map[int]bool, len(literals))
	for _, l := range literals {
		if l == 0 {
			panic("cnf: literal 0 is not a valid variable reference")
		}
		if seen[-l] {
			return
		}
		seen[l] = true
		if v := abs(l); v > b.maxVar {
			b.maxVar = v
		}
	}
	clause := append([]int(nil), literals...)
	b.clauses = append(b.clauses, clause)
}

// NumClauses reports how many clauses have been added.
func (b *Builder) NumClauses() int {
	return len(b.clauses)
}

// NumVars reports the highest variable id seen so far.
func (b *Builder) NumVars() int {
	return b.maxVar
}

// WriteDIMACS emits the accumulated clauses as a DIMACS CNF file, mirroring
// the original generator's DIMACSProblem mode (original_source/common/generate.h).
func (b *Builder) WriteDIMACS(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "p cnf %d %d\n", b.maxVar, len(b.clauses)); err != nil {
		return err
	}
	for _, clause := range b.clauses {
		for _, l := range clause {
			if _, err := fmt.Fprintf(bw, "%d ", l); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprint(bw, "0\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Solve hands the accumulated clauses directly to the sat engine, mirroring
// the original generator's KISSATProblem mode: no DIMACS round trip.
func (b *Builder) Solve() (bool, map[int]bool, error) {
	g := sat.NewGraph(log.New(io.Discard, "", 0))
	for _, clause := range b.clauses {
		literals := make([]sat.Literal, len(clause))
		for i, l := range clause {
			literals[i] = sat.Literal(l)
		}
		g.AddClause(literals)
	}

	outcome, err := sat.Run(g)
	if err != nil {
		if _, ok := err.(*sat.UnsatisfiableError); ok {
			return false, nil, nil
		}
		return false, nil, err
	}

	model := make(map[int]bool, len(outcome.Model))
	for v, value := range outcome.Model {
		model[int(v)] = value
	}
	return true, model, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
