// Command solver reads a DIMACS CNF formula from a file or stdin and runs
// the CDCL engine to completion.
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/k0kubun/pp"

	"github.com/Jonasdoubleyou/satellite/internal/sat"
)

func main() {
	if len(os.Args) > 2 {
		fmt.Fprintln(os.Stderr, "usage: solver [<file>]")
		os.Exit(1)
	}

	var in *os.File
	if len(os.Args) == 2 {
		f, err := os.Open(os.Args[1])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	} else {
		in = os.Stdin
	}

	start := time.Now()
	logger := log.New(os.Stderr, "c ", 0)

	g, err := sat.Parse(in, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// An InvariantViolation must never fire on valid input; if it does,
	// dump the graph's state before aborting rather than losing it to a
	// bare stack trace.
	defer func() {
		if r := recover(); r != nil {
			iv, ok := r.(*sat.InvariantViolation)
			if !ok {
				panic(r)
			}
			pp.Fprintln(os.Stderr, g)
			fmt.Fprintln(os.Stderr, iv)
			os.Exit(1)
		}
	}()

	outcome, err := sat.Run(g)
	elapsed := time.Since(start)

	if err != nil {
		if _, ok := err.(*sat.UnsatisfiableError); ok {
			fmt.Println("UNSAT")
			fmt.Fprintln(os.Stderr, err)
			if outcome.Stats != nil {
				outcome.Stats.Print(os.Stderr, elapsed)
			}
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	printModel(outcome.Model)
	fmt.Fprintf(os.Stderr, "c solved in %s\n", elapsed)
	outcome.Stats.Print(os.Stderr, elapsed)
	os.Exit(0)
}

func printModel(model map[sat.VariableID]bool) {
	maxID := sat.VariableID(0)
	for id := range model {
		if id > maxID {
			maxID = id
		}
	}
	for id := sat.VariableID(1); id <= maxID; id++ {
		value, ok := model[id]
		if !ok {
			continue
		}
		if value {
			fmt.Printf("%d ", id)
		} else {
			fmt.Printf("%d ", -int(id))
		}
	}
	fmt.Print("0\n")
}
