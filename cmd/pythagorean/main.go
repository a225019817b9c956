// Command pythagorean searches for a 2-coloring of {1, ..., n-1} with no
// monochromatic Pythagorean triple, grounded on
// original_source/generators/pythagorean_triples.cpp. Variable v's literal
// is true for "black", false for "white"; each triple (a, b, c) forbids
// both all-true and all-false.
package main

import (
	"fmt"
	"math"
	"os"

	"github.com/urfave/cli"

	"github.com/Jonasdoubleyou/satellite/internal/cnf"
)

func encode(n int) *cnf.Builder {
	b := cnf.NewBuilder()
	for c := 1; c < n; c++ {
		for bb := 1; bb < c; bb++ {
			aSquare := c*c - bb*bb
			a := int(math.Sqrt(float64(aSquare)))
			if a*a == aSquare && a <= bb && a >= 1 {
				b.AddClause(-a, -bb, -c)
				b.AddClause(a, bb, c)
			}
		}
	}
	return b
}

func main() {
	app := cli.NewApp()
	app.Name = "pythagorean"
	app.Usage = "Search for a Pythagorean-triple-free 2-coloring of {1..N-1}"
	app.Flags = []cli.Flag{
		cli.BoolFlag{Name: "dimacs", Usage: "emit the CNF encoding instead of solving it"},
	}
	app.Action = func(c *cli.Context) error {
		if c.NArg() != 1 {
			return fmt.Errorf("usage: pythagorean [--dimacs] <N>")
		}
		var n int
		if _, err := fmt.Sscanf(c.Args().Get(0), "%d", &n); err != nil {
			return fmt.Errorf("pythagorean: invalid N: %w", err)
		}

		b := encode(n)

		if c.Bool("dimacs") {
			return b.WriteDIMACS(os.Stdout)
		}

		sat, model, err := b.Solve()
		if err != nil {
			return err
		}
		if !sat {
			fmt.Println("UNSAT")
			os.Exit(1)
		}
		for v := 1; v < n; v++ {
			if model[v] {
				fmt.Printf("%d black\n", v)
			} else {
				fmt.Printf("%d white\n", v)
			}
		}
		return nil
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
