// Command suguru encodes a suguru ("tectonic") puzzle as CNF and solves
// it. The input format is grounded on original_source/common/field.h's
// Field2D (a size, then an N x N grid of clue values, then an N x N grid
// of region ids) — original_source/generators/suguru.cpp parses this
// shape but never implements the constraint encoding, so the rules below
// (region-uniqueness plus king-move adjacency) are supplied here: every
// region of size k must contain each of 1..k exactly once, and no two
// king-move-adjacent cells may share a value.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"

	"github.com/Jonasdoubleyou/satellite/internal/cnf"
)

type puzzle struct {
	n       int
	fields  []int // clue values, 0 = blank
	regions []int // region id per cell
}

func (p *puzzle) at(grid []int, x, y int) int {
	return grid[y*p.n+x]
}

func (p *puzzle) regionSize(region int) int {
	count := 0
	for _, r := range p.regions {
		if r == region {
			count++
		}
	}
	return count
}

func (p *puzzle) variable(x, y, value int) int {
	return (y*p.n+x)*p.n + value
}

func readDigits(scanner *bufio.Scanner) (int, error) {
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return 0, err
		}
		return 0, fmt.Errorf("suguru: unexpected end of input")
	}
	n := 0
	for _, ch := range scanner.Text() {
		if ch < '0' || ch > '9' {
			return 0, fmt.Errorf("suguru: unexpected character %q", ch)
		}
		n = n*10 + int(ch-'0')
	}
	return n, nil
}

func parsePuzzle(r io.Reader) (*puzzle, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	n, err := readDigits(scanner)
	if err != nil {
		return nil, err
	}
	p := &puzzle{n: n}

	p.fields = make([]int, n*n)
	for i := range p.fields {
		v, err := readDigits(scanner)
		if err != nil {
			return nil, err
		}
		p.fields[i] = v
	}

	p.regions = make([]int, n*n)
	for i := range p.regions {
		v, err := readDigits(scanner)
		if err != nil {
			return nil, err
		}
		p.regions[i] = v
	}

	return p, nil
}

// encode builds the region-uniqueness and king-move-adjacency clauses,
// plus at-least-one-value per cell and unit clauses for every clue.
func (p *puzzle) encode(b *cnf.Builder) {
	n := p.n

	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			k := p.regionSize(p.at(p.regions, x, y))
			clause := make([]int, 0, k)
			for value := 1; value <= k; value++ {
				clause = append(clause, p.variable(x, y, value))
			}
			b.AddClause(clause...)
		}
	}

	cellsByRegion := make(map[int][][2]int)
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			r := p.at(p.regions, x, y)
			cellsByRegion[r] = append(cellsByRegion[r], [2]int{x, y})
		}
	}
	for _, cells := range cellsByRegion {
		k := len(cells)
		for value := 1; value <= k; value++ {
			for i := 0; i < len(cells); i++ {
				for j := i + 1; j < len(cells); j++ {
					a, c := cells[i], cells[j]
					b.AddClause(-p.variable(a[0], a[1], value), -p.variable(c[0], c[1], value))
				}
			}
		}
	}

	deltas := [][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			k := p.regionSize(p.at(p.regions, x, y))
			for _, d := range deltas {
				nx, ny := x+d[0], y+d[1]
				if nx < 0 || nx >= n || ny < 0 || ny >= n {
					continue
				}
				if nx < x || (nx == x && ny < y) {
					continue // each pair once
				}
				nk := p.regionSize(p.at(p.regions, nx, ny))
				for value := 1; value <= k && value <= nk; value++ {
					b.AddClause(-p.variable(x, y, value), -p.variable(nx, ny, value))
				}
			}
		}
	}

	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			if value := p.at(p.fields, x, y); value > 0 {
				b.AddClause(p.variable(x, y, value))
			}
		}
	}
}

func (p *puzzle) print(w io.Writer) {
	for y := 0; y < p.n; y++ {
		for x := 0; x < p.n; x++ {
			fmt.Fprintf(w, "%d ", p.at(p.fields, x, y))
		}
		fmt.Fprintln(w)
	}
}

func main() {
	app := cli.NewApp()
	app.Name = "suguru"
	app.Usage = "Encode and solve a suguru puzzle as CNF"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "file, f", Usage: "puzzle file (stdin if omitted)"},
		cli.BoolFlag{Name: "dimacs", Usage: "emit the CNF encoding instead of solving it"},
	}
	app.Action = func(c *cli.Context) error {
		var in io.Reader = os.Stdin
		if path := c.String("file"); path != "" {
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()
			in = f
		}

		p, err := parsePuzzle(in)
		if err != nil {
			return err
		}

		b := cnf.NewBuilder()
		p.encode(b)

		if c.Bool("dimacs") {
			return b.WriteDIMACS(os.Stdout)
		}

		sat, model, err := b.Solve()
		if err != nil {
			return err
		}
		if !sat {
			fmt.Fprintln(os.Stderr, "suguru: no solution")
			os.Exit(1)
		}
		for x := 0; x < p.n; x++ {
			for y := 0; y < p.n; y++ {
				if p.at(p.fields, x, y) > 0 {
					continue
				}
				k := p.regionSize(p.at(p.regions, x, y))
				for value := 1; value <= k; value++ {
					if model[p.variable(x, y, value)] {
						p.fields[y*p.n+x] = value
					}
				}
			}
		}
		p.print(os.Stdout)
		return nil
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
