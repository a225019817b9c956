// Command sudoku encodes a sudoku puzzle as CNF and either solves it
// directly or emits the encoding as a DIMACS file, grounded on
// original_source/generators/sudoku.cpp's field/clause layout.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"

	"github.com/Jonasdoubleyou/satellite/internal/cnf"
)

// puzzle holds a parsed sudoku grid: regionSize x regionSize regions, each
// regionSize x regionSize cells, 0 meaning "blank".
type puzzle struct {
	regionSize int
	rowSize    int
	fields     []int
}

func (p *puzzle) field(x, y int) int {
	return p.fields[y*p.rowSize+x]
}

// variable maps a (cell, candidate value) pair to a CNF variable id, one
// past the C++ original's field_value indexing (1-based clause variables).
func (p *puzzle) variable(x, y, value int) int {
	return (y*p.rowSize+x)*p.rowSize + value
}

func parsePuzzle(r io.Reader) (*puzzle, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	readInt := func() (int, error) {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return 0, err
			}
			return 0, fmt.Errorf("sudoku: unexpected end of input")
		}
		n := 0
		for _, ch := range scanner.Text() {
			if ch < '0' || ch > '9' {
				return 0, fmt.Errorf("sudoku: unexpected character %q", ch)
			}
			n = n*10 + int(ch-'0')
		}
		return n, nil
	}

	regionSize, err := readInt()
	if err != nil {
		return nil, err
	}
	p := &puzzle{regionSize: regionSize, rowSize: regionSize * regionSize}
	p.fields = make([]int, p.rowSize*p.rowSize)
	for i := range p.fields {
		v, err := readInt()
		if err != nil {
			return nil, err
		}
		p.fields[i] = v
	}
	return p, nil
}

// encode reproduces sudoku.cpp's clause set: minimal at-least-one-value
// clauses per cell, plus at-most-one clauses per row/column/region, plus
// unit clauses for every pre-filled cell.
func (p *puzzle) encode(b *cnf.Builder) {
	n := p.rowSize

	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			clause := make([]int, 0, n)
			for value := 1; value <= n; value++ {
				clause = append(clause, p.variable(x, y, value))
			}
			b.AddClause(clause...)
		}
	}

	for row := 0; row < n; row++ {
		for value := 1; value <= n; value++ {
			for col := 0; col < n; col++ {
				for col2 := col + 1; col2 < n; col2++ {
					b.AddClause(-p.variable(row, col, value), -p.variable(row, col2, value))
				}
			}
		}
	}

	for col := 0; col < n; col++ {
		for value := 1; value <= n; value++ {
			for row := 0; row < n; row++ {
				for row2 := row + 1; row2 < n; row2++ {
					b.AddClause(-p.variable(row, col, value), -p.variable(row2, col, value))
				}
			}
		}
	}

	for regionX := 0; regionX < p.regionSize; regionX++ {
		for regionY := 0; regionY < p.regionSize; regionY++ {
			for value := 1; value <= n; value++ {
				for ix := 0; ix < p.regionSize; ix++ {
					for iy := 0; iy < p.regionSize; iy++ {
						for ix2 := ix + 1; ix2 < p.regionSize; ix2++ {
							for iy2 := 0; iy2 < p.regionSize; iy2++ {
								if iy2 == iy {
									continue // same column: covered by the column clauses
								}
								x, y := regionX*p.regionSize+ix, regionY*p.regionSize+iy
								x2, y2 := regionX*p.regionSize+ix2, regionY*p.regionSize+iy2
								b.AddClause(-p.variable(x, y, value), -p.variable(x2, y2, value))
							}
						}
					}
				}
			}
		}
	}

	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			if value := p.field(x, y); value > 0 {
				b.AddClause(p.variable(x, y, value))
			}
		}
	}
}

func (p *puzzle) print(w io.Writer) {
	n := p.rowSize
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			fmt.Fprintf(w, "%d ", p.field(x, y))
		}
		fmt.Fprintln(w)
	}
}

func main() {
	app := cli.NewApp()
	app.Name = "sudoku"
	app.Usage = "Encode and solve a sudoku puzzle as CNF"
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
			fmt.Fprintln(os.Stderr, "sudoku: no solution")
			os.Exit(1)
		}
		for x := 0; x < p.rowSize; x++ {
			for y := 0; y < p.rowSize; y++ {
				if p.field(x, y) > 0 {
					continue
				}
				for value := 1; value <= p.rowSize; value++ {
					if model[p.variable(x, y, value)] {
						p.fields[y*p.rowSize+x] = value
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
