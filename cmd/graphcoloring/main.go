// Command graphcoloring reads a graph in DIMACS edge-list form ("e <from>
// <to>" lines, everything else a comment) and searches for the smallest
// number of colors that admits a proper coloring, grounded on
// original_source/generators/graph_coloring.cpp.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"

	"github.com/Jonasdoubleyou/satellite/internal/cnf"
)

type edge struct {
	from, to int
}

func parseEdges(r io.Reader) (edges []edge, maxNode int, err error) {
	scanner := bufio.NewScanner(r)
	seen := make(map[edge]bool)
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) == 0 || line[0] != 'e' {
			continue
		}
		var from, to int
		if _, err := fmt.Sscanf(line, "e %d %d", &from, &to); err != nil {
			return nil, 0, fmt.Errorf("graphcoloring: malformed edge line %q: %w", line, err)
		}
		if from > maxNode {
			maxNode = from
		}
		if to > maxNode {
			maxNode = to
		}
		e := edge{to, from}
		if seen[edge{from, to}] || seen[e] {
			continue
		}
		seen[e] = true
		edges = append(edges, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, err
	}
	return edges, maxNode, nil
}

// nodeColor mirrors the C++ original's node_color(node, color) indexing.
func nodeColor(maxNode, node, color int) int {
	return color*maxNode + node
}

func tryColor(edges []edge, maxNode, colorCount int) (bool, map[int]bool) {
	b := cnf.NewBuilder()

	for node := 1; node <= maxNode; node++ {
		clause := make([]int, 0, colorCount)
		for color := 0; color < colorCount; color++ {
			clause = append(clause, nodeColor(maxNode, node, color))
		}
		b.AddClause(clause...)
	}

	for _, e := range edges {
		for color := 0; color < colorCount; color++ {
			b.AddClause(-nodeColor(maxNode, e.from, color), -nodeColor(maxNode, e.to, color))
		}
	}

	sat, model, err := b.Solve()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return sat, model
}

func main() {
	app := cli.NewApp()
	app.Name = "graphcoloring"
	app.Usage = "Find a minimal proper coloring of a graph"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "file, f", Usage: "edge-list file (stdin if omitted)"},
		cli.IntFlag{Name: "max-colors", Value: 0, Usage: "stop searching after this many colors (0 = up to node count)"},
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

		edges, maxNode, err := parseEdges(in)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "c edges: %d nodes: %d\n", len(edges), maxNode)

		limit := c.Int("max-colors")
		if limit <= 0 {
			limit = maxNode
		}

		for colorCount := 2; colorCount <= limit; colorCount++ {
			sat, model := tryColor(edges, maxNode, colorCount)
			if !sat {
				fmt.Fprintf(os.Stderr, "c unsolvable with %d colors, retrying\n", colorCount)
				continue
			}
			fmt.Printf("colors: %d\n", colorCount)
			for node := 1; node <= maxNode; node++ {
				for color := 0; color < colorCount; color++ {
					if model[nodeColor(maxNode, node, color)] {
						fmt.Printf("%d %d\n", node, color)
					}
				}
			}
			return nil
		}
		fmt.Fprintln(os.Stderr, "graphcoloring: no coloring found within the color limit")
		os.Exit(1)
		return nil
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
