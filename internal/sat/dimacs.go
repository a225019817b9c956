package sat

import (
	"bufio"
	"fmt"
	"io"
	"log"
)

// Parse reads a DIMACS CNF byte stream and installs every clause into a
// fresh Graph. Matches spec.md §4.1: `c`/`p` lines are skipped to
// end-of-line, every other maximal run of signed integers up to a 0 forms
// a candidate clause, and a clause containing complementary literals is
// dropped silently rather than installed.
func Parse(r io.Reader, logger *log.Logger) (*Graph, error) {
	g := NewGraph(logger)
	reader := bufio.NewReader(r)

	var pending []Literal
	var tok []byte

	flushToken := func() error {
		if len(tok) == 0 {
			return nil
		}
		n, err := parseSignedInt(tok)
		tok = tok[:0]
		if err != nil {
			return err
		}
		if n == 0 {
			installCandidate(g, pending)
			pending = pending[:0]
			return nil
		}
		pending = append(pending, Literal(n))
		return nil
	}

	for {
		line, err := reader.ReadString('\n')
		if len(line) > 0 {
			if isCommentOrHeaderLine(line) {
				// Comment/header lines never contribute to a candidate
				// clause; any token being built across the line break is
				// flushed first so genuine clause content isn't silently
				// merged with it.
				if ferr := flushToken(); ferr != nil {
					return nil, ferr
				}
			} else {
				for i := 0; i < len(line); i++ {
					b := line[i]
					switch {
					case b == '-' || (b >= '0' && b <= '9'):
						tok = append(tok, b)
					case b == ' ' || b == '\t' || b == '\r' || b == '\n':
						if ferr := flushToken(); ferr != nil {
							return nil, ferr
						}
					default:
						return nil, &ParseError{Msg: fmt.Sprintf("unexpected byte %q inside a literal", b)}
					}
				}
			}
		}
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
	}
	if ferr := flushToken(); ferr != nil {
		return nil, ferr
	}
	if len(pending) > 0 {
		return nil, &UnterminatedClauseError{Pending: pending}
	}
	return g, nil
}

// isCommentOrHeaderLine reports whether a line's first byte after any
// leading spaces and tabs is 'c' or 'p'.
func isCommentOrHeaderLine(line string) bool {
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case ' ', '\t':
			continue
		case 'c', 'p':
			return true
		default:
			return false
		}
	}
	return false
}

// parseSignedInt hand-parses a run of ASCII digits with an optional leading
// '-', matching spec.md §4.1's "optional leading -" contract exactly rather
// than accepting whatever strconv.Atoi happens to tolerate.
func parseSignedInt(tok []byte) (int, error) {
	i := 0
	neg := false
	if tok[i] == '-' {
		neg = true
		i++
	}
	if i == len(tok) {
		return 0, &ParseError{Msg: "bare '-' with no digits"}
	}
	n := 0
	for ; i < len(tok); i++ {
		c := tok[i]
		if c < '0' || c > '9' {
			return 0, &ParseError{Msg: "non-digit byte in literal"}
		}
		n = n*10 + int(c-'0')
	}
	if neg {
		n = -n
	}
	return n, nil
}

// installCandidate drops a tautological candidate clause silently and
// otherwise installs it via Graph.AddClause.
func installCandidate(g *Graph, literals []Literal) {
	if len(literals) == 0 {
		return
	}
	seen := make(map[Literal]bool, len(literals))
	tautology := false
	for _, l := range literals {
		if seen[Negate(l)] {
			tautology = true
			break
		}
		seen[l] = true
	}
	if tautology {
		return
	}
	g.AddClause(append([]Literal(nil), literals...))
}
