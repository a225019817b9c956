package sat

import (
	"fmt"
	"io"
	"time"
)

// Statistics accumulates run counters across simplification and CDCL,
// grounded on the teacher's flat Statistics struct but trimmed to the
// counters this design actually produces (no restarts, no LBD-based
// reduceDB: both are explicit non-goals).
type Statistics struct {
	DecisionCount      uint64
	PropagationCount   uint64
	ConflictCount      uint64
	LearnedClauseCount uint64
	SimplifiedCount    uint64
}

// NewStatistics returns a zeroed Statistics.
func NewStatistics() *Statistics {
	return &Statistics{}
}

// mergeCDCL folds a finished CDCL run's counters in.
func (s *Statistics) mergeCDCL(c *CDCL) {
	s.DecisionCount += uint64(c.Decisions)
	s.PropagationCount += uint64(c.Propagations)
	s.ConflictCount += uint64(c.Conflicts)
	s.LearnedClauseCount += uint64(c.LearnedClauses)
}

// Print writes a DIMACS-comment-prefixed statistics report to w, in the
// teacher's "c <label>: <value>" style.
func (s *Statistics) Print(w io.Writer, elapsed time.Duration) {
	seconds := elapsed.Seconds()
	fmt.Fprintf(w, "c ============================[ Statistics ]=============================\n")
	fmt.Fprintf(w, "c decisions:        %12d\n", s.DecisionCount)
	fmt.Fprintf(w, "c propagations:     %12d (%.02f / sec)\n", s.PropagationCount, safeRate(s.PropagationCount, seconds))
	fmt.Fprintf(w, "c conflicts:        %12d (%.02f / sec)\n", s.ConflictCount, safeRate(s.ConflictCount, seconds))
	fmt.Fprintf(w, "c learned clauses:  %12d\n", s.LearnedClauseCount)
	fmt.Fprintf(w, "c simplified away:  %12d\n", s.SimplifiedCount)
	fmt.Fprintf(w, "c CPU time:         %12.2f s\n", seconds)
}

func safeRate(n uint64, seconds float64) float64 {
	if seconds <= 0 {
		return 0
	}
	return float64(n) / seconds
}
