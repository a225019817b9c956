package sat

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestFixtures reads every testdata/*.cnf file and checks it against the
// outcome its name promises, the same way the teacher's solver_test.go
// walks test/sat and test/unsat directories of fixture files.
func TestFixtures(t *testing.T) {
	entries, err := os.ReadDir("testdata")
	if err != nil {
		t.Fatalf("ReadDir(testdata) = %v", err)
	}
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasSuffix(name, ".cnf") {
			continue
		}
		wantSAT := strings.HasPrefix(name, "sat")
		wantUNSAT := strings.HasPrefix(name, "unsat")
		if !wantSAT && !wantUNSAT {
			t.Fatalf("fixture %s does not start with sat/unsat, can't infer expectation", name)
		}

		f, err := os.Open(filepath.Join("testdata", name))
		if err != nil {
			t.Fatalf("open %s: %v", name, err)
		}
		g, err := Parse(f, nil)
		f.Close()
		if err != nil {
			t.Fatalf("Parse(%s) = %v", name, err)
		}

		outcome, err := Run(g)
		if wantSAT {
			if err != nil {
				t.Fatalf("Run(%s) = %v, want SAT", name, err)
			}
			checkModel(t, g, outcome.Model)
		} else {
			if _, ok := err.(*UnsatisfiableError); !ok {
				t.Fatalf("Run(%s) error = %v, want *UnsatisfiableError", name, err)
			}
		}
	}
}
