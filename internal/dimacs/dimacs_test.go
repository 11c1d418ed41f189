package dimacs

import (
	"errors"
	"testing"

	"github.com/conflace/satus/internal/sat"
)

func TestReadFileParsesClauses(t *testing.T) {
	formula, err := ReadFile("testdata/small.cnf")
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if formula.NumVars != 3 {
		t.Errorf("NumVars = %d, want 3", formula.NumVars)
	}
	if len(formula.Clauses) != 3 {
		t.Fatalf("len(Clauses) = %d, want 3", len(formula.Clauses))
	}

	want := []sat.Literal{sat.PositiveLiteral(0), sat.PositiveLiteral(1)}
	got := formula.Clauses[0]
	if len(got) != len(want) {
		t.Fatalf("Clauses[0] = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Clauses[0][%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestReadFileGzip(t *testing.T) {
	formula, err := ReadFile("testdata/small.cnf.gz")
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if formula.NumVars != 3 || len(formula.Clauses) != 3 {
		t.Errorf("ReadFile(gzip) = %+v, want the same instance as the uncompressed file", formula)
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile("testdata/does-not-exist.cnf")
	if err == nil {
		t.Fatalf("ReadFile() error = nil, want an error for a missing file")
	}
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Errorf("ReadFile() error = %v, want a *ParseError", err)
	}
}

func TestReadFileEmptyClauseSignalsUnsat(t *testing.T) {
	formula, err := ReadFile("testdata/empty_clause.cnf")
	if !errors.Is(err, ErrEmptyClause) {
		t.Fatalf("ReadFile() error = %v, want ErrEmptyClause", err)
	}
	if formula == nil || formula.NumVars != 1 {
		t.Errorf("ReadFile() formula = %+v, want NumVars 1 despite the empty-clause error", formula)
	}
}
