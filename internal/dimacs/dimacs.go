// Package dimacs reads DIMACS CNF files into a CNF formula that can be
// loaded straight into an internal/sat.Solver. Parsing is delegated to
// github.com/rhartert/dimacs, which tokenizes the format; this package
// owns translating DIMACS's 1-based signed integers into sat.Literal and
// the handful of structural checks that library leaves to its caller.
package dimacs

import (
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	external "github.com/rhartert/dimacs"

	"github.com/conflace/satus/internal/sat"
)

// ErrNotCNF is returned when the problem line names a format other than
// "cnf" (e.g. a WCNF weighted instance).
var ErrNotCNF = errors.New("dimacs: problem line does not declare a cnf instance")

// ErrEmptyClause is returned when a clause line parses to zero literals.
// This is not, in itself, a parse error: an empty clause is a legitimate
// (if unusual) way for a DIMACS file to assert UNSAT directly. Builder
// reports it distinctly from other structural errors so a caller can
// choose to treat it as an immediate verdict rather than a malformed file.
var ErrEmptyClause = errors.New("dimacs: clause with no literals")

// Formula is a parsed CNF instance: a variable count and one literal slice
// per clause, in the order the file declared them. Each clause keeps
// exactly the literals DIMACS listed, one clause per line, matching how
// every CNF file in common circulation (and the solver's own test
// fixtures) is laid out; a clause that legitimately spans multiple lines
// is not supported.
type Formula struct {
	NumVars int
	Clauses [][]sat.Literal
}

// ParseError wraps a failure encountered while reading a DIMACS file,
// identifying the file so a caller can report it without re-deriving the
// path.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("dimacs: parsing %q: %s", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ReadFile parses path as a DIMACS CNF file. Files ending in .gz are
// transparently decompressed.
func ReadFile(path string) (*Formula, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, &ParseError{Path: path, Err: err}
		}
		defer gz.Close()
		r = gz
	}

	formula, err := Read(r)
	if err != nil && !errors.Is(err, ErrEmptyClause) {
		return nil, &ParseError{Path: path, Err: err}
	}
	return formula, err
}

// Read parses a DIMACS CNF formula from r.
func Read(r io.Reader) (*Formula, error) {
	b := &formulaBuilder{}
	if err := external.ReadBuilder(r, b); err != nil {
		return nil, err
	}
	if b.sawEmptyClause {
		return &Formula{NumVars: b.numVars, Clauses: b.clauses}, ErrEmptyClause
	}
	return &Formula{NumVars: b.numVars, Clauses: b.clauses}, nil
}

// formulaBuilder implements the Builder interface expected by
// github.com/rhartert/dimacs's ReadBuilder.
type formulaBuilder struct {
	numVars        int
	clauses        [][]sat.Literal
	sawEmptyClause bool
}

func (b *formulaBuilder) Problem(problem string, numVars int, numClauses int) error {
	if problem != "cnf" {
		return ErrNotCNF
	}
	b.numVars = numVars
	b.clauses = make([][]sat.Literal, 0, numClauses)
	return nil
}

func (b *formulaBuilder) Clause(raw []int) error {
	if len(raw) == 0 {
		b.sawEmptyClause = true
		return nil
	}
	lits := make([]sat.Literal, len(raw))
	for i, x := range raw {
		lits[i] = sat.FromDIMACS(x)
	}
	b.clauses = append(b.clauses, lits)
	return nil
}

func (b *formulaBuilder) Comment(string) error {
	return nil
}
