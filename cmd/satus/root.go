// Command satus reads a DIMACS CNF file and reports whether it is
// satisfiable, printing a model when it is.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/conflace/satus/internal/dimacs"
	"github.com/conflace/satus/internal/sat"
)

type flags struct {
	verbose      bool
	maxConflicts int
	timeout      time.Duration
	cpuProfile   string
	memProfile   string
	seed         int64
}

func newRootCommand() *cobra.Command {
	f := &flags{}
	cmd := &cobra.Command{
		Use:   "satus <path-to-cnf>",
		Short: "A CDCL SAT solver for DIMACS CNF instances",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(cmd, args[0], f)
		},
	}

	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "emit diagnostic logging to stderr")
	cmd.Flags().IntVar(&f.maxConflicts, "max-conflicts", -1, "abandon search after this many conflicts (-1 for unbounded)")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 0, "abandon search after this duration (0 for unbounded)")
	cmd.Flags().StringVar(&f.cpuProfile, "cpuprofile", "", "write a pprof CPU profile to this path")
	cmd.Flags().StringVar(&f.memProfile, "memprofile", "", "write a pprof heap profile to this path")
	cmd.Flags().Int64Var(&f.seed, "seed", 1, "seed for the random branching source")

	return cmd
}

func newLogger(verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.WarnLevel)
	}
	return logger
}

func runSolve(cmd *cobra.Command, path string, f *flags) error {
	logger := newLogger(f.verbose)

	if f.cpuProfile != "" {
		file, err := os.Create(f.cpuProfile)
		if err != nil {
			return fmt.Errorf("satus: creating cpu profile: %w", err)
		}
		if err := pprof.StartCPUProfile(file); err != nil {
			return fmt.Errorf("satus: starting cpu profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	formula, parseErr := dimacs.ReadFile(path)
	unsatAtParse := errors.Is(parseErr, dimacs.ErrEmptyClause)
	if parseErr != nil && !unsatAtParse {
		return parseErr
	}

	logger.WithFields(logrus.Fields{
		"variables": formula.NumVars,
		"clauses":   len(formula.Clauses),
	}).Debug("parsed instance")

	var outcome sat.Outcome
	if unsatAtParse {
		outcome = sat.Outcome{Result: sat.Unsat}
	} else {
		cfg := sat.DefaultConfig()
		cfg.Logger = logger
		cfg.Seed = f.seed
		cfg.MaxConflicts = int64(f.maxConflicts)

		solver := sat.NewSolver(formula.NumVars, cfg)
		for _, clause := range formula.Clauses {
			solver.AddClause(clause)
		}

		ctx := context.Background()
		var cancel context.CancelFunc
		if f.timeout > 0 {
			ctx, cancel = context.WithTimeout(ctx, f.timeout)
			defer cancel()
		}

		outcome = solver.Solve(ctx)
	}

	logger.WithFields(logrus.Fields{
		"decisions": outcome.Stats.Decisions,
		"conflicts": outcome.Stats.Conflicts,
		"restarts":  outcome.Stats.Restarts,
	}).Debug("search finished")

	switch outcome.Result {
	case sat.Sat:
		fmt.Println("s SATISFIABLE")
		fmt.Print("v ")
		for v := 0; v < formula.NumVars; v++ {
			lit := sat.NewLiteral(sat.Variable(v), outcome.Model.Value(sat.Variable(v)))
			fmt.Printf("%d ", lit.ToDIMACS())
		}
		fmt.Println("0")
		fmt.Printf("c solved in %dms\n", outcome.Stats.Elapsed.Milliseconds())
	case sat.Unsat:
		fmt.Println("s UNSATISFIABLE")
		fmt.Printf("c solved in %dms\n", outcome.Stats.Elapsed.Milliseconds())
	default:
		fmt.Println("s UNKNOWN")
	}

	if f.memProfile != "" {
		file, err := os.Create(f.memProfile)
		if err != nil {
			return fmt.Errorf("satus: creating heap profile: %w", err)
		}
		defer file.Close()
		if err := pprof.WriteHeapProfile(file); err != nil {
			return fmt.Errorf("satus: writing heap profile: %w", err)
		}
	}

	if outcome.Result == sat.Unknown {
		os.Exit(2)
	}
	return nil
}
