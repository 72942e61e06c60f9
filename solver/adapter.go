// Package solver defines the adapter interface through which equation blocks
// are solved, and a damped Newton implementation for square systems. The
// initialization layer only depends on the Adapter interface; the Newton
// solver is one concrete adapter.
package solver

import (
	"fmt"
	"log"

	"github.com/procsim/unitsim/model"
)

// An Adapter solves one equation block synchronously. On every status the
// final iterate is left in the block's variables, possibly infeasible; fixed
// flags are never modified. Adapters perform no retries; retrying with
// different guesses or options is the caller's responsibility.
type Adapter interface {
	Solve(b *model.Block, opts Options) (Result, error)
}

// Status is the termination status of a solve.
type Status int

const (
	// StatusUnknown means the solve has not run.
	StatusUnknown Status = iota

	// StatusOptimal means the residuals converged below tolerance.
	StatusOptimal

	// StatusInfeasible means the iteration stalled without converging.
	StatusInfeasible

	// StatusIterationLimit means the iteration budget ran out.
	StatusIterationLimit

	// StatusSingular means the Jacobian of the system is singular.
	StatusSingular

	// StatusError means the solve could not run at all.
	StatusError
)

// String returns the name of the status.
func (s Status) String() string {
	switch s {
	case StatusUnknown:
		return "unknown"
	case StatusOptimal:
		return "optimal"
	case StatusInfeasible:
		return "infeasible"
	case StatusIterationLimit:
		return "iteration_limit"
	case StatusSingular:
		return "singular"
	case StatusError:
		return "error"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// IsOptimal reports whether the solve converged.
func (s Status) IsOptimal() bool {
	return s == StatusOptimal
}

// A Result reports the outcome of one solve.
type Result struct {
	Status     Status
	Iterations int

	// Residual is the largest scaled residual magnitude at termination.
	Residual float64
}

// Options control a solve. The zero value means defaults.
type Options struct {
	// MaxIter is the iteration budget. Default 100.
	MaxIter int

	// Tolerance is the convergence threshold on the largest scaled
	// residual magnitude. Default 1e-7.
	Tolerance float64

	// OutLevel gates informational logging: 0 silent, 2 logs success
	// summaries, 3 logs per-iteration progress.
	OutLevel int
}

// LogOutcome reports the outcome of an initialization solve: a warning on
// any non-optimal status, an informational summary on success when the
// verbosity asks for it. These are the only two severities the
// initialization layer emits.
func LogOutcome(name string, res Result, opts Options) {
	if res.Status.IsOptimal() {
		if opts.OutLevel >= 2 {
			log.Printf("%s: initialization complete after %d iterations",
				name, res.Iterations)
		}

		return
	}

	log.Printf("warning: %s: initialization failed, status %s, residual %g",
		name, res.Status, res.Residual)
}

func (o Options) withDefaults() Options {
	if o.MaxIter == 0 {
		o.MaxIter = 100
	}

	if o.Tolerance == 0 {
		o.Tolerance = 1e-7
	}

	return o
}
