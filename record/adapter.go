package record

import (
	"github.com/rs/xid"

	"github.com/procsim/unitsim/model"
	"github.com/procsim/unitsim/solver"
)

// SolveTraceTable is the table solve traces are recorded into.
const SolveTraceTable = "solve_trace"

// A SolveTrace row describes one solver invocation.
type SolveTrace struct {
	RunID      string
	Block      string
	Status     string
	Iterations int
	Residual   float64
	Error      string
}

// An Adapter wraps a solver adapter and records every invocation made
// through it. Passing a wrapped adapter to an Initialize call yields one
// trace row per sub-unit solve plus one for the coupled solve.
type Adapter struct {
	inner    solver.Adapter
	recorder Recorder
	runID    string
}

// WrapAdapter creates a recording adapter. The trace table is created if the
// recorder does not have it yet.
func WrapAdapter(inner solver.Adapter, recorder Recorder) *Adapter {
	for _, name := range recorder.ListTables() {
		if name == SolveTraceTable {
			return newAdapter(inner, recorder)
		}
	}

	recorder.CreateTable(SolveTraceTable, SolveTrace{})

	return newAdapter(inner, recorder)
}

func newAdapter(inner solver.Adapter, recorder Recorder) *Adapter {
	return &Adapter{
		inner:    inner,
		recorder: recorder,
		runID:    xid.New().String(),
	}
}

// RunID returns the identifier written with every trace of this adapter.
func (a *Adapter) RunID() string {
	return a.runID
}

// Solve solves the block with the wrapped adapter and records the outcome.
func (a *Adapter) Solve(
	b *model.Block,
	opts solver.Options,
) (solver.Result, error) {
	res, err := a.inner.Solve(b, opts)

	trace := SolveTrace{
		RunID:      a.runID,
		Block:      b.Name(),
		Status:     res.Status.String(),
		Iterations: res.Iterations,
		Residual:   res.Residual,
	}
	if err != nil {
		trace.Error = err.Error()
	}

	a.recorder.InsertData(SolveTraceTable, trace)

	return res, err
}
