package solver

import (
	"fmt"
	"log"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/procsim/unitsim/model"
)

const maxBacktracks = 10

// A Newton is an Adapter that solves square systems with a damped Newton
// iteration: finite-difference Jacobian, LU factorization, and a
// step-halving line search on the scaled residual norm.
type Newton struct{}

// NewNewton creates a Newton adapter.
func NewNewton() *Newton {
	return &Newton{}
}

// Solve runs the Newton iteration on the free variables and active
// constraints of the subtree rooted at b. The system must be square and
// every free variable must hold a starting value.
func (n *Newton) Solve(b *model.Block, opts Options) (Result, error) {
	opts = opts.withDefaults()

	vars := b.FreeVariables()
	cons := b.ActiveConstraints()

	if len(vars) != len(cons) {
		return Result{Status: StatusError}, &model.AssemblyInvariantError{
			Block:             b.Name(),
			FreeVariables:     len(vars),
			ActiveConstraints: len(cons),
		}
	}

	for _, v := range vars {
		if !v.IsSet() {
			return Result{Status: StatusError}, fmt.Errorf(
				"solver: free variable %s has no starting value", v.Name())
		}
	}

	m := len(cons)
	if m == 0 {
		return Result{Status: StatusOptimal}, nil
	}

	col := make(map[*model.Variable]int, m)
	for i, v := range vars {
		col[v] = i
	}

	r := make([]float64, m)
	norm := evalResiduals(cons, r)

	for iter := 0; iter < opts.MaxIter; iter++ {
		if norm <= opts.Tolerance {
			return Result{
				Status:     StatusOptimal,
				Iterations: iter,
				Residual:   norm,
			}, nil
		}

		if opts.OutLevel >= 3 {
			log.Printf("%s: newton iteration %d, residual %g",
				b.Name(), iter, norm)
		}

		jac := jacobian(cons, vars, col, r)

		step, ok := newtonStep(jac, r)
		if !ok {
			return Result{
				Status:     StatusSingular,
				Iterations: iter,
				Residual:   norm,
			}, nil
		}

		newNorm, ok := lineSearch(vars, cons, step, r, norm)
		if !ok {
			return Result{
				Status:     StatusInfeasible,
				Iterations: iter,
				Residual:   newNorm,
			}, nil
		}

		norm = newNorm
	}

	if norm <= opts.Tolerance {
		return Result{
			Status:     StatusOptimal,
			Iterations: opts.MaxIter,
			Residual:   norm,
		}, nil
	}

	return Result{
		Status:     StatusIterationLimit,
		Iterations: opts.MaxIter,
		Residual:   norm,
	}, nil
}

func evalResiduals(cons []*model.Constraint, r []float64) float64 {
	norm := 0.0

	for i, c := range cons {
		r[i] = c.ScaledResidual()
		if abs := math.Abs(r[i]); abs > norm {
			norm = abs
		}
	}

	return norm
}

// jacobian builds the dense scaled Jacobian by forward differences. Only the
// columns of variables a constraint declares are perturbed, so the cost is
// proportional to the sparsity of the system.
func jacobian(
	cons []*model.Constraint,
	vars []*model.Variable,
	col map[*model.Variable]int,
	r []float64,
) *mat.Dense {
	m := len(vars)
	jac := mat.NewDense(m, m, nil)

	for i, c := range cons {
		for _, v := range c.Variables() {
			j, free := col[v]
			if !free {
				continue
			}

			x := v.Value()
			eps := 1e-7 * (1 + math.Abs(x))

			v.SetValue(x + eps)
			perturbed := c.ScaledResidual()
			v.SetValue(x)

			jac.Set(i, j, (perturbed-r[i])/eps)
		}
	}

	return jac
}

func newtonStep(jac *mat.Dense, r []float64) ([]float64, bool) {
	m := len(r)

	rhs := mat.NewVecDense(m, nil)
	for i, ri := range r {
		rhs.SetVec(i, -ri)
	}

	var lu mat.LU
	lu.Factorize(jac)

	step := mat.NewVecDense(m, nil)
	if err := lu.SolveVecTo(step, false, rhs); err != nil {
		// An ill-conditioned but factorizable system is still usable; an
		// infinite condition number means the system is singular.
		cond, conditioned := err.(mat.Condition)
		if !conditioned || math.IsInf(float64(cond), 0) {
			return nil, false
		}
	}

	out := make([]float64, m)
	for i := range out {
		out[i] = step.AtVec(i)
		if math.IsNaN(out[i]) || math.IsInf(out[i], 0) {
			return nil, false
		}
	}

	return out, true
}

// lineSearch walks the Newton direction, halving the step until the scaled
// residual norm decreases. Candidate points are projected into variable
// bounds before evaluation.
func lineSearch(
	vars []*model.Variable,
	cons []*model.Constraint,
	step []float64,
	r []float64,
	norm float64,
) (float64, bool) {
	base := make([]float64, len(vars))
	for i, v := range vars {
		base[i] = v.Value()
	}

	alpha := 1.0
	for k := 0; k <= maxBacktracks; k++ {
		for i, v := range vars {
			v.SetValue(v.Clamp(base[i] + alpha*step[i]))
		}

		newNorm := evalResiduals(cons, r)
		if newNorm < norm {
			return newNorm, true
		}

		alpha /= 2
	}

	// Stalled: leave the best-effort full step in place for inspection.
	for i, v := range vars {
		v.SetValue(v.Clamp(base[i] + step[i]))
	}

	return evalResiduals(cons, r), false
}
