package simplex

import (
	"gonum.org/v1/gonum/mat"

	"q.log/tableau/model"
	"q.log/tableau/penalty"
)

// Result is the terminal output of a solve.
//
// Status is Optimal only when Tableau is an optimal tableau of the problem;
// every other status must be inspected by the caller. For a two-phase solve
// the fields describe the last phase that ran and PhaseOne holds the first.
type Result struct {
	Status State
	Method Method
	Sense  model.Sense

	// Phase is 1 or 2 for the phases of a two-phase solve and 0 for a
	// single run.
	Phase int

	Tableau *Tableau

	// Basis is the terminal basis, 1-based, one entry per constraint row.
	Basis []int

	// Trace holds every basis set visited, initial basis first.
	Trace [][]int

	// X is the value of each original variable.
	X []float64

	// Iterations counts pivots performed.
	Iterations int

	// Entering is the last entering variable. On Unbounded it names the
	// column whose constraint entries are all non-positive.
	Entering int

	PhaseOne *Result
}

// Objective is the row-0 right-hand side: the objective of the
// minimisation form, possibly carrying an M term.
func (r *Result) Objective() penalty.Value {
	return r.Tableau.Objective()
}

// Value is the objective in the problem's own sense with M dropped.
func (r *Result) Value() float64 {
	z := r.Objective().Real
	if r.Sense == model.Maximize {
		return -z
	}
	return z
}

// Constraints is the final reduced constraint matrix.
func (r *Result) Constraints() *mat.Dense {
	return r.Tableau.Constraints()
}

// RHS is the final right-hand-side column.
func (r *Result) RHS() []float64 {
	return r.Tableau.RHS()
}

// ReducedCosts is the final objective row over the variable columns.
func (r *Result) ReducedCosts() []penalty.Value {
	return r.Tableau.ReducedCosts()
}

// Snapshot returns the terminal tableau for display.
func (r *Result) Snapshot() Snapshot {
	return r.Tableau.Snapshot(r.Basis)
}
