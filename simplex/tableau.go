package simplex

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"q.log/tableau/penalty"
)

// Tableau is the simplex tableau of a problem with m constraints over n
// variables. Constraint rows are numeric and stored with the right-hand
// side as their last column; the objective row may carry M terms.
//
// In grid coordinates (see Snapshot) row 0 is the objective row, column 0
// is the objective marker, columns 1..n are the variables and column n+1 is
// the right-hand side. Variable j (1-based) lives in stored column j-1.
type Tableau struct {
	rows *mat.Dense
	obj  []penalty.Value
	m, n int
}

// NewTableau lays out A, b and the objective c. The objective row starts
// as -c with a running objective value of 0.
func NewTableau(a *mat.Dense, b []float64, c []penalty.Value) (*Tableau, error) {
	m, n := a.Dims()
	if len(b) != m || len(c) != n {
		return nil, errors.Errorf("simplex: tableau of %dx%d with %d right-hand sides and %d costs", m, n, len(b), len(c))
	}
	rows := mat.NewDense(max(m, 1), n+1, nil)
	for i := range m {
		copy(rows.RawRowView(i)[:n], a.RawRowView(i))
		rows.Set(i, n, b[i])
	}
	t := &Tableau{rows: rows, m: m, n: n}
	t.setCosts(c)
	return t, nil
}

func (t *Tableau) setCosts(c []penalty.Value) {
	t.obj = make([]penalty.Value, t.n+1)
	for j, cj := range c {
		t.obj[j] = cj.Neg()
	}
}

// Dims returns the number of constraint rows and variable columns.
func (t *Tableau) Dims() (m, n int) {
	return t.m, t.n
}

// At returns the grid entry at row i, column j.
func (t *Tableau) At(i, j int) penalty.Value {
	switch {
	case j == 0:
		if i == 0 {
			return penalty.Num(1)
		}
		return penalty.Value{}
	case i == 0:
		return t.obj[j-1]
	}
	return penalty.Num(t.rows.At(i-1, j-1))
}

// Objective is the running objective value in the row-0 right-hand side.
func (t *Tableau) Objective() penalty.Value {
	return t.obj[t.n]
}

// ReducedCosts returns a copy of the objective row over the variable columns.
func (t *Tableau) ReducedCosts() []penalty.Value {
	return append([]penalty.Value(nil), t.obj[:t.n]...)
}

// Constraints returns a copy of the constraint coefficients (m x n), or
// nil when the tableau has no rows or no variables.
func (t *Tableau) Constraints() *mat.Dense {
	if t.m == 0 || t.n == 0 {
		return nil
	}
	return mat.DenseCopyOf(t.rows.Slice(0, t.m, 0, t.n))
}

// RHS returns a copy of the right-hand-side column of the constraint rows.
func (t *Tableau) RHS() []float64 {
	b := make([]float64, t.m)
	for i := range t.m {
		b[i] = t.rows.At(i, t.n)
	}
	return b
}

// Column returns a copy of the constraint entries of variable j (1-based).
func (t *Tableau) Column(j int) []float64 {
	col := make([]float64, t.m)
	for i := range t.m {
		col[i] = t.rows.At(i, j-1)
	}
	return col
}

// ReduceBasis zeroes the objective row entry of every basis column by
// subtracting a multiple of the row holding that column's 1.
func (t *Tableau) ReduceBasis(basis []int, tol float64) error {
	for _, base := range basis {
		col := base - 1
		f := t.obj[col]
		if f.IsZero(0) {
			continue
		}
		row := -1
		for i := range t.m {
			if math.Abs(t.rows.At(i, col)-1) <= tol {
				row = i
				break
			}
		}
		if row == -1 {
			return errors.Wrapf(ErrNoUnitEntry, "x_%d", base)
		}
		t.subtractFromObjective(f, t.rows.RawRowView(row))
		t.obj[col] = penalty.Value{}
	}
	return nil
}

func (t *Tableau) subtractFromObjective(f penalty.Value, row []float64) {
	for k, a := range row {
		if a == 0 {
			continue
		}
		t.obj[k] = t.obj[k].Sub(f.Scale(a))
	}
}

// ratioTest returns the row minimising rhs/a over rows whose entry in
// column col exceeds tol, or -1 when there is none. Ratios within tol of
// the minimum keep the earlier row.
func (t *Tableau) ratioTest(col int, tol float64) int {
	best := -1
	bestRatio := math.Inf(1)
	for i := range t.m {
		a := t.rows.At(i, col)
		if a <= tol {
			continue
		}
		ratio := t.rows.At(i, t.n) / a
		if best == -1 || ratio < bestRatio-tol {
			best, bestRatio = i, ratio
		}
	}
	return best
}

// Pivot makes column col a unit vector with its 1 in constraint row r.
func (t *Tableau) Pivot(r, col int) {
	pivotRow := t.rows.RawRowView(r)
	floats.Scale(1/pivotRow[col], pivotRow)
	for i := range t.m {
		if i == r {
			continue
		}
		row := t.rows.RawRowView(i)
		if f := row[col]; f != 0 {
			floats.AddScaled(row, -f, pivotRow)
		}
		row[col] = 0
	}
	if f := t.obj[col]; !f.IsZero(0) {
		t.subtractFromObjective(f, pivotRow)
	}
	pivotRow[col] = 1
	t.obj[col] = penalty.Value{}
}

// restrict keeps the first cols variable columns and installs a new
// objective c (len(c) == cols).
func (t *Tableau) restrict(cols int, c []penalty.Value) *Tableau {
	rows := mat.NewDense(max(t.m, 1), cols+1, nil)
	for i := range t.m {
		src := t.rows.RawRowView(i)
		dst := rows.RawRowView(i)
		copy(dst[:cols], src[:cols])
		dst[cols] = src[t.n]
	}
	nt := &Tableau{rows: rows, m: t.m, n: cols}
	nt.setCosts(c)
	return nt
}

// dropRow removes constraint row r.
func (t *Tableau) dropRow(r int) {
	if t.m == 1 {
		t.rows = mat.NewDense(1, t.n+1, nil)
		t.m = 0
		return
	}
	rows := mat.NewDense(t.m-1, t.n+1, nil)
	k := 0
	for i := range t.m {
		if i == r {
			continue
		}
		copy(rows.RawRowView(k), t.rows.RawRowView(i))
		k++
	}
	t.rows = rows
	t.m--
}

// Clone returns a deep copy.
func (t *Tableau) Clone() *Tableau {
	return &Tableau{
		rows: mat.DenseCopyOf(t.rows),
		obj:  append([]penalty.Value(nil), t.obj...),
		m:    t.m,
		n:    t.n,
	}
}

// Snapshot is a display-ready copy of a tableau: the (m+1) x (n+2) grid in
// row-major order and the basis labelling rows 1..m.
type Snapshot struct {
	Grid  [][]penalty.Value
	Basis []int
}

// Snapshot materialises the full grid including the marker column.
func (t *Tableau) Snapshot(basis []int) Snapshot {
	grid := make([][]penalty.Value, t.m+1)
	for i := range grid {
		grid[i] = make([]penalty.Value, t.n+2)
		for j := range grid[i] {
			grid[i][j] = t.At(i, j)
		}
	}
	return Snapshot{Grid: grid, Basis: append([]int(nil), basis...)}
}
