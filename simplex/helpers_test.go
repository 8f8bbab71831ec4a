package simplex

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"q.log/tableau/model"
	"q.log/tableau/penalty"
)

const testTol = 1e-9

func newLP(t *testing.T, sense model.Sense, c []float64, rows [][]float64, rel []model.Relation, b []float64) *model.LP {
	t.Helper()
	a := mat.NewDense(len(rows), len(c), nil)
	for i, r := range rows {
		a.SetRow(i, r)
	}
	p, err := model.NewLP(sense, c, a, rel, b)
	require.NoError(t, err)
	return p
}

// referenceOptimum solves the equality form of p (without artificial
// columns) with gonum's simplex and returns the minimisation-form optimum.
func referenceOptimum(t *testing.T, p *model.LP) float64 {
	t.Helper()
	sf, err := model.Standardize(p)
	require.NoError(t, err)
	m, _ := sf.Dims()
	k := sf.NumStructural()
	c := make([]float64, k)
	for j := range k {
		c[j] = sf.C[j].Value
	}
	a := mat.DenseCopyOf(sf.A.Slice(0, m, 0, k))
	opt, _, err := lp.Simplex(c, a, sf.B, 0, nil)
	require.NoError(t, err)
	return opt
}

func requireUnitColumn(t *testing.T, tab *Tableau, col, row int) {
	t.Helper()
	m, _ := tab.Dims()
	for i := range m {
		want := 0.0
		if i == row {
			want = 1
		}
		require.InDelta(t, want, tab.rows.At(i, col), testTol, "row %d of x_%d", i+1, col+1)
	}
	require.True(t, tab.obj[col].IsZero(testTol), "objective entry of x_%d is %v", col+1, tab.obj[col])
}

func requireOptimalCertificate(t *testing.T, tab *Tableau) {
	t.Helper()
	for j, v := range tab.ReducedCosts() {
		require.LessOrEqual(t, v.Sign(testTol), 0, "reduced cost of x_%d is %v", j+1, v)
	}
}

func bigMTableau(t *testing.T, p *model.LP) (*Tableau, []int) {
	t.Helper()
	sf, err := model.Standardize(p)
	require.NoError(t, err)
	tab, err := NewTableau(sf.A, sf.B, sf.BigMCosts())
	require.NoError(t, err)
	return tab, sf.Basis
}

func hasDuplicate(trace [][]int) bool {
	seen := map[string]bool{}
	for _, set := range trace {
		k := basisKey(set)
		if seen[k] {
			return true
		}
		seen[k] = true
	}
	return false
}

func values(fs ...float64) []penalty.Value {
	out := make([]penalty.Value, len(fs))
	for i, f := range fs {
		out[i] = penalty.Num(f)
	}
	return out
}
