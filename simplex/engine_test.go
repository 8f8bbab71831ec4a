package simplex

import (
	"bytes"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"q.log/tableau/model"
	"q.log/tableau/penalty"
)

// max 3x1 + 5x2  s.t.  x1 <= 4, 2x2 <= 12, 3x1 + 2x2 <= 18
func wyndorLP(t *testing.T) *model.LP {
	return newLP(t, model.Maximize, []float64{3, 5},
		[][]float64{{1, 0}, {0, 2}, {3, 2}},
		[]model.Relation{model.LessEqual, model.LessEqual, model.LessEqual},
		[]float64{4, 12, 18})
}

// min 2x1 + 3x2  s.t.  x1 + x2 >= 4, x1 <= 3
func coverLP(t *testing.T) *model.LP {
	return newLP(t, model.Minimize, []float64{2, 3},
		[][]float64{{1, 1}, {1, 0}},
		[]model.Relation{model.GreaterEqual, model.LessEqual},
		[]float64{4, 3})
}

func directEngine(t *testing.T, p *model.LP, opts ...Option) *Engine {
	t.Helper()
	sf, err := model.Standardize(p)
	require.NoError(t, err)
	tab, err := NewTableau(sf.A, sf.B, sf.PhaseTwoCosts())
	require.NoError(t, err)
	return NewEngine(tab, sf.Basis, append(opts, withOriginal(sf.N))...)
}

func TestIterationCap(t *testing.T) {
	assert.Equal(t, 6, IterationCap(4, 2))
	assert.Equal(t, 1, IterationCap(3, 0))
	assert.Equal(t, 0, IterationCap(2, 3))
	assert.Equal(t, math.MaxInt, IterationCap(200, 100))
}

func TestEngineStepsPreservePivotInvariant(t *testing.T) {
	e := directEngine(t, wyndorLP(t))
	require.Equal(t, Iterating, e.State())
	assert.Equal(t, IterationCap(5, 3), e.limit)

	var entered []int
	for e.Step() == Iterating {
		col := e.Entering() - 1
		row := -1
		for i, b := range e.Basis() {
			if b == e.Entering() {
				row = i
			}
		}
		require.NotEqual(t, -1, row, "entering variable must be basic after the pivot")
		requireUnitColumn(t, e.Tableau(), col, row)
		entered = append(entered, e.Entering())
	}

	require.Equal(t, Optimal, e.State())
	assert.Equal(t, []int{2, 1}, entered)
	requireOptimalCertificate(t, e.Tableau())

	res := e.Result()
	assert.InDeltaSlice(t, []float64{2, 6}, res.X, testTol)
	assert.InDelta(t, -36, res.Objective().Real, testTol)
	assert.Equal(t, 2, res.Iterations)
	assert.Len(t, res.Trace, 3)
	assert.False(t, hasDuplicate(res.Trace))
}

func TestEngineIdempotentAtOptimum(t *testing.T) {
	e := directEngine(t, wyndorLP(t))
	require.Equal(t, Optimal, e.Run())

	before := e.Tableau().Clone()
	require.NoError(t, e.Tableau().ReduceBasis(e.Basis(), testTol))
	assert.Equal(t, before, e.Tableau())

	// a terminal engine does not move
	assert.Equal(t, Optimal, e.Step())
	assert.Equal(t, before, e.Tableau())
}

func TestEngineIterationLimit(t *testing.T) {
	e := directEngine(t, wyndorLP(t), WithMaxIterations(1))
	assert.Equal(t, Iterating, e.Step())
	assert.Equal(t, StoppedByIterationLimit, e.Step())

	res := e.Result()
	assert.Equal(t, StoppedByIterationLimit, res.Status)
	assert.Equal(t, 1, res.Iterations)
	assert.InDelta(t, -30, res.Objective().Real, testTol, "suboptimal tableau is still reported")
}

func TestEngineBigMSelection(t *testing.T) {
	for _, r := range []penalty.Resolver{
		penalty.Lexicographic{Tol: testTol},
		penalty.Substitution{Exponents: penalty.DefaultExponents},
	} {
		tab, basis := bigMTableau(t, coverLP(t))
		assert.Equal(t, penalty.Value{}, tab.Objective(), "row 0 is -c until the basis is reduced")

		e := NewEngine(tab, basis, WithResolver(r))
		assert.Equal(t, []penalty.Value{{Real: -2, M: 1}, {Real: -3, M: 1}, {M: -1}, {}, {}}, e.Tableau().ReducedCosts())
		assert.Equal(t, penalty.Big(4), e.Tableau().Objective())
		assert.Equal(t, Iterating, e.Step())
		assert.Equal(t, 1, e.Entering(), "x1 has the larger reduced cost -2+M")
		assert.Equal(t, Iterating, e.Step())
		assert.Equal(t, 2, e.Entering())
		assert.Equal(t, Optimal, e.Step())

		requireOptimalCertificate(t, e.Tableau())
		assert.Equal(t, penalty.Num(9), e.Tableau().Objective().Chop(testTol))
		assert.Equal(t, []int{2, 1}, e.Basis())
	}
}

func TestEngineUnboundedColumn(t *testing.T) {
	// min -x1 - x2  s.t.  x1 - x2 <= 1
	p := newLP(t, model.Minimize, []float64{-1, -1},
		[][]float64{{1, -1}},
		[]model.Relation{model.LessEqual},
		[]float64{1})
	e := directEngine(t, p)
	require.Equal(t, Unbounded, e.Run())

	col := e.Tableau().Column(e.Entering())
	for i, a := range col {
		assert.LessOrEqual(t, a, 0.0, "row %d of entering column x_%d", i+1, e.Entering())
	}
}

func TestEngineObserverAndLogger(t *testing.T) {
	var events []Event
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	e := directEngine(t, wyndorLP(t), WithObserver(func(ev Event) {
		events = append(events, ev)
	}), WithLogger(logger))
	e.Run()

	// initial tableau, two pivots, terminal state
	require.Len(t, events, 4)
	assert.Equal(t, Iterating, events[0].State)
	assert.Equal(t, 0, events[0].Entering)
	assert.Equal(t, 2, events[1].Entering)
	assert.Equal(t, 4, events[1].Leaving, "slack of row 2 leaves")
	assert.Equal(t, Optimal, events[3].State)
	assert.Len(t, events[3].Snapshot.Grid, 4)

	assert.Contains(t, buf.String(), "msg=pivot")
	assert.Contains(t, buf.String(), "state=optimal")
}

func TestCycleTracker(t *testing.T) {
	c := NewCycleTracker([]int{3, 4})
	assert.False(t, c.Record([]int{1, 4}))
	assert.False(t, c.Record([]int{1, 2}))
	assert.True(t, c.Record([]int{4, 3}), "order within the basis does not matter")
	assert.Equal(t, 0, c.FirstSeen([]int{4, 3}))
	assert.Equal(t, -1, c.FirstSeen([]int{2, 3}))
	assert.Equal(t, [][]int{{3, 4}, {1, 4}, {1, 2}, {3, 4}}, c.Trace())
	assert.Equal(t, 4, c.Len())
	assert.True(t, hasDuplicate(c.Trace()))
}
