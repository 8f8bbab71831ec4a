package simplex

import (
	"math"
	"math/big"
	"slices"
	"strconv"
)

// Engine runs the tableau simplex method on one tableau for one phase.
// It is not safe for concurrent use.
type Engine struct {
	tab     *Tableau
	basis   []int
	tracker *CycleTracker
	set     settings

	state      State
	limit      int
	iterations int
	pivots     int

	// last entering and leaving variables, 1-based
	entering int
	leaving  int
}

// IterationCap is C(n, m), the number of ways to choose m basic columns
// out of n, saturating at math.MaxInt.
func IterationCap(n, m int) int {
	if m < 0 || n < m {
		return 0
	}
	c := new(big.Int).Binomial(int64(n), int64(m))
	if !c.IsInt64() || c.Int64() > math.MaxInt {
		return math.MaxInt
	}
	return int(c.Int64())
}

// NewEngine takes ownership of tab and basis. basis names the 1-based
// basic column of each constraint row; every such column must be a unit
// vector in the constraint rows. The objective row is reduced against the
// basis before the engine is returned.
func NewEngine(tab *Tableau, basis []int, opts ...Option) *Engine {
	set := newSettings(opts...)
	m, n := tab.Dims()
	e := &Engine{
		tab:     tab,
		basis:   basis,
		tracker: NewCycleTracker(basis),
		set:     set,
		state:   Initializing,
		limit:   IterationCap(n, m),
	}
	if set.maxIterations > 0 {
		e.limit = set.maxIterations
	}
	if e.set.numOriginal < 0 {
		e.set.numOriginal = n
	}

	e.state = ReducingBasisRow
	if err := tab.ReduceBasis(basis, set.tol); err != nil {
		// leave the remaining basis columns unreduced
		set.logger.Warn("basis reduction aborted", "phase", set.phase, "error", err)
	}
	e.state = Iterating
	set.logger.Debug("tableau initialised",
		"phase", set.phase, "rows", m, "columns", n, "max_iterations", e.limit)
	e.notify()
	return e
}

func (e *Engine) State() State {
	return e.state
}

func (e *Engine) Tableau() *Tableau {
	return e.tab
}

// Basis returns a copy of the current basis.
func (e *Engine) Basis() []int {
	return slices.Clone(e.basis)
}

func (e *Engine) Tracker() *CycleTracker {
	return e.tracker
}

// Entering returns the last entering variable (1-based), or 0.
func (e *Engine) Entering() int {
	return e.entering
}

// Step performs one iteration and returns the resulting state. Steps on a
// terminal engine do nothing.
func (e *Engine) Step() State {
	if e.state.Terminal() {
		return e.state
	}
	if e.iterations >= e.limit {
		return e.finish(StoppedByIterationLimit)
	}
	e.iterations++

	col, best := e.set.resolver.ArgMax(e.tab.obj[:e.tab.n])
	if col < 0 || best.Sign(e.set.tol) <= 0 {
		return e.finish(Optimal)
	}
	e.entering = col + 1

	row := e.tab.ratioTest(col, e.set.tol)
	if row < 0 {
		e.leaving = 0
		return e.finish(Unbounded)
	}

	e.leaving = e.basis[row]
	e.basis[row] = e.entering
	if e.tracker.Record(e.basis) {
		e.set.logger.Warn("basis cycle detected",
			"phase", e.set.phase,
			"iteration", e.iterations,
			"basis", e.basis,
			"first_seen", e.tracker.FirstSeen(e.basis))
		return e.finish(CycleDetected)
	}

	e.set.logger.Debug("pivot",
		"phase", e.set.phase,
		"iteration", e.iterations,
		"entering", varName(e.entering),
		"leaving", varName(e.leaving),
		"pivot", e.tab.rows.At(row, col))
	e.tab.Pivot(row, col)
	e.pivots++
	e.notify()
	return e.state
}

// Run steps until a terminal state.
func (e *Engine) Run() State {
	for !e.state.Terminal() {
		e.Step()
	}
	return e.state
}

func (e *Engine) finish(s State) State {
	e.state = s
	e.set.logger.Info("phase finished",
		"phase", e.set.phase,
		"state", s.String(),
		"iterations", e.iterations,
		"pivots", e.pivots,
		"objective", e.tab.Objective().String())
	e.notify()
	return s
}

func (e *Engine) notify() {
	if e.set.observer == nil {
		return
	}
	e.set.observer(Event{
		Phase:     e.set.phase,
		Iteration: e.iterations,
		State:     e.state,
		Entering:  e.entering,
		Leaving:   e.leaving,
		Snapshot:  e.tab.Snapshot(e.basis),
	})
}

// Result collects the engine's terminal output.
func (e *Engine) Result() *Result {
	return &Result{
		Status:     e.state,
		Phase:      e.set.phase,
		Tableau:    e.tab,
		Basis:      slices.Clone(e.basis),
		Trace:      e.tracker.Trace(),
		X:          solution(e.tab, e.basis, e.set.numOriginal),
		Iterations: e.pivots,
		Entering:   e.entering,
	}
}

// solution gives each of the first n variables its right-hand side when
// basic and 0 otherwise.
func solution(tab *Tableau, basis []int, n int) []float64 {
	x := make([]float64, n)
	rhs := tab.RHS()
	for i, j := range basis {
		if j >= 1 && j <= n {
			x[j-1] = rhs[i]
		}
	}
	return x
}

func varName(j int) string {
	return "x_" + strconv.Itoa(j)
}
