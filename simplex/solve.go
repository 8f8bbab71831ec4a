package simplex

import (
	"math"
	"slices"

	"github.com/pkg/errors"

	"q.log/tableau/model"
)

type runner func(sf *model.StandardForm, opts []Option) (*Result, error)

// Solve solves lp with the tableau simplex method. method only matters when
// the standard form has artificial variables; otherwise a single run on the
// original costs is made.
//
// Unbounded, CycleDetected, StoppedByIterationLimit and Infeasible are
// reported through Result.Status. An error is returned only for malformed
// input.
func Solve(lp *model.LP, method Method, opts ...Option) (*Result, error) {
	sf, err := model.Standardize(lp)
	if err != nil {
		return nil, errors.Wrap(err, "simplex: standard form")
	}
	run, err := dispatch(method, sf.TwoPhase)
	if err != nil {
		return nil, err
	}
	res, err := run(sf, opts)
	if err != nil {
		return nil, err
	}
	res.Method, res.Sense = method, lp.Sense
	if res.PhaseOne != nil {
		res.PhaseOne.Method, res.PhaseOne.Sense = method, lp.Sense
	}
	return res, nil
}

func dispatch(method Method, twoPhase bool) (runner, error) {
	switch method {
	case TwoPhase:
		if twoPhase {
			return solveTwoPhase, nil
		}
	case BigM:
		if twoPhase {
			return solveBigM, nil
		}
	default:
		return nil, errors.Wrapf(ErrMethod, "%v", method)
	}
	return solveDirect, nil
}

func solveDirect(sf *model.StandardForm, opts []Option) (*Result, error) {
	tab, err := NewTableau(sf.A, sf.B, sf.PhaseTwoCosts())
	if err != nil {
		return nil, err
	}
	e := NewEngine(tab, slices.Clone(sf.Basis), phaseOptions(opts, 0, sf.N)...)
	e.Run()
	return e.Result(), nil
}

func solveBigM(sf *model.StandardForm, opts []Option) (*Result, error) {
	tab, err := NewTableau(sf.A, sf.B, sf.BigMCosts())
	if err != nil {
		return nil, err
	}
	e := NewEngine(tab, slices.Clone(sf.Basis), phaseOptions(opts, 0, sf.N)...)
	e.Run()
	res := e.Result()
	if !artificialAtPositiveLevel(res, sf.Kinds, e.set.tol) {
		return res, nil
	}
	switch res.Status {
	case Optimal:
		e.set.logger.Info("artificial variable remains basic at optimum", "objective", res.Objective().String())
		res.Status = Infeasible
	case Unbounded:
		// an unbounded ray does not prove feasibility while an artificial
		// is still positive
		_, p1, err := phaseOne(sf, opts)
		if err != nil {
			return nil, err
		}
		res.PhaseOne = p1
		if p1.Status == Infeasible {
			e.set.logger.Info("unbounded column found before feasibility, phase 1 is positive",
				"objective", res.Objective().String())
			res.Status = Infeasible
		}
	}
	return res, nil
}

func artificialAtPositiveLevel(res *Result, kinds []model.VarKind, tol float64) bool {
	rhs := res.RHS()
	for i, j := range res.Basis {
		if kinds[j-1] == model.Artificial && rhs[i] > tol {
			return true
		}
	}
	return false
}

// phaseOne minimises the sum of the artificial variables. A positive
// optimum marks the result Infeasible.
func phaseOne(sf *model.StandardForm, opts []Option) (*Engine, *Result, error) {
	tab, err := NewTableau(sf.A, sf.B, sf.PhaseOneCosts())
	if err != nil {
		return nil, nil, err
	}
	e := NewEngine(tab, slices.Clone(sf.Basis), phaseOptions(opts, 1, sf.N)...)
	e.Run()
	p1 := e.Result()
	if p1.Status != Optimal {
		return e, p1, nil
	}
	if z := p1.Objective().Real; z > e.set.tol*math.Max(1, normInf(sf.B)) {
		e.set.logger.Info("phase 1 optimum is positive", "objective", z)
		p1.Status = Infeasible
	}
	return e, p1, nil
}

func solveTwoPhase(sf *model.StandardForm, opts []Option) (*Result, error) {
	e1, p1, err := phaseOne(sf, opts)
	if err != nil {
		return nil, err
	}
	if p1.Status != Optimal {
		return p1, nil
	}
	tol := e1.set.tol

	basis := slices.Clone(p1.Basis)
	driven := e1.tab.Clone()
	basis = driveOutArtificial(driven, basis, sf.Kinds, tol, e1.set)

	tab2 := driven.restrict(sf.NumStructural(), sf.PhaseTwoCosts())
	e2 := NewEngine(tab2, basis, phaseOptions(opts, 2, sf.N)...)
	e2.Run()
	res := e2.Result()
	res.PhaseOne = p1
	return res, nil
}

// driveOutArtificial removes artificial variables left basic (at zero
// level) after phase 1. Each is pivoted out against the first structural
// column with a non-zero entry in its row; a row without one is linearly
// dependent on the others and is dropped.
func driveOutArtificial(tab *Tableau, basis []int, kinds []model.VarKind, tol float64, set settings) []int {
	for i := len(basis) - 1; i >= 0; i-- {
		if kinds[basis[i]-1] != model.Artificial {
			continue
		}
		col := -1
		for j := range tab.n {
			if kinds[j] != model.Artificial && !slices.Contains(basis, j+1) && math.Abs(tab.rows.At(i, j)) > tol {
				col = j
				break
			}
		}
		if col == -1 {
			set.logger.Debug("dropping redundant row", "row", i+1, "artificial", varName(basis[i]))
			tab.dropRow(i)
			basis = slices.Delete(basis, i, i+1)
			continue
		}
		set.logger.Debug("driving out artificial variable",
			"artificial", varName(basis[i]), "entering", varName(col+1))
		tab.Pivot(i, col)
		basis[i] = col + 1
	}
	return basis
}

func phaseOptions(opts []Option, phase, numOriginal int) []Option {
	return slices.Concat(opts, []Option{withPhase(phase), withOriginal(numOriginal)})
}

func normInf(v []float64) float64 {
	var n float64
	for _, x := range v {
		n = math.Max(n, math.Abs(x))
	}
	return n
}
