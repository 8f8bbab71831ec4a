package model

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"q.log/tableau/penalty"
)

type VarKind int

const (
	Original VarKind = iota
	Slack
	Surplus
	Artificial
)

func (k VarKind) String() string {
	switch k {
	case Original:
		return "original"
	case Slack:
		return "slack"
	case Surplus:
		return "surplus"
	case Artificial:
		return "artificial"
	}
	return "unknown"
}

// Cost is an objective coefficient of the standard form. Penalty marks an
// artificial variable whose coefficient depends on the solution method.
type Cost struct {
	Value   float64
	Penalty bool
}

// StandardForm is the equality form  min c^T x, A x = b, x >= 0  with a
// canonical initial basis: row i has a 1 in column Basis[i] and every other
// row has a 0 there.
type StandardForm struct {
	//A augmented constraint matrix (m x n̂)
	A *mat.Dense

	//B right-hand side, non-negative
	B []float64

	//C augmented objective (n̂)
	C []Cost

	//Kinds role of every column of A
	Kinds []VarKind

	//Basis 1-based column index of the initial basic variable of each row
	Basis []int

	//N number of original variables
	N int

	TwoPhase bool
}

// Standardize converts lp to standard form. Maximisation is rewritten as
// minimisation of -c. A row with a negative right-hand side is negated and
// its relation flipped. Each <= row receives a slack column that starts
// basic; each >= row receives a surplus column and an artificial column
// that starts basic. Artificial columns come after all slack and surplus
// columns.
func Standardize(lp *LP) (*StandardForm, error) {
	m, n := lp.Dims()
	if len(lp.C) != n || len(lp.Relations) != m || len(lp.B) != m {
		return nil, errors.Wrapf(ErrDimension, "%dx%d matrix, %d costs, %d relations, %d right-hand sides",
			m, n, len(lp.C), len(lp.Relations), len(lp.B))
	}

	rel := make([]Relation, m)
	b := make([]float64, m)
	rowSign := make([]float64, m)
	numArtificial := 0
	for i, r := range lp.Relations {
		if !r.valid() {
			return nil, errors.Wrapf(ErrRelation, "row %d: %v", i+1, r)
		}
		rel[i], b[i], rowSign[i] = r, lp.B[i], 1
		if b[i] < 0 {
			rel[i], b[i], rowSign[i] = r.flip(), -b[i], -1
		}
		if rel[i] == GreaterEqual {
			numArtificial++
		}
	}

	nHat := n + m + numArtificial
	sf := &StandardForm{
		A:        mat.NewDense(m, nHat, nil),
		B:        b,
		C:        make([]Cost, nHat),
		Kinds:    make([]VarKind, nHat),
		Basis:    make([]int, m),
		N:        n,
		TwoPhase: numArtificial > 0,
	}

	sign := 1.0
	if lp.Sense == Maximize {
		sign = -1
	}
	for j := range n {
		sf.C[j] = Cost{Value: sign * lp.C[j]}
		sf.Kinds[j] = Original
	}
	for i := range m {
		for j := range n {
			sf.A.Set(i, j, rowSign[i]*lp.A.At(i, j))
		}
	}

	art := n + m
	for i := range m {
		col := n + i
		if rel[i] == LessEqual {
			sf.A.Set(i, col, 1)
			sf.Kinds[col] = Slack
			sf.Basis[i] = col + 1
			continue
		}
		sf.A.Set(i, col, -1)
		sf.Kinds[col] = Surplus
		sf.A.Set(i, art, 1)
		sf.Kinds[art] = Artificial
		sf.C[art] = Cost{Penalty: true}
		sf.Basis[i] = art + 1
		art++
	}

	return sf, nil
}

// Dims returns the number of rows and columns of the augmented matrix.
func (sf *StandardForm) Dims() (m, nHat int) {
	return sf.A.Dims()
}

// NumStructural is the number of columns that survive phase 1: original,
// slack and surplus variables.
func (sf *StandardForm) NumStructural() int {
	_, nHat := sf.Dims()
	k := 0
	for j := range nHat {
		if sf.Kinds[j] != Artificial {
			k++
		}
	}
	return k
}

// PhaseOneCosts is 1 on every artificial column and 0 elsewhere.
func (sf *StandardForm) PhaseOneCosts() []penalty.Value {
	c := make([]penalty.Value, len(sf.C))
	for j, cost := range sf.C {
		if cost.Penalty {
			c[j] = penalty.Num(1)
		}
	}
	return c
}

// PhaseTwoCosts is the numeric objective with artificial columns removed.
func (sf *StandardForm) PhaseTwoCosts() []penalty.Value {
	c := make([]penalty.Value, 0, len(sf.C))
	for _, cost := range sf.C {
		if cost.Penalty {
			continue
		}
		c = append(c, penalty.Num(cost.Value))
	}
	return c
}

// BigMCosts replaces every penalty marker by M.
func (sf *StandardForm) BigMCosts() []penalty.Value {
	c := make([]penalty.Value, len(sf.C))
	for j, cost := range sf.C {
		if cost.Penalty {
			c[j] = penalty.Big(1)
		} else {
			c[j] = penalty.Num(cost.Value)
		}
	}
	return c
}
