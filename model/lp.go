package model

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrRelation  = errors.New("model: unrecognized relation")
	ErrSense     = errors.New("model: unrecognized objective sense")
	ErrDimension = errors.New("model: mismatched dimensions")
)

type Sense int

const (
	Minimize Sense = iota
	Maximize
)

func (s Sense) String() string {
	switch s {
	case Minimize:
		return "min"
	case Maximize:
		return "max"
	}
	return fmt.Sprintf("Sense(%d)", int(s))
}

// ParseSense accepts "min" or "max".
func ParseSense(tok string) (Sense, error) {
	switch strings.ToLower(strings.TrimSpace(tok)) {
	case "min":
		return Minimize, nil
	case "max":
		return Maximize, nil
	}
	return 0, errors.Wrapf(ErrSense, "token %q", tok)
}

type Relation int

const (
	LessEqual Relation = iota
	GreaterEqual
)

func (r Relation) String() string {
	switch r {
	case LessEqual:
		return "<="
	case GreaterEqual:
		return ">="
	}
	return fmt.Sprintf("Relation(%d)", int(r))
}

func (r Relation) valid() bool {
	return r == LessEqual || r == GreaterEqual
}

func (r Relation) flip() Relation {
	if r == LessEqual {
		return GreaterEqual
	}
	return LessEqual
}

// ParseRelation accepts "<=" or ">=".
func ParseRelation(tok string) (Relation, error) {
	switch strings.TrimSpace(tok) {
	case "<=":
		return LessEqual, nil
	case ">=":
		return GreaterEqual, nil
	}
	return 0, errors.Wrapf(ErrRelation, "token %q", tok)
}

// LP is a linear program over non-negative variables:
//
//	min|max  c^T x
//	s.t.     A_i x  (<= | >=)  b_i
//	         x >= 0
type LP struct {
	Sense     Sense
	C         []float64
	A         *mat.Dense
	Relations []Relation
	B         []float64
}

// NewLP checks that the pieces of a problem agree in shape.
func NewLP(sense Sense, c []float64, a *mat.Dense, rel []Relation, b []float64) (*LP, error) {
	if a == nil {
		return nil, errors.Wrap(ErrDimension, "nil constraint matrix")
	}
	m, n := a.Dims()
	if len(c) != n {
		return nil, errors.Wrapf(ErrDimension, "%d objective coefficients for %d columns", len(c), n)
	}
	if len(rel) != m || len(b) != m {
		return nil, errors.Wrapf(ErrDimension, "%d rows, %d relations, %d right-hand sides", m, len(rel), len(b))
	}
	for i, r := range rel {
		if !r.valid() {
			return nil, errors.Wrapf(ErrRelation, "row %d: %v", i+1, r)
		}
	}
	return &LP{Sense: sense, C: c, A: a, Relations: rel, B: b}, nil
}

// Dims returns the number of constraints and original variables.
func (lp *LP) Dims() (m, n int) {
	return lp.A.Dims()
}
