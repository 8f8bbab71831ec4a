// Package penalty implements the symbolic penalty parameter M used by the
// Big-M method. Objective entries are kept as the affine form Real + M·M so
// that comparisons at M → ∞ are exact.
package penalty

import (
	"math"
	"strconv"
	"strings"
)

// Value is Real + M·M where M is an arbitrarily large positive number.
type Value struct {
	Real float64
	M    float64
}

// Num returns a purely numeric value.
func Num(v float64) Value {
	return Value{Real: v}
}

// Big returns coef·M.
func Big(coef float64) Value {
	return Value{M: coef}
}

func (v Value) Add(o Value) Value {
	return Value{Real: v.Real + o.Real, M: v.M + o.M}
}

func (v Value) Sub(o Value) Value {
	return Value{Real: v.Real - o.Real, M: v.M - o.M}
}

func (v Value) Scale(f float64) Value {
	return Value{Real: v.Real * f, M: v.M * f}
}

func (v Value) Neg() Value {
	return Value{Real: -v.Real, M: -v.M}
}

// IsSymbolic reports whether v carries a non-zero M term.
func (v Value) IsSymbolic() bool {
	return v.M != 0
}

// IsZero reports whether both parts are within tol of zero.
func (v Value) IsZero(tol float64) bool {
	return math.Abs(v.Real) <= tol && math.Abs(v.M) <= tol
}

// Sign returns the sign of v as M → ∞. Parts within tol of zero count as zero.
func (v Value) Sign(tol float64) int {
	switch {
	case v.M > tol:
		return 1
	case v.M < -tol:
		return -1
	case v.Real > tol:
		return 1
	case v.Real < -tol:
		return -1
	}
	return 0
}

// Cmp orders v and o lexicographically on (M, Real).
func (v Value) Cmp(o Value, tol float64) int {
	return v.Sub(o).Sign(tol)
}

// Eval substitutes a concrete number for M.
func (v Value) Eval(m float64) float64 {
	return v.Real + v.M*m
}

// Chop snaps parts within tol of zero to exactly zero.
func (v Value) Chop(tol float64) Value {
	if math.Abs(v.Real) <= tol {
		v.Real = 0
	}
	if math.Abs(v.M) <= tol {
		v.M = 0
	}
	return v
}

func (v Value) String() string {
	if v.M == 0 {
		return formatFloat(v.Real)
	}
	var sb strings.Builder
	if v.Real != 0 {
		sb.WriteString(formatFloat(v.Real))
		if v.M < 0 {
			sb.WriteString(" - ")
		} else {
			sb.WriteString(" + ")
		}
		sb.WriteString(formatCoef(math.Abs(v.M)))
	} else {
		if v.M < 0 {
			sb.WriteString("-")
		}
		sb.WriteString(formatCoef(math.Abs(v.M)))
	}
	sb.WriteString("M")
	return sb.String()
}

func formatCoef(c float64) string {
	if c == 1 {
		return ""
	}
	return formatFloat(c)
}

func formatFloat(f float64) string {
	if f == 0 {
		// avoid "-0"
		return "0"
	}
	return strconv.FormatFloat(f, 'g', 6, 64)
}
