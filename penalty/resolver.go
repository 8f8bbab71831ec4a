package penalty

import (
	"math"
	"strings"

	"github.com/pkg/errors"
)

const DefaultTolerance = 1e-9

var ErrStrategy = errors.New("penalty: unknown resolver strategy")

// Resolver picks the maximal entry of a row that may contain M terms.
// Ties go to the first occurrence. ArgMax returns -1 for an empty row.
type Resolver interface {
	ArgMax(values []Value) (int, Value)
}

// Lexicographic compares on (M, Real), which is the exact order as M → ∞.
type Lexicographic struct {
	Tol float64
}

func (l Lexicographic) ArgMax(values []Value) (int, Value) {
	best := -1
	var bestVal Value
	for i, v := range values {
		if best == -1 || v.Cmp(bestVal, l.Tol) > 0 {
			best, bestVal = i, v
		}
	}
	return best, bestVal
}

// Substitution approximates the order at M → ∞ by substituting M = 10^k for
// each exponent, taking the arg-max at every substitution and keeping the
// index with the most wins. Vote ties go to the index that scored first.
// It is a heuristic: two entries whose order flips beyond 10^max(Exponents)
// are resolved wrongly.
type Substitution struct {
	Exponents []int
}

// DefaultExponents substitutes M = 10^2 .. 10^7.
var DefaultExponents = []int{2, 3, 4, 5, 6, 7}

func (s Substitution) ArgMax(values []Value) (int, Value) {
	if len(values) == 0 {
		return -1, Value{}
	}
	symbolic := false
	for _, v := range values {
		if v.IsSymbolic() {
			symbolic = true
			break
		}
	}
	if !symbolic {
		return argMaxFloat(values, 0)
	}

	exps := s.Exponents
	if len(exps) == 0 {
		exps = DefaultExponents
	}
	votes := make(map[int]int)
	var order []int
	for _, k := range exps {
		j, _ := argMaxFloat(values, math.Pow(10, float64(k)))
		if _, seen := votes[j]; !seen {
			order = append(order, j)
		}
		votes[j]++
	}
	winner := order[0]
	for _, j := range order[1:] {
		if votes[j] > votes[winner] {
			winner = j
		}
	}
	return winner, values[winner]
}

func argMaxFloat(values []Value, m float64) (int, Value) {
	best := 0
	bestVal := values[0].Eval(m)
	for i := 1; i < len(values); i++ {
		if f := values[i].Eval(m); f > bestVal {
			best, bestVal = i, f
		}
	}
	return best, values[best]
}

// ParseStrategy maps a configuration name to a Resolver.
func ParseStrategy(name string, tol float64) (Resolver, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "lexicographic", "lex":
		return Lexicographic{Tol: tol}, nil
	case "substitution", "vote":
		return Substitution{Exponents: DefaultExponents}, nil
	}
	return nil, errors.Wrapf(ErrStrategy, "%q", name)
}
