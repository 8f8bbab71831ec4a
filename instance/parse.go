package instance

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"q.log/tableau/model"
)

var ErrFormat = errors.New("instance: malformed problem")

// Parse reads the line-oriented problem format:
//
//	min 2 1
//	1 1 <= 4
//	1 2 <= 5
//
// The first non-empty line is the objective sense followed by the
// objective coefficients. Each further non-empty line holds one coefficient
// per variable, a relation ("<=" or ">=") and the right-hand side.
func Parse(r io.Reader) (*model.LP, error) {
	sc := bufio.NewScanner(r)
	lineNo := 0
	next := func() ([]string, bool) {
		for sc.Scan() {
			lineNo++
			if f := strings.Fields(sc.Text()); len(f) > 0 {
				return f, true
			}
		}
		return nil, false
	}

	head, ok := next()
	if !ok {
		if err := sc.Err(); err != nil {
			return nil, errors.Wrap(err, "instance: read")
		}
		return nil, errors.Wrap(ErrFormat, "empty input")
	}
	sense, err := model.ParseSense(head[0])
	if err != nil {
		return nil, errors.Wrapf(err, "line %d", lineNo)
	}
	c, err := parseFloats(head[1:])
	if err != nil {
		return nil, errors.Wrapf(err, "line %d", lineNo)
	}
	n := len(c)
	if n == 0 {
		return nil, errors.Wrapf(ErrFormat, "line %d: objective has no coefficients", lineNo)
	}

	var (
		data []float64
		rel  []model.Relation
		b    []float64
	)
	for {
		f, ok := next()
		if !ok {
			break
		}
		if len(f) != n+2 {
			return nil, errors.Wrapf(ErrFormat, "line %d: want %d coefficients, a relation and a right-hand side, got %d fields", lineNo, n, len(f))
		}
		row, err := parseFloats(f[:n])
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNo)
		}
		r, err := model.ParseRelation(f[n])
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNo)
		}
		rhs, err := strconv.ParseFloat(f[n+1], 64)
		if err != nil {
			return nil, errors.Wrapf(ErrFormat, "line %d: right-hand side %q", lineNo, f[n+1])
		}
		data = append(data, row...)
		rel = append(rel, r)
		b = append(b, rhs)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "instance: read")
	}
	if len(b) == 0 {
		return nil, errors.Wrap(ErrFormat, "no constraints")
	}

	return model.NewLP(sense, c, mat.NewDense(len(b), n, data), rel, b)
}

// ParseString is Parse on a string.
func ParseString(s string) (*model.LP, error) {
	return Parse(strings.NewReader(s))
}

func parseFloats(fields []string) ([]float64, error) {
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, errors.Wrapf(ErrFormat, "coefficient %q", f)
		}
		out[i] = v
	}
	return out, nil
}
