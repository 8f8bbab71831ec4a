//go:build glpk

package instance

import (
	"runtime"

	"github.com/lukpank/go-glpk/glpk"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"q.log/tableau/model"
)

func init() {
	RegisterFormat(".mps", func(path string) (*model.LP, error) {
		return NewReader(path).Read()
	})
}

// Reader reads an MPS file into an inequality-form problem.
type Reader struct {
	filename string
}

func NewReader(filename string) *Reader {
	return &Reader{
		filename: filename,
	}
}

// Read loads the file through GLPK. Equality and double-bounded rows are
// split into a <= and a >= row; finite column bounds other than x >= 0
// become extra rows. Columns whose lower bound is negative or missing are
// rejected with ErrFreeVariable.
func (r *Reader) Read() (*model.LP, error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	lp := glpk.New()
	defer lp.Delete()
	if err := lp.ReadMPS(glpk.MPS_FILE, nil, r.filename); err != nil {
		return nil, errors.Wrapf(err, "instance: read %s", r.filename)
	}

	n := lp.NumCols()
	sense := model.Minimize
	if lp.ObjDir() == glpk.MAX {
		sense = model.Maximize
	}

	c := make([]float64, n)
	for j := range n {
		c[j] = lp.ObjCoef(j + 1)
	}

	var (
		data []float64
		rel  []model.Relation
		b    []float64
	)
	add := func(row []float64, r model.Relation, rhs float64) {
		data = append(data, row...)
		rel = append(rel, r)
		b = append(b, rhs)
	}

	for i := 1; i <= lp.NumRows(); i++ {
		row := make([]float64, n)
		idxs, vals := lp.MatRow(i)
		for k, v := range idxs {
			if v == 0 {
				continue
			}
			row[v-1] = vals[k]
		}
		switch lp.RowType(i) {
		case glpk.UP:
			add(row, model.LessEqual, lp.RowUB(i))
		case glpk.LO:
			add(row, model.GreaterEqual, lp.RowLB(i))
		case glpk.DB, glpk.FX:
			add(row, model.LessEqual, lp.RowUB(i))
			add(append([]float64(nil), row...), model.GreaterEqual, lp.RowLB(i))
		}
	}

	for j := 1; j <= n; j++ {
		typ := lp.ColType(j)
		if typ == glpk.FR || typ == glpk.UP || lp.ColLB(j) < 0 {
			return nil, errors.Wrapf(ErrFreeVariable, "column %d", j)
		}
		if lb := lp.ColLB(j); lb > 0 {
			row := make([]float64, n)
			row[j-1] = 1
			add(row, model.GreaterEqual, lb)
		}
		if typ == glpk.DB || typ == glpk.FX {
			row := make([]float64, n)
			row[j-1] = 1
			add(row, model.LessEqual, lp.ColUB(j))
		}
	}

	if len(b) == 0 {
		return nil, errors.Wrapf(ErrFormat, "%s has no constraints", r.filename)
	}
	return model.NewLP(sense, c, mat.NewDense(len(b), n, data), rel, b)
}
